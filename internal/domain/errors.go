package domain

import "errors"

var (
	// ErrInvalidInterval is returned when an edited event does not end after it starts.
	ErrInvalidInterval = errors.New("end must be after start")

	// ErrInvalidTask is returned when a task is missing required fields.
	ErrInvalidTask = errors.New("invalid task")
)
