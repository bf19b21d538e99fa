package testutil

import (
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/google/uuid"
)

type TaskOption func(*domain.Task)

func WithDuration(minutes int) TaskOption {
	return func(t *domain.Task) {
		t.DurationMin = minutes
	}
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) {
		t.Priority = p
	}
}

// WithDeadline takes a YYYY-MM-DD date and panics on anything else.
func WithDeadline(date string) TaskOption {
	return func(t *domain.Task) {
		d, err := time.Parse(domain.DateLayout, date)
		if err != nil {
			panic(err)
		}
		t.Deadline = &d
	}
}

func WithEarliestStart(ts time.Time) TaskOption {
	return func(t *domain.Task) {
		t.EarliestStart = &ts
	}
}

func WithTaskID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

// NewTestTask returns a medium-priority, hour-long task with a fresh id.
func NewTestTask(name string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:          uuid.New().String(),
		Name:        name,
		DurationMin: domain.DefaultDurationMin,
		Priority:    domain.PriorityMedium,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
