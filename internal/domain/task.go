package domain

import (
	"fmt"
	"strings"
	"time"
)

// DefaultDurationMin is used whenever a task carries no usable duration.
const DefaultDurationMin = 60

// DateLayout is the calendar-date format used for deadlines and week anchors.
const DateLayout = "2006-01-02"

type Task struct {
	ID          string
	Name        string
	DurationMin int
	Priority    Priority
	Deadline    *time.Time

	// EarliestStart is written by event edits and persisted, but nothing in
	// ranking or placement reads it yet.
	EarliestStart *time.Time

	CreatedAt time.Time
}

// EffectiveDuration returns the duration used for ranking and placement.
func (t Task) EffectiveDuration() int {
	if t.DurationMin <= 0 {
		return DefaultDurationMin
	}
	return t.DurationMin
}

// EffectivePriority returns the priority used for ranking.
func (t Task) EffectivePriority() Priority {
	return ParsePriority(string(t.Priority))
}

// HasDeadline reports whether the task carries a deadline.
func (t Task) HasDeadline() bool {
	return t.Deadline != nil
}

// Normalize fills defaults for duration and priority and strips the
// deadline down to its calendar date.
func (t *Task) Normalize() {
	t.Name = strings.TrimSpace(t.Name)
	t.DurationMin = t.EffectiveDuration()
	t.Priority = t.EffectivePriority()
	if t.Deadline != nil {
		d := DateOnly(*t.Deadline)
		t.Deadline = &d
	}
}

// Validate checks the fields a caller must supply when adding a task.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidTask)
	}
	if t.DurationMin < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidTask)
	}
	return nil
}

// ParseDeadline parses an optional YYYY-MM-DD deadline. Empty input yields nil.
func ParseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: deadline must use YYYY-MM-DD", ErrInvalidTask)
	}
	return &d, nil
}

// FormatDeadline renders a deadline as YYYY-MM-DD, or "" when absent.
func FormatDeadline(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// DateOnly truncates t to a UTC calendar date with the same year/month/day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
