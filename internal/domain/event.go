package domain

import "time"

// CalendarEvent is one placed task. Events are derived on every
// computation and never stored.
type CalendarEvent struct {
	ID       string
	TaskID   string
	Start    time.Time
	End      time.Time
	Summary  string
	Priority Priority

	// Overflow marks events that did not fit any day's working window and
	// were queued after Sunday's placed work.
	Overflow bool
}

// DurationMin returns the event length in whole minutes.
func (e CalendarEvent) DurationMin() int {
	return int(e.End.Sub(e.Start) / time.Minute)
}
