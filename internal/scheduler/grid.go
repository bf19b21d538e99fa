package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// ErrCapacityExceeded signals that a slot cannot hold the requested duration.
// Placement handles it through the overflow branch; it never reaches callers.
var ErrCapacityExceeded = errors.New("slot capacity exceeded")

// DaySlot is one day's working window with a fill cursor.
// Capacity only shrinks during a pass: Cursor never moves backwards.
type DaySlot struct {
	Day    time.Time
	Cursor time.Time
	End    time.Time
}

// Remaining returns the free minutes between the cursor and the end of the window.
func (s *DaySlot) Remaining() int {
	if !s.Cursor.Before(s.End) {
		return 0
	}
	return int(s.End.Sub(s.Cursor) / time.Minute)
}

// Consume reserves minutes at the cursor and returns the reserved interval.
func (s *DaySlot) Consume(minutes int) (time.Time, time.Time, error) {
	if minutes > s.Remaining() {
		return time.Time{}, time.Time{}, fmt.Errorf("%s needs %d min, %d left: %w",
			s.Day.Format(domain.DateLayout), minutes, s.Remaining(), ErrCapacityExceeded)
	}
	start := s.Cursor
	s.Cursor = start.Add(time.Duration(minutes) * time.Minute)
	return start, s.Cursor, nil
}

// Grid holds the seven day slots of one week. A Grid belongs to a single
// placement pass and is discarded afterwards.
type Grid struct {
	Anchor time.Time
	Slots  [domain.DaysPerWeek]DaySlot

	// overflowEnd is where the last overflow event ended; zero until the
	// first overflow.
	overflowEnd time.Time
}

// BuildGrid creates a fresh grid for the week containing anchor.
func BuildGrid(anchor time.Time) *Grid {
	monday := domain.WeekStart(anchor)
	g := &Grid{Anchor: monday}
	y, m, d := monday.Date()
	loc := monday.Location()
	for i := range g.Slots {
		day := time.Date(y, m, d+i, 0, 0, 0, 0, loc)
		g.Slots[i] = DaySlot{
			Day:    day,
			Cursor: time.Date(y, m, d+i, domain.WorkdayStartHour, 0, 0, 0, loc),
			End:    time.Date(y, m, d+i, domain.WorkdayEndHour, 0, 0, 0, loc),
		}
	}
	return g
}

// Overflow queues minutes outside capacity tracking. The event starts at
// Sunday's cursor or at the end of the previous overflow, whichever is
// later. Sunday's cursor is left alone, so its free window stays usable.
func (g *Grid) Overflow(minutes int) (time.Time, time.Time) {
	start := g.Slots[len(g.Slots)-1].Cursor
	if g.overflowEnd.After(start) {
		start = g.overflowEnd
	}
	g.overflowEnd = start.Add(time.Duration(minutes) * time.Minute)
	return start, g.overflowEnd
}
