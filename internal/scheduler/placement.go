package scheduler

import (
	"errors"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/google/uuid"
)

// IDFunc generates event identifiers.
type IDFunc func() string

// Place assigns each ranked task to the first day with enough room, in a
// single forward pass. Tasks that fit nowhere become overflow events queued
// from Sunday's cursor without consuming capacity. Every task yields
// exactly one event.
func Place(ranked []domain.Task, grid *Grid, newID IDFunc) []domain.CalendarEvent {
	if newID == nil {
		newID = uuid.NewString
	}

	events := make([]domain.CalendarEvent, 0, len(ranked))
	for _, t := range ranked {
		dur := t.EffectiveDuration()

		start, end, placed := firstFit(grid, dur)
		if !placed {
			start, end = grid.Overflow(dur)
		}

		events = append(events, domain.CalendarEvent{
			ID:       newID(),
			TaskID:   t.ID,
			Start:    start,
			End:      end,
			Summary:  t.Name,
			Priority: t.Priority,
			Overflow: !placed,
		})
	}
	return events
}

// firstFit consumes minutes from the first slot, Monday to Sunday, that
// still has room for them.
func firstFit(g *Grid, minutes int) (time.Time, time.Time, bool) {
	for i := range g.Slots {
		start, end, err := g.Slots[i].Consume(minutes)
		if errors.Is(err, ErrCapacityExceeded) {
			continue
		}
		return start, end, true
	}
	return time.Time{}, time.Time{}, false
}

// Compute ranks the backlog and places it on a fresh grid for anchor's week.
// The result depends only on (backlog, anchor), apart from event ids.
func Compute(backlog []domain.Task, anchor time.Time, newID IDFunc) []domain.CalendarEvent {
	return Place(RankTasks(backlog), BuildGrid(anchor), newID)
}
