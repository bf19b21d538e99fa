package scheduler

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomBacklog(rng *rand.Rand) []domain.Task {
	priorities := []domain.Priority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow, ""}
	n := rng.Intn(40) + 1
	tasks := make([]domain.Task, n)
	for i := range tasks {
		tasks[i] = domain.Task{
			ID:          fmt.Sprintf("t-%02d", i),
			Name:        "Task",
			DurationMin: rng.Intn(12)*30 + rng.Intn(3)*15, // 0–375
			Priority:    priorities[rng.Intn(len(priorities))],
		}
		if rng.Intn(10) == 0 {
			tasks[i].DurationMin = 540 + rng.Intn(300)
		}
		if rng.Intn(2) == 0 {
			d := time.Date(2024, 1, 1+rng.Intn(20), 0, 0, 0, 0, time.UTC)
			tasks[i].Deadline = &d
		}
	}
	return tasks
}

// TestCompute_Invariants property-tests placement: one event per task,
// per-day capacity, working-window containment, and overflow contiguity.
func TestCompute_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 300; trial++ {
		backlog := randomBacklog(rng)
		events := Compute(backlog, monday, nil)

		// Invariant 1: bijection task -> event
		require.Len(t, events, len(backlog), "trial %d", trial)
		seen := make(map[string]int)
		for _, ev := range events {
			seen[ev.TaskID]++
			assert.True(t, ev.End.After(ev.Start), "trial %d: event must end after it starts", trial)
		}
		for _, task := range backlog {
			assert.Equal(t, 1, seen[task.ID], "trial %d: task %s must appear once", trial, task.ID)
		}

		// Invariant 2: regular events stay inside their day's window,
		// never exceed 540 min per day, and never overlap.
		perDay := make(map[int][]domain.CalendarEvent)
		for _, ev := range events {
			if ev.Overflow {
				continue
			}
			day := domain.DayIndex(monday, ev.Start)
			require.True(t, day >= 0 && day < 7, "trial %d: day index %d", trial, day)
			open := monday.AddDate(0, 0, day).Add(9 * time.Hour)
			closeAt := monday.AddDate(0, 0, day).Add(18 * time.Hour)
			assert.False(t, ev.Start.Before(open), "trial %d: starts before 09:00", trial)
			assert.False(t, ev.End.After(closeAt), "trial %d: ends after 18:00", trial)
			perDay[day] = append(perDay[day], ev)
		}
		for day, evs := range perDay {
			total := 0
			for _, ev := range evs {
				total += ev.DurationMin()
			}
			assert.LessOrEqual(t, total, 540, "trial %d day %d", trial, day)

			sort.Slice(evs, func(i, j int) bool { return evs[i].Start.Before(evs[j].Start) })
			for i := 1; i < len(evs); i++ {
				assert.False(t, evs[i].Start.Before(evs[i-1].End), "trial %d day %d: overlap", trial, day)
			}
		}

		// Invariant 3: overflow events are contiguous, end past Sunday 18:00,
		// and the first one starts no earlier than the Sunday work placed
		// before it. Sunday work placed after an overflow may share its window.
		var overflow []domain.CalendarEvent
		var sundayEnd time.Time
		for _, ev := range events {
			if !ev.Overflow {
				if domain.DayIndex(monday, ev.Start) == 6 && ev.End.After(sundayEnd) {
					sundayEnd = ev.End
				}
				continue
			}
			assert.True(t, ev.End.After(monday.AddDate(0, 0, 6).Add(18*time.Hour)),
				"trial %d: overflow must extend past Sunday 18:00", trial)
			if len(overflow) > 0 {
				assert.Equal(t, overflow[len(overflow)-1].End, ev.Start, "trial %d: overflow %d not contiguous", trial, len(overflow))
			} else if !sundayEnd.IsZero() {
				assert.False(t, ev.Start.Before(sundayEnd), "trial %d: overflow overlaps earlier Sunday work", trial)
			}
			overflow = append(overflow, ev)
		}

		// Invariant 4: more work than the week holds forces overflow.
		total := 0
		for _, task := range backlog {
			total += task.EffectiveDuration()
		}
		if total > 7*540 {
			assert.NotEmpty(t, overflow, "trial %d: %d min cannot fit one week", trial, total)
		}
	}
}
