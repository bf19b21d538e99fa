package gcal

import (
	"testing"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func sampleEvent() domain.CalendarEvent {
	loc := time.FixedZone("UTC+2", 2*3600)
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)
	return domain.CalendarEvent{
		ID:       "ev-1",
		TaskID:   "task-1",
		Summary:  "Write report",
		Priority: domain.PriorityHigh,
		Start:    start,
		End:      start.Add(90 * time.Minute),
	}
}

func TestToCalendarEvent(t *testing.T) {
	got := ToCalendarEvent(sampleEvent())

	assert.Equal(t, "Write report", got.Summary)
	assert.Equal(t, "2024-01-01T07:00:00Z", got.Start.DateTime)
	assert.Equal(t, "2024-01-01T08:30:00Z", got.End.DateTime)
	assert.Equal(t, "11", got.ColorId)
	require.NotNil(t, got.ExtendedProperties)
	assert.Equal(t, "task-1", got.ExtendedProperties.Private[TaskIDProperty])
}

func TestToCalendarEvent_ColorByPriority(t *testing.T) {
	cases := map[domain.Priority]string{
		domain.PriorityHigh:   "11",
		domain.PriorityMedium: "5",
		domain.PriorityLow:    "2",
		"LOW":                 "2",
		"urgent":              "5",
	}
	for p, want := range cases {
		ev := sampleEvent()
		ev.Priority = p
		assert.Equal(t, want, ToCalendarEvent(ev).ColorId, string(p))
	}
}

func TestToCalendarEvent_OverflowDescription(t *testing.T) {
	ev := sampleEvent()
	plain := ToCalendarEvent(ev).Description
	ev.Overflow = true
	assert.NotEqual(t, plain, ToCalendarEvent(ev).Description)
}

func TestEventPatch(t *testing.T) {
	target := ToCalendarEvent(sampleEvent())

	t.Run("identical", func(t *testing.T) {
		existing := ToCalendarEvent(sampleEvent())
		assert.Nil(t, eventPatch(existing, target))
	})

	t.Run("same instant different zone", func(t *testing.T) {
		existing := ToCalendarEvent(sampleEvent())
		existing.Start = &calendar.EventDateTime{DateTime: "2024-01-01T09:00:00+02:00"}
		assert.Nil(t, eventPatch(existing, target))
	})

	t.Run("moved", func(t *testing.T) {
		existing := ToCalendarEvent(sampleEvent())
		existing.End = &calendar.EventDateTime{DateTime: "2024-01-01T09:00:00Z"}
		patch := eventPatch(existing, target)
		require.NotNil(t, patch)
		assert.Equal(t, target.Start, patch.Start)
		assert.Equal(t, target.End, patch.End)
		assert.Empty(t, patch.Summary)
	})

	t.Run("renamed", func(t *testing.T) {
		existing := ToCalendarEvent(sampleEvent())
		existing.Summary = "old"
		patch := eventPatch(existing, target)
		require.NotNil(t, patch)
		assert.Equal(t, "Write report", patch.Summary)
		assert.Nil(t, patch.Start)
	})
}
