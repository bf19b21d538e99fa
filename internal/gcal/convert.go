package gcal

import (
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"google.golang.org/api/calendar/v3"
)

// TaskIDProperty is the private extended property linking a calendar event
// to its backlog task.
const TaskIDProperty = "planner_task_id"

// Google Calendar event color ids.
var priorityColors = map[domain.Priority]string{
	domain.PriorityHigh:   "11", // tomato
	domain.PriorityMedium: "5",  // banana
	domain.PriorityLow:    "2",  // sage
}

// ToCalendarEvent converts a placed event to its Google Calendar form.
func ToCalendarEvent(ev domain.CalendarEvent) *calendar.Event {
	desc := "Planned by weekly-planner."
	if ev.Overflow {
		desc = "Did not fit this week's working hours."
	}
	return &calendar.Event{
		Summary:     ev.Summary,
		Description: desc,
		ColorId:     priorityColors[domain.ParsePriority(string(ev.Priority))],
		Start:       &calendar.EventDateTime{DateTime: ev.Start.UTC().Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: ev.End.UTC().Format(time.RFC3339)},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{TaskIDProperty: ev.TaskID},
		},
	}
}

// eventPatch returns the fields of target that differ from existing, or nil
// when nothing changed.
func eventPatch(existing, target *calendar.Event) *calendar.Event {
	patch := &calendar.Event{}
	changed := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		changed = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		changed = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		changed = true
	}
	if !sameInstant(existing.Start, target.Start) || !sameInstant(existing.End, target.End) {
		patch.Start = target.Start
		patch.End = target.End
		changed = true
	}

	if !changed {
		return nil
	}
	return patch
}

func sameInstant(a, b *calendar.EventDateTime) bool {
	if a == nil || b == nil {
		return a == b
	}
	ta, errA := time.Parse(time.RFC3339, a.DateTime)
	tb, errB := time.Parse(time.RFC3339, b.DateTime)
	if errA != nil || errB != nil {
		return a.DateTime == b.DateTime
	}
	return ta.Equal(tb)
}
