package app

import (
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// WeekRequest selects a week. Anchor may be any day of the week; Offset
// then moves it by whole weeks. A nil Anchor means the week containing Now
// (or the wall clock when Now is nil too).
type WeekRequest struct {
	Anchor *time.Time
	Offset int
	Now    *time.Time
}

func NewWeekRequest() WeekRequest {
	return WeekRequest{}
}

// ResolveAnchor returns the Monday 00:00 the request points at.
func (r WeekRequest) ResolveAnchor(now time.Time) time.Time {
	if r.Now != nil {
		now = *r.Now
	}
	base := domain.CurrentWeek(now)
	if r.Anchor != nil {
		base = domain.WeekStart(*r.Anchor)
	}
	return domain.ShiftWeeks(base, r.Offset)
}

type EventView struct {
	ID          string          `json:"id"`
	TaskID      string          `json:"task_id"`
	Summary     string          `json:"summary"`
	Priority    domain.Priority `json:"priority"`
	Start       time.Time       `json:"start"`
	End         time.Time       `json:"end"`
	DurationMin int             `json:"duration_minutes"`
	Day         int             `json:"day"`
	Overflow    bool            `json:"overflow"`
}

type DaySummary struct {
	Date         string `json:"date"`
	Label        string `json:"label"`
	UsedMin      int    `json:"used_minutes"`
	RemainingMin int    `json:"remaining_minutes"`
	EventCount   int    `json:"event_count"`
}

// WeekPlan is one computed placement of the backlog. Events are in
// placement order, so Events[i] belongs to the i-th ranked task.
type WeekPlan struct {
	Anchor        time.Time    `json:"anchor"`
	GeneratedAt   time.Time    `json:"generated_at"`
	TaskCount     int          `json:"task_count"`
	Days          []DaySummary `json:"days"`
	Events        []EventView  `json:"events"`
	OverflowCount int          `json:"overflow_count"`
}

// CalendarEvents converts the plan's events back to domain events.
func (p *WeekPlan) CalendarEvents() []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, len(p.Events))
	for i, ev := range p.Events {
		out[i] = domain.CalendarEvent{
			ID:       ev.ID,
			TaskID:   ev.TaskID,
			Start:    ev.Start,
			End:      ev.End,
			Summary:  ev.Summary,
			Priority: ev.Priority,
			Overflow: ev.Overflow,
		}
	}
	return out
}

type ExportResult struct {
	Anchor     time.Time
	Filename   string
	Content    string
	EventCount int
}

type EditEventRequest struct {
	TaskID  string    `json:"task_id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

type PublishResult struct {
	Calendar  string
	Created   int
	Updated   int
	Unchanged int
}
