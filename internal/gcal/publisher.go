package gcal

import (
	"context"
	"errors"
	"fmt"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/app"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/rs/zerolog"
	"google.golang.org/api/calendar/v3"
)

// Publisher upserts planned events into one Google calendar. Events are
// matched to tasks through TaskIDProperty, so republishing a week moves
// existing events instead of duplicating them.
type Publisher struct {
	srv        *calendar.Service
	calendarID string
	logger     zerolog.Logger
}

func NewPublisher(srv *calendar.Service, calendarID string, logger zerolog.Logger) *Publisher {
	return &Publisher{srv: srv, calendarID: calendarID, logger: logger}
}

// ResolveCalendar finds the id of the calendar whose summary is name.
// "primary" is passed through.
func ResolveCalendar(ctx context.Context, srv *calendar.Service, name string) (string, error) {
	if name == "primary" {
		return name, nil
	}
	var id string
	err := srv.CalendarList.List().Pages(ctx, func(page *calendar.CalendarList) error {
		for _, item := range page.Items {
			if item.Summary == name {
				id = item.Id
				return errFound
			}
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return id, nil
	case err != nil:
		return "", fmt.Errorf("listing calendars: %w", err)
	}
	return "", fmt.Errorf("%q: %w", name, ErrCalendarNotFound)
}

// errFound stops calendar list paging once a match is seen.
var errFound = errors.New("found")

func (p *Publisher) Publish(ctx context.Context, events []domain.CalendarEvent) (*app.PublishResult, error) {
	res := &app.PublishResult{Calendar: p.calendarID}
	for _, ev := range events {
		target := ToCalendarEvent(ev)

		existing, err := p.findByTask(ctx, ev.TaskID)
		if err != nil {
			return res, err
		}

		switch {
		case existing == nil:
			if _, err := p.srv.Events.Insert(p.calendarID, target).Context(ctx).Do(); err != nil {
				return res, fmt.Errorf("inserting event for task %s: %w", ev.TaskID, err)
			}
			res.Created++
		case eventPatch(existing, target) != nil:
			patch := eventPatch(existing, target)
			if _, err := p.srv.Events.Patch(p.calendarID, existing.Id, patch).Context(ctx).Do(); err != nil {
				return res, fmt.Errorf("patching event %s: %w", existing.Id, err)
			}
			res.Updated++
		default:
			res.Unchanged++
		}
	}
	p.logger.Info().
		Str("calendar", p.calendarID).
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("unchanged", res.Unchanged).
		Msg("published week")
	return res, nil
}

func (p *Publisher) findByTask(ctx context.Context, taskID string) (*calendar.Event, error) {
	events, err := p.srv.Events.List(p.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", TaskIDProperty, taskID)).
		ShowDeleted(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("searching event for task %s: %w", taskID, err)
	}
	if len(events.Items) == 0 {
		return nil, nil
	}
	return events.Items[0], nil
}

var _ app.Publisher = (*Publisher)(nil)
