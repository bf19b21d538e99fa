package gcal

import (
	"context"
	"sync"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/app"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/rs/zerolog"
)

// DeferredPublisher connects to Google Calendar on first use, so commands
// that never publish do not need credentials.
type DeferredPublisher struct {
	credentialsDir string
	calendarName   string
	logger         zerolog.Logger

	mu  sync.Mutex
	pub *Publisher
}

func NewDeferredPublisher(credentialsDir, calendarName string, logger zerolog.Logger) *DeferredPublisher {
	return &DeferredPublisher{credentialsDir: credentialsDir, calendarName: calendarName, logger: logger}
}

func (d *DeferredPublisher) Publish(ctx context.Context, events []domain.CalendarEvent) (*app.PublishResult, error) {
	pub, err := d.connect(ctx)
	if err != nil {
		return nil, err
	}
	return pub.Publish(ctx, events)
}

func (d *DeferredPublisher) connect(ctx context.Context) (*Publisher, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pub != nil {
		return d.pub, nil
	}

	auth, err := NewAuthorizer(d.credentialsDir)
	if err != nil {
		return nil, err
	}
	srv, err := auth.Service(ctx)
	if err != nil {
		return nil, err
	}
	calID, err := ResolveCalendar(ctx, srv, d.calendarName)
	if err != nil {
		return nil, err
	}
	d.pub = NewPublisher(srv, calID, d.logger)
	return d.pub, nil
}

var _ app.Publisher = (*DeferredPublisher)(nil)
