package app

import (
	"context"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

type WeekUseCase interface {
	Week(ctx context.Context, req WeekRequest) (*WeekPlan, error)
}

type ExportUseCase interface {
	Export(ctx context.Context, req WeekRequest) (*ExportResult, error)
}

// EditEventUseCase folds an event edit into the backlog. applied is false
// when the task no longer exists.
type EditEventUseCase interface {
	EditEvent(ctx context.Context, req EditEventRequest) (applied bool, err error)
}

type PublishUseCase interface {
	Publish(ctx context.Context, req WeekRequest) (*PublishResult, error)
}

// Publisher pushes a week's events to an external calendar.
type Publisher interface {
	Publish(ctx context.Context, events []domain.CalendarEvent) (*PublishResult, error)
}
