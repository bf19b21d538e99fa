package service

import (
	"context"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

// BacklogService owns the task list. Every change reads the current list
// and writes the whole list back in one transaction.
type BacklogService interface {
	List(ctx context.Context) ([]domain.Task, error)
	Add(ctx context.Context, t domain.Task) (*domain.Task, error)
	Update(ctx context.Context, t domain.Task) error
	Delete(ctx context.Context, id string) error
	ReplaceAll(ctx context.Context, tasks []domain.Task) ([]domain.Task, error)
}

type PlannerService interface {
	Week(ctx context.Context, req contract.WeekRequest) (*contract.WeekPlan, error)
	Export(ctx context.Context, req contract.WeekRequest) (*contract.ExportResult, error)
	EditEvent(ctx context.Context, req contract.EditEventRequest) (bool, error)
	Publish(ctx context.Context, req contract.WeekRequest) (*contract.PublishResult, error)
}
