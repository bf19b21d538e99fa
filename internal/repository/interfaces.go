package repository

import (
	"context"
	"errors"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
)

var ErrNotFound = errors.New("not found")

// TaskRepo stores the backlog as an ordered list. Writers always send the
// whole list through Replace.
type TaskRepo interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Replace(ctx context.Context, tasks []domain.Task) error
}
