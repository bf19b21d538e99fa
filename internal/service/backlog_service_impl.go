package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/db"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/repository"
	"github.com/google/uuid"
)

type backlogService struct {
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewBacklogService(tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) BacklogService {
	return &backlogService{
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *backlogService) List(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *backlogService) Add(ctx context.Context, t domain.Task) (added *domain.Task, err error) {
	defer observe(ctx, s.observer, "task-add", time.Now(), map[string]any{"name": t.Name}, &err)

	if err = t.Validate(); err != nil {
		return nil, err
	}
	t.ID = uuid.New().String()
	t.CreatedAt = s.now().Truncate(time.Second)
	t.Normalize()

	err = s.rewrite(ctx, func(current []domain.Task) ([]domain.Task, error) {
		return append(current, t), nil
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *backlogService) Update(ctx context.Context, t domain.Task) (err error) {
	defer observe(ctx, s.observer, "task-update", time.Now(), map[string]any{"task_id": t.ID}, &err)

	if err = t.Validate(); err != nil {
		return err
	}
	t.Normalize()

	return s.rewrite(ctx, func(current []domain.Task) ([]domain.Task, error) {
		for i := range current {
			if current[i].ID != t.ID {
				continue
			}
			if t.CreatedAt.IsZero() {
				t.CreatedAt = current[i].CreatedAt
			}
			current[i] = t
			return current, nil
		}
		return nil, fmt.Errorf("task %s: %w", t.ID, repository.ErrNotFound)
	})
}

func (s *backlogService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "task-delete", time.Now(), map[string]any{"task_id": id}, &err)

	return s.rewrite(ctx, func(current []domain.Task) ([]domain.Task, error) {
		kept := make([]domain.Task, 0, len(current))
		for _, t := range current {
			if t.ID != id {
				kept = append(kept, t)
			}
		}
		if len(kept) == len(current) {
			return nil, fmt.Errorf("task %s: %w", id, repository.ErrNotFound)
		}
		return kept, nil
	})
}

// ReplaceAll stores tasks as the new backlog. Tasks without an id get one;
// duplicate ids and empty names are rejected before anything is written.
func (s *backlogService) ReplaceAll(ctx context.Context, tasks []domain.Task) (stored []domain.Task, err error) {
	fields := map[string]any{"task_count": len(tasks)}
	defer observe(ctx, s.observer, "task-replace-all", time.Now(), fields, &err)

	stored = make([]domain.Task, len(tasks))
	seen := make(map[string]bool, len(tasks))
	now := s.now().Truncate(time.Second)
	for i, t := range tasks {
		if err = t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i, err)
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		if seen[t.ID] {
			err = fmt.Errorf("%w: duplicate id %s", domain.ErrInvalidTask, t.ID)
			return nil, err
		}
		seen[t.ID] = true
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.Normalize()
		stored[i] = t
	}

	err = s.rewrite(ctx, func([]domain.Task) ([]domain.Task, error) {
		return stored, nil
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// rewrite reads the backlog, applies change and writes the result back, all
// inside one transaction.
func (s *backlogService) rewrite(ctx context.Context, change func([]domain.Task) ([]domain.Task, error)) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		current, err := txTasks.List(ctx)
		if err != nil {
			return err
		}
		next, err := change(current)
		if err != nil {
			return err
		}
		return txTasks.Replace(ctx, next)
	})
}
