package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/app"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/contract"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/db"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/domain"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/ical"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/repository"
	"github.com/dubeymanas69-lgtm/ai-agent/internal/scheduler"
)

// ErrPublisherNotConfigured is returned by Publish when no external
// calendar has been wired.
var ErrPublisherNotConfigured = errors.New("calendar publisher not configured")

type plannerService struct {
	tasks     repository.TaskRepo
	uow       db.UnitOfWork
	publisher app.Publisher
	observer  UseCaseObserver
	now       func() time.Time
	newID     scheduler.IDFunc
}

type PlannerOption func(*plannerService)

// WithClock overrides the wall clock used to resolve the current week and
// stamp exports.
func WithClock(now func() time.Time) PlannerOption {
	return func(s *plannerService) { s.now = now }
}

// WithEventIDs overrides event id generation.
func WithEventIDs(newID scheduler.IDFunc) PlannerOption {
	return func(s *plannerService) { s.newID = newID }
}

func WithPublisher(p app.Publisher) PlannerOption {
	return func(s *plannerService) { s.publisher = p }
}

func WithObservers(observers ...UseCaseObserver) PlannerOption {
	return func(s *plannerService) { s.observer = useCaseObserverOrNoop(observers) }
}

func NewPlannerService(tasks repository.TaskRepo, uow db.UnitOfWork, opts ...PlannerOption) PlannerService {
	s := &plannerService{
		tasks:    tasks,
		uow:      uow,
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *plannerService) Week(ctx context.Context, req contract.WeekRequest) (plan *contract.WeekPlan, err error) {
	anchor := req.ResolveAnchor(s.now())
	fields := map[string]any{"anchor": anchor.Format(domain.DateLayout)}
	defer observe(ctx, s.observer, "week", time.Now(), fields, &err)

	plan, err = s.compute(ctx, anchor)
	if err != nil {
		return nil, err
	}
	fields["task_count"] = plan.TaskCount
	fields["overflow_events"] = plan.OverflowCount
	return plan, nil
}

func (s *plannerService) Export(ctx context.Context, req contract.WeekRequest) (res *contract.ExportResult, err error) {
	anchor := req.ResolveAnchor(s.now())
	fields := map[string]any{"anchor": anchor.Format(domain.DateLayout)}
	defer observe(ctx, s.observer, "export", time.Now(), fields, &err)

	plan, err := s.compute(ctx, anchor)
	if err != nil {
		return nil, err
	}
	res = &contract.ExportResult{
		Anchor:     anchor,
		Filename:   ical.Filename(anchor),
		Content:    ical.Export(plan.CalendarEvents(), s.now()),
		EventCount: len(plan.Events),
	}
	fields["event_count"] = res.EventCount
	return res, nil
}

// EditEvent applies an event edit to the backlog. The week is not
// recomputed here; callers ask for it again.
func (s *plannerService) EditEvent(ctx context.Context, req contract.EditEventRequest) (applied bool, err error) {
	fields := map[string]any{"task_id": req.TaskID}
	defer observe(ctx, s.observer, "edit-event", time.Now(), fields, &err)

	edit := scheduler.EventEdit{TaskID: req.TaskID, Summary: req.Summary, Start: req.Start, End: req.End}
	if !edit.End.After(edit.Start) {
		return false, fmt.Errorf("editing task %s: %w", req.TaskID, domain.ErrInvalidInterval)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTasks := repository.NewSQLiteTaskRepo(tx)

		backlog, err := txTasks.List(ctx)
		if err != nil {
			return err
		}
		updated, ok, err := scheduler.Reconcile(backlog, edit)
		if err != nil || !ok {
			return err
		}
		applied = true
		return txTasks.Replace(ctx, updated)
	})
	if err != nil {
		return false, err
	}
	fields["applied"] = applied
	return applied, nil
}

func (s *plannerService) Publish(ctx context.Context, req contract.WeekRequest) (res *contract.PublishResult, err error) {
	anchor := req.ResolveAnchor(s.now())
	fields := map[string]any{"anchor": anchor.Format(domain.DateLayout)}
	defer observe(ctx, s.observer, "publish", time.Now(), fields, &err)

	if s.publisher == nil {
		return nil, ErrPublisherNotConfigured
	}
	plan, err := s.compute(ctx, anchor)
	if err != nil {
		return nil, err
	}
	res, err = s.publisher.Publish(ctx, plan.CalendarEvents())
	if err != nil {
		return nil, fmt.Errorf("publishing week %s: %w", anchor.Format(domain.DateLayout), err)
	}
	fields["created"] = res.Created
	fields["updated"] = res.Updated
	return res, nil
}

// compute places a fresh backlog snapshot on anchor's week.
func (s *plannerService) compute(ctx context.Context, anchor time.Time) (*contract.WeekPlan, error) {
	backlog, err := s.tasks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading backlog: %w", err)
	}
	events := scheduler.Compute(backlog, anchor, s.newID)
	return buildWeekPlan(anchor, s.now(), len(backlog), events), nil
}

func buildWeekPlan(anchor, now time.Time, taskCount int, events []domain.CalendarEvent) *contract.WeekPlan {
	plan := &contract.WeekPlan{
		Anchor:      anchor,
		GeneratedAt: now,
		TaskCount:   taskCount,
		Days:        make([]contract.DaySummary, domain.DaysPerWeek),
		Events:      make([]contract.EventView, 0, len(events)),
	}
	for i := range plan.Days {
		plan.Days[i] = contract.DaySummary{
			Date:         anchor.AddDate(0, 0, i).Format(domain.DateLayout),
			Label:        domain.WeekdayLabels[i],
			RemainingMin: domain.DayCapacityMin,
		}
	}

	for _, ev := range events {
		day := domain.DayIndex(anchor, ev.Start)
		plan.Events = append(plan.Events, contract.EventView{
			ID:          ev.ID,
			TaskID:      ev.TaskID,
			Summary:     ev.Summary,
			Priority:    ev.Priority,
			Start:       ev.Start,
			End:         ev.End,
			DurationMin: ev.DurationMin(),
			Day:         day,
			Overflow:    ev.Overflow,
		})
		if ev.Overflow {
			plan.OverflowCount++
			continue
		}
		d := &plan.Days[day]
		d.EventCount++
		d.UsedMin += ev.DurationMin()
		d.RemainingMin -= ev.DurationMin()
	}
	return plan
}
