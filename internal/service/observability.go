package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger zerolog.Logger
}

// NewLogUseCaseObserver writes one structured "service_use_case" line per
// event to logger.
func NewLogUseCaseObserver(logger zerolog.Logger) UseCaseObserver {
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	var e *zerolog.Event
	if event.Err != nil {
		e = o.logger.Error().Err(event.Err)
	} else {
		e = o.logger.Info()
	}
	e.Str("use_case", event.Name).
		Int64("duration_ms", event.Duration.Milliseconds()).
		Bool("success", event.Success).
		Fields(event.Fields).
		Msg("service_use_case")
}

type multiUseCaseObserver []UseCaseObserver

// MultiUseCaseObserver fans events out to every non-nil observer.
func MultiUseCaseObserver(observers ...UseCaseObserver) UseCaseObserver {
	var m multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			m = append(m, obs)
		}
	}
	switch len(m) {
	case 0:
		return NoopUseCaseObserver{}
	case 1:
		return m[0]
	}
	return m
}

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	return MultiUseCaseObserver(observers...)
}

// observe reports a finished use case. Call it deferred with a pointer to
// the named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}
