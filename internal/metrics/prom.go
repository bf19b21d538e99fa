package metrics

import (
	"context"
	"errors"
	"strconv"

	"github.com/dubeymanas69-lgtm/ai-agent/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

// PromObserver records service use cases in Prometheus metrics. It
// satisfies service.UseCaseObserver.
type PromObserver struct {
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	overflow prometheus.Gauge
}

// NewPromObserver registers planner metrics on reg, or on the default
// registerer when reg is nil. Collectors that are already registered are
// reused.
func NewPromObserver(reg prometheus.Registerer) (*PromObserver, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_use_case_total",
		Help: "Service use cases executed, by outcome",
	}, []string{"use_case", "success"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_use_case_duration_seconds",
		Help:    "Service use case latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"use_case"})
	overflow := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planner_overflow_events",
		Help: "Overflow events in the most recently computed week",
	})

	var err error
	if calls, err = register(reg, calls); err != nil {
		return nil, err
	}
	if latency, err = register(reg, latency); err != nil {
		return nil, err
	}
	if overflow, err = register(reg, overflow); err != nil {
		return nil, err
	}
	return &PromObserver{calls: calls, latency: latency, overflow: overflow}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (o *PromObserver) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	o.calls.WithLabelValues(e.Name, strconv.FormatBool(e.Success)).Inc()
	o.latency.WithLabelValues(e.Name).Observe(e.Duration.Seconds())

	if e.Name == "week" && e.Success {
		if n, ok := e.Fields["overflow_events"].(int); ok {
			o.overflow.Set(float64(n))
		}
	}
}

var _ service.UseCaseObserver = (*PromObserver)(nil)
