package application

import (
	"context"

	"github.com/rcrowley/go-metrics"

	"historian/internal/shared/logger"
	"historian/internal/statistics/domain"
)

// Observer receives the outcome of every tick.
type Observer interface {
	Observe(ctx context.Context, outcome domain.Outcome)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, outcome domain.Outcome)

func (f ObserverFunc) Observe(ctx context.Context, outcome domain.Outcome) {
	f(ctx, outcome)
}

// Observers fans an outcome out to several observers.
type Observers []Observer

func (o Observers) Observe(ctx context.Context, outcome domain.Outcome) {
	for _, observer := range o {
		observer.Observe(ctx, outcome)
	}
}

// LogObserver logs outcomes. Abandoned ticks are warnings since they mean the
// store or the metrics source is unhealthy.
type LogObserver struct {
	logger logger.Logger
}

func NewLogObserver(logger logger.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Observe(ctx context.Context, outcome domain.Outcome) {
	switch outcome.Status {
	case domain.StatusWritten:
		o.logger.Debug("Statistics tick written", "task", outcome.Task, "time", outcome.Time, "duration", outcome.Duration)
	case domain.StatusSkipped:
		o.logger.Info("Statistics tick skipped", "task", outcome.Task, "time", outcome.Time, "reason", outcome.Reason)
	case domain.StatusAbandoned:
		o.logger.Warn("Statistics tick abandoned", "task", outcome.Task, "time", outcome.Time, "step", outcome.Reason, "err", outcome.Err)
	}
}

// MetricsObserver counts outcomes per task and status and times every tick.
// Metric names are "<task>.<status>" and "<task>.duration".
type MetricsObserver struct {
	registry metrics.Registry
}

func NewMetricsObserver(registry metrics.Registry) *MetricsObserver {
	return &MetricsObserver{registry: registry}
}

func (o *MetricsObserver) Observe(ctx context.Context, outcome domain.Outcome) {
	metrics.GetOrRegisterCounter(outcome.Task+"."+string(outcome.Status), o.registry).Inc(1)
	metrics.GetOrRegisterTimer(outcome.Task+".duration", o.registry).Update(outcome.Duration)
}
