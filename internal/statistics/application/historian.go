package application

import (
	"context"
	"fmt"
	"time"

	"historian/internal/statistics/domain"
)

const (
	TaskHistorian        = "historian"
	TaskHistorianAverage = "historian_average"
)

// Clock returns the current wall clock time.
type Clock func() time.Time

// HistorianConfig holds what a Historian needs besides its collaborators.
// An empty NodeID runs the historian standalone, without node filtering.
type HistorianConfig struct {
	NodeID           string
	SamplingInterval time.Duration
	Cuts             domain.CutTables
	Clock            Clock
}

// Historian takes one raw sample per tick and derives the per-second sample
// from it and the previous raw sample.
type Historian struct {
	repo     domain.Repository
	source   domain.MetricsSource
	rates    domain.RateComputer
	nodeID   string
	interval time.Duration
	now      Clock
	observer Observer
}

// NewHistorian creates a historian. observer may be nil.
func NewHistorian(repo domain.Repository, source domain.MetricsSource, cfg HistorianConfig, observer Observer) *Historian {
	interval := cfg.SamplingInterval
	if interval <= 0 {
		interval = domain.DefaultSamplingInterval
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	if observer == nil {
		observer = Observers{}
	}

	return &Historian{
		repo:     repo,
		source:   source,
		rates:    domain.NewRateComputer(interval, cfg.Cuts),
		nodeID:   cfg.NodeID,
		interval: interval,
		now:      clock,
		observer: observer,
	}
}

// Tick runs one sampling round. The raw sample is always persisted when the
// source and the store are reachable; the per-second sample only when the
// previous raw sample allows it. Failures are reported in the outcome.
func (h *Historian) Tick(ctx context.Context) domain.Outcome {
	return runTick(ctx, TaskHistorian, h.now, h.observer, h.tick)
}

func (h *Historian) tick(ctx context.Context, now float64) domain.Outcome {
	previous, err := h.repo.LatestRaw(ctx, now-2*h.interval.Seconds(), h.nodeID)
	if err != nil {
		return domain.Abandoned(TaskHistorian, now, "load previous raw sample", err)
	}

	figures, err := h.source.Current(ctx)
	if err != nil {
		return domain.Abandoned(TaskHistorian, now, "read runtime metrics", err)
	}

	raw := domain.NewRawSample(now, figures, h.nodeID)
	if err := h.repo.AppendRaw(ctx, raw); err != nil {
		return domain.Abandoned(TaskHistorian, now, "append raw sample", err)
	}

	if previous == nil {
		return domain.Skipped(TaskHistorian, now, domain.ErrNoPreviousSample)
	}

	perSecond, err := h.rates.Compute(raw, *previous)
	if err != nil {
		return domain.Skipped(TaskHistorian, now, err)
	}
	perSecond.NodeID = h.nodeID

	if err := h.repo.AppendPerSecond(ctx, perSecond); err != nil {
		return domain.Abandoned(TaskHistorian, now, "append per-second sample", err)
	}

	return domain.Written(TaskHistorian, now)
}

// runTick times a tick, turns a panic into an abandoned outcome and hands the
// outcome to the observer.
func runTick(ctx context.Context, task string, clock Clock, observer Observer, fn func(context.Context, float64) domain.Outcome) (outcome domain.Outcome) {
	started := time.Now()
	now := domain.Seconds(clock())

	defer func() {
		if r := recover(); r != nil {
			outcome = domain.Abandoned(task, now, "panic", fmt.Errorf("%v", r))
		}
		outcome.Duration = time.Since(started)
		observer.Observe(ctx, outcome)
	}()

	return fn(ctx, now)
}
