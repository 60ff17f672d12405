package application

import (
	"context"
	"time"

	"historian/internal/statistics/domain"
)

// HistorianAverage folds the per-second samples since the last window into a
// new window sample.
type HistorianAverage struct {
	repo     domain.Repository
	nodeID   string
	interval time.Duration
	now      Clock
	observer Observer
}

// NewHistorianAverage creates the window historian. A zero interval uses
// domain.DefaultWindowInterval; observer may be nil.
func NewHistorianAverage(repo domain.Repository, nodeID string, interval time.Duration, clock Clock, observer Observer) *HistorianAverage {
	if interval <= 0 {
		interval = domain.DefaultWindowInterval
	}
	if clock == nil {
		clock = time.Now
	}
	if observer == nil {
		observer = Observers{}
	}

	return &HistorianAverage{
		repo:     repo,
		nodeID:   nodeID,
		interval: interval,
		now:      clock,
		observer: observer,
	}
}

// Tick runs one windowing round.
func (h *HistorianAverage) Tick(ctx context.Context) domain.Outcome {
	return runTick(ctx, TaskHistorianAverage, h.now, h.observer, h.tick)
}

func (h *HistorianAverage) tick(ctx context.Context, now float64) domain.Outcome {
	window := h.interval.Seconds()

	previous, err := h.repo.LatestWindow(ctx, now-2*window, h.nodeID)
	if err != nil {
		return domain.Abandoned(TaskHistorianAverage, now, "load previous window", err)
	}

	since := now - window
	if previous != nil {
		since = previous.Time
	}

	samples, err := h.repo.PerSecondSince(ctx, since, h.nodeID)
	if err != nil {
		return domain.Abandoned(TaskHistorianAverage, now, "load per-second samples", err)
	}

	sample, ok := domain.ComputeWindow(samples, since)
	if !ok {
		return domain.Skipped(TaskHistorianAverage, now, domain.ErrEmptyWindow)
	}
	sample.NodeID = h.nodeID

	if err := h.repo.AppendWindow(ctx, sample); err != nil {
		return domain.Abandoned(TaskHistorianAverage, now, "append window sample", err)
	}

	return domain.Written(TaskHistorianAverage, now)
}
