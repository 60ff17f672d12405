package application

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"historian/internal/statistics/domain"
)

func seedPerSecond(t *testing.T, repo *SampleRepository, nodeID string, points map[float64]float64) {
	t.Helper()
	for at, rps := range points {
		sample := domain.PerSecondSample{Time: at, NodeID: nodeID}
		sample.HTTP.RequestsTotalPerSecond = rps
		if err := repo.AppendPerSecond(context.Background(), sample); err != nil {
			t.Fatalf("failed to seed per-second sample: %v", err)
		}
	}
}

func TestHistorianAverage_FirstWindow(t *testing.T) {
	store := newMemoryStore()
	repo := NewSampleRepository(store)
	clock := newFakeClock(10000)

	seedPerSecond(t, repo, "", map[float64]float64{
		9000: 100, // before the window
		9200: 2,
		9500: 4,
		9990: 6,
	})

	h := NewHistorianAverage(repo, "", 15*time.Minute, clock.Now, nil)
	outcome := h.Tick(context.Background())
	if outcome.Status != domain.StatusWritten {
		t.Fatalf("expected written, got %s (%s)", outcome.Status, outcome.Reason)
	}

	windows, err := repo.ListWindow(context.Background(), domain.RecordFilters{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(windows) != 1 {
		t.Fatalf("expected 1 window, got %d", len(windows))
	}
	if math.Abs(windows[0].HTTP.RequestsTotalPerSecond-4) > 1e-9 {
		t.Errorf("expected average of 4, got %v", windows[0].HTTP.RequestsTotalPerSecond)
	}
	if windows[0].Time != 9990 {
		t.Errorf("expected time of the last sample, got %v", windows[0].Time)
	}
}

func TestHistorianAverage_ContinuesFromPreviousWindow(t *testing.T) {
	store := newMemoryStore()
	repo := NewSampleRepository(store)
	clock := newFakeClock(10000)

	if err := repo.AppendWindow(context.Background(), domain.WindowSample{Time: 9500, NodeID: "node-a"}); err != nil {
		t.Fatalf("failed to seed window: %v", err)
	}
	seedPerSecond(t, repo, "node-a", map[float64]float64{
		9400: 100,
		9500: 10,
		9990: 20,
	})
	seedPerSecond(t, repo, "node-b", map[float64]float64{
		9800: 1000,
	})

	h := NewHistorianAverage(repo, "node-a", 15*time.Minute, clock.Now, nil)
	outcome := h.Tick(context.Background())
	if outcome.Status != domain.StatusWritten {
		t.Fatalf("expected written, got %s (%s)", outcome.Status, outcome.Reason)
	}

	latest, err := repo.LatestWindow(context.Background(), 9600, "node-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if latest == nil {
		t.Fatal("expected a new window")
	}
	if latest.HTTP.RequestsTotalPerSecond != 15 {
		t.Errorf("expected the boundary sample to be folded in, got average %v", latest.HTTP.RequestsTotalPerSecond)
	}
	if latest.NodeID != "node-a" {
		t.Errorf("expected node-a, got %q", latest.NodeID)
	}
}

func TestHistorianAverage_EmptyWindowSkips(t *testing.T) {
	store := newMemoryStore()
	repo := NewSampleRepository(store)
	clock := newFakeClock(10000)

	seedPerSecond(t, repo, "", map[float64]float64{8000: 1})

	h := NewHistorianAverage(repo, "", 15*time.Minute, clock.Now, nil)
	outcome := h.Tick(context.Background())

	if outcome.Status != domain.StatusSkipped {
		t.Fatalf("expected skipped, got %s", outcome.Status)
	}
	if outcome.Reason != domain.ErrEmptyWindow.Error() {
		t.Errorf("expected empty window reason, got %q", outcome.Reason)
	}
	if store.count(domain.KindWindow) != 0 {
		t.Errorf("expected no window record, got %d", store.count(domain.KindWindow))
	}
}

func TestHistorianAverage_Abandons(t *testing.T) {
	storeErr := errors.New("store unavailable")

	tests := []struct {
		name         string
		setup        func(store *memoryStore)
		expectedStep string
	}{
		{
			name:         "previous window lookup fails",
			setup:        func(store *memoryStore) { store.mostRecentErr = storeErr },
			expectedStep: "load previous window",
		},
		{
			name:         "per-second query fails",
			setup:        func(store *memoryStore) { store.sinceErr = storeErr },
			expectedStep: "load per-second samples",
		},
		{
			name:         "window append fails",
			setup:        func(store *memoryStore) { store.appendErr[domain.KindWindow] = storeErr },
			expectedStep: "append window sample",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore()
			repo := NewSampleRepository(store)
			clock := newFakeClock(10000)
			seedPerSecond(t, repo, "", map[float64]float64{9990: 1})
			tt.setup(store)

			h := NewHistorianAverage(repo, "", 15*time.Minute, clock.Now, nil)
			outcome := h.Tick(context.Background())

			if outcome.Status != domain.StatusAbandoned {
				t.Fatalf("expected abandoned, got %s", outcome.Status)
			}
			if outcome.Reason != tt.expectedStep {
				t.Errorf("expected step %q, got %q", tt.expectedStep, outcome.Reason)
			}
			if !errors.Is(outcome.Err, storeErr) {
				t.Errorf("expected store error, got %v", outcome.Err)
			}
		})
	}
}

func TestHistorianAverage_DefaultInterval(t *testing.T) {
	h := NewHistorianAverage(NewSampleRepository(newMemoryStore()), "", 0, nil, nil)
	if h.interval != domain.DefaultWindowInterval {
		t.Errorf("expected default interval, got %v", h.interval)
	}
}
