package application

import (
	"context"
	"reflect"
	"testing"

	"historian/internal/statistics/domain"
)

func TestSampleRepository_LatestRawEmpty(t *testing.T) {
	repo := NewSampleRepository(newMemoryStore())

	got, err := repo.LatestRaw(context.Background(), 0, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil sample, got %+v", got)
	}
}

func TestSampleRepository_RawRoundTrip(t *testing.T) {
	store := newMemoryStore()
	repo := NewSampleRepository(store)

	sample := domain.RawSample{
		Time:   1234.5,
		System: domain.SystemFigures{MinorPageFaults: 3, UserTime: 0.25},
		HTTP:   domain.HTTPFigures{RequestsTotal: 7, RequestsGet: 7},
		Client: domain.ClientFigures{
			HTTPConnections: 2,
			RequestTime:     domain.Accumulator{Sum: 0.3, Count: 7, Counts: []int64{1, 2, 4, 0, 0, 0, 0}},
		},
		Server: domain.ServerFigures{Uptime: 99},
		NodeID: "node-a",
	}

	if err := repo.AppendRaw(context.Background(), sample); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := store.records[domain.KindRaw][0]
	if record.ID == "" {
		t.Error("expected a record id")
	}
	if record.Time != sample.Time || record.NodeID != "node-a" {
		t.Errorf("expected index fields to match the sample, got %+v", record)
	}

	got, err := repo.LatestRaw(context.Background(), 1000, "node-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !reflect.DeepEqual(*got, sample) {
		t.Errorf("expected %+v, got %+v", sample, got)
	}
}

func TestSampleRepository_DecodeError(t *testing.T) {
	store := newMemoryStore()
	store.records[domain.KindWindow] = []domain.Record{{ID: "bad", Kind: domain.KindWindow, Time: 1, Body: []byte("{")}}
	repo := NewSampleRepository(store)

	if _, err := repo.LatestWindow(context.Background(), 0, ""); err == nil {
		t.Error("expected decode error")
	}
	if _, err := repo.ListWindow(context.Background(), domain.RecordFilters{}); err == nil {
		t.Error("expected decode error from list")
	}
}

func TestSampleRepository_ListNewestFirst(t *testing.T) {
	repo := NewSampleRepository(newMemoryStore())
	for _, at := range []float64{10, 30, 20} {
		if err := repo.AppendWindow(context.Background(), domain.WindowSample{Time: at}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	got, err := repo.ListWindow(context.Background(), domain.RecordFilters{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Time != 30 || got[1].Time != 20 {
		t.Errorf("expected [30 20], got %+v", got)
	}
}
