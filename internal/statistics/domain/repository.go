package domain

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned by Store.MostRecent when no record matches.
var ErrNotFound = errors.New("record not found")

// Kind names one of the three record collections.
type Kind string

const (
	KindRaw       Kind = "raw"
	KindPerSecond Kind = "perSecond"
	KindWindow    Kind = "window"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindRaw, KindPerSecond, KindWindow:
		return true
	}
	return false
}

// Record is a stored document with the fields the store indexes on.
type Record struct {
	ID     string
	Kind   Kind
	Time   float64
	NodeID string
	Body   json.RawMessage
}

// RecordFilters narrow a listing. Nil bounds are open; an empty NodeID
// matches every node.
type RecordFilters struct {
	NodeID string
	From   *float64
	To     *float64
	Limit  int
	Offset int
}

// Store is an append-only, time-indexed document store. An empty nodeID
// disables node filtering.
type Store interface {
	Append(ctx context.Context, record Record) error
	// MostRecent returns the newest record with time >= since, or ErrNotFound.
	MostRecent(ctx context.Context, kind Kind, since float64, nodeID string) (Record, error)
	// Since returns every record with time >= since in ascending time order.
	Since(ctx context.Context, kind Kind, since float64, nodeID string) ([]Record, error)
	// List returns records newest first.
	List(ctx context.Context, kind Kind, filters RecordFilters) ([]Record, error)
}

// Repository is the typed view of the store used by the historians.
type Repository interface {
	AppendRaw(ctx context.Context, sample RawSample) error
	AppendPerSecond(ctx context.Context, sample PerSecondSample) error
	AppendWindow(ctx context.Context, sample WindowSample) error

	// LatestRaw returns nil when no raw sample is at or after since.
	LatestRaw(ctx context.Context, since float64, nodeID string) (*RawSample, error)
	// LatestWindow returns nil when no window sample is at or after since.
	LatestWindow(ctx context.Context, since float64, nodeID string) (*WindowSample, error)
	PerSecondSince(ctx context.Context, since float64, nodeID string) ([]PerSecondSample, error)

	ListRaw(ctx context.Context, filters RecordFilters) ([]RawSample, error)
	ListPerSecond(ctx context.Context, filters RecordFilters) ([]PerSecondSample, error)
	ListWindow(ctx context.Context, filters RecordFilters) ([]WindowSample, error)
}

// MetricsSource reads the current runtime figures of the process.
type MetricsSource interface {
	Current(ctx context.Context) (Figures, error)
}

// Seconds converts a wall clock time to float seconds since the epoch.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}
