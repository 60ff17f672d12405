package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"historian/internal/statistics/domain"
	"historian/pkg/utils"
)

// SampleRepository implements domain.Repository on top of a kind-level store,
// encoding every sample as a JSON document.
type SampleRepository struct {
	store domain.Store
}

// NewSampleRepository wraps a store
func NewSampleRepository(store domain.Store) *SampleRepository {
	return &SampleRepository{store: store}
}

func (r *SampleRepository) AppendRaw(ctx context.Context, sample domain.RawSample) error {
	return r.append(ctx, domain.KindRaw, sample.Time, sample.NodeID, sample)
}

func (r *SampleRepository) AppendPerSecond(ctx context.Context, sample domain.PerSecondSample) error {
	return r.append(ctx, domain.KindPerSecond, sample.Time, sample.NodeID, sample)
}

func (r *SampleRepository) AppendWindow(ctx context.Context, sample domain.WindowSample) error {
	return r.append(ctx, domain.KindWindow, sample.Time, sample.NodeID, sample)
}

func (r *SampleRepository) LatestRaw(ctx context.Context, since float64, nodeID string) (*domain.RawSample, error) {
	return latest[domain.RawSample](ctx, r.store, domain.KindRaw, since, nodeID)
}

func (r *SampleRepository) LatestWindow(ctx context.Context, since float64, nodeID string) (*domain.WindowSample, error) {
	return latest[domain.WindowSample](ctx, r.store, domain.KindWindow, since, nodeID)
}

func (r *SampleRepository) PerSecondSince(ctx context.Context, since float64, nodeID string) ([]domain.PerSecondSample, error) {
	records, err := r.store.Since(ctx, domain.KindPerSecond, since, nodeID)
	if err != nil {
		return nil, err
	}
	return decodeAll[domain.PerSecondSample](records)
}

func (r *SampleRepository) ListRaw(ctx context.Context, filters domain.RecordFilters) ([]domain.RawSample, error) {
	return list[domain.RawSample](ctx, r.store, domain.KindRaw, filters)
}

func (r *SampleRepository) ListPerSecond(ctx context.Context, filters domain.RecordFilters) ([]domain.PerSecondSample, error) {
	return list[domain.PerSecondSample](ctx, r.store, domain.KindPerSecond, filters)
}

func (r *SampleRepository) ListWindow(ctx context.Context, filters domain.RecordFilters) ([]domain.WindowSample, error) {
	return list[domain.WindowSample](ctx, r.store, domain.KindWindow, filters)
}

func (r *SampleRepository) append(ctx context.Context, kind domain.Kind, at float64, nodeID string, sample any) error {
	body, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to encode %s sample: %w", kind, err)
	}

	return r.store.Append(ctx, domain.Record{
		ID:     utils.NewRecordID(),
		Kind:   kind,
		Time:   at,
		NodeID: nodeID,
		Body:   body,
	})
}

func latest[T any](ctx context.Context, store domain.Store, kind domain.Kind, since float64, nodeID string) (*T, error) {
	record, err := store.MostRecent(ctx, kind, since, nodeID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var sample T
	if err := json.Unmarshal(record.Body, &sample); err != nil {
		return nil, fmt.Errorf("failed to decode %s record %s: %w", kind, record.ID, err)
	}
	return &sample, nil
}

func list[T any](ctx context.Context, store domain.Store, kind domain.Kind, filters domain.RecordFilters) ([]T, error) {
	records, err := store.List(ctx, kind, filters)
	if err != nil {
		return nil, err
	}
	return decodeAll[T](records)
}

func decodeAll[T any](records []domain.Record) ([]T, error) {
	samples := make([]T, 0, len(records))
	for _, record := range records {
		var sample T
		if err := json.Unmarshal(record.Body, &sample); err != nil {
			return nil, fmt.Errorf("failed to decode %s record %s: %w", record.Kind, record.ID, err)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}
