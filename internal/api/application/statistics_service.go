package application

import (
	"context"

	configdomain "historian/internal/config/domain"
	statsdomain "historian/internal/statistics/domain"
)

// StatisticsService handles statistics history queries
type StatisticsService struct {
	repo     statsdomain.Repository
	settings SettingsResponse
}

// NewStatisticsService creates a new statistics service
func NewStatisticsService(repo statsdomain.Repository, cfg configdomain.StatisticsConfig) *StatisticsService {
	return &StatisticsService{
		repo:     repo,
		settings: ToSettingsResponse(cfg),
	}
}

// ListRaw returns raw samples newest first
func (s *StatisticsService) ListRaw(ctx context.Context, req ListStatisticsRequest) ([]statsdomain.RawSample, error) {
	samples, err := s.repo.ListRaw(ctx, toFilters(req))
	return nonNil(samples), err
}

// ListPerSecond returns per-second samples newest first
func (s *StatisticsService) ListPerSecond(ctx context.Context, req ListStatisticsRequest) ([]statsdomain.PerSecondSample, error) {
	samples, err := s.repo.ListPerSecond(ctx, toFilters(req))
	return nonNil(samples), err
}

// ListWindow returns window samples newest first
func (s *StatisticsService) ListWindow(ctx context.Context, req ListStatisticsRequest) ([]statsdomain.WindowSample, error) {
	samples, err := s.repo.ListWindow(ctx, toFilters(req))
	return nonNil(samples), err
}

// Settings returns the sampling settings
func (s *StatisticsService) Settings() SettingsResponse {
	return s.settings
}

func toFilters(req ListStatisticsRequest) statsdomain.RecordFilters {
	filters := statsdomain.RecordFilters{
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.NodeID != nil {
		filters.NodeID = *req.NodeID
	}

	if filters.Limit <= 0 {
		filters.Limit = DefaultListLimit
	}
	if filters.Limit > MaxListLimit {
		filters.Limit = MaxListLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return filters
}

// nonNil keeps empty results encoding as [] rather than null
func nonNil[T any](samples []T) []T {
	if samples == nil {
		return []T{}
	}
	return samples
}
