package infrastructure

import (
	"context"
	"time"

	"historian/internal/statistics/domain"
)

// RuntimeSource implements domain.MetricsSource for the running server.
// Uptime counts from the creation of the source.
type RuntimeSource struct {
	system   domain.SystemReader
	requests *RequestStatistics
	started  time.Time
	now      func() time.Time
}

// NewRuntimeSource combines the process reader with the request statistics.
// A nil clock uses time.Now.
func NewRuntimeSource(system domain.SystemReader, requests *RequestStatistics, clock func() time.Time) *RuntimeSource {
	if clock == nil {
		clock = time.Now
	}
	return &RuntimeSource{
		system:   system,
		requests: requests,
		started:  clock(),
		now:      clock,
	}
}

// Current reads the process figures and snapshots the request statistics
func (s *RuntimeSource) Current(ctx context.Context) (domain.Figures, error) {
	system, err := s.system.ReadSystem(ctx)
	if err != nil {
		return domain.Figures{}, err
	}

	httpFigures, clientFigures := s.requests.Snapshot()

	return domain.Figures{
		System: system,
		HTTP:   httpFigures,
		Client: clientFigures,
		Server: domain.ServerFigures{Uptime: s.now().Sub(s.started).Seconds()},
	}, nil
}
