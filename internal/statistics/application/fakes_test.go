package application

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"historian/internal/statistics/domain"
)

// memoryStore is an in-memory implementation of domain.Store
type memoryStore struct {
	mu      sync.Mutex
	records map[domain.Kind][]domain.Record

	appendErr     map[domain.Kind]error
	mostRecentErr error
	sinceErr      error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		records:   make(map[domain.Kind][]domain.Record),
		appendErr: make(map[domain.Kind]error),
	}
}

func (m *memoryStore) Append(ctx context.Context, record domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.appendErr[record.Kind]; err != nil {
		return err
	}
	m.records[record.Kind] = append(m.records[record.Kind], record)
	return nil
}

func (m *memoryStore) MostRecent(ctx context.Context, kind domain.Kind, since float64, nodeID string) (domain.Record, error) {
	if m.mostRecentErr != nil {
		return domain.Record{}, m.mostRecentErr
	}

	matches := m.matching(kind, since, nodeID)
	if len(matches) == 0 {
		return domain.Record{}, domain.ErrNotFound
	}
	return matches[len(matches)-1], nil
}

func (m *memoryStore) Since(ctx context.Context, kind domain.Kind, since float64, nodeID string) ([]domain.Record, error) {
	if m.sinceErr != nil {
		return nil, m.sinceErr
	}
	return m.matching(kind, since, nodeID), nil
}

func (m *memoryStore) List(ctx context.Context, kind domain.Kind, filters domain.RecordFilters) ([]domain.Record, error) {
	since := -1.0
	if filters.From != nil {
		since = *filters.From
	}

	matches := m.matching(kind, since, filters.NodeID)
	result := make([]domain.Record, 0, len(matches))
	for i := len(matches) - 1; i >= 0; i-- {
		if filters.To != nil && matches[i].Time > *filters.To {
			continue
		}
		result = append(result, matches[i])
	}

	if filters.Offset > len(result) {
		return nil, nil
	}
	result = result[filters.Offset:]
	if filters.Limit > 0 && filters.Limit < len(result) {
		result = result[:filters.Limit]
	}
	return result, nil
}

func (m *memoryStore) matching(kind domain.Kind, since float64, nodeID string) []domain.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matches []domain.Record
	for _, r := range m.records[kind] {
		if r.Time < since {
			continue
		}
		if nodeID != "" && r.NodeID != nodeID {
			continue
		}
		matches = append(matches, r)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Time < matches[j].Time })
	return matches
}

func (m *memoryStore) count(kind domain.Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records[kind])
}

// fakeSource returns fixed figures, an error, or panics
type fakeSource struct {
	figures domain.Figures
	err     error
	panic   bool
}

func (s *fakeSource) Current(ctx context.Context) (domain.Figures, error) {
	if s.panic {
		panic("source exploded")
	}
	if s.err != nil {
		return domain.Figures{}, s.err
	}
	return s.figures, nil
}

type fakeClock struct {
	now time.Time
}

func newFakeClock(sec int64) *fakeClock {
	return &fakeClock{now: time.Unix(sec, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// recordingObserver keeps every outcome it sees
type recordingObserver struct {
	mu       sync.Mutex
	outcomes []domain.Outcome
}

func (o *recordingObserver) Observe(ctx context.Context, outcome domain.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

// recordingLogger implements the shared logger interface
type recordingLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *recordingLogger) log(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fmt.Sprintf("%s %s %v", level, msg, args))
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.log("DEBUG", msg, args...) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.log("INFO", msg, args...) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.log("WARN", msg, args...) }
func (l *recordingLogger) Error(msg string, args ...any) { l.log("ERROR", msg, args...) }
