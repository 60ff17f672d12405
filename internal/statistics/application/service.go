package application

import (
	"context"
	"sync"
	"time"

	"historian/internal/shared/logger"
	"historian/internal/statistics/domain"
)

// Ticker is a periodic statistics task.
type Ticker interface {
	Tick(ctx context.Context) domain.Outcome
}

type scheduledTask struct {
	name     string
	task     Ticker
	interval time.Duration
}

// Service runs the historians on their own intervals. Each task runs in its
// own goroutine, so a task never overlaps with itself but the two tasks may
// run concurrently.
type Service struct {
	logger logger.Logger
	tasks  []scheduledTask

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService creates a scheduler for the sampling and the window historian.
func NewService(logger logger.Logger, historian Ticker, samplingInterval time.Duration, average Ticker, windowInterval time.Duration) *Service {
	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		logger: logger,
		tasks: []scheduledTask{
			{name: TaskHistorian, task: historian, interval: samplingInterval},
			{name: TaskHistorianAverage, task: average, interval: windowInterval},
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start launches one loop per task. Calling Start twice is a no-op.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true

	for _, t := range s.tasks {
		s.logger.Info("Starting statistics task", "task", t.name, "interval", t.interval)
		s.wg.Add(1)
		go func(t scheduledTask) {
			defer s.wg.Done()
			s.run(t)
		}(t)
	}
}

// Stop cancels the loops and waits for a tick in progress to finish.
func (s *Service) Stop(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (s *Service) run(t scheduledTask) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.task.Tick(s.ctx)
		case <-s.ctx.Done():
			return
		}
	}
}
