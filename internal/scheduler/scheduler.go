// Package scheduler runs named periodic tasks under one supervised loop.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Task is one unit of periodic work. A returned error is logged and the
// period continues.
type Task func(ctx context.Context) error

type job struct {
	name   string
	period time.Duration
	task   Task
}

// Scheduler owns a set of periodic jobs. Jobs are registered before Run.
type Scheduler struct {
	logger *zap.SugaredLogger

	mu      sync.Mutex
	jobs    []job
	running bool
	stop    chan struct{}
	once    sync.Once
}

// New creates an empty scheduler.
func New(logger *zap.SugaredLogger) *Scheduler {
	return &Scheduler{logger: logger, stop: make(chan struct{})}
}

// Every registers task to run immediately on Run and then once per period.
func (s *Scheduler) Every(name string, period time.Duration, task Task) error {
	if period <= 0 {
		return errors.New("scheduler: period must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("scheduler: already running")
	}
	s.jobs = append(s.jobs, job{name: name, period: period, task: task})
	return nil
}

// Run blocks until ctx is done or Stop is called.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("scheduler: already running")
	}
	s.running = true
	jobs := append([]job(nil), s.jobs...)
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			s.loop(gctx, j)
			return nil
		})
	}
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, j job) {
	s.logger.Debugw("periodic task started", "task", j.name, "period", j.period)
	ticker := time.NewTicker(j.period)
	defer ticker.Stop()

	for {
		s.runOnce(ctx, j)
		select {
		case <-ctx.Done():
			s.logger.Debugw("periodic task stopped", "task", j.name)
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, j job) {
	if ctx.Err() != nil {
		return
	}
	if err := j.task(ctx); err != nil {
		s.logger.Errorw("periodic task failed", "task", j.name, "error", err)
	}
}

// Stop ends Run. Safe to call more than once and before Run.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.stop) })
}
