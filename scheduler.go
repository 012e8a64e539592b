package zoompan

import (
	"context"
	"sync"
	"time"
)

// Renderer consumes one transform per tick. It applies the transform before
// drawing scene content and restores its own drawing state afterwards.
type Renderer interface {
	Present(t Transform)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(t Transform)

// Present calls f.
func (f RendererFunc) Present(t Transform) { f(t) }

// SchedulerStats summarizes the ticks a Scheduler has run.
type SchedulerStats struct {
	Ticks    uint64        // completed ticks
	Skipped  uint64        // ticks dropped because the previous one overran
	LastTick time.Duration // duration of the most recent tick
	MaxTick  time.Duration // longest tick so far
}

// Scheduler drives an Engine at a fixed period, independent of how often
// input arrives, and hands every result to a Renderer. Ticks run on a single
// goroutine and never overlap; a tick that comes due while the previous one
// is still running is skipped, not queued.
type Scheduler struct {
	engine   *Engine
	renderer Renderer
	period   time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	statsMu sync.Mutex
	stats   SchedulerStats
}

// NewScheduler returns a stopped scheduler. A non-positive period uses the
// engine's Config.TickPeriod. r may be nil.
func NewScheduler(e *Engine, r Renderer, period time.Duration) *Scheduler {
	if period <= 0 {
		period = e.Config().TickPeriod
	}
	return &Scheduler{engine: e, renderer: r, period: period}
}

// Period returns the tick period.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// Run ticks until ctx is done and then returns nil. It blocks; use Start to
// run it in the background.
func (s *Scheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.period)
	defer ticker.Stop()
	defer s.debugLogStats()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.runTick(ticker)
		}
	}
}

// runTick performs one tick and presents its result. If the tick took a
// full period or longer, the tick that came due meanwhile is dropped.
func (s *Scheduler) runTick(ticker *time.Ticker) {
	start := time.Now()
	t, ok := s.engine.Tick()
	if !ok {
		s.addSkipped()
		return
	}
	if s.renderer != nil {
		s.renderer.Present(t)
	}
	elapsed := time.Since(start)

	s.statsMu.Lock()
	s.stats.Ticks++
	s.stats.LastTick = elapsed
	if elapsed > s.stats.MaxTick {
		s.stats.MaxTick = elapsed
	}
	s.statsMu.Unlock()

	if elapsed >= s.period {
		select {
		case <-ticker.C:
			s.addSkipped()
		default:
		}
	}
}

func (s *Scheduler) addSkipped() {
	s.statsMu.Lock()
	s.stats.Skipped++
	s.statsMu.Unlock()
}

// Start runs the scheduler on a new goroutine. It is a no-op if the
// scheduler is already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()
}

// Stop halts a scheduler started with Start and waits until no further tick
// can be dispatched. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a Start-ed loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}

// Stats returns a copy of the tick counters.
func (s *Scheduler) Stats() SchedulerStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()
	return s.stats
}
