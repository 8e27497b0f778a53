package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/metrics"
)

const (
	defaultInterval    = time.Minute
	defaultIdleTimeout = time.Hour
)

// Evicter drops sessions idle since before.
type Evicter interface {
	EvictIdle(before time.Time) int
}

// Sweeper evicts idle sessions on an interval.
type Sweeper struct {
	store    Evicter
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	idle     time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent activity of the sweep loop.
type Status struct {
	Sweeps       int
	LastSweep    time.Time
	LastEvicted  int
	TotalEvicted int
}

// New constructs a Sweeper with sane defaults.
func New(store Evicter, logger *slog.Logger, recorder *metrics.Recorder, interval, idle time.Duration) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	if idle <= 0 {
		idle = defaultIdleTimeout
	}
	return &Sweeper{
		store:    store,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		idle:     idle,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start sweeps until the context is cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) {
	s.startMu.Lock()
	if s.started {
		s.startMu.Unlock()
		return
	}
	s.started = true
	s.startMu.Unlock()

	s.ticker = time.NewTicker(s.interval)

	go func() {
		logging.Info(s.logger, "sweeper started",
			logging.FieldDurationMS, s.interval.Milliseconds(),
		)
		for {
			select {
			case <-ctx.Done():
				s.ticker.Stop()
				logging.Info(s.logger, "sweeper stopped")
				return
			case <-s.done:
				s.ticker.Stop()
				logging.Info(s.logger, "sweeper stopped")
				return
			case <-s.ticker.C:
				s.sweepOnce()
			}
		}
	}()
}

// Stop halts the sweep loop.
func (s *Sweeper) Stop(ctx context.Context) error {
	_ = ctx
	s.stopOnce.Do(func() {
		close(s.done)
	})
	return nil
}

func (s *Sweeper) sweepOnce() {
	start := time.Now()
	at := s.now()
	evicted := s.store.EvictIdle(at.Add(-s.idle))
	if s.metrics != nil {
		s.metrics.RecordSessionsEvicted(evicted, time.Since(start))
	}

	s.statusMu.Lock()
	s.status.Sweeps++
	s.status.LastSweep = at
	s.status.LastEvicted = evicted
	s.status.TotalEvicted += evicted
	s.statusMu.Unlock()

	if evicted > 0 {
		logging.Info(s.logger, "evicted idle sessions",
			logging.FieldCount, evicted,
			logging.FieldDurationMS, time.Since(start).Milliseconds(),
		)
	}
}

// Status returns a snapshot of the sweeper's recent activity.
func (s *Sweeper) Status() Status {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.status
}
