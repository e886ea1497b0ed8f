package workers

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/MKhiriev/post-board/internal/logger"
)

// SweepWorker periodically drops expired rate limit windows so that the
// in-memory counter stores stay bounded by the number of recently active
// clients.
type SweepWorker struct {
	stores   map[string]Sweeper
	interval time.Duration
	reporter SizeReporter
	now      func() time.Time
	logger   *logger.Logger
}

// NewSweepWorker returns a worker sweeping stores every interval. The map
// key names the store in logs and metrics. reporter may be nil.
func NewSweepWorker(stores map[string]Sweeper, interval time.Duration, reporter SizeReporter, log *logger.Logger) *SweepWorker {
	return &SweepWorker{
		stores:   stores,
		interval: interval,
		reporter: reporter,
		now:      time.Now,
		logger:   log,
	}
}

func (s *SweepWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("interval", s.interval).Msg("rate limit sweeper started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("rate limit sweeper stopped")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *SweepWorker) sweep() {
	now := s.now()

	for _, name := range slices.Sorted(maps.Keys(s.stores)) {
		store := s.stores[name]

		removed := store.Sweep(now)
		left := store.Len()
		if s.reporter != nil {
			s.reporter.SetStoreKeys(name, left)
		}

		if removed > 0 {
			s.logger.Debug().Str("store", name).Int("removed", removed).Int("left", left).Msg("expired windows swept")
		}
	}
}
