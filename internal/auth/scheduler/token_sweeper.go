package scheduler

import (
	"context"
	"log"
	"time"

	"cryptnote-backend/pkg/metrics"
)

// ExpiredDeleter removes records whose expiry is at or before now.
type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// TokenSweeper periodically evicts expired reset tokens and OTP codes. Reads
// already ignore expired rows; the sweep only keeps the tables small.
type TokenSweeper struct {
	stores   map[string]ExpiredDeleter
	interval time.Duration
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewTokenSweeper creates a sweeper over the named stores.
func NewTokenSweeper(resetTokens, otpTokens ExpiredDeleter, interval time.Duration, rec metrics.Recorder) *TokenSweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &TokenSweeper{
		stores: map[string]ExpiredDeleter{
			"reset_token": resetTokens,
			"otp":         otpTokens,
		},
		interval: interval,
		metrics:  rec,
		now:      time.Now,
	}
}

// Run sweeps immediately and then on every tick until ctx is cancelled.
func (s *TokenSweeper) Run(ctx context.Context) error {
	log.Printf("[TokenSweeper] Starting token sweeper (interval: %s)", s.interval)

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(ctx)
		case <-ctx.Done():
			log.Println("[TokenSweeper] Sweeper stopped")
			return nil
		}
	}
}

// Sweep runs one eviction pass and returns the number of rows removed per kind.
func (s *TokenSweeper) Sweep(ctx context.Context) map[string]int64 {
	now := s.now()
	removed := make(map[string]int64, len(s.stores))

	for kind, store := range s.stores {
		n, err := store.DeleteExpired(ctx, now)
		if err != nil {
			log.Printf("[TokenSweeper] Error deleting expired %s records: %v", kind, err)
			continue
		}
		removed[kind] = n
		if n > 0 {
			s.metrics.RecordTokensEvicted(kind, n)
			log.Printf("[TokenSweeper] Removed %d expired %s records", n, kind)
		}
	}
	return removed
}
