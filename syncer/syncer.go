// Package syncer drives the fetch-parse-apply cycle against the time
// source on a fixed cadence.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aazevedo/nistsync/clock"
	"github.com/aazevedo/nistsync/daytime"
	"github.com/aazevedo/nistsync/logger"
	"github.com/aazevedo/nistsync/sysclock"
)

// MinInterval is the shortest allowed sync cadence. Anything below a
// minute is a configuration error, rejected before the loop starts.
const MinInterval = time.Minute

// Syncer runs sync cycles until it fails or its context is cancelled.
type Syncer interface {
	Run(ctx context.Context) error
}

var _ Syncer = (*DefaultSyncer)(nil)

// DefaultSyncer alternates between a Sync phase (one fetch-parse-apply
// cycle) and a Sleep phase. The next wake is anchored at the
// authoritative instant just fetched, not at the local clock, so skew
// accumulated before a sync never shifts the cadence.
type DefaultSyncer struct {
	client   daytime.Client
	setter   sysclock.Setter
	interval time.Duration
	clock    clock.Clock
	logger   logger.Logger
}

// Params holds configuration for creating a new Syncer.
type Params struct {
	Client   daytime.Client
	Setter   sysclock.Setter
	Interval time.Duration
	Clock    clock.Clock
	Logger   logger.Logger
}

// New creates a new DefaultSyncer with the given parameters.
func New(p Params) (*DefaultSyncer, error) {
	if p.Client == nil {
		return nil, errors.New("syncer: daytime client is required")
	}
	if p.Setter == nil {
		return nil, errors.New("syncer: clock setter is required")
	}
	if p.Interval < MinInterval {
		return nil, fmt.Errorf("syncer: interval must be at least %s, got %s", MinInterval, p.Interval)
	}
	if p.Clock == nil {
		p.Clock = clock.System()
	}
	if p.Logger == nil {
		p.Logger = logger.NewNop()
	}

	return &DefaultSyncer{
		client:   p.Client,
		setter:   p.Setter,
		interval: p.Interval,
		clock:    p.Clock,
		logger:   p.Logger,
	}, nil
}

// Run syncs immediately, then once per interval, until ctx is cancelled
// (returns nil) or a cycle fails (returns the error). Every failure is
// terminal: a broken network, a bad upstream, or missing privilege will
// not heal by retrying every minute, and silent retries would mask the
// problem from the operator.
func (s *DefaultSyncer) Run(ctx context.Context) error {
	for {
		instant, err := s.syncOnce()
		if err != nil {
			s.logger.ErrorW("sync failed", "error", err)
			return err
		}
		s.logger.InfoW("system clock set",
			"instant", instant.Format(time.RFC3339Nano),
			"next_sync", instant.Add(s.interval).Format(time.RFC3339))

		timer := time.NewTimer(s.nextWait(instant))
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			s.logger.InfoW("stop requested, leaving sync loop")
			return nil
		}
	}
}

// syncOnce performs one fetch-parse-apply cycle. The cycle itself is
// never cancelled; a stop request is observed at the sleep boundary.
// Both network calls are bounded by the client's own deadlines.
func (s *DefaultSyncer) syncOnce() (time.Time, error) {
	reply, err := s.client.Fetch(context.Background())
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch authoritative time: %w", err)
	}

	instant, err := daytime.Parse(reply)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time reply: %w", err)
	}

	if err = s.setter.Set(instant); err != nil {
		var permErr *sysclock.PermissionError
		if errors.As(err, &permErr) {
			return time.Time{}, fmt.Errorf("set system clock: %w (re-run with elevated privileges)", err)
		}
		return time.Time{}, fmt.Errorf("set system clock: %w", err)
	}

	return instant, nil
}

// nextWait returns how long to sleep so the next sync lands at
// instant + interval of authoritative time, however long the sync
// cycle itself took.
func (s *DefaultSyncer) nextWait(instant time.Time) time.Duration {
	wait := instant.Add(s.interval).Sub(s.clock.Now())
	if wait < 0 {
		wait = 0
	}
	return wait
}
