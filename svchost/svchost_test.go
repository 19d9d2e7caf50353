package svchost

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSyncer struct {
	err error
	// block, when set, ignores err and runs until ctx is cancelled.
	block bool
}

func (f *fakeSyncer) Run(ctx context.Context) error {
	if f.block {
		<-ctx.Done()
		return nil
	}
	return f.err
}

func TestRunForeground_PropagatesSyncError(t *testing.T) {
	fatal := errors.New("fetch authoritative time: connect refused")

	err := Run(Foreground, Params{Syncer: &fakeSyncer{err: fatal}})
	if !errors.Is(err, fatal) {
		t.Fatalf("Run() = %v, want %v", err, fatal)
	}
}

func TestRunForeground_CleanExit(t *testing.T) {
	if err := Run(Foreground, Params{Syncer: &fakeSyncer{}}); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
}

func TestRunForeground_ReturnsOnceSyncerStops(t *testing.T) {
	done := make(chan error, 1)
	s := &fakeSyncer{err: errors.New("boom")}
	go func() { done <- Run(Foreground, Params{Syncer: s}) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("Run() = nil, want the syncer's error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after the syncer stopped")
	}
}
