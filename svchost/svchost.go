// Package svchost runs the sync loop either as a plain foreground
// process or under the host's service manager, and owns the
// install/uninstall surface for the latter.
package svchost

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/aazevedo/nistsync/logger"
	"github.com/aazevedo/nistsync/syncer"
)

// RunMode selects how the process is hosted. Both modes wrap the same
// sync loop; only the stop-signal plumbing differs.
type RunMode int

const (
	// Foreground runs until the loop fails or the process receives
	// SIGINT/SIGTERM.
	Foreground RunMode = iota
	// ManagedService runs under the OS service manager, which delivers
	// stop and interrogate events.
	ManagedService
)

// Params holds configuration for hosting a syncer.
type Params struct {
	Syncer syncer.Syncer
	Logger logger.Logger
	// Name is the registered service name, only meaningful in
	// ManagedService mode.
	Name string
}

// InstallParams describes the service registration.
type InstallParams struct {
	Name        string
	DisplayName string
	Description string
	// Args are passed to the binary on every service start.
	Args []string
}

// Run hosts the syncer in the given mode.
func Run(mode RunMode, p Params) error {
	if mode == ManagedService {
		return runService(p)
	}
	return runForeground(p)
}

// Detect picks the run mode for the current process: ManagedService
// when started by the service manager, Foreground otherwise.
func Detect() (RunMode, error) {
	return detectMode()
}

func runForeground(p Params) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return p.Syncer.Run(ctx)
}
