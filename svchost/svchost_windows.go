//go:build windows

package svchost

import (
	"context"
	"fmt"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
)

func detectMode() (RunMode, error) {
	isService, err := svc.IsWindowsService()
	if err != nil {
		return Foreground, fmt.Errorf("detect service session: %w", err)
	}
	if isService {
		return ManagedService, nil
	}
	return Foreground, nil
}

// runService hands control to the service control manager. svc.Run
// reports Stopped on our behalf exactly once when Execute returns,
// including error paths, so the SCM never sees the service as hung.
func runService(p Params) error {
	elog, err := eventlog.Open(p.Name)
	if err == nil {
		defer elog.Close()
	}

	h := &handler{params: p, elog: elog}
	if err := svc.Run(p.Name, h); err != nil {
		return fmt.Errorf("run service %s: %w", p.Name, err)
	}
	if h.fatal != nil {
		return h.fatal
	}
	return nil
}

type handler struct {
	params Params
	elog   *eventlog.Log
	fatal  error
}

func (h *handler) Execute(args []string, requests <-chan svc.ChangeRequest, status chan<- svc.Status) (ssec bool, errno uint32) {
	const accepted = svc.AcceptStop | svc.AcceptShutdown

	status <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- h.params.Syncer.Run(ctx) }()

	status <- svc.Status{State: svc.Running, Accepts: accepted}

loop:
	for {
		select {
		case err := <-done:
			status <- svc.Status{State: svc.StopPending}
			if err != nil {
				h.fatal = err
				h.logFatal(err)
				ssec, errno = true, 1
			}
			break loop
		case req := <-requests:
			switch req.Cmd {
			case svc.Interrogate:
				status <- req.CurrentStatus
			case svc.Stop, svc.Shutdown:
				status <- svc.Status{State: svc.StopPending}
				cancel()
				// The sleep phase observes the cancel on its next select,
				// so this returns promptly rather than after the interval.
				<-done
				break loop
			}
		}
	}

	return ssec, errno
}

func (h *handler) logFatal(err error) {
	if h.params.Logger != nil {
		h.params.Logger.ErrorW("service stopping after fatal sync error", "error", err)
	}
	if h.elog != nil {
		_ = h.elog.Error(1, err.Error())
	}
}
