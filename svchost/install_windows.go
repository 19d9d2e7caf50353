//go:build windows

package svchost

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/eventlog"
	"golang.org/x/sys/windows/svc/mgr"
)

// stopWait bounds how long Uninstall waits for a running service to
// reach Stopped before deleting it.
const stopWait = 10 * time.Second

// Install registers the current binary with the service control
// manager, auto-start, and starts it. The network stack dependencies
// keep the first sync from racing DHCP/DNS at boot.
func Install(p InstallParams) error {
	exepath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	m, err := mgr.Connect()
	if err != nil {
		return connectErr(err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(p.Name)
	if err == nil {
		s.Close()
		return fmt.Errorf("service %s is already installed", p.Name)
	}

	cfg := mgr.Config{
		DisplayName:  p.DisplayName,
		Description:  p.Description,
		StartType:    mgr.StartAutomatic,
		Dependencies: []string{"Tcpip", "Dhcp", "Dnscache"},
	}
	s, err = m.CreateService(p.Name, exepath, cfg, p.Args...)
	if err != nil {
		return fmt.Errorf("create service %s: %w", p.Name, err)
	}
	defer s.Close()

	if err = eventlog.InstallAsEventCreate(p.Name, eventlog.Error|eventlog.Warning|eventlog.Info); err != nil {
		_ = s.Delete()
		return fmt.Errorf("register event source: %w", err)
	}

	if err = s.Start(); err != nil {
		return fmt.Errorf("service installed but failed to start: %w", err)
	}
	return nil
}

// Uninstall stops the service if it is running, then removes it and its
// event source.
func Uninstall(name string) error {
	m, err := mgr.Connect()
	if err != nil {
		return connectErr(err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return fmt.Errorf("service %s is not installed", name)
	}
	defer s.Close()

	st, err := s.Query()
	if err == nil && st.State != svc.Stopped {
		if _, err = s.Control(svc.Stop); err != nil {
			return fmt.Errorf("stop service %s: %w", name, err)
		}
		deadline := time.Now().Add(stopWait)
		for st.State != svc.Stopped {
			if time.Now().After(deadline) {
				return fmt.Errorf("service %s did not stop within %s", name, stopWait)
			}
			time.Sleep(300 * time.Millisecond)
			if st, err = s.Query(); err != nil {
				return fmt.Errorf("query service %s: %w", name, err)
			}
		}
	}

	if err = s.Delete(); err != nil {
		return fmt.Errorf("delete service %s: %w", name, err)
	}
	if err = eventlog.Remove(name); err != nil {
		return fmt.Errorf("remove event source: %w", err)
	}
	return nil
}

func connectErr(err error) error {
	if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
		return fmt.Errorf("access denied, re-run as administrator: %w", err)
	}
	return fmt.Errorf("connect to service manager: %w", err)
}
