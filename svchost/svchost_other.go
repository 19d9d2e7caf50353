//go:build !windows

package svchost

import "errors"

var errNotWindows = errors.New("svchost: managed service hosting is only available on windows")

func detectMode() (RunMode, error) { return Foreground, nil }

func runService(Params) error { return errNotWindows }

// Install is windows-only; other platforms run foreground under their
// own supervisor (systemd, launchd).
func Install(InstallParams) error { return errNotWindows }

// Uninstall is windows-only.
func Uninstall(string) error { return errNotWindows }
