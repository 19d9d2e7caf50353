//go:build linux || darwin

package sysclock

import (
	"errors"
	"time"

	"golang.org/x/sys/unix"
)

// setSystemTime writes t via settimeofday(2). Microsecond resolution,
// so the instant's millisecond component survives.
func setSystemTime(t time.Time) error {
	tv := unix.NsecToTimeval(t.UnixNano())
	if err := unix.Settimeofday(&tv); err != nil {
		if errors.Is(err, unix.EPERM) {
			return &PermissionError{Err: err}
		}
		return &PlatformError{Err: err}
	}
	return nil
}
