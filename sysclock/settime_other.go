//go:build !linux && !darwin && !windows

package sysclock

import (
	"errors"
	"runtime"
	"time"
)

func setSystemTime(time.Time) error {
	return &PlatformError{Err: errors.New("setting the system clock is not supported on " + runtime.GOOS)}
}
