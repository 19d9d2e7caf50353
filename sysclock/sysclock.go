// Package sysclock commits an absolute instant as the machine's wall
// clock. Setting the clock needs elevated privileges on every supported
// platform (root / CAP_SYS_TIME on unix, SeSystemtimePrivilege on
// windows).
package sysclock

import (
	"fmt"
	"time"
)

// Setter commits an instant as the system clock in one atomic call.
type Setter interface {
	Set(t time.Time) error
}

// PermissionError means the process lacks the privilege to set the
// clock. Callers should tell the operator to re-run elevated.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("sysclock: permission denied: %v", e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// PlatformError is any other OS failure setting the clock, passed
// through verbatim.
type PlatformError struct {
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("sysclock: %v", e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }

var _ Setter = systemSetter{}

// System returns the Setter for the current platform.
func System() Setter { return systemSetter{} }

type systemSetter struct{}

func (systemSetter) Set(t time.Time) error { return setSystemTime(t) }
