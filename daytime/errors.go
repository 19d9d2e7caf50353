package daytime

import "fmt"

// NetworkError reports a transport failure while talking to the time
// source: connection refused, reset, or a missed deadline.
type NetworkError struct {
	Op     string
	Server string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("daytime: %s %s: %v", e.Op, e.Server, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FormatError reports a reply that does not match the ITS line layout or
// encodes an impossible calendar date or time.
type FormatError struct {
	Reason string
	Reply  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("daytime: malformed reply %q: %s", e.Reply, e.Reason)
}
