package probe

import (
	"fmt"
)

// FailureMessage is the only text ever shown to users for a failed probe.
const FailureMessage = "Failed to connect to backend"

type FailureKind string

const (
	// FailureNetwork covers transport errors, including cancellation and
	// timeouts of the request context.
	FailureNetwork FailureKind = "network"
	// FailureStatus is a response with a non-2xx status code.
	FailureStatus FailureKind = "status"
	// FailureDecode is a 2xx response whose body does not match
	// {"message": string, "data": [string]}.
	FailureDecode FailureKind = "decode"
)

// ConnectivityFailure is the single error kind produced by a connection
// probe.
type ConnectivityFailure struct {
	Kind       FailureKind
	StatusCode int
	cause      error
}

func (f *ConnectivityFailure) Error() string {
	switch f.Kind {
	case FailureStatus:
		return fmt.Sprintf("backend returned status %d", f.StatusCode)
	case FailureDecode:
		return fmt.Sprintf("backend returned an unexpected body: %v", f.cause)
	default:
		return fmt.Sprintf("backend request failed: %v", f.cause)
	}
}

func (f *ConnectivityFailure) Unwrap() error {
	return f.cause
}
