package route

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyStops is the sentinel behind TooManyStopsError.
	ErrTooManyStops = errors.New("too many stops")
	// ErrInvalidStop is the sentinel behind InvalidStopError.
	ErrInvalidStop = errors.New("invalid stop")
	// ErrRoutingUnavailable is the sentinel behind RoutingUnavailableError.
	ErrRoutingUnavailable = errors.New("routing unavailable")
)

// TooManyStopsError is returned before any network call when a request
// exceeds MaxStops.
type TooManyStopsError struct {
	Count int
	Max   int
}

func (e *TooManyStopsError) Error() string {
	return fmt.Sprintf("%s: %d requested, at most %d allowed", ErrTooManyStops, e.Count, e.Max)
}

func (e *TooManyStopsError) Unwrap() error {
	return ErrTooManyStops
}

// InvalidStopError names the stop that cannot be routed.
type InvalidStopError struct {
	Index   int
	OrderID string
	Reason  string
}

func (e *InvalidStopError) Error() string {
	if e.OrderID == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidStop, e.Reason)
	}
	return fmt.Sprintf("%s: stop %d (order %s): %s", ErrInvalidStop, e.Index, e.OrderID, e.Reason)
}

func (e *InvalidStopError) Unwrap() error {
	return ErrInvalidStop
}

// RoutingUnavailableError wraps whatever made the routing collaborator fail:
// transport errors, timeouts, 5xx answers or missing configuration.
type RoutingUnavailableError struct {
	Cause error
}

// NewRoutingUnavailableError wraps cause.
func NewRoutingUnavailableError(cause error) *RoutingUnavailableError {
	return &RoutingUnavailableError{Cause: cause}
}

func (e *RoutingUnavailableError) Error() string {
	if e.Cause == nil {
		return ErrRoutingUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrRoutingUnavailable, e.Cause)
}

// Unwrap exposes both the sentinel and the cause, so errors.Is works for
// ErrRoutingUnavailable as well as context.DeadlineExceeded.
func (e *RoutingUnavailableError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrRoutingUnavailable}
	}
	return []error{ErrRoutingUnavailable, e.Cause}
}
