package domain

import (
	"errors"
	"fmt"
)

// Normal negative outcomes the orchestrator must distinguish from success.
var (
	// ErrNoRouteFound: the routing service responded successfully but
	// produced zero usable segments.
	ErrNoRouteFound = errors.New("routing service found no usable route")

	// ErrNoUsableWaypoints: waypoint reduction discarded every candidate.
	ErrNoUsableWaypoints = errors.New("no usable waypoints after reduction")

	// ErrTripNotFound: the requested stored trip does not exist.
	ErrTripNotFound = errors.New("trip not found")
)

// ValidationError reports invalid caller input. It is raised before any
// network call is attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// ServiceError is a non-success response from the routing service. Status
// and body are preserved verbatim so callers can surface service-side
// diagnostics.
type ServiceError struct {
	Status int
	Body   string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("routing service error: status %d: %s", e.Status, e.Body)
}

// TransportKind distinguishes the ways a request can fail before the
// routing service produces any response.
type TransportKind string

const (
	TransportBadURL  TransportKind = "malformed service URL"
	TransportTimeout TransportKind = "service timeout"
	TransportRequest TransportKind = "request failed"
)

// TransportError is a failure to reach the routing service at all. The
// underlying failure detail is preserved via Unwrap.
type TransportError struct {
	Kind TransportKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
