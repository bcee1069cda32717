package routing

import (
	"context"
	"errors"
	"net"
	"net/url"
	"trip-planner-service/internal/domain"
)

// classifyTransportError maps a client-side request failure onto the
// transport error taxonomy, keeping the underlying detail intact. The
// three classes (malformed URL, timeout, generic transport failure) stay
// distinguishable through the error's Kind.
func classifyTransportError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		if ue.Timeout() || errors.Is(ue.Err, context.DeadlineExceeded) {
			return &domain.TransportError{Kind: domain.TransportTimeout, Err: err}
		}
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &domain.TransportError{Kind: domain.TransportTimeout, Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.TransportError{Kind: domain.TransportTimeout, Err: err}
	}

	return &domain.TransportError{Kind: domain.TransportRequest, Err: err}
}
