package transport

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/goliatone/go-launcher/core"
)

// classifyCause maps a Go transport error onto the failure taxonomy. DNS and
// dial failures mean the host is unreachable.
func classifyCause(err error) core.FailureKind {
	if err == nil {
		return core.FailureUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return core.FailureTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return core.FailureTimeout
		}
		return core.FailureTransportUnreachable
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return core.FailureTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && strings.EqualFold(opErr.Op, "dial") {
		return core.FailureTransportUnreachable
	}
	return core.FailureUnknown
}

// ExpectStatus reports an unexpected success code. A different 2xx may
// indicate an API change but is still accepted.
func ExpectStatus(logger core.Logger, operation string, expected int, actual int) bool {
	if actual == expected {
		return true
	}
	if logger != nil {
		logger.Warn(operation+" expected a different response code",
			"expected", expected,
			"actual", actual,
		)
	}
	return false
}

// LogFailure writes the standard diagnostic for a failed operation.
func LogFailure(logger core.Logger, operation string, err error) {
	if logger == nil || err == nil {
		return
	}
	failure := core.AsTransportFailure(err)
	switch {
	case failure.HasResponse():
		logger.Error("error during "+operation+" request",
			"status_code", failure.StatusCode,
			"kind", string(failure.Kind),
		)
		logger.Debug("response details",
			"operation", operation,
			"url", failure.URL,
			"body", string(failure.Body),
		)
	case failure.Cause != nil:
		logger.Error(operation+" request received no response",
			"kind", string(failure.Kind),
			"error", failure.Cause.Error(),
		)
	default:
		logger.Error("error during "+operation+" request", "kind", string(failure.Kind))
	}
}
