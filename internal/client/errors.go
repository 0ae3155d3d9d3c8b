package client

import (
	"context"
	"errors"
	"net"
	"net/http"

	"word-explainer/internal/types"
)

// kindForStatus maps an HTTP status returned by a completion API to an error kind.
func kindForStatus(status int) types.ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return types.KindAuthentication
	case status == http.StatusTooManyRequests:
		return types.KindRateLimit
	case status == http.StatusRequestTimeout:
		return types.KindTimeout
	case status >= 500 && status < 600:
		return types.KindService
	case status >= 400 && status < 500:
		return types.KindInvalidRequest
	default:
		return types.KindUnknown
	}
}

// kindForTransport classifies errors that never produced an HTTP response.
func kindForTransport(err error) types.ErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return types.KindTimeout
		}
		return types.KindNetwork
	}
	return types.KindUnknown
}
