package providers

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrProviderUnavailable is returned when no scorer is wired.
	ErrProviderUnavailable = errors.New("scorer unavailable")
	// ErrNotFound is returned when the requested topic, mode or daily game does not exist.
	ErrNotFound = errors.New("not found")
	// ErrMalformedResponse marks payloads that fail boundary validation.
	ErrMalformedResponse = errors.New("malformed scorer response")
)

// ServiceError is returned when the scorer answers but rejects the request.
type ServiceError struct {
	Op   string
	Code string
	Desc string
}

func (e *ServiceError) Error() string {
	msg := e.Desc
	if msg == "" {
		msg = "scorer returned error code " + e.Code
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s (code=%s)", e.Op, msg, e.Code)
	}
	return fmt.Sprintf("%s (code=%s)", msg, e.Code)
}

// TransportError is returned when the scorer could not be reached or replied
// with a non-success HTTP status.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// AsServiceError attempts to unwrap an error into a ServiceError.
func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// AsTransportError attempts to unwrap an error into a TransportError.
func AsTransportError(err error) (*TransportError, bool) {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// Error kinds reported alongside failures.
const (
	KindService   = "service"
	KindTransport = "transport"
	KindCanceled  = "canceled"
	KindNotFound  = "not_found"
	KindMalformed = "malformed"
	KindUnknown   = "unknown"
)

// Kind classifies err into one of the reporting categories.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrMalformedResponse):
		return KindMalformed
	}
	if _, ok := AsServiceError(err); ok {
		return KindService
	}
	if _, ok := AsTransportError(err); ok {
		return KindTransport
	}
	return KindUnknown
}

// Retryable reports whether a failed read is worth retrying: transport failures
// and 5xx statuses are, service rejections and malformed payloads are not.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	tErr, ok := AsTransportError(err)
	if !ok {
		return false
	}
	return tErr.StatusCode == 0 || tErr.StatusCode >= 500 || tErr.StatusCode == 429
}
