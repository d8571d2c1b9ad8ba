package client

import (
	"errors"
	"net"
	"net/url"

	"github.com/lubluniky/cent-client-go/internal/signing"
	"github.com/lubluniky/cent-client-go/internal/transport"
)

// APIError is returned when the server API answers with a non-2xx status.
type APIError = transport.APIError

var (
	// ErrInvalidResponseFormat is returned when the response body is not JSON
	// or is not an array with a non-null first element.
	ErrInvalidResponseFormat = errors.New("cent: invalid response format")

	// ErrUnsupportedAlgorithm is returned when the configured hash algorithm
	// is not recognised. It surfaces at signing time.
	ErrUnsupportedAlgorithm = signing.ErrUnsupportedAlgorithm
)

// IsTransportError reports whether err came from the HTTP exchange itself:
// a non-2xx status or a network failure, timeouts included.
func IsTransportError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsRetryable returns true if the error is transient and the caller may
// retry the request. The client itself never retries.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == 429
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
