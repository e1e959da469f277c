package fetch

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBodyTooLarge is returned when a response exceeds Client.MaxBodyBytes.
var ErrBodyTooLarge = errors.New("response body too large")

var errRedirectPolicy = errors.New("redirect refused")

// HTTPError reports a non-2xx response that survived the retry policy.
type HTTPError struct {
	Status int
	Reason string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %d %s", e.Status, e.Reason)
}

// NetworkError reports a connection-level failure: DNS, refused or reset
// connections and per-request timeouts.
type NetworkError struct {
	Cause error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Cause)
}

func (e *NetworkError) Unwrap() error { return e.Cause }

// retryStatuses are the response codes worth another attempt.
var retryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

func isRetryable(err error) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return retryStatuses[he.Status]
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return !errors.Is(err, errRedirectPolicy)
	}
	return false
}
