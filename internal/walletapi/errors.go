package walletapi

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/exp/slices"
)

// FailureKind classifies an APIError by the stage of the request that failed.
type FailureKind string

const (
	FailureKindTimeout    FailureKind = "timeout"
	FailureKindNetwork    FailureKind = "network"
	FailureKindHTTPStatus FailureKind = "http_status"
	FailureKindParse      FailureKind = "parse"
	FailureKindValidation FailureKind = "validation"
)

// APIError is the only error type returned by the wallet API client. It
// carries a user-facing message, the HTTP status code when a response was
// received, and the wrapped cause when there is one.
type APIError struct {
	Kind    FailureKind
	Message string
	// StatusCode is the HTTP status code. Zero when no response was received.
	StatusCode int
	Err        error
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// Retryable reports whether a fresh attempt could plausibly succeed. Only
// rate limiting and server-side failures qualify.
func (e *APIError) Retryable() bool {
	return e.Kind == FailureKindHTTPStatus && (e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests)
}

// AsAPIError unwraps err into an *APIError when there is one in its chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func newTimeoutError(timeout time.Duration, cause error) *APIError {
	return &APIError{
		Kind:    FailureKindTimeout,
		Message: fmt.Sprintf("wallet API request timed out after %s", timeout),
		Err:     cause,
	}
}

func newNetworkError(cause error) *APIError {
	return &APIError{
		Kind:    FailureKindNetwork,
		Message: "network error calling wallet API",
		Err:     cause,
	}
}

func newStatusError(statusCode int) *APIError {
	return &APIError{
		Kind:       FailureKindHTTPStatus,
		Message:    statusMessage(statusCode),
		StatusCode: statusCode,
	}
}

func newParseError(cause error) *APIError {
	return &APIError{
		Kind:    FailureKindParse,
		Message: "failed to parse wallet API response",
		Err:     cause,
	}
}

func newValidationError(message string, cause error) *APIError {
	return &APIError{
		Kind:    FailureKindValidation,
		Message: message,
		Err:     cause,
	}
}

// unavailableStatuses are the status codes reported to callers as a temporary
// wallet API outage.
var unavailableStatuses = []int{
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// statusMessage maps a wallet API status code to a user-facing message.
func statusMessage(statusCode int) string {
	switch {
	case statusCode == http.StatusBadRequest:
		return "invalid request: check the address or parameters and try again"
	case statusCode == http.StatusNotFound:
		return "resource not found: verify the address or currency is correct"
	case statusCode == http.StatusTooManyRequests:
		return "rate limited by the wallet API: wait a moment before retrying"
	case slices.Contains(unavailableStatuses, statusCode):
		return "wallet API is temporarily unavailable"
	default:
		return fmt.Sprintf("wallet API returned an error (status %d)", statusCode)
	}
}
