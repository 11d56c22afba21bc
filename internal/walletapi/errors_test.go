package walletapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_APIError_Error(t *testing.T) {
	t.Run("without a cause", func(t *testing.T) {
		err := newStatusError(http.StatusServiceUnavailable)
		assert.EqualError(t, err, "wallet API is temporarily unavailable")
	})

	t.Run("with a cause", func(t *testing.T) {
		cause := errors.New("unexpected end of JSON input")
		err := newParseError(cause)
		assert.EqualError(t, err, "failed to parse wallet API response: unexpected end of JSON input")
		assert.ErrorIs(t, err, cause)
	})
}

func Test_APIError_Retryable(t *testing.T) {
	testCases := []struct {
		name string
		err  *APIError
		want bool
	}{
		{"500 is retryable", newStatusError(http.StatusInternalServerError), true},
		{"502 is retryable", newStatusError(http.StatusBadGateway), true},
		{"503 is retryable", newStatusError(http.StatusServiceUnavailable), true},
		{"504 is retryable", newStatusError(http.StatusGatewayTimeout), true},
		{"429 is retryable", newStatusError(http.StatusTooManyRequests), true},
		{"400 is terminal", newStatusError(http.StatusBadRequest), false},
		{"404 is terminal", newStatusError(http.StatusNotFound), false},
		{"418 is terminal", newStatusError(http.StatusTeapot), false},
		{"timeout is terminal", newTimeoutError(time.Second, nil), false},
		{"network failure is terminal", newNetworkError(errors.New("refused")), false},
		{"parse failure is terminal", newParseError(errors.New("bad json")), false},
		{"validation failure is terminal", newValidationError("missing field", nil), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Retryable())
		})
	}
}

func Test_statusMessage(t *testing.T) {
	testCases := []struct {
		statusCode int
		want       string
	}{
		{http.StatusBadRequest, "invalid request: check the address or parameters and try again"},
		{http.StatusNotFound, "resource not found: verify the address or currency is correct"},
		{http.StatusTooManyRequests, "rate limited by the wallet API: wait a moment before retrying"},
		{http.StatusInternalServerError, "wallet API is temporarily unavailable"},
		{http.StatusBadGateway, "wallet API is temporarily unavailable"},
		{http.StatusServiceUnavailable, "wallet API is temporarily unavailable"},
		{http.StatusGatewayTimeout, "wallet API is temporarily unavailable"},
		{http.StatusTeapot, "wallet API returned an error (status 418)"},
		{599, "wallet API returned an error (status 599)"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("status %d", tc.statusCode), func(t *testing.T) {
			assert.Equal(t, tc.want, statusMessage(tc.statusCode))
		})
	}
}

func Test_AsAPIError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		apiErr, ok := AsAPIError(newStatusError(http.StatusNotFound))
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("looking up wallet: %w", newStatusError(http.StatusNotFound))
		apiErr, ok := AsAPIError(wrapped)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("not an API error", func(t *testing.T) {
		apiErr, ok := AsAPIError(errors.New("plain"))
		assert.False(t, ok)
		assert.Nil(t, apiErr)
	})
}
