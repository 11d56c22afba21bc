package httperror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

func TestNewHTTPError(t *testing.T) {
	err := NewHTTPError(http.StatusBadRequest, "Bad request", nil, map[string]interface{}{
		"foo": "bar",
	})

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "Bad request", err.Message)
	assert.Len(t, err.Extras, 1)
	assert.Equal(t, map[string]interface{}{"foo": "bar"}, err.Extras)
}

func TestNewHTTPError_returnOriginalErrIfNoNewInfoWasAdded(t *testing.T) {
	err := NewHTTPError(http.StatusBadRequest, "Bad request", nil, map[string]interface{}{
		"foo": "bar",
	})

	// if no new info was added, return original error
	newErr := NewHTTPError(http.StatusBadRequest, "", err, nil)
	assert.Equal(t, err, newErr)

	// return new error if the message changed
	newErr = NewHTTPError(http.StatusBadRequest, "Foo Bar Bad Request", err, nil)
	assert.NotEqual(t, err, newErr)

	// return new error if the status code changed
	newErr = NewHTTPError(http.StatusNotFound, "", err, nil)
	assert.NotEqual(t, err, newErr)

	// return new error if the extras have changed
	newErr = NewHTTPError(http.StatusBadRequest, "", err, map[string]interface{}{
		"foo2": "bar2",
	})
	assert.NotEqual(t, err, newErr)
}

func TestNotFound(t *testing.T) {
	originalErr := errors.New("original error")

	err := NotFound("", originalErr, map[string]interface{}{"foo": "not found"})
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Resource not found.", err.Message)
	assert.Equal(t, originalErr, err.Err)
	assert.Equal(t, map[string]interface{}{"foo": "not found"}, err.Extras)

	err = NotFound("Foo Bar NotFound", nil, nil)
	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Foo Bar NotFound", err.Message)
	assert.Nil(t, err.Err)
	assert.Nil(t, err.Extras)
}

func TestBadRequest(t *testing.T) {
	originalErr := errors.New("original error")

	err := BadRequest("", originalErr, map[string]interface{}{"foo": "bad request"})
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "The request was invalid in some way.", err.Message)
	assert.Equal(t, originalErr, err.Err)
	assert.Equal(t, map[string]interface{}{"foo": "bad request"}, err.Extras)

	err = BadRequest("Foo Bar BadRequest", nil, nil)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "Foo Bar BadRequest", err.Message)
	assert.Nil(t, err.Err)
	assert.Nil(t, err.Extras)
}

func TestUnauthorized(t *testing.T) {
	originalErr := errors.New("original error")

	err := Unauthorized("", originalErr, map[string]interface{}{"foo": "invalid token"})
	assert.Equal(t, http.StatusUnauthorized, err.StatusCode)
	assert.Equal(t, "Not authorized.", err.Message)
	assert.Equal(t, originalErr, err.Err)
	assert.Equal(t, map[string]interface{}{"foo": "invalid token"}, err.Extras)

	err = Unauthorized("Not authorized.", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, err.StatusCode)
	assert.Equal(t, "Not authorized.", err.Message)
	assert.Nil(t, err.Err)
	assert.Nil(t, err.Extras)
}

func TestInternalError(t *testing.T) {
	originalErr := errors.New("original error")
	ctx := context.Background()

	t.Run("internal error with default message", func(t *testing.T) {
		// set the logger to a buffer so we can check the error message
		buf := new(strings.Builder)
		logrus.SetOutput(buf)
		defer logrus.SetOutput(os.Stderr)

		err := InternalError(ctx, "", originalErr, map[string]interface{}{"foo": "bad server error"})
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "An internal error occurred while processing this request.", err.Message)
		assert.Equal(t, originalErr, err.Err)
		assert.Equal(t, map[string]interface{}{"foo": "bad server error"}, err.Extras)

		// validate logs
		require.Contains(t, buf.String(), "An internal error occurred while processing this request.: original error")
	})

	t.Run("internal error with custom message", func(t *testing.T) {
		// set the logger to a buffer so we can check the error message
		buf := new(strings.Builder)
		logrus.SetOutput(buf)
		defer logrus.SetOutput(os.Stderr)

		err := InternalError(ctx, "Foo Bar InternalError", originalErr, nil)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "Foo Bar InternalError", err.Message)
		assert.Equal(t, originalErr, err.Err)
		assert.Nil(t, err.Extras)

		// validate logs
		require.Contains(t, buf.String(), "Foo Bar InternalError: original error")
	})

	t.Run("internal error without error", func(t *testing.T) {
		// set the logger to a buffer so we can check the error message
		buf := new(strings.Builder)
		logrus.SetOutput(buf)
		defer logrus.SetOutput(os.Stderr)

		err := InternalError(ctx, "", nil, nil)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "An internal error occurred while processing this request.", err.Message)
		assert.Nil(t, err.Err)
		assert.Nil(t, err.Extras)

		// validate logs
		require.Contains(t, buf.String(), "An internal error occurred while processing this request.:")
	})

	t.Run("internal error with custom ReportErrorFunc", func(t *testing.T) {
		// set the logger to a buffer so we can check the error message
		buf := new(strings.Builder)
		logrus.SetOutput(buf)
		defer logrus.SetOutput(os.Stderr)

		previousReportErrorFunc := defaultReportErrorFunc.reportErrorFunc
		defer SetDefaultReportErrorFunc(previousReportErrorFunc)

		reportErrorFunc := func(ctx context.Context, err error, msg string) {
			logrus.Error("reported with custom ReportFunc")
		}
		SetDefaultReportErrorFunc(reportErrorFunc)

		err := InternalError(ctx, "", originalErr, nil)
		assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
		assert.Equal(t, "An internal error occurred while processing this request.", err.Message)
		assert.Equal(t, originalErr, err.Err)
		assert.Nil(t, err.Extras)

		// validate logs
		require.Contains(t, buf.String(), "reported with custom ReportFunc")
	})
}

func TestHTTPError_Render(t *testing.T) {
	httpErr := NotFound("", nil, map[string]interface{}{"address": "unknown wallet"})

	rr := httptest.NewRecorder()
	httpErr.Render(rr)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	wantBody := `{
		"error": "Resource not found.",
		"extras": {
			"address": "unknown wallet"
		}
	}`
	assert.JSONEq(t, wantBody, rr.Body.String())
}

func TestNewHTTPError_json(t *testing.T) {
	httpErr := NewHTTPError(http.StatusAccepted, "Bad request", nil, map[string]interface{}{
		"foo": "bar",
	})

	gotJson, err := json.Marshal(httpErr)
	require.NoError(t, err)

	wantJson := `{
		"error": "Bad request",
		"extras": {
			"foo": "bar"
		}
	}`
	require.JSONEq(t, wantJson, string(gotJson))
}

type testError struct {
	Msg string
}

func (te *testError) Error() string {
	return te.Msg
}

func TestError_unwrap(t *testing.T) {
	wrappedError := testError{"wrapped error"}
	httpErr := NewHTTPError(http.StatusForbidden, "Bad request", &wrappedError, map[string]interface{}{
		"foo": "bar",
	})
	require.Equal(t, &wrappedError, httpErr.Unwrap())

	require.True(t, errors.Is(httpErr, &wrappedError))

	var e *testError
	require.True(t, errors.As(httpErr, &e))
	require.Equal(t, &wrappedError, e)
}

func Test_FromWalletAPIError(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "timeout maps to 504",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindTimeout, Message: "wallet API request timed out after 30s"},
			wantStatus:  http.StatusGatewayTimeout,
			wantMessage: "wallet API request timed out after 30s",
		},
		{
			name:        "network failure maps to 502",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindNetwork, Message: "network error calling wallet API"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "network error calling wallet API",
		},
		{
			name:        "parse failure maps to 502",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindParse, Message: "failed to parse wallet API response"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "failed to parse wallet API response",
		},
		{
			name:        "validation failure maps to 502",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindValidation, Message: "invalid wallet API response: wallet.balance.lovelace: required field is missing"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "invalid wallet API response: wallet.balance.lovelace: required field is missing",
		},
		{
			name:        "upstream 400 passes through",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindHTTPStatus, StatusCode: http.StatusBadRequest, Message: "invalid request: check the address or parameters and try again"},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "invalid request: check the address or parameters and try again",
		},
		{
			name:        "upstream 404 passes through",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindHTTPStatus, StatusCode: http.StatusNotFound, Message: "resource not found: verify the address or currency is correct"},
			wantStatus:  http.StatusNotFound,
			wantMessage: "resource not found: verify the address or currency is correct",
		},
		{
			name:        "upstream 429 passes through",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindHTTPStatus, StatusCode: http.StatusTooManyRequests, Message: "rate limited by the wallet API: wait a moment before retrying"},
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "rate limited by the wallet API: wait a moment before retrying",
		},
		{
			name:        "upstream 500 maps to 502",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindHTTPStatus, StatusCode: http.StatusInternalServerError, Message: "wallet API is temporarily unavailable"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "wallet API is temporarily unavailable",
		},
		{
			name:        "upstream 503 maps to 502",
			err:         &walletapi.APIError{Kind: walletapi.FailureKindHTTPStatus, StatusCode: http.StatusServiceUnavailable, Message: "wallet API is temporarily unavailable"},
			wantStatus:  http.StatusBadGateway,
			wantMessage: "wallet API is temporarily unavailable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			httpErr := FromWalletAPIError(ctx, tc.err)
			assert.Equal(t, tc.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tc.wantMessage, httpErr.Message)
			assert.Equal(t, tc.err, httpErr.Err)
		})
	}

	t.Run("finds the API error through wrapping", func(t *testing.T) {
		apiErr := &walletapi.APIError{Kind: walletapi.FailureKindHTTPStatus, StatusCode: http.StatusNotFound, Message: "resource not found: verify the address or currency is correct"}
		wrappedErr := fmt.Errorf("fetching wallet detail: %w", apiErr)

		httpErr := FromWalletAPIError(ctx, wrappedErr)
		assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
		assert.Equal(t, "resource not found: verify the address or currency is correct", httpErr.Message)
		assert.Equal(t, wrappedErr, httpErr.Err)
	})

	t.Run("non-API error becomes a reported 500", func(t *testing.T) {
		previousReportErrorFunc := defaultReportErrorFunc.reportErrorFunc
		defer SetDefaultReportErrorFunc(previousReportErrorFunc)

		var reportedErr error
		SetDefaultReportErrorFunc(func(ctx context.Context, err error, msg string) {
			reportedErr = err
		})

		unexpectedErr := errors.New("unexpected error")
		httpErr := FromWalletAPIError(ctx, unexpectedErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
		assert.Equal(t, "An internal error occurred while processing this request.", httpErr.Message)
		assert.Equal(t, unexpectedErr, reportedErr)
	})
}
