package httperror

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/internal/serve/httpjson"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

type HTTPError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	// Extras contains extra information about the error.
	Extras map[string]any `json:"extras,omitempty"`
	// Err is an optional field that can be used to wrap the original error to pass it forward.
	Err error `json:"-"`
}

// ReportErrorFunc is a function type used to report unexpected errors.
type ReportErrorFunc func(ctx context.Context, err error, msg string)

// ReportError is a struct type used to report unexpected errors.
type ReportError struct {
	reportErrorFunc ReportErrorFunc
}

// defaultReportErrorFunc logs unexpected errors until a crash tracker replaces it.
var defaultReportErrorFunc = ReportError{
	reportErrorFunc: func(ctx context.Context, err error, msg string) {
		if msg != "" {
			err = fmt.Errorf("%s: %w", msg, err)
		}
		logrus.WithContext(ctx).Errorf("%+v", err)
	},
}

// SetDefaultReportErrorFunc sets a new defaultReportErrorFunc to report unexpected errors.
func SetDefaultReportErrorFunc(fn ReportErrorFunc) {
	defaultReportErrorFunc.reportErrorFunc = fn
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) Render(w http.ResponseWriter) {
	httpjson.RenderStatus(w, e.StatusCode, e)
}

func NewHTTPError(statusCode int, msg string, originalErr error, extras map[string]interface{}) *HTTPError {
	if msg == "" && originalErr != nil && len(extras) == 0 {
		var hErr *HTTPError
		if errors.As(originalErr, &hErr) && (hErr.StatusCode == statusCode) {
			return hErr
		}
	}

	return &HTTPError{
		StatusCode: statusCode,
		Message:    msg,
		Extras:     extras,
		Err:        originalErr,
	}
}

func NotFound(msg string, originalErr error, extras map[string]interface{}) *HTTPError {
	if msg == "" {
		msg = "Resource not found."
	}
	return NewHTTPError(http.StatusNotFound, msg, originalErr, extras)
}

func BadRequest(msg string, originalErr error, extras map[string]interface{}) *HTTPError {
	if msg == "" {
		msg = "The request was invalid in some way."
	}
	return NewHTTPError(http.StatusBadRequest, msg, originalErr, extras)
}

func Unauthorized(msg string, originalErr error, extras map[string]interface{}) *HTTPError {
	if msg == "" {
		msg = "Not authorized."
	}
	return NewHTTPError(http.StatusUnauthorized, msg, originalErr, extras)
}

func InternalError(ctx context.Context, msg string, originalErr error, extras map[string]interface{}) *HTTPError {
	if msg == "" {
		msg = "An internal error occurred while processing this request."
	}
	defaultReportErrorFunc.reportErrorFunc(ctx, originalErr, msg)
	return NewHTTPError(http.StatusInternalServerError, msg, originalErr, extras)
}

// FromWalletAPIError converts an error coming out of the wallet API client
// into the HTTPError the gateway responds with. Upstream 4xx statuses pass
// through with the client's message; upstream 5xx, network, parse and
// validation failures surface as 502 since the gateway could not obtain a
// usable upstream response; timeouts surface as 504.
func FromWalletAPIError(ctx context.Context, err error) *HTTPError {
	apiErr, ok := walletapi.AsAPIError(err)
	if !ok {
		return InternalError(ctx, "", err, nil)
	}

	switch apiErr.Kind {
	case walletapi.FailureKindTimeout:
		return NewHTTPError(http.StatusGatewayTimeout, apiErr.Message, err, nil)
	case walletapi.FailureKindNetwork, walletapi.FailureKindParse, walletapi.FailureKindValidation:
		return NewHTTPError(http.StatusBadGateway, apiErr.Message, err, nil)
	case walletapi.FailureKindHTTPStatus:
		if apiErr.StatusCode >= http.StatusBadRequest && apiErr.StatusCode < http.StatusInternalServerError {
			return NewHTTPError(apiErr.StatusCode, apiErr.Message, err, nil)
		}
		return NewHTTPError(http.StatusBadGateway, apiErr.Message, err, nil)
	default:
		return InternalError(ctx, "", err, nil)
	}
}
