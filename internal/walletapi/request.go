package walletapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dimchansky/utfbom"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/internal/monitor"
)

// requestDescriptor describes one wallet API call. label identifies the
// endpoint in logs and metrics.
type requestDescriptor struct {
	method string
	path   string
	label  string
	query  url.Values
	body   any
}

// do performs exactly one round trip against the wallet API and returns the
// raw response body. The call is bounded by the client timeout, and every
// failure comes back as an *APIError.
func (c *Client) do(ctx context.Context, rd requestDescriptor) ([]byte, error) {
	u, err := url.JoinPath(c.basePath, rd.path)
	if err != nil {
		return nil, newNetworkError(fmt.Errorf("building path: %w", err))
	}
	if len(rd.query) > 0 {
		u = u + "?" + rd.query.Encode()
	}

	var bodyReader io.Reader
	if rd.body != nil {
		bodyData, marshalErr := json.Marshal(rd.body)
		if marshalErr != nil {
			return nil, newNetworkError(fmt.Errorf("marshalling request body: %w", marshalErr))
		}
		bodyReader = bytes.NewReader(bodyData)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, rd.method, u, bodyReader)
	if err != nil {
		return nil, newNetworkError(fmt.Errorf("building request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.authToken))
	req.Header.Set("X-Request-Id", requestID)
	if rd.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, doErr := c.httpClient.Do(req)
	elapsed := time.Since(start)

	status, statusCode := monitor.ParseHTTPResponseStatus(resp, doErr)
	c.recordRequestMetrics(rd, status, statusCode, elapsed)

	fields := logrus.Fields{
		"method":     rd.method,
		"endpoint":   rd.label,
		"request_id": requestID,
		"elapsed_ms": elapsed.Milliseconds(),
	}

	if doErr != nil {
		apiErr := c.wrapTransportError(doErr)
		c.log.WithFields(fields).WithError(apiErr).Error("wallet API request failed")
		return nil, apiErr
	}
	defer resp.Body.Close()

	fields["status"] = resp.StatusCode

	respBody, readErr := io.ReadAll(utfbom.SkipOnly(resp.Body))
	if readErr != nil {
		apiErr := c.wrapTransportError(readErr)
		c.log.WithFields(fields).WithError(apiErr).Error("reading wallet API response failed")
		return nil, apiErr
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := newStatusError(resp.StatusCode)
		c.log.WithFields(fields).WithError(apiErr).Error("wallet API request failed")
		return nil, apiErr
	}

	c.log.WithFields(fields).Info("wallet API request completed")
	return respBody, nil
}

// wrapTransportError classifies a transport failure: an exceeded deadline is
// a timeout, anything else (including caller cancellation) a network failure.
func (c *Client) wrapTransportError(err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return newTimeoutError(c.timeout, err)
	}
	return newNetworkError(err)
}

func (c *Client) recordRequestMetrics(rd requestDescriptor, status, statusCode string, elapsed time.Duration) {
	if c.monitorService == nil {
		return
	}

	labels := monitor.WalletAPILabels{
		Method:     rd.method,
		Endpoint:   rd.label,
		Status:     status,
		StatusCode: statusCode,
	}
	if err := c.monitorService.MonitorDuration(elapsed, monitor.WalletAPIRequestDurationTag, labels.ToMap()); err != nil {
		c.log.Errorf("monitoring wallet API request duration: %s", err)
	}
	if err := c.monitorService.MonitorCounters(monitor.WalletAPIRequestsTotalTag, labels.ToMap()); err != nil {
		c.log.Errorf("monitoring wallet API request counter: %s", err)
	}
}
