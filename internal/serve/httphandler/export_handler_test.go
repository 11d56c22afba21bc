package httphandler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/adagate/ada-wallet-gateway/internal/monitor"
	"github.com/adagate/ada-wallet-gateway/internal/services/mocks"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

func Test_ExportHandler_ExportHoldings(t *testing.T) {
	t.Run("exports the holdings as CSV", func(t *testing.T) {
		mPortfolioService := &mocks.MockPortfolioService{}
		mPortfolioService.
			On("GetPortfolio", mock.Anything, walletAddress).
			Return(hoskyPortfolio(), nil).
			Once()
		mMonitorService := &monitor.MockMonitorService{}
		mMonitorService.
			On("MonitorCounters", monitor.HoldingsExportsCounterTag, map[string]string(nil)).
			Return(nil).
			Once()

		handler := ExportHandler{PortfolioService: mPortfolioService, MonitorService: mMonitorService}
		r := chi.NewRouter()
		r.Get("/wallets/{address}/holdings.csv", handler.ExportHoldings)

		req, err := http.NewRequest("GET", "/wallets/"+walletAddress+"/holdings.csv", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
		today := time.Now().Format("2006-01-02")
		assert.Contains(t, rr.Header().Get("Content-Disposition"), fmt.Sprintf("attachment; filename=holdings_%s", today))

		csvReader := csv.NewReader(strings.NewReader(rr.Body.String()))
		header, err := csvReader.Read()
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Ticker", "Policy", "AssetNameHex", "Amount", "Decimals", "ADAValue"}, header)

		rows, err := csvReader.ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"Cardano", "ADA", "", "", "5000.000000", "6", "5000.000000"}, rows[0])
		assert.Equal(t, []string{"Cardano staking rewards", "ADA", "", "", "100.000000", "6", "100.000000"}, rows[1])
		assert.Equal(t, []string{"HOSKY", "HOSKY", "a0028f350aaabe0545fdcb56b039bfb08e4bb4d8c4d7c3c7d481c235", "484f534b59", "1.000000", "6", "0.042000"}, rows[2])

		mPortfolioService.AssertExpectations(t)
		mMonitorService.AssertExpectations(t)
	})

	t.Run("returns a 400 for a malformed address", func(t *testing.T) {
		mPortfolioService := &mocks.MockPortfolioService{}
		mMonitorService := &monitor.MockMonitorService{}

		handler := ExportHandler{PortfolioService: mPortfolioService, MonitorService: mMonitorService}
		r := chi.NewRouter()
		r.Get("/wallets/{address}/holdings.csv", handler.ExportHoldings)

		req, err := http.NewRequest("GET", "/wallets/not-an-address/holdings.csv", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		wantBody := `{
			"error": "The request was invalid in some way.",
			"extras": {
				"address": "the provided address is not a valid bech32 Cardano address"
			}
		}`
		assert.JSONEq(t, wantBody, rr.Body.String())

		mPortfolioService.AssertNotCalled(t, "GetPortfolio")
		mMonitorService.AssertNotCalled(t, "MonitorCounters")
	})

	t.Run("returns a 502 when the upstream is unavailable", func(t *testing.T) {
		unavailableErr := fmt.Errorf("fetching wallet detail: %w", &walletapi.APIError{
			Kind:       walletapi.FailureKindHTTPStatus,
			StatusCode: http.StatusServiceUnavailable,
			Message:    "wallet API is temporarily unavailable",
		})

		mPortfolioService := &mocks.MockPortfolioService{}
		mPortfolioService.
			On("GetPortfolio", mock.Anything, walletAddress).
			Return(nil, unavailableErr).
			Once()
		mMonitorService := &monitor.MockMonitorService{}

		handler := ExportHandler{PortfolioService: mPortfolioService, MonitorService: mMonitorService}
		r := chi.NewRouter()
		r.Get("/wallets/{address}/holdings.csv", handler.ExportHoldings)

		req, err := http.NewRequest("GET", "/wallets/"+walletAddress+"/holdings.csv", nil)
		require.NoError(t, err)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.JSONEq(t, `{"error": "wallet API is temporarily unavailable"}`, rr.Body.String())

		mPortfolioService.AssertExpectations(t)
		mMonitorService.AssertNotCalled(t, "MonitorCounters")
	})
}
