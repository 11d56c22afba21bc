package httphandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/internal/monitor"
	"github.com/adagate/ada-wallet-gateway/internal/serve/httperror"
	"github.com/adagate/ada-wallet-gateway/internal/serve/validators"
	"github.com/adagate/ada-wallet-gateway/internal/services"
	"github.com/adagate/ada-wallet-gateway/internal/utils"
)

type ExportHandler struct {
	PortfolioService services.PortfolioServiceInterface
	MonitorService   monitor.MonitorServiceInterface
}

// HoldingCSV is one row of the holdings export. The ADA balance and staking
// rewards lead the file as pseudo-holdings with an empty policy, so the
// export adds up to the portfolio total on its own.
type HoldingCSV struct {
	Name         string
	Ticker       string
	Policy       string
	AssetNameHex string
	Amount       string
	Decimals     int
	ADAValue     string
}

// ExportHoldings writes the portfolio of the wallet address in the URL path
// as a CSV download.
func (e ExportHandler) ExportHoldings(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	validator := validators.NewLookupValidator()
	address, _ := validator.ValidateWalletLookup(chi.URLParam(req, "address"), "")
	if validator.HasErrors() {
		httperror.BadRequest("", nil, validator.Errors).Render(rw)
		return
	}

	portfolio, err := e.PortfolioService.GetPortfolio(ctx, address)
	if err != nil {
		httperror.FromWalletAPIError(ctx, err).Render(rw)
		return
	}

	holdingCSVs := convertHoldingsToCSV(portfolio)

	fileName := fmt.Sprintf("holdings_%s.csv", time.Now().Format("2006-01-02-15-04-05"))
	rw.Header().Set("Content-Type", "text/csv")
	rw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", fileName))

	if err = gocsv.Marshal(holdingCSVs, rw); err != nil {
		httperror.InternalError(ctx, "Failed to write CSV", err, nil).Render(rw)
		return
	}

	if err = e.MonitorService.MonitorCounters(monitor.HoldingsExportsCounterTag, nil); err != nil {
		logrus.WithContext(ctx).Errorf("Error trying to monitor holdings export: %s", err)
	}
}

// convertHoldingsToCSV converts the given portfolio to a slice of HoldingCSV.
func convertHoldingsToCSV(portfolio *services.Portfolio) []*HoldingCSV {
	rows := []*HoldingCSV{
		{
			Name:     "Cardano",
			Ticker:   "ADA",
			Amount:   portfolio.ADABalance,
			Decimals: utils.ADADecimals,
			ADAValue: portfolio.ADABalance,
		},
		{
			Name:     "Cardano staking rewards",
			Ticker:   "ADA",
			Amount:   portfolio.StakingRewards,
			Decimals: utils.ADADecimals,
			ADAValue: portfolio.StakingRewards,
		},
	}

	tokenRows := utils.MapSlice(portfolio.Tokens, func(holding services.TokenHolding) *HoldingCSV {
		row := &HoldingCSV{
			Name:         holding.Name,
			Policy:       holding.Policy,
			AssetNameHex: holding.AssetNameHex,
			Amount:       holding.Amount,
			Decimals:     holding.Decimals,
		}
		if holding.Ticker != nil {
			row.Ticker = *holding.Ticker
		}
		if holding.ADAValue != nil {
			row.ADAValue = *holding.ADAValue
		}
		return row
	})

	return append(rows, tokenRows...)
}
