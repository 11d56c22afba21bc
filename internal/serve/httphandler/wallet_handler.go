package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adagate/ada-wallet-gateway/internal/serve/httperror"
	"github.com/adagate/ada-wallet-gateway/internal/serve/httpjson"
	"github.com/adagate/ada-wallet-gateway/internal/serve/validators"
	"github.com/adagate/ada-wallet-gateway/internal/services"
)

// WalletHandler serves the wallet portfolio endpoint.
type WalletHandler struct {
	PortfolioService services.PortfolioServiceInterface
}

// GetWallet returns the portfolio of the wallet address in the URL path. The
// optional "quote" query parameter attaches the ADA spot price in that
// currency to the response.
func (h WalletHandler) GetWallet(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	validator := validators.NewLookupValidator()
	address, quoteCurrency := validator.ValidateWalletLookup(chi.URLParam(req, "address"), req.URL.Query().Get("quote"))
	if validator.HasErrors() {
		httperror.BadRequest("", nil, validator.Errors).Render(rw)
		return
	}

	var portfolio *services.Portfolio
	var err error
	if quoteCurrency != "" {
		portfolio, err = h.PortfolioService.GetPortfolioWithQuote(ctx, address, quoteCurrency)
	} else {
		portfolio, err = h.PortfolioService.GetPortfolio(ctx, address)
	}
	if err != nil {
		httperror.FromWalletAPIError(ctx, err).Render(rw)
		return
	}

	httpjson.Render(rw, portfolio)
}
