package httphandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/adagate/ada-wallet-gateway/internal/serve/httperror"
	"github.com/adagate/ada-wallet-gateway/internal/serve/httpjson"
	"github.com/adagate/ada-wallet-gateway/internal/serve/validators"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

// PriceHandler serves the ADA spot price endpoint.
type PriceHandler struct {
	APIClient walletapi.ClientInterface
}

// GetSpotPrice returns the ADA spot price in the currency given in the URL
// path. Prices come from the client's short-lived cache, so repeated lookups
// of popular currencies do not hit the upstream wallet API.
func (h PriceHandler) GetSpotPrice(rw http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	validator := validators.NewLookupValidator()
	currency := validator.ValidatePriceLookup(chi.URLParam(req, "currency"))
	if validator.HasErrors() {
		httperror.BadRequest("", nil, validator.Errors).Render(rw)
		return
	}

	price, err := h.APIClient.GetSpotPrice(ctx, currency)
	if err != nil {
		httperror.FromWalletAPIError(ctx, err).Render(rw)
		return
	}

	httpjson.Render(rw, price)
}
