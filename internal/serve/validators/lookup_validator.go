package validators

import (
	"strings"

	"github.com/adagate/ada-wallet-gateway/internal/utils"
)

// LookupValidator validates the path and query parameters of the wallet and
// price lookup endpoints.
type LookupValidator struct {
	*Validator
}

func NewLookupValidator() *LookupValidator {
	return &LookupValidator{Validator: NewValidator()}
}

// ValidateWalletLookup checks the wallet address and the optional quote
// currency, returning their sanitized values. The quote currency is
// upper-cased so cache keys and upstream queries stay consistent.
func (lv *LookupValidator) ValidateWalletLookup(address, quoteCurrency string) (string, string) {
	address = strings.TrimSpace(address)
	lv.CheckError(utils.ValidateCardanoAddress(address), "address", "")

	quoteCurrency = strings.ToUpper(strings.TrimSpace(quoteCurrency))
	if quoteCurrency != "" {
		lv.CheckError(utils.ValidateCurrencyCode(quoteCurrency), "quote", "")
	}

	if lv.HasErrors() {
		return "", ""
	}

	return address, quoteCurrency
}

// ValidatePriceLookup checks the spot price currency, returning its
// sanitized value.
func (lv *LookupValidator) ValidatePriceLookup(currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	lv.CheckError(utils.ValidateCurrencyCode(currency), "currency", "")

	if lv.HasErrors() {
		return ""
	}

	return currency
}
