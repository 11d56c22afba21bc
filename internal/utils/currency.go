package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ADADecimals is the number of decimal places of the ADA denomination.
// One ADA corresponds to 1,000,000 lovelace.
const ADADecimals = 6

// LovelaceToADA converts an integer lovelace amount into its ADA
// representation with 6 decimal places, e.g. "5000000000" -> "5000.000000".
func LovelaceToADA(lovelace string) (string, error) {
	amount, err := decimal.NewFromString(lovelace)
	if err != nil {
		return "", fmt.Errorf("parsing lovelace amount %q: %w", lovelace, err)
	}

	return amount.Shift(-ADADecimals).StringFixed(ADADecimals), nil
}

// FormatTokenAmount converts a raw on-chain token quantity into its display
// representation using the token's registered decimal places,
// e.g. ("1000000", 6) -> "1.000000" and ("42", 0) -> "42".
func FormatTokenAmount(quantity string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("decimals must not be negative, got %d", decimals)
	}

	amount, err := decimal.NewFromString(quantity)
	if err != nil {
		return "", fmt.Errorf("parsing token quantity %q: %w", quantity, err)
	}

	return amount.Shift(-int32(decimals)).StringFixed(int32(decimals)), nil
}

// TokenValueInADA multiplies a raw token quantity, scaled by its decimal
// places, by the token's ADA rate and returns the result with 6 decimal
// places.
func TokenValueInADA(quantity string, decimals int, adaPerUnit float64) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("decimals must not be negative, got %d", decimals)
	}

	amount, err := decimal.NewFromString(quantity)
	if err != nil {
		return "", fmt.Errorf("parsing token quantity %q: %w", quantity, err)
	}

	value := amount.Shift(-int32(decimals)).Mul(decimal.NewFromFloat(adaPerUnit))
	return value.StringFixed(ADADecimals), nil
}

// AddADA sums ADA amounts expressed as decimal strings and returns the total
// with 6 decimal places. An empty argument list returns "0.000000".
func AddADA(amounts ...string) (string, error) {
	total := decimal.Zero
	for _, amount := range amounts {
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return "", fmt.Errorf("parsing ADA amount %q: %w", amount, err)
		}
		total = total.Add(value)
	}

	return total.StringFixed(ADADecimals), nil
}
