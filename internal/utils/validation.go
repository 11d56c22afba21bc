package utils

import (
	"fmt"
	"net/url"
	"regexp"

	"github.com/asaskevich/govalidator"
)

var (
	// rxCardanoAddress matches Shelley-era bech32 payment and stake
	// addresses. The data part uses the bech32 charset, which excludes the
	// characters 1, b, i and o.
	rxCardanoAddress         = regexp.MustCompile(`^(addr|addr_test|stake|stake_test)1[qpzry9x8gf2tvdw0s3jn54khce6mua7l]{20,}$`)
	rxCurrencyCode           = regexp.MustCompile(`^[A-Za-z]{3,5}$`)
	ErrInvalidCardanoAddress = fmt.Errorf("the provided address is not a valid bech32 Cardano address")
	ErrInvalidCurrencyCode   = fmt.Errorf("the provided currency code is not valid")
)

// ValidateCardanoAddress checks that the given string looks like a bech32
// Cardano address. It only validates the shape, not the embedded checksum;
// the wallet API remains the authority on whether the address exists.
func ValidateCardanoAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	if !rxCardanoAddress.MatchString(address) {
		return ErrInvalidCardanoAddress
	}

	return nil
}

// ValidateCurrencyCode checks that the given string is a plausible quote
// currency code such as "USD", "EUR" or "ADA".
func ValidateCurrencyCode(code string) error {
	if code == "" {
		return fmt.Errorf("currency code cannot be empty")
	}

	if !rxCurrencyCode.MatchString(code) {
		return ErrInvalidCurrencyCode
	}

	return nil
}

// ValidateURL checks that the given string is an absolute URL with both a
// scheme and a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("url cannot be empty")
	}

	if !govalidator.IsURL(rawURL) {
		return fmt.Errorf("%q is not a valid url", rawURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parsing url %q: %w", rawURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url %q should have both a scheme and a host", rawURL)
	}

	return nil
}
