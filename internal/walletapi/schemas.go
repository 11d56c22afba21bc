package walletapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WalletDetail is the validated detail for a single wallet address. Amounts
// are decimal strings denominated in lovelace.
type WalletDetail struct {
	Lovelace        string        `json:"lovelace_balance"`
	RewardsLovelace string        `json:"rewards_lovelace"`
	Handles         []string      `json:"handles"`
	Tokens          []WalletToken `json:"tokens"`
}

// WalletToken is one native asset held by a wallet. Ticker and AdaPerUnit
// are nil when the upstream API has no data for them.
type WalletToken struct {
	Policy       string   `json:"policy"`
	AssetNameHex string   `json:"asset_name_hex"`
	Name         string   `json:"name"`
	Ticker       *string  `json:"ticker"`
	Quantity     string   `json:"quantity"`
	Decimals     int      `json:"decimals"`
	AdaPerUnit   *float64 `json:"ada_per_unit"`
}

// SpotPrice is the validated spot quote of ADA in one currency. The
// historical fields are nil when the upstream API has no data for them.
type SpotPrice struct {
	Currency   string   `json:"currency"`
	Spot       float64  `json:"spot"`
	Spot1hAgo  *float64 `json:"spot_1h_ago"`
	Spot24hAgo *float64 `json:"spot_24h_ago"`
}

func (p *SpotPrice) clone() *SpotPrice {
	if p == nil {
		return nil
	}
	out := *p
	if p.Spot1hAgo != nil {
		v := *p.Spot1hAgo
		out.Spot1hAgo = &v
	}
	if p.Spot24hAgo != nil {
		v := *p.Spot24hAgo
		out.Spot24hAgo = &v
	}
	return &out
}

type walletDetailRequest struct {
	Address string `json:"address"`
}

// Wire types mirror the upstream payloads. Pointer fields make presence
// checkable: both absent and null decode to nil, which is what the
// `required` rule rejects, while unknown extra fields are ignored.

type walletDetailJSON struct {
	Lovelace        *string           `json:"lovelace_balance" validate:"required"`
	RewardsLovelace *string           `json:"rewards_lovelace"`
	Handles         []string          `json:"handles"`
	Tokens          []walletTokenJSON `json:"tokens" validate:"omitempty,dive"`
}

type walletTokenJSON struct {
	Policy       *string  `json:"policy" validate:"required"`
	AssetNameHex *string  `json:"asset_name_hex" validate:"required"`
	Name         *string  `json:"name"`
	Ticker       *string  `json:"ticker"`
	Quantity     *string  `json:"quantity"`
	Decimals     *int     `json:"decimals"`
	AdaPerUnit   *float64 `json:"ada_per_unit"`
}

type spotPriceJSON struct {
	Currency   *string  `json:"currency"`
	Spot       *float64 `json:"spot" validate:"required"`
	Spot1hAgo  *float64 `json:"spot_1h_ago"`
	Spot24hAgo *float64 `json:"spot_24h_ago"`
}

// toWalletDetail converts the validated wire payload, substituting defaults
// for absent optional fields: amounts become "0", sequences become empty.
func (w walletDetailJSON) toWalletDetail() *WalletDetail {
	detail := &WalletDetail{
		Lovelace:        *w.Lovelace,
		RewardsLovelace: orDefault(w.RewardsLovelace, "0"),
		Handles:         w.Handles,
		Tokens:          make([]WalletToken, 0, len(w.Tokens)),
	}
	if detail.Handles == nil {
		detail.Handles = []string{}
	}

	for _, t := range w.Tokens {
		detail.Tokens = append(detail.Tokens, WalletToken{
			Policy:       *t.Policy,
			AssetNameHex: *t.AssetNameHex,
			Name:         orDefault(t.Name, ""),
			Ticker:       t.Ticker,
			Quantity:     orDefault(t.Quantity, "0"),
			Decimals:     orDefault(t.Decimals, 0),
			AdaPerUnit:   t.AdaPerUnit,
		})
	}

	return detail
}

func (p spotPriceJSON) toSpotPrice(currency string) *SpotPrice {
	return &SpotPrice{
		Currency:   currency,
		Spot:       *p.Spot,
		Spot1hAgo:  p.Spot1hAgo,
		Spot24hAgo: p.Spot24hAgo,
	}
}

func orDefault[T any](value *T, defaultValue T) T {
	if value == nil {
		return defaultValue
	}
	return *value
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeResponse parses a wallet API response body into the wire type T and
// checks its field contract. Malformed JSON comes back as a parse failure;
// a well-formed body that violates the contract comes back as a validation
// failure listing every violation.
func decodeResponse[T any](body []byte) (*T, error) {
	var target T
	if err := json.Unmarshal(body, &target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, newValidationError(fmt.Sprintf("invalid wallet API response: %s: expected %s", fieldPath(typeErr), typeErr.Type), err)
		}
		return nil, newParseError(err)
	}

	if err := validate.Struct(&target); err != nil {
		var violations validator.ValidationErrors
		if errors.As(err, &violations) {
			return nil, newValidationError(violationsMessage(violations), err)
		}
		return nil, newValidationError("invalid wallet API response", err)
	}

	return &target, nil
}

func violationsMessage(violations validator.ValidationErrors) string {
	problems := make([]string, 0, len(violations))
	for _, violation := range violations {
		problems = append(problems, fmt.Sprintf("%s: %s", trimNamespace(violation.Namespace()), violationReason(violation)))
	}
	return "invalid wallet API response: " + strings.Join(problems, "; ")
}

// trimNamespace drops the wire struct name from a validator namespace,
// leaving the JSON path of the offending field.
func trimNamespace(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func violationReason(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "required field is missing or null"
	default:
		return fmt.Sprintf("failed %q validation", violation.Tag())
	}
}

func fieldPath(typeErr *json.UnmarshalTypeError) string {
	if typeErr.Field != "" {
		return typeErr.Field
	}
	return "response"
}
