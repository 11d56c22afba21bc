package utils

import (
	"go/types"
	"time"

	"github.com/adagate/ada-wallet-gateway/internal/crashtracker"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

// WalletAPIOptions carries the upstream wallet API connection settings shared
// by every command that talks to the API.
type WalletAPIOptions struct {
	BaseURL        string
	AuthToken      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
}

// WalletAPIConfigOptions returns the config options for the upstream wallet
// API connection: `WALLET_API_*`.
func WalletAPIConfigOptions(opts *WalletAPIOptions) []*ConfigOption {
	return []*ConfigOption{
		{
			Name:           "wallet-api-base-url",
			Usage:          "The base URL of the upstream Cardano wallet API.",
			OptType:        types.String,
			CustomSetValue: SetConfigOptionURLString,
			ConfigKey:      &opts.BaseURL,
			Required:       true,
		},
		{
			Name:      "wallet-api-auth-token",
			Usage:     "The bearer token sent on every request to the upstream wallet API.",
			OptType:   types.String,
			ConfigKey: &opts.AuthToken,
			Required:  true,
		},
		{
			Name:           "wallet-api-timeout-ms",
			Usage:          "The hard timeout in milliseconds for each attempt against the upstream wallet API.",
			OptType:        types.Int,
			CustomSetValue: SetConfigOptionDurationMS,
			ConfigKey:      &opts.Timeout,
			FlagDefault:    int(walletapi.DefaultTimeout / time.Millisecond),
			Required:       true,
		},
		{
			Name:        "wallet-api-max-retries",
			Usage:       "The total attempt budget per upstream call, counting the first attempt.",
			OptType:     types.Int,
			ConfigKey:   &opts.MaxRetries,
			FlagDefault: walletapi.DefaultMaxRetries,
			Required:    true,
		},
		{
			Name:           "wallet-api-retry-base-delay-ms",
			Usage:          "The base delay in milliseconds for the exponential backoff between retried upstream calls.",
			OptType:        types.Int,
			CustomSetValue: SetConfigOptionDurationMS,
			ConfigKey:      &opts.RetryBaseDelay,
			FlagDefault:    int(walletapi.DefaultRetryBaseDelay / time.Millisecond),
			Required:       true,
		},
	}
}

func CrashTrackerTypeConfigOption(targetPointer interface{}) *ConfigOption {
	return &ConfigOption{
		Name:           "crash-tracker-type",
		Usage:          `Crash tracker type. Options: "SENTRY", "DRY_RUN"`,
		OptType:        types.String,
		CustomSetValue: SetConfigOptionCrashTrackerType,
		ConfigKey:      targetPointer,
		FlagDefault:    string(crashtracker.CrashTrackerTypeDryRun),
		Required:       true,
	}
}
