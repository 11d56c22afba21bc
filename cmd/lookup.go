package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"go/types"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cmdUtils "github.com/adagate/ada-wallet-gateway/cmd/utils"
	"github.com/adagate/ada-wallet-gateway/internal/services"
	"github.com/adagate/ada-wallet-gateway/internal/utils"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

type LookupCommand struct{}

type LookupServiceInterface interface {
	LookupWallet(ctx context.Context, apiOpts cmdUtils.WalletAPIOptions, address string) (*services.Portfolio, error)
	LookupPrice(ctx context.Context, apiOpts cmdUtils.WalletAPIOptions, currency string) (*walletapi.SpotPrice, error)
}

type LookupService struct{}

// Making sure that LookupService implements LookupServiceInterface
var _ LookupServiceInterface = (*LookupService)(nil)

func (s *LookupService) newAPIClient(apiOpts cmdUtils.WalletAPIOptions) (*walletapi.Client, error) {
	return walletapi.NewClient(walletapi.Options{
		BaseURL:        apiOpts.BaseURL,
		AuthToken:      apiOpts.AuthToken,
		Timeout:        apiOpts.Timeout,
		MaxRetries:     apiOpts.MaxRetries,
		RetryBaseDelay: apiOpts.RetryBaseDelay,
	})
}

func (s *LookupService) LookupWallet(ctx context.Context, apiOpts cmdUtils.WalletAPIOptions, address string) (*services.Portfolio, error) {
	apiClient, err := s.newAPIClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("creating wallet API client: %w", err)
	}

	return services.NewPortfolioService(apiClient, nil).GetPortfolio(ctx, address)
}

func (s *LookupService) LookupPrice(ctx context.Context, apiOpts cmdUtils.WalletAPIOptions, currency string) (*walletapi.SpotPrice, error) {
	apiClient, err := s.newAPIClient(apiOpts)
	if err != nil {
		return nil, fmt.Errorf("creating wallet API client: %w", err)
	}

	return apiClient.GetSpotPrice(ctx, currency)
}

func (c *LookupCommand) Command(lookupService LookupServiceInterface) *cobra.Command {
	apiOpts := cmdUtils.WalletAPIOptions{}
	lookupCmdConfigOpts := cmdUtils.ConfigOptions(cmdUtils.WalletAPIConfigOptions(&apiOpts))

	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "One-shot lookups against the wallet API, printed as JSON",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.PropagatePersistentPreRun(cmd, args)

			// Validate & ingest input parameters
			lookupCmdConfigOpts.Require()
			err := lookupCmdConfigOpts.SetValues()
			if err != nil {
				logrus.Fatalf("Error setting values of config options: %s", err.Error())
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			err := cmd.Help()
			if err != nil {
				logrus.Fatalf("Error calling help command: %s", err.Error())
			}
		},
	}
	err := lookupCmdConfigOpts.Init(lookupCmd)
	if err != nil {
		logrus.Fatalf("Error initializing lookupCmd config option: %s", err.Error())
	}

	lookupCmd.AddCommand(c.walletCommand(lookupService, &apiOpts))
	lookupCmd.AddCommand(c.priceCommand(lookupService, &apiOpts))

	return lookupCmd
}

func (c *LookupCommand) walletCommand(lookupService LookupServiceInterface, apiOpts *cmdUtils.WalletAPIOptions) *cobra.Command {
	var address string
	walletCmdConfigOpts := cmdUtils.ConfigOptions{
		{
			Name:      "address",
			Usage:     "The bech32 Cardano address of the wallet to look up",
			OptType:   types.String,
			ConfigKey: &address,
			Required:  true,
		},
	}

	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Fetch the portfolio of a wallet address",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.PropagatePersistentPreRun(cmd, args)

			// Validate & ingest input parameters
			walletCmdConfigOpts.Require()
			err := walletCmdConfigOpts.SetValues()
			if err != nil {
				logrus.Fatalf("Error setting values of config options: %s", err.Error())
			}

			address = strings.TrimSpace(address)
			if err = utils.ValidateCardanoAddress(address); err != nil {
				logrus.Fatalf("Error validating address: %s", err.Error())
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			portfolio, err := lookupService.LookupWallet(ctx, *apiOpts, address)
			if err != nil {
				logrus.WithContext(ctx).Fatalf("Error looking up wallet %s: %s", utils.TruncateString(address, 8), err.Error())
			}

			printJSON(cmd, portfolio)
		},
	}
	err := walletCmdConfigOpts.Init(walletCmd)
	if err != nil {
		logrus.Fatalf("Error initializing a walletCmd config option: %s", err.Error())
	}

	return walletCmd
}

func (c *LookupCommand) priceCommand(lookupService LookupServiceInterface, apiOpts *cmdUtils.WalletAPIOptions) *cobra.Command {
	var currency string
	priceCmdConfigOpts := cmdUtils.ConfigOptions{
		{
			Name:      "currency",
			Usage:     `The currency code to quote ADA in. Example: "USD".`,
			OptType:   types.String,
			ConfigKey: &currency,
			Required:  true,
		},
	}

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Fetch the ADA spot price in a currency",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmdUtils.PropagatePersistentPreRun(cmd, args)

			// Validate & ingest input parameters
			priceCmdConfigOpts.Require()
			err := priceCmdConfigOpts.SetValues()
			if err != nil {
				logrus.Fatalf("Error setting values of config options: %s", err.Error())
			}

			currency = strings.ToUpper(strings.TrimSpace(currency))
			if err = utils.ValidateCurrencyCode(currency); err != nil {
				logrus.Fatalf("Error validating currency: %s", err.Error())
			}
		},
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			spotPrice, err := lookupService.LookupPrice(ctx, *apiOpts, currency)
			if err != nil {
				logrus.WithContext(ctx).Fatalf("Error looking up %s price: %s", currency, err.Error())
			}

			printJSON(cmd, spotPrice)
		},
	}
	err := priceCmdConfigOpts.Init(priceCmd)
	if err != nil {
		logrus.Fatalf("Error initializing a priceCmd config option: %s", err.Error())
	}

	return priceCmd
}

// printJSON writes v to the command's stdout as indented JSON, so the output
// stays pipeable while logs go to stderr.
func printJSON(cmd *cobra.Command, v any) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("Error marshalling output: %s", err.Error())
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(body))
}
