package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/internal/monitor"
	"github.com/adagate/ada-wallet-gateway/internal/utils"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

type PortfolioServiceInterface interface {
	GetPortfolio(ctx context.Context, address string) (*Portfolio, error)
	GetPortfolioWithQuote(ctx context.Context, address string, quoteCurrency string) (*Portfolio, error)
}

// Portfolio is a wallet's holdings with all amounts converted from on-chain
// units into display units.
type Portfolio struct {
	Address        string               `json:"address"`
	ADABalance     string               `json:"ada_balance"`
	StakingRewards string               `json:"staking_rewards"`
	Handles        []string             `json:"handles"`
	Tokens         []TokenHolding       `json:"tokens"`
	TotalADAValue  string               `json:"total_ada_value"`
	Quote          *walletapi.SpotPrice `json:"quote,omitempty"`
}

// TokenHolding is a native token position. ADAValue is nil when the wallet
// API has no ADA rate for the token; unpriced holdings are listed but never
// counted into TotalADAValue.
type TokenHolding struct {
	Policy       string   `json:"policy"`
	AssetNameHex string   `json:"asset_name_hex"`
	Name         string   `json:"name"`
	Ticker       *string  `json:"ticker"`
	Amount       string   `json:"amount"`
	Decimals     int      `json:"decimals"`
	ADAPerUnit   *float64 `json:"ada_per_unit"`
	ADAValue     *string  `json:"ada_value"`
}

type PortfolioService struct {
	apiClient      walletapi.ClientInterface
	monitorService monitor.MonitorServiceInterface
}

var _ PortfolioServiceInterface = new(PortfolioService)

func NewPortfolioService(apiClient walletapi.ClientInterface, monitorService monitor.MonitorServiceInterface) *PortfolioService {
	return &PortfolioService{
		apiClient:      apiClient,
		monitorService: monitorService,
	}
}

func (s *PortfolioService) GetPortfolio(ctx context.Context, address string) (*Portfolio, error) {
	walletDetail, err := s.apiClient.FetchWalletDetail(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("fetching wallet detail: %w", err)
	}

	portfolio, err := s.buildPortfolio(ctx, address, walletDetail)
	if err != nil {
		return nil, err
	}

	s.recordLookup(ctx, false)
	return portfolio, nil
}

// GetPortfolioWithQuote assembles the portfolio and fetches the spot quote
// for quoteCurrency concurrently, on two goroutines joined by channels.
func (s *PortfolioService) GetPortfolioWithQuote(ctx context.Context, address string, quoteCurrency string) (*Portfolio, error) {
	type detailResult struct {
		detail *walletapi.WalletDetail
		err    error
	}
	type quoteResult struct {
		quote *walletapi.SpotPrice
		err   error
	}

	detailCh := make(chan detailResult, 1)
	quoteCh := make(chan quoteResult, 1)

	go func() {
		detail, detailErr := s.apiClient.FetchWalletDetail(ctx, address)
		detailCh <- detailResult{detail: detail, err: detailErr}
	}()
	go func() {
		quote, quoteErr := s.apiClient.GetSpotPrice(ctx, quoteCurrency)
		quoteCh <- quoteResult{quote: quote, err: quoteErr}
	}()

	dRes := <-detailCh
	qRes := <-quoteCh

	if dRes.err != nil {
		return nil, fmt.Errorf("fetching wallet detail: %w", dRes.err)
	}
	if qRes.err != nil {
		return nil, fmt.Errorf("fetching %s quote: %w", quoteCurrency, qRes.err)
	}

	portfolio, err := s.buildPortfolio(ctx, address, dRes.detail)
	if err != nil {
		return nil, err
	}
	portfolio.Quote = qRes.quote

	s.recordLookup(ctx, true)
	return portfolio, nil
}

func (s *PortfolioService) buildPortfolio(ctx context.Context, address string, walletDetail *walletapi.WalletDetail) (*Portfolio, error) {
	adaBalance, err := utils.LovelaceToADA(walletDetail.Lovelace)
	if err != nil {
		return nil, fmt.Errorf("converting wallet balance: %w", err)
	}

	stakingRewards, err := utils.LovelaceToADA(walletDetail.RewardsLovelace)
	if err != nil {
		return nil, fmt.Errorf("converting staking rewards: %w", err)
	}

	tokens := make([]TokenHolding, 0, len(walletDetail.Tokens))
	pricedAmounts := []string{adaBalance, stakingRewards}
	for _, token := range walletDetail.Tokens {
		amount, amountErr := utils.FormatTokenAmount(token.Quantity, token.Decimals)
		if amountErr != nil {
			return nil, fmt.Errorf("formatting amount for token %s: %w", token.Policy, amountErr)
		}

		holding := TokenHolding{
			Policy:       token.Policy,
			AssetNameHex: token.AssetNameHex,
			Name:         token.Name,
			Ticker:       token.Ticker,
			Amount:       amount,
			Decimals:     token.Decimals,
			ADAPerUnit:   token.AdaPerUnit,
		}

		if token.AdaPerUnit != nil {
			adaValue, valueErr := utils.TokenValueInADA(token.Quantity, token.Decimals, *token.AdaPerUnit)
			if valueErr != nil {
				return nil, fmt.Errorf("computing ADA value for token %s: %w", token.Policy, valueErr)
			}
			holding.ADAValue = &adaValue
			pricedAmounts = append(pricedAmounts, adaValue)
		}

		tokens = append(tokens, holding)
	}

	totalADAValue, err := utils.AddADA(pricedAmounts...)
	if err != nil {
		return nil, fmt.Errorf("totaling portfolio value: %w", err)
	}

	logrus.WithContext(ctx).WithFields(logrus.Fields{
		"address": utils.TruncateString(address, 8),
		"tokens":  len(tokens),
	}).Debug("assembled wallet portfolio")

	return &Portfolio{
		Address:        address,
		ADABalance:     adaBalance,
		StakingRewards: stakingRewards,
		Handles:        walletDetail.Handles,
		Tokens:         tokens,
		TotalADAValue:  totalADAValue,
	}, nil
}

func (s *PortfolioService) recordLookup(ctx context.Context, quoted bool) {
	if s.monitorService == nil {
		return
	}

	labels := map[string]string{"quoted": fmt.Sprintf("%t", quoted)}
	if err := s.monitorService.MonitorCounters(monitor.PortfolioLookupsCounterTag, labels); err != nil {
		logrus.WithContext(ctx).Errorf("monitoring portfolio lookup: %s", err)
	}
}
