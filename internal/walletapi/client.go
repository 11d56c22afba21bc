package walletapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/internal/monitor"
	"github.com/adagate/ada-wallet-gateway/internal/serve/httpclient"
)

const (
	walletDetailPath = "/v1/wallet/detailed"
	spotPricePath    = "/v1/price/spot"

	// ReferenceCurrency is the currency wallet balances are denominated in.
	// Quoting it against itself is the identity price and never goes to the
	// network.
	ReferenceCurrency = "ADA"

	DefaultTimeout        = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryBaseDelay = 1 * time.Second
)

// ClientInterface defines the interface for interacting with the wallet API.
type ClientInterface interface {
	FetchWalletDetail(ctx context.Context, address string) (*WalletDetail, error)
	GetSpotPrice(ctx context.Context, currency string) (*SpotPrice, error)
}

// Options configures a wallet API Client.
type Options struct {
	// BaseURL is the root of the wallet API, e.g. https://api.example.com.
	BaseURL string
	// AuthToken is sent as a bearer token on every request.
	AuthToken string
	// Timeout bounds each attempt, not the whole call. Defaults to 30s.
	Timeout time.Duration
	// MaxRetries is the total attempt budget per call. Values below one mean
	// a single attempt; the serve configuration defaults this to 3.
	MaxRetries int
	// RetryBaseDelay seeds the exponential backoff between attempts.
	// Defaults to 1s.
	RetryBaseDelay time.Duration
	// PriceCacheMaxEntries and PriceCacheTTL bound the spot price cache.
	// They default to 100 entries and 10 minutes.
	PriceCacheMaxEntries int
	PriceCacheTTL        time.Duration
	// HTTPClient defaults to httpclient.DefaultClient().
	HTTPClient httpclient.HTTPClientInterface
	// Log defaults to the logrus standard logger.
	Log logrus.FieldLogger
	// MonitorService is optional. When set, request durations, request
	// counts and cache lookups are recorded on it.
	MonitorService monitor.MonitorServiceInterface
}

func (o Options) Validate() error {
	if o.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(o.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if o.AuthToken == "" {
		return fmt.Errorf("auth token is required")
	}
	return nil
}

// Client provides resilient typed access to the wallet API. It is safe for
// concurrent use; each call runs on the caller's goroutine.
type Client struct {
	basePath       string
	authToken      string
	timeout        time.Duration
	maxRetries     uint
	retryBaseDelay time.Duration
	httpClient     httpclient.HTTPClientInterface
	log            logrus.FieldLogger
	monitorService monitor.MonitorServiceInterface
	prices         *priceCache
}

// NewClient creates a wallet API client from opts, filling unset options
// with defaults.
func NewClient(opts Options) (*Client, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validating wallet API client options: %w", err)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if opts.PriceCacheMaxEntries == 0 {
		opts.PriceCacheMaxEntries = DefaultPriceCacheMaxEntries
	}
	if opts.PriceCacheTTL == 0 {
		opts.PriceCacheTTL = DefaultPriceCacheTTL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = httpclient.DefaultClient()
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}

	maxRetries := opts.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	prices, err := newPriceCache(opts.PriceCacheMaxEntries, opts.PriceCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("creating price cache: %w", err)
	}

	return &Client{
		basePath:       strings.TrimSuffix(opts.BaseURL, "/"),
		authToken:      opts.AuthToken,
		timeout:        opts.Timeout,
		maxRetries:     uint(maxRetries),
		retryBaseDelay: opts.RetryBaseDelay,
		httpClient:     opts.HTTPClient,
		log:            opts.Log,
		monitorService: opts.MonitorService,
		prices:         prices,
	}, nil
}

// FetchWalletDetail retrieves the balance, staking rewards, handles and
// token holdings for a wallet address. Results are never cached.
func (c *Client) FetchWalletDetail(ctx context.Context, address string) (*WalletDetail, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, newValidationError("address is required", nil)
	}

	var detail *WalletDetail
	err := c.withRetries(ctx, "wallet_detail", func() error {
		body, doErr := c.do(ctx, requestDescriptor{
			method: http.MethodPost,
			path:   walletDetailPath,
			label:  "wallet_detail",
			body:   walletDetailRequest{Address: address},
		})
		if doErr != nil {
			return doErr
		}

		wire, decodeErr := decodeResponse[walletDetailJSON](body)
		if decodeErr != nil {
			return decodeErr
		}

		detail = wire.toWalletDetail()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return detail, nil
}

// GetSpotPrice returns the spot price of ADA in the given currency. Only
// successful lookups are cached, for the cache TTL. The reference currency
// short-circuits to the identity quote without touching cache or network.
func (c *Client) GetSpotPrice(ctx context.Context, currency string) (*SpotPrice, error) {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return nil, newValidationError("currency is required", nil)
	}

	if code == ReferenceCurrency {
		c.recordCacheLookup("bypass", code)
		return referenceQuote(), nil
	}

	if price, ok := c.prices.get(code); ok {
		c.recordCacheLookup("hit", code)
		return price, nil
	}
	c.recordCacheLookup("miss", code)

	var price *SpotPrice
	err := c.withRetries(ctx, "spot_price", func() error {
		body, doErr := c.do(ctx, requestDescriptor{
			method: http.MethodGet,
			path:   spotPricePath,
			label:  "spot_price",
			query:  url.Values{"currency": []string{code}},
		})
		if doErr != nil {
			return doErr
		}

		wire, decodeErr := decodeResponse[spotPriceJSON](body)
		if decodeErr != nil {
			return decodeErr
		}

		price = wire.toSpotPrice(code)
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.prices.put(code, price)
	return price, nil
}

func referenceQuote() *SpotPrice {
	hourAgo, dayAgo := 1.0, 1.0
	return &SpotPrice{
		Currency:   ReferenceCurrency,
		Spot:       1,
		Spot1hAgo:  &hourAgo,
		Spot24hAgo: &dayAgo,
	}
}

func (c *Client) recordCacheLookup(result, currency string) {
	if c.monitorService == nil {
		return
	}

	labels := monitor.CacheLookupLabels{Result: result, Currency: currency}
	if err := c.monitorService.MonitorCounters(monitor.PriceCacheLookupsTotalTag, labels.ToMap()); err != nil {
		c.log.Errorf("monitoring price cache lookup: %s", err)
	}
}

var _ ClientInterface = (*Client)(nil)
