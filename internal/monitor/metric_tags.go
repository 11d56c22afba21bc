package monitor

type MetricTag string

const (
	HttpRequestDurationTag MetricTag = "requests_duration_seconds"
	// Wallet API requests:
	WalletAPIRequestDurationTag MetricTag = "wallet_api_request_duration_seconds"
	WalletAPIRequestsTotalTag   MetricTag = "wallet_api_requests_total"
	// Price cache:
	PriceCacheLookupsTotalTag MetricTag = "price_cache_lookups_total"
	// Portfolio:
	PortfolioLookupsCounterTag MetricTag = "portfolio_lookups_counter"
	HoldingsExportsCounterTag  MetricTag = "holdings_exports_counter"
)

func (m MetricTag) ListAll() []MetricTag {
	return []MetricTag{
		HttpRequestDurationTag,
		WalletAPIRequestDurationTag,
		WalletAPIRequestsTotalTag,
		PriceCacheLookupsTotalTag,
		PortfolioLookupsCounterTag,
		HoldingsExportsCounterTag,
	}
}
