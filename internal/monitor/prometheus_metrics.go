package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

func PrometheusMetrics() map[MetricTag]prometheus.Collector {
	metrics := make(map[MetricTag]prometheus.Collector)

	for tag, summaryVec := range SummaryVecMetrics {
		metrics[tag] = summaryVec
	}

	for tag, counter := range CounterMetrics {
		metrics[tag] = counter
	}

	for tag, histogramVec := range HistogramVecMetrics {
		metrics[tag] = histogramVec
	}

	for tag, counterVec := range CounterVecMetrics {
		metrics[tag] = counterVec
	}

	return metrics
}

var SummaryVecMetrics = map[MetricTag]*prometheus.SummaryVec{
	HttpRequestDurationTag: prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: "awg", Subsystem: "http", Name: string(HttpRequestDurationTag),
		Help: "HTTP requests durations, sliding window = 10m",
	},
		[]string{"status", "route", "method"},
	),
}

var CounterMetrics = map[MetricTag]prometheus.Counter{
	HoldingsExportsCounterTag: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "awg", Subsystem: "business", Name: string(HoldingsExportsCounterTag),
		Help: "A counter of how many times wallet holdings were exported as CSV",
	}),
}

var HistogramVecMetrics = map[MetricTag]*prometheus.HistogramVec{
	WalletAPIRequestDurationTag: prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "awg", Subsystem: "wallet_api", Name: string(WalletAPIRequestDurationTag),
		Help: "A histogram of the wallet API request durations",
	},
		WalletAPILabelNames,
	),
}

var CounterVecMetrics = map[MetricTag]*prometheus.CounterVec{
	WalletAPIRequestsTotalTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "awg", Subsystem: "wallet_api", Name: string(WalletAPIRequestsTotalTag),
		Help: "A counter of the wallet API requests",
	},
		WalletAPILabelNames,
	),
	PriceCacheLookupsTotalTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "awg", Subsystem: "cache", Name: string(PriceCacheLookupsTotalTag),
		Help: "A counter of spot price cache lookups by result",
	},
		[]string{"result", "currency"},
	),
	PortfolioLookupsCounterTag: prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "awg", Subsystem: "business", Name: string(PortfolioLookupsCounterTag),
		Help: "Portfolio Lookups Counter",
	},
		[]string{"quoted"},
	),
}
