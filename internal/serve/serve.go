package serve

import (
	"fmt"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/adagate/ada-wallet-gateway/internal/crashtracker"
	"github.com/adagate/ada-wallet-gateway/internal/monitor"
	"github.com/adagate/ada-wallet-gateway/internal/serve/httperror"
	"github.com/adagate/ada-wallet-gateway/internal/serve/httphandler"
	"github.com/adagate/ada-wallet-gateway/internal/serve/middleware"
	"github.com/adagate/ada-wallet-gateway/internal/services"
	"github.com/adagate/ada-wallet-gateway/internal/walletapi"
)

const ServiceID = "ada-wallet-gateway"

type HTTPServerInterface interface {
	Run(conf Config)
}

type HTTPServer struct{}

func (h *HTTPServer) Run(conf Config) {
	run(conf)
}

type ServeOptions struct {
	Environment             string
	GitCommit               string
	Port                    int
	Version                 string
	MonitorService          monitor.MonitorServiceInterface
	CorsAllowedOrigins      []string
	CrashTrackerClient      crashtracker.CrashTrackerClient
	WalletAPIBaseURL        string
	WalletAPIAuthToken      string
	WalletAPITimeout        time.Duration
	WalletAPIMaxRetries     int
	WalletAPIRetryBaseDelay time.Duration
	RateLimitRequests       int
	RateLimitWindow         time.Duration
	apiClient               walletapi.ClientInterface
	portfolioService        services.PortfolioServiceInterface
}

// SetupDependencies uses the serve options to setup the dependencies for the server.
func (opts *ServeOptions) SetupDependencies() error {
	// Setup crash tracker:
	// Call crash tracker FlushEvents to flush buffered events before the server terminates
	defer opts.CrashTrackerClient.FlushEvents(2 * time.Second)
	// Call crash tracker Recover for recover from unhandled panics
	defer opts.CrashTrackerClient.Recover()
	// Set crash tracker LogAndReportErrors as DefaultReportErrorFunc
	httperror.SetDefaultReportErrorFunc(opts.CrashTrackerClient.LogAndReportErrors)

	// Setup the wallet API client:
	apiClient, err := walletapi.NewClient(walletapi.Options{
		BaseURL:        opts.WalletAPIBaseURL,
		AuthToken:      opts.WalletAPIAuthToken,
		Timeout:        opts.WalletAPITimeout,
		MaxRetries:     opts.WalletAPIMaxRetries,
		RetryBaseDelay: opts.WalletAPIRetryBaseDelay,
		MonitorService: opts.MonitorService,
	})
	if err != nil {
		return fmt.Errorf("error creating wallet API client: %w", err)
	}
	opts.apiClient = apiClient
	opts.portfolioService = services.NewPortfolioService(apiClient, opts.MonitorService)

	if opts.RateLimitWindow <= 0 {
		opts.RateLimitWindow = time.Minute
	}

	return nil
}

func Serve(opts ServeOptions, httpServer HTTPServerInterface) error {
	err := opts.SetupDependencies()
	if err != nil {
		return fmt.Errorf("error starting dependencies: %w", err)
	}

	// Start the server
	listenAddr := fmt.Sprintf(":%d", opts.Port)
	serverConfig := Config{
		ListenAddr:          listenAddr,
		Handler:             handleHTTP(opts),
		TCPKeepAlive:        time.Minute * 3,
		ShutdownGracePeriod: time.Second * 50,
		ReadTimeout:         time.Second * 5,
		// The write timeout covers the wallet API retry budget: three
		// attempts of up to 30s each plus backoff in between.
		WriteTimeout: time.Second * 100,
		IdleTimeout:  time.Minute * 2,
		OnStarting: func() {
			logrus.Info("Starting ADA Wallet Gateway Server")
			logrus.Infof("Listening on %s", listenAddr)
		},
		OnStopping: func() {
			logrus.Info("Stopping ADA Wallet Gateway Server")
		},
	}
	httpServer.Run(serverConfig)
	return nil
}

func handleHTTP(o ServeOptions) *chi.Mux {
	mux := chi.NewMux()

	// Middleware
	mux.Use(middleware.CorsMiddleware(o.CorsAllowedOrigins))
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.RecoverHandler)
	mux.Use(middleware.MetricsRequestHandler(o.MonitorService))

	mux.Get("/health", httphandler.HealthHandler{
		Version:   o.Version,
		ServiceID: ServiceID,
		ReleaseID: o.GitCommit,
	}.ServeHTTP)

	// Rate limited routes; the health check stays outside so orchestrator
	// probes are never throttled.
	mux.Group(func(r chi.Router) {
		if o.RateLimitRequests > 0 {
			r.Use(middleware.RateLimitMiddleware(o.RateLimitRequests, o.RateLimitWindow))
		}

		r.Route("/wallets", func(r chi.Router) {
			walletHandler := httphandler.WalletHandler{PortfolioService: o.portfolioService}
			exportHandler := httphandler.ExportHandler{
				PortfolioService: o.portfolioService,
				MonitorService:   o.MonitorService,
			}
			r.Get("/{address}", walletHandler.GetWallet)
			r.Get("/{address}/holdings.csv", exportHandler.ExportHoldings)
		})

		r.Get("/prices/{currency}", httphandler.PriceHandler{APIClient: o.apiClient}.GetSpotPrice)
	})

	return mux
}
