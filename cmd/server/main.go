package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/northridge/backend/internal/config"
	"github.com/northridge/backend/internal/estimate"
	"github.com/northridge/backend/internal/handler"
	"github.com/northridge/backend/internal/logging"
	"github.com/northridge/backend/internal/metrics"
	"github.com/northridge/backend/internal/pricing"
	"github.com/northridge/backend/internal/repository"
	"github.com/northridge/backend/internal/service"
	"github.com/northridge/backend/internal/wizard"
	"github.com/northridge/backend/pkg/leadhook"
)

// routes groups the handlers mounted on the API mux.
type routes struct {
	health    *handler.Handler
	locations *handler.LocationHandler
	wizard    *handler.WizardHandler
	estimates *handler.EstimateHandler
	reports   *handler.ReportHandler
	leads     *handler.LeadHandler
	metrics   http.Handler
	limiter   *handler.RateLimiter
}

func newMux(rt routes) *http.ServeMux {
	limit := func(fn http.HandlerFunc) http.Handler {
		if rt.limiter == nil {
			return fn
		}
		return rt.limiter.Middleware(fn)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", rt.health.Health)
	mux.HandleFunc("GET /api/locations/{zip}", rt.locations.Get)

	mux.HandleFunc("GET /api/wizard/steps", rt.wizard.Steps)
	mux.Handle("POST /api/wizard/transition", limit(rt.wizard.Transition))

	mux.Handle("POST /api/estimates", limit(rt.estimates.Create))
	mux.HandleFunc("GET /api/estimates", rt.estimates.List)
	mux.HandleFunc("GET /api/estimates/{id}", rt.estimates.Get)
	mux.HandleFunc("GET /api/estimates/{id}/report", rt.reports.Download)

	mux.Handle("POST /api/leads", limit(rt.leads.Submit))

	if rt.metrics != nil {
		mux.Handle("GET /metrics", rt.metrics)
	}
	return mux
}

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	tables, err := pricing.LoadTables(cfg.PricingTablesPath)
	if err != nil {
		logging.Fatal("failed to load pricing tables", "error", err, "path", cfg.PricingTablesPath)
	}

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	observer, err := metrics.NewPrometheusObserver("", nil)
	if err != nil {
		logging.Fatal("failed to register metrics", "error", err)
	}

	sink := leadhook.New(cfg.LeadWebhookURL, cfg.LeadWebhookSecret)
	if cfg.LeadWebhookURL == "" {
		slog.Warn("LEAD_WEBHOOK_URL not set, leads will be accepted and discarded")
	}

	estimateRepo := repository.NewPgEstimateRepository(pool)
	estimateService := service.NewEstimateService(estimate.New(tables), estimateRepo, observer)
	wizardService := service.NewWizardService(wizard.NewFlow(tables), estimateService, observer)
	leadService := service.NewLeadService(sink, estimateService, observer)
	reportService := service.NewReportService(estimateService)

	limiter := handler.NewRateLimiter(cfg.RateLimitPerMin, cfg.TrustedProxies)
	defer limiter.Close()

	h := handler.New(pool, cfg.FrontendURL)
	mux := newMux(routes{
		health:    h,
		locations: handler.NewLocationHandler(tables),
		wizard:    handler.NewWizardHandler(wizardService),
		estimates: handler.NewEstimateHandler(estimateService),
		reports:   handler.NewReportHandler(reportService),
		leads:     handler.NewLeadHandler(leadService),
		metrics:   promhttp.Handler(),
		limiter:   limiter,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.SecurityHeaders(handler.RequestLogger(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
