package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/tenderiq/internal/config"
	"github.com/kailas-cloud/tenderiq/internal/db"
	dbRedis "github.com/kailas-cloud/tenderiq/internal/db/redis"
	"github.com/kailas-cloud/tenderiq/internal/domain"
	"github.com/kailas-cloud/tenderiq/internal/domain/report"
	"github.com/kailas-cloud/tenderiq/internal/domain/search/filter"
	"github.com/kailas-cloud/tenderiq/internal/fixture"
	logpkg "github.com/kailas-cloud/tenderiq/internal/logger"
	"github.com/kailas-cloud/tenderiq/internal/metrics"
	budgetrepo "github.com/kailas-cloud/tenderiq/internal/repository/budget"
	reportrepo "github.com/kailas-cloud/tenderiq/internal/repository/report"
	synopsisrepo "github.com/kailas-cloud/tenderiq/internal/repository/synopsis"
	tenderrepo "github.com/kailas-cloud/tenderiq/internal/repository/tender"
	chiTransport "github.com/kailas-cloud/tenderiq/internal/transport/chi"
	openaiTransport "github.com/kailas-cloud/tenderiq/internal/transport/openai"
	analysisuc "github.com/kailas-cloud/tenderiq/internal/usecase/analysis"
	healthuc "github.com/kailas-cloud/tenderiq/internal/usecase/health"
	synopsisuc "github.com/kailas-cloud/tenderiq/internal/usecase/synopsis"
	tenderuc "github.com/kailas-cloud/tenderiq/internal/usecase/tender"
	usageuc "github.com/kailas-cloud/tenderiq/internal/usecase/usage"
	"github.com/kailas-cloud/tenderiq/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(&cfg, logger); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	logger.Info("Starting tenderiq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// redis and valkey speak the same commands; one rueidis store serves both drivers
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		return fmt.Errorf("create database store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterTenderMetrics()
	metrics.RegisterAnalysisMetrics()

	prefix := cfg.Storage.KeyPrefix
	tenderRepo := tenderrepo.New(store, prefix)
	tenderSvc := tenderuc.New(tenderRepo, logger)

	if cfg.Seed.File != "" {
		if err := seed(ctx, tenderSvc, cfg.Seed.File, logger); err != nil {
			return err
		}
	}

	healthSvc := healthuc.New(store)
	analysisSvc, budget := buildAnalysis(ctx, cfg, store, tenderSvc, healthSvc, logger)

	// Pass nil interface (not typed nil pointer!) if budget is not configured.
	var budgetReader usageuc.BudgetReader
	if budget != nil {
		budgetReader = budget
	}
	usageSvc := usageuc.New(budgetReader, cfg.Analysis.Provider)

	synopsisSvc := synopsisuc.New(synopsisrepo.New(store, cfg.Synopsis.KeyPrefix), tenderSvc, logger)

	server := chiTransport.NewServer(tenderSvc, analysisSvc, synopsisSvc, usageSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(chiTransport.Recoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}

// seed imports the fixture file when the store holds no tenders yet.
func seed(ctx context.Context, svc *tenderuc.Service, path string, logger *zap.Logger) error {
	existing, err := svc.List(ctx, filter.Params{})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("Seed skipped, tenders already stored", zap.Int("count", len(existing)))
		return nil
	}

	tenders, err := fixture.Load(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := svc.Import(ctx, tenders); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("Seeded tenders", zap.String("file", path), zap.Int("count", len(tenders)))
	return nil
}

// buildAnalysis assembles the report chain: OpenAI -> Instrumented (budget) -> Service (cache, dedupe).
// Without an API key the analysis endpoint answers 501.
func buildAnalysis(
	ctx context.Context,
	cfg *config.Config,
	store db.Store,
	tenders analysisuc.TenderReader,
	health *healthuc.Service,
	logger *zap.Logger,
) (chiTransport.AnalysisService, *analysisuc.BudgetTracker) {
	ac := cfg.Analysis
	if !ac.Enabled() {
		logger.Warn("Analysis provider not configured, analysis disabled")
		return disabledAnalysis{}, nil
	}

	analyzer := openaiTransport.NewAnalyzer(&openaiTransport.Config{
		APIKey:      ac.APIKey,
		BaseURL:     ac.BaseURL,
		Model:       ac.Model,
		Temperature: ac.Temperature,
		MaxTokens:   ac.MaxTokens,
		Timeout:     ac.Timeout(),
		Provider:    ac.Provider,
		Logger:      logger,
	})
	health.WithChecker("analysis", analyzer)

	var budget *analysisuc.BudgetTracker
	if ac.Budget.Limited() {
		action := analysisuc.BudgetActionWarn
		if ac.Budget.Action == "reject" {
			action = analysisuc.BudgetActionReject
		}
		budget = analysisuc.NewBudgetTracker(
			ac.Provider, ac.Budget.DailyTokenLimit, ac.Budget.MonthlyTokenLimit, action, logger,
		).WithStore(ctx, budgetrepo.New(store), cfg.Storage.KeyPrefix)
	}

	var budgetChecker analysisuc.BudgetChecker
	if budget != nil {
		budgetChecker = budget
	}
	generator := analysisuc.NewInstrumentedGenerator(analyzer, ac.Provider, ac.Model, budgetChecker, logger)

	cache := reportrepo.New(store, cfg.Storage.KeyPrefix, ac.CacheTTL(), metrics.AnalysisCacheTotal, logger)

	logger.Info("Analysis enabled",
		zap.String("provider", ac.Provider),
		zap.String("model", ac.Model),
		zap.Bool("budget", budget != nil),
	)
	return analysisuc.New(tenders, cache, generator, logger).WithTimeout(ac.Timeout()), budget
}

type disabledAnalysis struct{}

func (disabledAnalysis) Get(context.Context, string) (report.Report, error) {
	return report.Report{}, fmt.Errorf("analysis provider not configured: %w", domain.ErrNotImplemented)
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line: one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", routePattern(r)),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}
	return ""
}
