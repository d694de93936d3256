package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/drivelane/showroom/internal/catalog"
	"github.com/drivelane/showroom/internal/config"
	"github.com/drivelane/showroom/internal/db"
	dbRedis "github.com/drivelane/showroom/internal/db/redis"
	logpkg "github.com/drivelane/showroom/internal/logger"
	"github.com/drivelane/showroom/internal/metrics"
	"github.com/drivelane/showroom/internal/nlu"
	historyrepo "github.com/drivelane/showroom/internal/repository/history"
	chiTransport "github.com/drivelane/showroom/internal/transport/chi"
	openaiTransport "github.com/drivelane/showroom/internal/transport/openai"
	chatuc "github.com/drivelane/showroom/internal/usecase/chat"
	compareuc "github.com/drivelane/showroom/internal/usecase/compare"
	financeuc "github.com/drivelane/showroom/internal/usecase/finance"
	healthuc "github.com/drivelane/showroom/internal/usecase/health"
	searchuc "github.com/drivelane/showroom/internal/usecase/search"
	"github.com/drivelane/showroom/internal/version"
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

	logger.Info("Starting showroom API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
	)

	// Load the vehicle catalog — an empty or invalid catalog is fatal.
	vehicles, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	idx := catalog.NewIndex(vehicles)
	logger.Info("Catalog loaded", zap.Int("vehicles", idx.Len()))

	// Register domain metrics explicitly (no init())
	metrics.RegisterDomainMetrics()

	// Chat-history store: Redis when configured, in-memory otherwise.
	var store db.Store
	if len(cfg.History.Addrs) > 0 {
		redisStore, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.History.Addrs,
			Username: cfg.History.Username,
			Password: cfg.History.Password,
			DB:       cfg.History.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create history store", zap.Error(err))
		}
		defer redisStore.Close()

		ctx := context.Background()
		readiness := time.Duration(cfg.History.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("History store not ready", zap.Error(err))
		}
		logger.Info("Connected to history store", zap.Strings("addrs", cfg.History.Addrs))
		store = redisStore
	} else {
		logger.Warn("No history store configured, using in-memory fallback")
	}

	histStore := historyrepo.NewStore(
		store, cfg.History.Window, time.Duration(cfg.History.TTLSec)*time.Second)

	// Completion provider — optional, chat degrades without it.
	var completer chatuc.Completer
	var completerPinger healthuc.Pinger
	if cfg.LLM.APIKey != "" {
		c, err := openaiTransport.NewCompleter(openaiTransport.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: time.Duration(cfg.LLM.TimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create completion client", zap.Error(err))
		}
		completer = c
		completerPinger = c
		logger.Info("Completion provider configured", zap.String("model", cfg.LLM.Model))
	} else {
		logger.Warn("No completion provider configured, chat fallback disabled")
	}

	// Create use case services
	parser := nlu.NewParser(idx)
	searchSvc := searchuc.New(parser, idx, logger).WithLimit(cfg.Catalog.SearchLimit)
	compareSvc := compareuc.New(idx, parser, logger)
	financeSvc := financeuc.New(logger).WithOptions(financeuc.Options{
		ResidualRate:       cfg.Finance.ResidualRate,
		SubscriptionRate:   cfg.Finance.SubscriptionRate,
		MonthlyInsurance:   cfg.Finance.MonthlyInsurance,
		MonthlyMaintenance: cfg.Finance.MonthlyMaintenance,
	})
	chatSvc := chatuc.New(parser, searchSvc, compareSvc, financeSvc, histStore, completer, logger)

	healthSvc := healthuc.New(version.Version, logger).
		Register("history", histStore, true)
	if completerPinger != nil {
		healthSvc.Register("completion", completerPinger, false)
	}

	// Create chi server
	server := chiTransport.NewServer(searchSvc, compareSvc, financeSvc, chatSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
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
