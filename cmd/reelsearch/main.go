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

	"github.com/reelvault/reelsearch/internal/config"
	dbRedis "github.com/reelvault/reelsearch/internal/db/redis"
	logpkg "github.com/reelvault/reelsearch/internal/logger"
	"github.com/reelvault/reelsearch/internal/metrics"
	searchrepo "github.com/reelvault/reelsearch/internal/repository/search"
	storyrepo "github.com/reelvault/reelsearch/internal/repository/story"
	"github.com/reelvault/reelsearch/internal/transport/azsearch"
	bleveAnalyzer "github.com/reelvault/reelsearch/internal/transport/bleve"
	chiTransport "github.com/reelvault/reelsearch/internal/transport/chi"
	healthuc "github.com/reelvault/reelsearch/internal/usecase/health"
	highlightuc "github.com/reelvault/reelsearch/internal/usecase/highlight"
	searchuc "github.com/reelvault/reelsearch/internal/usecase/search"
	storyuc "github.com/reelvault/reelsearch/internal/usecase/story"
	"github.com/reelvault/reelsearch/internal/version"
)

// analyzer is what the composition root needs from either analysis driver.
type analyzer interface {
	highlightuc.Analyzer
	healthuc.AnalyzerChecker
}

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting reelsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("analysis_driver", cfg.Analysis.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register analysis metrics explicitly (no init())
	metrics.RegisterAnalysisMetrics()

	an, err := buildAnalyzer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create analyzer", zap.Error(err))
	}
	logger.Info("Analyzer created", zap.String("driver", cfg.Analysis.Driver))

	if err := ensureIndex(ctx, store); err != nil {
		logger.Fatal("Failed to ensure search index", zap.Error(err))
	}
	logger.Info("Search index ready", zap.String("index", searchrepo.IndexName))

	// Repositories and use case services
	storyRepo := storyrepo.New(store)
	searchRepo := searchrepo.New(store)

	highlightSvc := highlightuc.New(an)
	searchSvc := searchuc.New(searchRepo, highlightSvc)
	storySvc := storyuc.New(storyRepo, highlightSvc)
	healthSvc := healthuc.New(store, an)

	server := chiTransport.NewServer(searchSvc, storySvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

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

// buildAnalyzer selects the text-analysis driver from config.
func buildAnalyzer(cfg config.Config, logger *zap.Logger) (analyzer, error) {
	switch cfg.Analysis.Driver {
	case "azure":
		az := cfg.Analysis.Azure
		return azsearch.New(&azsearch.Config{
			Endpoint:   az.Endpoint,
			Index:      az.Index,
			APIKey:     az.APIKey,
			APIVersion: az.APIVersion,
			Analyzer:   az.Analyzer,
			Timeout:    time.Duration(az.TimeoutSec) * time.Second,
			Logger:     logger,
		}), nil
	case "bleve":
		return bleveAnalyzer.New()
	default:
		return nil, fmt.Errorf("unknown analysis driver %q", cfg.Analysis.Driver)
	}
}

// ensureIndex creates the full-text story index if it does not exist yet.
func ensureIndex(ctx context.Context, store *dbRedis.Store) error {
	exists, err := store.IndexExists(ctx, searchrepo.IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}
	if err := store.CreateIndex(ctx, searchrepo.Definition()); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
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

			requestID := chiMiddleware.GetReqID(r.Context())
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
