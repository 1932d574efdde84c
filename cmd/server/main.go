package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/houzhh15/transcript-minutes/cmd/server/internal/api"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/composer"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/config"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/domain/minutes"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/middleware"
	"github.com/houzhh15/transcript-minutes/cmd/server/internal/translation"
	"github.com/houzhh15/transcript-minutes/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	acquireTimeout  = 30 * time.Second
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "load .env failed: %v\n", err)
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logInstance, err := logger.Init(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		Format:      cfg.Log.Format,
		File:        cfg.Log.File,
		WithSource:  !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	appLogger := logInstance.With("component", "web-server")

	// Validate configuration
	if err := config.ValidateConfig(cfg); err != nil {
		appLogger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	appLogger.Info("configuration loaded", "env", cfg.Server.Env, "port", cfg.Server.Port, "provider", cfg.LLM.Provider)
	if cfg.IsDevelopment() {
		appLogger.Debug(cfg.PrintConfig())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("server shutdown complete")
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	svc, closeFn, err := buildService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeFn()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.GetServerAddr(),
		Handler:           newRouter(cfg, svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// buildService constructs both upstream clients once and injects them.
func buildService(ctx context.Context, cfg *config.Config, log *slog.Logger) (*minutes.Service, func(), error) {
	target, err := language.Parse(cfg.Translation.TargetLanguage)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid TRANSLATE_TARGET_LANGUAGE %q: %w", cfg.Translation.TargetLanguage, err)
	}

	var credentials []byte
	if cfg.Translation.CredentialsBase64 != "" {
		credentials, err = translation.DecodeCredentials(cfg.Translation.CredentialsBase64)
		if err != nil {
			return nil, nil, err
		}
	}

	translator, err := translation.NewGoogleTranslator(ctx, translation.GoogleOptions{
		CredentialsJSON: credentials,
		APIKey:          cfg.Translation.APIKey,
		Endpoint:        cfg.Translation.Endpoint,
	})
	if err != nil {
		return nil, nil, err
	}

	comp, err := composer.New(ctx, composer.Options{
		Provider:  cfg.LLM.Provider,
		Model:     cfg.LLM.Model,
		MaxTokens: cfg.LLM.MaxTokens,
		APIKey:    cfg.LLM.APIKey(),
		BaseURL:   cfg.LLM.BaseURL,
	})
	if err != nil {
		_ = translator.Close()
		return nil, nil, err
	}

	log.Info("upstream clients ready",
		"translator", translator.Name(),
		"composer", comp.Name(),
		"model", cfg.LLM.Model,
		"target", target.String(),
	)

	closeFn := func() {
		if err := translator.Close(); err != nil {
			log.Warn("close translate client", "error", err)
		}
	}
	return minutes.NewService(translator, comp, target, log.With("component", "minutes")), closeFn, nil
}

func newRouter(cfg *config.Config, svc api.Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	limiter := middleware.NewConcurrencyLimiter(cfg.Server.MaxConcurrent, acquireTimeout)
	api.SetupRoutes(r, svc, limiter.Middleware())
	return r
}
