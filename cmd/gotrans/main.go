// Command gotrans serves translate-shell lookups over HTTP, caching results
// in redis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ZaguanLabs/gotrans"
	"github.com/ZaguanLabs/gotrans/cache"
	"github.com/ZaguanLabs/gotrans/config"
	"github.com/ZaguanLabs/gotrans/engine"
	"github.com/ZaguanLabs/gotrans/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = gotrans.Version
	commit    = gotrans.GitCommit
	buildDate = gotrans.BuildDate
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("gotrans", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "%s - %s\n\nUsage: gotrans [flags]\n\n", gotrans.Name, gotrans.Description)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.Engine.Binary, "bin", cfg.Engine.Binary, "Path to the translate-shell binary")
	fs.StringVar(&cfg.Engine.Binary, "b", cfg.Engine.Binary, "Path to the translate-shell binary (short for -bin)")
	fs.StringVar(&cfg.Cache.RedisURL, "redis", cfg.Cache.RedisURL, "Redis URL")
	fs.StringVar(&cfg.Cache.RedisURL, "r", cfg.Cache.RedisURL, "Redis URL (short for -redis)")
	fs.StringVar(&cfg.Server.Address, "address", cfg.Server.Address, "Binding address")
	fs.StringVar(&cfg.Server.Address, "a", cfg.Server.Address, "Binding address (short for -address)")
	fs.DurationVar(&cfg.Server.LookupTimeout, "lookup-timeout", cfg.Server.LookupTimeout, "Upper bound for one lookup")
	fs.DurationVar(&cfg.Engine.Timeout, "engine-timeout", cfg.Engine.Timeout, "Upper bound for one engine invocation (0 = none)")
	fs.StringVar(&cfg.Cache.KeyPrefix, "key-prefix", cfg.Cache.KeyPrefix, "Prefix for redis hash keys")
	fs.BoolVar(&cfg.Cache.Memory, "memory-cache", cfg.Cache.Memory, "Cache in process memory instead of redis")
	fs.BoolVar(&cfg.Cache.SingleFlight, "single-flight", cfg.Cache.SingleFlight, "Share one engine run between identical concurrent misses")
	fs.StringVar(&cfg.OpenAI.Model, "openai-model", cfg.OpenAI.Model, "OpenAI model for the openai engine (needs OPENAI_API_KEY)")
	fs.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format (text or json)")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", gotrans.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		return err
	}
	logger.SetOutput(stderr)

	return serve(ctx, cfg, logger)
}

func serve(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	catalog, invoker, err := buildEngines(ctx, cfg, logger)
	if err != nil {
		return err
	}

	opts := []gotrans.TranslatorOption{
		gotrans.WithLogger(logger),
		gotrans.WithMetrics(gotrans.NewMetrics(reg)),
	}
	if cfg.Cache.SingleFlight {
		opts = append(opts, gotrans.WithSingleFlight())
	}

	var checkers []server.HealthChecker
	if cfg.Cache.Memory {
		logger.Info("using in-memory cache")
		opts = append(opts, gotrans.WithCache(cache.NewInMemoryCache()))
	} else {
		rc, err := cache.NewRedisCache(cache.RedisConfig{
			URL:         cfg.Cache.RedisURL,
			KeyPrefix:   cfg.Cache.KeyPrefix,
			DialTimeout: cfg.Cache.DialTimeout,
		})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rc.Close()

		logger.Info("connected to redis")
		opts = append(opts, gotrans.WithCache(rc))
		checkers = append(checkers, server.NewPingChecker("redis", rc.Ping))
	}

	translator := gotrans.NewTranslator(catalog, invoker, opts...)

	srv := server.New(server.Config{
		Address:       cfg.Server.Address,
		LookupTimeout: cfg.Server.LookupTimeout,
		ReadTimeout:   cfg.Server.ReadTimeout,
		WriteTimeout:  cfg.Server.WriteTimeout,
		IdleTimeout:   cfg.Server.IdleTimeout,
	}, logger, server.Deps{
		Translator:     translator,
		HealthCheckers: checkers,
		Registerer:     reg,
		Gatherer:       reg,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

// buildEngines discovers the translate-shell engines and appends the openai
// engine when an API key is configured. Every id in the catalog is routed
// through the returned invoker.
func buildEngines(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*gotrans.Catalog, gotrans.EngineInvoker, error) {
	ids, err := engine.Discover(ctx, cfg.Engine.Binary)
	if err != nil {
		return nil, nil, err
	}

	registry := engine.NewRegistry(engine.NewShellInvoker(engine.ShellConfig{
		Binary:  cfg.Engine.Binary,
		Timeout: cfg.Engine.Timeout,
	}))

	if cfg.OpenAI.APIKey != "" {
		ai := engine.NewOpenAIInvoker(engine.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.OpenAI.Model,
			BaseURL: cfg.OpenAI.BaseURL,
		})
		limited := gotrans.NewRateLimitedInvoker(ai, gotrans.RateLimitConfig{
			RequestsPerMinute: cfg.OpenAI.RequestsPerMinute,
		})
		registry.Register(engine.OpenAIEngine, gotrans.NewRetryableInvoker(limited, gotrans.DefaultRetryConfig()))
		ids = append(ids, engine.OpenAIEngine)
	}

	catalog, err := gotrans.NewCatalog(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("building engine catalog from %s: %w", cfg.Engine.Binary, err)
	}

	for _, id := range catalog.Engines() {
		logger.Infof("found engine %s", id)
	}

	return catalog, registry, nil
}
