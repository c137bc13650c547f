// Package server exposes a gotrans Translator over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/ZaguanLabs/gotrans"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Lookuper is the part of *gotrans.Translator the server needs.
type Lookuper interface {
	Lookup(ctx context.Context, lang, word string) (gotrans.Translation, bool)
}

// HealthChecker abstracts a dependency health check.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}

// Config holds the listener address and timeouts.
type Config struct {
	Address       string
	LookupTimeout time.Duration // bound for one lookup (0 = request context only)
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Translator     Lookuper
	HealthCheckers []HealthChecker

	// Registerer receives the HTTP collectors; nil leaves them unregistered.
	Registerer prometheus.Registerer
	// Gatherer is served on /metrics; nil means prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
}

// Server is the HTTP front end of a Translator.
type Server struct {
	echo           *echo.Echo
	config         Config
	logger         logrus.FieldLogger
	translator     Lookuper
	healthCheckers []HealthChecker
	metrics        *httpMetrics
	gatherer       prometheus.Gatherer
}

// New creates a Server with its middleware and routes registered.
func New(cfg Config, logger logrus.FieldLogger, deps Deps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Server{
		echo:           e,
		config:         cfg,
		logger:         logger,
		translator:     deps.Translator,
		healthCheckers: deps.HealthCheckers,
		metrics:        newHTTPMetrics(deps.Registerer),
		gatherer:       gatherer,
	}

	e.HTTPErrorHandler = s.errorHandler
	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(s.metrics.collect())
	s.echo.Use(requestLogging(s.logger))
}

func (s *Server) setupRoutes() {
	s.echo.GET("/translate/*", s.translate)
	s.echo.GET("/healthz", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)
}

// Start listens on the configured address and blocks until the server stops.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	s.logger.Infof("started server on %s", s.config.Address)
	return s.echo.StartServer(srv)
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
