package inspect

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/kbukum/ioc/di"
	"github.com/kbukum/ioc/logger"
)

// Server exposes a container's binding table over HTTP. It serves HTTP/1.1
// and cleartext HTTP/2 on the same port.
type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     Config
	container  di.Container
	service    string
	metrics    *Metrics
	log        *logger.Logger
}

// New creates a Server for c and registers its routes. Call Start to
// listen.
func New(cfg Config, service string, c di.Container, log *logger.Logger) *Server {
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	// Keys are package-qualified type names; a client escapes the slashes
	// and gin matches the raw path, then unescapes the parameter.
	engine.UseRawPath = true

	h2s := &http2.Server{
		MaxConcurrentStreams: 250,
		IdleTimeout:          120 * time.Second,
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      h2c.NewHandler(engine, h2s),
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.IdleTimeout) * time.Second,
		},
		engine:    engine,
		config:    cfg,
		container: c,
		service:   service,
		metrics:   NewMetrics(c),
		log:       log.WithComponent("inspect"),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.Use(Recovery(s.log), RequestID(), RequestLogger(s.log), s.metrics.Middleware())

	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/version", s.handleVersion)
	s.engine.GET("/metrics", s.metrics.Handler())

	bindings := s.engine.Group("/bindings")
	bindings.GET("", s.handleBindings)
	bindings.GET("/:key/diagnose", s.handleDiagnose)
	if s.config.AllowResolve {
		bindings.GET("/:key/resolve", s.handleResolve)
	}
}

// Handler returns the root handler, including the h2c wrapper.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start binds the port and begins serving. It returns once the listener is
// bound so the caller knows the port is ready; serving continues in a goroutine.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("inspect server failed to bind %s: %w", s.httpServer.Addr, err)
	}
	s.httpServer.Addr = listener.Addr().String()

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("Server error", logger.Fields(logger.FieldError, err.Error()))
		}
	}()

	s.log.Info("Inspect server started", logger.Fields(
		"addr", s.httpServer.Addr,
		"allow_resolve", s.config.AllowResolve,
	))
	return nil
}

// Stop gracefully shuts down the server with a 5-second deadline.
func (s *Server) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("inspect server shutdown: %w", err)
	}
	s.log.Info("Inspect server stopped")
	return nil
}

// Metrics returns the server's Prometheus instruments.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Addr returns the listen address. After Start it reflects the bound port,
// which matters when the configured port is 0.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}
