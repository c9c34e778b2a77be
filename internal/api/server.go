package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	apihandler "github.com/newthinker/tickr/internal/api/handler/api"
	"github.com/newthinker/tickr/internal/api/handler/web"
	"github.com/newthinker/tickr/internal/api/middleware"
	"github.com/newthinker/tickr/internal/api/response"
	"github.com/newthinker/tickr/internal/app"
	"github.com/newthinker/tickr/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for tickr
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	app        *app.App
}

// Config holds server configuration
type Config struct {
	Host      string
	Port      int
	APIKey    string
	RateLimit float64
	RateBurst int
	// TrustedProxies lists proxy IPs or CIDRs whose X-Forwarded-For is
	// believed when identifying rate-limited clients.
	TrustedProxies []string
	MetricsPath    string
	TemplatesDir   string
}

// Dependencies holds the services the routes are wired to.
// Metrics may be nil.
type Dependencies struct {
	App     *app.App
	Metrics *metrics.Registry
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.App == nil {
		return nil, fmt.Errorf("app is required")
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
		app:    deps.App,
	}

	// Set up routes
	if err := s.setupRoutes(cfg, deps); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	// Outermost first: recovery, access log, metrics, CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	if deps.Metrics != nil {
		handler = metrics.HTTPMiddleware(deps.Metrics)(handler)
	}
	handler = metrics.LoggingMiddleware(logger)(handler)
	handler = middleware.Recover(logger)(handler)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2*time.Minute + 15*time.Second, // chat providers may be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) error {
	// Web UI routes
	webHandler, err := web.NewHandler(cfg.TemplatesDir)
	if err != nil {
		return fmt.Errorf("creating web handler: %w", err)
	}
	webHandler.SetModelInfoProvider(deps.App)

	generateHandler := apihandler.NewGenerateHandler(deps.App)
	modelInfoHandler := apihandler.NewModelInfoHandler(deps.App)
	symbolHandler := apihandler.NewSymbolHandler(deps.App)
	reportsHandler := apihandler.NewReportsHandler(deps.App)

	clients, err := middleware.NewClientResolver(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parsing trusted proxies: %w", err)
	}
	rateLimit := middleware.RateLimit(cfg.RateLimit, cfg.RateBurst, clients)
	auth := middleware.APIKeyAuth(cfg.APIKey)

	s.mux.HandleFunc("GET /{$}", webHandler.Home)
	s.mux.Handle("POST /generate", rateLimit(http.HandlerFunc(generateHandler.Generate)))
	s.mux.HandleFunc("GET /model-info", modelInfoHandler.Get)

	s.mux.Handle("GET /api/v1/symbols/{symbol}/analysis", auth(http.HandlerFunc(symbolHandler.Analysis)))
	s.mux.Handle("GET /api/v1/symbols/{symbol}/indicators", auth(http.HandlerFunc(symbolHandler.Indicators)))
	s.mux.Handle("GET /api/v1/symbols/{symbol}/reports", auth(http.HandlerFunc(reportsHandler.List)))
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	if deps.Metrics != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.mux.Handle("GET "+path, promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	return nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.app.GetStats()
	stats["status"] = "ok"
	response.JSON(w, http.StatusOK, stats)
}
