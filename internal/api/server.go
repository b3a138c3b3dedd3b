// Package api exposes the analysis engine over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/api/middleware"
	"github.com/quantive/confluence/internal/api/response"
	"github.com/quantive/confluence/internal/config"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/metrics"
	"github.com/quantive/confluence/internal/report"
	"github.com/quantive/confluence/internal/storage/history"
)

// defaultListLimit caps unpaginated history listings.
const defaultListLimit = 50

// App is the application surface the API serves.
type App interface {
	Analyze(ctx context.Context, symbol string) (*analysis.StockAnalysis, error)
	Report(ctx context.Context, symbol string) (*report.Report, error)
	GetAnalysis(ctx context.Context, id string) (*analysis.StockAnalysis, error)
	ListAnalyses(ctx context.Context, filter history.ListFilter) ([]*analysis.StockAnalysis, error)
	Watchlist() []config.WatchlistItem
}

// Server is the HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	app        App
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	APIKey      string
	MetricsPath string
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg Config, app App, reg *metrics.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{logger: logger, app: app}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/analyze/{symbol}", s.handleAnalyze)
	mux.HandleFunc("POST /api/v1/reports/{symbol}", s.handleReport)
	mux.HandleFunc("GET /api/v1/analyses", s.handleListAnalyses)
	mux.HandleFunc("GET /api/v1/analyses/{id}", s.handleGetAnalysis)
	mux.HandleFunc("GET /api/v1/watchlist", s.handleWatchlist)

	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(cfg.APIKey)(handler)
	if reg != nil {
		handler = metrics.HTTPMiddleware(reg)(handler)

		outer := http.NewServeMux()
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		outer.Handle(path, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		outer.Handle("/", handler)
		handler = outer
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the server's full handler chain.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	result, err := s.app.Analyze(r.Context(), symbol)
	if err != nil {
		s.logger.Error("analysis failed", zap.String("symbol", symbol), zap.Error(err))
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(r.PathValue("symbol"))

	rep, err := s.app.Report(r.Context(), symbol)
	if err != nil {
		s.logger.Error("report failed", zap.String("symbol", symbol), zap.Error(err))
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, rep)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := history.ListFilter{
		Symbol:         strings.ToUpper(q.Get("symbol")),
		Recommendation: core.Recommendation(q.Get("recommendation")),
		Limit:          defaultListLimit,
	}

	results, err := s.app.ListAnalyses(r.Context(), filter)
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, results)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	result, err := s.app.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, response.StatusFor(err), err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, s.app.Watchlist())
}
