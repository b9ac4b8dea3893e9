// Package api provides the HTTP server for the proposal page.
//
// It serves the rendered page, its chart as SVG, PNG and a spreadsheet,
// the embedded static assets, and a small JSON API over the same data.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/smartcam/internal/chart"
	"github.com/seenimoa/smartcam/internal/config"
	"github.com/seenimoa/smartcam/internal/content"
	"github.com/seenimoa/smartcam/internal/export"
	"github.com/seenimoa/smartcam/internal/infra"
	"github.com/seenimoa/smartcam/internal/page"
	"github.com/seenimoa/smartcam/pkg/utils"
	"github.com/seenimoa/smartcam/web"
)

// Version is reported by the health endpoint; set by the CLI at startup.
var Version = "dev"

const (
	maxSpecBytes = 64 << 10 // bound on POST /api/v1/chart bodies
	renderTTL    = 10 * time.Minute
	renderBurst  = 30 // POST /api/v1/chart requests before throttling
	renderRefill = time.Second
)

// Server is the HTTP server.
type Server struct {
	router  chi.Router
	cfg     *config.Config
	content content.Page
	started time.Time
	updated time.Time // footer date of the served page
	renders *infra.Cache[string, []byte] // encoded PNG and XLSX, keyed by artifact
	limiter *infra.RateLimiter           // POST /api/v1/chart
}

// NewServer creates a configured server with all routes and middleware.
// The content is validated once here; handlers render it on every request.
func NewServer(cfg *config.Config, p content.Page) (*Server, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	started := time.Now()
	updated, err := cfg.Build.Stamp(started)
	if err != nil {
		return nil, err
	}
	srv := &Server{
		cfg:     cfg,
		content: p,
		started: started,
		updated: updated,
		renders: infra.NewCache[string, []byte](renderTTL),
		limiter: infra.NewRateLimiter(renderBurst, renderRefill),
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and shuts it down gracefully when
// ctx is cancelled or the process receives SIGINT/SIGTERM.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  seconds(s.cfg.Server.ReadTimeoutSec, 15),
		WriteTimeout: seconds(s.cfg.Server.WriteTimeoutSec, 30),
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go s.sweepRenders(ctx, renderTTL)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("api: listening", "addr", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("api: shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// sweepRenders drops expired cached renders every interval until ctx ends.
func (s *Server) sweepRenders(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.renders.Cleanup()
			slog.Debug("api: swept render cache", "entries", s.renders.Len())
		}
	}
}

func seconds(n, def int) time.Duration {
	if n <= 0 {
		n = def
	}
	return time.Duration(n) * time.Second
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Page and chart artifacts
	r.Get("/", s.handlePage)
	r.Get("/index.html", s.handlePage)
	r.Get("/chart.svg", s.handleChartSVG)
	r.Get("/chart.png", s.handleChartPNG)
	r.Get("/weights.xlsx", s.handleWorkbook)

	// Embedded static assets
	static := http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS())))
	r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		static.ServeHTTP(w, r)
	})

	// Health check
	r.Get("/health", s.handleHealth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health (also available at /health)
		r.Get("/health", s.handleHealth)

		// Chart geometry for the page content, or for a posted spec
		r.Get("/chart", s.handleChart)
		r.Post("/chart", s.handleRenderChart)

		// Page content
		r.Get("/content", s.handleContent)

		// Configuration
		r.Get("/config", s.handleGetConfig)
	})

	return r
}

// ============================================================
// Response types
// ============================================================

// APIResponse is the standard JSON envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthInfo is the data of GET /health.
type HealthInfo struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	TimeICT   string `json:"time_ict"`
	Sections  int    `json:"sections"`
	Segments  int    `json:"segments"`
	PDFEngine string `json:"pdf_engine"`
}

// ============================================================
// Handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: HealthInfo{
			Status:    "ok",
			Version:   Version,
			Uptime:    utils.Uptime(s.started).String(),
			TimeICT:   utils.FormatDateTimeICT(utils.NowICT()),
			Sections:  len(s.content.Sections),
			Segments:  len(s.content.Chart.Segments),
			PDFEngine: string(page.DetectPDFEngine()),
		},
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	cfg := page.Config{AssetBase: "/static/", Updated: s.updated}
	if r.URL.Query().Get("inline") == "1" {
		cfg.InlineCSS = true
	}
	html, err := page.GenerateHTML(s.content, cfg)
	if err != nil {
		slog.Error("api: rendering page", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html)) //nolint:errcheck
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	c := chart.Render(s.content.Chart)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(c.SVG())) //nolint:errcheck
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	scale := 1
	if v := r.URL.Query().Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > chart.MaxScale {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("scale must be an integer 1..%d", chart.MaxScale))
			return
		}
		scale = n
	}

	data, err := s.renders.GetOrCreate(fmt.Sprintf("png@%d", scale), func() ([]byte, error) {
		var buf bytes.Buffer
		err := chart.EncodePNG(&buf, chart.Render(s.content.Chart), scale)
		return buf.Bytes(), err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

func (s *Server) handleWorkbook(w http.ResponseWriter, r *http.Request) {
	data, err := s.renders.GetOrCreate("xlsx", func() ([]byte, error) {
		var buf bytes.Buffer
		err := export.WriteWorkbook(&buf, chart.Render(s.content.Chart))
		return buf.Bytes(), err
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="weights.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    chart.Render(s.content.Chart),
	})
}

func (s *Server) handleRenderChart(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "too many render requests")
		return
	}

	var spec chart.Spec
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSpecBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    chart.Render(spec),
	})
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    s.content,
	})
}

// writeJSON encodes v before touching the response, so an unencodable
// value becomes a 500 instead of an empty body behind the status line.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("api: failed to encode JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprintln(w, `{"success":false,"error":"failed to encode response"}`)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("api: failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}
