package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spektr-org/crashlens/engine"
	"github.com/spektr-org/crashlens/internal/monitoring"
	"github.com/spektr-org/crashlens/render/echarts"
)

// Config holds server configuration.
type Config struct {
	Listen         string
	AllowedOrigins []string // empty allows any origin
	Title          string   // HTML dashboard title
	AssetsHost     string   // echarts script host, empty for the default
}

// Server is the HTTP bridge between browser renderers and the engine.
type Server struct {
	cfg        Config
	ds         *engine.Dataset
	sessions   *sessionStore
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over ds. opts configure every session's dashboard.
func New(cfg Config, ds *engine.Dataset, opts ...engine.Option) *Server {
	var pageOpts []echarts.Option
	if cfg.Title != "" {
		pageOpts = append(pageOpts, echarts.WithTitle(cfg.Title))
	}
	if cfg.AssetsHost != "" {
		pageOpts = append(pageOpts, echarts.WithAssetsHost(cfg.AssetsHost))
	}
	s := &Server{
		cfg:      cfg,
		ds:       ds,
		sessions: newSessionStore(ds, opts, pageOpts),
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.registerRoutes(r)
	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured address.
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	monitoring.Logf("🌐 crashlens server listening on %s (%d accidents)", s.cfg.Listen, s.ds.Len())
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
