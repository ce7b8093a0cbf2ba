// Package server is the preview server: it serves the generated site, a small JSON API over
// the current navigation tree, and a websocket that tells open pages to reload.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/navchart/internal/logging"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // generated site served at /; empty disables static files
	AllowAll bool   // allow all CORS origins (dev mode)
	Logger   *slog.Logger
}

// Server is the navchart preview server.
type Server struct {
	cfg        Config
	log        *slog.Logger
	store      *Store
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server reading builds from store.
func New(cfg Config, store *Store) *Server {
	log := logging.OrDefault(cfg.Logger).With("component", "server")
	s := &Server{
		cfg:   cfg,
		log:   log,
		store: store,
		hub:   NewHub(log),
	}
	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The websocket outlives any request timeout.
	r.Get("/ws", s.hub.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"status":         "ok",
				"reload_clients": s.hub.Clients(),
			})
		})
		s.registerRoutes(r)

		if s.cfg.SiteDir != "" {
			r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
		}
	})

	return r
}

// requestLogger logs one line per request with the chi request ID.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Debug("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Store returns the build store.
func (s *Server) Store() *Store { return s.store }

// Start begins listening on the configured port. It returns http.ErrServerClosed after
// Shutdown, including when Shutdown ran first.
func (s *Server) Start() error {
	s.log.Info("navchart preview listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown closes websocket clients and gracefully stops the HTTP server. It is safe to
// call from another goroutine while Start is running, or before Start.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	return s.httpServer.Shutdown(ctx)
}
