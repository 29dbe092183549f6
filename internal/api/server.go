// Package api provides the HTTP JSON API for savings projections.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rpgo/savings-calculator/internal/calculation"
	"github.com/rpgo/savings-calculator/internal/config"
	"github.com/rpgo/savings-calculator/internal/service"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server.
type Options struct {
	CORSOrigins []string
	Logger      calculation.Logger
	Version     string
}

// Server is the HTTP API server.
type Server struct {
	router  chi.Router
	svc     *service.ProjectionService
	parser  *config.InputParser
	logger  calculation.Logger
	origins []string
	version string
}

// NewServer creates a configured API server with all routes and middleware.
func NewServer(svc *service.ProjectionService, opts Options) *Server {
	s := &Server{
		svc:     svc,
		parser:  config.NewInputParser(),
		logger:  opts.Logger,
		origins: opts.CORSOrigins,
		version: opts.Version,
	}
	if s.logger == nil {
		s.logger = calculation.NopLogger{}
	}
	if len(s.origins) == 0 {
		s.origins = []string{"*"}
	}
	if s.version == "" {
		s.version = "dev"
	}
	s.router = s.buildRouter()
	return s
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Infof("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/projections", s.handleCreateProjection)
		r.Get("/projections", s.handleQueryProjection)

		r.Post("/scenarios", s.handleRunScenarios)

		r.Get("/formats", s.handleFormats)
	})

	return r
}

// requestLogger logs one line per request through the server logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Infof("%s %s %d %dB %s reqid=%s", r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start).Round(time.Microsecond), middleware.GetReqID(r.Context()))
	})
}
