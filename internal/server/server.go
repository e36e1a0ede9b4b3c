// Package server exposes the analysis operations over HTTP.
//
// Every response uses the same JSON envelope:
//
//	{"status_code": 200, "status": "OK", "request_id": "...", "data": {...}}
//
// Errors carry a machine-readable code and message instead of data:
//
//	{"status_code": 400, "status": "Bad Request", "code": "INVALID_INPUT", "error": "..."}
//
// Routes:
//
//	GET  /healthz          liveness
//	GET  /version          build information
//	POST /v1/mentions      {"text": "..."}               → sorted mentioned users
//	POST /v1/follows       {"posts": [...]}              → node-link follows graph
//	POST /v1/influencers   {"posts": [...]} | {"graph"}  → rankings, ?top=N
//	POST /v1/timespan      {"posts": [...]}              → {"start", "end"}
//	POST /v1/analyze       {"posts": [...], "filter"}    → full analysis
//	POST /v1/render        {"posts"} | {"graph"}, format → DOT, SVG, PNG or PDF body
//	POST /v1/roots         {"a", "b", "c"}               → integer roots
//
// /v1/render answers with the diagram itself rather than an envelope, unless
// it fails. Rendered diagrams are cached in Redis when redis_addr is set.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/followgraph/internal/config"
	"github.com/matzehuels/followgraph/pkg/cache"
	perr "github.com/matzehuels/followgraph/pkg/errors"
	"github.com/matzehuels/followgraph/pkg/pipeline"
)

// cacheKeyPrefix namespaces render cache entries in Redis.
const cacheKeyPrefix = "followgraph:"

// shutdownTimeout bounds how long in-flight requests get after ctx is done.
const shutdownTimeout = 5 * time.Second

// Server is the followgraph HTTP API.
type Server struct {
	cfg    config.Config
	logger *log.Logger
	runner *pipeline.Runner
	router *chi.Mux
	cache  *cache.RedisCache
}

// New builds a server with all routes mounted. A nil logger uses the default.
func New(cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:    cfg,
		logger: logger,
		runner: pipeline.NewRunner(logger),
		router: chi.NewRouter(),
	}
	if cfg.RedisAddr != "" {
		s.cache = cache.NewRedisCache(cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cacheKeyPrefix,
		})
		s.runner.Cache = s.cache
		s.runner.CacheTTL = cfg.CacheTTL
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(
		requestID,
		chimw.RealIP,
		accessLog(s.logger),
		recoverJSON,
		corsHandler(s.cfg.CORSOrigins),
		chimw.StripSlashes,
		limitBody(s.cfg.MaxBodyBytes),
	)

	r.NotFound(handle(func(r *http.Request) (any, error) {
		return nil, perr.New(perr.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
	}))
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Envelope{
			StatusCode: http.StatusMethodNotAllowed,
			Status:     http.StatusText(http.StatusMethodNotAllowed),
			Code:       perr.ErrCodeUnsupported,
			Error:      "method not allowed",
			RequestID:  chimw.GetReqID(r.Context()),
		})
	})

	r.Get("/healthz", handle(s.health))
	r.Get("/version", handle(s.version))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/mentions", handleJSON(s.mentions))
		r.Post("/follows", handleJSON(s.follows))
		r.Post("/influencers", handleJSON(s.influencers))
		r.Post("/timespan", handleJSON(s.timespan))
		r.Post("/analyze", handleJSON(s.analyze))
		r.Post("/render", s.render)
		r.Post("/roots", handleJSON(s.roots))
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()
	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			s.logger.Warn("render cache unreachable, rendering uncached", "addr", s.cfg.RedisAddr, "err", err)
		} else {
			s.logger.Info("render cache connected", "addr", s.cfg.RedisAddr)
		}
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Close releases the render cache connection, if any.
func (s *Server) Close() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
// Requests in flight when ctx is done keep their context and may finish
// within the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
