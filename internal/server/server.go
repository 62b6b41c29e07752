// Package server wires the HTTP routes and middleware.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/ArsenalSync_Go/internal/handler"
	"github.com/osse101/ArsenalSync_Go/internal/logger"
	"github.com/osse101/ArsenalSync_Go/internal/metrics"
)

// Deps are the collaborators the routes drive
type Deps struct {
	Inventory handler.InventoryService
	Checker   handler.UnlockChecker
	Resolver  handler.DefinitionResolver
	Progress  handler.ProgressProvider
	Catalog   handler.Catalog
	Sync      *handler.SyncHandlers
	Syncer    handler.Syncer
	Health    handler.HealthChecker
}

// Options configure the listener and middleware
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the full route tree. Middleware runs outermost first.
func NewRouter(opts Options, deps Deps) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	detector := NewSuspiciousActivityDetector(DefaultDetectorConfig())

	r := chi.NewRouter()
	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Health))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", handler.HandleListRules(deps.Catalog))
			r.Get("/{key}", handler.HandleGetRule(deps.Catalog))
			r.Put("/{key}", handler.HandleUpdateRule(deps.Catalog, deps.Syncer))
		})
		r.Route("/shop/layout", func(r chi.Router) {
			r.Get("/", handler.HandleGetShopLayout(deps.Catalog, deps.Syncer))
			r.Put("/", handler.HandleUpdateShopLayout(deps.Syncer))
		})

		r.Route("/inventory/{owner}", func(r chi.Router) {
			r.Get("/", handler.HandleGetInventory(deps.Inventory))
			r.Post("/entries", handler.HandleAddEntry(deps.Inventory))
			r.Delete("/entries/{key}", handler.HandleRemoveEntry(deps.Inventory))
			r.Post("/entries/{key}/use", handler.HandleRecordUsage(deps.Inventory))
			r.Put("/selection", handler.HandleSetSelection(deps.Inventory))
			r.Post("/unlock", handler.HandleUnlock(deps.Inventory))
		})

		r.Route("/unlock/{owner}", func(r chi.Router) {
			r.Get("/", handler.HandleUnlockStatus(deps.Checker))
			r.Get("/{key}", handler.HandleUnlockKeyStatus(deps.Checker))
		})

		r.Post("/resolve", handler.HandleResolve(deps.Inventory, deps.Progress, deps.Resolver, deps.Catalog))

		r.Route("/admin/sync", func(r chi.Router) {
			r.Post("/init", deps.Sync.HandleInitialize())
			r.Post("/migrate", deps.Sync.HandleMigrateKeys())
			r.Post("/load", deps.Sync.HandleLoad())
			r.Get("/status", deps.Sync.HandleStatus())
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, prefix := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
