package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yourusername/daily-trivia/internal/resolver"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

// NewServer creates and configures the HTTP router serving the trivia API.
func NewServer(res *resolver.Resolver, logger *slog.Logger) *chi.Mux {
	routes := NewRoutes(res, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(loggingMiddleware(logger))

	r.Get("/", routes.handleIndex)
	r.Get("/health", handleHealth)
	for _, dom := range trivia.All() {
		r.Get("/"+dom.Slug, routes.handleToday(dom))
	}

	return r
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
