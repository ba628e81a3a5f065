// Package api provides the HTTP handlers serving today's trivia documents.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/daily-trivia/internal/resolver"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EndpointInfo describes one API endpoint in the registry response.
type EndpointInfo struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// IndexResponse is the JSON form of the endpoint registry.
type IndexResponse struct {
	Name      string         `json:"name"`
	Endpoints []EndpointInfo `json:"endpoints"`
}

// Routes defines the HTTP routes with their dependencies injected.
type Routes struct {
	resolver *resolver.Resolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewRoutes creates a Routes instance backed by the given resolver.
func NewRoutes(res *resolver.Resolver, logger *slog.Logger) *Routes {
	return &Routes{
		resolver: res,
		logger:   logger.With("component", "api"),
		now:      time.Now,
	}
}

func endpoints() []EndpointInfo {
	eps := []EndpointInfo{
		{Path: "/", Description: "This endpoint registry"},
		{Path: "/health", Description: "Service health check"},
	}
	for _, dom := range trivia.All() {
		eps = append(eps, EndpointInfo{
			Path:        "/" + dom.Slug,
			Description: fmt.Sprintf("Today's %s", dom.Noun),
		})
	}
	return eps
}

// handleIndex serves the endpoint registry, as JSON when the Accept header
// asks for it and as plain text otherwise.
func (rt *Routes) handleIndex(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		rt.writeJSONResponse(w, IndexResponse{
			Name:      "daily-trivia",
			Endpoints: endpoints(),
		})
		return
	}

	var b strings.Builder
	b.WriteString("daily-trivia API\n\n")
	for _, ep := range endpoints() {
		fmt.Fprintf(&b, "%-22s %s\n", ep.Path, ep.Description)
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(b.String())); err != nil {
		rt.logger.Error("Failed to write index response", "error", err)
	}
}

// handleToday returns a handler resolving today's document for a domain. The
// resolver reports missing and corrupt data as structured payloads with HTTP
// 200; anything escaping the handler becomes a 500 with a generic message,
// the cause is only logged.
func (rt *Routes) handleToday(dom trivia.Domain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				rt.logger.Error("Handler failure",
					"domain", dom.Slug,
					"panic", rec)
				rt.writeErrorResponse(w, fmt.Sprintf("Failed to fetch %s", dom.Noun), http.StatusInternalServerError)
			}
		}()

		today := rt.now()
		doc := rt.resolver.Resolve(dom, int(today.Month()), today.Day())

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(doc); err != nil {
			rt.logger.Error("Failed to write document", "domain", dom.Slug, "error", err)
		}
	}
}

// handleHealth handles health check requests.
func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

// writeJSONResponse writes a JSON response with the given data.
func (rt *Routes) writeJSONResponse(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		rt.logger.Error("Failed to encode JSON response", "error", err)
	}
}

// writeErrorResponse writes a standardized error response.
func (rt *Routes) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		rt.logger.Error("Failed to encode error response", "error", err)
	}
}
