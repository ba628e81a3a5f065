// Package resolver locates and loads per-day trivia documents from the data
// directory. Lookups never fail with an error: a missing or unreadable file
// yields a structured placeholder so callers always have a renderable payload.
package resolver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/yourusername/daily-trivia/internal/dates"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

// Placeholder is the result returned when no valid document exists for a date.
// It mirrors the shape of a content document closely enough to render.
type Placeholder struct {
	Error   string `json:"error"`
	Date    string `json:"date"`
	Items   []any  `json:"items"`
	Message string `json:"message,omitempty"`
}

// Resolver resolves (domain, month, day) coordinates to stored JSON documents.
type Resolver struct {
	dataRoot string
	logger   *slog.Logger
}

// New creates a resolver reading from the given data root directory.
func New(dataRoot string) *Resolver {
	return &Resolver{
		dataRoot: dataRoot,
		logger:   slog.Default().With("component", "resolver"),
	}
}

// NewWithLogger creates a resolver with a custom logger.
func NewWithLogger(dataRoot string, logger *slog.Logger) *Resolver {
	return &Resolver{
		dataRoot: dataRoot,
		logger:   logger.With("component", "resolver"),
	}
}

// Path returns the canonical file path for a date within a domain.
func (r *Resolver) Path(dom trivia.Domain, monthName string, day int) string {
	return filepath.Join(r.dataRoot, dom.Dir, monthName, dates.PadDay(day)+".json")
}

// Resolve loads the stored document for a date. The month may be a 1-12
// number or a case-insensitive month name. A stored document is returned
// byte-for-byte unmodified; its shape is not validated. Missing files and
// unparseable files produce placeholder documents instead of errors.
func (r *Resolver) Resolve(dom trivia.Domain, month any, day int) json.RawMessage {
	monthName, err := dates.Normalize(month)
	if err != nil {
		r.logger.Warn("Invalid month in lookup", "domain", dom.Slug, "month", month, "error", err)
		return r.notFound(dom, fmt.Sprintf("%v %d", month, day))
	}

	display := dates.Display(monthName, day)
	path := r.Path(dom, monthName, day)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			r.logger.Debug("No document for date", "domain", dom.Slug, "date", display, "path", path)
			return r.notFound(dom, display)
		}
		r.logger.Error("Failed to read document", "domain", dom.Slug, "path", path, "error", err)
		return r.readError(display, err)
	}

	// Parse only to distinguish corrupt files; the document itself is
	// passed through untouched.
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		r.logger.Error("Corrupt document", "domain", dom.Slug, "path", path, "error", err)
		return r.readError(display, err)
	}

	return json.RawMessage(data)
}

func (r *Resolver) notFound(dom trivia.Domain, display string) json.RawMessage {
	return mustMarshal(Placeholder{
		Error:   fmt.Sprintf("No data found for %s", display),
		Date:    display,
		Items:   []any{},
		Message: fmt.Sprintf("Run the generator for %s to create data for this date", dom.Noun),
	})
}

func (r *Resolver) readError(display string, cause error) json.RawMessage {
	return mustMarshal(Placeholder{
		Error: fmt.Sprintf("Error reading data: %v", cause),
		Date:  display,
		Items: []any{},
	})
}

func mustMarshal(p Placeholder) json.RawMessage {
	data, err := json.Marshal(p)
	if err != nil {
		// Placeholder contains only plain strings and an empty slice.
		panic(err)
	}
	return data
}
