package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/daily-trivia/internal/dates"
	"github.com/yourusername/daily-trivia/internal/resolver"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func seedFile(t *testing.T, root string, dom trivia.Domain, monthName string, day int, content string) {
	t.Helper()
	dir := filepath.Join(root, dom.Dir, monthName)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, dates.PadDay(day)+".json"), []byte(content), 0600))
}

// testRoutes builds Routes with the clock pinned to July 4.
func testRoutes(root string) *Routes {
	rt := NewRoutes(resolver.New(root), testLogger())
	rt.now = func() time.Time {
		return time.Date(2025, time.July, 4, 12, 0, 0, 0, time.UTC)
	}
	return rt
}

func TestHandleTodayServesStoredDocument(t *testing.T) {
	root := t.TempDir()
	doc := `{"date": "July 4", "events": [{"year": 1776, "title": "t", "description": "d", "category": "c", "significance": "s"}]}`
	seedFile(t, root, trivia.HistoricalEvents, "july", 4, doc)

	rt := testRoutes(root)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/historical-events", nil)

	rt.handleToday(trivia.HistoricalEvents)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, doc, rec.Body.String(), "stored document is served unmodified")
}

func TestHandleTodayMissingData(t *testing.T) {
	rt := testRoutes(t.TempDir())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/weird-holidays", nil)

	rt.handleToday(trivia.WeirdHolidays)(rec, req)

	// Missing data is a normal outcome, not an HTTP error.
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload resolver.Placeholder
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload.Error, "No data found for July 4")
	assert.Empty(t, payload.Items)
}

func TestHandleTodayRecoversToServerError(t *testing.T) {
	// A nil resolver makes the handler panic, standing in for any
	// unexpected failure escaping the lookup.
	rt := NewRoutes(nil, testLogger())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/historical-events", nil)

	rt.handleToday(trivia.HistoricalEvents)(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var payload ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Failed to fetch historical events", payload.Error)
}

func TestIndexContentNegotiation(t *testing.T) {
	rt := testRoutes(t.TempDir())

	t.Run("json", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept", "application/json")

		rt.handleIndex(rec, req)

		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var idx IndexResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &idx))
		assert.Equal(t, "daily-trivia", idx.Name)

		paths := make([]string, 0, len(idx.Endpoints))
		for _, ep := range idx.Endpoints {
			paths = append(paths, ep.Path)
		}
		for _, dom := range trivia.All() {
			assert.Contains(t, paths, "/"+dom.Slug)
		}
	})

	t.Run("plain text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		rt.handleIndex(rec, req)

		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
		assert.Contains(t, rec.Body.String(), "/historical-events")
		assert.Contains(t, rec.Body.String(), "/blooming-plants")
	})
}

func TestServerRouting(t *testing.T) {
	root := t.TempDir()

	// Seed today's real date so the full router can be exercised without
	// a pinned clock.
	now := time.Now()
	monthName, _ := dates.MonthName(int(now.Month()))
	seedFile(t, root, trivia.BloomingPlants, monthName, now.Day(),
		`{"date": "`+dates.Display(monthName, now.Day())+`", "plants": []}`)

	server := httptest.NewServer(NewServer(resolver.New(root), testLogger()))
	defer server.Close()

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(server.URL + "/blooming-plants")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	var doc map[string]any
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&doc))
	assert.NotNil(t, doc["plants"], "seeded document is returned")
}
