package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/yourusername/daily-trivia/internal/config"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

// newTestClient creates a client pointed at a fake API server.
func newTestClient(cfg *config.Config, apiURL string) *claudeClient {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return &claudeClient{
		apiKey: "test-key",
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.AI.TimeoutSeconds) * time.Second},
		apiURL: apiURL,
		logger: logger,
	}
}

// fakeAPI returns an httptest server that replies with the given completion
// text in the Anthropic response envelope.
func fakeAPI(t *testing.T, completion string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "" {
			t.Error("request missing x-api-key header")
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("request missing anthropic-version header")
		}

		resp := map[string]any{
			"content": []map[string]string{{"text": completion}},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("Failed to encode fake response: %v", err)
		}
	}))
}

func TestGenerateDay(t *testing.T) {
	completion := `{
		"date": "wrong date from model",
		"events": [
			{"year": 1776, "title": "A", "description": "d", "category": "politics", "significance": "s"},
			{"year": 1969, "title": "B", "description": "d", "category": "science", "significance": "s"}
		]
	}`
	server := fakeAPI(t, completion)
	defer server.Close()

	client := newTestClient(config.Default(), server.URL)

	doc, err := client.GenerateDay(context.Background(), trivia.HistoricalEvents, 7, 4)
	if err != nil {
		t.Fatalf("GenerateDay() error = %v", err)
	}

	if doc.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", doc.ItemCount)
	}
	if doc.Date != "July 4" {
		t.Errorf("Date = %q, want %q", doc.Date, "July 4")
	}

	var parsed map[string]any
	if err := json.Unmarshal(doc.Raw, &parsed); err != nil {
		t.Fatalf("Raw document is not valid JSON: %v", err)
	}
	// The date field is stamped with the canonical display date regardless
	// of what the model claims.
	if parsed["date"] != "July 4" {
		t.Errorf("document date = %v, want %q", parsed["date"], "July 4")
	}
	if events, ok := parsed["events"].([]any); !ok || len(events) != 2 {
		t.Errorf("document events = %v, want 2 entries", parsed["events"])
	}
}

func TestGenerateDayExtractsJSONFromProse(t *testing.T) {
	completion := `Here is the data you asked for:
	{"date": "March 5", "holidays": [{"name": "H", "description": "d", "origin": "o", "category": "silly", "emoji": "x", "funFact": "f"}]}
	Let me know if you need anything else!`
	server := fakeAPI(t, completion)
	defer server.Close()

	client := newTestClient(config.Default(), server.URL)

	doc, err := client.GenerateDay(context.Background(), trivia.WeirdHolidays, 3, 5)
	if err != nil {
		t.Fatalf("GenerateDay() error = %v", err)
	}
	if doc.ItemCount != 1 {
		t.Errorf("ItemCount = %d, want 1", doc.ItemCount)
	}
}

func TestGenerateDayRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name       string
		completion string
	}{
		{name: "no JSON", completion: "I cannot help with that."},
		{name: "wrong items key", completion: `{"date": "July 4", "things": [1]}`},
		{name: "empty items", completion: `{"date": "July 4", "events": []}`},
		{name: "items not an array", completion: `{"date": "July 4", "events": "many"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := fakeAPI(t, tt.completion)
			defer server.Close()

			client := newTestClient(config.Default(), server.URL)
			if _, err := client.GenerateDay(context.Background(), trivia.HistoricalEvents, 7, 4); err == nil {
				t.Error("GenerateDay() should reject the document")
			}
		})
	}
}

func TestGenerateDayAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "bad request"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(config.Default(), server.URL)

	_, err := client.GenerateDay(context.Background(), trivia.HistoricalEvents, 1, 1)
	if err == nil {
		t.Fatal("GenerateDay() should surface API errors")
	}
	if !strings.Contains(err.Error(), "status 400") {
		t.Errorf("error = %v, want the status code mentioned", err)
	}
}

func TestGenerateDayInvalidMonth(t *testing.T) {
	client := newTestClient(config.Default(), "http://localhost:0")
	if _, err := client.GenerateDay(context.Background(), trivia.HistoricalEvents, 13, 1); err == nil {
		t.Error("GenerateDay() should reject an invalid month")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "server error", err: fmt.Errorf("API request failed with status 503: busy"), want: true},
		{name: "rate limit", err: fmt.Errorf("API request failed with status 429: slow down"), want: true},
		{name: "timeout", err: errors.New("request timeout"), want: true},
		{name: "connection refused", err: errors.New("dial tcp: connection refused"), want: true},
		{name: "bad request", err: fmt.Errorf("API request failed with status 400: nope"), want: false},
		{name: "context canceled", err: context.Canceled, want: false},
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRetryableError(tt.err); got != tt.want {
				t.Errorf("isRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
