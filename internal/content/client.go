// Package content calls the Anthropic API to produce one day's trivia document.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"text/template"
	"time"

	"github.com/yourusername/daily-trivia/internal/config"
	"github.com/yourusername/daily-trivia/internal/dates"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

const systemPrompt = "You are a meticulous researcher producing accurate, " +
	"well-structured JSON data about calendar dates. You always respond with " +
	"a single valid JSON object and nothing else."

// DayDocument is a generated document for one date, ready to persist.
type DayDocument struct {
	// Raw is the shaped JSON document, persisted verbatim.
	Raw json.RawMessage
	// Date is the human-readable date embedded in the document.
	Date string
	// ItemCount is the length of the domain's items array.
	ItemCount int
}

// Client is an interface for generating one day's content for a domain.
type Client interface {
	GenerateDay(ctx context.Context, dom trivia.Domain, month, day int) (*DayDocument, error)
}

// claudeClient is the concrete implementation of Client using the Claude API.
type claudeClient struct {
	apiKey string
	config *config.Config
	client *http.Client
	apiURL string
	logger *slog.Logger
}

// NewClient creates a content client with the specified API key and configuration.
func NewClient(apiKey string, cfg *config.Config) Client {
	return NewClientWithLogger(apiKey, cfg, slog.Default())
}

// NewClientWithLogger creates a content client with a custom logger.
func NewClientWithLogger(apiKey string, cfg *config.Config, logger *slog.Logger) Client {
	timeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second
	return &claudeClient{
		apiKey: apiKey,
		config: cfg,
		client: &http.Client{Timeout: timeout},
		apiURL: "https://api.anthropic.com/v1/messages",
		logger: logger.With("component", "content.client"),
	}
}

// GenerateDay requests content for one date and shapes the model output into
// a persistable document.
func (c *claudeClient) GenerateDay(ctx context.Context, dom trivia.Domain, month, day int) (*DayDocument, error) {
	monthName, err := dates.Normalize(month)
	if err != nil {
		return nil, err
	}
	display := dates.Display(monthName, day)

	logger := c.logger.With("domain", dom.Slug, "date", display)

	prompt, err := buildPrompt(dom, display)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	logger.InfoContext(ctx, "Calling Claude API",
		"model", c.config.AI.Model,
		"max_tokens", c.config.AI.MaxTokens)

	response, err := c.callAPIWithRetry(ctx, prompt)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to call Claude API", "error", err)
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	doc, err := shapeDocument(dom, display, response)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to parse response",
			"error", err,
			"response_length", len(response))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	logger.InfoContext(ctx, "Generated document", "item_count", doc.ItemCount)
	return doc, nil
}

func buildPrompt(dom trivia.Domain, display string) (string, error) {
	tmpl, err := template.New(dom.Slug).Parse(dom.Prompt)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, trivia.PromptData{Date: display}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// shapeDocument extracts the JSON object from the model output, checks the
// items array, stamps the date field and re-marshals with stable indentation.
func shapeDocument(dom trivia.Domain, display, response string) (*DayDocument, error) {
	// Try to extract JSON from response (in case there's extra text)
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(response[start:end+1]), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	items, ok := doc[dom.ItemsKey].([]any)
	if !ok {
		return nil, fmt.Errorf("response has no %q array", dom.ItemsKey)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("response %q array is empty", dom.ItemsKey)
	}

	doc["date"] = display

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	return &DayDocument{
		Raw:       raw,
		Date:      display,
		ItemCount: len(items),
	}, nil
}

// callAPIWithRetry calls the Claude API with exponential backoff retry logic.
func (c *claudeClient) callAPIWithRetry(ctx context.Context, prompt string) (string, error) {
	const maxRetries = 3
	var lastErr error

	for attempt := range maxRetries {
		if attempt > 0 {
			// Exponential backoff: 2^attempt seconds (2s, 4s, 8s)
			backoff := time.Duration(math.Pow(2, float64(attempt))) * time.Second
			c.logger.InfoContext(ctx, "Retrying API call after backoff",
				"attempt", attempt+1,
				"max_attempts", maxRetries,
				"backoff_seconds", backoff.Seconds())

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		response, err := c.callAPI(ctx, prompt)
		if err == nil {
			return response, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			c.logger.WarnContext(ctx, "Non-retryable error encountered",
				"attempt", attempt+1,
				"error", err)
			return "", err
		}

		c.logger.WarnContext(ctx, "Retryable error encountered",
			"attempt", attempt+1,
			"error", err)
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

// isRetryableError determines if an error should be retried.
func isRetryableError(err error) bool {
	if err == context.Canceled || err == context.DeadlineExceeded {
		return false
	}

	errStr := err.Error()
	// Retry on server errors, rate limits, and timeouts
	return strings.Contains(errStr, "status 5") ||
		strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused")
}

func (c *claudeClient) callAPI(ctx context.Context, prompt string) (string, error) {
	temperature := 1.0
	if c.config.AI.Temperature != nil {
		temperature = *c.config.AI.Temperature
	}

	requestBody := map[string]any{
		"model":       c.config.AI.Model,
		"max_tokens":  c.config.AI.MaxTokens,
		"temperature": temperature,
		"system":      systemPrompt,
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": prompt,
			},
		},
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.DebugContext(ctx, "Received response from Claude API",
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}

	if len(response.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	return response.Content[0].Text, nil
}

var _ Client = &claudeClient{}
