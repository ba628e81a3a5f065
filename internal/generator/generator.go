// Package generator drives the offline batch generation of per-day trivia
// documents. A run walks the 365 calendar dates in chronological order, asks
// the content client for each day's document, persists it (or an error record
// when the call fails) and maintains progress, summary and index artifacts so
// a long rate-limited run can be observed and resumed.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/daily-trivia/internal/config"
	"github.com/yourusername/daily-trivia/internal/content"
	"github.com/yourusername/daily-trivia/internal/dates"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

// progressWindow is the number of trailing processed-file records kept in the
// progress snapshot, roughly one month of dates.
const progressWindow = 31

// ProcessedFile describes the outcome of generating one date within a run.
type ProcessedFile struct {
	Month     string `json:"month"`
	Day       int    `json:"day"`
	File      string `json:"file"` // Relative to the data root
	ItemCount int    `json:"itemCount"`
	Error     string `json:"error,omitempty"`
}

// ErrorRecord is persisted in place of a content document when generation
// failed for a date. It is a terminal state, not a pending retry marker.
type ErrorRecord struct {
	Error string `json:"error"`
	Date  string `json:"date"`
	Items []any  `json:"items"`
}

// Runner executes generation runs for a domain.
type Runner struct {
	client       content.Client
	dataRoot     string
	successDelay time.Duration
	errorDelay   time.Duration
	logger       *slog.Logger
	now          func() time.Time
}

// New creates a runner using the delays and data root from the configuration.
func New(client content.Client, cfg *config.Config) *Runner {
	return NewWithLogger(client, cfg, slog.Default())
}

// NewWithLogger creates a runner with a custom logger.
func NewWithLogger(client content.Client, cfg *config.Config, logger *slog.Logger) *Runner {
	successDelay := 2
	if cfg.Generation.SuccessDelaySeconds != nil {
		successDelay = *cfg.Generation.SuccessDelaySeconds
	}
	errorDelay := 5
	if cfg.Generation.ErrorDelaySeconds != nil {
		errorDelay = *cfg.Generation.ErrorDelaySeconds
	}
	return &Runner{
		client:       client,
		dataRoot:     cfg.DataRoot,
		successDelay: time.Duration(successDelay) * time.Second,
		errorDelay:   time.Duration(errorDelay) * time.Second,
		logger:       logger.With("component", "generator"),
		now:          time.Now,
	}
}

// Run generates documents for all 365 dates of a domain in chronological
// order. Per-date content failures are recorded on disk and never abort the
// run; directory or file I/O failures are fatal.
func (r *Runner) Run(ctx context.Context, dom trivia.Domain) error {
	return r.run(ctx, dom, 1, 1)
}

// Resume behaves like Run but skips every date strictly before the given
// start coordinate. Only the dates from the resume point forward are
// reflected in the summary and index written at the end of the pass; earlier
// entries go stale until the next full run.
func (r *Runner) Resume(ctx context.Context, dom trivia.Domain, startMonth, startDay int) error {
	if !dates.Valid(startMonth, startDay) {
		return fmt.Errorf("invalid resume point: month %d day %d", startMonth, startDay)
	}
	skipped := dates.Ordinal(startMonth, startDay)
	startName, _ := dates.MonthName(startMonth)
	r.logger.Info("Resuming generation",
		"domain", dom.Slug,
		"start", dates.Display(startName, startDay),
		"skipped_dates", skipped)
	return r.run(ctx, dom, startMonth, startDay)
}

// GenerateOne generates and persists exactly one date. It does not touch the
// run artifacts, and unlike a full run it propagates a content failure to the
// caller instead of writing an error record.
func (r *Runner) GenerateOne(ctx context.Context, dom trivia.Domain, month, day int) (ProcessedFile, error) {
	if !dates.Valid(month, day) {
		return ProcessedFile{}, fmt.Errorf("invalid date: month %d day %d", month, day)
	}
	monthName, _ := dates.MonthName(month)

	doc, err := r.client.GenerateDay(ctx, dom, month, day)
	if err != nil {
		return ProcessedFile{}, fmt.Errorf("generation failed for %s: %w", dates.Display(monthName, day), err)
	}

	rel := filepath.Join(dom.Dir, monthName, dates.PadDay(day)+".json")
	if err := r.writeDocument(rel, doc.Raw); err != nil {
		return ProcessedFile{}, err
	}

	r.logger.Info("Generated single date",
		"domain", dom.Slug,
		"date", doc.Date,
		"item_count", doc.ItemCount)

	return ProcessedFile{
		Month:     dates.Title(monthName),
		Day:       day,
		File:      rel,
		ItemCount: doc.ItemCount,
	}, nil
}

func (r *Runner) run(ctx context.Context, dom trivia.Domain, startMonth, startDay int) error {
	if err := os.MkdirAll(filepath.Join(r.dataRoot, dom.Dir), 0755); err != nil {
		return fmt.Errorf("failed to create domain directory: %w", err)
	}

	var processed []ProcessedFile
	totalItems := 0
	totalErrors := 0

	for month := startMonth; month <= 12; month++ {
		monthName, _ := dates.MonthName(month)
		if err := os.MkdirAll(filepath.Join(r.dataRoot, dom.Dir, monthName), 0755); err != nil {
			return fmt.Errorf("failed to create month directory: %w", err)
		}

		firstDay := 1
		if month == startMonth {
			firstDay = startDay
		}

		for day := firstDay; day <= dates.DaysIn(month); day++ {
			rec, err := r.generateDate(ctx, dom, month, day)
			if err != nil {
				return err
			}
			processed = append(processed, rec)

			delay := r.successDelay
			if rec.Error != "" {
				totalErrors++
				delay = r.errorDelay
			} else {
				totalItems += rec.ItemCount
			}

			if err := pause(ctx, delay); err != nil {
				return err
			}
		}

		if err := r.writeProgress(dom, processed, totalItems, totalErrors); err != nil {
			return err
		}
		r.logger.Info("Finished month",
			"domain", dom.Slug,
			"month", dates.Title(monthName),
			"processed", len(processed),
			"errors", totalErrors)
	}

	return r.Summarize(processed, dom)
}

// generateDate produces one date's file leniently: a content failure becomes
// an on-disk error record and a processed-file entry instead of aborting the
// run. Only I/O failures and cancellation are returned as errors.
func (r *Runner) generateDate(ctx context.Context, dom trivia.Domain, month, day int) (ProcessedFile, error) {
	monthName, _ := dates.MonthName(month)
	rel := filepath.Join(dom.Dir, monthName, dates.PadDay(day)+".json")
	display := dates.Display(monthName, day)

	doc, err := r.client.GenerateDay(ctx, dom, month, day)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ProcessedFile{}, err
		}

		r.logger.Error("Generation failed for date",
			"domain", dom.Slug,
			"date", display,
			"error", err)

		record := ErrorRecord{
			Error: err.Error(),
			Date:  display,
			Items: []any{},
		}
		if werr := writeJSON(filepath.Join(r.dataRoot, rel), record); werr != nil {
			return ProcessedFile{}, fmt.Errorf("failed to write error record: %w", werr)
		}

		return ProcessedFile{
			Month: dates.Title(monthName),
			Day:   day,
			File:  rel,
			Error: err.Error(),
		}, nil
	}

	if err := r.writeDocument(rel, doc.Raw); err != nil {
		return ProcessedFile{}, err
	}

	r.logger.Debug("Persisted document",
		"domain", dom.Slug,
		"date", display,
		"file", rel,
		"item_count", doc.ItemCount)

	return ProcessedFile{
		Month:     dates.Title(monthName),
		Day:       day,
		File:      rel,
		ItemCount: doc.ItemCount,
	}, nil
}

func (r *Runner) writeDocument(rel string, raw []byte) error {
	path := filepath.Join(r.dataRoot, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create document directory: %w", err)
	}
	if err := os.WriteFile(path, raw, 0600); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
