package generator

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/yourusername/daily-trivia/internal/dates"
	"github.com/yourusername/daily-trivia/internal/trivia"
)

// Progress is the live status snapshot written after each completed month.
type Progress struct {
	LastUpdated    time.Time       `json:"lastUpdated"`
	TotalProcessed int             `json:"totalProcessed"`
	TotalItems     int             `json:"totalItems"`
	TotalErrors    int             `json:"totalErrors"`
	RecentFiles    []ProcessedFile `json:"recentFiles"`
}

// Summary aggregates a run's processed-file list.
type Summary struct {
	GeneratedAt        time.Time `json:"generatedAt"`
	TotalFiles         int       `json:"totalFiles"`
	DaysWithItems      int       `json:"daysWithItems"`
	TotalErrors        int       `json:"totalErrors"`
	TotalItems         int       `json:"totalItems"`
	AverageItemsPerDay float64   `json:"averageItemsPerDay"`
}

// IndexEntry describes one generated file in the index.
type IndexEntry struct {
	File      string `json:"file"` // Relative to the data root
	ItemCount int    `json:"itemCount"`
	HasError  bool   `json:"hasError"`
}

// Index maps month name to zero-padded day to file entry.
type Index map[string]map[string]IndexEntry

// Summarize aggregates the processed-file list of a run and persists the
// summary and file index for the domain, overwriting any prior versions.
func (r *Runner) Summarize(processed []ProcessedFile, dom trivia.Domain) error {
	summary := BuildSummary(processed)
	summary.GeneratedAt = r.now()

	if err := writeJSON(filepath.Join(r.dataRoot, dom.SummaryFile), summary); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(r.dataRoot, dom.IndexFile), BuildIndex(processed)); err != nil {
		return err
	}

	r.logger.Info("Wrote run summary",
		"domain", dom.Slug,
		"total_files", summary.TotalFiles,
		"days_with_items", summary.DaysWithItems,
		"errors", summary.TotalErrors)
	return nil
}

// BuildSummary computes run aggregates. The mean is taken over days that
// produced items, not over all days, and is guarded against division by zero.
func BuildSummary(processed []ProcessedFile) Summary {
	s := Summary{TotalFiles: len(processed)}
	for _, rec := range processed {
		if rec.Error != "" {
			s.TotalErrors++
			continue
		}
		if rec.ItemCount > 0 {
			s.DaysWithItems++
			s.TotalItems += rec.ItemCount
		}
	}
	if s.DaysWithItems > 0 {
		s.AverageItemsPerDay = float64(s.TotalItems) / float64(s.DaysWithItems)
	}
	return s
}

// BuildIndex arranges the processed-file list as month → day → entry.
func BuildIndex(processed []ProcessedFile) Index {
	idx := make(Index)
	for _, rec := range processed {
		month := rec.Month
		if idx[month] == nil {
			idx[month] = make(map[string]IndexEntry)
		}
		idx[month][dates.PadDay(rec.Day)] = IndexEntry{
			File:      rec.File,
			ItemCount: rec.ItemCount,
			HasError:  rec.Error != "",
		}
	}
	return idx
}

func (r *Runner) writeProgress(dom trivia.Domain, processed []ProcessedFile, totalItems, totalErrors int) error {
	recent := processed
	if len(recent) > progressWindow {
		recent = recent[len(recent)-progressWindow:]
	}

	p := Progress{
		LastUpdated:    r.now(),
		TotalProcessed: len(processed),
		TotalItems:     totalItems,
		TotalErrors:    totalErrors,
		RecentFiles:    recent,
	}
	return writeJSON(filepath.Join(r.dataRoot, dom.ProgressFile), p)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
