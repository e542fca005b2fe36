// Package export writes ranking results to files.
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"photorank/domain/ranking"
)

// Supported formats.
const (
	FormatYAML    = "yaml"
	FormatParquet = "parquet"
)

// ErrUnsupportedFormat is returned for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Report is the exported view of a completed session.
type Report struct {
	SessionID   string    `yaml:"session_id,omitempty"`
	Folder      string    `yaml:"folder,omitempty"`
	CompletedAt time.Time `yaml:"completed_at"`
	Criteria    []string  `yaml:"criteria"`
	Rankings    []Row     `yaml:"rankings"`
}

// Row is one ranked image.
type Row struct {
	Rank   int            `yaml:"rank"`
	Image  string         `yaml:"image"`
	Name   string         `yaml:"name"`
	Score  int            `yaml:"score"`
	Scores map[string]int `yaml:"scores"`
}

// NewReport builds a report from ranking results.
func NewReport(sessionID, folder string, res ranking.Results, completedAt time.Time) *Report {
	r := &Report{
		SessionID:   sessionID,
		Folder:      folder,
		CompletedAt: completedAt,
		Criteria:    res.Criteria,
		Rankings:    make([]Row, len(res.Entries)),
	}
	for i, e := range res.Entries {
		scores := make(map[string]int, len(res.Criteria))
		for j, c := range res.Criteria {
			if j < len(e.Scores) {
				scores[c] = e.Scores[j]
			}
		}
		r.Rankings[i] = Row{
			Rank:   e.Rank,
			Image:  e.Image,
			Name:   e.Name(),
			Score:  e.Score,
			Scores: scores,
		}
	}
	return r
}

// Writer encodes a report.
type Writer interface {
	Format() string
	Write(w io.Writer, report *Report) error
}

// ForPath picks a writer from the file extension.
func ForPath(path string) (Writer, error) {
	return ForFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// ForFormat returns the writer for a format name. "yml" is accepted for yaml.
func ForFormat(format string) (Writer, error) {
	switch format {
	case FormatYAML, "yml":
		return YAMLWriter{}, nil
	case FormatParquet:
		return ParquetWriter{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: .yaml, .parquet)", ErrUnsupportedFormat, format)
	}
}

// WriteFile writes report to path in the format implied by its extension.
// Returns the format used.
func WriteFile(path string, report *Report, logger *slog.Logger) (string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	w, err := ForPath(path)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := w.Write(f, report); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write %s export: %w", w.Format(), err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	logger.Info("Results exported", "path", path, "format", w.Format(), "rows", len(report.Rankings))
	return w.Format(), nil
}
