// Package csvdir loads raw election CSVs from a per-state file layout.
//
// State files follow loose naming conventions accumulated across data drops:
// "PA_2020.csv", "pa_general.csv", "2020-pa-precincts.csv", "PA-cleaned.csv".
// Discovery tries each pattern case-insensitively and combines every match.
package csvdir

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/electionlab/swing-score-etl/internal/domain"
)

// Source reads raw vote rows for one state at a time from a directory of
// CSV files. It implements pipeline.RawSource.
type Source struct {
	dir         string
	stateColumn string
	logger      *slog.Logger
}

// NewSource creates a Source over the given directory. stateColumn names the
// raw column that should carry the state code; rows from files lacking that
// column get it injected from the requested state.
func NewSource(dir, stateColumn string, logger *slog.Logger) *Source {
	return &Source{dir: dir, stateColumn: stateColumn, logger: logger}
}

// LoadState reads and combines every CSV file matching the state's naming
// patterns. It returns an error when no file matches, naming the patterns
// tried so the caller can fix the directory layout.
func (s *Source) LoadState(ctx context.Context, stateCode string) ([]domain.Row, error) {
	upper := strings.ToUpper(stateCode)
	lower := strings.ToLower(stateCode)

	patterns := []string{
		upper + "_*.csv",
		lower + "_*.csv",
		"*-" + lower + "-*.csv",
		"*_" + lower + "_*.csv",
		upper + "-*.csv",
	}

	files, err := s.matchFiles(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files for state %q in %s (tried patterns %s)",
			upper, s.dir, strings.Join(patterns, ", "))
	}

	var rows []domain.Row
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fileRows, err := s.readFile(path, upper)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		s.logger.Debug("loaded raw csv", "file", filepath.Base(path), "rows", len(fileRows))
		rows = append(rows, fileRows...)
	}

	s.logger.Info("loaded raw state data", "state", upper, "files", len(files), "rows", len(rows))
	return rows, nil
}

// matchFiles globs every pattern and deduplicates, returning a sorted list
// for deterministic load order.
func (s *Source) matchFiles(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// readFile parses one CSV file into header-keyed rows, injecting the state
// code when the file has no state column.
func (s *Source) readFile(path, stateCode string) ([]domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // ragged rows happen in hand-edited drops

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	hasStateColumn := false
	for _, col := range header {
		if col == s.stateColumn {
			hasStateColumn = true
			break
		}
	}

	var rows []domain.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		row := make(domain.Row, len(header)+1)
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		if !hasStateColumn {
			row[s.stateColumn] = stateCode
		}
		rows = append(rows, row)
	}
	return rows, nil
}
