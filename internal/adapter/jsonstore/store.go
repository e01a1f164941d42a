// Package jsonstore persists scored counties as a single JSON document keyed
// by state code. The document is the service's interchange format: the score
// command writes it, the serve command reads it, and external consumers parse
// the same field names the scorer emits.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/electionlab/swing-score-etl/internal/domain"
)

// Document is the on-disk layout: run metadata plus one record list per
// state code.
type Document struct {
	GeneratedAt time.Time                        `json:"generated_at"`
	RunID       string                           `json:"run_id"`
	YearPrev    int                              `json:"year_prev"`
	YearLatest  int                              `json:"year_latest"`
	States      map[string][]domain.CountySwing `json:"states"`
}

// Store reads and writes the scored-county document. It implements
// pipeline.ResultSink. Safe for concurrent use.
type Store struct {
	path   string
	logger *slog.Logger

	mu     sync.RWMutex
	doc    Document
	loaded bool
}

// NewStore creates a Store over the given document path. Call Load to read
// an existing document; WriteState starts a fresh one otherwise.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load reads the document from disk. A missing file is not an error: the
// store simply starts empty, which is the state before the first scoring run.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read scores document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse scores document %s: %w", s.path, err)
	}

	// Normalize identifiers and ordering at the ingest boundary; documents
	// written by other tools may carry raw FIPS values or arbitrary order.
	for state, counties := range doc.States {
		for i := range counties {
			counties[i].CountyFIPS = domain.NormalizeFIPS(counties[i].CountyFIPS)
		}
		sort.SliceStable(counties, func(i, j int) bool {
			return counties[i].SwingScore > counties[j].SwingScore
		})
		doc.States[state] = counties
	}

	s.mu.Lock()
	s.doc = doc
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("loaded scores document", "path", s.path, "states", len(doc.States))
	return nil
}

// WriteState merges one state's result into the document and flushes it to
// disk atomically (temp file + rename), so readers never observe a partial
// document.
func (s *Store) WriteState(_ context.Context, res domain.StateResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.States == nil {
		s.doc.States = make(map[string][]domain.CountySwing)
	}
	s.doc.States[res.StateCode] = res.Counties
	s.doc.GeneratedAt = res.GeneratedAt
	s.doc.RunID = res.RunID
	s.doc.YearPrev = res.YearPrev
	s.doc.YearLatest = res.YearLatest
	s.loaded = true

	return s.flushLocked()
}

func (s *Store) flushLocked() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal scores document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create scores directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp scores file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write scores document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close scores document: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace scores document: %w", err)
	}
	return nil
}

// States returns the state codes present in the document, sorted.
func (s *Store) States() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	codes := make([]string, 0, len(s.doc.States))
	for code := range s.doc.States {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// State returns one state's scored counties, or false when the document has
// no entry for it.
func (s *Store) State(code string) ([]domain.CountySwing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counties, ok := s.doc.States[code]
	return counties, ok
}

// Meta returns the document's run metadata.
func (s *Store) Meta() (runID string, generatedAt time.Time, yearPrev, yearLatest int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.RunID, s.doc.GeneratedAt, s.doc.YearPrev, s.doc.YearLatest
}

// Ready reports whether the store holds a usable document. Used by the HTTP
// readiness probe.
func (s *Store) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.doc.States) == 0 {
		return errors.New("scores document not loaded or empty")
	}
	return nil
}
