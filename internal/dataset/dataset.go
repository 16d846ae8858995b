// Package dataset reads the tab-delimited bureau datasets. It provides a
// lazily-populated, read-only in-memory table per source file, column lookup
// by name, and NULL-aware cell parsers shared by the extraction layers.
//
// The standard library csv reader handles the tab-delimited format directly;
// no third-party TSV parser exists in our stack and none is needed.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// Sentinel errors for source-level failures. Both are fatal to the calling
// extraction: absence of bureau data must reach the caller, never be masked
// as "no rows".
var (
	// ErrSourceUnavailable indicates the backing file is missing or does not
	// parse as tab-delimited text.
	ErrSourceUnavailable = errors.New("dataset: source unavailable")

	// ErrMissingColumn indicates the header lacks an expected column.
	ErrMissingColumn = errors.New("dataset: missing column")
)

// Table is one parsed dataset: a header index plus raw string rows, in
// source order. Read-only after construction.
type Table struct {
	index map[string]int
	rows  [][]string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Require verifies that every named column exists in the header.
func (t *Table) Require(cols ...string) error {
	for _, c := range cols {
		if _, ok := t.index[c]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, c)
		}
	}
	return nil
}

// Cell returns the raw string value at (row, column). Unknown columns and
// short rows return "".
func (t *Table) Cell(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) || i >= len(t.rows[row]) {
		return ""
	}
	return t.rows[row][i]
}

// Source is one dataset file with a populate-once cache. The parsed table is
// guarded only against torn reads; a duplicate parse during a first-access
// race would produce identical data.
type Source struct {
	path  string
	delim rune

	mu    sync.RWMutex
	table *Table
}

// NewSource creates a source for the given file. The file is not touched
// until the first Load.
func NewSource(path string, delim rune) *Source {
	return &Source{path: path, delim: delim}
}

// Load returns the parsed table, reading the file on first access.
func (s *Source) Load() (*Table, error) {
	s.mu.RLock()
	t := s.table
	s.mu.RUnlock()
	if t != nil {
		return t, nil
	}
	return s.Reload()
}

// Reload re-reads the file unconditionally and replaces the cached table.
func (s *Source) Reload() (*Table, error) {
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = s.delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnavailable, s.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrSourceUnavailable, s.path)
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.TrimSpace(name)] = i
	}
	t := &Table{index: index, rows: records[1:]}

	s.mu.Lock()
	s.table = t
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"path":     s.path,
		"rows":     t.Len(),
		"duration": time.Since(start),
	}).Info("dataset loaded")

	return t, nil
}

// --- NULL-aware cell parsers ---

// isNull reports whether a raw cell encodes "unavailable". The datasets use
// empty cells or a literal NULL token.
func isNull(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "NULL")
}

// Float parses a cell to float64, returning def for NULL/empty/invalid.
func Float(v string, def float64) float64 {
	if isNull(v) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// Int parses a cell to int, returning def for NULL/empty/invalid. Values
// serialized as floats ("3.0") parse as their truncated integer.
func Int(v string, def int) int {
	if isNull(v) {
		return def
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return int(f)
}

// OptionalFloat parses a cell to *float64, with nil meaning unavailable.
func OptionalFloat(v string) *float64 {
	if isNull(v) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	return &f
}

// OptionalInt parses a cell to *int, with nil meaning unavailable.
func OptionalInt(v string) *int {
	if isNull(v) {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// dateLayouts are tried in order. Bureau exports are predominantly
// DD-MM-YYYY, sometimes with a trailing time component.
var dateLayouts = []string{"02-01-2006", "2006-01-02"}

// Date parses a cell to *time.Time, with nil meaning unavailable. A time
// part like "30-04-2024 00:00" is stripped before parsing.
func Date(v string) *time.Time {
	if isNull(v) {
		return nil
	}
	cleaned := strings.TrimSpace(v)
	if i := strings.IndexByte(cleaned, ' '); i >= 0 {
		cleaned = cleaned[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return &t
		}
	}
	return nil
}
