// Package memory is an in-process ledger store used as the default backend
// and in tests. Rows live in a mutex-guarded slice; an optional CSV seed
// file provides starting data.
package memory

import (
	"context"
	"encoding/csv"
	"os"
	"sync"

	"keluarga/internal/core"
	"keluarga/internal/ledger"
)

type Store struct {
	mu     sync.Mutex
	header []string
	rows   [][]string
}

// New creates an empty store with the canonical five-column header.
func New() *Store {
	return &Store{header: ledger.Header()}
}

// NewWithHeader creates a store with an arbitrary header. Tests use this to
// exercise the loader's schema validation against malformed sources.
func NewWithHeader(header []string) *Store {
	return &Store{header: append([]string(nil), header...)}
}

// NewFromFile seeds the store from a CSV file whose first line is the
// header. A missing or unreadable file yields an empty store.
func NewFromFile(path string) *Store {
	f, err := os.Open(path)
	if err != nil {
		return New()
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil || len(all) == 0 {
		return New()
	}
	return &Store{header: all[0], rows: all[1:]}
}

// ReadAll returns the rows as column-name-keyed records in insertion order.
func (s *Store) ReadAll(_ context.Context) ([]ledger.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ledger.Record, 0, len(s.rows))
	for _, row := range s.rows {
		rec := ledger.Record{}
		for i, col := range s.header {
			if i < len(row) {
				rec[col] = row[i]
			} else {
				rec[col] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

// AppendRow stores the transaction in the fixed column order.
func (s *Store) AppendRow(_ context.Context, tx core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, ledger.WireRow(tx))
	return nil
}

// Len reports the number of data rows.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
