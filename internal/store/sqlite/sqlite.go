// Package sqlite keeps the ledger in a local SQLite database. It backs the
// mirror worker and serves as a standalone offline backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"keluarga/internal/core"
	"keluarga/internal/ledger"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ ledger.Store = (*Store)(nil)

// Open opens (creating if needed) the database at dbPath and applies
// pending migrations.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReadAll returns every row in insertion order under the canonical column
// names, mirroring what a spreadsheet read produces.
func (s *Store) ReadAll(ctx context.Context) ([]ledger.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tx_date, tx_type, description, amount, gold_grams
		 FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []ledger.Record
	for rows.Next() {
		var date, typ, desc, amount, grams string
		if err := rows.Scan(&date, &typ, &desc, &amount, &grams); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, ledger.Record{
			ledger.ColDate:        date,
			ledger.ColType:        typ,
			ledger.ColDescription: desc,
			ledger.ColAmount:      amount,
			ledger.ColGoldGrams:   grams,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

// AppendRow inserts one transaction. A single INSERT keeps the append
// atomic from the caller's point of view.
func (s *Store) AppendRow(ctx context.Context, tx core.Transaction) error {
	row := ledger.WireRow(tx)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (tx_date, tx_type, description, amount, gold_grams)
		 VALUES (?, ?, ?, ?, ?)`,
		row[0], row[1], row[2], row[3], row[4])
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// Count reports the number of stored rows.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}
