// Package backend selects and wires a ledger store implementation from
// configuration.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"keluarga/internal/config"
	"keluarga/internal/ledger"
	"keluarga/internal/services"
	gstore "keluarga/internal/store/google"
	"keluarga/internal/store/memory"
	"keluarga/internal/store/sqlite"
)

// Type names a ledger store backend.
type Type string

const (
	Memory Type = "memory"
	Sheets Type = "sheets"
	SQLite Type = "sqlite"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case Memory, Sheets, SQLite:
		return true
	}
	return false
}

// Result carries the store connector and an optional cleanup function.
type Result struct {
	Connect services.Connector
	Cleanup func() error
}

// New builds the connector for the configured backend.
//
// The sheets connector dials a fresh client on every connection refresh so
// the hourly TTL re-authorizes credentials; memory and sqlite hold a single
// process-local handle for their lifetime.
func New(cfg *config.Config, logger *slog.Logger) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	switch t {
	case Sheets:
		logger.Info("Using Google Sheets backend",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return &Result{
			Connect: func(ctx context.Context) (ledger.Store, error) {
				return gstore.NewFromEnv(ctx)
			},
		}, nil

	case SQLite:
		st, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Using SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{
			Connect: func(context.Context) (ledger.Store, error) { return st, nil },
			Cleanup: st.Close,
		}, nil

	default:
		st := memory.NewFromFile(cfg.SeedFile)
		logger.Info("Using memory backend", "seed_file", cfg.SeedFile, "rows", st.Len())
		return &Result{
			Connect: func(context.Context) (ledger.Store, error) { return st, nil },
		}, nil
	}
}
