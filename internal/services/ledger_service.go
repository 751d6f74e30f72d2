// Package services orchestrates the ledger read and append paths across
// the store connection, the cache slots, the loader, and the aggregator.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"keluarga/internal/amqp"
	"keluarga/internal/cache"
	"keluarga/internal/core"
	"keluarga/internal/ledger"
)

// Connector dials the external ledger store and returns a live handle.
type Connector func(ctx context.Context) (ledger.Store, error)

// ConnectionError marks a failed store connection refresh. It is fatal for
// the operation that triggered it: nothing proceeds without a valid handle.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return fmt.Sprintf("ledger store connection: %v", e.Err) }
func (e *ConnectionError) Unwrap() error { return e.Err }

// WriteError marks a failed append. The ledger cache is left untouched and
// no retry is attempted; the row may or may not have been written.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return fmt.Sprintf("ledger store append: %v", e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Receipt confirms a successful append for caller-facing messaging.
type Receipt struct {
	Type            core.TransactionType
	Description     string
	FormattedAmount string
	FormattedGrams  string
}

// Message renders the confirmation line shown after a successful append.
func (r Receipt) Message() string {
	if r.FormattedGrams != "" {
		return fmt.Sprintf("%s of %s (%s g) recorded", r.Type, r.FormattedAmount, r.FormattedGrams)
	}
	return fmt.Sprintf("%s of %s recorded", r.Type, r.FormattedAmount)
}

// Config holds the tunables of the ledger service.
type Config struct {
	// ConnectionTTL bounds how long a store handle is reused.
	ConnectionTTL time.Duration
	// LedgerTTL bounds how stale a served ledger may be.
	LedgerTTL time.Duration
	// GoldPricePerGram is the fixed valuation used for estimated wealth.
	GoldPricePerGram core.Money
}

// DefaultConfig mirrors the freshness windows of the original tracker.
func DefaultConfig() Config {
	return Config{
		ConnectionTTL:    time.Hour,
		LedgerTTL:        time.Minute,
		GoldPricePerGram: core.Money{Rupiah: 900000},
	}
}

// LedgerService serves cached reads of the external ledger store and the
// single append path. Reads and writes are synchronous; the only cross-call
// state is the two cache slots, each replaced whole on refresh.
type LedgerService struct {
	connect    Connector
	connSlot   *cache.Slot[ledger.Store]
	ledgerSlot *cache.Slot[core.Ledger]
	config     Config
	events     *amqp.Client // optional append event fan-out
}

func NewLedgerService(connect Connector, config Config, events *amqp.Client) *LedgerService {
	return &LedgerService{
		connect:    connect,
		connSlot:   cache.NewSlot[ledger.Store](config.ConnectionTTL),
		ledgerSlot: cache.NewSlot[core.Ledger](config.LedgerTTL),
		config:     config,
		events:     events,
	}
}

// GoldPricePerGram exposes the configured valuation constant. It is a rough
// estimate, not a live price.
func (s *LedgerService) GoldPricePerGram() core.Money {
	return s.config.GoldPricePerGram
}

// store returns the cached connection handle, dialing when absent or older
// than the connection TTL. Failures are fatal for the current operation.
func (s *LedgerService) store(ctx context.Context) (ledger.Store, error) {
	st, err := s.connSlot.Get(ctx, func(ctx context.Context) (ledger.Store, error) {
		return s.connect(ctx)
	})
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	return st, nil
}

// Ledger returns the current ledger, reloading from the store when the
// cached one is absent or older than the ledger TTL.
//
// A schema problem in the source yields an empty ledger together with a
// *ledger.SchemaError: the caller keeps running in a "no data" state. A
// failed refresh never silently serves the previous ledger.
func (s *LedgerService) Ledger(ctx context.Context) (core.Ledger, error) {
	return s.ledgerSlot.Get(ctx, func(ctx context.Context) (core.Ledger, error) {
		st, err := s.store(ctx)
		if err != nil {
			return core.Ledger{}, err
		}
		records, err := st.ReadAll(ctx)
		if err != nil {
			return core.Ledger{}, fmt.Errorf("read ledger rows: %w", err)
		}
		l, err := ledger.Load(records)
		if err != nil {
			return core.Ledger{}, err
		}
		slog.DebugContext(ctx, "Ledger reloaded", "rows", l.Len())
		return l, nil
	})
}

// Metrics aggregates the current ledger into a snapshot. When the read
// degrades (schema error, connection failure) the zero-valued snapshot of
// the empty ledger is returned alongside the error, so callers can still
// render a "no data" view.
func (s *LedgerService) Metrics(ctx context.Context) (core.MetricsSnapshot, error) {
	l, err := s.Ledger(ctx)
	return core.Aggregate(l, s.config.GoldPricePerGram), err
}

// Append validates the draft, writes it through to the store, and
// invalidates the ledger slot so the next read includes the new row.
//
// Validation failures surface before any I/O. Write failures surface as
// *WriteError with the cache untouched.
func (s *LedgerService) Append(ctx context.Context, draft core.Draft) (Receipt, error) {
	if err := draft.Validate(); err != nil {
		return Receipt{}, err
	}

	st, err := s.store(ctx)
	if err != nil {
		return Receipt{}, err
	}

	tx := draft.Transaction()
	if err := st.AppendRow(ctx, tx); err != nil {
		return Receipt{}, &WriteError{Err: err}
	}

	// The write is confirmed; from here the caller gets a success even if
	// the optional event publish fails.
	s.ledgerSlot.Invalidate()

	if s.events != nil {
		if err := s.events.PublishTransactionAppended(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to publish append event",
				"error", err, "type", string(tx.Type))
		}
	}

	slog.InfoContext(ctx, "Transaction appended",
		"type", string(tx.Type),
		"amount", tx.Amount.Rupiah,
		"gold_grams", tx.GoldGrams)

	return Receipt{
		Type:            tx.Type,
		Description:     tx.Description,
		FormattedAmount: core.FormatRupiah(tx.Amount),
		FormattedGrams:  core.FormatGrams(tx.GoldGrams),
	}, nil
}

// InvalidateLedger forces the next read to reload from the store.
func (s *LedgerService) InvalidateLedger() {
	s.ledgerSlot.Invalidate()
}
