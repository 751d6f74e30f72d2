// Package worker mirrors confirmed ledger appends into local storage.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"keluarga/internal/amqp"
	"keluarga/internal/store/sqlite"
)

// Mirror consumes append events and writes each transaction into the
// SQLite store, keeping an on-disk copy of the external ledger.
type Mirror struct {
	events *amqp.Client
	store  *sqlite.Store
}

func NewMirror(events *amqp.Client, store *sqlite.Store) *Mirror {
	return &Mirror{events: events, store: store}
}

// Run blocks consuming events until the context is cancelled. A failed
// insert is returned to the queue for redelivery.
func (m *Mirror) Run(ctx context.Context) error {
	return m.events.ConsumeTransactionAppended(ctx, func(msg *amqp.TransactionAppendedMessage) error {
		tx := msg.Transaction()
		if err := m.store.AppendRow(ctx, tx); err != nil {
			return fmt.Errorf("mirror append %s: %w", msg.ID, err)
		}
		slog.InfoContext(ctx, "Mirrored ledger row",
			"event_id", msg.ID,
			"type", msg.Type,
			"amount", msg.Amount)
		return nil
	})
}
