// Package ledger defines the external ledger store contract and the loader
// that turns raw store rows into a validated in-memory ledger.
package ledger

import (
	"context"

	"keluarga/internal/core"
)

// The store carries exactly five columns, in this order. The header row of
// the tabular source must use these names.
const (
	ColDate        = "Date"
	ColType        = "TransactionType"
	ColDescription = "Description"
	ColAmount      = "Amount"
	ColGoldGrams   = "GoldGrams"
)

// Header returns the fixed column order for serialization.
func Header() []string {
	return []string{ColDate, ColType, ColDescription, ColAmount, ColGoldGrams}
}

// Record is one raw row keyed by column name, values as raw cell text.
type Record map[string]string

// Ports for outbound store adapters.
type (
	// RowReader returns every data row of the store, in source order, as
	// column-name-keyed records. Schema validation is the loader's job.
	RowReader interface {
		ReadAll(ctx context.Context) ([]Record, error)
	}

	// RowAppender appends one row positionally in the fixed column order.
	// The append is atomic from the caller's point of view.
	RowAppender interface {
		AppendRow(ctx context.Context, tx core.Transaction) error
	}

	// Store is the full external ledger store contract.
	Store interface {
		RowReader
		RowAppender
	}
)

// WireRow serializes a transaction into the fixed five-column order.
func WireRow(tx core.Transaction) []string {
	return []string{
		tx.Date.String(),
		string(tx.Type),
		tx.Description,
		core.FormatAmountCell(tx.Amount),
		core.FormatGramsCell(tx.GoldGrams),
	}
}
