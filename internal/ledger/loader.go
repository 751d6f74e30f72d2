package ledger

import (
	"fmt"
	"strings"

	"keluarga/internal/core"
)

// SchemaError reports required columns missing from the source data. It is
// non-fatal: the caller gets an empty ledger and keeps running in a
// degraded "no data" state.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("ledger source is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Load validates the schema and coerces raw records into a ledger.
//
// An empty record set is a normal state and yields an empty ledger with no
// error. When any required column is absent no row is processed and a
// *SchemaError is returned alongside the empty ledger. Per-row parse
// failures never drop a row: bad dates coerce to missing, bad numbers to
// zero.
func Load(records []Record) (core.Ledger, error) {
	if len(records) == 0 {
		return core.Ledger{}, nil
	}

	// Records share the header-derived key set, so the first one is enough
	// to check the schema.
	var missing []string
	for _, col := range Header() {
		if _, ok := records[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return core.Ledger{}, &SchemaError{Missing: missing}
	}

	txs := make([]core.Transaction, 0, len(records))
	for _, rec := range records {
		tx := core.Transaction{
			Date:        core.ParseDate(rec[ColDate]),
			Type:        core.TransactionType(strings.TrimSpace(rec[ColType])),
			Description: strings.TrimSpace(rec[ColDescription]),
			Amount:      core.ParseAmount(rec[ColAmount]),
			GoldGrams:   core.ParseGrams(rec[ColGoldGrams]),
		}
		txs = append(txs, tx.Bucketed())
	}
	return core.Ledger{Transactions: txs}, nil
}
