package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"keluarga/internal/core"
	"keluarga/internal/ledger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndReadAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	txs := []core.Transaction{
		{Date: core.NewDate(2024, 1, 1), Type: core.TypeIncome, Description: "Salary", Amount: core.Money{Rupiah: 5000000}},
		{Date: core.NewDate(2024, 1, 2), Type: core.TypeGoldPurchase, Description: "1gr", Amount: core.Money{Rupiah: 900000}, GoldGrams: 1},
	}
	for _, tx := range txs {
		if err := s.AppendRow(ctx, tx); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	recs, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d", len(recs))
	}
	// Insertion order, not date order.
	if recs[0][ledger.ColDescription] != "Salary" {
		t.Fatalf("order broken: %v", recs[0])
	}
	if recs[1][ledger.ColGoldGrams] != "1" {
		t.Fatalf("grams cell = %q", recs[1][ledger.ColGoldGrams])
	}

	// Records round-trip through the loader.
	l, err := ledger.Load(recs)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Transactions[0].Income.Rupiah != 5000000 {
		t.Fatalf("loaded tx: %+v", l.Transactions[0])
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s1.AppendRow(context.Background(), core.Transaction{Type: core.TypeIncome, Amount: core.Money{Rupiah: 1}}); err != nil {
		t.Fatalf("append: %v", err)
	}
	s1.Close()

	// Reopening must not re-run migrations destructively.
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()
	n, err := s2.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d", n)
	}
}
