package ledger

import (
	"errors"
	"testing"

	"keluarga/internal/core"
)

func rec(date, typ, desc, amount, grams string) Record {
	return Record{
		ColDate:        date,
		ColType:        typ,
		ColDescription: desc,
		ColAmount:      amount,
		ColGoldGrams:   grams,
	}
}

func TestLoadEmptyIsNotAnError(t *testing.T) {
	l, err := Load(nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty ledger")
	}
}

func TestLoadMissingColumnIsSchemaError(t *testing.T) {
	records := []Record{{
		ColDate:        "2024-01-01",
		ColType:        "Income",
		ColDescription: "Salary",
		ColAmount:      "5000000",
		// GoldGrams column absent entirely
	}}
	l, err := Load(records)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if len(schemaErr.Missing) != 1 || schemaErr.Missing[0] != ColGoldGrams {
		t.Fatalf("missing = %v", schemaErr.Missing)
	}
	if l.Len() != 0 {
		t.Fatalf("ledger must be empty on schema error")
	}
	// The degraded state still aggregates to all-zero.
	snap := core.Aggregate(l, core.Money{Rupiah: 900000})
	if snap.TotalIncome.Rupiah != 0 || len(snap.Trend) != 0 {
		t.Fatalf("degraded snapshot not zero: %+v", snap)
	}
}

func TestLoadCoercesBadCells(t *testing.T) {
	records := []Record{
		rec("not a date", "Income", "mystery", "abc", "x"),
	}
	l, err := Load(records)
	if err != nil {
		t.Fatalf("parse failures must not error: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("row must be retained")
	}
	tx := l.Transactions[0]
	if !tx.Date.IsMissing() {
		t.Fatalf("bad date must coerce to missing")
	}
	if tx.Amount.Rupiah != 0 || tx.GoldGrams != 0 {
		t.Fatalf("bad numbers must coerce to zero: %+v", tx)
	}
	if tx.Income.Rupiah != 0 {
		t.Fatalf("zero amount contributes nothing to buckets")
	}
}

func TestLoadBucketsByType(t *testing.T) {
	records := []Record{
		rec("2024-01-01", "Income", "Salary", "5000000", "0"),
		rec("2024-01-02", "Daily Expense", "Electricity", "350000", "0"),
		rec("2024-01-03", "Stock Savings", "BBCA", "1000000", "0"),
		rec("2024-01-04", "Gold Purchase", "1gr", "900000", "1"),
		rec("2024-01-05", "Lottery", "??", "10000", "0"),
	}
	l, err := Load(records)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Len() != 5 {
		t.Fatalf("len = %d", l.Len())
	}
	if l.Transactions[0].Income.Rupiah != 5000000 {
		t.Fatalf("income bucket: %+v", l.Transactions[0])
	}
	if l.Transactions[1].Expense.Rupiah != 350000 {
		t.Fatalf("expense bucket: %+v", l.Transactions[1])
	}
	if l.Transactions[2].StockInvestment.Rupiah != 1000000 {
		t.Fatalf("stock bucket: %+v", l.Transactions[2])
	}
	if l.Transactions[3].GoldPurchase.Rupiah != 900000 || l.Transactions[3].GoldGrams != 1 {
		t.Fatalf("gold bucket: %+v", l.Transactions[3])
	}
	un := l.Transactions[4]
	if un.Income.Rupiah != 0 || un.Expense.Rupiah != 0 || un.StockInvestment.Rupiah != 0 || un.GoldPurchase.Rupiah != 0 {
		t.Fatalf("unknown type must leave all buckets zero: %+v", un)
	}
	if un.Type != "Lottery" {
		t.Fatalf("raw type must survive: %q", un.Type)
	}
}

func TestLoadPreservesSourceOrder(t *testing.T) {
	records := []Record{
		rec("2024-02-01", "Income", "second by date", "1", "0"),
		rec("2024-01-01", "Income", "first by date", "2", "0"),
	}
	l, err := Load(records)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if l.Transactions[0].Description != "second by date" {
		t.Fatalf("load must not sort: %+v", l.Transactions)
	}
}

func TestWireRowOrder(t *testing.T) {
	tx := core.Transaction{
		Date:        core.NewDate(2024, 1, 1),
		Type:        core.TypeGoldPurchase,
		Description: "Beli emas",
		Amount:      core.Money{Rupiah: 900000},
		GoldGrams:   1.5,
	}
	got := WireRow(tx)
	want := []string{"2024-01-01", "Gold Purchase", "Beli emas", "900000", "1.5"}
	if len(got) != len(want) {
		t.Fatalf("row len = %d", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("col %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
