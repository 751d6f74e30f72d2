package core

import (
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in      string
		missing bool
		want    string
	}{
		{"2024-01-01", false, "2024-01-01"},
		{"2024-01-01 00:00:00", false, "2024-01-01"},
		{"15/02/2024", false, "2024-02-15"},
		{"", true, ""},
		{"yesterday", true, ""},
		{"2024-13-40", true, ""},
	}
	for i, tc := range cases {
		d := ParseDate(tc.in)
		if d.IsMissing() != tc.missing {
			t.Fatalf("case %d: missing=%v, want %v", i, d.IsMissing(), tc.missing)
		}
		if d.String() != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, d.String(), tc.want)
		}
	}
}

func TestBucketedExclusivity(t *testing.T) {
	cases := []struct {
		typ TransactionType
	}{
		{TypeIncome},
		{TypeDailyExpense},
		{TypeStockSavings},
		{TypeGoldPurchase},
		{"Lottery"}, // outside the enum
	}
	for i, tc := range cases {
		tx := Transaction{Type: tc.typ, Amount: Money{Rupiah: 1000}}.Bucketed()
		nonZero := 0
		for _, b := range []Money{tx.Income, tx.Expense, tx.StockInvestment, tx.GoldPurchase} {
			if b.Rupiah != 0 {
				nonZero++
			}
		}
		if tc.typ.IsKnown() && nonZero != 1 {
			t.Fatalf("case %d: %d buckets non-zero for known type %q", i, nonZero, tc.typ)
		}
		if !tc.typ.IsKnown() && nonZero != 0 {
			t.Fatalf("case %d: buckets set for unknown type %q", i, tc.typ)
		}
	}
}

func TestBucketedPreservesRawType(t *testing.T) {
	tx := Transaction{Type: "Lottery", Amount: Money{Rupiah: 50}}.Bucketed()
	if tx.Type != "Lottery" {
		t.Fatalf("raw type lost: %q", tx.Type)
	}
	if tx.Amount.Rupiah != 50 {
		t.Fatalf("amount lost: %d", tx.Amount.Rupiah)
	}
}

func TestDraftValidate(t *testing.T) {
	good := Draft{Type: TypeIncome, Amount: Money{Rupiah: 5000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	goldOnly := Draft{Type: TypeGoldPurchase, GoldGrams: 0.5}
	if err := goldOnly.Validate(); err != nil {
		t.Fatalf("gold-only draft should pass, got %v", err)
	}

	empty := Draft{Type: TypeDailyExpense}
	if err := empty.Validate(); !errors.Is(err, ErrNothingToRecord) {
		t.Fatalf("expected ErrNothingToRecord, got %v", err)
	}
	if err := (Draft{Amount: Money{Rupiah: -1}}).Validate(); !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount")
	}
	if err := (Draft{GoldGrams: -0.1}).Validate(); !errors.Is(err, ErrNegativeGrams) {
		t.Fatalf("expected ErrNegativeGrams")
	}
}

func TestDraftTransaction(t *testing.T) {
	d := Draft{
		Date:        NewDate(2024, 3, 1),
		Type:        TypeStockSavings,
		Description: "Beli saham BBCA",
		Amount:      Money{Rupiah: 250000},
	}
	tx := d.Transaction()
	if tx.StockInvestment.Rupiah != 250000 {
		t.Fatalf("stock bucket = %d", tx.StockInvestment.Rupiah)
	}
	if tx.Income.Rupiah != 0 || tx.Expense.Rupiah != 0 || tx.GoldPurchase.Rupiah != 0 {
		t.Fatalf("other buckets must stay zero")
	}
}
