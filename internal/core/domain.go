package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome       TransactionType = "Income"
	TypeDailyExpense TransactionType = "Daily Expense"
	TypeStockSavings TransactionType = "Stock Savings"
	TypeGoldPurchase TransactionType = "Gold Purchase"
)

type (
	TransactionType string

	// Date wraps time.Time; the zero value marks a date that could not be
	// parsed from the source row. Such rows still count toward totals but
	// are excluded from date-ordered computations.
	Date struct {
		time.Time
	}

	// Transaction is one ledger entry. The four bucket amounts are derived
	// from Type at load time; at most one of them is non-zero.
	Transaction struct {
		Date        Date
		Type        TransactionType // raw value, preserved even outside the enum
		Description string
		Amount      Money
		GoldGrams   float64

		Income          Money
		Expense         Money
		StockInvestment Money
		GoldPurchase    Money
	}

	// Ledger is an ordered sequence of transactions in source row order.
	Ledger struct {
		Transactions []Transaction
	}

	// Draft is a proposed transaction as submitted at the presentation
	// boundary, before bucketing.
	Draft struct {
		Date        Date
		Type        TransactionType
		Description string
		Amount      Money
		GoldGrams   float64
	}
)

var (
	ErrNothingToRecord = errors.New("amount and gold grams are both zero")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrNegativeGrams   = errors.New("gold grams cannot be negative")
)

// KnownTypes lists the canonical transaction types in presentation order.
func KnownTypes() []TransactionType {
	return []TransactionType{TypeIncome, TypeDailyExpense, TypeStockSavings, TypeGoldPurchase}
}

// IsKnown reports whether the type is one of the four canonical values.
func (t TransactionType) IsKnown() bool {
	switch t {
	case TypeIncome, TypeDailyExpense, TypeStockSavings, TypeGoldPurchase:
		return true
	}
	return false
}

// NewDate creates a Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// IsMissing reports whether the date failed to parse at load time.
func (d Date) IsMissing() bool {
	return d.IsZero()
}

// String renders the date in the fixed wire layout, or empty when missing.
func (d Date) String() string {
	if d.IsMissing() {
		return ""
	}
	return d.Format("2006-01-02")
}

// dateLayouts are tried in order when coercing a raw cell to a Date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate coerces a raw cell into a Date. Unparseable input yields the
// missing (zero) Date; the row is retained either way.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{Time: t}
		}
	}
	return Date{}
}

// Bucketed returns the transaction with its four category buckets derived
// from Type. A type outside the enumeration leaves all buckets zero.
func (tx Transaction) Bucketed() Transaction {
	tx.Income = Money{}
	tx.Expense = Money{}
	tx.StockInvestment = Money{}
	tx.GoldPurchase = Money{}
	switch tx.Type {
	case TypeIncome:
		tx.Income = tx.Amount
	case TypeDailyExpense:
		tx.Expense = tx.Amount
	case TypeStockSavings:
		tx.StockInvestment = tx.Amount
	case TypeGoldPurchase:
		tx.GoldPurchase = tx.Amount
	}
	return tx
}

// Len returns the number of transactions in the ledger.
func (l Ledger) Len() int {
	return len(l.Transactions)
}

// Validate enforces the single append-path rule: a draft that moves neither
// money nor gold is rejected before any I/O. Type and description are left
// to the presentation boundary.
func (d Draft) Validate() error {
	if d.Amount.Rupiah < 0 {
		return ErrNegativeAmount
	}
	if d.GoldGrams < 0 {
		return ErrNegativeGrams
	}
	if d.Amount.Rupiah == 0 && d.GoldGrams == 0 {
		return ErrNothingToRecord
	}
	return nil
}

// Transaction converts the draft into a bucketed ledger entry.
func (d Draft) Transaction() Transaction {
	return Transaction{
		Date:        d.Date,
		Type:        d.Type,
		Description: d.Description,
		Amount:      d.Amount,
		GoldGrams:   d.GoldGrams,
	}.Bucketed()
}
