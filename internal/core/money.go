// Package core holds the ledger domain: transactions, money, and the
// derived metrics computed from a loaded ledger.
//
// This file contains money parsing and formatting. Amounts are whole
// rupiah; there is no sub-unit in play.
package core

import (
	"strconv"
	"strings"
)

// Money is a non-negative whole-rupiah amount.
type Money struct {
	Rupiah int64
}

// Sub returns m minus other. Net cash flow may legitimately be negative.
func (m Money) Sub(other Money) Money {
	return Money{Rupiah: m.Rupiah - other.Rupiah}
}

// Add returns the sum of the two amounts.
func (m Money) Add(other Money) Money {
	return Money{Rupiah: m.Rupiah + other.Rupiah}
}

// ParseAmount coerces a raw cell into Money. Unparseable or negative input
// coerces to zero; cleansing degrades values, it never drops rows.
//
// Accepted forms: "5000000", "5000000.0", "1.234,50"-style separators are
// not expected from the store (USER_ENTERED numbers come back plain), but a
// stray thousands comma is tolerated.
func ParseAmount(s string) Money {
	f, ok := parseNumeric(s)
	if !ok || f < 0 {
		return Money{}
	}
	return Money{Rupiah: int64(f + 0.5)}
}

// ParseGrams coerces a raw cell into a gold quantity in grams, zero on any
// parse failure or negative value.
func ParseGrams(s string) float64 {
	f, ok := parseNumeric(s)
	if !ok || f < 0 {
		return 0
	}
	return f
}

func parseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// FormatRupiah renders the amount as "Rp 5.000.000" with Indonesian
// thousands grouping. Negative amounts carry a leading minus.
func FormatRupiah(m Money) string {
	v := m.Rupiah
	neg := v < 0
	if neg {
		v = -v
	}
	digits := strconv.FormatInt(v, 10)
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	out := "Rp " + b.String()
	if neg {
		out = "-Rp " + b.String()
	}
	return out
}

// FormatGrams renders a gold quantity with two decimals, e.g. "1,25".
// The empty string is returned for zero so history tables stay uncluttered.
func FormatGrams(g float64) string {
	if g == 0 {
		return ""
	}
	s := strconv.FormatFloat(g, 'f', 2, 64)
	return strings.ReplaceAll(s, ".", ",")
}

// FormatAmountCell renders an amount for the five-column wire row. Whole
// rupiah are written without decimals.
func FormatAmountCell(m Money) string {
	return strconv.FormatInt(m.Rupiah, 10)
}

// FormatGramsCell renders a gold quantity for the wire row.
func FormatGramsCell(g float64) string {
	return strconv.FormatFloat(g, 'f', -1, 64)
}
