package core

import (
	"reflect"
	"testing"
)

var testGoldPrice = Money{Rupiah: 900000}

func TestAggregateEmptyLedger(t *testing.T) {
	snap := Aggregate(Ledger{}, testGoldPrice)
	if snap.TotalIncome.Rupiah != 0 || snap.TotalExpense.Rupiah != 0 ||
		snap.TotalStockInvestment.Rupiah != 0 || snap.TotalGoldGrams != 0 {
		t.Fatalf("totals must be zero: %+v", snap)
	}
	if snap.NetCashFlow.Rupiah != 0 || snap.EstimatedWealth.Rupiah != 0 {
		t.Fatalf("derived values must be zero: %+v", snap)
	}
	if len(snap.Trend) != 0 {
		t.Fatalf("trend must be empty")
	}
}

func TestAggregateSingleIncome(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		Transaction{
			Date:        NewDate(2024, 1, 1),
			Type:        TypeIncome,
			Description: "Salary",
			Amount:      Money{Rupiah: 5000000},
		}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	if snap.TotalIncome.Rupiah != 5000000 {
		t.Fatalf("total income = %d", snap.TotalIncome.Rupiah)
	}
	if snap.NetCashFlow.Rupiah != 5000000 {
		t.Fatalf("net cash flow = %d", snap.NetCashFlow.Rupiah)
	}
	if snap.EstimatedWealth.Rupiah != 5000000 {
		t.Fatalf("estimated wealth = %d", snap.EstimatedWealth.Rupiah)
	}
}

func TestAggregateTrendSortsByDate(t *testing.T) {
	// Loaded out of date order: expense first, older income second.
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: NewDate(2024, 2, 1), Type: TypeDailyExpense, Amount: Money{Rupiah: 100}}.Bucketed(),
		Transaction{Date: NewDate(2024, 1, 1), Type: TypeIncome, Amount: Money{Rupiah: 500}}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	want := []TrendPoint{
		TrendPoint{Date: NewDate(2024, 1, 1), Cumulative: Money{Rupiah: 500}},
		TrendPoint{Date: NewDate(2024, 2, 1), Cumulative: Money{Rupiah: 400}},
	}
	if !reflect.DeepEqual(snap.Trend, want) {
		t.Fatalf("trend = %+v, want %+v", snap.Trend, want)
	}
}

func TestAggregateTrendSkipsMissingDates(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: Date{}, Type: TypeIncome, Amount: Money{Rupiah: 1000}}.Bucketed(),
		Transaction{Date: NewDate(2024, 5, 1), Type: TypeDailyExpense, Amount: Money{Rupiah: 300}}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	// Dateless income still counts toward totals.
	if snap.TotalIncome.Rupiah != 1000 {
		t.Fatalf("total income = %d", snap.TotalIncome.Rupiah)
	}
	if snap.NetCashFlow.Rupiah != 700 {
		t.Fatalf("net cash flow = %d", snap.NetCashFlow.Rupiah)
	}
	// But not toward the trend.
	if len(snap.Trend) != 1 || snap.Trend[0].Cumulative.Rupiah != -300 {
		t.Fatalf("trend = %+v", snap.Trend)
	}
}

func TestAggregateTrendTiesKeepLedgerOrder(t *testing.T) {
	d := NewDate(2024, 6, 1)
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: d, Type: TypeIncome, Amount: Money{Rupiah: 100}}.Bucketed(),
		Transaction{Date: d, Type: TypeDailyExpense, Amount: Money{Rupiah: 40}}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	if len(snap.Trend) != 2 {
		t.Fatalf("trend len = %d", len(snap.Trend))
	}
	if snap.Trend[0].Cumulative.Rupiah != 100 || snap.Trend[1].Cumulative.Rupiah != 60 {
		t.Fatalf("tie order broken: %+v", snap.Trend)
	}
}

func TestAggregateTrendFinalMatchesDatedNet(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: NewDate(2024, 1, 1), Type: TypeIncome, Amount: Money{Rupiah: 900}}.Bucketed(),
		Transaction{Date: NewDate(2024, 1, 2), Type: TypeDailyExpense, Amount: Money{Rupiah: 250}}.Bucketed(),
		Transaction{Date: NewDate(2024, 1, 3), Type: TypeStockSavings, Amount: Money{Rupiah: 100}}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	last := snap.Trend[len(snap.Trend)-1]
	if last.Cumulative.Rupiah != snap.NetCashFlow.Rupiah {
		t.Fatalf("trend final %d != net cash flow %d", last.Cumulative.Rupiah, snap.NetCashFlow.Rupiah)
	}
	for i := 1; i < len(snap.Trend); i++ {
		if snap.Trend[i].Date.Before(snap.Trend[i-1].Date.Time) {
			t.Fatalf("trend not date-ascending at %d", i)
		}
	}
}

func TestAggregateGoldValuation(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: NewDate(2024, 4, 1), Type: TypeGoldPurchase, Amount: Money{Rupiah: 1800000}, GoldGrams: 2}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	if snap.TotalGoldGrams != 2 {
		t.Fatalf("gold grams = %v", snap.TotalGoldGrams)
	}
	// Net cash flow ignores gold purchases; wealth adds grams at the fixed price.
	if snap.NetCashFlow.Rupiah != 0 {
		t.Fatalf("net cash flow = %d", snap.NetCashFlow.Rupiah)
	}
	if snap.EstimatedWealth.Rupiah != 1800000 {
		t.Fatalf("estimated wealth = %d", snap.EstimatedWealth.Rupiah)
	}
}

func TestAggregateIsPure(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: NewDate(2024, 2, 2), Type: TypeIncome, Amount: Money{Rupiah: 777}}.Bucketed(),
	}}
	a := Aggregate(l, testGoldPrice)
	b := Aggregate(l, testGoldPrice)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("aggregate not deterministic")
	}
}

func TestAggregateAllocation(t *testing.T) {
	l := Ledger{Transactions: []Transaction{
		Transaction{Date: NewDate(2024, 1, 1), Type: TypeDailyExpense, Amount: Money{Rupiah: 100}}.Bucketed(),
		Transaction{Date: NewDate(2024, 1, 2), Type: TypeStockSavings, Amount: Money{Rupiah: 200}}.Bucketed(),
		Transaction{Date: NewDate(2024, 1, 3), Type: TypeGoldPurchase, Amount: Money{Rupiah: 300}}.Bucketed(),
		Transaction{Date: NewDate(2024, 1, 4), Type: TypeIncome, Amount: Money{Rupiah: 900}}.Bucketed(),
	}}
	snap := Aggregate(l, testGoldPrice)
	want := []TypeAmount{
		{Type: TypeDailyExpense, Amount: Money{Rupiah: 100}},
		{Type: TypeStockSavings, Amount: Money{Rupiah: 200}},
		{Type: TypeGoldPurchase, Amount: Money{Rupiah: 300}},
	}
	if !reflect.DeepEqual(snap.Allocation, want) {
		t.Fatalf("allocation = %+v", snap.Allocation)
	}
}
