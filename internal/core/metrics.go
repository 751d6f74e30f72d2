package core

import "sort"

type (
	// TrendPoint is one step of the cumulative cash-flow trend.
	TrendPoint struct {
		Date       Date
		Cumulative Money
	}

	// TypeAmount is an amount aggregated by transaction type.
	TypeAmount struct {
		Type   TransactionType
		Amount Money
	}

	// MetricsSnapshot holds every derived figure for one ledger. It is
	// recomputed on demand and never mutated in place.
	//
	// EstimatedWealth values gold at a fixed configured price per gram; it
	// is a rough estimate, not a live valuation.
	MetricsSnapshot struct {
		TotalIncome          Money
		TotalExpense         Money
		TotalStockInvestment Money
		TotalGoldGrams       float64
		NetCashFlow          Money
		EstimatedWealth      Money

		// Trend is the running net cash flow over date-valid rows, sorted
		// ascending by date. Empty when no row has a parseable date.
		Trend []TrendPoint

		// Allocation splits spending across the three non-income types,
		// in KnownTypes order, for the "where does the money go" view.
		Allocation []TypeAmount
	}
)

// Aggregate computes a MetricsSnapshot from a ledger. It is a pure function:
// totals cover every row, while the trend only covers rows whose date parsed.
func Aggregate(l Ledger, goldPricePerGram Money) MetricsSnapshot {
	var snap MetricsSnapshot
	for _, tx := range l.Transactions {
		snap.TotalIncome = snap.TotalIncome.Add(tx.Income)
		snap.TotalExpense = snap.TotalExpense.Add(tx.Expense)
		snap.TotalStockInvestment = snap.TotalStockInvestment.Add(tx.StockInvestment)
		snap.TotalGoldGrams += tx.GoldGrams
	}
	snap.NetCashFlow = snap.TotalIncome.Sub(snap.TotalExpense)

	goldValue := Money{Rupiah: int64(snap.TotalGoldGrams*float64(goldPricePerGram.Rupiah) + 0.5)}
	snap.EstimatedWealth = snap.NetCashFlow.Add(snap.TotalStockInvestment).Add(goldValue)

	snap.Trend = cumulativeTrend(l)
	snap.Allocation = allocation(l)
	return snap
}

// cumulativeTrend filters out rows with a missing date, stable-sorts the
// rest ascending, and prefix-sums income minus expense in that order. Ties
// in date keep the original ledger order.
func cumulativeTrend(l Ledger) []TrendPoint {
	dated := make([]Transaction, 0, len(l.Transactions))
	for _, tx := range l.Transactions {
		if tx.Date.IsMissing() {
			continue
		}
		dated = append(dated, tx)
	}
	if len(dated) == 0 {
		return nil
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.Before(dated[j].Date.Time)
	})
	trend := make([]TrendPoint, 0, len(dated))
	var running Money
	for _, tx := range dated {
		running = running.Add(tx.Income).Sub(tx.Expense)
		trend = append(trend, TrendPoint{Date: tx.Date, Cumulative: running})
	}
	return trend
}

func allocation(l Ledger) []TypeAmount {
	byType := map[TransactionType]Money{}
	for _, tx := range l.Transactions {
		byType[TypeDailyExpense] = byType[TypeDailyExpense].Add(tx.Expense)
		byType[TypeStockSavings] = byType[TypeStockSavings].Add(tx.StockInvestment)
		byType[TypeGoldPurchase] = byType[TypeGoldPurchase].Add(tx.GoldPurchase)
	}
	out := make([]TypeAmount, 0, 3)
	for _, t := range []TransactionType{TypeDailyExpense, TypeStockSavings, TypeGoldPurchase} {
		out = append(out, TypeAmount{Type: t, Amount: byType[t]})
	}
	return out
}
