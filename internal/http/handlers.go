package http

import (
	"errors"
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"keluarga/internal/core"
	"keluarga/internal/ledger"
	"keluarga/internal/services"
)

// historyLimit caps the rows shown in the dashboard table; the full ledger
// stays available to the aggregates.
const historyLimit = 50

type metricCard struct {
	Label string
	Value string
}

type allocationRow struct {
	Type   string
	Amount string
}

type trendRow struct {
	Date       string
	Cumulative string
}

type historyRow struct {
	Date        string
	Type        string
	Description string
	Amount      string
	Grams       string
}

type overviewData struct {
	Degraded        bool
	DegradedMessage string
	Empty           bool
	Cards           []metricCard
	Allocation      []allocationRow
	Trend           []trendRow
	History         []historyRow
}

type indexData struct {
	Overview overviewData
	Types    []core.TransactionType
	Today    string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, fatal := s.buildOverview(r)
	if fatal != nil {
		slog.ErrorContext(r.Context(), "Ledger unavailable", "error", fatal)
		http.Error(w, "Ledger store unavailable. Please try again later.", http.StatusServiceUnavailable)
		return
	}

	page := indexData{
		Overview: data,
		Types:    core.KnownTypes(),
		Today:    time.Now().Format("2006-01-02"),
	}
	if err := s.templates.ExecuteTemplate(w, "index.html", page); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render index", "error", err)
	}
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data, fatal := s.buildOverview(r)
	if fatal != nil {
		slog.ErrorContext(r.Context(), "Ledger unavailable", "error", fatal)
		http.Error(w, "Ledger store unavailable. Please try again later.", http.StatusServiceUnavailable)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "overview.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Failed to render overview", "error", err)
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	draft, err := draftFromForm(r)
	if err != nil {
		writeFormError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	receipt, err := s.svc.Append(r.Context(), draft)
	if err != nil {
		var connErr *services.ConnectionError
		var writeErr *services.WriteError
		switch {
		case errors.Is(err, core.ErrNothingToRecord),
			errors.Is(err, core.ErrNegativeAmount),
			errors.Is(err, core.ErrNegativeGrams):
			writeFormError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.As(err, &connErr):
			slog.ErrorContext(r.Context(), "Ledger unavailable on append", "error", err)
			writeFormError(w, http.StatusServiceUnavailable, "Ledger store unavailable. Nothing was recorded.")
		case errors.As(err, &writeErr):
			slog.ErrorContext(r.Context(), "Append failed", "error", err)
			writeFormError(w, http.StatusInternalServerError, "Recording failed. Check the ledger before retrying.")
		default:
			slog.ErrorContext(r.Context(), "Append failed", "error", err)
			writeFormError(w, http.StatusInternalServerError, "Recording failed.")
		}
		return
	}

	w.Header().Set("HX-Trigger", "transaction-created")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<div class="notice notice-ok">` + html.EscapeString(receipt.Message()) + `</div>`))
}

func draftFromForm(r *http.Request) (core.Draft, error) {
	typ := core.TransactionType(strings.TrimSpace(r.FormValue("type")))
	if !typ.IsKnown() {
		return core.Draft{}, errors.New("unknown transaction type")
	}

	var amount core.Money
	if raw := strings.TrimSpace(r.FormValue("amount")); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return core.Draft{}, errors.New("amount must be a whole number of rupiah")
		}
		amount = core.Money{Rupiah: v}
	}

	var grams float64
	if raw := strings.TrimSpace(r.FormValue("grams")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return core.Draft{}, errors.New("gold grams must be a number")
		}
		grams = v
	}

	return core.Draft{
		Date:        core.ParseDate(r.FormValue("date")),
		Type:        typ,
		Description: strings.TrimSpace(r.FormValue("description")),
		Amount:      amount,
		GoldGrams:   grams,
	}, nil
}

// buildOverview assembles the dashboard view model. A schema problem in the
// source degrades to an empty "no data" view; a connection failure is fatal
// and returned for the handler to turn into a 503.
func (s *Server) buildOverview(r *http.Request) (overviewData, error) {
	ctx := r.Context()

	snap, err := s.svc.Metrics(ctx)
	if err != nil {
		var schemaErr *ledger.SchemaError
		if errors.As(err, &schemaErr) {
			// Zero-valued snapshot: the source exists but its columns are
			// wrong, so the dashboard shows a warning over the no-data view.
			return overviewData{
				Degraded:        true,
				DegradedMessage: "Ledger columns do not match the expected layout: missing " + strings.Join(schemaErr.Missing, ", "),
				Empty:           true,
				Cards:           metricCards(snap),
			}, nil
		}
		return overviewData{}, err
	}

	// The snapshot above primed the ledger slot; this read is served from it.
	l, err := s.svc.Ledger(ctx)
	if err != nil {
		return overviewData{}, err
	}

	data := overviewData{
		Empty:      l.Len() == 0,
		Cards:      metricCards(snap),
		Allocation: allocationRows(snap),
		Trend:      trendRows(snap),
		History:    historyRows(l),
	}
	return data, nil
}

func metricCards(snap core.MetricsSnapshot) []metricCard {
	return []metricCard{
		{Label: "Total Income", Value: core.FormatRupiah(snap.TotalIncome)},
		{Label: "Total Expense", Value: core.FormatRupiah(snap.TotalExpense)},
		{Label: "Stock Investment", Value: core.FormatRupiah(snap.TotalStockInvestment)},
		{Label: "Gold Owned", Value: formatGramsLabel(snap.TotalGoldGrams)},
		{Label: "Net Cash Flow", Value: core.FormatRupiah(snap.NetCashFlow)},
		{Label: "Estimated Wealth", Value: core.FormatRupiah(snap.EstimatedWealth)},
	}
}

func formatGramsLabel(g float64) string {
	if g == 0 {
		return "0 g"
	}
	return core.FormatGrams(g) + " g"
}

func allocationRows(snap core.MetricsSnapshot) []allocationRow {
	rows := make([]allocationRow, 0, len(snap.Allocation))
	for _, a := range snap.Allocation {
		rows = append(rows, allocationRow{
			Type:   string(a.Type),
			Amount: core.FormatRupiah(a.Amount),
		})
	}
	return rows
}

func trendRows(snap core.MetricsSnapshot) []trendRow {
	rows := make([]trendRow, 0, len(snap.Trend))
	for _, p := range snap.Trend {
		rows = append(rows, trendRow{
			Date:       p.Date.String(),
			Cumulative: core.FormatRupiah(p.Cumulative),
		})
	}
	return rows
}

// historyRows renders the most recent transactions first. Rows with a
// missing date sink to the bottom in their source order.
func historyRows(l core.Ledger) []historyRow {
	txs := make([]core.Transaction, len(l.Transactions))
	copy(txs, l.Transactions)
	sort.SliceStable(txs, func(i, j int) bool {
		if txs[i].Date.IsMissing() || txs[j].Date.IsMissing() {
			return txs[j].Date.IsMissing() && !txs[i].Date.IsMissing()
		}
		return txs[j].Date.Before(txs[i].Date.Time)
	})
	if len(txs) > historyLimit {
		txs = txs[:historyLimit]
	}
	rows := make([]historyRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, historyRow{
			Date:        tx.Date.String(),
			Type:        string(tx.Type),
			Description: tx.Description,
			Amount:      core.FormatRupiah(tx.Amount),
			Grams:       core.FormatGrams(tx.GoldGrams),
		})
	}
	return rows
}

func writeFormError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="notice notice-error">` + html.EscapeString(msg) + `</div>`))
}
