// Command trend-chart renders the cumulative cash-flow trend of the
// configured ledger backend to a PNG file.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/wcharczuk/go-chart/v2"

	"keluarga/internal/backend"
	"keluarga/internal/config"
	"keluarga/internal/core"
	"keluarga/internal/ledger"
	applog "keluarga/internal/log"
)

func main() {
	_ = godotenv.Load()

	output := flag.String("o", "trend.png", "output PNG path")
	flag.Parse()

	logger := applog.Setup("trend-chart")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	be, err := backend.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if be.Cleanup != nil {
		defer be.Cleanup()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := be.Connect(ctx)
	if err != nil {
		logger.Error("Failed to connect to ledger store", "error", err)
		os.Exit(1)
	}
	records, err := st.ReadAll(ctx)
	if err != nil {
		logger.Error("Failed to read ledger rows", "error", err)
		os.Exit(1)
	}
	l, err := ledger.Load(records)
	if err != nil {
		logger.Error("Ledger failed validation", "error", err)
		os.Exit(1)
	}

	snap := core.Aggregate(l, core.Money{Rupiah: cfg.GoldPricePerGram})
	if len(snap.Trend) == 0 {
		logger.Error("No dated rows to plot")
		os.Exit(1)
	}

	xs := make([]time.Time, 0, len(snap.Trend))
	ys := make([]float64, 0, len(snap.Trend))
	for _, p := range snap.Trend {
		xs = append(xs, p.Date.Time)
		ys = append(ys, float64(p.Cumulative.Rupiah))
	}

	graph := chart.Chart{
		Title:  "Cumulative net cash flow",
		Width:  1024,
		Height: 512,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Rupiah",
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Running net",
				XValues: xs,
				YValues: ys,
			},
		},
	}

	f, err := os.Create(*output)
	if err != nil {
		logger.Error("Failed to create output file", "error", err, "path", *output)
		os.Exit(1)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		logger.Error("Failed to render chart", "error", err)
		os.Exit(1)
	}
	logger.Info("Trend chart written", "path", *output, "points", len(snap.Trend))
}
