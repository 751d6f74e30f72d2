// Command sheet-init writes the canonical header row into the configured
// Google Sheets spreadsheet so a fresh sheet passes schema validation.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	applog "keluarga/internal/log"
	gstore "keluarga/internal/store/google"
)

func main() {
	_ = godotenv.Load()

	logger := applog.Setup("sheet-init")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := gstore.NewFromEnv(ctx)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}

	if err := client.EnsureHeader(ctx); err != nil {
		logger.Error("Failed to write header row", "error", err)
		os.Exit(1)
	}
	logger.Info("Sheet is ready for ledger rows")
}
