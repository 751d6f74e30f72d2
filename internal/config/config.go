package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Memory backend
	SeedFile string

	// SQLite backend / mirror
	SQLiteDBPath string

	// AMQP (optional append event fan-out)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Valuation and freshness
	GoldPricePerGram int64
	ConnectionTTL    time.Duration
	LedgerTTL        time.Duration
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8082"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SeedFile:     getEnv("SEED_FILE", "./data/seed_transactions.csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/keluarga.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "keluarga"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_appends"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		// The original tracker hard-coded this rough estimate; it is
		// configuration here, still not a live price.
		GoldPricePerGram: getEnvInt64("GOLD_PRICE_PER_GRAM", 900000),
		ConnectionTTL:    getEnvDuration("CONNECTION_TTL", time.Hour),
		LedgerTTL:        getEnvDuration("LEDGER_TTL", time.Minute),
	}
}

// Validate validates the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory", "sheets", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets sqlite]", c.DataBackend))
	}

	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errs = append(errs, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
	}
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errs = append(errs, "SQLITE_DB_PATH cannot be empty when using the sqlite backend")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoldPricePerGram <= 0 {
		errs = append(errs, fmt.Sprintf("invalid gold price per gram %d: must be positive", c.GoldPricePerGram))
	}
	if c.ConnectionTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid connection TTL %v: must be at least 1 second", c.ConnectionTTL))
	}
	if c.LedgerTTL < time.Second {
		errs = append(errs, fmt.Sprintf("invalid ledger TTL %v: must be at least 1 second", c.LedgerTTL))
	}
	if c.LedgerTTL > c.ConnectionTTL {
		errs = append(errs, fmt.Sprintf("ledger TTL %v must not exceed connection TTL %v", c.LedgerTTL, c.ConnectionTTL))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
