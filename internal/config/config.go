package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server      ServerConfig
	RecordStore RecordStoreConfig
	MongoDB     MongoDBConfig
	Sheets      SheetsConfig
	Reconcile   ReconcileConfig
	Alerts      AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// RecordStoreConfig points at the external record store REST API.
type RecordStoreConfig struct {
	BaseURL string
}

// MongoDBConfig holds settings for the removal ledger store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SheetsConfig contains configuration for the report export sink. An empty
// CredentialsPath disables exporting.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// ReconcileConfig holds scheduler-related settings.
type ReconcileConfig struct {
	CronSchedule string
}

// AlertsConfig holds near-due sweep settings.
type AlertsConfig struct {
	HorizonDays int
	SpanDays    int
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	horizonDays, err := getenvInt("ALERT_HORIZON_DAYS", 7)
	if err != nil {
		return nil, err
	}
	spanDays, err := getenvInt("ALERT_SPAN_DAYS", 30)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		RecordStore: RecordStoreConfig{
			BaseURL: getenvWithDefault("RECORD_STORE_BASE_URL", "http://localhost:8000"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "boardinghouse"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_REPORT_ID"),
		},
		Reconcile: ReconcileConfig{
			CronSchedule: getenvWithDefault("RECONCILE_CRON_SCHEDULE", "0 * * * *"),
		},
		Alerts: AlertsConfig{
			HorizonDays: horizonDays,
			SpanDays:    spanDays,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.RecordStore.BaseURL == "" {
		return errors.New("RECORD_STORE_BASE_URL must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Sheets.CredentialsPath != "" && c.Sheets.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_REPORT_ID must be provided when sheets credentials are set")
	}

	if c.Reconcile.CronSchedule == "" {
		return errors.New("RECONCILE_CRON_SCHEDULE must be provided")
	}

	if c.Alerts.HorizonDays <= 0 {
		return errors.New("ALERT_HORIZON_DAYS must be positive")
	}
	if c.Alerts.SpanDays <= 0 {
		return errors.New("ALERT_SPAN_DAYS must be positive")
	}

	return nil
}

// SheetsEnabled reports whether the report export sink is configured.
func (c *Config) SheetsEnabled() bool {
	return c.Sheets.CredentialsPath != ""
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
