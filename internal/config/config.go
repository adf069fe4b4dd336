package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string
	TenantID  string

	ExportDecimalPlaces int
	DefaultProfitMargin float64
	MigrateOnLoad       bool
	QuoteListLimit      int

	InboxDir         string
	WatchIntervalSec int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "quotecore.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		TenantID:  getEnv("TENANT_ID", "default"),

		ExportDecimalPlaces: getEnvInt("EXPORT_DECIMAL_PLACES", 2),
		DefaultProfitMargin: getEnvFloat("DEFAULT_PROFIT_MARGIN", 20),
		MigrateOnLoad:       getEnvBool("MIGRATE_ON_LOAD", true),
		QuoteListLimit:      getEnvInt("QUOTE_LIST_LIMIT", 50),

		InboxDir:         getEnv("BOM_INBOX_DIR", filepath.Join(cwd, "inbox")),
		WatchIntervalSec: getEnvInt("WATCH_INTERVAL_SEC", 60),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
