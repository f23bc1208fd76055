package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"po2so/internal/extract"
)

type Config struct {
	DBPath    string
	OutputDir string

	SOPrefix string

	TaxRate      float64
	ShippingFee  float64
	PaymentTerms string

	PlaceholderItemCode string
	PlaceholderItemCost float64

	ExportXLSX   bool
	ProcessBatch int
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		SOPrefix: getEnv("SO_PREFIX", "SO-"),

		TaxRate:      getEnvFloat("TAX_RATE", 0.085),
		ShippingFee:  getEnvFloat("SHIPPING_FEE", 75.00),
		PaymentTerms: getEnv("PAYMENT_TERMS", "Net 30"),

		PlaceholderItemCode: getEnv("PLACEHOLDER_ITEM_CODE", "DEFAULT001"),
		PlaceholderItemCost: getEnvFloat("PLACEHOLDER_ITEM_COST", 100.00),

		ExportXLSX:   getEnvBool("EXPORT_XLSX", false),
		ProcessBatch: getEnvInt("PROCESS_BATCH", 20),
	}

	return cfg, nil
}

// Defaults maps the configured rates and terms onto the completion
// profile used when extraction leaves fields empty.
func (c Config) Defaults() extract.Defaults {
	d := extract.StandardDefaults()
	d.TaxRate = c.TaxRate
	d.ShippingFee = c.ShippingFee
	d.PaymentTerms = c.PaymentTerms
	d.PlaceholderCode = c.PlaceholderItemCode
	d.PlaceholderCost = c.PlaceholderItemCost
	return d
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
