// Package secedgar provides a client for the SEC EDGAR XBRL frames API.
package secedgar

import (
	"os"
	"time"
)

// Config holds configuration for the SEC EDGAR API client.
type Config struct {
	BaseURL   string        // Base URL for the API (e.g., "https://data.sec.gov")
	UserAgent string        // SEC requires a descriptive User-Agent with contact info
	Timeout   time.Duration // HTTP request timeout
}

// LoadConfig loads SEC EDGAR configuration from environment variables.
func LoadConfig() Config {
	base := os.Getenv("SEC_EDGAR_BASE_URL")
	if base == "" {
		base = "https://data.sec.gov"
	}
	return Config{
		BaseURL:   base,
		UserAgent: os.Getenv("SEC_EDGAR_USER_AGENT"),
		Timeout:   30 * time.Second,
	}
}
