package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/downtime-prediction/internal/logging"
	"github.com/i474232898/downtime-prediction/internal/risk"
)

type AppConfig struct {
	// External prediction service. Both values must be set for remote calls;
	// otherwise the service runs on local fallback data only.
	PredictionAPIURL   string
	PredictionAPIToken string

	// DemoMode forces local fallback data even when the API is configured.
	DemoMode bool

	// Outbound HTTP client timeout.
	HTTPTimeout time.Duration

	// Deadline for remote city-prediction calls.
	CityTimeout time.Duration

	// Simulated backend latency on the local path.
	MockDelay time.Duration

	// Regions evaluated by the background monitor.
	MonitorRegions []string

	// MonitorInterval controls how often the monitor evaluates each region.
	MonitorInterval time.Duration

	// In-memory store retention.
	StoreMaxHistory int           // max number of snapshots per region (0 = unlimited)
	StoreMaxAge     time.Duration // max age of snapshots (0 = unlimited)

	// City classifier tier boundaries.
	RiskThresholds risk.Thresholds

	Logging logging.Config

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logging.Sugar.Infof("no .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.PredictionAPIURL = os.Getenv("PREDICTION_API_URL")
	cfg.PredictionAPIToken = os.Getenv("PREDICTION_API_TOKEN")
	cfg.DemoMode = getenvBool("DEMO_MODE", false)

	httpTimeout, err := getenvDuration("HTTP_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = httpTimeout

	cityTimeout, err := getenvDuration("CITY_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.CityTimeout = cityTimeout

	mockDelay, err := getenvDuration("MOCK_DELAY", "1200ms")
	if err != nil {
		return nil, err
	}
	cfg.MockDelay = mockDelay

	cfg.MonitorRegions = splitAndTrim(getenvDefault("MONITOR_REGIONS", "kenya"))

	interval, err := getenvDuration("MONITOR_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.MonitorInterval = interval

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 96) // roughly 8h at 5-minute intervals

	maxAge, err := getenvDuration("STORE_MAX_AGE", "24h")
	if err != nil {
		return nil, err
	}
	cfg.StoreMaxAge = maxAge

	th := risk.DefaultThresholds()
	th.Moderate = getenvFloat("RISK_MODERATE_THRESHOLD", th.Moderate)
	th.Higher = getenvFloat("RISK_HIGHER_THRESHOLD", th.Higher)
	if th.Moderate >= th.Higher {
		return nil, fmt.Errorf("RISK_MODERATE_THRESHOLD must be below RISK_HIGHER_THRESHOLD")
	}
	cfg.RiskThresholds = th

	cfg.Logging = logging.Config{
		Level:  getenvDefault("LOG_LEVEL", "info"),
		Format: getenvDefault("LOG_FORMAT", "console"),
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

// RemoteConfigured reports whether an authenticated remote connection is available.
func (c *AppConfig) RemoteConfigured() bool {
	return c.PredictionAPIURL != "" && c.PredictionAPIToken != ""
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	v := getenvDefault(key, def)
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
