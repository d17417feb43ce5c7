package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SourceLive = "live"
	SourceMock = "mock"

	PolicyLastResolved     = "last-resolved"
	PolicyLatestDispatched = "latest-dispatched"
)

type Config struct {
	APIHost          string
	APIPath          string
	DataSource       string
	MockLatency      time.Duration
	HTTPTimeout      time.Duration
	StateDir         string
	TokenKey         string
	ApplyPolicy      string
	LeaveRejectPast  bool
	JWTSecret        string
	TokenTTL         time.Duration
	MockAddr         string
	AuthRate         string
	MaxUploadBytes   int64
	LogLevel         string
	MetricsNamespace string
}

// Load reads a .env file if present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("load .env failed", "err", err)
	}
	return FromEnv()
}

func FromEnv() Config {
	return Config{
		APIHost:          getEnv("HRPORTAL_API_HOST", "http://localhost:5000"),
		APIPath:          getEnv("HRPORTAL_API_URL", "/api"),
		DataSource:       strings.ToLower(getEnv("HRPORTAL_DATA_SOURCE", SourceMock)),
		MockLatency:      getEnvDuration("HRPORTAL_MOCK_LATENCY", 300*time.Millisecond),
		HTTPTimeout:      getEnvDuration("HRPORTAL_HTTP_TIMEOUT", 15*time.Second),
		StateDir:         getEnv("HRPORTAL_STATE_DIR", defaultStateDir()),
		TokenKey:         getEnv("HRPORTAL_TOKEN_KEY", ""),
		ApplyPolicy:      strings.ToLower(getEnv("HRPORTAL_APPLY_POLICY", PolicyLastResolved)),
		LeaveRejectPast:  getEnvBool("HRPORTAL_LEAVE_REJECT_PAST", true),
		JWTSecret:        getEnv("HRPORTAL_JWT_SECRET", "hrportal-dev-secret"),
		TokenTTL:         getEnvDuration("HRPORTAL_TOKEN_TTL", 24*time.Hour),
		MockAddr:         getEnv("HRPORTAL_MOCK_ADDR", ":5000"),
		AuthRate:         getEnv("HRPORTAL_AUTH_RATE", "10-M"),
		MaxUploadBytes:   int64(getEnvInt("HRPORTAL_MAX_UPLOAD_BYTES", 10<<20)),
		LogLevel:         strings.ToLower(getEnv("HRPORTAL_LOG_LEVEL", "warn")),
		MetricsNamespace: getEnv("HRPORTAL_METRICS_NAMESPACE", "hrportal"),
	}
}

// BaseURL joins the API host and path. An absolute APIPath wins over the host.
func (c Config) BaseURL() string {
	if strings.HasPrefix(c.APIPath, "http://") || strings.HasPrefix(c.APIPath, "https://") {
		return strings.TrimRight(c.APIPath, "/")
	}
	return strings.TrimRight(c.APIHost, "/") + "/" + strings.Trim(c.APIPath, "/")
}

func (c Config) TokenFile() string {
	return filepath.Join(c.StateDir, "storage.json")
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hrportal"
	}
	return filepath.Join(dir, "hrportal")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.DataSource {
	case SourceLive, SourceMock:
	default:
		return fmt.Errorf("HRPORTAL_DATA_SOURCE must be %q or %q", SourceLive, SourceMock)
	}
	if c.DataSource == SourceLive {
		parsed, err := url.Parse(c.BaseURL())
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("HRPORTAL_API_HOST/HRPORTAL_API_URL must form an absolute URL")
		}
	}
	switch c.ApplyPolicy {
	case PolicyLastResolved, PolicyLatestDispatched:
	default:
		return fmt.Errorf("HRPORTAL_APPLY_POLICY must be %q or %q", PolicyLastResolved, PolicyLatestDispatched)
	}
	if c.MockLatency < 0 {
		return fmt.Errorf("HRPORTAL_MOCK_LATENCY must not be negative")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HRPORTAL_HTTP_TIMEOUT must be positive")
	}
	if strings.TrimSpace(c.StateDir) == "" {
		return fmt.Errorf("HRPORTAL_STATE_DIR is required")
	}
	if c.DataSource == SourceMock && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("HRPORTAL_JWT_SECRET is required for the mock backend")
	}
	if c.MaxUploadBytes < 1024 {
		return fmt.Errorf("HRPORTAL_MAX_UPLOAD_BYTES must be at least 1024")
	}
	return nil
}
