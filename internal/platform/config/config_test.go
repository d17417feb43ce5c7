package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("HRPORTAL_STATE_DIR", t.TempDir())

	cfg := FromEnv()
	if cfg.DataSource != SourceMock {
		t.Fatalf("expected mock data source, got %q", cfg.DataSource)
	}
	if cfg.BaseURL() != "http://localhost:5000/api" {
		t.Fatalf("unexpected base url %q", cfg.BaseURL())
	}
	if cfg.MockLatency != 300*time.Millisecond {
		t.Fatalf("unexpected latency %s", cfg.MockLatency)
	}
	if cfg.ApplyPolicy != PolicyLastResolved || !cfg.LeaveRejectPast {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HRPORTAL_STATE_DIR", t.TempDir())
	t.Setenv("HRPORTAL_DATA_SOURCE", "LIVE")
	t.Setenv("HRPORTAL_API_URL", "https://hr.example.com/v2/")
	t.Setenv("HRPORTAL_MOCK_LATENCY", "bogus")
	t.Setenv("HRPORTAL_LEAVE_REJECT_PAST", "false")
	t.Setenv("HRPORTAL_LOG_LEVEL", "debug")

	cfg := FromEnv()
	if cfg.DataSource != SourceLive {
		t.Fatalf("expected live, got %q", cfg.DataSource)
	}
	if cfg.BaseURL() != "https://hr.example.com/v2" {
		t.Fatalf("absolute api url should win, got %q", cfg.BaseURL())
	}
	if cfg.MockLatency != 300*time.Millisecond {
		t.Fatal("malformed duration should fall back to default")
	}
	if cfg.LeaveRejectPast {
		t.Fatal("expected leave past-date check disabled")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("unexpected level %v", cfg.SlogLevel())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config: %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg := FromEnv()
		cfg.StateDir = "/tmp/hrportal"
		return cfg
	}
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "bad source", mutate: func(c *Config) { c.DataSource = "db" }, wantErr: "HRPORTAL_DATA_SOURCE"},
		{name: "bad policy", mutate: func(c *Config) { c.ApplyPolicy = "first" }, wantErr: "HRPORTAL_APPLY_POLICY"},
		{name: "negative latency", mutate: func(c *Config) { c.MockLatency = -time.Second }, wantErr: "HRPORTAL_MOCK_LATENCY"},
		{name: "zero timeout", mutate: func(c *Config) { c.HTTPTimeout = 0 }, wantErr: "HRPORTAL_HTTP_TIMEOUT"},
		{name: "no state dir", mutate: func(c *Config) { c.StateDir = " " }, wantErr: "HRPORTAL_STATE_DIR"},
		{name: "live relative url", mutate: func(c *Config) { c.DataSource = SourceLive; c.APIHost = ""; c.APIPath = "api" }, wantErr: "absolute URL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}
