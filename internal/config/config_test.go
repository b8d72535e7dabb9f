package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gridops/faultdispatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "9090", cfg.Server.MetricsPort)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 60, cfg.SLA[domain.SeverityCritical].TargetMinutes)
	assert.Equal(t, 1440, cfg.SLA[domain.SeverityMinor].TargetMinutes)
	assert.False(t, cfg.Scheduler.AutoAssignEnabled)
}

func TestLoadMissingFileIsSkipped(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  port: "9000"
log:
  level: debug
scheduler:
  auto_assign_enabled: true
  auto_assign_interval: 1m
sla:
  critical:
    target_minutes: 30
    at_risk_fraction: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Scheduler.AutoAssignEnabled)
	assert.Equal(t, time.Minute, cfg.Scheduler.AutoAssignInterval)
	assert.Equal(t, 30, cfg.SLA[domain.SeverityCritical].TargetMinutes)
	assert.Equal(t, 0.5, cfg.SLA[domain.SeverityCritical].AtRiskFraction)

	// tiers absent from the file keep their defaults
	assert.Equal(t, 240, cfg.SLA[domain.SeverityMajor].TargetMinutes)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"9000\"\n"), 0o600))

	t.Setenv("FAULTDISPATCH_SERVER__PORT", "7777")
	t.Setenv("FAULTDISPATCH_LOG__LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7777", cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Server.Port = "" },
			wantErr: "server.port",
		},
		{
			name:    "empty database url",
			mutate:  func(c *Config) { c.Database.URL = "" },
			wantErr: "database.url",
		},
		{
			name: "sla fraction out of range",
			mutate: func(c *Config) {
				c.SLA[domain.SeverityMajor] = domain.SLATarget{TargetMinutes: 60, AtRiskFraction: 1.5}
			},
			wantErr: "at_risk_fraction",
		},
		{
			name:    "zero auto assign interval",
			mutate:  func(c *Config) { c.Scheduler.AutoAssignInterval = 0 },
			wantErr: "auto_assign_interval",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Dispatch.RateLimit = -1 },
			wantErr: "rate_limit",
		},
		{
			name:    "empty skill tag",
			mutate:  func(c *Config) { c.Skills = map[string]string{"transformer": ""} },
			wantErr: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
