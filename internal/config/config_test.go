package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
		Generation: GenerationConfig{
			BasicCost:  10,
			ProCost:    20,
			MaxRetries: 3,
			RetryDelay: 3 * time.Second,
		},
		Log: LogConfig{Level: "info", Format: "json"},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero basic cost", func(c *Config) { c.Generation.BasicCost = 0 }},
		{"negative pro cost", func(c *Config) { c.Generation.ProCost = -5 }},
		{"zero retries", func(c *Config) { c.Generation.MaxRetries = 0 }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestCostForMode(t *testing.T) {
	g := GenerationConfig{BasicCost: 10, ProCost: 20}
	assert.Equal(t, 10, g.CostForMode("basic"))
	assert.Equal(t, 20, g.CostForMode("pro"))
	// Unknown modes are charged at the basic rate.
	assert.Equal(t, 10, g.CostForMode("something-else"))
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/blogvolt")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("GENERATION_PRO_COST", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/blogvolt", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Generation.BasicCost)
	assert.Equal(t, 100, cfg.Generation.ProCost)
	assert.Equal(t, 3, cfg.Generation.MaxRetries)
	assert.Equal(t, 3*time.Second, cfg.Generation.RetryDelay)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
}
