package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	Generation GenerationConfig `yaml:"generation"`
	Providers  ProvidersConfig  `yaml:"providers"`
	CORS       CORSConfig       `yaml:"cors"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SchemaDir       string        `yaml:"schema_dir"       env:"SCHEMA_DIR"              env-default:"schemas"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN      string `yaml:"dsn"       env:"DATABASE_URL" env-required:"true"`
	MaxConns int32  `yaml:"max_conns" env:"DATABASE_MAX_CONNS" env-default:"25"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `yaml:"token_ttl"  env:"AUTH_TOKEN_TTL" env-default:"24h"`
}

// GenerationConfig holds the volt costs and the drafting retry policy.
// Costs are per mode; the orchestrator never hardcodes an amount.
type GenerationConfig struct {
	BasicCost  int           `yaml:"basic_cost"  env:"GENERATION_BASIC_COST"  env-default:"10"`
	ProCost    int           `yaml:"pro_cost"    env:"GENERATION_PRO_COST"    env-default:"20"`
	MaxRetries int           `yaml:"max_retries" env:"GENERATION_MAX_RETRIES" env-default:"3"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"GENERATION_RETRY_DELAY" env-default:"3s"`
}

// CostForMode returns the volt cost for a generation mode. Unknown modes cost
// the basic rate.
func (c GenerationConfig) CostForMode(mode string) int {
	if mode == "pro" {
		return c.ProCost
	}
	return c.BasicCost
}

// ProvidersConfig holds external provider endpoints and credentials.
type ProvidersConfig struct {
	ResearchURL     string        `yaml:"research_url"     env:"RESEARCH_API_URL"`
	ResearchAPIKey  string        `yaml:"research_api_key" env:"RESEARCH_API_KEY"`
	ResearchTimeout time.Duration `yaml:"research_timeout" env:"RESEARCH_TIMEOUT" env-default:"60s"`

	AnthropicAPIKey string `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	AnthropicModel  string `yaml:"anthropic_model"   env:"ANTHROPIC_MODEL" env-default:"claude-sonnet-4-20250514"`

	KeywordMetricsURL    string        `yaml:"keyword_metrics_url"    env:"KEYWORD_METRICS_URL"`
	KeywordAPIKey        string        `yaml:"keyword_api_key"        env:"KEYWORD_API_KEY"`
	KeywordSecret        string        `yaml:"keyword_secret"         env:"KEYWORD_SECRET"`
	KeywordCustomerID    string        `yaml:"keyword_customer_id"    env:"KEYWORD_CUSTOMER_ID"`
	KeywordMetricsTimeout time.Duration `yaml:"keyword_metrics_timeout" env:"KEYWORD_METRICS_TIMEOUT" env-default:"15s"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   []string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"http://localhost:3000"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Validate checks cross-field constraints cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Generation.BasicCost <= 0 || c.Generation.ProCost <= 0 {
		return fmt.Errorf("generation costs must be positive (basic=%d pro=%d)",
			c.Generation.BasicCost, c.Generation.ProCost)
	}
	if c.Generation.MaxRetries < 1 {
		return fmt.Errorf("generation max_retries must be >= 1, got %d", c.Generation.MaxRetries)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
