// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultFormWindow         = 5
	defaultFormRefreshCron    = "0 3 * * *"
	defaultRegenerateCooldown = 2
	defaultShutdownTimeout    = 30
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	// Hosted Postgres; usually supplied through DATABASE_URL
	URL string `yaml:"url,omitempty"`
}

type Config struct {
	App struct {
		Name                   string `yaml:"name"`
		Environment            string `yaml:"environment"`
		Port                   int    `yaml:"port"`
		BaseURL                string `yaml:"base_url"`
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Database DatabaseConfig `yaml:"database"`

	Balancer struct {
		// Minimum gap between two balance requests from the same client
		RegenerateCooldownSeconds int  `yaml:"regenerate_cooldown_seconds"`
		TrustProxy                bool `yaml:"trust_proxy"`
	} `yaml:"balancer"`

	Stats struct {
		FormWindow      int    `yaml:"form_window"`
		FormRefreshCron string `yaml:"form_refresh_cron"`
	} `yaml:"stats"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes raw YAML without defaults or validation.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		c.Database.URL = url
	}
	if env := strings.TrimSpace(os.Getenv("ENVIRONMENT")); env != "" {
		c.App.Environment = env
	}
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		c.App.ShutdownTimeoutSeconds = defaultShutdownTimeout
	}
	if c.Balancer.RegenerateCooldownSeconds == 0 {
		c.Balancer.RegenerateCooldownSeconds = defaultRegenerateCooldown
	}
	if c.Stats.FormWindow == 0 {
		c.Stats.FormWindow = defaultFormWindow
	}
	if strings.TrimSpace(c.Stats.FormRefreshCron) == "" {
		c.Stats.FormRefreshCron = defaultFormRefreshCron
	}
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if c.Balancer.RegenerateCooldownSeconds < 0 {
		return fmt.Errorf("balancer regenerate cooldown must be 0 or greater")
	}
	if c.Stats.FormWindow < 1 {
		return fmt.Errorf("stats form window must be at least 1")
	}
	if _, err := cron.ParseStandard(c.Stats.FormRefreshCron); err != nil {
		return fmt.Errorf("invalid stats form refresh cron %q: %w", c.Stats.FormRefreshCron, err)
	}

	return nil
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) RegenerateCooldown() time.Duration {
	return time.Duration(c.Balancer.RegenerateCooldownSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}
