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

	"github.com/codr1/habitgrid/internal/models"
)

const (
	defaultShutdownTimeoutSeconds = 30
	defaultAPITimeoutSeconds      = 10
	defaultRefreshCron            = "*/10 * * * *"
	defaultCacheMaxAgeMinutes     = 24 * 60
	defaultTogglesPerMinute       = 30
	defaultToggleBurst            = 10
	defaultStaticDir              = "build/bin/static"
)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
}

type HabitAPIConfig struct {
	BaseURL           string  `yaml:"base_url"`
	TimeoutSeconds    int     `yaml:"timeout_seconds"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	Token             string  `yaml:"-"` // Loaded from environment
}

type CacheConfig struct {
	RefreshCron   string `yaml:"refresh_cron"`
	MaxAgeMinutes int    `yaml:"max_age_minutes"`
}

type ToggleLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
	Burst     int `yaml:"burst"`
	// TrustProxy keys clients by X-Forwarded-For instead of the peer address.
	TrustProxy bool `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name                   string `yaml:"name"`
		Environment            string `yaml:"environment"`
		Port                   int    `yaml:"port"`
		BaseURL                string `yaml:"base_url"`
		Timezone               string `yaml:"timezone"`
		StaticDir              string `yaml:"static_dir"`
		ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	HabitAPI    HabitAPIConfig    `yaml:"habit_api"`
	Database    DatabaseConfig    `yaml:"database"`
	Cache       CacheConfig       `yaml:"cache"`
	ToggleLimit ToggleLimitConfig `yaml:"toggle_limit"`
	Palette     models.Palette    `yaml:"palette"`

	Features struct {
		EnableMetrics bool `yaml:"enable_metrics"`
		EnableCache   bool `yaml:"enable_cache"`
		EnableDebug   bool `yaml:"enable_debug"`
	} `yaml:"features"`
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

	return Parse(data)
}

// Parse decodes YAML config, overlays environment secrets and defaults, and
// validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Load sensitive values from environment
	cfg.HabitAPI.Token = os.Getenv("HABIT_API_TOKEN")
	if baseURL := os.Getenv("HABIT_API_BASE_URL"); baseURL != "" {
		cfg.HabitAPI.BaseURL = baseURL
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.ShutdownTimeoutSeconds <= 0 {
		c.App.ShutdownTimeoutSeconds = defaultShutdownTimeoutSeconds
	}
	if c.App.StaticDir == "" {
		c.App.StaticDir = defaultStaticDir
	}
	if c.HabitAPI.TimeoutSeconds <= 0 {
		c.HabitAPI.TimeoutSeconds = defaultAPITimeoutSeconds
	}
	if c.Cache.RefreshCron == "" {
		c.Cache.RefreshCron = defaultRefreshCron
	}
	if c.Cache.MaxAgeMinutes <= 0 {
		c.Cache.MaxAgeMinutes = defaultCacheMaxAgeMinutes
	}
	if c.ToggleLimit.PerMinute <= 0 {
		c.ToggleLimit.PerMinute = defaultTogglesPerMinute
	}
	if c.ToggleLimit.Burst <= 0 {
		c.ToggleLimit.Burst = defaultToggleBurst
	}
	c.Palette = c.Palette.WithDefaults()
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if strings.TrimSpace(c.HabitAPI.BaseURL) == "" {
		return fmt.Errorf("habit_api base_url is required")
	}
	if c.HabitAPI.RequestsPerSecond < 0 {
		return fmt.Errorf("habit_api requests_per_second must be 0 or greater")
	}
	if err := c.Palette.Validate(); err != nil {
		return fmt.Errorf("palette: %w", err)
	}

	if !c.Features.EnableCache {
		return nil
	}

	if c.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}

	if _, err := cron.ParseStandard(c.Cache.RefreshCron); err != nil {
		return fmt.Errorf("cache refresh_cron %q is invalid: %w", c.Cache.RefreshCron, err)
	}

	return nil
}

// Location resolves app.timezone; empty means the server's local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("app timezone %q is invalid: %w", c.App.Timezone, err)
	}
	return loc, nil
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.App.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.HabitAPI.TimeoutSeconds) * time.Second
}

func (c *Config) CacheMaxAge() time.Duration {
	return time.Duration(c.Cache.MaxAgeMinutes) * time.Minute
}
