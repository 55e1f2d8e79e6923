package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sosodev/duration"
	"github.com/spf13/viper"

	"github.com/couchcryptid/marine-bulletin-etl/internal/domain"
)

// EnvPrefix prefixes environment variables that override file settings,
// e.g. BULLETIN_ZONE=3.
const EnvPrefix = "BULLETIN"

// Config holds all service settings. It is loaded once at startup and never
// mutated afterwards.
type Config struct {
	BMSPath string `mapstructure:"bmspath"`
	BMRPath string `mapstructure:"bmrpath"`
	Region  uint8  `mapstructure:"region"`
	Zone    uint8  `mapstructure:"zone"`
	WantBMR bool   `mapstructure:"want_bmr"`
	Pretty  bool   `mapstructure:"pretty"`

	// RunEvery is the ISO-8601 cycle interval, e.g. "PT1H".
	RunEvery string `mapstructure:"run_every"`
	// Schedule is an optional cron expression that replaces RunEvery.
	Schedule string `mapstructure:"schedule"`

	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	HTTPAddr        string        `mapstructure:"http_addr"`
	LogLevel        string        `mapstructure:"log_level"`
	LogFormat       string        `mapstructure:"log_format"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	interval time.Duration
	schedule cron.Schedule
}

var defaults = map[string]any{
	"bmspath":          "",
	"bmrpath":          "",
	"region":           0,
	"zone":             0,
	"want_bmr":         false,
	"pretty":           false,
	"run_every":        "PT1H",
	"schedule":         "",
	"request_timeout":  "30s",
	"http_addr":        ":9090",
	"log_level":        "info",
	"log_format":       "text",
	"shutdown_timeout": "10s",
}

// Load reads the TOML configuration at path, applies BULLETIN_* environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.BMSPath == "" {
		return errors.New("bmspath is required")
	}
	if c.WantBMR && c.BMRPath == "" {
		return errors.New("bmrpath is required when want_bmr is true")
	}
	if _, err := domain.CoastalZone(c.Region, c.Zone); err != nil {
		return fmt.Errorf("invalid region/zone: %w", err)
	}

	d, err := duration.Parse(c.RunEvery)
	if err != nil {
		return fmt.Errorf("invalid run_every %q: %w", c.RunEvery, err)
	}
	c.interval = d.ToTimeDuration()
	if c.interval <= 0 {
		return fmt.Errorf("invalid run_every %q: must be positive", c.RunEvery)
	}

	if c.Schedule != "" {
		c.schedule, err = cron.ParseStandard(c.Schedule)
		if err != nil {
			return fmt.Errorf("invalid schedule %q: %w", c.Schedule, err)
		}
	} else {
		c.schedule = fixedPeriod(c.interval)
	}

	if c.RequestTimeout <= 0 {
		return errors.New("request_timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown_timeout must be positive")
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	return nil
}

// Interval is the parsed run_every duration.
func (c *Config) Interval() time.Duration { return c.interval }

// CycleSchedule is the trigger for fetch cycles: the cron expression when set,
// otherwise a fixed period of run_every.
func (c *Config) CycleSchedule() cron.Schedule { return c.schedule }

// fixedPeriod activates exactly every period after the previous activation.
// cron.Every truncates to whole seconds, which would drift a tick anchor.
type fixedPeriod time.Duration

func (p fixedPeriod) Next(t time.Time) time.Time { return t.Add(time.Duration(p)) }

// OutputDir returns the directory configured for a report kind.
func (c *Config) OutputDir(kind domain.ReportKind) string {
	if kind == domain.KindBMR {
		return c.BMRPath
	}
	return c.BMSPath
}

// AreaName is the coastal area covered by the configured region and zone.
func (c *Config) AreaName() string {
	name, _ := domain.CoastalZone(c.Region, c.Zone)
	return name
}
