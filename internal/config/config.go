package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/kkgogogo17/binance-public-data/internal/exchange"
)

// Config defines configuration for the bpd CLI.
type Config struct {
	TradingType string   `yaml:"trading_type" envconfig:"TRADING_TYPE"`
	Symbols     []string `yaml:"symbols" envconfig:"SYMBOLS"`
	Intervals   []string `yaml:"intervals" envconfig:"INTERVALS"`

	// Explicit date tokens for the daily queue; generated from the date
	// range when empty.
	Dates  []string `yaml:"dates" envconfig:"DATES"`
	Years  []int    `yaml:"years" envconfig:"YEARS"`
	Months []int    `yaml:"months" envconfig:"MONTHS"`

	StartDate string `yaml:"start_date" envconfig:"START_DATE"`
	EndDate   string `yaml:"end_date" envconfig:"END_DATE"`

	// Folder is the destination: a local directory or a bucket URL
	// (file://, s3://, gs://). Empty means the working directory.
	Folder   string `yaml:"folder" envconfig:"FOLDER"`
	Checksum bool   `yaml:"checksum" envconfig:"CHECKSUM"`
	Workers  int    `yaml:"workers" envconfig:"WORKERS"`

	SkipDaily   bool `yaml:"skip_daily" envconfig:"SKIP_DAILY"`
	SkipMonthly bool `yaml:"skip_monthly" envconfig:"SKIP_MONTHLY"`

	Verify VerifyConfig `yaml:"verify"`
}

// VerifyConfig defines verification pass behavior.
type VerifyConfig struct {
	Workers    int  `yaml:"workers" envconfig:"WORKERS"`
	Sequential bool `yaml:"sequential" envconfig:"SEQUENTIAL"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		TradingType: "spot",
		Intervals:   append([]string(nil), exchange.Intervals...),
		Workers:     512,
	}
}

// LoadFromFile loads configuration from a YAML file over defaults.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv overlays configuration from BPD_-prefixed environment
// variables. List values are comma-separated.
func (c *Config) LoadFromEnv() error {
	if err := envconfig.Process("BPD", c); err != nil {
		return fmt.Errorf("process environment: %w", err)
	}
	return nil
}

// ParseDate parses a config date bound ("2006-01-02"). A zero time is
// returned for an empty value.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !exchange.ValidTradingType(c.TradingType) {
		return fmt.Errorf("config: unknown trading type %q", c.TradingType)
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.Verify.Workers < 0 {
		return errors.New("config: verify workers must not be negative")
	}
	if _, err := ParseDate(c.StartDate); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := ParseDate(c.EndDate); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, m := range c.Months {
		if m < 1 || m > 12 {
			return fmt.Errorf("config: invalid month %d", m)
		}
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.TradingType != "" {
		c.TradingType = override.TradingType
	}
	if len(override.Symbols) > 0 {
		c.Symbols = override.Symbols
	}
	if len(override.Intervals) > 0 {
		c.Intervals = override.Intervals
	}
	if len(override.Dates) > 0 {
		c.Dates = override.Dates
	}
	if len(override.Years) > 0 {
		c.Years = override.Years
	}
	if len(override.Months) > 0 {
		c.Months = override.Months
	}
	if override.StartDate != "" {
		c.StartDate = override.StartDate
	}
	if override.EndDate != "" {
		c.EndDate = override.EndDate
	}
	if override.Folder != "" {
		c.Folder = override.Folder
	}
	if override.Checksum {
		c.Checksum = override.Checksum
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.SkipDaily {
		c.SkipDaily = override.SkipDaily
	}
	if override.SkipMonthly {
		c.SkipMonthly = override.SkipMonthly
	}
	if override.Verify.Workers != 0 {
		c.Verify.Workers = override.Verify.Workers
	}
	if override.Verify.Sequential {
		c.Verify.Sequential = override.Verify.Sequential
	}
	return c
}
