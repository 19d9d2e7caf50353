package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aazevedo/nistsync/daytime"
	"github.com/aazevedo/nistsync/logger"
	"go.uber.org/config"
)

// SyncConfig holds the re-sync cadence. The unit is minutes, matching
// the -interval flag.
type SyncConfig struct {
	IntervalMinutes int `yaml:"interval_minutes"`
}

// Defaults applies default values to the config.
func (c *SyncConfig) Defaults() {
	if c.IntervalMinutes == 0 {
		c.IntervalMinutes = 60
	}
}

// Validate rejects intervals below one minute before any loop starts.
func (c *SyncConfig) Validate() error {
	if c.IntervalMinutes < 1 {
		return fmt.Errorf("sync: interval_minutes must be at least 1, got %d", c.IntervalMinutes)
	}
	return nil
}

// Interval returns the cadence as a duration.
func (c *SyncConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// ServiceConfig names the registered OS service.
type ServiceConfig struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
}

// AppConfig holds all application configuration.
type AppConfig struct {
	Logger  logger.Config  `yaml:"logger"`
	Daytime daytime.Config `yaml:"daytime"`
	Sync    SyncConfig     `yaml:"sync"`
	Service ServiceConfig  `yaml:"service"`
}

// Load reads configuration from the specified YAML files.
// Files are merged in order, with later files overriding earlier ones.
// Missing files are silently ignored.
func Load(files ...string) (*AppConfig, error) {
	opts := make([]config.YAMLOption, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			opts = append(opts, config.File(f))
		}
	}

	if len(opts) == 0 {
		return nil, os.ErrNotExist
	}

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration with sensible defaults. A daemon
// with no config files at all still runs, on defaults alone.
func LoadWithDefaults(files ...string) (*AppConfig, error) {
	cfg, err := Load(files...)
	if errors.Is(err, os.ErrNotExist) {
		cfg = &AppConfig{}
	} else if err != nil {
		return nil, err
	}

	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if len(cfg.Logger.OutputPaths) == 0 {
		cfg.Logger.OutputPaths = []string{"stdout"}
	}

	cfg.Daytime.Defaults()
	cfg.Sync.Defaults()

	if cfg.Service.Name == "" {
		cfg.Service.Name = "NISTTimeSync"
	}
	if cfg.Service.DisplayName == "" {
		cfg.Service.DisplayName = "NIST Time Sync Service"
	}
	if cfg.Service.Description == "" {
		cfg.Service.Description = "Synchronizes the system time with NIST servers on a fixed interval."
	}

	return cfg, nil
}
