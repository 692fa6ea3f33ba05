// Package config loads server configuration from YAML.
package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	// Listen is the host:port the HTTP server binds to.
	Listen string `yaml:"listen"`
}

type DatabaseConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path"`
}

type CacheConfig struct {
	// UpcomingTTLSeconds is how long the upcoming-games snapshot stays fresh.
	UpcomingTTLSeconds int `yaml:"upcoming_ttl_seconds"`
	// UpcomingSize caps the snapshot cache entry count.
	UpcomingSize int `yaml:"upcoming_size"`
	// ResultsSize caps the query-result LRU entry count.
	ResultsSize int `yaml:"results_size"`
}

// UpcomingTTL returns the snapshot TTL as a duration.
func (c CacheConfig) UpcomingTTL() time.Duration {
	return time.Duration(c.UpcomingTTLSeconds) * time.Second
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:   ServerConfig{Listen: ":8080"},
		Database: DatabaseConfig{Path: "trendline.db"},
		Cache: CacheConfig{
			UpcomingTTLSeconds: 3600,
			UpcomingSize:       16,
			ResultsSize:        100,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads a YAML config file over the defaults. Unknown keys are an
// error: a typoed key should fail loudly, not silently fall back.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Cache.UpcomingTTLSeconds <= 0 {
		return fmt.Errorf("cache.upcoming_ttl_seconds must be positive")
	}
	if c.Cache.UpcomingSize <= 0 || c.Cache.ResultsSize <= 0 {
		return fmt.Errorf("cache sizes must be positive")
	}
	return nil
}
