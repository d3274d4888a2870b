package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" toml:"server"`
	Logging   LogConfig       `yaml:"logging" toml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
	CORS      CORSConfig      `yaml:"cors" toml:"cors"`
	Drive     DriveConfig     `yaml:"drive" toml:"drive"`
	Backup    BackupConfig    `yaml:"backup" toml:"backup"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000" yaml:"port" toml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host" toml:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level" toml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development" toml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second" toml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst" toml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled" toml:"enabled"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*" yaml:"origins" toml:"origins"`
}

// DriveConfig holds the drive engine configuration.
type DriveConfig struct {
	Units         []string `envconfig:"DRIVE_UNITS" default:"C:,D:" yaml:"units" toml:"units"`
	IndexDegree   int      `envconfig:"DRIVE_INDEX_DEGREE" default:"3" yaml:"index_degree" toml:"index_degree"`
	LogOperations bool     `envconfig:"DRIVE_LOG_OPS" default:"true" yaml:"log_operations" toml:"log_operations"`
	HistoryLimit  int      `envconfig:"DRIVE_HISTORY_LIMIT" default:"1000" yaml:"history_limit" toml:"history_limit"`
	Seed          bool     `envconfig:"DRIVE_SEED" default:"true" yaml:"seed" toml:"seed"`
}

// BackupConfig holds snapshot persistence configuration.
type BackupConfig struct {
	Dir      string `envconfig:"BACKUP_DIR" default:"snapshots" yaml:"dir" toml:"dir"`
	Compress bool   `envconfig:"BACKUP_COMPRESS" default:"false" yaml:"compress" toml:"compress"`
	Checksum string `envconfig:"BACKUP_CHECKSUM" default:"xxh3" yaml:"checksum" toml:"checksum"`
	Keep     int    `envconfig:"BACKUP_KEEP" default:"10" yaml:"keep" toml:"keep"`
	Restore  bool   `envconfig:"BACKUP_RESTORE" default:"true" yaml:"restore" toml:"restore"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Drive: DriveConfig{
			Units:         []string{"C:", "D:"},
			IndexDegree:   3,
			LogOperations: true,
			HistoryLimit:  1000,
			Seed:          true,
		},
		Backup: BackupConfig{
			Dir:      "snapshots",
			Compress: false,
			Checksum: "xxh3",
			Keep:     10,
			Restore:  true,
		},
	}
}
