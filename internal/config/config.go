// Package config loads runtime options from flags, STOPWATCH_* environment
// variables and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"stopwatch/internal/storage"
)

const envPrefix = "STOPWATCH"

// Defaults.
const (
	DefaultTickInterval = 10 * time.Millisecond
	DefaultLogLevel     = "info"
	DefaultRedisPrefix  = "stopwatch:"
	DefaultRedisTimeout = 2 * time.Second
)

// ErrInvalid indicates configuration that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved runtime configuration.
type Config struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
	LogLevel     string        `mapstructure:"log_level"`
	Storage      Storage       `mapstructure:"storage"`
}

// Storage selects the persistence backend.
type Storage struct {
	Backend      string        `mapstructure:"backend"`
	Path         string        `mapstructure:"path"`
	RedisURL     string        `mapstructure:"redis_url"`
	RedisPrefix  string        `mapstructure:"redis_prefix"`
	RedisTimeout time.Duration `mapstructure:"redis_timeout"`
}

// Options converts the storage section for storage.New.
func (section Storage) Options() storage.Options {
	return storage.Options{
		Backend:      section.Backend,
		Path:         section.Path,
		RedisURL:     section.RedisURL,
		RedisPrefix:  section.RedisPrefix,
		RedisTimeout: section.RedisTimeout,
	}
}

// NewFlagSet declares the command line flags Load understands.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "path to a YAML config file")
	flags.Duration("tick-interval", DefaultTickInterval, "display refresh cadence")
	flags.String("log-level", DefaultLogLevel, "log level: debug, info, warn, error")
	flags.String("storage", storage.BackendFile, "storage backend: file, fyne, redis, memory")
	flags.String("storage-path", "", "state file for the file backend")
	flags.String("redis-url", "", "redis URL for the redis backend")
	return flags
}

// Load parses args and resolves the configuration. pflag.ErrHelp is returned
// unwrapped when help was requested.
func Load(args []string) (Config, error) {
	flags := NewFlagSet("stopwatch")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	v := viper.New()
	v.SetDefault("tick_interval", DefaultTickInterval)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.redis_prefix", DefaultRedisPrefix)
	v.SetDefault("storage.redis_timeout", DefaultRedisTimeout)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindings := map[string]string{
		"tick_interval":     "tick-interval",
		"log_level":         "log-level",
		"storage.backend":   "storage",
		"storage.path":      "storage-path",
		"storage.redis_url": "redis-url",
	}
	for key, flagName := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", flagName, err)
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting.
func (cfg Config) Validate() error {
	if cfg.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalid, cfg.TickInterval)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, cfg.LogLevel)
	}

	switch cfg.Storage.Backend {
	case storage.BackendFile, storage.BackendFyne, storage.BackendMemory:
	case storage.BackendRedis:
		if cfg.Storage.RedisURL == "" {
			return fmt.Errorf("%w: redis backend needs a redis url", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, cfg.Storage.Backend)
	}
	return nil
}
