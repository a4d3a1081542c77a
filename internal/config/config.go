// Package config loads finwatch configuration from config.toml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/nikbrunner/finwatch/internal/logging"
	"github.com/nikbrunner/finwatch/internal/storage"
)

// EnvPrefix is the prefix for environment overrides, e.g. FINWATCH_STORAGE_BACKEND.
const EnvPrefix = "FINWATCH"

var validate = validator.New()

// Config holds all application configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	UI      UIConfig      `mapstructure:"ui"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend string      `mapstructure:"backend" default:"sqlite" validate:"oneof=memory json sqlite redis"`
	Path    string      `mapstructure:"path"` // json and sqlite only; empty = default location
	Redis   RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr" default:"localhost:6379" validate:"required"`
	Password string        `mapstructure:"password" json:"-"`
	DB       int           `mapstructure:"db" validate:"gte=0,lte=15"`
	Prefix   string        `mapstructure:"prefix" default:"finwatch" validate:"required"`
	Timeout  time.Duration `mapstructure:"timeout" default:"5s" validate:"gt=0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level" default:"info" validate:"oneof=debug info warn error"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file" default:"true"`
	Path       string `mapstructure:"path"`
	MaxSize    int    `mapstructure:"max_size" default:"10" validate:"gt=0"`
	MaxBackups int    `mapstructure:"max_backups" default:"3" validate:"gte=0"`
	MaxAge     int    `mapstructure:"max_age" default:"30" validate:"gte=0"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration" default:"3s" validate:"gt=0"`
	StartTab      string        `mapstructure:"start_tab" default:"watchlist" validate:"oneof=watchlist news inbox"`
}

// envKeys are bound explicitly so env overrides work without a config file.
var envKeys = []string{
	"storage.backend",
	"storage.path",
	"storage.redis.addr",
	"storage.redis.password",
	"storage.redis.db",
	"storage.redis.prefix",
	"storage.redis.timeout",
	"log.level",
	"log.console",
	"log.file",
	"log.path",
	"ui.toast_duration",
	"ui.start_tab",
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/finwatch"
	}
	return filepath.Join(home, ".config", "finwatch")
}

// Default returns the configuration used when no file or env overrides exist.
func Default() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return cfg
}

// Load reads config.toml from configDir, applies FINWATCH_* environment
// overrides on top, and validates the result. A missing file is not an error.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, errorMessage(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func errorMessage(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		if fe.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// OpenParams translates the storage section into storage.OpenParams,
// filling in the default file location for file backends.
func (c *Config) OpenParams() (storage.OpenParams, error) {
	path := c.Storage.Path
	if path == "" {
		var err error
		switch c.Storage.Backend {
		case storage.BackendSQLite:
			path, err = storage.DefaultSQLitePath()
		case storage.BackendJSON:
			path, err = storage.DefaultJSONPath()
		}
		if err != nil {
			return storage.OpenParams{}, err
		}
	}

	return storage.OpenParams{
		Backend: c.Storage.Backend,
		Path:    path,
		Redis: storage.RedisOptions{
			Addr:     c.Storage.Redis.Addr,
			Password: c.Storage.Redis.Password,
			DB:       c.Storage.Redis.DB,
			Prefix:   c.Storage.Redis.Prefix,
			Timeout:  c.Storage.Redis.Timeout,
		},
	}, nil
}

// LoggingConfig translates the log section into a logging.LogConfig.
// debug forces the debug level and console output.
func (c *Config) LoggingConfig(debug bool) logging.LogConfig {
	lc := logging.DefaultLogConfig()
	lc.Level = c.Log.Level
	lc.Console = c.Log.Console
	lc.File = c.Log.File
	if c.Log.Path != "" {
		lc.FilePath = c.Log.Path
	}
	lc.MaxSize = c.Log.MaxSize
	lc.MaxBackups = c.Log.MaxBackups
	lc.MaxAge = c.Log.MaxAge

	if debug {
		lc.Level = "debug"
		lc.Console = true
	}
	return lc
}
