// Package config loads parcelprep settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/evcraddock/parcelprep/internal/feature"
)

// EnvPrefix prefixes every environment override, e.g. PP_DATA_DIR.
const EnvPrefix = "PP"

// Config holds pipeline settings.
type Config struct {
	DataDir     string   `json:"data_dir" yaml:"data_dir" split_words:"true" validate:"required"`
	DBPath      string   `json:"db_path,omitempty" yaml:"db_path,omitempty" split_words:"true"`
	Seed        uint64   `json:"seed" yaml:"seed" split_words:"true"`
	DropColumns []string `json:"drop_columns" yaml:"drop_columns" split_words:"true" validate:"dive,required"`
	DateColumns []string `json:"date_columns" yaml:"date_columns" split_words:"true" validate:"dive,required"`
	Dev         bool     `json:"dev" yaml:"dev,omitempty" split_words:"true"`
}

// ErrUnknownKey is returned by Set for a key that is not a config field.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the settable config keys in display order.
var Keys = []string{"data_dir", "db_path", "seed", "drop_columns", "date_columns", "dev"}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DataDir:     "raw_data",
		DateColumns: []string{"transactiondate"},
	}
}

// Transformer returns the feature transformer settings.
func (c Config) Transformer() feature.Config {
	return feature.Config{
		DropColumns: c.DropColumns,
		DateColumns: c.DateColumns,
	}
}

// DefaultPath returns the default config path: ~/.config/pp/config.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pp", "config.yaml"), nil
}

// Load reads the config file at path (the default path if empty), applies
// PP_* environment overrides and validates the result. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads the config file at path (the default path if empty)
// without environment overrides. It is the starting point for edits that
// are saved back to the same file.
func LoadFile(path string) (Config, error) {
	return readFile(path)
}

func readFile(path string) (Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return Config{}, err
		}
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config: %w", err)
		}
	}

	return cfg, nil
}

// Validate checks required fields and list entries.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// Set assigns value to the field named by key. List fields take a
// comma-separated value; an empty value clears them.
func (c *Config) Set(key, value string) error {
	switch key {
	case "data_dir":
		c.DataDir = value
	case "db_path":
		c.DBPath = value
	case "seed":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing seed %q: %w", value, err)
		}
		c.Seed = n
	case "drop_columns":
		c.DropColumns = splitList(value)
	case "date_columns":
		c.DateColumns = splitList(value)
	case "dev":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("parsing dev %q: %w", value, err)
		}
		c.Dev = b
	default:
		return fmt.Errorf("%w: %q (valid: %s)", ErrUnknownKey, key, strings.Join(Keys, ", "))
	}
	return nil
}

// Get returns the value of key formatted as Set accepts it.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "data_dir":
		return c.DataDir, nil
	case "db_path":
		return c.DBPath, nil
	case "seed":
		return strconv.FormatUint(c.Seed, 10), nil
	case "drop_columns":
		return strings.Join(c.DropColumns, ","), nil
	case "date_columns":
		return strings.Join(c.DateColumns, ","), nil
	case "dev":
		return strconv.FormatBool(c.Dev), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Save writes cfg to path (the default path if empty).
func Save(path string, cfg Config) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
