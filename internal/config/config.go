// Package config loads the solver service configuration from YAML, with environment overrides
// for deployments that have no config file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config describes where the solver finds its dictionaries and how it is served.
type Config struct {
	// Dictionary is the compiled lexicon URI: a path, an http(s) URL, gs://bucket/object, or
	// store://<length> when Store is configured.
	Dictionary string `yaml:"dictionary" validate:"required"`

	// CommonWords is the URI of the common word list used for random pairs. Optional.
	CommonWords string `yaml:"common_words"`

	Port int `yaml:"port" validate:"gte=1,lte=65535"`

	Store StoreConfig `yaml:"store"`

	// Seed makes random pairs reproducible. Zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// RandomTimeout bounds the search for a connected random pair.
	RandomTimeout time.Duration `yaml:"random_timeout" validate:"gte=0"`

	Debug bool `yaml:"debug"`
}

type StoreConfig struct {
	Path     string `yaml:"path"`
	InMemory bool   `yaml:"in_memory"`
}

// Enabled reports whether a lexicon store is configured.
func (s StoreConfig) Enabled() bool {
	return s.Path != "" || s.InMemory
}

func DefaultConfig() Config {
	return Config{
		Port:          8080,
		RandomTimeout: 5 * time.Second,
	}
}

// Load reads the YAML file at path on top of DefaultConfig, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read the config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse the config file %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from LADDER_DICTIONARY, LADDER_COMMON_WORDS, LADDER_STORE_PATH,
// LADDER_SEED and PORT.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("LADDER_DICTIONARY"); v != "" {
		cfg.Dictionary = v
	}
	if v := os.Getenv("LADDER_COMMON_WORDS"); v != "" {
		cfg.CommonWords = v
	}
	if v := os.Getenv("LADDER_STORE_PATH"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("LADDER_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LADDER_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		cfg.Port = port
	}
	return nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Write saves cfg as YAML.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
