// Package config loads geograph settings. Values are layered: built-in
// defaults, then an optional YAML or TOML file, then GEOGRAPH_* environment
// variables. The result is validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GEOGRAPH_"

type Config struct {
	Logging Logging `yaml:"logging" toml:"logging"`
	Engine  Engine  `yaml:"engine" toml:"engine"`
	Export  Export  `yaml:"export" toml:"export"`
	Random  Random  `yaml:"random" toml:"random"`
	Graph   Graph   `yaml:"graph" toml:"graph"`
}

type Logging struct {
	Level       string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" toml:"development"`
}

type Engine struct {
	// EvalTimeout bounds one DSL evaluation.
	EvalTimeout Duration `yaml:"eval_timeout" toml:"eval_timeout" validate:"gt=0"`
}

type Export struct {
	Directory string `yaml:"directory" toml:"directory" validate:"required"`
	Format    string `yaml:"format" toml:"format" validate:"oneof=stl"`
	// Workers limits how many files are evaluated at once.
	Workers int `yaml:"workers" toml:"workers" validate:"min=1,max=64"`
}

type Random struct {
	// Seed is the base seed of every graph's random stack.
	Seed int64 `yaml:"seed" toml:"seed"`
}

type Graph struct {
	ValidateOnLoad bool `yaml:"validate_on_load" toml:"validate_on_load"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Logging: Logging{Level: "info"},
		Engine:  Engine{EvalTimeout: Duration(5 * time.Second)},
		Export:  Export{Directory: ".", Format: "stl", Workers: 4},
		Graph:   Graph{ValidateOnLoad: true},
	}
}

// Load returns the defaults overlaid with the file at path, if path is not
// empty, and then with the environment.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(lookup); err != nil {
		return nil, err
	}
	dir, err := homedir.Expand(cfg.Export.Directory)
	if err != nil {
		return nil, fmt.Errorf("config: export directory: %w", err)
	}
	cfg.Export.Directory = dir
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	case ".toml":
		err = toml.Unmarshal(data, c)
	default:
		return fmt.Errorf("config: %s: unsupported file type %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	var errs []string
	parse := func(name string, set func(string) error) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Sprintf("%s%s: %v", EnvPrefix, name, err))
			}
		}
	}

	str("LOG_LEVEL", &c.Logging.Level)
	parse("LOG_DEVELOPMENT", func(v string) (err error) {
		c.Logging.Development, err = strconv.ParseBool(v)
		return err
	})
	parse("EVAL_TIMEOUT", func(v string) error {
		return c.Engine.EvalTimeout.UnmarshalText([]byte(v))
	})
	str("EXPORT_DIR", &c.Export.Directory)
	str("EXPORT_FORMAT", &c.Export.Format)
	parse("EXPORT_WORKERS", func(v string) (err error) {
		c.Export.Workers, err = strconv.Atoi(v)
		return err
	})
	parse("SEED", func(v string) (err error) {
		c.Random.Seed, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	parse("VALIDATE_ON_LOAD", func(v string) (err error) {
		c.Graph.ValidateOnLoad, err = strconv.ParseBool(v)
		return err
	})

	if len(errs) > 0 {
		return fmt.Errorf("config: environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

