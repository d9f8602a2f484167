// Package config loads the tool configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"descriptor-translator/internal/tosca"
)

var validate = validator.New()

// Config is the tool configuration.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Output      OutputConfig      `yaml:"output"`
	Translation TranslationConfig `yaml:"translation"`
	Compare     CompareConfig     `yaml:"compare"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=yaml json"`
}

type TranslationConfig struct {
	DefinitionsVersion string `yaml:"definitions_version" validate:"required"`
	// TypeOverrides maps custom TOSCA type names to the built-in type whose
	// translator handles them.
	TypeOverrides map[string]string `yaml:"type_overrides" validate:"dive,keys,required,endkeys,required"`
}

type CompareConfig struct {
	OrderlessKeys []string `yaml:"orderless_keys" validate:"dive,required"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)

	return cfg
}

// LoadFile loads and validates a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Config, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	if cfg.Output.Format == "" {
		cfg.Output.Format = "yaml"
	}

	if cfg.Translation.DefinitionsVersion == "" {
		cfg.Translation.DefinitionsVersion = tosca.DefaultDefinitionsVersion
	}
}

// Validate checks field values and the definitions version.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s: value %v fails %q", fe.Namespace(), fe.Value(), fe.Tag())
		}

		return fmt.Errorf("invalid config: %w", err)
	}

	if err := tosca.CheckDefinitionsVersion(cfg.Translation.DefinitionsVersion); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
