package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/picogrid/vegca-inputs/pkg/schema"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "VEGCA"

// Settings holds the CLI configuration
type Settings struct {
	Inputs       string `mapstructure:"inputs"`
	Schema       string `mapstructure:"schema"`
	Strict       bool   `mapstructure:"strict"`
	ExportFormat string `mapstructure:"export_format"`
	LogLevel     string `mapstructure:"log_level"`
	NoColor      bool   `mapstructure:"no_color"`
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("inputs", "Inputs_Vegetation_CA.txt")
	v.SetDefault("schema", schema.VegetationCA)
	v.SetDefault("strict", false)
	v.SetDefault("export_format", "yaml")
	v.SetDefault("log_level", "info")
	v.SetDefault("no_color", false)
}

// DefaultDir returns the directory holding the user's config file
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".vegca"), nil
}

// Init prepares v to read cfgFile, or $HOME/.vegca/config.yaml when cfgFile is
// empty, and to pick up VEGCA_* environment variables.
func Init(v *viper.Viper, cfgFile string) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		if dir, err := DefaultDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads the config file if there is one and returns the merged settings.
// A missing default config file is not an error; an explicit one is.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &s, nil
}

// Validate checks if the settings are usable
func (s *Settings) Validate() error {
	switch s.ExportFormat {
	case "yaml", "toml", "json":
	default:
		return fmt.Errorf("export format must be one of yaml, toml, json (got %q)", s.ExportFormat)
	}

	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log level must be one of debug, info, warn, error (got %q)", s.LogLevel)
	}

	if s.Schema == "" {
		return fmt.Errorf("schema is required")
	}
	return nil
}
