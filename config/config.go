package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"
)

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string]string{
	"emu.base_url": "EMU_API_BASE_URL",
	"emu.port":     "EMU_API_PORT",
	"emu.tenant":   "EMU_API_TENANT",
	"emu.username": "EMU_API_USER",
	"emu.password": "EMU_API_PASSWORD",
	"emu.timeout":  "EMU_API_TIMEOUT",
}

// LoadOption adjusts how Load validates the configuration
type LoadOption func(*loadOptions)

type loadOptions struct {
	skipLogin bool
}

// WithoutLogin relaxes validation for callers that already hold a bearer
// token: username and password may be empty.
func WithoutLogin() LoadOption {
	return func(o *loadOptions) {
		o.skipLogin = true
	}
}

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is not an error.
func Load(configPath string, opts ...LoadOption) (*Config, error) {
	var lo loadOptions
	for _, opt := range opts {
		opt(&lo)
	}

	v := viper.New()

	// Set default values
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("error binding %s: %w", env, err)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".emuctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/emuctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg, lo); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("emu.timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid, reporting every problem at once
func validate(cfg *Config, opts loadOptions) error {
	var result *multierror.Error

	creds := cfg.EMu.Credentials()
	checkCreds := creds.Validate
	if opts.skipLogin {
		checkCreds = creds.ValidateEndpoint
	}
	if err := checkCreds(); err != nil {
		result = multierror.Append(result, err)
	}

	if cfg.EMu.Timeout <= 0 {
		result = multierror.Append(result, fmt.Errorf("emu.timeout must be positive, got %s", cfg.EMu.Timeout))
	}

	for name, preset := range cfg.Search.Presets {
		if preset.Resource == "" {
			result = multierror.Append(result, fmt.Errorf("search.presets.%s.resource is required", name))
		}
		if preset.Limit < 0 {
			result = multierror.Append(result, fmt.Errorf("search.presets.%s.limit must not be negative", name))
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		result = multierror.Append(result, fmt.Errorf("invalid logging level: %s", cfg.Logging.Level))
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		result = multierror.Append(result, fmt.Errorf("invalid logging format: %s", cfg.Logging.Format))
	}

	return result.ErrorOrNil()
}
