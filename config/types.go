package config

import (
	"time"

	"github.com/s0up4200/emuctl/emu"
)

// Config represents the complete configuration structure
type Config struct {
	EMu     EMuConfig     `mapstructure:"emu"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EMuConfig holds EMu REST API connection details
type EMuConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Port     string        `mapstructure:"port"`
	Tenant   string        `mapstructure:"tenant"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Credentials converts the connection details for the emu package.
func (c EMuConfig) Credentials() emu.Credentials {
	return emu.Credentials{
		BaseURL:  c.BaseURL,
		Port:     c.Port,
		Tenant:   c.Tenant,
		Username: c.Username,
		Password: c.Password,
	}
}

// SearchConfig contains named search presets
type SearchConfig struct {
	Presets map[string]SearchPreset `mapstructure:"presets"`
}

// SearchPreset is a saved query
type SearchPreset struct {
	Resource string   `mapstructure:"resource"`
	Filter   string   `mapstructure:"filter"`
	Sort     string   `mapstructure:"sort"`
	Select   []string `mapstructure:"select"`
	Limit    int      `mapstructure:"limit"`
	Where    string   `mapstructure:"where"`
}

// Spec converts the preset into a search spec.
func (p SearchPreset) Spec() emu.SearchSpec {
	return emu.SearchSpec{
		Filter: p.Filter,
		Sort:   p.Sort,
		Select: p.Select,
		Limit:  p.Limit,
	}
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
