// Package config holds the runtime settings of the skindx CLI.
//
// Values come from, in increasing priority: built-in defaults, the
// config file (skindx.config.yaml in ./ or ~/.skindx), SKINDX_* env
// vars, and command-line flags bound by the cmd package.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mrhapile/skindx/pkg/rules"
)

// Viper keys. Each maps to an env var with the SKINDX_ prefix
// (e.g. "rules_file" → SKINDX_RULES_FILE) and to a YAML field.
const (
	KeyRulesFile     = "rules_file"
	KeyShowTree      = "show_tree"
	KeyShowTrace     = "show_trace"
	KeyOutput        = "output"
	KeyWorkers       = "workers"
	KeyDefaultPreset = "default_preset"
	KeyOtelEnabled   = "otel_enabled"
)

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

const (
	EnvPrefix      = "SKINDX"
	DefaultWorkers = 4
)

// Config is the resolved CLI configuration.
type Config struct {
	RulesFile     string // Knowledge base file; empty means the embedded one
	ShowTree      bool
	ShowTrace     bool
	Output        string // text or json
	Workers       int    // Concurrency for batch runs
	DefaultPreset string // Preset used by the demo and the "default" answer
	OtelEnabled   bool
}

func init() {
	SetDefaults(viper.GetViper())
}

// SetDefaults registers defaults and env binding on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetDefault(KeyShowTree, true)
	v.SetDefault(KeyShowTrace, false)
	v.SetDefault(KeyOutput, OutputText)
	v.SetDefault(KeyWorkers, DefaultWorkers)
	v.SetDefault(KeyDefaultPreset, rules.DefaultPreset)
	v.SetDefault(KeyOtelEnabled, false)
}

// Load reads the global viper instance and returns a validated Config.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads v and returns a validated Config.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		RulesFile:     v.GetString(KeyRulesFile),
		ShowTree:      v.GetBool(KeyShowTree),
		ShowTrace:     v.GetBool(KeyShowTrace),
		Output:        v.GetString(KeyOutput),
		Workers:       v.GetInt(KeyWorkers),
		DefaultPreset: v.GetString(KeyDefaultPreset),
		OtelEnabled:   v.GetBool(KeyOtelEnabled),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Store loads the configured knowledge base, falling back to the
// embedded one.
func (c *Config) Store() (*rules.Store, error) {
	if c.RulesFile == "" {
		return rules.Default(), nil
	}
	return rules.LoadFile(c.RulesFile)
}

func (c *Config) validate() error {
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputJSON, c.Output)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.DefaultPreset == "" {
		return fmt.Errorf("default_preset must not be empty")
	}
	return nil
}
