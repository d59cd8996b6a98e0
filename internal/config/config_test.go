package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrhapile/skindx/pkg/rules"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(newViper())
	require.NoError(t, err)

	assert.Equal(t, "", cfg.RulesFile)
	assert.True(t, cfg.ShowTree)
	assert.False(t, cfg.ShowTrace)
	assert.Equal(t, OutputText, cfg.Output)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, rules.DefaultPreset, cfg.DefaultPreset)
	assert.False(t, cfg.OtelEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SKINDX_OUTPUT", "json")
	t.Setenv("SKINDX_WORKERS", "8")
	t.Setenv("SKINDX_SHOW_TREE", "false")

	cfg, err := LoadFrom(newViper())
	require.NoError(t, err)

	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, 8, cfg.Workers)
	assert.False(t, cfg.ShowTree)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skindx.config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("show_trace: true\nworkers: 2\n"), 0o600))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.True(t, cfg.ShowTrace)
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  any
	}{
		{"unknown output", KeyOutput, "xml"},
		{"zero workers", KeyWorkers, 0},
		{"negative workers", KeyWorkers, -3},
		{"empty preset", KeyDefaultPreset, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			v.Set(tt.key, tt.val)

			_, err := LoadFrom(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestConfig_Store(t *testing.T) {
	cfg := &Config{}
	s, err := cfg.Store()
	require.NoError(t, err)
	assert.Same(t, rules.Default(), s)

	cfg.RulesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.Store()
	assert.Error(t, err)
}
