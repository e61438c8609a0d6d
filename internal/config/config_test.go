package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paygrade.yaml")
	data := `
scenario: 2
currency: "Rp"
params:
  lowest_midpoint: 20000
  highest_midpoint: 90000
output:
  format: xlsx
  dir: out
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Scenario)
	assert.Equal(t, "Rp", cfg.Currency)
	assert.Equal(t, 20000.0, cfg.Params.LowestMidpoint)
	assert.Equal(t, 90000.0, cfg.Params.HighestMidpoint)
	assert.Equal(t, 50, cfg.Params.TargetPercentile, "unset field keeps its default")
	assert.Equal(t, "xlsx", cfg.Output.Format)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 5, cfg.Workers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scenario: [1"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cases := map[string]func(c *AppConfig){
		"scenario":    func(c *AppConfig) { c.Scenario = 6 },
		"format":      func(c *AppConfig) { c.Output.Format = "pdf" },
		"html output": func(c *AppConfig) { c.Output.Format = "html" },
		"workers":     func(c *AppConfig) { c.Workers = 0 },
		"grades":      func(c *AppConfig) { c.Grades = 51 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := Default()
	cfg.Scenario = 5
	cfg.Params.TargetPercentile = 75
	require.NoError(t, cfg.Write(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
