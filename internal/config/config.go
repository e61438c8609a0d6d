package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fr4nk3nst1ner/paygrade/internal/engine"
	"github.com/fr4nk3nst1ner/paygrade/internal/tableio"
	"github.com/fr4nk3nst1ner/paygrade/internal/template"
)

// AppConfig represents the application configuration
type AppConfig struct {
	Scenario int           `yaml:"scenario"`
	Currency string        `yaml:"currency"`
	Grades   int           `yaml:"grades"`
	Params   engine.Params `yaml:"params"`
	Output   OutputConfig  `yaml:"output"`
	Workers  int           `yaml:"workers"`
	Proxy    string        `yaml:"proxy"`
	Debug    bool          `yaml:"debug"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
	Dir    string `yaml:"dir"`
	Chart  bool   `yaml:"chart"`
}

// Load reads the configuration from path, or from the first config file
// found in the usual locations when path is empty. Missing files yield
// the defaults; fields absent from the file keep their default values.
func Load(path string) (*AppConfig, error) {
	cfg := Default()

	if path == "" {
		path = findConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func findConfigPath() string {
	paths := []string{
		"paygrade.yaml",
		"paygrade.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "paygrade", "config.yaml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Default returns the configuration used when no file is present
func Default() *AppConfig {
	return &AppConfig{
		Scenario: int(engine.MinimumsMaximums),
		Currency: "$",
		Grades:   10,
		Params: engine.Params{
			LowestMidpoint:   50000,
			HighestMidpoint:  100000,
			TargetPercentile: 50,
		},
		Output: OutputConfig{
			Format: string(tableio.FormatCSV),
		},
		Workers: 5,
	}
}

// Validate checks the values the CLI cannot run without
func (c *AppConfig) Validate() error {
	if !engine.Scenario(c.Scenario).Valid() {
		return fmt.Errorf("scenario must be between 1 and 5, got %d", c.Scenario)
	}
	format, err := tableio.ParseFormat(c.Output.Format)
	if err != nil {
		return err
	}
	if format == tableio.FormatHTML {
		return fmt.Errorf("html is an input-only format")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Grades < template.MinGrades || c.Grades > template.MaxGrades {
		return fmt.Errorf("grades must be between %d and %d, got %d", template.MinGrades, template.MaxGrades, c.Grades)
	}
	return nil
}

// Write saves the configuration as YAML
func (c *AppConfig) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
