package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/jsonedit/internal/errors"
)

// Config represents the complete configuration for jsonedit
type Config struct {
	Output Output `yaml:"output"`
	Form   Form   `yaml:"form"`
}

// Output controls JSON serialization
type Output struct {
	// Indent is the number of spaces per nesting level
	Indent int `yaml:"indent"`
	// SortKeys orders mapping keys alphabetically on export
	SortKeys bool `yaml:"sort_keys"`
}

// Form controls how the editable form is presented
type Form struct {
	// HumanizeLabels renders keys like "first_name" as "first name"
	HumanizeLabels bool `yaml:"humanize_labels"`
	// CollapseDepth collapses sections nested deeper than this many
	// levels when a document is first loaded; 0 leaves everything open
	CollapseDepth int `yaml:"collapse_depth"`
	// PreviewWidth truncates string previews in the field list
	PreviewWidth int `yaml:"preview_width"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: Output{
			Indent:   2,
			SortKeys: false,
		},
		Form: Form{
			HumanizeLabels: false,
			CollapseDepth:  0,
			PreviewWidth:   40,
		},
	}
}

// LoadConfig loads configuration from a YAML file, merged over defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("failed to parse config file", err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonedit.yml", ".jsonedit.yaml", "jsonedit.yml", "jsonedit.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Load returns the discovered config file merged over defaults, or plain
// defaults when no config file exists.
func Load() *Config {
	path := FindConfigFile()
	if path == "" {
		return NewConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		// A broken config file should not keep the tool from starting.
		return NewConfig()
	}
	return cfg
}
