package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"rsbind/internal/typemap"
)

// Config represents the complete configuration.
type Config struct {
	TypeMappings map[string]typemap.Mapping `yaml:"typeMappings" json:"typeMappings"`
	Options      Options                    `yaml:"options" json:"options"`
}

// Options represents generation options.
type Options struct {
	CrateName string `yaml:"crateName" json:"crateName"`
	OutputDir string `yaml:"outputDir" json:"outputDir"`
	Extension string `yaml:"extension" json:"extension"` // module file extension
	Format    bool   `yaml:"format" json:"format"`       // run rustfmt/clang-format after writing
}

// fileOptions mirrors Options; Format is a pointer so an absent key keeps the default.
type fileOptions struct {
	CrateName string `yaml:"crateName" json:"crateName"`
	OutputDir string `yaml:"outputDir" json:"outputDir"`
	Extension string `yaml:"extension" json:"extension"`
	Format    *bool  `yaml:"format" json:"format"`
}

type fileConfig struct {
	TypeMappings map[string]typemap.Mapping `yaml:"typeMappings" json:"typeMappings"`
	Options      fileOptions                `yaml:"options" json:"options"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		TypeMappings: DefaultTypeMappings(),
		Options:      DefaultOptions(),
	}
}

// LoadFile loads configuration from a file (YAML or JSON based on extension).
func (c *Config) LoadFile(fs afero.Fs, path string) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))

	var loaded fileConfig
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return fmt.Errorf("unable to parse config as YAML or JSON")
			}
		}
	}

	return c.merge(&loaded)
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *fileConfig) error {
	// Loaded mappings override defaults
	for k, v := range loaded.TypeMappings {
		if v.Header == "" || v.Wrapper == "" {
			return fmt.Errorf("type mapping %q: header and wrapper are required", k)
		}
		switch v.Strategy {
		case "":
			v.Strategy = typemap.Reinterpret
		case typemap.Reinterpret, typemap.CopyText, typemap.BorrowText:
		default:
			return fmt.Errorf("type mapping %q: unknown strategy %q", k, v.Strategy)
		}
		c.TypeMappings[k] = v
	}

	if loaded.Options.CrateName != "" {
		c.Options.CrateName = loaded.Options.CrateName
	}
	if loaded.Options.OutputDir != "" {
		c.Options.OutputDir = loaded.Options.OutputDir
	}
	if loaded.Options.Extension != "" {
		c.Options.Extension = strings.TrimPrefix(loaded.Options.Extension, ".")
	}
	if loaded.Options.Format != nil {
		c.Options.Format = *loaded.Options.Format
	}
	return nil
}

// Mapper builds a type mapper over the configured table.
func (c *Config) Mapper() *typemap.Mapper {
	return typemap.New(c.TypeMappings)
}
