// Package config handles loading and parsing highlight's YAML config.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cptaffe/highlight/registry"
)

// Config is the top-level structure of the config file.
type Config struct {
	// Theme is an embedded theme name ("dark", "light") or a path to a
	// theme YAML file.  A --theme flag overrides it.
	Theme string `yaml:"theme"`

	// FilenameHandlers maps filename patterns to language names.
	// Evaluated in order; first match wins, and handlers are consulted
	// before the built-in extension and shebang tables.  Patterns are Go
	// regular expressions.
	FilenameHandlers []FilenameHandler `yaml:"filename_handlers"`
}

// FilenameHandler associates a filename regex pattern with a language name.
type FilenameHandler struct {
	Pattern  string `yaml:"pattern"`
	Language string `yaml:"language"`
}

// Handlers converts the configured filename handlers to the registry's
// representation, ready for compilation.
func (c *Config) Handlers() []registry.FilenameHandler {
	out := make([]registry.FilenameHandler, 0, len(c.FilenameHandlers))
	for _, fh := range c.FilenameHandlers {
		out = append(out, registry.FilenameHandler{Pattern: fh.Pattern, Language: fh.Language})
	}
	return out
}

// Load reads path and returns the parsed Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
