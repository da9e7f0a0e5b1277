// Package theme loads highlight themes from YAML and resolves
// highlight-category names to styles, with two embedded defaults.
package theme

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cptaffe/highlight"
)

//go:embed themes/dark.yaml
var darkYAML []byte

//go:embed themes/light.yaml
var lightYAML []byte

// Theme maps highlight-category names to styles.
type Theme struct {
	Name   string                     `yaml:"name"`
	Styles map[string]highlight.Style `yaml:"styles"`
}

// Style implements highlight.Theme.  Lookup falls back along dotted names,
// so "string.escape" tries "string.escape", then "string".
func (t *Theme) Style(name string) (highlight.Style, bool) {
	for {
		if st, ok := t.Styles[name]; ok {
			return st, true
		}
		i := strings.LastIndexByte(name, '.')
		if i < 0 {
			return highlight.Style{}, false
		}
		name = name[:i]
	}
}

// Load reads a theme from a YAML file.
func Load(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &t, nil
}

// Default returns the embedded theme with the given name, "dark" or
// "light".
func Default(name string) (*Theme, error) {
	var data []byte
	switch name {
	case "dark":
		data = darkYAML
	case "light":
		data = lightYAML
	default:
		return nil, fmt.Errorf("no embedded theme %q", name)
	}
	var t Theme
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse embedded theme %s: %w", name, err)
	}
	return &t, nil
}
