// Package registry holds the set of languages a highlighter can be built
// for: a compiled tree-sitter grammar plus the raw highlights, injections,
// and locals query sources.
//
// A Registry is an explicitly passed dependency, not a process-wide
// singleton; callers that want custom languages construct one, register,
// and hand it to highlight.New.  A Registry is read-only after setup and
// must not be mutated concurrently with use.
package registry

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// LanguageConfig describes one registered language.
type LanguageConfig struct {
	// Name is the canonical language name ("go", "rust", ...).
	Name string

	// Grammar is the compiled tree-sitter grammar.
	Grammar *tree_sitter.Language

	// Highlights, Injections, and Locals are raw tree-sitter query
	// sources.  Any of them may be empty.
	Highlights string
	Injections string
	Locals     string

	// InjectionLanguages lists the language names this language may embed
	// (e.g. javascript embedding bash in tagged templates).  A highlighter
	// precompiles a highlights-only query for each of these at
	// construction; names that are unregistered or fail to compile are
	// logged and skipped, never fatal.
	InjectionLanguages []string
}

// aliases maps common short names to canonical language names, so that
// Language("rs") finds the rust config.  Checked only after an exact
// lookup misses, so a registered language named "rs" wins.
var aliases = map[string]string{
	"cjs":    "javascript",
	"golang": "go",
	"js":     "javascript",
	"mjs":    "javascript",
	"py":     "python",
	"rs":     "rust",
	"sh":     "bash",
	"shell":  "bash",
	"zsh":    "bash",
}

// Registry maps language names to their configs.
type Registry struct {
	languages map[string]*LanguageConfig
}

// New returns a registry populated with the built-in languages.
func New() *Registry {
	r := &Registry{languages: make(map[string]*LanguageConfig)}
	for _, cfg := range builtinLanguages() {
		r.Register(cfg)
	}
	return r
}

// Register adds (or replaces) a language config under cfg.Name.
func (r *Registry) Register(cfg *LanguageConfig) {
	r.languages[cfg.Name] = cfg
}

// Language returns the config for name, trying an exact match first and
// then the short-name aliases.  Returns nil if the language is unknown.
func (r *Registry) Language(name string) *LanguageConfig {
	if cfg, ok := r.languages[name]; ok {
		return cfg
	}
	if canonical, ok := aliases[name]; ok {
		return r.languages[canonical]
	}
	return nil
}

// Names returns the sorted canonical names of all registered languages.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.languages))
	for name := range r.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
