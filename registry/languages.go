package registry

import (
	_ "embed"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_c "github.com/tree-sitter/tree-sitter-c/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_js "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_scala "github.com/tree-sitter/tree-sitter-scala/bindings/go"
)

//go:embed queries/go.scm
var goHighlights string

//go:embed queries/c.scm
var cHighlights string

//go:embed queries/python.scm
var pythonHighlights string

//go:embed queries/rust.scm
var rustHighlights string

//go:embed queries/javascript.scm
var jsHighlights string

//go:embed queries/javascript-injections.scm
var jsInjections string

//go:embed queries/bash.scm
var bashHighlights string

//go:embed queries/java.scm
var javaHighlights string

//go:embed queries/scala.scm
var scalaHighlights string

// builtinLanguages compiles the bundled grammars and pairs them with the
// embedded query sources.  Locals queries are intentionally empty for the
// built-ins: the combined query still reserves the section, and custom
// languages may supply one via Register.
func builtinLanguages() []*LanguageConfig {
	return []*LanguageConfig{
		{
			Name:       "bash",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_bash.Language()),
			Highlights: bashHighlights,
		},
		{
			Name:       "c",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_c.Language()),
			Highlights: cHighlights,
		},
		{
			Name:       "go",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_go.Language()),
			Highlights: goHighlights,
		},
		{
			Name:       "java",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_java.Language()),
			Highlights: javaHighlights,
		},
		{
			Name:       "javascript",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_js.Language()),
			Highlights: jsHighlights,
			Injections: jsInjections,
			// Tagged templates name their language via the tag identifier
			// (bash`...`, python`...`); precompile the plausible targets.
			InjectionLanguages: []string{"bash", "c", "go", "python"},
		},
		{
			Name:       "python",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_python.Language()),
			Highlights: pythonHighlights,
		},
		{
			Name:       "rust",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_rust.Language()),
			Highlights: rustHighlights,
		},
		{
			Name:       "scala",
			Grammar:    tree_sitter.NewLanguage(tree_sitter_scala.Language()),
			Highlights: scalaHighlights,
		},
	}
}
