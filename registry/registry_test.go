package registry

import (
	"reflect"
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// TestBuiltinQueriesCompile compiles every built-in language's combined
// query sources against its grammar.  A stale node type or misspelled
// capture in a bundled .scm file fails here, not at first use.
func TestBuiltinQueriesCompile(t *testing.T) {
	r := New()
	for _, name := range r.Names() {
		t.Run(name, func(t *testing.T) {
			cfg := r.Language(name)
			src := cfg.Injections + cfg.Locals + cfg.Highlights
			if src == "" {
				t.Fatal("no query sources bundled")
			}
			q, qerr := tree_sitter.NewQuery(cfg.Grammar, src)
			if qerr != nil {
				t.Fatalf("query error at offset %d: %s", qerr.Offset, qerr.Message)
			}
			defer q.Close()
			if q.PatternCount() == 0 {
				t.Error("query compiled to zero patterns")
			}
		})
	}
}

func TestNames(t *testing.T) {
	want := []string{"bash", "c", "go", "java", "javascript", "python", "rust", "scala"}
	if got := New().Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names = %v, want %v", got, want)
	}
}

func TestLanguageAliases(t *testing.T) {
	r := New()
	tests := []struct {
		alias, canonical string
	}{
		{"golang", "go"},
		{"js", "javascript"},
		{"mjs", "javascript"},
		{"py", "python"},
		{"rs", "rust"},
		{"sh", "bash"},
		{"zsh", "bash"},
	}
	for _, tt := range tests {
		cfg := r.Language(tt.alias)
		if cfg == nil || cfg.Name != tt.canonical {
			t.Errorf("Language(%q) = %v, want %s", tt.alias, cfg, tt.canonical)
		}
	}
	if cfg := r.Language("cobol"); cfg != nil {
		t.Errorf("Language(cobol) = %v, want nil", cfg)
	}
}

func TestRegisterOverrides(t *testing.T) {
	r := New()
	custom := &LanguageConfig{
		Name:       "go",
		Grammar:    r.Language("go").Grammar,
		Highlights: "(comment) @comment",
	}
	r.Register(custom)
	if got := r.Language("go"); got != custom {
		t.Error("Register should replace the existing config")
	}
	// An exact-name registration shadows the alias table.
	r.Register(&LanguageConfig{Name: "rs", Grammar: r.Language("rust").Grammar})
	if got := r.Language("rs"); got == nil || got.Name != "rs" {
		t.Errorf("Language(rs) = %v, want the directly registered config", got)
	}
}
