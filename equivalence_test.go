package highlight

import (
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/cptaffe/highlight/registry"
)

// TestIncrementalMatchesFullRebuild edits the contents of a string literal
// repeatedly and checks that the incrementally patched cache matches a
// from-scratch parse of the final text.
func TestIncrementalMatchesFullRebuild(t *testing.T) {
	reg := registry.New()
	ctx := testContext()

	rapid.Check(t, func(t *rapid.T) {
		const prefix = "package main\n\nvar s = \""
		const suffix = "\"\n"

		content := rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "content")
		text := prefix + content + suffix

		h, err := New(ctx, "go", reg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer h.Close()
		h.Update(Range{}, text, text)

		steps := rapid.IntRange(1, 6).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			inner := Range{Start: len(prefix), End: len(text) - len(suffix)}
			a := rapid.IntRange(inner.Start, inner.End).Draw(t, "start")
			b := rapid.IntRange(a, inner.End).Draw(t, "end")
			repl := rapid.StringMatching(`[a-z ]{0,8}`).Draw(t, "repl")

			next := applyEdit(text, Range{a, b}, repl)
			h.Update(Range{a, b}, next, repl)
			text = next
		}

		full, err := New(ctx, "go", reg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer full.Close()
		full.Update(Range{}, text, text)

		got := h.Spans(Range{0, len(text)})
		want := full.Spans(Range{0, len(text)})
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("incremental spans %v, full rebuild %v\ntext: %q", got, want, text)
		}
	})
}

// TestStylesCoversRange checks the gap-fill contract: whatever the cache
// holds, Styles tiles the requested range exactly.
func TestStylesCoversRange(t *testing.T) {
	reg := registry.New()
	ctx := testContext()
	th := mapTheme{
		"keyword": {Color: "#c678dd"},
		"string":  {Color: "#98c379"},
		"number":  {Color: "#d19a66"},
	}

	rapid.Check(t, func(t *rapid.T) {
		text := rapid.StringMatching(`[a-z0-9 "=\n]{0,40}`).Draw(t, "text")

		h, err := New(ctx, "go", reg)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		defer h.Close()
		h.Update(Range{}, text, text)

		start := rapid.IntRange(0, len(text)).Draw(t, "start")
		end := rapid.IntRange(start, len(text)).Draw(t, "end")
		if start == end {
			return
		}

		runs := h.Styles(Range{start, end}, th)
		if len(runs) == 0 {
			t.Fatal("Styles returned no runs for a non-empty range")
		}
		if runs[0].Range.Start != start || runs[len(runs)-1].Range.End != end {
			t.Fatalf("runs %v do not span %d..%d", runs, start, end)
		}
		for i := 1; i < len(runs); i++ {
			if runs[i].Range.Start != runs[i-1].Range.End {
				t.Fatalf("runs %v have a gap or overlap at %d", runs, i)
			}
			if runs[i].Range.IsEmpty() {
				t.Fatalf("run %d of %v is empty", i, runs)
			}
		}
	})
}
