package highlight

import (
	"reflect"
	"testing"
)

func TestUniqueStylesOverlapNewStyleWins(t *testing.T) {
	clean := Style{}
	red := Style{Color: "#ff0000"}
	green := Style{Color: "#00ff00"}
	blue := Style{Color: "#0000ff"}

	in := []StyledRange{
		{Range{0, 10}, clean},
		{Range{0, 10}, clean},
		{Range{5, 11}, red},
		{Range{10, 15}, green},
		{Range{15, 30}, clean},
		{Range{29, 35}, blue},
		{Range{35, 40}, green},
	}
	want := []StyledRange{
		{Range{0, 5}, clean},
		{Range{5, 10}, red},
		{Range{10, 11}, green},
		{Range{11, 15}, green},
		{Range{15, 29}, clean},
		{Range{29, 30}, blue},
		{Range{30, 35}, blue},
		{Range{35, 40}, green},
	}

	got := uniqueStyles(in)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uniqueStyles = %v, want %v", got, want)
	}

	// The output must tile the input's extent with no gaps or overlaps.
	for i := 1; i < len(got); i++ {
		if got[i].Range.Start != got[i-1].Range.End {
			t.Errorf("run %d starts at %d, previous ends at %d", i, got[i].Range.Start, got[i-1].Range.End)
		}
	}
	if got[0].Range.Start != 0 || got[len(got)-1].Range.End != 40 {
		t.Errorf("output extent %d..%d, want 0..40", got[0].Range.Start, got[len(got)-1].Range.End)
	}
}

func TestUniqueStylesMergesEqualRuns(t *testing.T) {
	bold := Style{Bold: true}
	in := []StyledRange{
		{Range{0, 5}, bold},
		{Range{5, 9}, bold},
		{Range{9, 9}, Style{Color: "#fff"}}, // empty, dropped
		{Range{9, 12}, bold},
	}
	want := []StyledRange{{Range{0, 12}, bold}}
	if got := uniqueStyles(in); !reflect.DeepEqual(got, want) {
		t.Errorf("uniqueStyles = %v, want %v", got, want)
	}
}

func TestUniqueStylesEmpty(t *testing.T) {
	if got := uniqueStyles(nil); got != nil {
		t.Errorf("uniqueStyles(nil) = %v, want nil", got)
	}
}

func TestRangeClip(t *testing.T) {
	tests := []struct {
		r, bounds, want Range
	}{
		{Range{0, 10}, Range{3, 7}, Range{3, 7}},
		{Range{5, 8}, Range{0, 20}, Range{5, 8}},
		{Range{0, 5}, Range{10, 20}, Range{10, 5}}, // empty result
	}
	for _, tt := range tests {
		if got := tt.r.clip(tt.bounds); got != tt.want {
			t.Errorf("(%v).clip(%v) = %v, want %v", tt.r, tt.bounds, got, tt.want)
		}
	}
	if !(Range{0, 5}).clip(Range{10, 20}).IsEmpty() {
		t.Error("clip to disjoint bounds should be empty")
	}
}

func TestResolveStyle(t *testing.T) {
	th := mapTheme{"keyword": {Color: "#c678dd"}}
	if got := resolveStyle(th, "keyword"); got.Color != "#c678dd" {
		t.Errorf("resolveStyle keyword = %v", got)
	}
	if got := resolveStyle(th, "unknown"); !got.IsDefault() {
		t.Errorf("unknown category should resolve to default, got %v", got)
	}
	if got := resolveStyle(nil, "keyword"); !got.IsDefault() {
		t.Errorf("nil theme should resolve to default, got %v", got)
	}
}

// mapTheme is a trivial Theme for tests.
type mapTheme map[string]Style

func (m mapTheme) Style(name string) (Style, bool) {
	st, ok := m[name]
	return st, ok
}
