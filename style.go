package highlight

// Range is a half-open byte range [Start, End) within the document.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes the range covers.
func (r Range) Len() int { return r.End - r.Start }

// IsEmpty reports whether the range covers no bytes.
func (r Range) IsEmpty() bool { return r.End <= r.Start }

// clip intersects r with bounds.  The result may be empty.
func (r Range) clip(bounds Range) Range {
	out := r
	if out.Start < bounds.Start {
		out.Start = bounds.Start
	}
	if out.End > bounds.End {
		out.End = bounds.End
	}
	return out
}

// intersects reports whether the two half-open ranges share any byte.
func (r Range) intersects(other Range) bool {
	return r.Start < other.End && r.End > other.Start
}

// Style is the resolved visual styling for a span.  The zero value is the
// default "unstyled" style used for gaps and unknown categories.
type Style struct {
	// Color is a hex color ("#61afef") or empty for the default foreground.
	Color      string `yaml:"color"`
	Background string `yaml:"background"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
}

// IsDefault reports whether s is the zero style.
func (s Style) IsDefault() bool { return s == Style{} }

// StyledRange pairs a byte range with its resolved style.
type StyledRange struct {
	Range Range
	Style Style
}

// Theme resolves a highlight-category name ("keyword", "string.escape") to
// a Style.  The second return is false when the theme has no entry for the
// name; the caller substitutes the zero Style.
type Theme interface {
	Style(name string) (Style, bool)
}

// resolveStyle looks name up in theme, tolerating a nil theme.
func resolveStyle(theme Theme, name string) Style {
	if theme == nil {
		return Style{}
	}
	st, ok := theme.Style(name)
	if !ok {
		return Style{}
	}
	return st
}

// uniqueStyles collapses an ordered sequence of possibly overlapping or
// duplicated style runs into a minimal ordered sequence of non-overlapping
// runs covering the same extent.  Where two runs of different styles
// overlap, the later (incoming) style wins for the overlapped bytes.
//
// The scan carries one open run: equal-style runs that touch or overlap it
// extend it; an overlapping different-style run closes the prefix, emits
// the overlap with the new style, and re-opens with whatever remains of the
// incoming run; anything else closes the open run and opens a new one.
func uniqueStyles(styles []StyledRange) []StyledRange {
	var out []StyledRange
	var cur StyledRange
	open := false

	for _, s := range styles {
		if s.Range.IsEmpty() {
			continue
		}
		if !open {
			cur, open = s, true
			continue
		}
		switch {
		case s.Style == cur.Style && s.Range.Start <= cur.Range.End:
			if s.Range.End > cur.Range.End {
				cur.Range.End = s.Range.End
			}

		case s.Range.Start < cur.Range.End:
			if s.Range.Start > cur.Range.Start {
				out = append(out, StyledRange{
					Range: Range{Start: cur.Range.Start, End: s.Range.Start},
					Style: cur.Style,
				})
			}
			overlapEnd := cur.Range.End
			if s.Range.End < overlapEnd {
				overlapEnd = s.Range.End
			}
			out = append(out, StyledRange{
				Range: Range{Start: s.Range.Start, End: overlapEnd},
				Style: s.Style,
			})
			if s.Range.End > overlapEnd {
				cur = StyledRange{
					Range: Range{Start: overlapEnd, End: s.Range.End},
					Style: s.Style,
				}
			} else {
				open = false
			}

		default:
			out = append(out, cur)
			cur = s
		}
	}
	if open {
		out = append(out, cur)
	}
	return out
}
