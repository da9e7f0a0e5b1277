package highlight

import "github.com/google/btree"

// Span is one highlight cache entry: a byte range tagged with the
// highlight-category name the query assigned to it.
type Span struct {
	Range    Range
	Category string
}

// spanCache is the ordered highlight cache, keyed by span start offset.
//
// Invariants: spans are non-overlapping and ordered by Range.Start, and no
// two touching spans share a category (insert merges them eagerly).
type spanCache struct {
	tree *btree.BTreeG[Span]
}

func newSpanCache() *spanCache {
	return &spanCache{
		tree: btree.NewG(16, func(a, b Span) bool {
			return a.Range.Start < b.Range.Start
		}),
	}
}

func (c *spanCache) len() int { return c.tree.Len() }

func (c *spanCache) clear() { c.tree.Clear(false) }

// insert adds sp, merging it into the immediately preceding entry when the
// two touch and share a category.  A span with an existing start offset
// replaces the old entry, mirroring ordered-map insert semantics.
// Empty spans are dropped.
func (c *spanCache) insert(sp Span) {
	if sp.Range.IsEmpty() {
		return
	}
	var pred Span
	found := false
	c.tree.DescendLessOrEqual(Span{Range: Range{Start: sp.Range.Start - 1}}, func(it Span) bool {
		pred, found = it, true
		return false
	})
	if found && pred.Range.End == sp.Range.Start && pred.Category == sp.Category {
		c.tree.Delete(pred)
		sp.Range.Start = pred.Range.Start
	}
	c.tree.ReplaceOrInsert(sp)
}

// evict removes every span intersecting r (half-open overlap test).
func (c *spanCache) evict(r Range) {
	var doomed []Span
	c.tree.Ascend(func(sp Span) bool {
		if sp.Range.Start >= r.End {
			return false
		}
		if sp.Range.intersects(r) {
			doomed = append(doomed, sp)
		}
		return true
	})
	for _, sp := range doomed {
		c.tree.Delete(sp)
	}
}

// shiftFrom re-keys every span whose start is at or after start, moving
// both ends by delta.  Spans entirely before start are untouched.
func (c *spanCache) shiftFrom(start, delta int) {
	if delta == 0 {
		return
	}
	var moved []Span
	c.tree.AscendGreaterOrEqual(Span{Range: Range{Start: start}}, func(sp Span) bool {
		moved = append(moved, sp)
		return true
	})
	for _, sp := range moved {
		c.tree.Delete(sp)
	}
	for _, sp := range moved {
		sp.Range.Start += delta
		sp.Range.End += delta
		c.tree.ReplaceOrInsert(sp)
	}
}

// from iterates spans in order, starting at the greatest key ≤ start (a
// span that begins before start may still overlap it).  fn returns false
// to stop.
func (c *spanCache) from(start int, fn func(Span) bool) {
	first := start
	c.tree.DescendLessOrEqual(Span{Range: Range{Start: start}}, func(sp Span) bool {
		first = sp.Range.Start
		return false
	})
	c.tree.AscendGreaterOrEqual(Span{Range: Range{Start: first}}, fn)
}

// all returns every span in key order.
func (c *spanCache) all() []Span {
	out := make([]Span, 0, c.tree.Len())
	c.tree.Ascend(func(sp Span) bool {
		out = append(out, sp)
		return true
	})
	return out
}
