// Package highlight is an incremental syntax-highlighting engine built on
// tree-sitter.  A Highlighter owns one document's text, syntax tree, and an
// ordered cache of highlight spans; after each edit it reparses
// incrementally and patches only the damaged portion of the cache, so
// querying styles for the visible window stays cheap for large files.
package highlight

import (
	"context"
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/cptaffe/highlight/logger"
	"github.com/cptaffe/highlight/registry"
)

// Highlighter holds the highlighting state for a single document.  It is
// not safe for concurrent use; callers serialize access the same way they
// serialize the document's edits.
type Highlighter struct {
	language   string
	parser     *tree_sitter.Parser
	combined   *combinedQuery
	injections map[string]injectionLanguage
	base       *zap.Logger
	log        *zap.Logger

	text  string
	tree  *tree_sitter.Tree
	cache *spanCache
}

// New builds a highlighter for the named (or aliased) language, logging
// through the logger carried by ctx.  It fails when the language is
// unregistered or its combined query does not compile; a highlighter cannot
// operate without its primary query.  Injection query failures are logged
// and skipped, never fatal.
func New(ctx context.Context, language string, reg *registry.Registry) (*Highlighter, error) {
	cfg := reg.Language(language)
	if cfg == nil {
		return nil, fmt.Errorf("language %q is not registered", language)
	}
	combined, err := compileCombinedQuery(cfg)
	if err != nil {
		return nil, err
	}
	base := logger.Named(ctx, "highlight")
	log := base.With(zap.String("language", cfg.Name))
	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(cfg.Grammar); err != nil {
		return nil, fmt.Errorf("language %s: %w", cfg.Name, err)
	}
	return &Highlighter{
		language:   cfg.Name,
		parser:     parser,
		combined:   combined,
		injections: compileInjectionQueries(cfg, reg, log),
		base:       base,
		log:        log,
		cache:      newSpanCache(),
	}, nil
}

// Language returns the canonical name of the highlighter's language.
func (h *Highlighter) Language() string { return h.language }

// Text returns the last document text passed to Update.
func (h *Highlighter) Text() string { return h.text }

// IsEmpty reports whether the highlighter holds no text.
func (h *Highlighter) IsEmpty() bool { return len(h.text) == 0 }

// SetLanguage switches the highlighter to another registered language and
// resets the stored text, tree, and cache.  Switching to the language
// already in use is a no-op.
func (h *Highlighter) SetLanguage(language string, reg *registry.Registry) error {
	cfg := reg.Language(language)
	if cfg == nil {
		return fmt.Errorf("language %q is not registered", language)
	}
	if cfg.Name == h.language {
		return nil
	}
	combined, err := compileCombinedQuery(cfg)
	if err != nil {
		return err
	}
	if err := h.parser.SetLanguage(cfg.Grammar); err != nil {
		return fmt.Errorf("language %s: %w", cfg.Name, err)
	}
	log := h.base.With(zap.String("language", cfg.Name))
	h.language = cfg.Name
	h.combined = combined
	h.injections = compileInjectionQueries(cfg, reg, log)
	h.log = log
	if h.tree != nil {
		h.tree.Close()
		h.tree = nil
	}
	h.text = ""
	h.cache.clear()
	return nil
}

// Close releases the parser and tree.  The highlighter must not be used
// afterwards.
func (h *Highlighter) Close() {
	if h.tree != nil {
		h.tree.Close()
		h.tree = nil
	}
	h.parser.Close()
}

// Update brings the tree and span cache in sync after one text mutation.
// selected is the pre-edit byte range that was replaced and newText the
// text that replaced it; fullText is the complete post-edit document.  The
// first call parses from scratch; later calls reparse incrementally and
// patch only the damaged cache region.  A call where fullText equals the
// stored text is a no-op.
func (h *Highlighter) Update(selected Range, fullText, newText string) {
	if h.text == fullText {
		return
	}
	changedLen := len(newText) - selected.Len()

	var newTree *tree_sitter.Tree
	if h.tree == nil {
		newTree = h.parser.Parse([]byte(fullText), nil)
	} else {
		edited := h.tree.Clone()
		edited.Edit(&tree_sitter.InputEdit{
			StartByte:  uint(selected.Start),
			OldEndByte: uint(selected.End),
			NewEndByte: uint(selected.End + changedLen),
			// Row/column positions are not tracked; byte offsets alone
			// drive node reuse.
			StartPosition:  tree_sitter.Point{},
			OldEndPosition: tree_sitter.Point{},
			NewEndPosition: tree_sitter.Point{},
		})
		newTree = h.parser.Parse([]byte(fullText), edited)
		edited.Close()
	}
	if newTree == nil {
		h.log.Warn("parse produced no tree, keeping previous state")
		return
	}

	incremental := h.tree != nil
	var changed []tree_sitter.Range
	if incremental {
		changed = newTree.ChangedRanges(h.tree)
		h.tree.Close()
	}
	h.tree = newTree
	h.text = fullText

	if incremental {
		h.patchSpans(changed, Range{Start: selected.Start, End: selected.End + changedLen}, changedLen)
	} else {
		h.rebuildSpans()
	}
}

// rebuildSpans recomputes the whole cache from the current tree.
func (h *Highlighter) rebuildSpans() {
	h.cache.clear()
	if h.tree == nil {
		return
	}
	h.scanNode(h.tree.RootNode())
}

// patchSpans repairs the cache after an incremental reparse.  The damage
// window is the union of the parser's changed ranges and the edit's own
// post-edit range; a whitespace-only edit can leave the changed set empty
// while cached spans downstream still need shifting.  The window is widened
// to the smallest syntax node containing it, intersecting spans are
// evicted, later spans re-keyed by changedLen, and the node rescanned.
func (h *Highlighter) patchSpans(changed []tree_sitter.Range, edit Range, changedLen int) {
	if h.tree == nil {
		return
	}
	total := edit
	for _, cr := range changed {
		if int(cr.StartByte) < total.Start {
			total.Start = int(cr.StartByte)
		}
		if int(cr.EndByte) > total.End {
			total.End = int(cr.EndByte)
		}
	}
	if total.IsEmpty() && changedLen == 0 {
		return
	}
	if total.Start < 0 {
		total.Start = 0
	}

	scope := h.tree.RootNode()
	if node := scope.DescendantForByteRange(uint(total.Start), uint(total.End)); node != nil {
		scope = node
	}
	scopeRange := Range{Start: int(scope.StartByte()), End: int(scope.EndByte())}

	h.cache.evict(scopeRange)
	h.cache.shiftFrom(scopeRange.Start, changedLen)
	h.scanNode(scope)
}

// scanNode runs the combined query over node and inserts the resulting
// spans.  Matches classified as injections are delegated to the
// embedded-language handler; captures are consumed left to right, skipping
// any capture that starts before the previous one ended so overlapping
// patterns cannot produce overlapping spans.
func (h *Highlighter) scanNode(node *tree_sitter.Node) {
	source := []byte(h.text)
	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	captureNames := h.combined.query.CaptureNames()

	lastEnd := 0
	matches := qc.Matches(h.combined.query, node, source)
	for m := matches.Next(); m != nil; m = matches.Next() {
		if language, content := h.injectionForMatch(m, source); language != "" {
			if content != nil && int(content.StartByte()) >= lastEnd {
				for _, sp := range h.handleInjection(language, content, source) {
					h.cache.insert(sp)
				}
				lastEnd = int(content.EndByte())
			}
			continue
		}
		for i := range m.Captures {
			capture := &m.Captures[i]
			if int(capture.Index) >= len(captureNames) {
				continue
			}
			start, end := int(capture.Node.StartByte()), int(capture.Node.EndByte())
			if start < lastEnd {
				continue
			}
			h.cache.insert(Span{
				Range:    Range{Start: start, End: end},
				Category: captureNames[capture.Index],
			})
			lastEnd = end
		}
	}
}

// Styles returns an ordered, non-overlapping sequence of styled sub-ranges
// covering exactly [rng.Start, rng.End): cached spans are clipped to the
// range and resolved through theme, gaps between them are filled with the
// default style, and adjacent equal-style runs are merged.  When no span
// overlaps the range, a single default-styled run covering it is returned.
func (h *Highlighter) Styles(rng Range, theme Theme) []StyledRange {
	var out []StyledRange
	cursor := rng.Start
	h.cache.from(rng.Start, func(sp Span) bool {
		if sp.Range.Start >= rng.End {
			return false
		}
		clipped := sp.Range.clip(rng)
		if clipped.IsEmpty() {
			return true
		}
		if cursor < clipped.Start {
			out = append(out, StyledRange{Range: Range{Start: cursor, End: clipped.Start}})
		}
		out = append(out, StyledRange{Range: clipped, Style: resolveStyle(theme, sp.Category)})
		cursor = clipped.End
		return true
	})
	if len(out) == 0 {
		return []StyledRange{{Range: rng}}
	}
	if cursor < rng.End {
		out = append(out, StyledRange{Range: Range{Start: cursor, End: rng.End}})
	}
	return uniqueStyles(out)
}

// Spans returns the raw cached spans overlapping rng, in order.  Useful for
// callers that want category names rather than resolved styles.
func (h *Highlighter) Spans(rng Range) []Span {
	var out []Span
	h.cache.from(rng.Start, func(sp Span) bool {
		if sp.Range.Start >= rng.End {
			return false
		}
		if sp.Range.intersects(rng) {
			out = append(out, sp)
		}
		return true
	})
	return out
}
