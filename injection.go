package highlight

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// injectionForMatch classifies a query match as an injection.  It returns
// the embedded language's name and the content node to re-parse, either of
// which may be absent: the name comes from an injection.language capture's
// text or, failing that, from the pattern's #set! properties
// (injection.language, injection.self, injection.parent).
func (h *Highlighter) injectionForMatch(m *tree_sitter.QueryMatch, source []byte) (string, *tree_sitter.Node) {
	cq := h.combined
	if cq.injectionContentCaptureIndex == nil && cq.injectionLanguageCaptureIndex == nil {
		return "", nil
	}

	var language string
	var content *tree_sitter.Node
	for i := range m.Captures {
		capture := &m.Captures[i]
		index := uint(capture.Index)
		switch {
		case cq.injectionLanguageCaptureIndex != nil && index == *cq.injectionLanguageCaptureIndex:
			language = capture.Node.Utf8Text(source)
		case cq.injectionContentCaptureIndex != nil && index == *cq.injectionContentCaptureIndex:
			content = &capture.Node
		}
	}

	for _, prop := range cq.query.PropertySettings(m.PatternIndex) {
		switch prop.Key {
		case propertyInjectionLanguage:
			if language == "" && prop.Value != nil {
				language = *prop.Value
			}
		case propertyInjectionSelf:
			if language == "" {
				language = h.language
			}
		case propertyInjectionParent:
			// Injections are parsed one layer deep; there is no parent
			// layer whose language could be inherited here.
		case propertyInjectionIncludeChildren:
			// The content node's full extent is reparsed either way.
		}
	}

	return language, content
}

// handleInjection parses the embedded-language region under node with the
// injection language's own grammar and returns its highlight spans,
// translated into outer-document byte offsets.  Unknown languages, failed
// parses, and out-of-bounds nodes all degrade to no spans for the region;
// the outer document is never affected.
func (h *Highlighter) handleInjection(language string, node *tree_sitter.Node, source []byte) []Span {
	inj, ok := h.injections[language]
	if !ok {
		return nil
	}

	start, end := int(node.StartByte()), int(node.EndByte())
	if start >= end || end > len(source) {
		return nil
	}
	content := source[start:end]

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(inj.grammar); err != nil {
		return nil
	}
	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	captureNames := inj.query.CaptureNames()

	var spans []Span
	lastEnd := start
	matches := qc.Matches(inj.query, tree.RootNode(), content)
	for m := matches.Next(); m != nil; m = matches.Next() {
		for i := range m.Captures {
			capture := &m.Captures[i]
			if int(capture.Index) >= len(captureNames) {
				continue
			}
			r := Range{
				Start: start + int(capture.Node.StartByte()),
				End:   start + int(capture.Node.EndByte()),
			}
			if r.Start < lastEnd {
				continue
			}
			if r.End > end {
				break
			}
			spans = append(spans, Span{Range: r, Category: captureNames[capture.Index]})
			lastEnd = r.End
		}
	}
	return spans
}
