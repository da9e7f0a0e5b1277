package highlight

import (
	"fmt"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	"go.uber.org/zap"

	"github.com/cptaffe/highlight/registry"
)

// Special capture names and pattern properties recognized in injection and
// locals query sections.  These follow the tree-sitter highlight query
// conventions.
const (
	captureInjectionContent     = "injection.content"
	captureInjectionLanguage    = "injection.language"
	captureLocalScope           = "local.scope"
	captureLocalDefinition      = "local.definition"
	captureLocalDefinitionValue = "local.definition-value"
	captureLocalReference       = "local.reference"

	propertyInjectionLanguage        = "injection.language"
	propertyInjectionSelf            = "injection.self"
	propertyInjectionParent          = "injection.parent"
	propertyInjectionIncludeChildren = "injection.include-children"
	propertyLocal                    = "local"
)

// combinedQuery is a language's single compiled pattern matcher: the
// injections, locals, and highlights query sources concatenated and
// compiled once (cheaper than three queries), plus the pattern-index
// boundaries between the three sections and the numeric indices of the
// special captures.
type combinedQuery struct {
	query *tree_sitter.Query

	// localsPatternIndex is the number of patterns in the injections
	// section; highlightsPatternIndex the number in injections+locals.
	// Pattern IDs at or above highlightsPatternIndex are highlight
	// patterns proper.
	localsPatternIndex     uint
	highlightsPatternIndex uint

	// nonLocalVariablePatterns flags, per pattern, a negated #is? "local"
	// property predicate.  Kept alongside the local.* capture indices for
	// a future local-variable suppression pass; nothing consults it when
	// building spans yet.
	nonLocalVariablePatterns []bool

	injectionContentCaptureIndex  *uint
	injectionLanguageCaptureIndex *uint
	localScopeCaptureIndex        *uint
	localDefCaptureIndex          *uint
	localDefValueCaptureIndex     *uint
	localRefCaptureIndex          *uint
}

// compileCombinedQuery concatenates cfg's three query sources, compiles
// them as one query, and classifies each compiled pattern by comparing its
// source offset against the recorded section boundaries.
func compileCombinedQuery(cfg *registry.LanguageConfig) (*combinedQuery, error) {
	src := cfg.Injections
	localsOffset := uint(len(src))
	src += cfg.Locals
	highlightsOffset := uint(len(src))
	src += cfg.Highlights

	query, qerr := tree_sitter.NewQuery(cfg.Grammar, src)
	if qerr != nil {
		return nil, fmt.Errorf("language %s: query error at offset %d: %s",
			cfg.Name, qerr.Offset, qerr.Message)
	}

	cq := &combinedQuery{query: query}
	for i := uint(0); i < query.PatternCount(); i++ {
		patternOffset := query.StartByteForPattern(i)
		if patternOffset < highlightsOffset {
			cq.highlightsPatternIndex++
		}
		if patternOffset < localsOffset {
			cq.localsPatternIndex++
		}
	}

	cq.nonLocalVariablePatterns = make([]bool, query.PatternCount())
	for i := uint(0); i < query.PatternCount(); i++ {
		for _, pred := range query.PropertyPredicates(i) {
			if !pred.Positive && pred.Property.Key == propertyLocal {
				cq.nonLocalVariablePatterns[i] = true
			}
		}
	}

	for i, name := range query.CaptureNames() {
		idx := uint(i)
		switch name {
		case captureInjectionContent:
			cq.injectionContentCaptureIndex = &idx
		case captureInjectionLanguage:
			cq.injectionLanguageCaptureIndex = &idx
		case captureLocalScope:
			cq.localScopeCaptureIndex = &idx
		case captureLocalDefinition:
			cq.localDefCaptureIndex = &idx
		case captureLocalDefinitionValue:
			cq.localDefValueCaptureIndex = &idx
		case captureLocalReference:
			cq.localRefCaptureIndex = &idx
		}
	}

	return cq, nil
}

// injectionLanguage is a precompiled highlights-only query for a language
// that may be embedded in the outer document, paired with its grammar for
// the fresh sub-parse each occurrence gets.
type injectionLanguage struct {
	grammar *tree_sitter.Language
	query   *tree_sitter.Query
}

// compileInjectionQueries builds the injection table for cfg.  Languages
// that are unregistered or whose highlights query fails to compile are
// logged and skipped; they never fail the outer construction.  Entries are
// keyed under both the declared and the canonical name so that language
// names read out of the document resolve either way.
func compileInjectionQueries(cfg *registry.LanguageConfig, reg *registry.Registry, log *zap.Logger) map[string]injectionLanguage {
	table := make(map[string]injectionLanguage, len(cfg.InjectionLanguages))
	for _, name := range cfg.InjectionLanguages {
		inj := reg.Language(name)
		if inj == nil {
			log.Warn("injection language not registered", zap.String("language", name))
			continue
		}
		q, qerr := tree_sitter.NewQuery(inj.Grammar, inj.Highlights)
		if qerr != nil {
			log.Warn("injection query failed to compile",
				zap.String("language", name),
				zap.Uint("offset", uint(qerr.Offset)),
				zap.String("message", qerr.Message))
			continue
		}
		entry := injectionLanguage{grammar: inj.Grammar, query: q}
		table[name] = entry
		if inj.Name != name {
			table[inj.Name] = entry
		}
	}
	return table
}
