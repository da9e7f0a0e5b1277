package registry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// FilenameHandler associates a filename regex pattern with a language name.
type FilenameHandler struct {
	Pattern  string
	Language string
}

// Handler is a compiled FilenameHandler, ready for matching.
type Handler struct {
	re   *regexp.Regexp
	lang string
}

// CompileHandlers pre-compiles the filename handler regexes.  Evaluated in
// order; first match wins.
func CompileHandlers(handlers []FilenameHandler) ([]Handler, error) {
	out := make([]Handler, 0, len(handlers))
	for _, fh := range handlers {
		re, err := regexp.Compile(fh.Pattern)
		if err != nil {
			return nil, fmt.Errorf("filename handler pattern %q: %w", fh.Pattern, err)
		}
		out = append(out, Handler{re: re, lang: fh.Language})
	}
	return out, nil
}

// extensions maps filename extensions to language names, used when no
// handler pattern matches.
var extensions = map[string]string{
	".bash":  "bash",
	".c":     "c",
	".cjs":   "javascript",
	".go":    "go",
	".h":     "c",
	".java":  "java",
	".js":    "javascript",
	".mjs":   "javascript",
	".py":    "python",
	".rs":    "rust",
	".sc":    "scala",
	".scala": "scala",
	".sh":    "bash",
}

// shebangs maps interpreter base-names to language names.
// Version suffixes (python3.11, node20, ...) are stripped before lookup.
var shebangs = map[string]string{
	// Shell
	"ash":  "bash",
	"bash": "bash",
	"dash": "bash",
	"fish": "bash",
	"ksh":  "bash",
	"sh":   "bash",
	"zsh":  "bash",
	// Python
	"python":  "python",
	"python2": "python",
	"python3": "python",
	// JavaScript
	"bun":     "javascript",
	"deno":    "javascript",
	"node":    "javascript",
	"nodejs":  "javascript",
	"ts-node": "javascript",
	// Java
	"java":  "java",
	"jbang": "java",
	// Scala
	"amm":    "scala",
	"scala":  "scala",
	"scala3": "scala",
	// Rust
	"rust-script": "rust",
}

// Detect returns the language name for a file, trying the compiled handler
// patterns first, then the extension table, then a shebang parsed from
// firstLine.  Returns "" when nothing matches.
func Detect(handlers []Handler, name, firstLine string) string {
	for _, h := range handlers {
		if h.re.MatchString(name) {
			return h.lang
		}
	}
	if lang, ok := extensions[strings.ToLower(filepath.Ext(name))]; ok {
		return lang
	}
	return DetectByShebang(firstLine)
}

// DetectByShebang parses the first line of a file and returns a language
// name if it starts with a recognized #! interpreter line, or "" otherwise.
func DetectByShebang(firstLine string) string {
	interp := shebangInterpreter(firstLine)
	if interp == "" {
		return ""
	}
	return langForInterpreter(interp)
}

// shebangInterpreter extracts the interpreter base-name from a shebang line.
//
// It handles the common forms:
//
//	#!/bin/bash
//	#!/usr/bin/env python3
//	#!/usr/bin/env -S scala -classpath lib   (env flags are skipped)
func shebangInterpreter(line string) string {
	if !strings.HasPrefix(line, "#!") {
		return ""
	}
	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return ""
	}
	base := filepath.Base(fields[0])
	if base == "env" {
		// Skip env flags/options (anything starting with '-') and return the
		// first plain argument, which is the actual interpreter.
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				return filepath.Base(f)
			}
		}
		return ""
	}
	return base
}

// langForInterpreter maps an interpreter base-name to a language name.
// It first tries an exact match, then strips trailing version characters
// (digits and dots) and tries again, so "python3.11" → "python".
func langForInterpreter(name string) string {
	if lang, ok := shebangs[name]; ok {
		return lang
	}
	stripped := strings.TrimRightFunc(name, func(r rune) bool {
		return r == '.' || (r >= '0' && r <= '9')
	})
	if stripped != "" && stripped != name {
		if lang, ok := shebangs[stripped]; ok {
			return lang
		}
	}
	return ""
}
