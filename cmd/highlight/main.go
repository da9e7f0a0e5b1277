// highlight: syntax-highlight files to ANSI on stdout via tree-sitter.
//
// The language is taken from --lang, or detected per file from the
// configured filename handlers, the extension, and a shebang line.  Files
// with no detected language are written through unstyled.
//
// Usage:
//
//	highlight [--config config.yaml] [--theme dark|light|theme.yaml] [--lang go] file...
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/cptaffe/highlight"
	"github.com/cptaffe/highlight/config"
	"github.com/cptaffe/highlight/logger"
	"github.com/cptaffe/highlight/registry"
	"github.com/cptaffe/highlight/theme"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yaml")
	themeName := flag.String("theme", "", "embedded theme name or path to a theme YAML file")
	lang := flag.String("lang", "", "language name (default: detect per file)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	var l *zap.Logger
	var err error
	if *verbose {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	zap.ReplaceGlobals(l)
	defer l.Sync() //nolint:errcheck

	ctx := logger.NewContext(context.Background(), l)

	var cfg config.Config
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			l.Fatal("load config", zap.Error(err))
		}
		cfg = *loaded
	}

	handlers, err := registry.CompileHandlers(cfg.Handlers())
	if err != nil {
		l.Fatal("compile filename handlers", zap.Error(err))
	}

	th, err := loadTheme(*themeName, cfg.Theme)
	if err != nil {
		l.Fatal("load theme", zap.Error(err))
	}

	reg := registry.New()
	out := termenv.NewOutput(os.Stdout)

	exit := 0
	for _, name := range flag.Args() {
		if err := highlightFile(ctx, out, reg, handlers, th, name, *lang); err != nil {
			l.Error("highlight", zap.String("file", name), zap.Error(err))
			exit = 1
		}
	}
	os.Exit(exit)
}

// loadTheme resolves the theme: the flag wins over the config entry, and a
// value naming an existing file (or containing a path separator) is loaded
// from disk, anything else from the embedded set.  Empty means "dark".
func loadTheme(flagValue, cfgValue string) (*theme.Theme, error) {
	name := flagValue
	if name == "" {
		name = cfgValue
	}
	if name == "" {
		name = "dark"
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return theme.Load(name)
	}
	return theme.Default(name)
}

func highlightFile(ctx context.Context, out *termenv.Output, reg *registry.Registry, handlers []registry.Handler, th *theme.Theme, name, langFlag string) error {
	data, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	text := string(data)

	lang := langFlag
	if lang == "" {
		firstLine, _, _ := strings.Cut(text, "\n")
		lang = registry.Detect(handlers, name, firstLine)
	}
	if lang == "" {
		_, err := io.WriteString(out, text)
		return err
	}

	h, err := highlight.New(ctx, lang, reg)
	if err != nil {
		return err
	}
	defer h.Close()
	h.Update(highlight.Range{}, text, text)

	for _, sr := range h.Styles(highlight.Range{Start: 0, End: len(text)}, th) {
		render(out, text[sr.Range.Start:sr.Range.End], sr.Style)
	}
	return nil
}

// render writes text with st applied, spelled in the terminal's color
// profile.
func render(out *termenv.Output, text string, st highlight.Style) {
	s := out.String(text)
	if st.Color != "" {
		s = s.Foreground(out.Color(st.Color))
	}
	if st.Background != "" {
		s = s.Background(out.Color(st.Background))
	}
	if st.Bold {
		s = s.Bold()
	}
	if st.Italic {
		s = s.Italic()
	}
	if st.Underline {
		s = s.Underline()
	}
	fmt.Fprint(out, s.String())
}
