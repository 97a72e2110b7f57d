// Package markdown renders document parts to HTML with a single goldmark
// engine configured once per process.
package markdown

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
)

type Options struct {
	// FrontMatter strips YAML front matter from .md files and exposes its
	// keys as "<file>:<key>" parts.
	FrontMatter bool
	// HighlightStyle is a chroma style name; empty disables highlighting.
	HighlightStyle string
}

// Converter is safe for concurrent use; the engine is never mutated after New.
type Converter struct {
	engine goldmark.Markdown
	opts   Options
}

func New(opts Options) *Converter {
	// GFM covers tables, autolinks, strikethrough and task lists.
	exts := []goldmark.Extender{
		extension.GFM,
		extension.Footnote,
		extension.DefinitionList,
	}
	if opts.HighlightStyle != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(opts.HighlightStyle),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithAttribute(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithUnsafe(),
		),
	)

	return &Converter{engine: md, opts: opts}
}

// Render converts Markdown source to HTML. Conversion never fails the build:
// whatever goldmark managed to write before an error is returned.
func (c *Converter) Render(source string) string {
	return c.render([]byte(source))
}

func (c *Converter) render(source []byte) string {
	var buf bytes.Buffer
	_ = c.engine.Convert(source, &buf)
	return buf.String()
}

// RenderParts renders one file of a document directory. Every file yields a
// part under its own name; with front matter enabled, .md files also yield
// their metadata parts.
func (c *Converter) RenderParts(name string, source []byte) model.Parts {
	if !c.opts.FrontMatter || !IsMarkdown(name) {
		return model.Parts{name: c.render(source)}
	}

	meta, body := splitFrontMatter(source)
	parts := metaParts(name, meta)
	parts[name] = c.render(body)
	return parts
}

// IsMarkdown reports whether name carries a .md extension, ignoring case.
func IsMarkdown(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".md"
}
