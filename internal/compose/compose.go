// Package compose splices rendered parts into the page template.
//
// A template is plain HTML carrying two kinds of comment markers:
//
//	<!-- Template: intro.md -->   replaced by the part named intro.md
//	<!-- relative -->             replaced by the path back to the output root
package compose

import (
	"strings"

	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
)

const (
	partOpen       = "<!-- Template: "
	partClose      = " -->"
	RelativeMarker = "<!-- relative -->"
)

// PartMarker returns the marker that a part named name fills.
func PartMarker(name string) string {
	return partOpen + name + partClose
}

type token struct {
	text   string // literal text, or the original marker text for a part
	part   string
	isPart bool
}

// Template is a parsed page template. It is immutable and can be executed
// for any number of documents.
type Template struct {
	tokens []token
}

// Parse splits src into literal runs and part markers. A marker opening
// without a matching close is kept as literal text.
func Parse(src string) *Template {
	t := &Template{}
	rest := src
	for {
		i := strings.Index(rest, partOpen)
		if i < 0 {
			break
		}
		j := strings.Index(rest[i+len(partOpen):], partClose)
		if j < 0 {
			break
		}
		end := i + len(partOpen) + j + len(partClose)
		if i > 0 {
			t.tokens = append(t.tokens, token{text: rest[:i]})
		}
		t.tokens = append(t.tokens, token{
			text:   rest[i:end],
			part:   rest[i+len(partOpen) : i+len(partOpen)+j],
			isPart: true,
		})
		rest = rest[end:]
	}
	if rest != "" {
		t.tokens = append(t.tokens, token{text: rest})
	}
	return t
}

// Markers lists the part names the template refers to, in order of
// appearance, duplicates included.
func (t *Template) Markers() []string {
	var names []string
	for _, tok := range t.tokens {
		if tok.isPart {
			names = append(names, tok.part)
		}
	}
	return names
}

// Execute resolves every marker against parts in a single pass. Markers
// without a part are left as they are; parts without a marker are ignored.
// Part contents are inserted verbatim and never scanned for markers.
func (t *Template) Execute(parts model.Parts) string {
	var b strings.Builder
	for _, tok := range t.tokens {
		if tok.isPart {
			if html, ok := parts[tok.part]; ok {
				b.WriteString(html)
				continue
			}
		}
		b.WriteString(tok.text)
	}
	return b.String()
}

// Relative replaces every relative marker in composed text, including any
// that arrived inside a part, with prefix.
func Relative(composed, prefix string) string {
	return strings.ReplaceAll(composed, RelativeMarker, prefix)
}
