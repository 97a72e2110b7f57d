package markdown

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"

	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
)

var yamlFormat = &frontmatter.Format{
	Start:     "---",
	End:       "---",
	Unmarshal: yaml.Unmarshal,
}

// splitFrontMatter returns the metadata and the body that follows it. Sources
// without front matter, or with front matter that does not parse, come back
// whole with empty metadata.
func splitFrontMatter(source []byte) (map[string]any, []byte) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFormat)
	if err != nil {
		return map[string]any{}, source
	}
	return meta, body
}

// metaParts exposes scalar front matter values as "<file>:<key>" parts.
// "<file>:title" is always present, derived from the file name when the
// front matter has none.
func metaParts(name string, meta map[string]any) model.Parts {
	parts := model.Parts{}
	for key, value := range meta {
		s, ok := scalar(value)
		if !ok {
			continue
		}
		parts[name+":"+key] = html.EscapeString(s)
	}

	if title, ok := meta["title"].(string); !ok || strings.TrimSpace(title) == "" {
		parts[name+":title"] = html.EscapeString(titleFromName(name))
	}
	return parts
}

func scalar(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case int, int64, float64, bool:
		return fmt.Sprint(v), true
	default:
		return "", false
	}
}

func titleFromName(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return cases.Title(language.English).String(stem)
}
