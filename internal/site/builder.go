// Package site runs a full generation pass: discover document directories,
// render their parts into the shared template and mirror them under the
// output root.
package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/burgertron6/Guilded-NET.github.io/internal/compose"
	"github.com/burgertron6/Guilded-NET.github.io/internal/config"
	"github.com/burgertron6/Guilded-NET.github.io/internal/document"
	"github.com/burgertron6/Guilded-NET.github.io/internal/logging"
	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
)

type Builder struct {
	cfg      config.Config
	renderer document.PartRenderer
	log      logging.Logger
}

func New(cfg config.Config, renderer document.PartRenderer, log logging.Logger) *Builder {
	if log == nil {
		log = logging.NoOp()
	}
	return &Builder{cfg: cfg, renderer: renderer, log: log}
}

// Build generates one page per document directory under source. An empty
// source falls back to the configured source directory. The first error
// stops the run; pages already written are left in place.
func (b *Builder) Build(source string) (*model.Report, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, wrapInputError(err, codeConfigInvalid, "invalid configuration")
	}

	if source == "" {
		source = b.cfg.SourceDir
	}
	if source == "" {
		source = config.DefaultSourceDir
	}
	root, err := filepath.Abs(source)
	if err != nil {
		return nil, wrapInputError(err, codeSourceNotFound, "could not resolve source directory")
	}
	b.log.Info("compiling source directory", "path", root)

	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return nil, wrapInputError(
			fmt.Errorf("%w: %s", ErrSourceNotFound, root),
			codeSourceNotFound,
			fmt.Sprintf("could not find a source directory, full path: %s", root),
		)
	}

	docs, err := document.Discover(root)
	if err != nil {
		return nil, wrapRunError(err, codeDiscoveryFailed, fmt.Sprintf("failed to discover documents in %s", root))
	}
	b.log.Info("found documents", "count", len(docs))

	templatePath := filepath.Join(root, b.cfg.Template)
	raw, err := os.ReadFile(templatePath)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s", ErrTemplateNotFound, templatePath)
		}
		return nil, wrapInputError(err, codeTemplateNotFound, fmt.Sprintf("could not read template %s", templatePath))
	}
	tmpl := compose.Parse(string(raw))

	out, err := filepath.Abs(b.cfg.OutputDir)
	if err != nil {
		return nil, wrapRunError(err, codeWriteFailed, "could not resolve output directory")
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return nil, wrapRunError(err, codeWriteFailed, fmt.Sprintf("failed to create output directory %s", out))
	}

	report := &model.Report{SourceDir: root, OutputDir: out, Template: templatePath}
	b.log.Info("writing documents", "output", out)
	for _, doc := range docs {
		page, err := b.writePage(root, out, tmpl, doc)
		if err != nil {
			return report, err
		}
		report.Pages = append(report.Pages, page)
	}
	return report, nil
}

func (b *Builder) writePage(root, out string, tmpl *compose.Template, doc document.Document) (*model.Page, error) {
	layout, err := OutputLayout(root, out, doc.Dir, b.cfg.RootName)
	if err != nil {
		return nil, wrapRunError(err, codeBuildFailed, fmt.Sprintf("document %s is outside the source root", doc.Dir))
	}
	b.log.Debug("writing document", "document", layout.RelPath)

	if layout.ParentDir != "" {
		b.log.Debug("creating directory", "path", layout.ParentDir)
		if err := os.MkdirAll(layout.ParentDir, os.ModePerm); err != nil {
			return nil, wrapRunError(err, codeWriteFailed, fmt.Sprintf("failed to create directory %s", layout.ParentDir))
		}
	}

	parts, err := doc.Build(b.renderer)
	if err != nil {
		return nil, wrapRunError(err, codeBuildFailed, fmt.Sprintf("failed to build document %s", layout.RelPath))
	}
	for _, name := range unfilled(tmpl, parts) {
		b.log.Debug("template marker has no part", "document", layout.RelPath, "marker", compose.PartMarker(name))
	}

	html := compose.Relative(tmpl.Execute(parts), layout.Relative)
	if err := os.WriteFile(layout.OutputPath, []byte(html), 0o644); err != nil {
		return nil, wrapRunError(err, codeWriteFailed, fmt.Sprintf("failed to write %s", layout.OutputPath))
	}
	b.log.Info("wrote document", "document", layout.RelPath, "output", layout.OutputPath)

	return &model.Page{
		SourceDir:  doc.Dir,
		RelPath:    layout.RelPath,
		OutputPath: layout.OutputPath,
		Relative:   layout.Relative,
		PartCount:  len(parts),
	}, nil
}

// unfilled returns the template markers that parts has no entry for, once
// each, in template order.
func unfilled(tmpl *compose.Template, parts model.Parts) []string {
	var missing []string
	seen := map[string]bool{}
	for _, name := range tmpl.Markers() {
		if _, ok := parts[name]; ok || seen[name] {
			continue
		}
		seen[name] = true
		missing = append(missing, name)
	}
	return missing
}
