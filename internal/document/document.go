// Package document finds document directories and turns their files into
// named HTML parts.
package document

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/burgertron6/Guilded-NET.github.io/internal/markdown"
	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
)

// PartRenderer converts the contents of one file into the parts it
// contributes to its document.
type PartRenderer interface {
	RenderParts(name string, source []byte) model.Parts
}

// Document is a directory holding at least one Markdown file.
type Document struct {
	Dir string
}

// Build reads every file directly inside the document directory and renders
// it, whatever its extension. Subdirectories are not visited.
func (d Document) Build(r PartRenderer) (model.Parts, error) {
	entries, err := os.ReadDir(d.Dir)
	if err != nil {
		return nil, fmt.Errorf("reading document directory %s: %w", d.Dir, err)
	}

	parts := model.Parts{}
	for _, e := range entries {
		if isDir(d.Dir, e) {
			continue
		}
		path := filepath.Join(d.Dir, e.Name())
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading part %s: %w", path, err)
		}
		for name, html := range r.RenderParts(e.Name(), source) {
			parts[name] = html
		}
	}
	return parts, nil
}

// isDir reports whether e is a directory, following symlinks. A dangling
// link counts as a file.
func isDir(parent string, e os.DirEntry) bool {
	if e.Type()&os.ModeSymlink == 0 {
		return e.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, e.Name()))
	return err == nil && info.IsDir()
}

func hasMarkdown(dir string, entries []os.DirEntry) bool {
	for _, e := range entries {
		if markdown.IsMarkdown(e.Name()) && !isDir(dir, e) {
			return true
		}
	}
	return false
}

// Discover walks root depth-first and returns every document directory,
// parents before their children and siblings in name order. Symlinked
// directories are followed, except links back to one of their ancestors.
func Discover(root string) ([]Document, error) {
	return discover(root, map[string]bool{})
}

func discover(dir string, visited map[string]bool) ([]Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, err
	}
	if visited[resolved] {
		return nil, nil
	}
	visited[resolved] = true
	defer delete(visited, resolved)

	var docs []Document
	if hasMarkdown(dir, entries) {
		docs = append(docs, Document{Dir: dir})
	}
	for _, e := range entries {
		if !isDir(dir, e) {
			continue
		}
		sub, err := discover(filepath.Join(dir, e.Name()), visited)
		if err != nil {
			return nil, err
		}
		docs = append(docs, sub...)
	}
	return docs, nil
}
