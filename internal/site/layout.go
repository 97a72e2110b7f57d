package site

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout describes where a document directory lands in the output tree.
type Layout struct {
	RelPath    string // document directory relative to the source root
	OutputPath string // <out>/<RelPath>.html
	ParentDir  string // output directory to create; empty when it is the output root
	Relative   string // forward-slash path from the output file back to the output root
}

// OutputLayout mirrors dir, a directory under root, into out. The source root
// itself is written as <out>/<rootName>.html; rootName "." gives the legacy
// "..html".
func OutputLayout(root, out, dir, rootName string) (Layout, error) {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return Layout{}, err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return Layout{}, fmt.Errorf("%s is not inside %s", dir, root)
	}

	if rel == "." {
		return Layout{
			RelPath:    rel,
			OutputPath: filepath.Join(out, rootName+".html"),
			Relative:   "./",
		}, nil
	}

	layout := Layout{
		RelPath:    rel,
		OutputPath: filepath.Join(out, rel+".html"),
		Relative:   "./",
	}

	parent := filepath.Dir(rel)
	if parent == "." {
		return layout, nil
	}

	layout.ParentDir = filepath.Join(out, parent)
	back, err := filepath.Rel(layout.ParentDir, out)
	if err != nil {
		return Layout{}, err
	}
	layout.Relative = filepath.ToSlash(back) + "/"
	return layout, nil
}
