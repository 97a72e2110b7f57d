package document

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/burgertron6/Guilded-NET.github.io/internal/markdown"
	"github.com/burgertron6/Guilded-NET.github.io/internal/model"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func dirs(docs []Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Dir)
	}
	return out
}

func TestDiscover_FindsOnlyDirectoriesWithDirectMarkdown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "template.html"), "<html></html>")
	writeFile(t, filepath.Join(root, "guides", "intro.md"), "# Intro")
	writeFile(t, filepath.Join(root, "guides", "setup", "README.MD"), "# Setup")
	writeFile(t, filepath.Join(root, "assets", "style.css"), "body{}")
	writeFile(t, filepath.Join(root, "assets", "deep", "notes.md"), "notes")
	writeFile(t, filepath.Join(root, "empty", "nothing.txt"), "x")
	if err := os.MkdirAll(filepath.Join(root, "bare"), 0o755); err != nil {
		t.Fatal(err)
	}
	// a directory named like a markdown file is not a markdown file
	if err := os.MkdirAll(filepath.Join(root, "trap", "fake.md"), 0o755); err != nil {
		t.Fatal(err)
	}

	docs, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(root, "assets", "deep"),
		filepath.Join(root, "guides"),
		filepath.Join(root, "guides", "setup"),
	}
	if got := dirs(docs); !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_RootIsDocumentBeforeChildren(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "index.md"), "# Hi")
	writeFile(t, filepath.Join(root, "a", "page.md"), "a")
	writeFile(t, filepath.Join(root, "a", "b", "page.md"), "b")

	docs, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{root, filepath.Join(root, "a"), filepath.Join(root, "a", "b")}
	if got := dirs(docs); !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_EmptyTree(t *testing.T) {
	docs, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %v", dirs(docs))
	}
}

func TestDiscover_MissingRoot(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
}

func TestDiscover_FollowsSymlinkedDirectories(t *testing.T) {
	root := t.TempDir()
	shared := t.TempDir()
	writeFile(t, filepath.Join(shared, "a.md"), "a")
	writeFile(t, filepath.Join(shared, "nested", "b.md"), "b")
	symlink(t, shared, filepath.Join(root, "linked"))

	docs, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{
		filepath.Join(root, "linked"),
		filepath.Join(root, "linked", "nested"),
	}
	if got := dirs(docs); !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscover_StopsAtSymlinkCycles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "page.md"), "a")
	symlink(t, root, filepath.Join(root, "a", "loop"))

	docs, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{filepath.Join(root, "a")}
	if got := dirs(docs); !reflect.DeepEqual(got, want) {
		t.Fatalf("Discover() = %v, want %v", got, want)
	}
}

func TestBuild_SkipsSymlinkedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "a")
	symlink(t, t.TempDir(), filepath.Join(dir, "other.md"))

	parts, err := Document{Dir: dir}.Build(stubRenderer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := parts["other.md"]; ok || len(parts) != 2 {
		t.Fatalf("Build() = %#v, want only a.md parts", parts)
	}
}

func TestBuild_ConvertsEveryDirectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")
	writeFile(t, filepath.Join(dir, "b.txt"), "plain text")
	writeFile(t, filepath.Join(dir, "child", "c.md"), "# C")

	conv := markdown.New(markdown.Options{})
	parts, err := Document{Dir: dir}.Build(conv)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := model.Parts{
		"a.md":  conv.Render("# A"),
		"b.txt": conv.Render("plain text"),
	}
	if !reflect.DeepEqual(parts, want) {
		t.Fatalf("Build() = %#v, want %#v", parts, want)
	}
	if !strings.Contains(parts["b.txt"], "<p>plain text</p>") {
		t.Fatalf("non-markdown file should still be rendered, got %q", parts["b.txt"])
	}
}

func TestBuild_FreshMappingEachCall(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "# A")
	conv := markdown.New(markdown.Options{})
	doc := Document{Dir: dir}

	first, err := doc.Build(conv)
	if err != nil {
		t.Fatal(err)
	}
	first["a.md"] = "mutated"

	second, err := doc.Build(conv)
	if err != nil {
		t.Fatal(err)
	}
	if second["a.md"] == "mutated" {
		t.Fatal("Build reused a previous mapping")
	}
}

type stubRenderer struct{}

func (stubRenderer) RenderParts(name string, source []byte) model.Parts {
	return model.Parts{name: strings.ToUpper(string(source)), name + ":len": "n"}
}

func TestBuild_MergesEveryPartARendererReturns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.md"), "hey")

	parts, err := Document{Dir: dir}.Build(stubRenderer{})
	if err != nil {
		t.Fatal(err)
	}
	want := model.Parts{"x.md": "HEY", "x.md:len": "n"}
	if !reflect.DeepEqual(parts, want) {
		t.Fatalf("Build() = %#v, want %#v", parts, want)
	}
}

func TestBuild_MissingDirectory(t *testing.T) {
	_, err := Document{Dir: filepath.Join(t.TempDir(), "gone")}.Build(stubRenderer{})
	if err == nil {
		t.Fatal("expected error for deleted directory")
	}
}
