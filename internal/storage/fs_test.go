package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func tempRepo(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempRepo(t)
	content := []byte("---\ndescription: \"x\"\n---\nBody\n")
	if err := s.Write("articles/ohms-law/article.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("articles/ohms-law/article.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestCopy(t *testing.T) {
	s := tempRepo(t)
	_ = s.Write("images/power/diagram.png", []byte("png-bytes"))
	if err := s.Copy("images/power/diagram.png", "articles_new/ohms-law/images/diagram.png"); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	got, err := s.Read("articles_new/ohms-law/images/diagram.png")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "png-bytes" {
		t.Errorf("content = %q", got)
	}
	if _, err := s.Read("images/power/diagram.png"); err != nil {
		t.Errorf("source should survive copy: %v", err)
	}
}

func TestCopyMissingSource(t *testing.T) {
	s := tempRepo(t)
	if err := s.Copy("images/none.png", "out/none.png"); err == nil {
		t.Error("expected error copying missing file")
	}
}

func TestRenameDirectory(t *testing.T) {
	s := tempRepo(t)
	_ = s.Write("articles/power/a.md", []byte("a"))
	if err := s.Rename("articles", "articles_old"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	ok, err := s.IsDir("articles_old/power")
	if err != nil || !ok {
		t.Errorf("IsDir(articles_old/power) = %v, %v", ok, err)
	}
	ok, err = s.Exists("articles")
	if err != nil || ok {
		t.Errorf("Exists(articles) = %v, %v, want false", ok, err)
	}
}

func TestFilesRecursiveSorted(t *testing.T) {
	s := tempRepo(t)
	_ = s.Write("images/power/b.png", []byte("b"))
	_ = s.Write("images/power/a.png", []byte("a"))
	_ = s.Write("images/power/sub/c.png", []byte("c"))

	files, err := s.Files("images/power")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{"a.png", "b.png", "sub/c.png"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestFilesMissingDir(t *testing.T) {
	s := tempRepo(t)
	files, err := s.Files("images/nowhere")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want none", files)
	}
}

func TestRemoveAllRefusesRoot(t *testing.T) {
	s := tempRepo(t)
	if err := s.RemoveAll("."); err == nil {
		t.Error("expected error removing root")
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempRepo(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.md",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoLeftovers(t *testing.T) {
	s := tempRepo(t)
	_ = s.Write("dates.yaml", []byte("original"))
	if err := s.Write("dates.yaml", []byte("updated")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("dates.yaml")
	if string(got) != "updated" {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".folio-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestDryRunSuppressesMutations(t *testing.T) {
	s := tempRepo(t)
	_ = s.Write("articles/power/a.md", []byte("a"))
	d := NewDryRun(s, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if err := d.Write("articles_new/a/article.md", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := d.Rename("articles", "articles_old"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if err := d.RemoveAll("articles"); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if ok, _ := s.Exists("articles_new"); ok {
		t.Error("dry-run write reached disk")
	}
	if ok, _ := s.Exists("articles/power/a.md"); !ok {
		t.Error("dry-run rename or remove reached disk")
	}
	got, err := d.Read("articles/power/a.md")
	if err != nil || string(got) != "a" {
		t.Errorf("dry-run read = %q, %v", got, err)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/folio-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}

func TestNewFS_FileNotDir(t *testing.T) {
	f, _ := os.CreateTemp("", "folio-test-*")
	_ = f.Close()
	defer os.Remove(f.Name())
	_, err := NewFS(f.Name())
	if err == nil {
		t.Error("expected error when root is a file")
	}
}
