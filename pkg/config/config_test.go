package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type sample struct {
	Root  string `yaml:"root"`
	Width int    `yaml:"width"`
}

func (s *sample) Validate() error {
	if s.Width < 1 {
		return errors.New("width must be positive")
	}
	return nil
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("FOLIO_TEST_ROOT", "/srv/content")
	p := writeFile(t, "root: ${FOLIO_TEST_ROOT}\nwidth: 12\n")

	got := sample{Width: 20}
	if err := Load(p, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Root != "/srv/content" || got.Width != 12 {
		t.Errorf("got %+v", got)
	}
}

func TestLoad_ValidationFails(t *testing.T) {
	p := writeFile(t, "width: 0\n")
	if err := Load(p, &sample{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &sample{Width: 1}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadOptional_MissingKeepsDefaults(t *testing.T) {
	got := sample{Root: ".", Width: 20}
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &got); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if got.Root != "." || got.Width != 20 {
		t.Errorf("defaults changed: %+v", got)
	}
}

func TestLoadOptional_MissingStillValidates(t *testing.T) {
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &sample{}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadOptional_OverridesPartially(t *testing.T) {
	p := writeFile(t, "root: repo\n")
	got := sample{Root: ".", Width: 20}
	if err := LoadOptional(p, &got); err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if got.Root != "repo" || got.Width != 20 {
		t.Errorf("got %+v", got)
	}
}

func TestLoad_UnknownKey(t *testing.T) {
	p := writeFile(t, "width: 3\nwdith: 4\n")
	if err := Load(p, &sample{}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	p := writeFile(t, "")
	got := sample{Width: 5}
	if err := Load(p, &got); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Width != 5 {
		t.Errorf("width = %d, want 5", got.Width)
	}
}
