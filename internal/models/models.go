// Package models defines the domain types for folio.
package models

import (
	"path"
	"strings"
)

// Category is one entry of the legacy categories.yaml list.
type Category struct {
	ID          string
	Title       string
	Description string
	Logo        string
	HideInProd  bool
}

// Article is a parsed legacy article document. A slug that appears under
// several categories is represented by a single Article (first occurrence).
type Article struct {
	Slug        string
	Title       string
	Description string
	HideInProd  bool
	Body        string
	Category    string // category the article was first loaded from
	SourcePath  string // repository-relative path of the legacy document
}

// ImageRef is an image path found inside an article body.
// Dir keeps the casing used in the body.
type ImageRef struct {
	Dir      string
	Filename string
}

// Key returns the canonical ownership key of the reference.
func (r ImageRef) Key() ImageKey {
	return NewImageKey(r.Dir, r.Filename)
}

// Contained reports whether the reference stays inside its image directory:
// a plain directory name and a clean relative filename.
func (r ImageRef) Contained() bool {
	if r.Dir == "." || r.Dir == ".." || r.Filename == "" {
		return false
	}
	f := r.Filename
	return path.Clean(f) == f && f != ".." && !strings.HasPrefix(f, "../") && !path.IsAbs(f)
}

// ImageKey is lowercase(directory) + "/" + filename.
type ImageKey string

// NewImageKey builds an ImageKey. Filename may contain "/" for nested images.
func NewImageKey(dir, filename string) ImageKey {
	return ImageKey(strings.ToLower(dir) + "/" + filename)
}

// Dir returns the lowercased directory component.
func (k ImageKey) Dir() string {
	dir, _, _ := strings.Cut(string(k), "/")
	return dir
}

// Filename returns everything after the directory component.
func (k ImageKey) Filename() string {
	_, file, _ := strings.Cut(string(k), "/")
	return file
}

func (k ImageKey) String() string {
	return string(k)
}

// Layout holds the repository-relative locations folio reads and writes.
type Layout struct {
	ArticlesDir    string
	ImagesDir      string
	IconsDir       string
	LogosDir       string // legacy icon directory name under ImagesDir
	WidgetsDir     string
	CategoriesFile string
	DatesFile      string
	MappingFile    string
}
