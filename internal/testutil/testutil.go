// Package testutil provides shared test helpers for building content repositories.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// Repo creates a temporary repository directory with a storage.Provider.
func Repo(t *testing.T) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// WriteFiles writes path → content pairs below root.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// ReadFile returns the content of root/rel, failing the test if it is missing.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether root/rel exists.
func Exists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}

// Logger returns a logger that discards everything below error.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Layout is the default repository layout.
func Layout() models.Layout {
	return models.Layout{
		ArticlesDir:    "articles",
		ImagesDir:      "images",
		IconsDir:       "categoryIcons",
		LogosDir:       "categoryLogos",
		WidgetsDir:     "widgets",
		CategoriesFile: "articles/categories.yaml",
		DatesFile:      "dates.yaml",
		MappingFile:    "category-article-mapping.yml",
	}
}

// LegacyRepo is a small category-keyed repository covering shared images,
// multi-category articles, orphans and date duplicates.
var LegacyRepo = map[string]string{
	"articles/categories.yaml": `- id: power
  title: Power
  description: Power electronics
  logo: /images/categoryLogos/power.svg
- id: basics
  title: Basics
  description: "Fundamentals: start here"
- id: thermal
  title: Thermal
  description: Heat
  hideInProd: true
- id: empty
  title: Empty
  description: Nothing yet
`,
	"articles/power/ohms-law.md": `---
id: ohms-law
title: Ohm's Law and Everything Around It
description: "Voltage, current: resistance"
---
# Ohm

![diagram](/images/power/diagram.png)
<img src="http://localhost:3000/images/Power/schematic.svg" />
`,
	"articles/power/buck.md": `---
id: buck
title: Buck Converter
description: Step down
hideInProd: true
---
![diagram](/images/power/diagram.png)
![missing](/images/power/missing.png)
`,
	"articles/basics/ohms-law.md": `---
id: ohms-law
title: Ohm Again
description: duplicate
---
![diagram](/images/power/diagram.png)
`,
	"articles/thermal/heat-transfer.md": `---
id: heat-transfer
title: Heat Transfer
description: Conduction
---
No images here.
`,
	"images/power/diagram.png":       "diagram-bytes",
	"images/power/schematic.svg":     "<svg/>",
	"images/thermal/unused.png":      "unused-bytes",
	"images/stray/lost.png":          "lost-bytes",
	"images/categoryLogos/power.svg": "<svg>power</svg>",
	"images/activity.svg":            "<svg>activity</svg>",
	"dates.yaml": `"power/ohms-law": "2022-01-01"
"basics/ohms-law": "2022-06-01"
"power/buck": "2023-03-03"
`,
}
