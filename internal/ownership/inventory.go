package ownership

import (
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/starford/folio/internal/storage"
)

// ImageDir is an on-disk image directory and the files below it.
type ImageDir struct {
	Name  string   // directory name as found on disk
	Files []string // relative to the directory, slash-separated
}

// Inventory lists the legacy image directories keyed case-insensitively.
type Inventory struct {
	Dirs []ImageDir
}

// Lookup finds a directory by case-insensitive name.
func (inv *Inventory) Lookup(dir string) (ImageDir, bool) {
	for _, d := range inv.Dirs {
		if strings.EqualFold(d.Name, dir) {
			return d, true
		}
	}
	return ImageDir{}, false
}

// ScanInventory enumerates every directory directly under imagesDir except
// the excluded ones (the category logo directory), recursively listing their
// files. A missing imagesDir yields an empty inventory.
func ScanInventory(store storage.Provider, imagesDir string, exclude []string, logger *slog.Logger) (*Inventory, error) {
	inv := &Inventory{}
	ok, err := store.IsDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("ownership: %w", err)
	}
	if !ok {
		logger.Warn("ownership: images directory not found", slog.String("path", imagesDir))
		return inv, nil
	}

	entries, err := store.ReadDir(imagesDir)
	if err != nil {
		return nil, fmt.Errorf("ownership: %w", err)
	}

	seen := make(map[string]string)
	for _, e := range entries {
		if !e.IsDir() || slices.Contains(exclude, e.Name()) {
			continue
		}
		lower := strings.ToLower(e.Name())
		if prev, dup := seen[lower]; dup {
			logger.Warn("ownership: image directories differ only by case, keeping first",
				slog.String("kept", prev), slog.String("ignored", e.Name()))
			continue
		}
		seen[lower] = e.Name()

		files, err := store.Files(path.Join(imagesDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ownership: %w", err)
		}
		inv.Dirs = append(inv.Dirs, ImageDir{Name: e.Name(), Files: files})
	}
	return inv, nil
}
