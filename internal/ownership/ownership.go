// Package ownership assigns every referenced or on-disk image to exactly one
// article.
package ownership

import (
	"log/slog"
	"slices"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/imageref"
	"github.com/starford/folio/internal/models"
)

// Assignment is the resolved owner of one image.
type Assignment struct {
	Key    models.ImageKey
	Owner  string
	Orphan bool
}

// Result is the ownership map built from one catalog and inventory. It is
// not modified after Resolve.
type Result struct {
	assignments []Assignment
	owners      map[models.ImageKey]string
	candidates  map[models.ImageKey][]string
	refs        map[string][]models.ImageRef
	inventory   *Inventory

	shared     []models.ImageKey
	orphans    []models.ImageKey
	unassigned []models.ImageKey
	rejected   []models.ImageKey
}

// Resolve scans every article body, records the referencing slugs per image
// key in first-seen order and picks the first one as owner. A key referenced
// from more than one category listing is shared. On-disk files
// nobody references are orphans; an orphan goes to the first article of the
// category named like its directory, or stays unassigned. References whose
// path leaves the image directory are rejected and never owned.
func Resolve(cat *catalog.Catalog, inv *Inventory, scanner *imageref.Scanner, logger *slog.Logger) *Result {
	r := &Result{
		owners:     make(map[models.ImageKey]string),
		candidates: make(map[models.ImageKey][]string),
		refs:       make(map[string][]models.ImageRef),
		inventory:  inv,
	}

	var order []models.ImageKey
	for _, art := range cat.Articles() {
		refs := scanner.Scan(art.Body)
		r.refs[art.Slug] = refs
		for _, ref := range refs {
			key := ref.Key()
			if !ref.Contained() {
				if !slices.Contains(r.rejected, key) {
					r.rejected = append(r.rejected, key)
					logger.Warn("ownership: image path leaves its directory, ignored",
						slog.String("image", key.String()), slog.String("article", art.Slug))
				}
				continue
			}
			slugs, known := r.candidates[key]
			if !known {
				order = append(order, key)
			}
			if !slices.Contains(slugs, art.Slug) {
				r.candidates[key] = append(slugs, art.Slug)
			}
		}
	}

	for _, key := range order {
		slugs := r.candidates[key]
		if listings(cat, slugs) > 1 {
			r.shared = append(r.shared, key)
		}
		r.assign(key, slugs[0], false)
	}

	for _, dir := range inv.Dirs {
		for _, file := range dir.Files {
			key := models.NewImageKey(dir.Name, file)
			if _, referenced := r.candidates[key]; referenced {
				continue
			}
			r.orphans = append(r.orphans, key)
			logger.Warn("ownership: orphan image", slog.String("image", key.String()))

			owner, ok := orphanOwner(cat, dir.Name)
			if !ok {
				r.unassigned = append(r.unassigned, key)
				logger.Warn("ownership: orphan image has no owning category article", slog.String("image", key.String()))
				continue
			}
			r.assign(key, owner, true)
		}
	}

	logger.Info("ownership: resolved",
		slog.Int("images", len(r.assignments)),
		slog.Int("shared", len(r.shared)),
		slog.Int("orphans", len(r.orphans)),
		slog.Int("unassigned", len(r.unassigned)))

	return r
}

// listings counts the category listings of slugs. An article filed under two
// categories references its images from both.
func listings(cat *catalog.Catalog, slugs []string) int {
	n := 0
	for _, slug := range slugs {
		n += max(1, len(cat.CategoriesOf(slug)))
	}
	return n
}

func (r *Result) assign(key models.ImageKey, owner string, orphan bool) {
	r.owners[key] = owner
	r.assignments = append(r.assignments, Assignment{Key: key, Owner: owner, Orphan: orphan})
}

func orphanOwner(cat *catalog.Catalog, dir string) (string, bool) {
	c, ok := cat.CategoryForDir(dir)
	if !ok {
		return "", false
	}
	entries := cat.Entries(c.ID)
	if len(entries) == 0 {
		return "", false
	}
	return entries[0].Slug, true
}

// Owner returns the owner slug of key.
func (r *Result) Owner(key models.ImageKey) (string, bool) {
	owner, ok := r.owners[key]
	return owner, ok
}

// Candidates returns every slug that referenced key, in first-seen order.
func (r *Result) Candidates(key models.ImageKey) []string {
	return r.candidates[key]
}

// Assignments returns referenced keys in first-seen order followed by
// assigned orphans in directory walk order.
func (r *Result) Assignments() []Assignment {
	return r.assignments
}

// Refs returns the distinct references found in an article body.
func (r *Result) Refs(slug string) []models.ImageRef {
	return r.refs[slug]
}

// SourceDir returns the on-disk directory name holding key's file.
func (r *Result) SourceDir(key models.ImageKey) (string, bool) {
	d, ok := r.inventory.Lookup(key.Dir())
	if !ok {
		return "", false
	}
	return d.Name, true
}

// Shared lists keys referenced by more than one article.
func (r *Result) Shared() []models.ImageKey { return r.shared }

// Orphans lists on-disk keys no article references.
func (r *Result) Orphans() []models.ImageKey { return r.orphans }

// Unassigned lists orphans that could not be given an owner.
func (r *Result) Unassigned() []models.ImageKey { return r.unassigned }

// Rejected lists referenced keys whose path escapes the image directory.
func (r *Result) Rejected() []models.ImageKey { return r.rejected }
