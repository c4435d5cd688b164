package catalog

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/starford/folio/internal/frontmatter"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// Entry is an article as listed by one category. The same slug may have a
// different title under another category.
type Entry struct {
	Slug  string
	Title string
}

// MultiCategory records a slug filed under more than one category.
type MultiCategory struct {
	Slug       string
	Categories []string // encounter order
}

// Skipped is an article left out of the catalog because its slug cannot
// name a directory.
type Skipped struct {
	Slug       string
	SourcePath string
}

// Catalog is the deduplicated article set. It is not modified after Load.
type Catalog struct {
	categories []models.Category
	articles   map[string]*models.Article
	order      []string
	entries    map[string][]Entry
	slugCats   map[string][]string
	missing    []string
	skipped    []Skipped
}

// UsableSlug reports whether slug can be used as a single directory name.
func UsableSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}

// Load reads every category directory under articlesDir in declared order.
// The first occurrence of a slug wins; later occurrences only extend the
// slug's category list. Missing category directories are skipped.
func Load(store storage.Provider, articlesDir string, categories []models.Category, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		categories: categories,
		articles:   make(map[string]*models.Article),
		entries:    make(map[string][]Entry, len(categories)),
		slugCats:   make(map[string][]string),
	}

	for _, cat := range categories {
		if !SlugPattern.MatchString(cat.ID) {
			logger.Warn("catalog: category id is not URL-safe", slog.String("category", cat.ID))
		}

		dir := path.Join(articlesDir, cat.ID)
		ok, err := store.IsDir(dir)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if !ok {
			logger.Warn("catalog: no directory, skipping", slog.String("category", cat.ID))
			c.entries[cat.ID] = nil
			c.missing = append(c.missing, cat.ID)
			continue
		}

		dirEntries, err := store.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}

		var list []Entry
		for _, de := range dirEntries {
			if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
				continue
			}
			p := path.Join(dir, de.Name())
			data, err := store.Read(p)
			if err != nil {
				return nil, fmt.Errorf("catalog: %w", err)
			}
			art := newArticle(p, cat.ID, strings.TrimSuffix(de.Name(), ".md"), data)
			if !UsableSlug(art.Slug) {
				logger.Warn("catalog: slug cannot be used as a directory, skipping",
					slog.String("slug", art.Slug), slog.String("path", p))
				c.skipped = append(c.skipped, Skipped{Slug: art.Slug, SourcePath: p})
				continue
			}
			list = append(list, Entry{Slug: art.Slug, Title: art.Title})

			if _, seen := c.articles[art.Slug]; !seen {
				c.articles[art.Slug] = art
				c.order = append(c.order, art.Slug)
			}
			c.slugCats[art.Slug] = append(c.slugCats[art.Slug], cat.ID)
		}

		c.entries[cat.ID] = list
		logger.Info("catalog: category loaded", slog.String("category", cat.ID), slog.Int("articles", len(list)))
	}

	return c, nil
}

func newArticle(p, category, stem string, data []byte) *models.Article {
	doc := frontmatter.Parse(data)
	slug := doc.Get("id")
	if slug == "" {
		slug = stem
	}
	title := doc.Get("title")
	if title == "" {
		title = slug
	}
	return &models.Article{
		Slug:        slug,
		Title:       title,
		Description: doc.Get("description"),
		HideInProd:  doc.Bool("hideInProd"),
		Body:        doc.Body,
		Category:    category,
		SourcePath:  p,
	}
}

// Categories returns the categories in declared order.
func (c *Catalog) Categories() []models.Category {
	return c.categories
}

// Articles returns the unique articles in load order.
func (c *Catalog) Articles() []*models.Article {
	out := make([]*models.Article, 0, len(c.order))
	for _, slug := range c.order {
		out = append(out, c.articles[slug])
	}
	return out
}

// Article returns the article registered under slug.
func (c *Catalog) Article(slug string) (*models.Article, bool) {
	a, ok := c.articles[slug]
	return a, ok
}

// Len returns the number of unique articles.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Entries returns the articles listed by a category in load order, including
// slugs first registered under another category.
func (c *Catalog) Entries(categoryID string) []Entry {
	return c.entries[categoryID]
}

// CategoriesOf returns the categories that list slug, in encounter order.
func (c *Catalog) CategoriesOf(slug string) []string {
	return c.slugCats[slug]
}

// MultiCategory lists slugs filed under more than one category, in load order.
func (c *Catalog) MultiCategory() []MultiCategory {
	var out []MultiCategory
	for _, slug := range c.order {
		if cats := c.slugCats[slug]; len(cats) > 1 {
			out = append(out, MultiCategory{Slug: slug, Categories: cats})
		}
	}
	return out
}

// MissingCategories lists categories whose directory did not exist.
func (c *Catalog) MissingCategories() []string {
	return c.missing
}

// Skipped lists articles dropped for an unusable slug, in load order.
func (c *Catalog) Skipped() []Skipped {
	return c.skipped
}

// CategoryForDir finds the category whose id equals dir, ignoring case.
func (c *Catalog) CategoryForDir(dir string) (models.Category, bool) {
	for _, cat := range c.categories {
		if strings.EqualFold(cat.ID, dir) {
			return cat, true
		}
	}
	return models.Category{}, false
}
