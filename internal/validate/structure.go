package validate

import (
	"errors"
	"fmt"
	"path"
	"slices"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/frontmatter"
	"github.com/starford/folio/internal/storage"
)

// mappingDoc mirrors models.Mapping with pointers, so a missing field can be
// told apart from an empty one.
type mappingDoc struct {
	Categories []mappingCategory `yaml:"categories"`
}

type mappingCategory struct {
	Name        *string           `yaml:"name" json:"name"`
	Slug        *string           `yaml:"slug" json:"slug"`
	Icon        *string           `yaml:"icon" json:"icon"`
	Description *string           `yaml:"description" json:"description"`
	HideInProd  bool              `yaml:"hideInProd"`
	Articles    *[]mappingArticle `yaml:"articles" json:"articles"`
}

func (c *mappingCategory) check() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.NotNil),
		validation.Field(&c.Slug, validation.NotNil, validation.Match(catalog.SlugPattern).Error("is not URL-safe")),
		validation.Field(&c.Icon, validation.NotNil),
		validation.Field(&c.Description, validation.NotNil),
		validation.Field(&c.Articles, validation.NotNil),
	)
}

func (c *mappingCategory) label() string {
	switch {
	case c.Slug != nil && *c.Slug != "":
		return *c.Slug
	case c.Name != nil && *c.Name != "":
		return *c.Name
	}
	return "(unknown)"
}

type mappingArticle struct {
	Slug       string `yaml:"slug" json:"slug"`
	Title      string `yaml:"title" json:"title"`
	ShortTitle string `yaml:"short_title" json:"short_title"`
}

func (a *mappingArticle) check() error {
	return validation.ValidateStruct(a,
		validation.Field(&a.Slug, validation.Required, validation.Match(catalog.SlugPattern).Error("is not URL-safe")),
		validation.Field(&a.Title, validation.Required),
		validation.Field(&a.ShortTitle, validation.Required),
	)
}

// fieldErrors reports each field error of err in field-name order.
func fieldErrors(r *Result, subject string, err error) {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		r.errorf(subject, "%v", err)
		return
	}
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		r.errorf(subject, "%s %v", field, errs[field])
	}
}

// Structure checks the mapping document against the article tree: schema,
// URL-safe unique slugs, one article.md per slug, no unlisted directories,
// existing icons, and the reduced article header.
func (v *Validator) Structure() (*Result, error) {
	r := newResult(string(SuiteStructure))
	l := v.layout

	exists, err := v.store.Exists(l.MappingFile)
	if err != nil {
		return nil, err
	}
	if !exists {
		r.errorf(l.MappingFile, "not found")
		return r, nil
	}
	data, err := v.store.Read(l.MappingFile)
	if err != nil {
		return nil, err
	}
	var doc mappingDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		r.errorf(l.MappingFile, "invalid YAML: %v", err)
		return r, nil
	}
	if len(doc.Categories) == 0 {
		r.errorf(l.MappingFile, "no categories found")
		return r, nil
	}

	var slugs []string
	listed := make(map[string]bool)
	seenCats := make(map[string]bool)

	for i := range doc.Categories {
		c := &doc.Categories[i]
		subject := "category " + c.label()
		if err := c.check(); err != nil {
			fieldErrors(r, subject, err)
		}
		if c.Slug != nil && *c.Slug != "" {
			if seenCats[*c.Slug] {
				r.errorf(subject, "duplicate category slug")
			}
			seenCats[*c.Slug] = true
		}
		if c.Articles == nil {
			continue
		}
		for j := range *c.Articles {
			a := &(*c.Articles)[j]
			if err := a.check(); err != nil {
				fieldErrors(r, fmt.Sprintf("article %s/%s", c.label(), orUnknown(a.Slug)), err)
			}
			if a.Slug == "" || listed[a.Slug] {
				continue
			}
			listed[a.Slug] = true
			if catalog.SlugPattern.MatchString(a.Slug) {
				slugs = append(slugs, a.Slug)
			}
		}
	}
	r.Checked = len(slugs)

	for _, slug := range slugs {
		p := path.Join(l.ArticlesDir, slug, "article.md")
		ok, err := v.store.Exists(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			r.errorf("article "+slug, "%s not found", p)
			continue
		}
		data, err := v.store.Read(p)
		if err != nil {
			return nil, err
		}
		checkArticleHeader(r, slug, frontmatter.Parse(data))
	}

	dirs, err := subdirs(v.store, l.ArticlesDir)
	if err != nil {
		return nil, err
	}
	for _, name := range dirs {
		if !listed[name] {
			r.errorf(path.Join(l.ArticlesDir, name), "orphan directory, not in mapping")
		}
	}

	for i := range doc.Categories {
		c := &doc.Categories[i]
		if c.Icon == nil || *c.Icon == "" {
			continue
		}
		ok, err := v.store.Exists(path.Join(l.IconsDir, *c.Icon))
		if err != nil {
			return nil, err
		}
		if !ok {
			r.errorf("category "+c.label(), "icon %q not found in %s", *c.Icon, l.IconsDir)
		}
	}
	return r, nil
}

func checkArticleHeader(r *Result, slug string, doc *frontmatter.Document) {
	subject := "article " + slug
	if !doc.HasHeader {
		r.errorf(subject, "missing frontmatter")
		return
	}
	if doc.Get("description") == "" {
		r.errorf(subject, "frontmatter missing required 'description'")
	}
	for _, forbidden := range []string{"id", "title"} {
		if doc.Get(forbidden) != "" {
			r.errorf(subject, "frontmatter contains forbidden field '%s', it belongs in the mapping", forbidden)
		}
	}
}

// subdirs lists the directory names directly under dir, or nothing when dir
// does not exist.
func subdirs(store storage.Provider, dir string) ([]string, error) {
	ok, err := store.IsDir(dir)
	if err != nil || !ok {
		return nil, err
	}
	entries, err := store.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, de := range entries {
		if de.IsDir() {
			names = append(names, de.Name())
		}
	}
	return names, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "(unknown)"
	}
	return s
}
