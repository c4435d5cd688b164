package migrate

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/models"
)

// BuildMapping produces the category→article index. Every category is
// listed, including those without articles.
func BuildMapping(cat *catalog.Catalog, iconPlaceholder string, shortWidth int) models.Mapping {
	var doc models.Mapping
	for _, c := range cat.Categories() {
		icon := iconPlaceholder
		if c.Logo != "" {
			icon = path.Base(c.Logo)
		}
		mc := models.MappingCategory{
			Name:        c.Title,
			Slug:        c.ID,
			Icon:        icon,
			Description: c.Description,
			HideInProd:  c.HideInProd,
			Articles:    []models.MappingArticle{},
		}
		for _, e := range cat.Entries(c.ID) {
			mc.Articles = append(mc.Articles, models.MappingArticle{
				Slug:       e.Slug,
				Title:      e.Title,
				ShortTitle: ShortTitle(e.Title, shortWidth),
			})
		}
		doc.Categories = append(doc.Categories, mc)
	}
	return doc
}

// EncodeMapping renders the mapping document as YAML.
func EncodeMapping(doc models.Mapping) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("migrate: encode mapping: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("migrate: encode mapping: %w", err)
	}
	return buf.Bytes(), nil
}

// ShortTitle returns the longest whole-word prefix of title that fits in
// width display columns. When even the first word is too wide the title is
// cut at width.
func ShortTitle(title string, width int) string {
	if runewidth.StringWidth(title) <= width {
		return title
	}
	var b strings.Builder
	for _, word := range strings.Fields(title) {
		candidate := word
		if b.Len() > 0 {
			candidate = b.String() + " " + word
		}
		if runewidth.StringWidth(candidate) > width {
			break
		}
		b.Reset()
		b.WriteString(candidate)
	}
	if b.Len() == 0 {
		return runewidth.Truncate(title, width, "")
	}
	return b.String()
}

func (m *Migrator) writeMapping(cat *catalog.Catalog) error {
	s := m.settings
	out, err := EncodeMapping(BuildMapping(cat, s.IconPlaceholder, s.ShortTitleWidth))
	if err != nil {
		return err
	}
	if err := m.store.Write(s.Layout.MappingFile, out); err != nil {
		return fmt.Errorf("migrate: write mapping: %w", err)
	}
	return nil
}
