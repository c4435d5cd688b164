// Package catalog loads the legacy category list and the articles filed under
// each category.
package catalog

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// SlugPattern matches URL-safe identifiers for categories and articles.
var SlugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// categoryDoc is one categories.yaml entry as written. hideInProd is kept as
// a node so that quoted and bare booleans read the same.
type categoryDoc struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Logo        string    `yaml:"logo"`
	HideInProd  yaml.Node `yaml:"hideInProd"`
}

// ParseCategories decodes the flat categories.yaml list. hideInProd is true
// only for the literal true, quoted or not.
func ParseCategories(data []byte) ([]models.Category, error) {
	var docs []categoryDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("catalog: parse categories: %w", err)
	}
	cats := make([]models.Category, 0, len(docs))
	for i, d := range docs {
		if d.ID == "" {
			return nil, fmt.Errorf("catalog: category #%d has no id", i+1)
		}
		cats = append(cats, models.Category{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Logo:        d.Logo,
			HideInProd:  d.HideInProd.Kind == yaml.ScalarNode && d.HideInProd.Value == "true",
		})
	}
	return cats, nil
}

// LoadCategories reads and decodes the categories file.
func LoadCategories(store storage.Provider, path string) ([]models.Category, error) {
	data, err := store.Read(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return ParseCategories(data)
}
