package models

// Mapping is the generated category-article-mapping.yml document.
type Mapping struct {
	Categories []MappingCategory `yaml:"categories"`
}

// MappingCategory is one category of the mapping document.
type MappingCategory struct {
	Name        string           `yaml:"name"`
	Slug        string           `yaml:"slug"`
	Icon        string           `yaml:"icon"`
	Description string           `yaml:"description"`
	HideInProd  bool             `yaml:"hideInProd,omitempty"`
	Articles    []MappingArticle `yaml:"articles"`
}

// MappingArticle is an article entry under a mapping category.
type MappingArticle struct {
	Slug       string `yaml:"slug"`
	Title      string `yaml:"title"`
	ShortTitle string `yaml:"short_title"`
}
