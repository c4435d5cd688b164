package migrate

import (
	"fmt"
	"log/slog"
	"path"

	"gopkg.in/yaml.v3"
)

// DateEntry is one slug-keyed date.
type DateEntry struct {
	Slug string
	Date string
}

// DuplicateDate is a legacy key dropped because its slug was already seen.
type DuplicateDate struct {
	Key  string
	Slug string
}

// TransformDates rekeys a legacy "category/slug": "date" document by the last
// path segment. The first occurrence of a slug wins; later ones are returned
// as duplicates. Entries with non-scalar values are ignored.
func TransformDates(data []byte) ([]DateEntry, []DuplicateDate, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("migrate: parse dates: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("migrate: parse dates: line %d: not a mapping", root.Line)
	}

	var (
		entries []DateEntry
		dups    []DuplicateDate
		seen    = make(map[string]bool)
	)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			continue
		}
		slug := path.Base(k.Value)
		if seen[slug] {
			dups = append(dups, DuplicateDate{Key: k.Value, Slug: slug})
			continue
		}
		seen[slug] = true
		entries = append(entries, DateEntry{Slug: slug, Date: v.Value})
	}
	return entries, dups, nil
}

// EncodeDates renders entries as a double-quoted "slug": "date" mapping.
func EncodeDates(entries []DateEntry) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range entries {
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Slug, Style: yaml.DoubleQuotedStyle},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Date, Style: yaml.DoubleQuotedStyle},
		)
	}
	out, err := yaml.Marshal(root)
	if err != nil {
		return nil, fmt.Errorf("migrate: encode dates: %w", err)
	}
	return out, nil
}

// transformDates writes the rekeyed date index next to the legacy one and
// reports whether there was one to transform.
func (m *Migrator) transformDates(dst string, rep *Report) (bool, error) {
	src := m.settings.Layout.DatesFile
	exists, err := m.store.Exists(src)
	if err != nil {
		return false, fmt.Errorf("migrate: %w", err)
	}
	if !exists {
		rep.warnf("%s not found, dates not transformed", src)
		return false, nil
	}

	data, err := m.store.Read(src)
	if err != nil {
		return false, fmt.Errorf("migrate: %w", err)
	}
	entries, dups, err := TransformDates(data)
	if err != nil {
		return false, err
	}
	for _, d := range dups {
		m.logger.Info("migrate: skipping duplicate date", slog.String("key", d.Key), slog.String("slug", d.Slug))
	}
	rep.Dates = len(entries)
	rep.DateDuplicates = dups

	out, err := EncodeDates(entries)
	if err != nil {
		return false, err
	}
	if err := m.store.Write(dst, out); err != nil {
		return false, fmt.Errorf("migrate: write dates: %w", err)
	}
	return true, nil
}
