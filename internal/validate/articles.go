package validate

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/frontmatter"
)

var legacyRequired = []string{"id", "title", "description"}

// Articles checks legacy article headers: id, title and description are
// required, ids are URL-safe and unique. When files is empty every .md under
// the articles directory is checked, skipping hidden directories.
func (v *Validator) Articles(files []string) (*Result, error) {
	r := newResult(string(SuiteArticles))

	targets, err := v.articleTargets(files)
	if err != nil {
		return nil, err
	}
	r.Checked = len(targets)

	seen := make(map[string]string)
	for _, file := range targets {
		data, err := v.store.Read(file)
		if err != nil {
			return nil, err
		}
		doc := frontmatter.Parse(data)
		if !doc.HasHeader {
			r.errorf(file, "missing frontmatter")
			continue
		}
		for _, field := range legacyRequired {
			if doc.Get(field) == "" {
				r.errorf(file, "missing required field '%s'", field)
			}
		}

		id := doc.Get("id")
		if id == "" {
			continue
		}
		if err := validation.Validate(id, validation.Match(catalog.SlugPattern)); err != nil {
			r.errorf(file, "id '%s' is not URL-safe (use [a-zA-Z0-9_-])", id)
		}
		if prev, dup := seen[id]; dup {
			r.errorf(file, "duplicate id '%s' (also in %s)", id, prev)
		}
		seen[id] = file
	}
	return r, nil
}

func (v *Validator) articleTargets(files []string) ([]string, error) {
	if len(files) > 0 {
		var out []string
		for _, f := range files {
			if strings.HasSuffix(f, ".md") {
				out = append(out, strings.TrimPrefix(path.Clean(f), "./"))
			}
		}
		return out, nil
	}

	ok, err := v.store.IsDir(v.layout.ArticlesDir)
	if err != nil || !ok {
		return nil, err
	}
	matches, err := doublestar.Glob(v.store.FS(), path.Join(v.layout.ArticlesDir, "**", "*.md"), doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	out := matches[:0]
	for _, m := range matches {
		if !inHiddenDir(strings.TrimPrefix(m, v.layout.ArticlesDir+"/")) {
			out = append(out, m)
		}
	}
	return out, nil
}

func inHiddenDir(rel string) bool {
	dir := path.Dir(rel)
	if dir == "." {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
