package validate

import (
	"path"
	"slices"
	"strings"
)

// Images checks every image reference of the migrated articles: per-article
// references must name an existing article directory and file, icon
// references must exist in the icons directory. Files nobody references are
// warnings. When files is empty every articles/{slug}/article.md is checked.
func (v *Validator) Images(files []string) (*Result, error) {
	r := newResult(string(SuiteImages))
	l := v.layout
	iconsRef := path.Base(l.IconsDir)

	slugs, err := subdirs(v.store, l.ArticlesDir)
	if err != nil {
		return nil, err
	}

	targets, err := v.imageTargets(files, slugs)
	if err != nil {
		return nil, err
	}
	r.Checked = len(targets)

	referenced := make(map[string]map[string]bool)
	for _, file := range targets {
		data, err := v.store.Read(file)
		if err != nil {
			return nil, err
		}
		for _, ref := range v.scanner.Scan(string(data)) {
			if ref.Dir == iconsRef {
				ok, err := v.store.Exists(path.Join(l.IconsDir, ref.Filename))
				if err != nil {
					return nil, err
				}
				if !ok {
					r.errorf(file, "missing category icon '%s'", ref.Filename)
				}
				continue
			}

			if !slices.Contains(slugs, ref.Dir) {
				r.errorf(file, "image path '/images/%s/%s' uses an unknown article slug", ref.Dir, ref.Filename)
				continue
			}
			img := path.Join(l.ArticlesDir, ref.Dir, "images", ref.Filename)
			ok, err := v.store.Exists(img)
			if err != nil {
				return nil, err
			}
			if !ok {
				r.errorf(file, "missing image '%s'", img)
			}
			if referenced[ref.Dir] == nil {
				referenced[ref.Dir] = make(map[string]bool)
			}
			referenced[ref.Dir][ref.Filename] = true
		}
	}

	for _, slug := range slugs {
		dir := path.Join(l.ArticlesDir, slug, "images")
		onDisk, err := v.store.Files(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range onDisk {
			if !referenced[slug][f] {
				r.warnf(path.Join(dir, f), "unused image")
			}
		}
	}
	return r, nil
}

// imageTargets returns the explicit files that exist, or every article.md.
func (v *Validator) imageTargets(files, slugs []string) ([]string, error) {
	var out []string
	if len(files) > 0 {
		for _, f := range files {
			f = strings.TrimPrefix(path.Clean(f), "./")
			ok, err := v.store.Exists(f)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, f)
			}
		}
		return out, nil
	}
	for _, slug := range slugs {
		p := path.Join(v.layout.ArticlesDir, slug, "article.md")
		ok, err := v.store.Exists(p)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}
