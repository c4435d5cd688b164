package migrate

import (
	"fmt"
	"log/slog"
	"path"

	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/frontmatter"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/ownership"
)

const articleFile = "article.md"

// stageArticles writes staging/{slug}/article.md for every article, with
// image references pointing at their owner.
func (m *Migrator) stageArticles(cat *catalog.Catalog, res *ownership.Result, staging string, rep *Report) error {
	for _, art := range cat.Articles() {
		if !catalog.SlugPattern.MatchString(art.Slug) {
			rep.warnf("article %s (%s): slug is not URL-safe", art.Slug, art.SourcePath)
		}

		dir := path.Join(staging, art.Slug)
		if err := m.store.MkdirAll(path.Join(dir, "images")); err != nil {
			return fmt.Errorf("migrate: stage %s: %w", art.Slug, err)
		}

		body := m.scanner.Rewrite(art.Body, func(ref models.ImageRef) string {
			if !ref.Contained() {
				return ref.Dir
			}
			if owner, ok := res.Owner(ref.Key()); ok {
				return owner
			}
			rep.warnf("article %s: no owner for %s, keeping it local", art.Slug, ref.Key())
			return art.Slug
		})

		if err := m.store.Write(path.Join(dir, articleFile), []byte(frontmatter.Compose(articleFields(art), body))); err != nil {
			return fmt.Errorf("migrate: stage %s: %w", art.Slug, err)
		}
		rep.ArticlesWritten++
	}
	m.logger.Info("migrate: articles staged", slog.Int("count", rep.ArticlesWritten))
	return nil
}

// articleFields is the reduced header of a migrated article. Title and id
// live in the mapping document.
func articleFields(art *models.Article) []frontmatter.Field {
	fields := []frontmatter.Field{{Key: "description", Value: art.Description}}
	if art.HideInProd {
		fields = append(fields, frontmatter.Field{Key: "hideInProd", Value: "true", Plain: true})
	}
	return fields
}

// stageImages copies every assigned image into its owner's images directory.
// Missing sources are reported and skipped. Two keys landing on the same
// destination are a no-op when identical, otherwise the later one is skipped.
func (m *Migrator) stageImages(res *ownership.Result, staging string, rep *Report) error {
	ledger := checksum.NewLedger()

	for _, a := range res.Assignments() {
		srcDir, ok := res.SourceDir(a.Key)
		if !ok {
			rep.warnf("image %s: directory not found, skipped", a.Key)
			rep.ImagesSkipped++
			continue
		}
		src := path.Join(m.settings.Layout.ImagesDir, srcDir, a.Key.Filename())
		exists, err := m.store.Exists(src)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if !exists {
			rep.warnf("image %s: file not found, skipped", a.Key)
			rep.ImagesSkipped++
			continue
		}

		data, err := m.store.Read(src)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		dst := path.Join(staging, a.Owner, "images", a.Key.Filename())
		switch ledger.Claim(dst, data) {
		case checksum.Duplicate:
			continue
		case checksum.Conflict:
			rep.warnf("image %s: %s already holds different content, skipped", a.Key, dst)
			rep.ImagesSkipped++
			continue
		}

		if err := m.store.Write(dst, data); err != nil {
			return fmt.Errorf("migrate: copy %s: %w", a.Key, err)
		}
		rep.ImagesMoved++
	}
	m.logger.Info("migrate: images staged",
		slog.Int("moved", rep.ImagesMoved),
		slog.Int("skipped", rep.ImagesSkipped))
	return nil
}
