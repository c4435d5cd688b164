// Package migrate restructures a category-keyed content repository into the
// per-article layout.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/imageref"
	"github.com/starford/folio/internal/journal"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/ownership"
	"github.com/starford/folio/internal/storage"
)

// Settings controls one migration run.
type Settings struct {
	Layout          models.Layout
	DevOrigin       string
	IconPlaceholder string
	ShortTitleWidth int
	StagingSuffix   string
	BackupSuffix    string
	RootImages      []string
	DryRun          bool
}

// DefaultSettings returns the settings matching the stock repository layout.
func DefaultSettings(layout models.Layout) Settings {
	return Settings{
		Layout:          layout,
		DevOrigin:       imageref.DefaultDevOrigin,
		IconPlaceholder: "no-image.svg",
		ShortTitleWidth: 20,
		StagingSuffix:   "_new",
		BackupSuffix:    "_old",
		RootImages:      []string{"activity.svg", "analogHubMainLogo.svg", "analogHubSmallLogo.svg"},
	}
}

// Migrator runs the pipeline: load, resolve, stage, generate, swap.
type Migrator struct {
	store    storage.Provider
	journal  journal.Store
	settings Settings
	scanner  *imageref.Scanner
	logger   *slog.Logger
}

// New creates a Migrator. In dry-run mode every mutation of store is
// suppressed and the journal is never touched; j may be nil in that case.
func New(store storage.Provider, j journal.Store, settings Settings, logger *slog.Logger) *Migrator {
	if settings.DryRun {
		store = storage.NewDryRun(store, logger)
	}
	return &Migrator{
		store:    store,
		journal:  j,
		settings: settings,
		scanner:  imageref.NewScanner(settings.DevOrigin),
		logger:   logger,
	}
}

// paths are the derived locations of one run.
type paths struct {
	staging  string
	backup   string
	datesNew string
	datesOld string
}

func (m *Migrator) paths() paths {
	l := m.settings.Layout
	return paths{
		staging:  l.ArticlesDir + m.settings.StagingSuffix,
		backup:   l.ArticlesDir + m.settings.BackupSuffix,
		datesNew: withSuffix(l.DatesFile, m.settings.StagingSuffix),
		datesOld: withSuffix(l.DatesFile, m.settings.BackupSuffix),
	}
}

// withSuffix inserts suffix before the extension: dates.yaml -> dates_new.yaml.
func withSuffix(p, suffix string) string {
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext) + suffix + ext
}

// Plan loads the catalog and resolves ownership without staging anything.
func (m *Migrator) Plan() (*catalog.Catalog, *ownership.Result, error) {
	l := m.settings.Layout
	cats, err := catalog.LoadCategories(m.store, l.CategoriesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	m.logger.Info("migrate: categories loaded", slog.Int("count", len(cats)))

	cat, err := catalog.Load(m.store, l.ArticlesDir, cats, m.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	inv, err := ownership.ScanInventory(m.store, l.ImagesDir, []string{l.LogosDir}, m.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return cat, ownership.Resolve(cat, inv, m.scanner, m.logger), nil
}

// Run executes the whole migration and returns its report. Resolution gaps
// are reported, not returned; I/O failures abort before the swap.
func (m *Migrator) Run(ctx context.Context) (*Report, error) {
	if err := m.checkJournal(ctx); err != nil {
		return nil, err
	}

	cat, res, err := m.Plan()
	if err != nil {
		return nil, err
	}

	rep := newReport(m.settings.DryRun, cat, res, m.logger)
	p := m.paths()

	if err := m.preflight(p, rep); err != nil {
		return nil, err
	}
	if err := m.stageArticles(cat, res, p.staging, rep); err != nil {
		return nil, err
	}
	if err := m.stageImages(res, p.staging, rep); err != nil {
		return nil, err
	}
	hasDates, err := m.transformDates(p.datesNew, rep)
	if err != nil {
		return nil, err
	}
	if err := m.copyIcons(rep); err != nil {
		return nil, err
	}
	if err := m.writeMapping(cat); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	steps := m.swapSteps(p, hasDates)
	if err := m.swap(ctx, steps); err != nil {
		return rep, err
	}
	rep.Swapped = steps
	rep.Backups = []string{p.backup}
	if hasDates {
		rep.Backups = append(rep.Backups, p.datesOld)
	}

	if err := m.rootImages(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

func (m *Migrator) checkJournal(ctx context.Context) error {
	if m.settings.DryRun || m.journal == nil {
		return nil
	}
	pending, err := m.journal.Pending(ctx)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return fmt.Errorf("migrate: swap %d started %s is unfinished, run recover: %w",
		pending.ID, pending.StartedAt.Format("2006-01-02 15:04:05"), apperr.ErrJournalPending)
}

// preflight refuses to overwrite backups and clears a stale staging tree.
// In dry-run mode conflicts are reported instead.
func (m *Migrator) preflight(p paths, rep *Report) error {
	for _, target := range []string{p.backup, p.datesOld} {
		exists, err := m.store.Exists(target)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if !exists {
			continue
		}
		err = fmt.Errorf("migrate: backup %s: %w", target, apperr.ErrAlreadyExists)
		if !m.settings.DryRun {
			return err
		}
		rep.warnf("%v", err)
	}

	for _, stale := range []string{p.staging, p.datesNew} {
		exists, err := m.store.Exists(stale)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		if exists {
			m.logger.Warn("migrate: removing stale staging output", slog.String("path", stale))
			if err := m.store.RemoveAll(stale); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
	}
	return nil
}
