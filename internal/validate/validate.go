package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/imageref"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// Suite names a validator.
type Suite string

const (
	SuiteStructure Suite = "structure"
	SuiteImages    Suite = "images"
	SuiteArticles  Suite = "articles"
	SuiteWidgets   Suite = "widgets"
	SuiteAll       Suite = "all"
)

// PostMigration is what SuiteAll expands to. SuiteArticles checks the legacy
// layout and must be asked for explicitly.
var PostMigration = []Suite{SuiteStructure, SuiteImages, SuiteWidgets}

// ParseSuite maps a name to a Suite.
func ParseSuite(name string) (Suite, error) {
	switch s := Suite(name); s {
	case SuiteStructure, SuiteImages, SuiteArticles, SuiteWidgets, SuiteAll:
		return s, nil
	}
	return "", fmt.Errorf("validate: unknown suite %q", name)
}

// Validator runs read-only checks against a repository.
type Validator struct {
	store   storage.Provider
	layout  models.Layout
	scanner *imageref.Scanner
	logger  *slog.Logger
}

// New creates a Validator.
func New(store storage.Provider, layout models.Layout, scanner *imageref.Scanner, logger *slog.Logger) *Validator {
	return &Validator{store: store, layout: layout, scanner: scanner, logger: logger}
}

// Run executes the given suites concurrently. files restricts the images and
// articles validators to an explicit list; the others ignore it. The results
// are returned in suite order.
func (v *Validator) Run(ctx context.Context, suites []Suite, files []string) ([]*Result, error) {
	var expanded []Suite
	for _, s := range suites {
		if s == SuiteAll {
			expanded = append(expanded, PostMigration...)
			continue
		}
		expanded = append(expanded, s)
	}

	results := make([]*Result, len(expanded))
	g, ctx := errgroup.WithContext(ctx)
	for i, s := range expanded {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := v.runOne(s, files)
			if err != nil {
				return fmt.Errorf("validate: %s: %w", s, err)
			}
			results[i] = r
			v.logger.Info("validate: done",
				slog.String("suite", string(s)),
				slog.Int("checked", r.Checked),
				slog.Int("errors", len(r.Errors)),
				slog.Int("warnings", len(r.Warnings)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (v *Validator) runOne(s Suite, files []string) (*Result, error) {
	switch s {
	case SuiteStructure:
		return v.Structure()
	case SuiteImages:
		return v.Images(files)
	case SuiteArticles:
		return v.Articles(files)
	case SuiteWidgets:
		return v.Widgets()
	}
	return nil, fmt.Errorf("unknown suite %q", s)
}

// Err joins the failures of results.
func Err(results []*Result) error {
	var errs []error
	for _, r := range results {
		if err := r.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
