// Package internal provides the application initialization and the command
// entry points.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/imageref"
	"github.com/starford/folio/internal/journal"
	"github.com/starford/folio/internal/migrate"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/validate"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{out: os.Stdout, logOut: os.Stderr}
	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required: %w", apperr.ErrConfig)
	}
	if err := app.config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrConfig, err)
	}

	app.logger = newLogger(app.config.App, app.logOut)
	slog.SetDefault(app.logger)
	return app, nil
}

func newLogger(cfg ApplicationConfig, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

func (app *application) store() (*storage.FS, error) {
	store, err := storage.NewFS(app.config.Repo.Root)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return store, nil
}

func (app *application) journalPath() string {
	p := app.config.Journal.Path
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(app.config.Repo.Root, p)
}

func (app *application) settings(dryRun bool) migrate.Settings {
	m := app.config.Migration
	return migrate.Settings{
		Layout:          app.config.Layout(),
		DevOrigin:       m.DevOrigin,
		IconPlaceholder: m.IconPlaceholder,
		ShortTitleWidth: m.ShortTitleWidth,
		StagingSuffix:   m.StagingSuffix,
		BackupSuffix:    m.BackupSuffix,
		RootImages:      m.RootImages,
		DryRun:          dryRun,
	}
}

// RunMigrate migrates the repository to the per-article layout. A dry run
// performs every read and resolution step and prints the same counts without
// touching the repository.
func RunMigrate(ctx context.Context, dryRun bool, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	_, err = app.migrate(ctx, dryRun)
	return err
}

// RunPlan is a dry run that also prints the image ownership table.
func RunPlan(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	rep, err := app.migrate(ctx, true)
	if err != nil {
		return err
	}
	fmt.Fprintln(app.out)
	rep.PrintAssignments(app.out)
	return nil
}

func (app *application) migrate(ctx context.Context, dryRun bool) (*migrate.Report, error) {
	store, err := app.store()
	if err != nil {
		return nil, err
	}

	app.logger.Info("Configuration loaded",
		slog.String("root", store.Root()),
		slog.String("journal", app.journalPath()),
		slog.Bool("dry_run", dryRun))

	var j journal.Store
	if !dryRun {
		db, err := journal.Open(app.journalPath())
		if err != nil {
			return nil, fmt.Errorf("init journal: %w", err)
		}
		defer db.Close()
		j = db
	}

	rep, err := migrate.New(store, j, app.settings(dryRun), app.logger).Run(ctx)
	if rep != nil {
		rep.Print(app.out)
	}
	if err != nil {
		if errors.Is(err, apperr.ErrSwapIncomplete) {
			app.logger.Error("swap interrupted, run `folio recover` to restore the backups", slog.String("error", err.Error()))
		}
		return nil, err
	}
	return rep, nil
}

// RunRecover undoes the applied renames of an interrupted swap.
func RunRecover(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	store, err := app.store()
	if err != nil {
		return err
	}
	db, err := journal.Open(app.journalPath())
	if err != nil {
		return fmt.Errorf("init journal: %w", err)
	}
	defer db.Close()

	swap, err := migrate.Recover(ctx, store, db, app.logger)
	if errors.Is(err, apperr.ErrNotFound) {
		fmt.Fprintln(app.out, "Nothing to recover: no pending swap.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(app.out, "Swap %d reverted (%d steps).\n", swap.ID, len(swap.Steps))
	return nil
}

// RunValidate runs the given suites and prints their results. With watch it
// keeps re-running on every change below the repository root until
// interrupted, and only reports failures of the last run.
func RunValidate(ctx context.Context, suites []validate.Suite, files []string, watch bool, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	store, err := app.store()
	if err != nil {
		return err
	}
	v := validate.New(store, app.config.Layout(), imageref.NewScanner(app.config.Migration.DevOrigin), app.logger)

	runOnce := func() error {
		results, err := v.Run(ctx, suites, files)
		if err != nil {
			return err
		}
		for _, r := range results {
			r.Print(app.out)
		}
		return validate.Err(results)
	}

	err = runOnce()
	if !watch {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	last := err
	werr := validate.Watch(ctx, store.Root(), app.logger, func() {
		fmt.Fprintln(app.out, "\n--- change detected, re-validating ---")
		last = runOnce()
	})
	if werr != nil {
		return werr
	}
	return last
}
