package migrate

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/journal"
	"github.com/starford/folio/internal/storage"
)

// swapSteps is the ordered rename sequence exchanging the staged output with
// the live tree.
func (m *Migrator) swapSteps(p paths, withDates bool) []journal.Step {
	l := m.settings.Layout
	steps := []journal.Step{
		{Src: l.ArticlesDir, Dst: p.backup},
		{Src: p.staging, Dst: l.ArticlesDir},
	}
	if withDates {
		steps = append(steps,
			journal.Step{Src: l.DatesFile, Dst: p.datesOld},
			journal.Step{Src: p.datesNew, Dst: l.DatesFile},
		)
	}
	return steps
}

// swap applies steps in order, recording each one in the journal. A failed
// rename leaves the journal pending for Recover.
func (m *Migrator) swap(ctx context.Context, steps []journal.Step) error {
	var rec *journal.Swap
	if !m.settings.DryRun && m.journal != nil {
		var err error
		if rec, err = m.journal.Begin(ctx, steps); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	for i, s := range steps {
		if err := m.store.Rename(s.Src, s.Dst); err != nil {
			return fmt.Errorf("migrate: swap step %d %s -> %s: %w: %w", i, s.Src, s.Dst, apperr.ErrSwapIncomplete, err)
		}
		if rec != nil {
			if err := m.journal.SetDone(ctx, rec.ID, i, true); err != nil {
				return fmt.Errorf("migrate: swap step %d: %w: %w", i, apperr.ErrSwapIncomplete, err)
			}
		}
		m.logger.Info("migrate: swapped", slog.String("from", s.Src), slog.String("to", s.Dst))
	}

	if rec != nil {
		if err := m.journal.SetStatus(ctx, rec.ID, journal.StatusCommitted); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Recover undoes the applied steps of the pending swap in reverse order and
// marks it reverted. It returns apperr.ErrNotFound when nothing is pending.
func Recover(ctx context.Context, store storage.Provider, j journal.Store, logger *slog.Logger) (*journal.Swap, error) {
	rec, err := j.Pending(ctx)
	if err != nil {
		return nil, fmt.Errorf("recover: %w", err)
	}

	for i := len(rec.Steps) - 1; i >= 0; i-- {
		s := rec.Steps[i]
		if !s.Done {
			continue
		}
		applied, err := store.Exists(s.Dst)
		if err != nil {
			return nil, fmt.Errorf("recover: %w", err)
		}
		if applied {
			if err := store.Rename(s.Dst, s.Src); err != nil {
				return nil, fmt.Errorf("recover: step %d: %w", s.Seq, err)
			}
			logger.Info("recover: restored", slog.String("from", s.Dst), slog.String("to", s.Src))
		} else {
			logger.Warn("recover: step target missing, assuming undone", slog.String("path", s.Dst))
		}
		if err := j.SetDone(ctx, rec.ID, s.Seq, false); err != nil {
			return nil, fmt.Errorf("recover: %w", err)
		}
		rec.Steps[i].Done = false
	}

	if err := j.SetStatus(ctx, rec.ID, journal.StatusReverted); err != nil {
		return nil, fmt.Errorf("recover: %w", err)
	}
	rec.Status = journal.StatusReverted
	return rec, nil
}
