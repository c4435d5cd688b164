package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/folio/internal/apperr"
)

// Status is the lifecycle state of a recorded swap.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCommitted Status = "committed"
	StatusReverted  Status = "reverted"
)

// Step is one rename of the swap sequence.
type Step struct {
	Seq  int
	Src  string
	Dst  string
	Done bool
}

// Swap is a recorded rename sequence.
type Swap struct {
	ID        int64
	Status    Status
	StartedAt time.Time
	Steps     []Step
}

// Begin records a pending swap with its planned steps, numbered in order.
func (db *DB) Begin(ctx context.Context, steps []Step) (*Swap, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("journal: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO swaps (status, started_at, updated_at) VALUES (?, ?, ?)`,
		string(StatusPending), now, now)
	if err != nil {
		return nil, fmt.Errorf("journal: insert swap: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("journal: swap id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO swap_steps (swap_id, seq, src, dst) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("journal: prepare step insert: %w", err)
	}
	defer stmt.Close()

	recorded := make([]Step, len(steps))
	for i, s := range steps {
		if _, err := stmt.ExecContext(ctx, id, i, s.Src, s.Dst); err != nil {
			return nil, fmt.Errorf("journal: insert step: %w", err)
		}
		recorded[i] = Step{Seq: i, Src: s.Src, Dst: s.Dst}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("journal: commit: %w", err)
	}
	return &Swap{ID: id, Status: StatusPending, StartedAt: now, Steps: recorded}, nil
}

// SetDone records whether step seq of a swap is currently applied.
func (db *DB) SetDone(ctx context.Context, swapID int64, seq int, done bool) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE swap_steps SET done = ? WHERE swap_id = ? AND seq = ?`, done, swapID, seq)
	if err != nil {
		return fmt.Errorf("journal: set step done: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("journal: step %d of swap %d: %w", seq, swapID, apperr.ErrNotFound)
	}
	return db.touch(ctx, swapID)
}

// SetStatus closes or reopens a swap.
func (db *DB) SetStatus(ctx context.Context, swapID int64, status Status) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE swaps SET status = ?, updated_at = ? WHERE id = ?`, string(status), time.Now().UTC(), swapID)
	if err != nil {
		return fmt.Errorf("journal: set status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("journal: swap %d: %w", swapID, apperr.ErrNotFound)
	}
	return nil
}

func (db *DB) touch(ctx context.Context, swapID int64) error {
	_, err := db.conn.ExecContext(ctx, `UPDATE swaps SET updated_at = ? WHERE id = ?`, time.Now().UTC(), swapID)
	if err != nil {
		return fmt.Errorf("journal: touch swap: %w", err)
	}
	return nil
}

// Pending returns the most recent pending swap with its steps, or
// apperr.ErrNotFound when every recorded swap is closed.
func (db *DB) Pending(ctx context.Context) (*Swap, error) {
	var (
		s      Swap
		status string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, status, started_at FROM swaps WHERE status = ? ORDER BY id DESC LIMIT 1`,
		string(StatusPending)).Scan(&s.ID, &status, &s.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("journal: pending swap: %w", err)
	}
	s.Status = Status(status)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT seq, src, dst, done FROM swap_steps WHERE swap_id = ? ORDER BY seq`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("journal: swap steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var st Step
		if err := rows.Scan(&st.Seq, &st.Src, &st.Dst, &st.Done); err != nil {
			return nil, err
		}
		s.Steps = append(s.Steps, st)
	}
	return &s, rows.Err()
}
