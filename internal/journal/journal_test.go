package journal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func planned() []Step {
	return []Step{
		{Src: "articles", Dst: "articles_old"},
		{Src: "articles_new", Dst: "articles"},
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM swaps`).Scan(&count); err != nil {
		t.Fatalf("swaps table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM swap_steps`).Scan(&count); err != nil {
		t.Fatalf("swap_steps table missing: %v", err)
	}
}

func TestPending_NoneRecorded(t *testing.T) {
	db := testDB(t)
	if _, err := db.Pending(context.Background()); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBeginAndPending(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	swap, err := db.Begin(ctx, planned())
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if swap.Status != StatusPending || len(swap.Steps) != 2 {
		t.Fatalf("swap = %+v", swap)
	}
	if err := db.SetDone(ctx, swap.ID, 0, true); err != nil {
		t.Fatalf("SetDone: %v", err)
	}

	got, err := db.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if got.ID != swap.ID {
		t.Errorf("pending id = %d, want %d", got.ID, swap.ID)
	}
	if !got.Steps[0].Done || got.Steps[1].Done {
		t.Errorf("steps = %+v, want first done only", got.Steps)
	}
	if got.Steps[1].Src != "articles_new" || got.Steps[1].Dst != "articles" {
		t.Errorf("step 1 = %+v", got.Steps[1])
	}
}

func TestSetDone_Undo(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	swap, _ := db.Begin(ctx, planned())
	_ = db.SetDone(ctx, swap.ID, 1, true)
	if err := db.SetDone(ctx, swap.ID, 1, false); err != nil {
		t.Fatalf("SetDone: %v", err)
	}
	got, _ := db.Pending(ctx)
	if got.Steps[1].Done {
		t.Error("step 1 should be undone")
	}
}

func TestCommitClosesSwap(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	swap, _ := db.Begin(ctx, planned())
	if err := db.SetStatus(ctx, swap.ID, StatusCommitted); err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if _, err := db.Pending(ctx); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after commit", err)
	}
}

func TestSetDone_UnknownStep(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	swap, _ := db.Begin(ctx, planned())
	if err := db.SetDone(ctx, swap.ID, 7, true); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPending_ReturnsLatest(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	first, _ := db.Begin(ctx, planned())
	second, _ := db.Begin(ctx, planned()[:1])
	got, err := db.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if got.ID != second.ID || got.ID == first.ID {
		t.Errorf("pending id = %d, want %d", got.ID, second.ID)
	}
	if len(got.Steps) != 1 {
		t.Errorf("steps = %d, want 1", len(got.Steps))
	}
}
