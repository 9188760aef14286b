package repos

import (
	"context"
	"testing"

	"github.com/yungbote/lifeweeks-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lifeweeks-backend/internal/domain"
)

func strptr(s string) *string { return &s }

func TestWeekNoteGetByKeyMissing(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewWeekNoteRepo(gdb, testutil.Logger(t))

	got, err := repo.GetByKey(context.Background(), tx, types.WeekKey{Year: 2019, WeekOfYear: 33})
	if err != nil {
		t.Fatalf("GetByKey: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil note, got %+v", got)
	}
}

func TestWeekNoteUpsertInsertsThenUpdates(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewWeekNoteRepo(gdb, testutil.Logger(t))
	ctx := context.Background()
	key := types.WeekKey{Year: 2022, WeekOfYear: 7}

	created, err := repo.Upsert(ctx, tx, key, strptr("first"), false)
	if err != nil {
		t.Fatalf("Upsert (insert): %v", err)
	}
	if created.NoteText() != "first" || created.IsLived {
		t.Fatalf("created: note=%q lived=%v", created.NoteText(), created.IsLived)
	}

	updated, err := repo.Upsert(ctx, tx, key, strptr("second"), true)
	if err != nil {
		t.Fatalf("Upsert (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("update created a new row: %s vs %s", updated.ID, created.ID)
	}
	if updated.NoteText() != "second" || !updated.IsLived {
		t.Fatalf("updated: note=%q lived=%v", updated.NoteText(), updated.IsLived)
	}

	var count int64
	if err := tx.Model(&types.WeekNote{}).
		Where("year = ? AND week_of_year = ?", key.Year, key.WeekOfYear).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("row count at coordinate: got=%d want=1", count)
	}
}

func TestWeekNoteUpsertIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewWeekNoteRepo(gdb, testutil.Logger(t))
	ctx := context.Background()
	key := types.WeekKey{Year: 2023, WeekOfYear: 40}

	first, err := repo.Upsert(ctx, tx, key, strptr("same"), true)
	if err != nil {
		t.Fatalf("Upsert (first): %v", err)
	}
	second, err := repo.Upsert(ctx, tx, key, strptr("same"), true)
	if err != nil {
		t.Fatalf("Upsert (second): %v", err)
	}
	if second.ID != first.ID || second.NoteText() != first.NoteText() || second.IsLived != first.IsLived {
		t.Fatalf("repeated upsert changed the row: %+v vs %+v", second, first)
	}
}

func TestWeekNoteGetAll(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	repo := NewWeekNoteRepo(gdb, testutil.Logger(t))
	ctx := context.Background()

	keys := []types.WeekKey{
		{Year: 2010, WeekOfYear: 1},
		{Year: 2010, WeekOfYear: 2},
		{Year: 2011, WeekOfYear: 1},
	}
	for _, k := range keys {
		if _, err := repo.Upsert(ctx, tx, k, strptr("n"), false); err != nil {
			t.Fatalf("Upsert %+v: %v", k, err)
		}
	}

	all, err := repo.GetAll(ctx, tx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	found := map[types.WeekKey]bool{}
	for _, n := range all {
		found[n.Key()] = true
	}
	for _, k := range keys {
		if !found[k] {
			t.Fatalf("GetAll missing %+v", k)
		}
	}
}
