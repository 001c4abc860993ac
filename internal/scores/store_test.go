package scores_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"creditscores/internal/scores"
	"creditscores/internal/testsupport"
)

func TestOpenCreatesTable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	if got, want := store.Path(), cfg.DatabasePath(); got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}

	ctx := context.Background()
	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty table, got %d records", len(records))
	}
}

func TestCreateReturnsStoredRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	rec, err := store.Create(ctx, 720, 5)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected id to be assigned")
	}
	if rec.Score != 720 || rec.UserID != 5 {
		t.Fatalf("unexpected record: %#v", rec)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("expected created_at default to be populated")
	}

	fetched, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil || fetched.Score != 720 || fetched.UserID != 5 {
		t.Fatalf("unexpected fetched record: %#v", fetched)
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	rec, err := store.Get(context.Background(), 999)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil for missing id, got %#v", rec)
	}
}

func TestIDsIncreaseAndAreNeverReused(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	first := testsupport.NewRecord(t, store, 600, 1)
	second := testsupport.NewRecord(t, store, 610, 2)
	if second.ID <= first.ID {
		t.Fatalf("expected increasing ids, got %d then %d", first.ID, second.ID)
	}

	if _, err := store.Delete(ctx, second.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	third := testsupport.NewRecord(t, store, 620, 3)
	if third.ID <= second.ID {
		t.Fatalf("expected id %d to stay retired, got new id %d", second.ID, third.ID)
	}
}

func TestUpdateScore(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := testsupport.NewRecord(t, store, 720, 5)
	changes, err := store.UpdateScore(ctx, rec.ID, 680)
	if err != nil {
		t.Fatalf("UpdateScore failed: %v", err)
	}
	if changes != 1 {
		t.Fatalf("changes = %d, want 1", changes)
	}

	fetched, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched.Score != 680 || fetched.UserID != 5 {
		t.Fatalf("unexpected record after update: %#v", fetched)
	}
	if !fetched.CreatedAt.Equal(rec.CreatedAt) {
		t.Fatalf("created_at changed: %v -> %v", rec.CreatedAt, fetched.CreatedAt)
	}
}

func TestMissingIDMutationsAreNoOps(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	changes, err := store.UpdateScore(ctx, 42, 700)
	if err != nil {
		t.Fatalf("UpdateScore failed: %v", err)
	}
	if changes != 0 {
		t.Fatalf("update changes = %d, want 0", changes)
	}

	for i := 0; i < 2; i++ {
		changes, err = store.Delete(ctx, 42)
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if changes != 0 {
			t.Fatalf("delete changes = %d, want 0", changes)
		}
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no records to be created, got %d", count)
	}
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := testsupport.NewRecord(t, store, 700, 9)
	changes, err := store.Delete(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if changes != 1 {
		t.Fatalf("changes = %d, want 1", changes)
	}
	again, err := store.Delete(ctx, rec.ID)
	if err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
	if again != 0 {
		t.Fatalf("second delete changes = %d, want 0", again)
	}

	fetched, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched != nil {
		t.Fatalf("expected deleted record to be gone, got %#v", fetched)
	}
}

func TestListReturnsSurvivorsInInsertionOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	var ids []int64
	for i := int64(0); i < 5; i++ {
		ids = append(ids, testsupport.NewRecord(t, store, 600+i, i).ID)
	}
	for _, id := range []int64{ids[1], ids[3]} {
		if _, err := store.Delete(ctx, id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
	}

	records, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []int64{ids[0], ids[2], ids[4]}
	if len(records) != len(want) {
		t.Fatalf("expected %d survivors, got %d", len(want), len(records))
	}
	for i, rec := range records {
		if rec.ID != want[i] {
			t.Fatalf("records[%d].ID = %d, want %d", i, rec.ID, want[i])
		}
	}
}

func TestReopenKeepsRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := scores.Open(cfg)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	rec := testsupport.NewRecord(t, store, 750, 11)
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := testsupport.MustOpenStore(t, cfg)
	fetched, err := reopened.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fetched == nil || fetched.Score != 750 {
		t.Fatalf("expected record to survive reopen, got %#v", fetched)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "creditscores.db")
	store, err := scores.OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	store.Close()

	raw, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open failed: %v", err)
	}
	if _, err := raw.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	raw.Close()

	if _, err := scores.OpenPath(dbPath); !errors.Is(err, scores.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestHealthReportsDiagnostics(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	testsupport.NewRecord(t, store, 700, 1)
	testsupport.NewRecord(t, store, 710, 2)

	health, err := store.Health(context.Background())
	if err != nil {
		t.Fatalf("Health failed: %v", err)
	}
	if !health.TablePresent {
		t.Fatal("expected table to be present")
	}
	if health.Records != 2 {
		t.Fatalf("Records = %d, want 2", health.Records)
	}
	if health.IntegrityCheck != "ok" {
		t.Fatalf("IntegrityCheck = %q, want ok", health.IntegrityCheck)
	}
	if !health.Healthy() {
		t.Fatalf("expected healthy database, got %#v", health)
	}
}
