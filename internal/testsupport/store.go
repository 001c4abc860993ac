package testsupport

import (
	"context"
	"testing"

	"creditscores/internal/config"
	"creditscores/internal/scores"
)

// MustOpenStore opens a scores.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *scores.Store {
	t.Helper()

	store, err := scores.Open(cfg)
	if err != nil {
		t.Fatalf("scores.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewRecord inserts a credit score record for tests using the provided store.
func NewRecord(t testing.TB, store *scores.Store, score, userID int64) *scores.Record {
	t.Helper()

	rec, err := store.Create(context.Background(), score, userID)
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return rec
}
