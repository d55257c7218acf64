package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "duotimer-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestSnapshotPutGetOverwriteDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	saved := parseRFC3339(t, "2026-02-09T12:00:00Z")

	_, err := repo.GetSnapshot(ctx, "study-timer-1")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.PutSnapshot(ctx, Snapshot{Key: "study-timer-1", Payload: []byte(`{"title":"A"}`), UpdatedAt: saved}))
	got, err := repo.GetSnapshot(ctx, "study-timer-1")
	require.NoError(t, err)
	require.Equal(t, `{"title":"A"}`, string(got.Payload))
	require.True(t, got.UpdatedAt.Equal(saved))

	require.NoError(t, repo.PutSnapshot(ctx, Snapshot{Key: "study-timer-1", Payload: []byte(`{"title":"B"}`), UpdatedAt: saved.Add(time.Second)}))
	got, err = repo.GetSnapshot(ctx, "study-timer-1")
	require.NoError(t, err)
	require.Equal(t, `{"title":"B"}`, string(got.Payload))

	list, err := repo.ListSnapshots(ctx, SnapshotListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1, "upsert must not duplicate the slot")

	require.NoError(t, repo.DeleteSnapshot(ctx, "study-timer-1"))
	require.ErrorIs(t, repo.DeleteSnapshot(ctx, "study-timer-1"), ErrNotFound)
}

func TestSnapshotKeysAreIndependent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutSnapshot(ctx, Snapshot{Key: "b", Payload: []byte("2")}))
	require.NoError(t, repo.PutSnapshot(ctx, Snapshot{Key: "a", Payload: []byte("1")}))

	list, err := repo.ListSnapshots(ctx, SnapshotListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a", list[0].Key)
	require.Equal(t, "b", list[1].Key)

	page, err := repo.ListSnapshots(ctx, SnapshotListFilter{Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "b", page[0].Key)
}

func TestSnapshotRequiresKey(t *testing.T) {
	repo := setupRepo(t)
	require.Error(t, repo.PutSnapshot(context.Background(), Snapshot{Key: "  ", Payload: []byte("{}")}))
}

func TestCompletionCreateListAndCount(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := parseRFC3339(t, "2026-02-09T09:00:00Z")

	items := []Completion{
		{ID: "c1", TimerKey: "study-timer-1", Mode: "focus", DurationSec: 1500, CompletedAt: base},
		{ID: "c2", TimerKey: "study-timer-1", Mode: "shortBreak", DurationSec: 300, CompletedAt: base.Add(30 * time.Minute)},
		{ID: "c3", TimerKey: "study-timer-1", Mode: "focus", DurationSec: 1500, CompletedAt: base.Add(60 * time.Minute)},
		{ID: "c4", TimerKey: "study-timer-2", Mode: "focus", DurationSec: 1500, CompletedAt: base.Add(90 * time.Minute)},
	}
	for _, item := range items {
		require.NoError(t, repo.CreateCompletion(ctx, item))
	}

	list, err := repo.ListCompletions(ctx, CompletionListFilter{TimerKey: "study-timer-1"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "c3", list[0].ID, "newest first")
	require.True(t, list[2].CompletedAt.Equal(base))

	focus, err := repo.ListCompletions(ctx, CompletionListFilter{Mode: "focus", Limit: 2})
	require.NoError(t, err)
	require.Len(t, focus, 2)
	require.Equal(t, "c4", focus[0].ID)

	since := base.Add(45 * time.Minute)
	counts, err := repo.CountCompletions(ctx, CompletionListFilter{TimerKey: "study-timer-1", Since: &since})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"focus": 1}, counts)

	all, err := repo.CountCompletions(ctx, CompletionListFilter{})
	require.NoError(t, err)
	require.Equal(t, map[string]int{"focus": 3, "shortBreak": 1}, all)
}

func TestOpenSQLiteMigrates(t *testing.T) {
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "nested.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.PutSnapshot(context.Background(), Snapshot{Key: "k", Payload: []byte("{}")}))
}
