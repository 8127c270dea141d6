package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arkanoid/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleReplay(seed int64, result string, score int) ReplayRecord {
	return ReplayRecord{
		Seed:       seed,
		Difficulty: "normal",
		ConfigYAML: []byte("ball:\n  velocity: 3\n"),
		Result:     result,
		Score:      score,
		Total:      32,
		Ticks:      1234,
		Inputs: []core.InputEvent{
			{Tick: 0, Action: core.ActionRight},
			{Tick: 12, Action: core.ActionStop},
			{Tick: 12, Action: core.ActionFire},
			{Tick: 400, Action: core.ActionLeft},
		},
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.SaveReplay(ctx, sampleReplay(1, "lost", 3))
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if _, err := store.Replay(ctx, id); err != nil {
		t.Errorf("replay should survive a reopen: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	want := sampleReplay(42, "won", 32)
	id, err := store.SaveReplay(ctx, want)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, err := store.Replay(ctx, id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}

	if got.ID != id || got.Seed != 42 || got.Result != "won" || got.Score != 32 || got.Total != 32 || got.Ticks != 1234 {
		t.Errorf("Replay() = %+v", got)
	}
	if got.Difficulty != "normal" || string(got.ConfigYAML) != string(want.ConfigYAML) {
		t.Errorf("config not preserved: %q / %q", got.Difficulty, got.ConfigYAML)
	}
	if len(got.Inputs) != len(want.Inputs) {
		t.Fatalf("got %d inputs, expected %d", len(got.Inputs), len(want.Inputs))
	}
	for i := range want.Inputs {
		if got.Inputs[i] != want.Inputs[i] {
			t.Errorf("input %d = %+v, expected %+v", i, got.Inputs[i], want.Inputs[i])
		}
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Replay(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay(999) = %v, expected ErrNotFound", err)
	}
}

func TestStoreListReplays(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := range 5 {
		if _, err := store.SaveReplay(ctx, sampleReplay(int64(i), "lost", i)); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	list, err := store.ListReplays(ctx, 3)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(list))
	}

	// Newest first
	if list[0].Seed != 4 || list[2].Seed != 2 {
		t.Errorf("unexpected order: seeds %d, %d, %d", list[0].Seed, list[1].Seed, list[2].Seed)
	}
	if list[0].Inputs != nil {
		t.Error("ListReplays should not load inputs")
	}

	all, err := store.ListReplays(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Errorf("default limit should include all 5 replays, got %d", len(all))
	}
}

func TestStoreEmptyList(t *testing.T) {
	store := openTestStore(t)

	list, err := store.ListReplays(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("Expected empty list, got %d", len(list))
	}
}

func TestStoreReplayWithoutInputs(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleReplay(7, "lost", 0)
	r.Inputs = nil
	id, err := store.SaveReplay(ctx, r)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.Replay(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Inputs) != 0 {
		t.Errorf("expected no inputs, got %v", got.Inputs)
	}
}

func TestStoreDeleteReplay(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	id, err := store.SaveReplay(ctx, sampleReplay(1, "won", 32))
	if err != nil {
		t.Fatal(err)
	}

	if err := store.DeleteReplay(ctx, id); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, err := store.Replay(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted replay should be gone, got %v", err)
	}
	if err := store.DeleteReplay(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, expected ErrNotFound", err)
	}

	var n int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_inputs WHERE replay_id = ?", id).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("%d orphaned inputs left behind", n)
	}
}

func TestStoreTildeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.arkanoid/replays.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".arkanoid", "replays.db")); err != nil {
		t.Errorf("database should be created under HOME: %v", err)
	}
}
