package exercise

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRebuildIndexSortsByTitle(t *testing.T) {
	ctx := context.Background()
	store, mgr := newTestStore(t)

	mustLog(t, store, "Squat", "2024-01-14", Set{Weight: 225, Reps: 5})
	mustLog(t, store, "Bench Press", "2024-01-15", Set{Weight: 135, Reps: 10})
	mustLog(t, store, "arnold press", "2024-01-15", Set{Weight: 40, Reps: 10})

	entries, err := store.RebuildIndex(ctx)
	if err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	want := []IndexEntry{
		{Slug: "bench-press", Title: "Bench Press"},
		{Slug: "squat", Title: "Squat"},
		{Slug: "arnold-press", Title: "arnold press"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("index mismatch (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(mgr.IndexPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	wantFile := `[
  {
    "slug": "bench-press",
    "title": "Bench Press"
  },
  {
    "slug": "squat",
    "title": "Squat"
  },
  {
    "slug": "arnold-press",
    "title": "arnold press"
  }
]`
	if string(got) != wantFile {
		t.Fatalf("index.json = %q, want %q", got, wantFile)
	}
}

func TestRebuildIndexIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, mgr := newTestStore(t)
	mustLog(t, store, "Row", "2024-01-14", Set{Weight: 95, Reps: 12})
	mustLog(t, store, "Dip", "2024-01-14", Set{Weight: 0, Reps: 15})

	if _, err := store.RebuildIndex(ctx); err != nil {
		t.Fatalf("RebuildIndex first: %v", err)
	}
	first, err := os.ReadFile(mgr.IndexPath())
	if err != nil {
		t.Fatalf("ReadFile first: %v", err)
	}

	entries, err := store.RebuildIndex(ctx)
	if err != nil {
		t.Fatalf("RebuildIndex second: %v", err)
	}
	second, err := os.ReadFile(mgr.IndexPath())
	if err != nil {
		t.Fatalf("ReadFile second: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("index changed between runs:\n%s\n---\n%s", first, second)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (index.json must not list itself)", len(entries))
	}
}

func TestRebuildIndexEmptyStoreWritesEmptyArray(t *testing.T) {
	store, mgr := newTestStore(t)

	if _, err := store.RebuildIndex(context.Background()); err != nil {
		t.Fatalf("RebuildIndex: %v", err)
	}
	got, err := os.ReadFile(mgr.IndexPath())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("index.json = %q, want []", got)
	}
}

func TestRebuildIndexFailsOnCorruptFile(t *testing.T) {
	store, mgr := newTestStore(t)
	mustLog(t, store, "Squat", "2024-01-14", Set{Weight: 225, Reps: 5})
	if err := os.WriteFile(mgr.ExercisePath("zz-broken"), []byte("{"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := store.RebuildIndex(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("RebuildIndex error = %v, want *ParseError", err)
	}
	if _, err := os.Stat(mgr.IndexPath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("index.json written despite corrupt store: %v", err)
	}
}
