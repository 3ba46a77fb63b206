package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/cognicore/wordreplacer/pkg/wordreplacer/internalerr"
	"github.com/cognicore/wordreplacer/pkg/wordreplacer/store"
)

func openTemp(t *testing.T) store.Store {
	t.Helper()
	st, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

// TestSQLiteIntegrationBasic tests basic append and read back
func TestSQLiteIntegrationBasic(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	created := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.UTC)
	run := store.Run{
		ID:        "01HQ0000000000000000000001",
		Input:     "quickly, run",
		Output:    "rapidly, run",
		Status:    store.StatusOK,
		CreatedAt: created,
		Decisions: []store.Decision{
			{Word: "quickly,", Tag: "RB", WordType: "adverb", Reason: "replaced", Replacement: "rapidly,"},
			{Word: "run", Tag: "VB", WordType: "verb", Reason: "not_found"},
		},
	}
	if err := st.AppendRun(ctx, run); err != nil {
		t.Fatalf("AppendRun: %v", err)
	}

	got, err := st.GetRun(ctx, run.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("run mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLiteGetRunNotFound(t *testing.T) {
	_, err := openTemp(t).GetRun(context.Background(), "nope")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteAppendRequiresID(t *testing.T) {
	err := openTemp(t).AppendRun(context.Background(), store.Run{})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSQLiteRecentRuns(t *testing.T) {
	ctx := context.Background()
	st := openTemp(t)

	for i := 0; i < 4; i++ {
		err := st.AppendRun(ctx, store.Run{
			ID:        fmt.Sprintf("run-%d", i),
			Input:     "in",
			Output:    "out",
			Status:    store.StatusRateLimited,
			CreatedAt: time.Now(),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	runs, err := st.RecentRuns(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-3" || runs[1].ID != "run-2" {
		t.Errorf("unexpected order: %s, %s", runs[0].ID, runs[1].ID)
	}
	if len(runs[0].Decisions) != 0 {
		t.Errorf("expected no decisions, got %v", runs[0].Decisions)
	}
}

func TestSQLiteUpsertAndReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	st, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	st.AppendRun(ctx, store.Run{ID: "x", Output: "first", Status: store.StatusOK, CreatedAt: time.Now()})
	st.AppendRun(ctx, store.Run{ID: "x", Output: "second", Status: store.StatusOK, CreatedAt: time.Now()})
	st.Close()

	st, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()

	got, err := st.GetRun(ctx, "x")
	if err != nil {
		t.Fatal(err)
	}
	if got.Output != "second" {
		t.Errorf("expected upserted output, got %q", got.Output)
	}
}
