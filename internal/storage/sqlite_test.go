package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveRunAssignsID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Variant: "soundless", Seed: 42, Result: ResultCaught, Score: 1})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("expected a UUID, got %q", id)
	}

	runs, err := store.RecentRuns("soundless", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != id || runs[0].Seed != 42 || runs[0].Result != ResultCaught {
		t.Errorf("unexpected runs %+v", runs)
	}

	if _, err := store.SaveRun(Run{}); err == nil {
		t.Error("a run without a variant should be rejected")
	}

	id2, err := store.SaveRun(Run{Variant: "soundless"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, _ = store.RecentRuns("soundless", 1)
	if runs[0].ID != id2 || runs[0].Result != ResultAbandoned {
		t.Errorf("newest run should come first with a default result, got %+v", runs[0])
	}
}

func TestRecentRunsFiltersVariant(t *testing.T) {
	store := openTestStore(t)

	for _, v := range []string{"soundless", "soundless_swarm", "soundless"} {
		if _, err := store.SaveRun(Run{Variant: v, Result: ResultCaught}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		variant string
		want    int
	}{
		{"soundless", 2},
		{"soundless_swarm", 1},
		{"", 3},
		{"missing", 0},
	}
	for _, tc := range tests {
		runs, err := store.RecentRuns(tc.variant, 10)
		if err != nil {
			t.Fatalf("RecentRuns(%q) failed: %v", tc.variant, err)
		}
		if len(runs) != tc.want {
			t.Errorf("RecentRuns(%q) = %d runs, expected %d", tc.variant, len(runs), tc.want)
		}
	}
}

func TestBestRunsOrdering(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{ID: "slow-win", Result: ResultWin, Score: 3, Duration: 300},
		{ID: "high-loss", Result: ResultCaught, Score: 2, Duration: 200},
		{ID: "fast-win", Result: ResultWin, Score: 3, Duration: 120},
		{ID: "low-loss", Result: ResultCaught, Score: 0, Duration: 500},
		{ID: "long-loss", Result: ResultCaught, Score: 2, Duration: 400},
	}
	for _, r := range runs {
		r.Variant = "soundless"
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	best, err := store.BestRuns("soundless", 10)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}

	want := []string{"fast-win", "slow-win", "long-loss", "high-loss", "low-loss"}
	if len(best) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(best))
	}
	for i, id := range want {
		if best[i].ID != id {
			t.Errorf("position %d: got %s, expected %s", i, best[i].ID, id)
		}
	}

	top, _ := store.BestRuns("soundless", 2)
	if len(top) != 2 {
		t.Errorf("limit not applied, got %d", len(top))
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("soundless")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty != (RunStats{}) {
		t.Errorf("empty log should give zero stats, got %+v", empty)
	}

	for _, r := range []Run{
		{Result: ResultWin, Score: 3, Duration: 240, PeakNoise: 35},
		{Result: ResultWin, Score: 3, Duration: 180, PeakNoise: 20},
		{Result: ResultCaught, Score: 1, Duration: 50, PeakNoise: 88},
		{Result: ResultAbandoned},
	} {
		r.Variant = "soundless"
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	st, err := store.Stats("soundless")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	want := RunStats{Runs: 4, Wins: 2, Caught: 1, BestScore: 3, FastestWin: 180, PeakNoise: 88}
	if st != want {
		t.Errorf("Stats() = %+v, expected %+v", st, want)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Variant: "soundless"})
	store.SaveRun(Run{Variant: "soundless_swarm"})

	if err := store.ClearRuns("soundless"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	all, _ := store.RecentRuns("", 10)
	if len(all) != 1 || all[0].Variant != "soundless_swarm" {
		t.Errorf("only the other variant should remain, got %+v", all)
	}
}
