package runstore

import (
	"database/sql"
	"testing"
	"time"

	"github.com/crossplay/xwordgen/pkg/solver"
	_ "github.com/mattn/go-sqlite3"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	store, err := NewStore(db)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestNewStore_RejectsNilDB(t *testing.T) {
	if _, err := NewStore(nil); err == nil {
		t.Fatal("expected an error for a nil database connection")
	}
}

func TestSaveAndGetRun_RoundTrips(t *testing.T) {
	store := openTestStore(t)

	run := Run{
		StartedAt:  time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		NumRows:    4,
		NumCols:    5,
		RandomSeed: 123,
		Solved:     true,
		Elapsed:    250 * time.Millisecond,
		Steps: []solver.StepResult{
			{Generation: 1, TotalEntries: 2, EntryIndex: 0, OptionsBefore: 3, Word: "CAT", ExpectedReward: 2, NumVisits: 5},
		},
	}

	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatal(err)
	}

	got, err := store.GetRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if got == nil {
		t.Fatal("expected to find the saved run")
	}
	if got.NumRows != 4 || got.NumCols != 5 || !got.Solved {
		t.Errorf("unexpected run fields: %+v", got)
	}
	if len(got.Steps) != 1 || got.Steps[0].Word != "CAT" {
		t.Errorf("expected steps to round-trip, got %+v", got.Steps)
	}
}

func TestCreateRunThenUpdateRun_ReflectsFinalOutcome(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateRun(time.Now(), 4, 5, 42)
	if err != nil {
		t.Fatal(err)
	}

	pending, err := store.GetRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if pending.Solved {
		t.Fatal("expected a freshly created run to be unsolved")
	}

	steps := []solver.StepResult{{Generation: 1, Word: "DOG"}}
	if err := store.UpdateRun(id, true, 500*time.Millisecond, steps); err != nil {
		t.Fatal(err)
	}

	final, err := store.GetRun(id)
	if err != nil {
		t.Fatal(err)
	}
	if !final.Solved || len(final.Steps) != 1 || final.Steps[0].Word != "DOG" {
		t.Errorf("expected updated run to reflect the final outcome, got %+v", final)
	}
}

func TestGetRun_ReturnsNilForMissingID(t *testing.T) {
	store := openTestStore(t)
	got, err := store.GetRun(999)
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Error("expected nil for a missing run ID")
	}
}

func TestListRuns_OrdersMostRecentFirst(t *testing.T) {
	store := openTestStore(t)

	older := Run{StartedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), NumRows: 3, NumCols: 3, RandomSeed: 1}
	newer := Run{StartedAt: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), NumRows: 3, NumCols: 3, RandomSeed: 2}

	if _, err := store.SaveRun(older); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveRun(newer); err != nil {
		t.Fatal(err)
	}

	summaries, err := store.ListRuns()
	if err != nil {
		t.Fatal(err)
	}
	if len(summaries) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(summaries))
	}
	if summaries[0].RandomSeed != 2 {
		t.Errorf("expected the newer run first, got seed %d", summaries[0].RandomSeed)
	}
}
