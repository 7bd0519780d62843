package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/faizmokh/liftlog/internal/exercise"
	"github.com/faizmokh/liftlog/internal/files"
)

func newTestStore(t *testing.T) (*exercise.Store, *files.Manager) {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return exercise.NewStore(mgr, nil), mgr
}

func fixedNow(date string) func() time.Time {
	return func() time.Time {
		d, _ := time.ParseInLocation(exercise.DateLayout, date, time.Local)
		return d.Add(18 * time.Hour)
	}
}

func runSession(t *testing.T, store *exercise.Store, input string, opts Options) (Report, string) {
	t.Helper()
	out := &bytes.Buffer{}
	report, err := New(store, strings.NewReader(input), out, opts).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	return report, out.String()
}

func TestRunLogsNewExercise(t *testing.T) {
	store, mgr := newTestStore(t)

	input := strings.Join([]string{
		"2024-01-15",
		"Bench Press",
		"Chest, Triceps,",
		"135", "10",
		"135", "8",
		"",
		"",
	}, "\n")
	report, out := runSession(t, store, input, Options{})

	if diff := cmp.Diff([]string{"bench-press"}, report.Saved); diff != "" {
		t.Fatalf("report.Saved mismatch (-want +got):\n%s", diff)
	}
	assertContains(t, out, "No exercises logged for 2024-01-15")
	assertContains(t, out, "Creating new exercise: Bench Press")
	assertContains(t, out, "✓ Saved to bench-press.json")
	assertContains(t, out, "✓ Workout logged successfully!")

	rec, err := store.Load(context.Background(), "bench-press")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := &exercise.Record{
		Metadata: exercise.Metadata{Title: "Bench Press", Muscles: []string{"Chest", "Triceps"}},
		Log: []exercise.Workout{{
			Date: "2024-01-15",
			Sets: []exercise.Set{{Weight: 135, Reps: 10}, {Weight: 135, Reps: 8}},
		}},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}

	if _, err := os.Stat(mgr.IndexPath()); err != nil {
		t.Fatalf("index.json not written: %v", err)
	}
}

func TestRunAppendsToExistingExerciseOnDefaultDate(t *testing.T) {
	store, _ := newTestStore(t)
	runSession(t, store, "2024-01-15\nBench Press\nChest\n135\n10\n\n\n", Options{})

	input := strings.Join([]string{
		"",
		"bench press!",
		"140", "abc", "8",
		"",
		"",
	}, "\n")
	_, out := runSession(t, store, input, Options{Now: fixedNow("2024-01-22")})

	assertContains(t, out, "default: 2024-01-22")
	assertContains(t, out, "Logging: Bench Press")
	assertContains(t, out, "Last workout: 2024-01-15")
	assertContains(t, out, "Set 1: 135lbs x 10 reps")
	assertContains(t, out, "reps must be a positive whole number")
	assertNotContains(t, out, "Muscles worked")

	rec, err := store.Load(context.Background(), "bench-press")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rec.Log) != 2 || rec.Log[0].Date != "2024-01-22" {
		t.Fatalf("log = %#v, want 2 entries newest first", rec.Log)
	}
	if rec.Log[0].Sets[0] != (exercise.Set{Weight: 140, Reps: 8}) {
		t.Fatalf("new set = %#v", rec.Log[0].Sets[0])
	}
}

func TestRunShowsSameDateSummaryAndWorkout(t *testing.T) {
	store, _ := newTestStore(t)
	runSession(t, store, "2024-01-15\nSquat\nQuads\n225\n5\n\n\n", Options{})

	_, out := runSession(t, store, "Squat\n235\n3\n\n\n", Options{Date: "2024-01-15"})

	assertNotContains(t, out, "Workout date")
	assertContains(t, out, "=== Workout Summary for 2024-01-15 ===")
	assertContains(t, out, "Workout on 2024-01-15:")

	rec, err := store.Load(context.Background(), "squat")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rec.Log) != 2 || rec.Log[1].Sets[0].Weight != 235 {
		t.Fatalf("same-date entry not appended after the first: %#v", rec.Log)
	}
}

func TestRunRepromptsInvalidInput(t *testing.T) {
	store, _ := newTestStore(t)

	input := strings.Join([]string{
		"15/01/2024",
		"2024-01-15",
		"!!!",
		"Dip",
		"",
		"heavy", "-5", "0",
		"0", "12",
		"",
		"",
	}, "\n")
	report, out := runSession(t, store, input, Options{})

	assertContains(t, out, `"15/01/2024" is not a valid date`)
	assertContains(t, out, `"!!!" has no letters or digits`)
	assertContains(t, out, `weight must be a non-negative number, got "heavy"`)
	assertContains(t, out, `weight must be a non-negative number, got "-5"`)
	assertContains(t, out, `reps must be a positive whole number, got "0"`)
	if len(report.Saved) != 1 || report.Saved[0] != "dip" {
		t.Fatalf("report.Saved = %#v", report.Saved)
	}

	rec, err := store.Load(context.Background(), "dip")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rec.Metadata.Muscles) != 0 {
		t.Fatalf("muscles = %#v, want empty", rec.Metadata.Muscles)
	}
	if rec.Log[0].Sets[0] != (exercise.Set{Weight: 0, Reps: 12}) {
		t.Fatalf("set = %#v", rec.Log[0].Sets[0])
	}
}

func TestRunRefusesIndexAsExerciseName(t *testing.T) {
	store, mgr := newTestStore(t)

	report, out := runSession(t, store, "2024-01-15\nIndex\nIndex Finger Curl\n\n10\n12\n\n\n", Options{})

	assertContains(t, out, `"Index" would overwrite index.json`)
	if diff := cmp.Diff([]string{"index-finger-curl"}, report.Saved); diff != "" {
		t.Fatalf("report.Saved mismatch (-want +got):\n%s", diff)
	}
	entries, err := store.Exercises(context.Background())
	if err != nil {
		t.Fatalf("Exercises: %v", err)
	}
	if len(entries) != 1 || entries[0].Slug != "index-finger-curl" {
		t.Fatalf("entries = %#v", entries)
	}
	if _, err := os.Stat(mgr.IndexPath()); err != nil {
		t.Fatalf("index.json missing: %v", err)
	}
}

func TestRunStoresTitleAsEntered(t *testing.T) {
	store, _ := newTestStore(t)

	runSession(t, store, "2024-01-15\n Goblet Squat  \n\n40\n10\n\n\n", Options{})

	rec, err := store.Load(context.Background(), "goblet-squat")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.Metadata.Title != " Goblet Squat  " {
		t.Fatalf("title = %q, want raw input", rec.Metadata.Title)
	}
}

func TestRunWithoutSetsSavesNothing(t *testing.T) {
	store, mgr := newTestStore(t)

	report, out := runSession(t, store, "2024-01-15\nFace Pull\nRear Delts\n\n\n", Options{})

	assertContains(t, out, "No sets logged for this exercise.")
	if len(report.Saved) != 0 {
		t.Fatalf("report.Saved = %#v, want empty", report.Saved)
	}
	if _, err := os.Stat(mgr.ExercisePath("face-pull")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("face-pull.json exists: %v", err)
	}
}

func TestRunEndOfInputDropsIncompleteSet(t *testing.T) {
	store, mgr := newTestStore(t)

	report, out := runSession(t, store, "2024-01-15\nSquat\nQuads\n225\n5\n245", Options{})

	assertContains(t, out, "Set 2 discarded")
	if len(report.Saved) != 1 {
		t.Fatalf("report.Saved = %#v, want squat", report.Saved)
	}
	rec, err := store.Load(context.Background(), "squat")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rec.Log[0].Sets) != 1 {
		t.Fatalf("sets = %#v, want only the complete set", rec.Log[0].Sets)
	}
	if _, err := os.Stat(mgr.IndexPath()); err != nil {
		t.Fatalf("index.json not written after early EOF: %v", err)
	}
}

func TestRunEmptyInputIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t)

	report, out := runSession(t, store, "", Options{Now: fixedNow("2024-05-01")})

	if report.Date != "2024-05-01" || len(report.Saved) != 0 {
		t.Fatalf("report = %+v", report)
	}
	assertContains(t, out, "Logging workout for: 2024-05-01")
}

func TestRunFailsOnCorruptExercise(t *testing.T) {
	store, mgr := newTestStore(t)
	if err := mgr.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := os.WriteFile(mgr.ExercisePath("squat"), []byte("{oops"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := New(store, strings.NewReader("2024-01-15\nSquat\n"), &bytes.Buffer{}, Options{}).Run(context.Background())
	var parseErr *exercise.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Run error = %v, want *exercise.ParseError", err)
	}
}

func TestRunRejectsInvalidPresetDate(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := New(store, strings.NewReader(""), &bytes.Buffer{}, Options{Date: "tomorrow"}).Run(context.Background()); err == nil {
		t.Fatalf("Run accepted invalid preset date")
	}
}

func TestParseMuscles(t *testing.T) {
	got := ParseMuscles(" Chest ,, Triceps ,")
	if diff := cmp.Diff([]string{"Chest", "Triceps"}, got); diff != "" {
		t.Fatalf("ParseMuscles mismatch (-want +got):\n%s", diff)
	}
	if got := ParseMuscles(""); got == nil || len(got) != 0 {
		t.Fatalf("ParseMuscles(\"\") = %#v, want empty non-nil", got)
	}
}

func TestParseWeightRejectsNaN(t *testing.T) {
	for _, bad := range []string{"NaN", "inf", "", "12kg"} {
		if _, err := ParseWeight(bad); err == nil {
			t.Errorf("ParseWeight(%q) accepted", bad)
		}
	}
	if w, err := ParseWeight(" 132.5 "); err != nil || w != 132.5 {
		t.Fatalf("ParseWeight(132.5) = %v, %v", w, err)
	}
}

func assertContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q missing substring %q", output, want)
	}
}

func assertNotContains(t *testing.T, output, want string) {
	t.Helper()
	if strings.Contains(output, want) {
		t.Fatalf("output %q unexpectedly contained substring %q", output, want)
	}
}
