// Package export mirrors the JSON exercise store into a SQLite database for ad hoc
// querying. The JSON files stay the source of truth; every export rebuilds the tables.
package export

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/faizmokh/liftlog/internal/exercise"
)

const schema = `
DROP TABLE IF EXISTS workouts;
DROP TABLE IF EXISTS exercises;
CREATE TABLE exercises (
	slug    TEXT PRIMARY KEY,
	title   TEXT NOT NULL,
	muscles TEXT NOT NULL
);
CREATE TABLE workouts (
	slug       TEXT NOT NULL REFERENCES exercises(slug),
	date       TEXT NOT NULL,
	position   INTEGER NOT NULL,
	set_number INTEGER NOT NULL,
	weight     REAL NOT NULL,
	reps       INTEGER NOT NULL
);
CREATE INDEX workouts_date ON workouts(date);
`

// Summary counts what an export wrote.
type Summary struct {
	Exercises int
	Workouts  int
	Sets      int
}

// ToSQLite writes every exercise in store into the database at path, creating it if
// needed. The whole export runs in one transaction.
func ToSQLite(ctx context.Context, store *exercise.Store, path string) (Summary, error) {
	entries, err := store.Exercises(ctx)
	if err != nil {
		return Summary{}, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Summary{}, fmt.Errorf("creating export dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening export db: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Summary{}, fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return Summary{}, fmt.Errorf("creating export tables: %w", err)
	}

	insertExercise, err := tx.PrepareContext(ctx, `INSERT INTO exercises (slug, title, muscles) VALUES (?, ?, ?)`)
	if err != nil {
		return Summary{}, err
	}
	defer insertExercise.Close()
	insertSet, err := tx.PrepareContext(ctx,
		`INSERT INTO workouts (slug, date, position, set_number, weight, reps) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Summary{}, err
	}
	defer insertSet.Close()

	var sum Summary
	for _, entry := range entries {
		rec, err := store.Load(ctx, entry.Slug)
		if err != nil {
			return Summary{}, err
		}
		muscles, err := json.Marshal(rec.Metadata.Muscles)
		if err != nil {
			return Summary{}, err
		}
		if _, err := insertExercise.ExecContext(ctx, entry.Slug, rec.Metadata.Title, string(muscles)); err != nil {
			return Summary{}, fmt.Errorf("inserting exercise %s: %w", entry.Slug, err)
		}
		sum.Exercises++

		for pos, w := range rec.Log {
			for i, set := range w.Sets {
				if _, err := insertSet.ExecContext(ctx, entry.Slug, w.Date, pos, i+1, set.Weight, set.Reps); err != nil {
					return Summary{}, fmt.Errorf("inserting set for %s on %s: %w", entry.Slug, w.Date, err)
				}
				sum.Sets++
			}
			sum.Workouts++
		}
	}

	if err := tx.Commit(); err != nil {
		return Summary{}, fmt.Errorf("committing export: %w", err)
	}
	return sum, nil
}
