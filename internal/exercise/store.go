package exercise

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/faizmokh/liftlog/internal/files"
)

// Store reads and writes exercise documents under a files.Manager directory.
// It is meant for a single process; concurrent writers are last-writer-wins.
type Store struct {
	manager *files.Manager
	logger  *zap.Logger
}

// NewStore wires a store using the shared files.Manager. A nil logger discards output.
func NewStore(manager *files.Manager, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{manager: manager, logger: logger}
}

// Manager exposes the underlying layout, mainly for callers that print file names.
func (s *Store) Manager() *files.Manager {
	return s.manager
}

// Load reads the document for slug. It returns ErrNotFound when no file exists and a
// *ParseError when the file cannot be decoded.
func (s *Store) Load(ctx context.Context, slug string) (*Record, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	rec, err := s.readRecord(s.manager.ExercisePath(slug))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded exercise", zap.String("slug", slug), zap.Int("workouts", len(rec.Log)))
	return rec, nil
}

// Save writes rec as the document for slug, replacing any previous content.
func (s *Store) Save(ctx context.Context, slug string, rec *Record) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := ValidateSlug(slug); err != nil {
		return err
	}
	if rec == nil {
		return errors.New("save: record is nil")
	}

	rec.normalize()
	data, err := encodeJSON(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", slug, err)
	}

	path := s.manager.ExercisePath(slug)
	if err := s.manager.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	s.logger.Debug("saved exercise", zap.String("slug", slug), zap.String("path", path))
	return nil
}

// LogResult describes what Log did.
type LogResult struct {
	Slug    string
	Created bool
	Saved   bool
	Record  *Record
}

// Log performs the full read-modify-write cycle for one exercise. Muscles are only
// used when the exercise is new. Nothing is written when sets is empty.
func (s *Store) Log(ctx context.Context, title string, muscles []string, date string, sets []Set) (LogResult, error) {
	slug := Slugify(title)
	if err := ValidateSlug(slug); err != nil {
		return LogResult{}, err
	}
	if !ValidDate(date) {
		return LogResult{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}

	result := LogResult{Slug: slug}
	rec, err := s.Load(ctx, slug)
	switch {
	case errors.Is(err, ErrNotFound):
		rec = NewRecord(title, muscles)
		result.Created = true
	case err != nil:
		return LogResult{}, err
	}
	result.Record = rec

	if !rec.AppendWorkout(date, sets) {
		return result, nil
	}
	if err := s.Save(ctx, slug, rec); err != nil {
		return LogResult{}, err
	}
	result.Saved = true
	return result, nil
}

// ListForDate collects, for every exercise with a workout on date, its title and the
// first matching workout's sets. Results follow file name order.
func (s *Store) ListForDate(ctx context.Context, date string) ([]DaySummary, error) {
	var summaries []DaySummary
	err := s.walk(ctx, func(slug string, rec *Record) error {
		if w, ok := rec.WorkoutOn(date); ok {
			summaries = append(summaries, DaySummary{
				Title: rec.Metadata.Title,
				Sets:  w.Sets,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// walk decodes every exercise document in file name order. A corrupt document
// aborts the walk with its ParseError rather than being skipped.
func (s *Store) walk(ctx context.Context, fn func(slug string, rec *Record) error) error {
	if err := s.check(); err != nil {
		return err
	}

	names, err := s.manager.ExerciseFiles()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, err := s.readRecord(filepath.Join(s.manager.BasePath(), name))
		if err != nil {
			return err
		}
		if err := fn(files.SlugFromFile(name), rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := rec.validate(); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	rec.normalize()
	return &rec, nil
}

func (s *Store) check() error {
	if s == nil || s.manager == nil {
		return errors.New("store not initialized with file manager")
	}
	return nil
}

// encodeJSON produces the on-disk layout: two-space indent, no HTML escaping and no
// trailing newline.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
