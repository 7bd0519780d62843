// Package session drives the interactive logging prompt: pick a date, then log sets
// for one exercise after another until the user enters a blank name.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/faizmokh/liftlog/internal/exercise"
	"github.com/faizmokh/liftlog/internal/render"
)

// Options tunes a Session.
type Options struct {
	// Date skips the date prompt when set (YYYY-MM-DD).
	Date string
	// Unit labels weights in prompts and summaries.
	Unit string
	// Now supplies the default date; time.Now when nil.
	Now func() time.Time
}

// Report lists what a session wrote.
type Report struct {
	Date  string
	Saved []string
}

// Session reads answers line by line from in and writes prompts to out.
type Session struct {
	store   *exercise.Store
	in      *bufio.Reader
	printer *render.Printer
	opts    Options
}

// New wires a Session. The store directory and input stream are explicit so tests can
// drive a full session from a string.
func New(store *exercise.Store, in io.Reader, out io.Writer, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{
		store:   store,
		in:      bufio.NewReader(in),
		printer: render.New(out, opts.Unit),
		opts:    opts,
	}
}

// Run executes one logging session. Ending input early is not an error; the index is
// still rebuilt so it reflects anything already saved.
func (s *Session) Run(ctx context.Context) (Report, error) {
	out := s.printer.Out()
	s.printer.Heading("=== Workout Logger ===")
	fmt.Fprintln(out)

	date, err := s.promptDate()
	if err != nil {
		return Report{}, err
	}
	report := Report{Date: date}

	summary, err := s.store.ListForDate(ctx, date)
	if err != nil {
		return report, err
	}
	s.printer.DaySummary(date, summary)
	fmt.Fprintf(out, "Logging workout for: %s\n\n", date)

	for {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		name, err := s.readLine("\nExercise name (or press Enter to finish): ")
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, err
		}
		if strings.TrimSpace(name) == "" {
			break
		}

		slug, saved, eof, err := s.logExercise(ctx, name, date)
		switch {
		case errors.Is(err, exercise.ErrEmptySlug):
			fmt.Fprintf(out, "  %q has no letters or digits; try another name.\n", name)
			continue
		case errors.Is(err, exercise.ErrReservedSlug):
			fmt.Fprintf(out, "  %q would overwrite index.json; try another name.\n", name)
			continue
		}
		if err != nil {
			return report, err
		}
		if saved {
			report.Saved = append(report.Saved, slug)
		}
		if eof {
			break
		}
	}

	if _, err := s.store.RebuildIndex(ctx); err != nil {
		return report, err
	}
	fmt.Fprintln(out)
	s.printer.Success("Workout logged successfully!")
	fmt.Fprintln(out)
	return report, nil
}

func (s *Session) logExercise(ctx context.Context, name, date string) (slug string, saved, eof bool, err error) {
	out := s.printer.Out()
	slug = exercise.Slugify(name)
	if err := exercise.ValidateSlug(slug); err != nil {
		return "", false, false, err
	}

	rec, err := s.store.Load(ctx, slug)
	switch {
	case errors.Is(err, exercise.ErrNotFound):
		input, readErr := s.readLine(`Muscles worked (comma-separated, e.g., "Chest, Triceps"): `)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return slug, false, false, readErr
		}
		rec = exercise.NewRecord(name, ParseMuscles(input))
		fmt.Fprintf(out, "\nCreating new exercise: %s\n", rec.Metadata.Title)
	case err != nil:
		return slug, false, false, err
	default:
		fmt.Fprintf(out, "\nLogging: %s\n", rec.Metadata.Title)
		s.printer.Previous(rec, date)
	}

	sets, eof, err := s.promptSets()
	if err != nil {
		return slug, false, eof, err
	}

	if !rec.AppendWorkout(date, sets) {
		fmt.Fprintln(out, "  No sets logged for this exercise.")
		return slug, false, eof, nil
	}
	if err := s.store.Save(ctx, slug, rec); err != nil {
		return slug, false, eof, err
	}
	s.printer.Success(fmt.Sprintf("Saved to %s.json", slug))
	return slug, true, eof, nil
}

func (s *Session) promptDate() (string, error) {
	if s.opts.Date != "" {
		if !exercise.ValidDate(s.opts.Date) {
			return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s.opts.Date)
		}
		return s.opts.Date, nil
	}

	today := exercise.FormatDate(s.opts.Now())
	for {
		input, err := s.readLine(fmt.Sprintf("Workout date (YYYY-MM-DD, default: %s): ", today))
		if errors.Is(err, io.EOF) {
			return today, nil
		}
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return today, nil
		}
		if exercise.ValidDate(input) {
			return input, nil
		}
		fmt.Fprintf(s.printer.Out(), "  %q is not a valid date; use YYYY-MM-DD.\n", input)
	}
}

// promptSets collects weight/reps pairs until a blank weight. eof reports that input
// ended, in which case a set missing its reps is dropped.
func (s *Session) promptSets() (sets []exercise.Set, eof bool, err error) {
	out := s.printer.Out()
	for n := 1; ; n++ {
		weight, done, err := s.promptWeight(n)
		if err != nil || done {
			return sets, errors.Is(err, io.EOF), ignoreEOF(err)
		}

		reps, err := s.promptReps(n)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintf(out, "\n  Set %d discarded: no reps entered.\n", n)
			}
			return sets, errors.Is(err, io.EOF), ignoreEOF(err)
		}

		sets = append(sets, exercise.Set{Weight: weight, Reps: reps})
	}
}

func (s *Session) promptWeight(n int) (weight float64, done bool, err error) {
	prompt := fmt.Sprintf("  Set %d - Weight (%s, or press Enter to finish): ", n, s.printer.Unit())
	for {
		input, err := s.readLine(prompt)
		if err != nil {
			return 0, true, err
		}
		input = strings.TrimSpace(input)
		if input == "" {
			return 0, true, nil
		}
		weight, err := ParseWeight(input)
		if err == nil {
			return weight, false, nil
		}
		fmt.Fprintf(s.printer.Out(), "    %v\n", err)
	}
}

func (s *Session) promptReps(n int) (int, error) {
	prompt := fmt.Sprintf("  Set %d - Reps: ", n)
	for {
		input, err := s.readLine(prompt)
		if err != nil {
			return 0, err
		}
		reps, err := ParseReps(input)
		if err == nil {
			return reps, nil
		}
		fmt.Fprintf(s.printer.Out(), "    %v\n", err)
	}
}

// readLine prints prompt and returns the next line without its terminator. A final
// line lacking a newline is returned normally; io.EOF only comes back once nothing
// is left to read.
func (s *Session) readLine(prompt string) (string, error) {
	fmt.Fprint(s.printer.Out(), prompt)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ParseMuscles splits comma-separated muscle groups, trimming blanks.
func ParseMuscles(input string) []string {
	muscles := []string{}
	for _, m := range strings.Split(input, ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			muscles = append(muscles, m)
		}
	}
	return muscles
}

// ParseWeight accepts any finite, non-negative decimal.
func ParseWeight(input string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0, fmt.Errorf("weight must be a non-negative number, got %q", input)
	}
	return w, nil
}

// ParseReps accepts a positive whole number.
func ParseReps(input string) (int, error) {
	reps, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || reps <= 0 {
		return 0, fmt.Errorf("reps must be a positive whole number, got %q", input)
	}
	return reps, nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
