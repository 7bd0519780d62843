package exercise

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for workout entries. Lexical order of
// dates in this layout matches chronological order.
const DateLayout = "2006-01-02"

// Record is the persisted document for one exercise.
type Record struct {
	Metadata Metadata  `json:"metadata"`
	Log      []Workout `json:"log"`

	Extra Extra `json:"-"`
}

// Metadata is captured once, when the exercise is first logged.
type Metadata struct {
	Title   string   `json:"title"`
	Muscles []string `json:"muscles"`

	Extra Extra `json:"-"`
}

// Workout is one dated session's sets for an exercise.
type Workout struct {
	Date string `json:"date"`
	Sets []Set  `json:"sets"`

	Extra Extra `json:"-"`
}

// Set is a single weight/repetition pair. Weight is in the configured unit (lbs by default).
// Sets stay comparable, so members other than weight and reps are not carried.
type Set struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

// IndexEntry is one line of index.json.
type IndexEntry struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// DaySummary pairs an exercise title with the sets logged on a queried date.
type DaySummary struct {
	Title string `json:"title"`
	Sets  []Set  `json:"sets"`
}

// NewRecord seeds an empty log for a previously unseen exercise. The title is kept
// exactly as entered.
func NewRecord(title string, muscles []string) *Record {
	rec := &Record{
		Metadata: Metadata{
			Title:   title,
			Muscles: append([]string{}, muscles...),
		},
		Log: []Workout{},
	}
	return rec
}

// AppendWorkout adds sets for date and re-sorts the log newest first. An empty set
// list leaves the record untouched and returns false. Entries sharing a date keep
// their relative order, so a second session on the same day lands after the first.
func (r *Record) AppendWorkout(date string, sets []Set) bool {
	if len(sets) == 0 {
		return false
	}
	r.Log = append(r.Log, Workout{
		Date: date,
		Sets: append([]Set{}, sets...),
	})
	sort.SliceStable(r.Log, func(i, j int) bool {
		return r.Log[i].Date > r.Log[j].Date
	})
	return true
}

// WorkoutOn returns the first workout logged on date.
func (r *Record) WorkoutOn(date string) (Workout, bool) {
	for _, w := range r.Log {
		if w.Date == date {
			return w, true
		}
	}
	return Workout{}, false
}

// Latest returns the newest workout.
func (r *Record) Latest() (Workout, bool) {
	if len(r.Log) == 0 {
		return Workout{}, false
	}
	return r.Log[0], true
}

// Previous picks the workout to show before logging: the one on date if it exists,
// otherwise the most recent.
func (r *Record) Previous(date string) (Workout, bool) {
	if date != "" {
		if w, ok := r.WorkoutOn(date); ok {
			return w, true
		}
	}
	return r.Latest()
}

// ValidDate reports whether value is a real calendar date in YYYY-MM-DD form.
func ValidDate(value string) bool {
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// FormatDate renders t as a workout date in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// normalize replaces nil slices so documents always serialize arrays, never null.
func (r *Record) normalize() {
	if r.Metadata.Muscles == nil {
		r.Metadata.Muscles = []string{}
	}
	if r.Log == nil {
		r.Log = []Workout{}
	}
	for i := range r.Log {
		if r.Log[i].Sets == nil {
			r.Log[i].Sets = []Set{}
		}
	}
}

func (r *Record) validate() error {
	if strings.TrimSpace(r.Metadata.Title) == "" {
		return errors.New("metadata.title is required")
	}
	for i, w := range r.Log {
		if !ValidDate(w.Date) {
			return fmt.Errorf("log[%d].date %q is not YYYY-MM-DD", i, w.Date)
		}
		for j, set := range w.Sets {
			if set.Reps < 0 {
				return fmt.Errorf("log[%d].sets[%d].reps is negative", i, j)
			}
		}
	}
	return nil
}
