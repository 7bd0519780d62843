package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/faizmokh/liftlog/internal/exercise"
	"github.com/faizmokh/liftlog/internal/session"
)

func resolveDate(dateFlag string) (string, error) {
	if dateFlag == "" {
		return exercise.FormatDate(time.Now().In(time.Local)), nil
	}
	if !exercise.ValidDate(dateFlag) {
		return "", fmt.Errorf("parse date: %q is not YYYY-MM-DD", dateFlag)
	}
	return dateFlag, nil
}

// exerciseName joins positional words so `show bench press` works unquoted.
func exerciseName(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// parseSet reads "WEIGHTxREPS", e.g. "135x10" or "132.5X8".
func parseSet(value string) (exercise.Set, error) {
	weight, reps, ok := strings.Cut(strings.ToLower(strings.TrimSpace(value)), "x")
	if !ok {
		return exercise.Set{}, fmt.Errorf("set %q: expected WEIGHTxREPS", value)
	}
	w, err := session.ParseWeight(weight)
	if err != nil {
		return exercise.Set{}, fmt.Errorf("set %q: %w", value, err)
	}
	r, err := session.ParseReps(reps)
	if err != nil {
		return exercise.Set{}, fmt.Errorf("set %q: %w", value, err)
	}
	return exercise.Set{Weight: w, Reps: r}, nil
}

func parseSets(values []string) ([]exercise.Set, error) {
	sets := make([]exercise.Set, 0, len(values))
	for _, v := range values {
		set, err := parseSet(v)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func plural(count int, word string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, word)
	}
	return fmt.Sprintf("%d %ss", count, word)
}
