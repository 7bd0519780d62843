// Package render formats exercise data for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/liftlog/internal/exercise"
)

// DefaultUnit labels weights when no unit is configured.
const DefaultUnit = "lbs"

// Printer writes styled summaries to out. Styling degrades to plain text when out
// is not a terminal.
type Printer struct {
	out  io.Writer
	unit string

	heading lipgloss.Style
	title   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
}

// New builds a Printer whose color profile is detected from out.
func New(out io.Writer, unit string) *Printer {
	if unit == "" {
		unit = DefaultUnit
	}
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		unit:    unit,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		title:   r.NewStyle().Bold(true),
		muted:   r.NewStyle().Faint(true),
		success: r.NewStyle().Foreground(lipgloss.Color("10")),
	}
}

// Out returns the underlying writer.
func (p *Printer) Out() io.Writer {
	return p.out
}

// Unit returns the weight label.
func (p *Printer) Unit() string {
	return p.unit
}

// Heading prints a banner line such as "=== Workout Logger ===".
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.out, p.heading.Render(text))
}

// Success prints a confirmation line prefixed with a check mark.
func (p *Printer) Success(text string) {
	fmt.Fprintln(p.out, p.success.Render("✓ "+text))
}

// Note prints a de-emphasised line.
func (p *Printer) Note(text string) {
	fmt.Fprintln(p.out, p.muted.Render(text))
}

// DaySummary prints every exercise logged on date.
func (p *Printer) DaySummary(date string, items []exercise.DaySummary) {
	if len(items) == 0 {
		fmt.Fprintf(p.out, "No exercises logged for %s\n", date)
		return
	}

	fmt.Fprintln(p.out)
	p.Heading(fmt.Sprintf("=== Workout Summary for %s ===", date))
	for _, item := range items {
		fmt.Fprintln(p.out)
		fmt.Fprintln(p.out, p.title.Render(item.Title+":"))
		p.Sets("  ", item.Sets)
	}
	fmt.Fprintln(p.out)
}

// Previous prints the workout shown before logging an existing exercise: the one on
// date if present, otherwise the latest.
func (p *Printer) Previous(rec *exercise.Record, date string) {
	if rec == nil || len(rec.Log) == 0 {
		p.Note("  (No previous data)")
		return
	}

	if date != "" {
		if w, ok := rec.WorkoutOn(date); ok {
			fmt.Fprintf(p.out, "  Workout on %s:\n", w.Date)
			p.Sets("    ", w.Sets)
			return
		}
	}

	w, _ := rec.Latest()
	fmt.Fprintf(p.out, "  Last workout: %s\n", w.Date)
	p.Sets("    ", w.Sets)
}

// History prints every workout in log order.
func (p *Printer) History(rec *exercise.Record) {
	fmt.Fprintln(p.out, p.title.Render(rec.Metadata.Title))
	if len(rec.Metadata.Muscles) > 0 {
		p.Note(fmt.Sprintf("Muscles: %s", strings.Join(rec.Metadata.Muscles, ", ")))
	}
	if len(rec.Log) == 0 {
		p.Note("  (No previous data)")
		return
	}
	for _, w := range rec.Log {
		fmt.Fprintf(p.out, "  %s\n", w.Date)
		p.Sets("    ", w.Sets)
	}
}

// Sets prints one numbered line per set.
func (p *Printer) Sets(indent string, sets []exercise.Set) {
	for i, set := range sets {
		fmt.Fprintf(p.out, "%s%s\n", indent, FormatSet(i+1, set, p.unit))
	}
}

// FormatSet renders "Set 1: 135lbs x 10 reps".
func FormatSet(n int, set exercise.Set, unit string) string {
	return fmt.Sprintf("Set %d: %s%s x %d reps", n, FormatWeight(set.Weight), unit, set.Reps)
}

// FormatWeight prints the shortest exact decimal, so 135 stays "135" and 132.5 stays "132.5".
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
