package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/faizmokh/liftlog/internal/exercise"
	"github.com/faizmokh/liftlog/internal/render"
)

// Model owns Bubble Tea state for browsing the exercise store.
type Model struct {
	ctx   context.Context
	store *exercise.Store
	unit  string

	exercises []exercise.IndexEntry
	selected  int

	mode    mode
	slug    string
	record  *exercise.Record
	workout int

	loading    bool
	statusLine string
	errorLine  string

	keys keyMap
	help help.Model
}

type mode uint8

const (
	modeList mode = iota
	modeDetail
)

type exercisesLoadedMsg struct {
	entries []exercise.IndexEntry
	err     error
}

type recordLoadedMsg struct {
	slug   string
	record *exercise.Record
	err    error
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// NewModel seeds a browser over store. unit labels weights.
func NewModel(ctx context.Context, store *exercise.Store, unit string) Model {
	if unit == "" {
		unit = render.DefaultUnit
	}
	return Model{
		ctx:        ctx,
		store:      store,
		unit:       unit,
		mode:       modeList,
		loading:    true,
		statusLine: "Loading exercises...",
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
}

// Init loads the exercise list.
func (m Model) Init() tea.Cmd {
	return m.loadExercisesCmd()
}

// Update handles key presses and load results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case exercisesLoadedMsg:
		return m.handleExercisesLoaded(msg)
	case recordLoadedMsg:
		return m.handleRecordLoaded(msg)
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	}

	if m.loading {
		return m, nil
	}

	if m.mode == modeDetail {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.exercises)-1 {
			m.selected++
			m.statusLine = fmt.Sprintf("Selected %d of %d", m.selected+1, len(m.exercises))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.statusLine = fmt.Sprintf("Selected %d of %d", m.selected+1, len(m.exercises))
			m.errorLine = ""
		}
	case key.Matches(msg, m.keys.Open):
		if len(m.exercises) == 0 {
			return m, nil
		}
		entry := m.exercises[m.selected]
		m.loading = true
		m.statusLine = fmt.Sprintf("Loading %s...", entry.Title)
		m.errorLine = ""
		return m, m.loadRecordCmd(entry.Slug)
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeList
		m.record = nil
		m.slug = ""
		m.statusLine = ""
		m.errorLine = ""
	case key.Matches(msg, m.keys.Older):
		if m.record != nil && m.workout < len(m.record.Log)-1 {
			m.workout++
		}
	case key.Matches(msg, m.keys.Newer):
		if m.workout > 0 {
			m.workout--
		}
	}
	return m, nil
}

func (m Model) handleExercisesLoaded(msg exercisesLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load exercises: %v", msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.exercises = msg.entries
	if m.selected >= len(m.exercises) {
		m.selected = max(len(m.exercises)-1, 0)
	}
	if len(m.exercises) == 0 {
		m.statusLine = "No exercises logged yet."
	} else {
		m.statusLine = fmt.Sprintf("Loaded %d exercise%s.", len(m.exercises), plural(len(m.exercises)))
	}
	return m, nil
}

func (m Model) handleRecordLoaded(msg recordLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.errorLine = fmt.Sprintf("Failed to load %s: %v", msg.slug, msg.err)
		m.statusLine = ""
		return m, nil
	}

	m.errorLine = ""
	m.mode = modeDetail
	m.slug = msg.slug
	m.record = msg.record
	m.workout = 0
	m.statusLine = fmt.Sprintf("%d workout%s logged.", len(msg.record.Log), plural(len(msg.record.Log)))
	return m, nil
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.loading = true
	m.errorLine = ""
	if m.mode == modeDetail && m.slug != "" {
		m.statusLine = fmt.Sprintf("Refreshing %s...", m.slug)
		return m, m.loadRecordCmd(m.slug)
	}
	m.statusLine = "Refreshing exercises..."
	return m, m.loadExercisesCmd()
}

func (m Model) loadExercisesCmd() tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		entries, err := store.Exercises(ctx)
		return exercisesLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) loadRecordCmd(slug string) tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		rec, err := store.Load(ctx, slug)
		return recordLoadedMsg{slug: slug, record: rec, err: err}
	}
}

// View renders the frame.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("liftlog"))
	b.WriteString("\n\n")

	switch {
	case m.loading && m.exercises == nil && m.record == nil:
		b.WriteString("Loading...\n")
	case m.mode == modeDetail && m.record != nil:
		m.viewDetail(&b)
	default:
		m.viewList(&b)
	}

	if m.errorLine != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("! " + m.errorLine))
		b.WriteByte('\n')
	} else if m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render(m.statusLine))
		b.WriteByte('\n')
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteByte('\n')
	return b.String()
}

func (m Model) viewList(b *strings.Builder) {
	if len(m.exercises) == 0 {
		b.WriteString("(no exercises)\n")
		return
	}
	for i, entry := range m.exercises {
		title := entry.Title
		if i == m.selected {
			b.WriteString("> ")
			title = selectedStyle.Render(title)
		} else {
			b.WriteString("  ")
		}
		b.WriteString(title)
		b.WriteString(" " + mutedStyle.Render("("+entry.Slug+")"))
		b.WriteByte('\n')
	}
}

func (m Model) viewDetail(b *strings.Builder) {
	rec := m.record
	b.WriteString(selectedStyle.Render(rec.Metadata.Title))
	b.WriteByte('\n')
	if len(rec.Metadata.Muscles) > 0 {
		b.WriteString(mutedStyle.Render("Muscles: " + strings.Join(rec.Metadata.Muscles, ", ")))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if len(rec.Log) == 0 {
		b.WriteString("(No previous data)\n")
		return
	}

	w := rec.Log[m.workout]
	fmt.Fprintf(b, "%s  (workout %d of %d, newest first)\n", w.Date, m.workout+1, len(rec.Log))
	for i, set := range w.Sets {
		b.WriteString("  ")
		b.WriteString(render.FormatSet(i+1, set, m.unit))
		b.WriteByte('\n')
	}
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
