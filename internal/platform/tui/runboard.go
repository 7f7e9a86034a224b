package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/soundless/internal/registry"
	"github.com/vovakirdan/soundless/internal/storage"
)

// Run board layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the variant sidebar
	sidebarWidth       = 24
	maxRuns            = 100
)

// RunBoardKeyMap defines the key bindings for the run board.
type RunBoardKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextVariant key.Binding
	PrevVariant key.Binding
	ToggleOrder key.Binding
	Back        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunBoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextVariant, k.ToggleOrder, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k RunBoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextVariant, k.PrevVariant},
		{k.ToggleOrder, k.Back, k.Quit},
	}
}

// DefaultRunBoardKeyMap returns default key bindings.
func DefaultRunBoardKeyMap() RunBoardKeyMap {
	return RunBoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextVariant: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next variant"),
		),
		PrevVariant: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev variant"),
		),
		ToggleOrder: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "best/recent"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunBoardModel shows the run history per variant.
type RunBoardModel struct {
	variants    []registry.GameInfo
	cursor      int
	store       *storage.Store
	runs        []storage.Run
	stats       storage.RunStats
	best        bool // Best runs instead of most recent
	table       table.Model
	help        help.Model
	keys        RunBoardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewRunBoardModel creates a run board. A nil store shows an empty board.
func NewRunBoardModel(store *storage.Store, width, height int) RunBoardModel {
	m := RunBoardModel{
		variants:    registry.List(),
		store:       store,
		best:        true,
		keys:        DefaultRunBoardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunBoardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Result", Width: 10},
		{Title: "Stage", Width: 6},
		{Title: "Score", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Peak", Width: 5},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load reads the runs of the selected variant.
func (m *RunBoardModel) load() {
	m.runs = nil
	m.stats = storage.RunStats{}
	if m.store != nil && len(m.variants) > 0 {
		id := m.variants[m.cursor].ID
		var err error
		if m.best {
			m.runs, err = m.store.BestRuns(id, maxRuns)
		} else {
			m.runs, err = m.store.RecentRuns(id, maxRuns)
		}
		if err != nil {
			m.runs = nil
		}
		if st, err := m.store.Stats(id); err == nil {
			m.stats = st
		}
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			r.Result,
			fmt.Sprintf("%d", r.Stage+1),
			fmt.Sprintf("%d", r.Score),
			formatDuration(r.Duration),
			fmt.Sprintf("%.0f", r.PeakNoise),
			r.Player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the run board.
func (m RunBoardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the run board.
func (m RunBoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextVariant):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor + 1) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevVariant):
			if len(m.variants) > 0 {
				m.cursor = (m.cursor - 1 + len(m.variants)) % len(m.variants)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.ToggleOrder):
			m.best = !m.best
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.load()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the run board.
func (m RunBoardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := "RUNS"
	if len(m.variants) > 0 {
		order := "best"
		if !m.best {
			order = "recent"
		}
		title = fmt.Sprintf("RUNS - %s (%s)", m.variants[m.cursor].Title, order)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.summary()), m.width))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.tableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar(), "  ", content))
	} else {
		b.WriteString(centerText(content, m.width))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m RunBoardModel) summary() string {
	st := m.stats
	if st.Runs == 0 {
		return "no runs yet"
	}
	s := fmt.Sprintf("%d runs  |  %d escaped  |  %d caught  |  best score %d", st.Runs, st.Wins, st.Caught, st.BestScore)
	if st.Wins > 0 {
		s += "  |  fastest " + formatDuration(st.FastestWin)
	}
	return s
}

func (m RunBoardModel) sidebar() string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Variants\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")
	for i, v := range m.variants {
		line := "  " + v.Title
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + v.Title)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return style.Render(sb.String())
}

func (m RunBoardModel) tableContent() string {
	if len(m.runs) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("Nothing recorded yet.\nThe dark is waiting.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m RunBoardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m RunBoardModel) IsQuitting() bool {
	return m.quitting
}

func formatDuration(secs float64) string {
	s := int(secs + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
