package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const (
	scoreboardLimit  = 100 // Rows loaded per variant
	statsPanelWidth  = 24
	minWidthForStats = 84 // Below this the stats go under the table
	runIDColumn      = 8  // Leading run ID characters shown
)

var (
	boardBorder    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardTitle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTab       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab = boardTab.Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	boardMuted     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap holds the scoreboard bindings and feeds the help bar.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Help key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Back, k.Help}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Next, k.Prev},
		{k.Back, k.Quit, k.Help},
	}
}

// DefaultScoreboardKeyMap returns the stock bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll up")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll down")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next variant")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev variant")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the stored runs of one game variant at a time.
type ScoreboardModel struct {
	games     []registry.GameInfo
	current   int
	store     *storage.Store
	scores    []storage.ScoreEntry
	stats     *storage.GameStats
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel opens on the first registered variant. A nil store
// shows empty tables.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.table = m.newTable()
	m.reload()
	return m
}

func (m ScoreboardModel) wide() bool {
	return m.width >= minWidthForStats
}

func (m ScoreboardModel) newTable() table.Model {
	dateWidth := 12
	if m.wide() {
		dateWidth = 14
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Lines", Width: 6},
		{Title: "Lvl", Width: 4},
		{Title: "Run", Width: runIDColumn},
		{Title: "Date", Width: dateWidth},
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
		table.WithStyles(styles),
	)
}

// reload fetches the scores and stats of the current variant.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats = nil, nil
	if m.store != nil && len(m.games) > 0 {
		id := m.games[m.current].ID
		if scores, err := m.store.TopScores(id, scoreboardLimit); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Lines),
			strconv.Itoa(s.Level),
			shortRunID(s.RunID),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func shortRunID(id string) string {
	if id == "" {
		return "-"
	}
	if len(id) > runIDColumn {
		return id[:runIDColumn]
	}
	return id
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Next):
			m.switchVariant(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchVariant(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.fillRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchVariant(delta int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.current = (m.current + delta + n) % n
	m.reload()
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	body := boardBorder.Render(m.tableView())
	if stats := m.statsView(); stats != "" {
		if m.wide() {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", boardBorder.Width(statsPanelWidth).Render(stats))
		} else {
			body = lipgloss.JoinVertical(lipgloss.Left, body, stats)
		}
	}

	page := lipgloss.JoinVertical(lipgloss.Center,
		boardTitle.Render("HIGH SCORES"),
		"",
		m.tabsView(),
		"",
		body,
	)
	return lipgloss.PlaceHorizontal(max(m.width, 1), lipgloss.Center, page) +
		"\n" + boardMuted.Render(m.help.View(m.keys))
}

func (m ScoreboardModel) tabsView() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.current {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTab.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) tableView() string {
	if len(m.scores) == 0 {
		return boardMuted.Italic(true).Padding(1, 3).
			Render("No runs recorded yet.\nFinish a game to set a high score.")
	}
	return m.table.View()
}

// statsView summarizes every run of the current variant.
func (m ScoreboardModel) statsView() string {
	s := m.stats
	if s == nil || s.GamesCount == 0 {
		return ""
	}

	lines := []string{
		fmt.Sprintf("Games: %d", s.GamesCount),
		fmt.Sprintf("Best:  %d", s.HighScore),
		fmt.Sprintf("Avg:   %.0f", s.AvgScore),
		fmt.Sprintf("Lines: %d", s.TotalLines),
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, "Last:  "+s.LastPlayed.Local().Format("Jan 02 15:04"))
	}
	if m.wide() {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines, "  ")
}

// Current returns the ID of the variant on screen.
func (m ScoreboardModel) Current() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.current].ID
}

// IsGoingBack reports whether the player asked for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program. goBack is false
// when the player quit.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
