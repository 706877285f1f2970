package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dagyiman/internal/core"
	"github.com/vovakirdan/dagyiman/internal/registry"
	"github.com/vovakirdan/dagyiman/internal/storage"
)

const maxScores = 100

var (
	boardFrame     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextMap key.Binding
	PrevMap key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMap, k.PrevMap, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextMap, k.PrevMap},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMap: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next map"),
		),
		PrevMap: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev map"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the recorded scores of one map at a time.
type ScoreboardModel struct {
	store    *storage.Store
	maps     []registry.MapInfo
	current  int
	stats    map[string]*storage.MapStats
	scores   []storage.ScoreEntry
	tickRate int // converts recorded ticks to play time

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	goingBack     bool
	quitting      bool
}

// NewScoreboardModel opens the scoreboard on startMap. A map played from a
// file is not registered, so it is put in front of the built-ins.
func NewScoreboardModel(store *storage.Store, startMap string, tickRate, width, height int) ScoreboardModel {
	if tickRate <= 0 {
		tickRate = 60
	}

	maps := registry.List()
	current := -1
	for i, mi := range maps {
		if mi.ID == startMap {
			current = i
		}
	}
	if current < 0 && startMap != "" {
		maps = append([]registry.MapInfo{{ID: startMap, Name: startMap}}, maps...)
		current = 0
	}

	m := ScoreboardModel{
		store:    store,
		maps:     maps,
		current:  max(current, 0),
		tickRate: tickRate,
		help:     help.New(),
		keys:     DefaultScoreboardKeyMap(),
		width:    width,
		height:   height,
	}
	if store != nil {
		if stats, err := store.GetAllMapsStats(); err == nil {
			m.stats = stats
		}
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) mapID() string {
	if len(m.maps) == 0 {
		return ""
	}
	return m.maps[m.current].ID
}

func (m *ScoreboardModel) newTable() table.Model {
	dateW := core.Clamp(m.width-40, 12, 20)
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: dateW},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // title, tabs, summary, help
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

// reload fetches the scores of the current map into the table.
func (m *ScoreboardModel) reload() {
	m.scores = nil
	if m.store != nil && len(m.maps) > 0 {
		if scores, err := m.store.TopScores(m.mapID(), maxScores); err == nil {
			m.scores = scores
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			formatPlayTime(s.Ticks, m.tickRate),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) shift(delta int) {
	if len(m.maps) == 0 {
		return
	}
	m.current = (m.current + delta + len(m.maps)) % len(m.maps)
	m.reload()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMap):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMap):
			m.shift(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width, false)))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width, false))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText(m.summary(), m.width, false)))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.scores) == 0 {
		body = dimStyle.Italic(true).Padding(1, 4).
			Render("No scores recorded yet.\nCollect some medicine to set one!")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, boardFrame.Render(body)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// tabs lists the maps, falling back to "< name >" when they do not fit.
func (m ScoreboardModel) tabs() string {
	if len(m.maps) == 0 {
		return ""
	}
	parts := make([]string, len(m.maps))
	for i, mi := range m.maps {
		if i == m.current {
			parts[i] = activeTabStyle.Render(mi.Name)
		} else {
			parts[i] = tabStyle.Render(mi.Name)
		}
	}
	line := strings.Join(parts, " ")
	if lipgloss.Width(line) > m.width-4 {
		line = activeTabStyle.Render("< " + m.maps[m.current].Name + " >")
	}
	return line
}

func (m ScoreboardModel) summary() string {
	s, ok := m.stats[m.mapID()]
	if !ok || s.GamesCount == 0 {
		return "Not played yet"
	}
	return fmt.Sprintf("Games: %d  Best: %d  Avg: %.1f  Last: %s",
		s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("Jan 02 15:04"))
}

// formatPlayTime turns a tick count into m:ss play time.
func formatPlayTime(ticks, tickRate int) string {
	d := time.Duration(ticks) * time.Second / time.Duration(tickRate)
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, startMap string, tickRate, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, startMap, tickRate, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
