package ui

import (
	"strconv"
	"strings"

	"github.com/Mshel/campmisty/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const historyPageSize = 10

var (
	historyHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("236")).
				Padding(0, 1).
				Align(lipgloss.Center)

	historyRowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	historyBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("8"))
)

type historyLoadedMsg struct {
	records []game.MatchRecord
	wins    map[game.Role]int
	total   int
	err     error
}

// HistoryModel lists the most recent matches played from this process.
type HistoryModel struct {
	history *game.MatchHistoryService
	loaded  historyLoadedMsg
	ready   bool
	width   int
	height  int
}

func NewHistoryModel(history *game.MatchHistoryService, w, h int) HistoryModel {
	return HistoryModel{history: history, width: w, height: h}
}

func (m HistoryModel) Init() tea.Cmd {
	history := m.history
	return func() tea.Msg {
		if history == nil {
			return historyLoadedMsg{}
		}
		var msg historyLoadedMsg
		if msg.records, msg.err = history.GetMatches(historyPageSize, 0); msg.err != nil {
			return msg
		}
		if msg.wins, msg.err = history.GetWinCounts(); msg.err != nil {
			return msg
		}
		msg.total, msg.err = history.GetTotalMatchCount()
		return msg
	}
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case historyLoadedMsg:
		m.loaded = msg
		m.ready = true
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
	}
	return m, nil
}

// View draws the recent matches table.
func (m HistoryModel) View() string {
	var tableContent strings.Builder

	// Define column widths for alignment
	modeWidth := 14
	roleWidth := 9
	resultWidth := 8
	roundsWidth := 8
	partsWidth := 7
	dateWidth := 18

	// --- Header ---
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		historyHeaderStyle.Width(3).Render("#"),
		historyHeaderStyle.Width(modeWidth).Render("Mode"),
		historyHeaderStyle.Width(roleWidth).Render("Role"),
		historyHeaderStyle.Width(resultWidth).Render("Result"),
		historyHeaderStyle.Width(roundsWidth).Render("Rounds"),
		historyHeaderStyle.Width(partsWidth).Render("Parts"),
		historyHeaderStyle.Width(dateWidth).Render("Played"),
	)
	tableContent.WriteString(header + "\n")

	// --- Rows ---
	for i, record := range m.loaded.records {
		result := loseStyle.Render("Lost")
		if record.Won() {
			result = winStyle.Render("Won")
		}
		row := lipgloss.JoinHorizontal(lipgloss.Top,
			historyRowStyle.Width(3).Render(strconv.Itoa(i+1)),
			historyRowStyle.Width(modeWidth).Render(record.Mode),
			historyRowStyle.Width(roleWidth).Render(record.PlayerRole.String()),
			historyRowStyle.Width(resultWidth).Render(result),
			historyRowStyle.Width(roundsWidth).Render(strconv.Itoa(record.Rounds)),
			historyRowStyle.Width(partsWidth).Render(strconv.Itoa(record.ItemsFound)),
			historyRowStyle.Width(dateWidth).Render(record.CreatedAt.Local().Format("2006-01-02 15:04")),
		)
		tableContent.WriteString(historyBorderStyle.Render(row) + "\n")
	}

	var summary string
	switch {
	case !m.ready:
		summary = "Loading..."
	case m.loaded.err != nil:
		summary = loseStyle.Render("Could not load history: " + m.loaded.err.Error())
	case m.history == nil:
		summary = "Match history is disabled."
	case m.loaded.total == 0:
		summary = "No matches played yet."
	default:
		summary = "Matches: " + strconv.Itoa(m.loaded.total) +
			"   Killer wins: " + strconv.Itoa(m.loaded.wins[game.Killer]) +
			"   Victim wins: " + strconv.Itoa(m.loaded.wins[game.Victim])
	}

	// --- Title & Instructions ---
	title := lipgloss.NewStyle().Bold(true).Padding(1, 0).Render("🔪 RECENT MATCHES 🔪")
	instruction := lipgloss.NewStyle().Faint(true).Margin(1, 0).Render("Press ESC or ENTER to return to the menu.")

	finalContent := lipgloss.JoinVertical(lipgloss.Center,
		title,
		tableContent.String(),
		summary,
		instruction,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(finalContent),
	)
}
