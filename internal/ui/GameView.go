package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mshel/campmisty/internal/game"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// --- Internal phases for GameViewModel ---

type gamePhase int

const (
	phaseConnecting gamePhase = iota
	phaseWaiting
	phaseChooseSection
	phaseChooseSpot
	phaseChooseTrap
	phaseFinished
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	statusPanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("8")).
				Padding(1, 2)

	sectionTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("250"))
	activeSectionStyle = sectionTitleStyle.Foreground(lipgloss.Color("160"))
	spotStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
	trapStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	noticeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	messageStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Italic(true)
)

const (
	mapViewPercentage  = 0.55
	statusPanelPadding = 4
)

// --- GameViewModel Definition ---

type GameViewModel struct {
	runner  *matchRunner
	spinner spinner.Model

	phase     gamePhase
	role      game.Role
	roleKnown bool
	board     boardView
	haveBoard bool
	section   int
	status    string
	notice    string

	ScreenWidth   int
	ScreenHeight  int
	gameOverState GameOverState
}

func NewGameModel(ctx context.Context, opts Options, setup SetupSubmitMsg, screenWidth int, screenHeight int) GameViewModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = focusedStyle

	return GameViewModel{
		runner:       newMatchRunner(ctx, opts, setup),
		spinner:      s,
		phase:        phaseConnecting,
		status:       "Getting ready...",
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		gameOverState: GameOverState{
			HasHistory:   opts.History != nil,
			ScreenWidth:  screenWidth,
			ScreenHeight: screenHeight,
		},
	}
}

// --- Init/Update/View Methods ---

func (m GameViewModel) Init() tea.Cmd {
	runner := m.runner
	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			go runner.run()
			return nil
		},
		m.listenForGameUpdates(),
	)
}

// listenForGameUpdates blocks until the match goroutine has something for the view.
func (m GameViewModel) listenForGameUpdates() tea.Cmd {
	updates := m.runner.updates
	return func() tea.Msg {
		msg, ok := <-updates
		if !ok {
			return nil
		}
		return msg
	}
}

func (m GameViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		m.gameOverState.ScreenWidth = msg.Width
		m.gameOverState.ScreenHeight = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase == phaseFinished {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusMsg:
		m.status = string(msg)
		return m, m.listenForGameUpdates()

	case matchStartedMsg:
		m.role = msg.role
		m.roleKnown = true
		m.phase = phaseWaiting
		m.status = "You are the " + strings.ToLower(msg.role.String()) + "."
		return m, m.listenForGameUpdates()

	case promptMsg:
		m.board = msg.board
		m.haveBoard = true
		m.notice = msg.notice
		switch {
		case msg.kind == promptTrap:
			m.phase = phaseChooseTrap
		case msg.board.Chase >= 0:
			m.section = msg.board.Chase
			m.phase = phaseChooseSpot
		default:
			m.phase = phaseChooseSection
		}
		return m, m.listenForGameUpdates()

	case roundPlayedMsg:
		m.status = fmt.Sprintf("Round %d: %s", msg.report.Round, msg.report.Outcome.Result)
		if msg.report.Outcome.Result.Terminal() {
			m.status = game.FinalMessage(m.role, msg.report.Outcome.Result)
		}
		return m, m.listenForGameUpdates()

	case matchFinishedMsg:
		log.Info("Match over, showing Game Over screen.", "role", msg.role, "winner", msg.result.Winner, "err", msg.err)
		m.phase = phaseFinished
		m.gameOverState.Role = msg.role
		m.gameOverState.Result = msg.result
		m.gameOverState.Err = msg.err
		m.gameOverState.SelectedButton = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m GameViewModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Game Over screen
	if m.phase == phaseFinished {
		switch msg.String() {
		case "left", "h":
			m.gameOverState.SelectedButton = max(0, m.gameOverState.SelectedButton-1)
		case "right", "l":
			if m.gameOverState.HasHistory {
				m.gameOverState.SelectedButton = min(1, m.gameOverState.SelectedButton+1)
			}
		case "esc":
			return m, func() tea.Msg { return QuitGameMsg{} }
		case "enter":
			if m.gameOverState.SelectedButton == 1 {
				return m, func() tea.Msg { return ShowHistoryMsg{} }
			}
			return m, func() tea.Msg { return QuitGameMsg{} }
		}
		return m, nil
	}

	if msg.String() == "esc" {
		// back out of a half chosen move, otherwise abandon the match
		if m.phase == phaseChooseSpot && m.board.Chase < 0 {
			m.phase = phaseChooseSection
			m.notice = ""
			return m, nil
		}
		m.runner.cancel()
		return m, func() tea.Msg { return QuitGameMsg{} }
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return m, nil
	}
	letter := msg.Runes[0]

	switch m.phase {
	case phaseChooseSection:
		section, ok := m.board.sectionByLetter(letter)
		if !ok {
			m.notice = fmt.Sprintf("There is no location %q at Camp Misty.", letter)
			return m, nil
		}
		m.section = section
		m.notice = ""
		m.phase = phaseChooseSpot

	case phaseChooseSpot:
		spot, ok := m.board.spotByLetter(m.section, letter)
		if !ok {
			m.notice = fmt.Sprintf("There is no spot %q in the %s.", letter, m.board.Sections[m.section].Name)
			return m, nil
		}
		m.notice = ""
		m.phase = phaseWaiting
		m.runner.player.SubmitMove(game.Move{Section: m.section, SubSection: spot})
		return m, m.spinner.Tick

	case phaseChooseTrap:
		section, ok := m.board.sectionByLetter(letter)
		if !ok {
			m.notice = fmt.Sprintf("There is no location %q at Camp Misty.", letter)
			return m, nil
		}
		m.notice = ""
		m.phase = phaseWaiting
		m.runner.player.SubmitTrap(section)
		return m, m.spinner.Tick
	}
	return m, nil
}

func (m GameViewModel) View() string {
	if m.phase == phaseFinished {
		return m.gameOverState.RenderGameOverScreen()
	}

	if !m.haveBoard {
		waiting := m.spinner.View() + " " + m.status
		return lipgloss.Place(m.ScreenWidth, m.ScreenHeight, lipgloss.Center, lipgloss.Center,
			lipgloss.JoinVertical(lipgloss.Center, waiting, "", helpStyle.Render("esc: back to menu")))
	}

	mapWidth := int(float64(m.ScreenWidth) * mapViewPercentage)
	statusPanelWidth := m.ScreenWidth - mapWidth - statusPanelPadding
	height := max(0, m.ScreenHeight-2)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		mapViewStyle.Width(mapWidth).Height(height).Render(m.renderMap()),
		statusPanelStyle.Width(statusPanelWidth).Height(height).Render(m.renderStatusPanel()),
	)
}

func (m GameViewModel) renderMap() string {
	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Camp Misty ---") + "\n\n")

	for i, section := range m.board.Sections {
		title := section.Name
		if section.Trapped {
			title += trapStyle.Render("  [trap set]")
		}
		active := (m.phase == phaseChooseSpot && i == m.section) || i == m.board.Chase
		if active {
			sb.WriteString(activeSectionStyle.Render("▶ "+title) + "\n")
		} else {
			sb.WriteString(sectionTitleStyle.Render("  "+title) + "\n")
		}

		spots := make([]string, 0, len(section.Spots))
		for _, spot := range section.Spots {
			spots = append(spots, spot.Name)
		}
		sb.WriteString(spotStyle.Render(strings.Join(spots, "  ")) + "\n\n")
	}
	return sb.String()
}

// renderStatusPanel draws the role, match progress, the prompt and controls.
func (m GameViewModel) renderStatusPanel() string {
	var statusContent strings.Builder

	statusContent.WriteString(lipgloss.NewStyle().Bold(true).Render("--- Status ---") + "\n")
	if m.roleKnown {
		statusContent.WriteString(fmt.Sprintf("Role: %s\n", m.role))
	}
	statusContent.WriteString(fmt.Sprintf("Round: %d\n", m.board.Round+1))
	statusContent.WriteString(fmt.Sprintf("Car parts left: %d\n", m.board.Remaining))
	if m.board.Wounded {
		statusContent.WriteString(noticeStyle.Render("The victim is wounded!") + "\n")
	}
	if m.status != "" {
		statusContent.WriteString("\n" + m.status + "\n")
	}

	statusContent.WriteString("\n" + messageStyle.Render(m.board.Message) + "\n\n")

	switch m.phase {
	case phaseChooseSection:
		statusContent.WriteString(focusedStyle.Render("Pick a location (letter).") + "\n")
	case phaseChooseSpot:
		statusContent.WriteString(focusedStyle.Render("Pick a spot in the "+m.board.Sections[m.section].Name+" (letter).") + "\n")
	case phaseChooseTrap:
		statusContent.WriteString(focusedStyle.Render("You escaped with a trap! Which location do you want to trap?") + "\n")
	case phaseWaiting, phaseConnecting:
		statusContent.WriteString(m.spinner.View() + " Waiting for the other player...\n")
	}
	if m.notice != "" {
		statusContent.WriteString(noticeStyle.Render(m.notice) + "\n")
	}

	statusContent.WriteString("\n" + lipgloss.NewStyle().Bold(true).Render("--- Controls ---") + "\n")
	statusContent.WriteString("Letters: choose\n")
	statusContent.WriteString("Esc: back / leave match\n")
	statusContent.WriteString("Ctrl+C: Quit Game\n")

	return statusContent.String()
}
