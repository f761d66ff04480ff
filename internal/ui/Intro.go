package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type MenuChoice int

const (
	ChoiceSingleplayer MenuChoice = iota
	ChoiceHost
	ChoiceJoin
	ChoiceOnline
	ChoiceInstructions
	ChoiceHistory
	ChoiceQuit
)

func (c MenuChoice) String() string {
	switch c {
	case ChoiceSingleplayer:
		return "(S)ingleplayer"
	case ChoiceHost:
		return "(H)ost a game"
	case ChoiceJoin:
		return "(J)oin a game"
	case ChoiceOnline:
		return "Play (O)nline"
	case ChoiceInstructions:
		return "(I)nstructions"
	case ChoiceHistory:
		return "(V)iew history"
	default:
		return "(Q)uit"
	}
}

func (c MenuChoice) hotkey() string {
	switch c {
	case ChoiceSingleplayer:
		return "s"
	case ChoiceHost:
		return "h"
	case ChoiceJoin:
		return "j"
	case ChoiceOnline:
		return "o"
	case ChoiceInstructions:
		return "i"
	case ChoiceHistory:
		return "v"
	case ChoiceQuit:
		return "q"
	default:
		return ""
	}
}

func (c MenuChoice) mode() Mode {
	switch c {
	case ChoiceHost:
		return ModeHost
	case ChoiceJoin:
		return ModeJoin
	case ChoiceOnline:
		return ModeOnline
	default:
		return ModeSingleplayer
	}
}

// menuChoices lists what this process can offer.
func menuChoices(opts Options) []MenuChoice {
	choices := []MenuChoice{ChoiceSingleplayer}
	if opts.AllowDirect {
		choices = append(choices, ChoiceHost, ChoiceJoin)
	}
	if opts.Lobby != nil {
		choices = append(choices, ChoiceOnline)
	}
	choices = append(choices, ChoiceInstructions)
	if opts.History != nil {
		choices = append(choices, ChoiceHistory)
	}
	return append(choices, ChoiceQuit)
}

// IntroModel holds the state for the main menu.
type IntroModel struct {
	choices  []MenuChoice
	selected int
	width    int
	height   int
}

func NewIntroModel(choices []MenuChoice, w, h int) IntroModel {
	return IntroModel{choices: choices, width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "shift+tab":
			m.selected = (m.selected - 1 + len(m.choices)) % len(m.choices)
		case "down", "tab":
			m.selected = (m.selected + 1) % len(m.choices)
		case "enter":
			choice := m.choices[m.selected]
			return m, func() tea.Msg { return IntroSubmitMsg(choice) }
		default:
			for _, choice := range m.choices {
				if choice.hotkey() != "" && strings.EqualFold(msg.String(), choice.hotkey()) {
					return m, func() tea.Msg { return IntroSubmitMsg(choice) }
				}
			}
		}
	}
	return m, nil
}

var campMistyAscii = `
 ██████  █████  ███    ███ ██████      ███    ███ ██ ███████ ████████ ██    ██
██      ██   ██ ████  ████ ██   ██     ████  ████ ██ ██         ██     ██  ██
██      ███████ ██ ████ ██ ██████      ██ ████ ██ ██ ███████    ██      ████
██      ██   ██ ██  ██  ██ ██          ██  ██  ██ ██      ██    ██       ██
 ██████ ██   ██ ██      ██ ██          ██      ██ ██ ███████    ██       ██
`

var (
	asciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("124"))

	taglineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	introButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Width(24).
				Align(lipgloss.Center).
				Border(lipgloss.RoundedBorder())

	introSelectedButtonStyle = introButtonStyle.
					Background(lipgloss.Color("124")).
					Foreground(lipgloss.Color("15"))
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(asciiStyle.Render(campMistyAscii))
	sb.WriteString("\n")
	sb.WriteString(taglineStyle.Render("Five car parts. One killer. No way out."))
	sb.WriteString("\n")

	buttons := make([]string, 0, len(m.choices))
	for i, choice := range m.choices {
		if i == m.selected {
			buttons = append(buttons, introSelectedButtonStyle.Render(choice.String()))
		} else {
			buttons = append(buttons, introButtonStyle.Render(choice.String()))
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), lipgloss.JoinVertical(lipgloss.Center, buttons...))

	// Center the entire view within the terminal
	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
