package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Define styles
var (
	focusedColor = lipgloss.Color("160")
	blurredColor = lipgloss.Color("240")
	focusedStyle = lipgloss.NewStyle().Foreground(focusedColor)
	blurredStyle = lipgloss.NewStyle().Foreground(blurredColor)
	helpStyle    = blurredStyle

	roleStyle         = lipgloss.NewStyle().Padding(0, 2)
	selectedRoleStyle = roleStyle.
				Background(focusedColor).
				Foreground(lipgloss.Color("15"))

	buttonStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder())

	submitButtonStyle = buttonStyle.
				BorderForeground(focusedColor).
				Padding(0, 1)

	blurredButtonStyle = buttonStyle.
				BorderForeground(blurredColor).
				Padding(0, 1)
)

type setupField int

const (
	roleField setupField = iota
	addrField
	submitField
)

var roleChoices = []RoleChoice{ChooseKiller, ChooseVictim, ChooseRandom}

// SetupModel asks for what a mode needs before a match starts: a role
// unless joining, and an address when playing over the network.
type SetupModel struct {
	mode      Mode
	fields    []setupField
	focus     int
	roleIndex int
	addrInput textinput.Model
	width     int
	height    int
}

func NewInitialSetupModel(mode Mode, addr string, w, h int) SetupModel {
	ti := textinput.New()
	ti.Placeholder = "127.0.0.1:7878"
	ti.SetValue(addr)
	ti.CharLimit = 64
	ti.PromptStyle = focusedStyle
	ti.TextStyle = focusedStyle

	var fields []setupField
	if mode != ModeJoin {
		fields = append(fields, roleField)
	}
	if mode == ModeHost || mode == ModeJoin {
		fields = append(fields, addrField)
	}
	fields = append(fields, submitField)

	m := SetupModel{
		mode:      mode,
		fields:    fields,
		roleIndex: int(ChooseRandom),
		addrInput: ti,
		width:     w,
		height:    h,
	}
	m.syncFocus()
	return m
}

func (m SetupModel) focused() setupField {
	return m.fields[m.focus]
}

func (m *SetupModel) syncFocus() {
	if m.focused() == addrField {
		m.addrInput.Focus()
	} else {
		m.addrInput.Blur()
	}
}

func (m SetupModel) submit() tea.Cmd {
	msg := SetupSubmitMsg{
		Mode: m.mode,
		Role: roleChoices[m.roleIndex],
		Addr: strings.TrimSpace(m.addrInput.Value()),
	}
	return func() tea.Msg { return msg }
}

// Init sends a command to start the cursor blinking
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		s := msg.String()

		// 1. Back to the menu
		if s == "esc" {
			return m, func() tea.Msg { return QuitGameMsg{} }
		}

		// 2. Focus navigation
		switch s {
		case "tab", "down":
			m.focus = (m.focus + 1) % len(m.fields)
			m.syncFocus()
			return m, nil
		case "shift+tab", "up":
			m.focus = (m.focus - 1 + len(m.fields)) % len(m.fields)
			m.syncFocus()
			return m, nil
		case "enter":
			if m.focused() == submitField {
				if m.needsAddr() && strings.TrimSpace(m.addrInput.Value()) == "" {
					return m, nil
				}
				return m, m.submit()
			}
			m.focus++
			m.syncFocus()
			return m, nil
		}

		// 3. Role selection
		if m.focused() == roleField {
			switch strings.ToLower(s) {
			case "left":
				m.roleIndex = (m.roleIndex - 1 + len(roleChoices)) % len(roleChoices)
			case "right":
				m.roleIndex = (m.roleIndex + 1) % len(roleChoices)
			case "k":
				m.roleIndex = int(ChooseKiller)
			case "v":
				m.roleIndex = int(ChooseVictim)
			case "r":
				m.roleIndex = int(ChooseRandom)
			}
			return m, nil
		}

		// 4. Everything else goes to the address input
		if m.focused() == addrField {
			var cmd tea.Cmd
			m.addrInput, cmd = m.addrInput.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) needsAddr() bool {
	for _, f := range m.fields {
		if f == addrField {
			return true
		}
	}
	return false
}

func (m SetupModel) View() string {
	// Helper to center content within the terminal width
	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Bold(true).Render(strings.ToUpper(string(m.mode)))))
	b.WriteString("\n\n")

	for i, field := range m.fields {
		isFocused := i == m.focus
		switch field {
		case roleField:
			prompt := "Who do you want to play as?"
			if isFocused {
				b.WriteString(center(focusedStyle.Render(prompt)))
			} else {
				b.WriteString(center(blurredStyle.Render(prompt)))
			}
			b.WriteString("\n")
			roles := make([]string, 0, len(roleChoices))
			for j, choice := range roleChoices {
				if j == m.roleIndex {
					roles = append(roles, selectedRoleStyle.Render(choice.String()))
				} else {
					roles = append(roles, roleStyle.Render(choice.String()))
				}
			}
			b.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Center, roles...)))
			b.WriteString("\n\n")

		case addrField:
			prompt := "Address to host on"
			if m.mode == ModeJoin {
				prompt = "Address of the host"
			}
			if isFocused {
				b.WriteString(center(focusedStyle.Render(prompt)))
			} else {
				b.WriteString(center(blurredStyle.Render(prompt)))
			}
			b.WriteString("\n")
			b.WriteString(center(m.addrInput.View()))
			b.WriteString("\n\n")

		case submitField:
			if isFocused {
				b.WriteString(center(submitButtonStyle.Render("Start")))
			} else {
				b.WriteString(center(blurredButtonStyle.Render("Start")))
			}
			b.WriteString("\n\n")
		}
	}

	// Help Text
	b.WriteString(center(helpStyle.Render("(arrows or K/V/R to pick a role, tab/shift+tab to navigate, enter to confirm, esc for the menu)")))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
}
