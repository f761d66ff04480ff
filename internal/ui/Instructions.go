package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const instructionsText = `Trapped within this hellish domain is a victim, who is being hunted down
by a ruthless killer! The victim is trying to find 5 car parts so that
they can repair their vehicle and escape. The killer is trying to stop them.

Layout of Camp Misty
Camp Misty is broken up into five locations: the Cabin, Lake Misty, the
Abandoned Manor, the Bonfire and the Old Forest. Within each location are
five spots. Pick a location by its letter, then a spot by its letter.

Goal of the Victim
Find 5 car parts. There is exactly one part in each location, so once you
find one there you don't need to keep checking it. Search as randomly as
you can so the killer can't predict where you will go next!

Goal of the Killer
Hunt down the victim. Each time the victim finds a part you learn which
location it was in, so you don't have to check that location anymore.

The Chase
If both of you pick the same location but not the same spot, a chase
begins. On the next round the victim must hide in that location and the
killer searches it.

Traps
If the victim avoids the killer during a chase, they get a trap to set in
one of the five locations. A killer searching a trapped location can't
wound the victim or start a chase, even on the exact same spot.

Winning
If the killer picks the same location and spot as the victim, the victim
is wounded. Wounded twice, the victim dies and the killer wins. If the
victim finds all five car parts, they escape and win.`

var instructionsStyle = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(lipgloss.Color("124")).
	Padding(1, 3)

type InstructionsModel struct {
	width  int
	height int
}

func NewInstructionsModel(w, h int) InstructionsModel {
	return InstructionsModel{width: w, height: h}
}

func (m InstructionsModel) Init() tea.Cmd { return nil }

func (m InstructionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		// any key returns to the menu
		return m, func() tea.Msg { return QuitGameMsg{} }
	}
	return m, nil
}

func (m InstructionsModel) View() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		instructionsText,
		"",
		helpStyle.Render("Press any key to return to the main menu..."),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, instructionsStyle.Render(content))
}
