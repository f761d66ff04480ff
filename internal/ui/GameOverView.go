package ui

import (
	"fmt"

	"github.com/Mshel/campmisty/internal/game"
	"github.com/Mshel/campmisty/internal/multiplayer"
	"github.com/charmbracelet/lipgloss"
)

// GameOverState holds the data and local state for rendering the game over screen.
type GameOverState struct {
	Role           game.Role
	Result         multiplayer.Result
	Err            error
	HasHistory     bool
	SelectedButton int
	ScreenWidth    int
	ScreenHeight   int
}

// Styles for Game Over/History
var (
	GameOverbuttonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("250")).
				Padding(0, 3).
				Margin(1, 1).
				Bold(true)

	selectedButtonStyle = GameOverbuttonStyle.
				Background(lipgloss.Color("124")).
				Foreground(lipgloss.Color("15"))

	winStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	loseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// RenderGameOverScreen draws the verdict, match stats and buttons.
func (g *GameOverState) RenderGameOverScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("9")).
		Padding(1, 5).
		Align(lipgloss.Center).
		Width(max(0, g.ScreenWidth-4))

	var title, verdict, stats string
	if g.Err != nil {
		title = titleStyle.Render("M A T C H   A B O R T E D")
		verdict = loseStyle.Render("The match ended unexpectedly.")
		stats = fmt.Sprintf("\n%v\n", g.Err)
	} else {
		title = titleStyle.Render("💀 G A M E   O V E R 💀")
		message := game.FinalMessage(g.Role, g.Result.Final)
		if g.Result.Winner == g.Role {
			verdict = winStyle.Render(message)
		} else {
			verdict = loseStyle.Render(message)
		}
		stats = fmt.Sprintf("\nYou played the %s.\nRounds: %d\nCar parts found: %d/%d\n",
			g.Role, g.Result.Rounds, g.Result.ItemsFound, game.CampMistySectionCount)
	}

	menuButton := GameOverbuttonStyle.Render("MENU (Enter)")
	if g.SelectedButton == 0 {
		menuButton = selectedButtonStyle.Render("MENU (Enter)")
	}
	buttons := menuButton
	if g.HasHistory {
		historyButton := GameOverbuttonStyle.Render("HISTORY")
		if g.SelectedButton == 1 {
			historyButton = selectedButtonStyle.Render("HISTORY")
		}
		buttons = lipgloss.JoinHorizontal(lipgloss.Center, menuButton, historyButton)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, title, verdict, stats, buttons)

	// Center the content on the screen
	return lipgloss.Place(g.ScreenWidth, g.ScreenHeight,
		lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Render(content),
	)
}
