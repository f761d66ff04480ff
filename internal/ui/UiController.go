package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

type Screen int

const (
	IntroScreen Screen = iota
	SetupScreen
	GameScreen
	HistoryScreen
	InstructionsScreen
)

// Messages for state transitions
type IntroSubmitMsg MenuChoice

type SetupSubmitMsg struct {
	Mode Mode
	Role RoleChoice
	Addr string
}

// QuitGameMsg sends the player back to the main menu from any screen.
type QuitGameMsg struct{}

type ShowHistoryMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	Options       Options

	IntroModel        tea.Model
	SetupModel        tea.Model
	GameModel         tea.Model
	HistoryModel      tea.Model
	InstructionsModel tea.Model

	ctx          context.Context
	ScreenWidth  int
	ScreenHeight int
}

// NewControllerModel builds the root model. Matches started from it stop
// when ctx ends, which is how an SSH session going away reaches them.
func NewControllerModel(ctx context.Context, opts Options, screenWidth int, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Options:       opts,

		IntroModel:        NewIntroModel(menuChoices(opts), screenWidth, screenHeight),
		InstructionsModel: NewInstructionsModel(screenWidth, screenHeight),

		ctx:          ctx,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return m.IntroModel.Init()
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SetupScreen:
		return m.SetupModel.View()
	case GameScreen:
		if m.GameModel != nil {
			return m.GameModel.View()
		}
		return "Game Loading..."
	case HistoryScreen:
		return m.HistoryModel.View()
	case InstructionsScreen:
		return m.InstructionsModel.View()
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) activeModel() tea.Model {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel
	case SetupScreen:
		return m.SetupModel
	case GameScreen:
		return m.GameModel
	case HistoryScreen:
		return m.HistoryModel
	case InstructionsScreen:
		return m.InstructionsModel
	}
	return nil
}

func (m *ControllerModel) setActiveModel(model tea.Model) {
	switch m.CurrentScreen {
	case IntroScreen:
		m.IntroModel = model
	case SetupScreen:
		m.SetupModel = model
	case GameScreen:
		m.GameModel = model
	case HistoryScreen:
		m.HistoryModel = model
	case InstructionsScreen:
		m.InstructionsModel = model
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// --- 1. Global Key Check (Check before the main switch) ---
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "ctrl+c" {
		if game, ok := m.GameModel.(GameViewModel); ok {
			game.runner.cancel()
		}
		return m, tea.Quit
	}

	// --- 2. State Transition Message Handling ---
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height

	case IntroSubmitMsg:
		switch MenuChoice(msg) {
		case ChoiceQuit:
			return m, tea.Quit
		case ChoiceInstructions:
			m.CurrentScreen = InstructionsScreen
			return m, m.InstructionsModel.Init()
		case ChoiceHistory:
			m.CurrentScreen = HistoryScreen
			m.HistoryModel = NewHistoryModel(m.Options.History, m.ScreenWidth, m.ScreenHeight)
			return m, m.HistoryModel.Init()
		case ChoiceOnline:
			// the lobby picks roles, nothing to set up
			return m, func() tea.Msg { return SetupSubmitMsg{Mode: ModeOnline, Role: ChooseRandom} }
		default:
			m.CurrentScreen = SetupScreen
			m.SetupModel = NewInitialSetupModel(MenuChoice(msg).mode(), m.Options.Addr, m.ScreenWidth, m.ScreenHeight)
			return m, m.SetupModel.Init()
		}

	case SetupSubmitMsg:
		m.CurrentScreen = GameScreen
		m.GameModel = NewGameModel(m.ctx, m.Options, msg, m.ScreenWidth, m.ScreenHeight)
		return m, m.GameModel.Init()

	case ShowHistoryMsg:
		m.CurrentScreen = HistoryScreen
		m.HistoryModel = NewHistoryModel(m.Options.History, m.ScreenWidth, m.ScreenHeight)
		return m, m.HistoryModel.Init()

	case QuitGameMsg:
		m.CurrentScreen = IntroScreen
		m.GameModel = nil
		return m, m.IntroModel.Init()
	}

	// --- 3. Message Delegation (Pass to the active model for all other messages) ---
	if active := m.activeModel(); active != nil {
		updated, cmd := active.Update(msg)
		m.setActiveModel(updated)
		return m, cmd
	}
	return m, nil
}
