package ui

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mshel/campmisty/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

func TestBoardViewHidesTrapsFromKiller(t *testing.T) {
	state := game.NewGameState(game.NewCampMisty())
	if err := state.PlaceTrap(3); err != nil {
		t.Fatalf("place trap: %v", err)
	}

	if newBoardView(game.Killer, state).Sections[3].Trapped {
		t.Fatalf("killer can see the trap")
	}
	if !newBoardView(game.Victim, state).Sections[3].Trapped {
		t.Fatalf("victim cannot see their own trap")
	}
}

func TestBoardViewLookups(t *testing.T) {
	board := newBoardView(game.Victim, game.NewGameState(game.NewCampMisty()))
	if i, ok := board.sectionByLetter('o'); !ok || i != 4 {
		t.Fatalf("sectionByLetter('o') = %d, %v", i, ok)
	}
	if _, ok := board.sectionByLetter('z'); ok {
		t.Fatalf("unknown section letter matched")
	}
	if i, ok := board.spotByLetter(0, 'k'); !ok || i != 1 {
		t.Fatalf("spotByLetter(0, 'k') = %d, %v", i, ok)
	}
	if _, ok := board.spotByLetter(7, 'k'); ok {
		t.Fatalf("spot in a missing section matched")
	}
	if board.Chase != -1 {
		t.Fatalf("fresh board is in a chase")
	}
}

// answerPrompts plays the terminal side of a runner with random legal
// choices until the match finishes.
func answerPrompts(t *testing.T, runner *matchRunner) matchFinishedMsg {
	t.Helper()
	rng := rand.New(rand.NewSource(5))
	timeout := time.After(10 * time.Second)
	for {
		select {
		case msg, ok := <-runner.updates:
			if !ok {
				t.Fatalf("updates closed before the match finished")
			}
			switch msg := msg.(type) {
			case promptMsg:
				if msg.kind == promptTrap {
					runner.player.SubmitTrap(rng.Intn(len(msg.board.Sections)))
					continue
				}
				section := msg.board.Chase
				if section < 0 {
					section = rng.Intn(len(msg.board.Sections))
				}
				spot := rng.Intn(len(msg.board.Sections[section].Spots))
				runner.player.SubmitMove(game.Move{Section: section, SubSection: spot})
			case matchFinishedMsg:
				return msg
			}
		case <-timeout:
			t.Fatalf("match did not finish")
		}
	}
}

func TestSingleplayerRunnerSavesHistory(t *testing.T) {
	history, err := game.NewMatchHistoryService(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer history.Close()

	for _, choice := range []RoleChoice{ChooseKiller, ChooseVictim} {
		runner := newMatchRunner(context.Background(), Options{History: history}, SetupSubmitMsg{Mode: ModeSingleplayer, Role: choice})
		go runner.run()

		finished := answerPrompts(t, runner)
		if finished.err != nil {
			t.Fatalf("match failed: %v", finished.err)
		}
		if want := choice.resolve(nil); finished.role != want {
			t.Fatalf("role = %v, want %v", finished.role, want)
		}
		runner.cancel()
	}

	count, err := history.GetTotalMatchCount()
	if err != nil || count != 2 {
		t.Fatalf("saved matches = %d, %v; want 2", count, err)
	}
}

func TestRunnerCancelStopsMatch(t *testing.T) {
	runner := newMatchRunner(context.Background(), Options{}, SetupSubmitMsg{Mode: ModeSingleplayer, Role: ChooseVictim})
	go runner.run()

	// wait for the first prompt, then walk away
	for msg := range runner.updates {
		if _, ok := msg.(promptMsg); ok {
			break
		}
	}
	runner.cancel()

	done := make(chan struct{})
	go func() {
		for range runner.updates {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatalf("runner kept going after cancel")
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m GameViewModel, msg tea.Msg) GameViewModel {
	t.Helper()
	updated, _ := m.Update(msg)
	view, ok := updated.(GameViewModel)
	if !ok {
		t.Fatalf("update returned %T", updated)
	}
	return view
}

func TestGameViewMoveSelection(t *testing.T) {
	m := NewGameModel(context.Background(), Options{}, SetupSubmitMsg{Mode: ModeSingleplayer, Role: ChooseVictim}, 120, 40)
	state := game.NewGameState(game.NewCampMisty())

	m = update(t, m, matchStartedMsg{role: game.Victim})
	m = update(t, m, promptMsg{kind: promptMove, board: newBoardView(game.Victim, state)})
	if m.phase != phaseChooseSection {
		t.Fatalf("phase = %v, want section choice", m.phase)
	}

	m = update(t, m, runes("z"))
	if m.phase != phaseChooseSection || m.notice == "" {
		t.Fatalf("unknown location should be refused with a notice")
	}

	m = update(t, m, runes("c"))
	if m.phase != phaseChooseSpot || m.section != 0 {
		t.Fatalf("phase = %v section = %d", m.phase, m.section)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != phaseChooseSection {
		t.Fatalf("esc should go back to the location choice")
	}
	m = update(t, m, runes("L"))
	m = update(t, m, runes("b"))
	if m.phase != phaseWaiting {
		t.Fatalf("phase = %v after a full move", m.phase)
	}

	select {
	case mv := <-m.runner.player.moves:
		if mv != (game.Move{Section: 1, SubSection: 1}) {
			t.Fatalf("move = %v, want (1, 1)", mv)
		}
	default:
		t.Fatalf("no move submitted")
	}
	if view := m.View(); view == "" {
		t.Fatalf("empty view")
	}
}

func TestGameViewChaseAndTrap(t *testing.T) {
	m := NewGameModel(context.Background(), Options{}, SetupSubmitMsg{Mode: ModeSingleplayer, Role: ChooseVictim}, 120, 40)
	state := game.NewGameState(game.NewCampMisty())
	if _, err := state.Play(game.Move{Section: 2, SubSection: 0}, game.Move{Section: 2, SubSection: 1}); err != nil {
		t.Fatalf("start chase: %v", err)
	}

	m = update(t, m, promptMsg{kind: promptMove, board: newBoardView(game.Victim, state)})
	if m.phase != phaseChooseSpot || m.section != 2 {
		t.Fatalf("chase should skip the location choice, phase = %v section = %d", m.phase, m.section)
	}
	m = update(t, m, runes("f"))
	if mv := <-m.runner.player.moves; mv != (game.Move{Section: 2, SubSection: 4}) {
		t.Fatalf("move = %v", mv)
	}

	m = update(t, m, promptMsg{kind: promptTrap, board: newBoardView(game.Victim, state)})
	m = update(t, m, runes("o"))
	select {
	case section := <-m.runner.player.traps:
		if section != 4 {
			t.Fatalf("trap = %d, want 4", section)
		}
	default:
		t.Fatalf("no trap submitted")
	}
}

func TestGameViewFinished(t *testing.T) {
	m := NewGameModel(context.Background(), Options{}, SetupSubmitMsg{Mode: ModeSingleplayer, Role: ChooseKiller}, 120, 40)
	m = update(t, m, matchFinishedMsg{role: game.Killer})
	if m.phase != phaseFinished {
		t.Fatalf("phase = %v", m.phase)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter on game over should return to the menu")
	}
	if _, ok := cmd().(QuitGameMsg); !ok {
		t.Fatalf("expected QuitGameMsg")
	}
}
