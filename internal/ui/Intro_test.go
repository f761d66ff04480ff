package ui

import (
	"reflect"
	"testing"

	"github.com/Mshel/campmisty/internal/multiplayer"
	tea "github.com/charmbracelet/bubbletea"
)

func TestMenuChoicesFollowOptions(t *testing.T) {
	got := menuChoices(Options{})
	want := []MenuChoice{ChoiceSingleplayer, ChoiceInstructions, ChoiceQuit}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("choices = %v, want %v", got, want)
	}

	got = menuChoices(Options{AllowDirect: true, Lobby: multiplayer.NewLobby()})
	want = []MenuChoice{ChoiceSingleplayer, ChoiceHost, ChoiceJoin, ChoiceOnline, ChoiceInstructions, ChoiceQuit}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("choices = %v, want %v", got, want)
	}
}

func TestIntroHotkeysAndNavigation(t *testing.T) {
	m := NewIntroModel(menuChoices(Options{AllowDirect: true}), 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if cmd == nil || cmd() != IntroSubmitMsg(ChoiceJoin) {
		t.Fatalf("j should pick join")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || cmd() != IntroSubmitMsg(ChoiceHost) {
		t.Fatalf("down then enter should pick host")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	_, cmd = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || cmd() != IntroSubmitMsg(ChoiceQuit) {
		t.Fatalf("up from the top should wrap to quit")
	}
}

func TestSetupJoinAsksOnlyForAddress(t *testing.T) {
	m := NewInitialSetupModel(ModeJoin, "10.0.0.1:7878", 80, 24)
	if m.focused() != addrField {
		t.Fatalf("join should start on the address")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("submit should produce a command")
	}
	msg, ok := cmd().(SetupSubmitMsg)
	if !ok {
		t.Fatalf("expected SetupSubmitMsg")
	}
	if msg.Mode != ModeJoin || msg.Addr != "10.0.0.1:7878" {
		t.Fatalf("submitted %+v", msg)
	}
}

func TestSetupRoleHotkeys(t *testing.T) {
	m := NewInitialSetupModel(ModeSingleplayer, "", 80, 24)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	updated, _ = updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(SetupSubmitMsg)
	if msg.Role != ChooseKiller || msg.Mode != ModeSingleplayer {
		t.Fatalf("submitted %+v", msg)
	}
}
