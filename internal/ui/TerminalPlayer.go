package ui

import (
	"context"
	"unicode"

	"github.com/Mshel/campmisty/internal/game"
	"github.com/Mshel/campmisty/internal/multiplayer"
	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages from the match goroutine ---

type promptKind int

const (
	promptMove promptKind = iota
	promptTrap
)

type promptMsg struct {
	kind   promptKind
	board  boardView
	notice string
}

type statusMsg string

type matchStartedMsg struct {
	role game.Role
}

type roundPlayedMsg struct {
	report multiplayer.RoundReport
}

type matchFinishedMsg struct {
	role   game.Role
	result multiplayer.Result
	err    error
}

// --- Board snapshot ---

type spotView struct {
	Name   string
	Letter rune
}

type sectionView struct {
	Name    string
	Letter  rune
	Trapped bool
	Spots   []spotView
}

// boardView is a copy of what one role may see of the state, taken on the
// match goroutine so the UI never touches the live GameState.
type boardView struct {
	Role      game.Role
	Round     int
	Remaining uint
	Wounded   bool
	Message   string
	Chase     int // -1 outside a chase
	Sections  []sectionView
}

func newBoardView(role game.Role, state *game.GameState) boardView {
	board := boardView{
		Role:      role,
		Round:     state.Round,
		Remaining: state.RemainingItems,
		Wounded:   state.VictimWounded,
		Message:   game.RoundMessage(role, state),
		Chase:     -1,
	}
	if section, ok := state.Chasing(); ok {
		board.Chase = section
	}
	for _, section := range state.Map.Sections {
		view := sectionView{Name: section.Name, Letter: section.Letter}
		if role == game.Victim {
			view.Trapped = section.Trapped
		}
		for _, sub := range section.SubSections {
			view.Spots = append(view.Spots, spotView{Name: sub.Name, Letter: sub.Letter})
		}
		board.Sections = append(board.Sections, view)
	}
	return board
}

func (b boardView) sectionByLetter(r rune) (int, bool) {
	for i, section := range b.Sections {
		if unicode.ToUpper(section.Letter) == unicode.ToUpper(r) {
			return i, true
		}
	}
	return 0, false
}

func (b boardView) spotByLetter(section int, r rune) (int, bool) {
	if section < 0 || section >= len(b.Sections) {
		return 0, false
	}
	for i, spot := range b.Sections[section].Spots {
		if unicode.ToUpper(spot.Letter) == unicode.ToUpper(r) {
			return i, true
		}
	}
	return 0, false
}

// --- TerminalPlayer ---

// TerminalPlayer is the person at the keyboard. The match goroutine asks it
// for moves, it forwards a prompt to the UI over updates and blocks until
// the view answers on moves or traps.
type TerminalPlayer struct {
	role     game.Role
	updates  chan<- tea.Msg
	moves    chan game.Move
	traps    chan int
	rejected string
}

func NewTerminalPlayer(updates chan<- tea.Msg) *TerminalPlayer {
	return &TerminalPlayer{
		updates: updates,
		moves:   make(chan game.Move, 1),
		traps:   make(chan int, 1),
	}
}

func (p *TerminalPlayer) ChooseMove(ctx context.Context, state *game.GameState) (game.Move, error) {
	if err := p.prompt(ctx, promptMove, state); err != nil {
		return game.Move{}, err
	}
	select {
	case mv := <-p.moves:
		return mv, nil
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	}
}

func (p *TerminalPlayer) ChooseTrap(ctx context.Context, state *game.GameState) (int, error) {
	if err := p.prompt(ctx, promptTrap, state); err != nil {
		return 0, err
	}
	select {
	case section := <-p.traps:
		return section, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *TerminalPlayer) MoveRejected(_ game.Move, err error) {
	p.rejected = "You can't go there: " + err.Error()
}

func (p *TerminalPlayer) prompt(ctx context.Context, kind promptKind, state *game.GameState) error {
	msg := promptMsg{kind: kind, board: newBoardView(p.role, state), notice: p.rejected}
	p.rejected = ""
	select {
	case p.updates <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SubmitMove answers the pending move prompt.
func (p *TerminalPlayer) SubmitMove(mv game.Move) {
	select {
	case p.moves <- mv:
	default:
	}
}

// SubmitTrap answers the pending trap prompt.
func (p *TerminalPlayer) SubmitTrap(section int) {
	select {
	case p.traps <- section:
	default:
	}
}
