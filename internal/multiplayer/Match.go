package multiplayer

import (
	"context"
	"fmt"

	"github.com/Mshel/campmisty/internal/game"
	"github.com/charmbracelet/log"
)

const noTrap = -1

// RoundReport describes one resolved round.
type RoundReport struct {
	Round       int
	VictimMove  game.Move
	KillerMove  game.Move
	Outcome     game.Outcome
	TrapSection int // noTrap unless the victim set a trap after evading
}

func (r RoundReport) Trapped() (int, bool) {
	return r.TrapSection, r.TrapSection != noTrap
}

// Observer is called from the match goroutine after every round.
type Observer func(report RoundReport)

type Result struct {
	Winner     game.Role
	Final      game.RoundResult
	Rounds     int
	ItemsFound int
}

// Match drives one side of a game: it asks Local for a move, swaps moves
// with Opponent and resolves the round on State until someone wins.
type Match struct {
	State    *game.GameState
	Role     game.Role
	Local    game.Player
	Opponent Opponent
	Observer Observer
	Logger   *log.Logger
}

func (m *Match) logger() *log.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return log.Default()
}

func (m *Match) Run(ctx context.Context) (Result, error) {
	logger := m.logger()
	logger.Info("Match started", "role", m.Role, "items", m.State.RemainingItems)

	for !m.State.Over() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		report, err := m.PlayRound(ctx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Result{}, ctxErr
			}
			logger.Error("Match ended unexpectedly", "round", m.State.Round+1, "err", err)
			return Result{}, err
		}
		if m.Observer != nil {
			m.Observer(report)
		}
	}

	winner, _ := m.State.Winner()
	result := Result{
		Winner:     winner,
		Final:      m.State.LastOutcome.Result,
		Rounds:     m.State.Round,
		ItemsFound: m.State.Map.SectionCount() - int(m.State.RemainingItems),
	}
	logger.Info("Match finished", "winner", result.Winner, "result", result.Final, "rounds", result.Rounds)
	return result, nil
}

// PlayRound plays a single round, including the trap exchange after an
// evaded chase.
func (m *Match) PlayRound(ctx context.Context) (RoundReport, error) {
	if m.State.Over() {
		return RoundReport{}, game.ErrMatchOver
	}

	// 1. Local move, re-prompted until legal
	local, err := game.ChooseLegalMove(ctx, m.Local, m.Role, m.State)
	if err != nil {
		return RoundReport{}, fmt.Errorf("choose %s move: %w", m.Role, err)
	}

	// 2. Swap with the other side
	other, err := m.Opponent.SwapMoves(ctx, m.State, local)
	if err != nil {
		return RoundReport{}, err
	}

	// 3. Resolve on our copy of the state
	victim, killer := local, other
	if m.Role == game.Killer {
		victim, killer = other, local
	}
	outcome, err := m.State.Play(victim, killer)
	if err != nil {
		return RoundReport{}, fmt.Errorf("%w: %s move %v rejected: %w", ErrProtocol, m.Role.Opposite(), other, err)
	}

	report := RoundReport{
		Round:       m.State.Round,
		VictimMove:  victim,
		KillerMove:  killer,
		Outcome:     outcome,
		TrapSection: noTrap,
	}
	m.logger().Debug("Round resolved", "round", report.Round, "victim", victim, "killer", killer, "outcome", outcome)

	// 4. Trap after an evaded chase
	if outcome.Result == game.Evaded {
		section, err := m.exchangeTrap(ctx)
		if err != nil {
			return RoundReport{}, err
		}
		report.TrapSection = section
	}
	return report, nil
}

func (m *Match) exchangeTrap(ctx context.Context) (int, error) {
	if m.Role == game.Killer {
		section, err := m.Opponent.ReceiveTrap(ctx, m.State)
		if err != nil {
			return noTrap, err
		}
		if err := m.State.PlaceTrap(section); err != nil {
			return noTrap, fmt.Errorf("%w: trap rejected: %w", ErrProtocol, err)
		}
		return section, nil
	}

	setter, ok := m.Local.(game.TrapSetter)
	if !ok {
		return noTrap, fmt.Errorf("local %s: %w", m.Role, errCannotSetTraps)
	}
	section, err := setter.ChooseTrap(ctx, m.State)
	if err != nil {
		return noTrap, fmt.Errorf("choose trap: %w", err)
	}
	if err := m.State.PlaceTrap(section); err != nil {
		return noTrap, fmt.Errorf("place trap: %w", err)
	}
	if err := m.Opponent.SendTrap(ctx, section); err != nil {
		return noTrap, err
	}
	return section, nil
}
