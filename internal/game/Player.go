package game

import (
	"context"
	"math/rand"
)

// Player is a source of moves for one side of a match: an AI, a Lua script,
// a person at a terminal.
type Player interface {
	ChooseMove(ctx context.Context, state *GameState) (Move, error)
}

// TrapSetter is implemented by players able to take the victim role. It is
// asked for a section to trap after the victim evades a chase.
type TrapSetter interface {
	ChooseTrap(ctx context.Context, state *GameState) (int, error)
}

// MoveRejectionListener is told when a move it chose was illegal, before it
// is asked again.
type MoveRejectionListener interface {
	MoveRejected(mv Move, err error)
}

// ChooseLegalMove asks p for a move until the engine accepts it for role.
func ChooseLegalMove(ctx context.Context, p Player, role Role, state *GameState) (Move, error) {
	var lastErr error
	for attempt := 0; attempt < maxMoveAttempts; attempt++ {
		mv, err := p.ChooseMove(ctx, state)
		if err != nil {
			return Move{}, err
		}
		if lastErr = state.CheckMove(role, mv); lastErr == nil {
			return mv, nil
		}
		if listener, ok := p.(MoveRejectionListener); ok {
			listener.MoveRejected(mv, lastErr)
		}
	}
	return Move{}, lastErr
}

// NewComputerPlayer returns the Lua script at scriptPath when one is given,
// otherwise the built in AI for role.
func NewComputerPlayer(role Role, gameMap *GameMap, rng *rand.Rand, scriptPath string) (Player, error) {
	if scriptPath != "" {
		return LoadLuaPlayer(role, scriptPath)
	}
	if role == Killer {
		return NewKillerAI(gameMap, rng), nil
	}
	return NewVictimAI(gameMap, rng), nil
}
