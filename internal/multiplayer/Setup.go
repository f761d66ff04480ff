package multiplayer

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Mshel/campmisty/internal/game"
)

// Host hides the car parts on a fresh Camp Misty, then announces its own
// role followed by the part locations. The joiner plays the opposite role.
func Host(ctx context.Context, peer *Peer, role game.Role, rng *rand.Rand) (*game.GameState, error) {
	stop := peer.closeOnDone(ctx)
	defer stop()

	state := game.NewGameState(game.NewCampMisty())
	state.RandomizeItems(rng)

	if err := peer.Send(PlayerTypePacket(role)); err != nil {
		return nil, err
	}
	if err := peer.Send(NewMapStatePacket(state)); err != nil {
		return nil, err
	}
	return state, nil
}

// Join reads the host's announcements and returns the mirrored state along
// with the role this side plays.
func Join(ctx context.Context, peer *Peer) (*game.GameState, game.Role, error) {
	stop := peer.closeOnDone(ctx)
	defer stop()

	hostRole, err := Receive[PlayerTypePacket](peer)
	if err != nil {
		return nil, 0, err
	}
	mapState, err := Receive[MapStatePacket](peer)
	if err != nil {
		return nil, 0, err
	}

	state := game.NewGameState(game.NewCampMisty())
	if err := state.LoadItems(mapState.Moves()); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	return state, hostRole.Opposite(), nil
}
