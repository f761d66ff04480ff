package multiplayer

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mshel/campmisty/internal/game"
	"golang.org/x/sync/errgroup"
)

// Opponent is whatever sits on the other side of the lock-step round.
type Opponent interface {
	// SwapMoves hands over the local move and returns the other side's move
	// for the same round.
	SwapMoves(ctx context.Context, state *game.GameState, local game.Move) (game.Move, error)
	// SendTrap passes a section the local victim trapped to the killer.
	SendTrap(ctx context.Context, section int) error
	// ReceiveTrap returns the section the other side trapped.
	ReceiveTrap(ctx context.Context, state *game.GameState) (int, error)
}

var errCannotSetTraps = errors.New("player cannot set traps")

// RemoteOpponent plays against another process over a Peer. Each side keeps
// its own mirrored GameState.
type RemoteOpponent struct {
	peer *Peer
}

func NewRemoteOpponent(peer *Peer) *RemoteOpponent {
	return &RemoteOpponent{peer: peer}
}

func (o *RemoteOpponent) SwapMoves(ctx context.Context, _ *game.GameState, local game.Move) (game.Move, error) {
	stop := o.peer.closeOnDone(ctx)
	defer stop()

	// Both sides send first, so the send cannot wait for the receive on
	// unbuffered transports such as net.Pipe. A failure on either half is
	// fatal and closes the peer so the other half returns too.
	var (
		g      errgroup.Group
		packet MovePacket
	)
	g.Go(func() error {
		return o.closeOnError(o.peer.Send(NewMovePacket(local)))
	})
	g.Go(func() error {
		var err error
		packet, err = Receive[MovePacket](o.peer)
		return o.closeOnError(err)
	})
	if err := g.Wait(); err != nil {
		return game.Move{}, err
	}
	return packet.Move(), nil
}

func (o *RemoteOpponent) SendTrap(ctx context.Context, section int) error {
	stop := o.peer.closeOnDone(ctx)
	defer stop()
	return o.peer.Send(TrapPacket(section))
}

func (o *RemoteOpponent) ReceiveTrap(ctx context.Context, _ *game.GameState) (int, error) {
	stop := o.peer.closeOnDone(ctx)
	defer stop()
	packet, err := Receive[TrapPacket](o.peer)
	if err != nil {
		return 0, err
	}
	return int(packet), nil
}

func (o *RemoteOpponent) closeOnError(err error) error {
	if err != nil {
		o.peer.Close()
	}
	return err
}

func (o *RemoteOpponent) Close() error {
	return o.peer.Close()
}

// LocalOpponent is an in-process player, usually an AI, sharing the one
// authoritative GameState with the local player.
type LocalOpponent struct {
	Player game.Player
	Role   game.Role
}

func (o *LocalOpponent) SwapMoves(ctx context.Context, state *game.GameState, _ game.Move) (game.Move, error) {
	mv, err := game.ChooseLegalMove(ctx, o.Player, o.Role, state)
	if err != nil {
		return game.Move{}, fmt.Errorf("%s opponent move: %w", o.Role, err)
	}
	return mv, nil
}

// SendTrap is a no-op, the trap is already on the shared state.
func (o *LocalOpponent) SendTrap(context.Context, int) error {
	return nil
}

func (o *LocalOpponent) ReceiveTrap(ctx context.Context, state *game.GameState) (int, error) {
	setter, ok := o.Player.(game.TrapSetter)
	if !ok {
		return 0, fmt.Errorf("%s opponent: %w", o.Role, errCannotSetTraps)
	}
	return setter.ChooseTrap(ctx, state)
}
