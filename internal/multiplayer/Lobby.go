package multiplayer

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

var ErrLobbyClosed = errors.New("lobby closed")

// Seat is a lobby pairing as seen by one of the two players.
type Seat struct {
	Peer *Peer
	// Host is true for the player that waited first. It picks the roles
	// and hides the parts.
	Host bool
}

type seatRequest struct {
	reply chan Seat
}

// Lobby pairs players who want an online match. A single goroutine (Run)
// owns the waiting player, everyone else talks to it over channels.
type Lobby struct {
	requests chan *seatRequest
	leave    chan *seatRequest
	done     chan struct{}
}

func NewLobby() *Lobby {
	return &Lobby{
		requests: make(chan *seatRequest),
		leave:    make(chan *seatRequest),
		done:     make(chan struct{}),
	}
}

// Run pairs players until ctx ends.
func (l *Lobby) Run(ctx context.Context) {
	log.Info("Lobby starting")
	defer close(l.done)

	var waiting *seatRequest
	for {
		select {
		case req := <-l.requests:
			if waiting == nil {
				waiting = req
				log.Debug("Lobby has a waiting player")
				continue
			}
			hostPeer, joinPeer := Pipe()
			waiting.reply <- Seat{Peer: hostPeer, Host: true}
			req.reply <- Seat{Peer: joinPeer}
			waiting = nil
			log.Info("Lobby paired two players")

		case req := <-l.leave:
			if waiting == req {
				waiting = nil
				log.Debug("Waiting player left the lobby")
			}

		case <-ctx.Done():
			log.Info("Lobby stopping")
			return
		}
	}
}

// Wait blocks until another player shows up or ctx ends.
func (l *Lobby) Wait(ctx context.Context) (Seat, error) {
	req := &seatRequest{reply: make(chan Seat, 1)}
	select {
	case l.requests <- req:
	case <-l.done:
		return Seat{}, ErrLobbyClosed
	case <-ctx.Done():
		return Seat{}, ctx.Err()
	}

	select {
	case seat := <-req.reply:
		return seat, nil
	case <-l.done:
		return Seat{}, ErrLobbyClosed
	case <-ctx.Done():
		select {
		case l.leave <- req:
		case <-l.done:
		}
		// Run may have paired us before it saw the leave
		select {
		case seat := <-req.reply:
			seat.Peer.Close()
		default:
		}
		return Seat{}, ctx.Err()
	}
}
