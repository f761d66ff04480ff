package ui

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/Mshel/campmisty/internal/game"
	"github.com/Mshel/campmisty/internal/multiplayer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

type Mode string

const (
	ModeSingleplayer Mode = "singleplayer"
	ModeHost         Mode = "host"
	ModeJoin         Mode = "join"
	ModeOnline       Mode = "online"
)

type RoleChoice int

const (
	ChooseKiller RoleChoice = iota
	ChooseVictim
	ChooseRandom
)

func (c RoleChoice) String() string {
	switch c {
	case ChooseKiller:
		return "(K)iller"
	case ChooseVictim:
		return "(V)ictim"
	default:
		return "(R)andom"
	}
}

func (c RoleChoice) resolve(rng *rand.Rand) game.Role {
	switch c {
	case ChooseKiller:
		return game.Killer
	case ChooseVictim:
		return game.Victim
	default:
		return game.RandomRole(rng)
	}
}

// Options wires the UI to the services of the process it runs in.
type Options struct {
	History      *game.MatchHistoryService // nil disables the history screen
	Lobby        *multiplayer.Lobby        // nil hides online play
	AllowDirect  bool                      // offer hosting and joining by address
	Addr         string
	WebSocket    bool
	KillerScript string
	VictimScript string
	Logger       *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

func (o Options) script(role game.Role) string {
	if role == game.Killer {
		return o.KillerScript
	}
	return o.VictimScript
}

// matchRunner plays one match on its own goroutine and reports to the view
// through updates.
type matchRunner struct {
	ctx     context.Context
	cancel  context.CancelFunc
	opts    Options
	setup   SetupSubmitMsg
	updates chan tea.Msg
	player  *TerminalPlayer
	rng     *rand.Rand
}

func newMatchRunner(parent context.Context, opts Options, setup SetupSubmitMsg) *matchRunner {
	ctx, cancel := context.WithCancel(parent)
	updates := make(chan tea.Msg, 8)
	return &matchRunner{
		ctx:     ctx,
		cancel:  cancel,
		opts:    opts,
		setup:   setup,
		updates: updates,
		player:  NewTerminalPlayer(updates),
		rng:     game.NewRand(),
	}
}

func (r *matchRunner) send(msg tea.Msg) {
	select {
	case r.updates <- msg:
	case <-r.ctx.Done():
	}
}

func (r *matchRunner) run() {
	defer close(r.updates)

	role, result, err := r.play()
	if err != nil {
		r.opts.logger().Error("Match ended unexpectedly", "mode", r.setup.Mode, "err", err)
	} else if r.opts.History != nil {
		_, saveErr := r.opts.History.SaveMatch(game.MatchRecord{
			Mode:       string(r.setup.Mode),
			PlayerRole: role,
			Winner:     result.Winner,
			Rounds:     result.Rounds,
			ItemsFound: result.ItemsFound,
		})
		if saveErr != nil {
			r.opts.logger().Error("Could not save match", "err", saveErr)
		}
	}
	r.send(matchFinishedMsg{role: role, result: result, err: err})
}

func (r *matchRunner) play() (game.Role, multiplayer.Result, error) {
	switch r.setup.Mode {
	case ModeSingleplayer:
		role := r.setup.Role.resolve(r.rng)
		state := game.NewGameState(game.NewCampMisty())
		state.RandomizeItems(r.rng)
		computer, err := game.NewComputerPlayer(role.Opposite(), state.Map, r.rng, r.opts.script(role.Opposite()))
		if err != nil {
			return role, multiplayer.Result{}, err
		}
		return r.runMatch(state, role, &multiplayer.LocalOpponent{Player: computer, Role: role.Opposite()})

	case ModeHost:
		r.send(statusMsg("Waiting for a player to join on " + r.setup.Addr + "..."))
		peer, err := r.listen()
		if err != nil {
			return 0, multiplayer.Result{}, err
		}
		defer peer.Close()
		return r.host(peer, r.setup.Role.resolve(r.rng))

	case ModeJoin:
		r.send(statusMsg("Joining " + r.setup.Addr + "..."))
		peer, err := r.dial()
		if err != nil {
			return 0, multiplayer.Result{}, err
		}
		defer peer.Close()
		return r.join(peer)

	case ModeOnline:
		if r.opts.Lobby == nil {
			return 0, multiplayer.Result{}, fmt.Errorf("online play is not available here")
		}
		r.send(statusMsg("Waiting for another player to show up at Camp Misty..."))
		seat, err := r.opts.Lobby.Wait(r.ctx)
		if err != nil {
			return 0, multiplayer.Result{}, err
		}
		defer seat.Peer.Close()
		if seat.Host {
			return r.host(seat.Peer, game.RandomRole(r.rng))
		}
		return r.join(seat.Peer)

	default:
		return 0, multiplayer.Result{}, fmt.Errorf("unknown mode %q", r.setup.Mode)
	}
}

func (r *matchRunner) listen() (*multiplayer.Peer, error) {
	if r.opts.WebSocket {
		return multiplayer.ListenWebSocket(r.ctx, r.setup.Addr)
	}
	return multiplayer.Listen(r.ctx, r.setup.Addr)
}

func (r *matchRunner) dial() (*multiplayer.Peer, error) {
	if r.opts.WebSocket {
		return multiplayer.DialWebSocket(r.ctx, "ws://"+r.setup.Addr+multiplayer.PlayPath)
	}
	return multiplayer.Dial(r.ctx, r.setup.Addr)
}

func (r *matchRunner) host(peer *multiplayer.Peer, role game.Role) (game.Role, multiplayer.Result, error) {
	state, err := multiplayer.Host(r.ctx, peer, role, r.rng)
	if err != nil {
		return role, multiplayer.Result{}, err
	}
	return r.runMatch(state, role, multiplayer.NewRemoteOpponent(peer))
}

func (r *matchRunner) join(peer *multiplayer.Peer) (game.Role, multiplayer.Result, error) {
	state, role, err := multiplayer.Join(r.ctx, peer)
	if err != nil {
		return role, multiplayer.Result{}, err
	}
	return r.runMatch(state, role, multiplayer.NewRemoteOpponent(peer))
}

func (r *matchRunner) runMatch(state *game.GameState, role game.Role, opponent multiplayer.Opponent) (game.Role, multiplayer.Result, error) {
	r.player.role = role
	r.send(matchStartedMsg{role: role})

	match := &multiplayer.Match{
		State:    state,
		Role:     role,
		Local:    r.player,
		Opponent: opponent,
		Observer: func(report multiplayer.RoundReport) { r.send(roundPlayedMsg{report: report}) },
		Logger:   r.opts.Logger,
	}
	result, err := match.Run(r.ctx)
	return role, result, err
}
