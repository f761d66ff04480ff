package multiplayer

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/Mshel/campmisty/internal/game"
	"golang.org/x/sync/errgroup"
)

type sideResult struct {
	state   *game.GameState
	role    game.Role
	result  Result
	reports []RoundReport
}

func newBot(role game.Role, gameMap *game.GameMap, seed int64) game.Player {
	rng := rand.New(rand.NewSource(seed))
	if role == game.Killer {
		return game.NewKillerAI(gameMap, rng)
	}
	return game.NewVictimAI(gameMap, rng)
}

func runSide(ctx context.Context, state *game.GameState, role game.Role, peer *Peer, seed int64) (sideResult, error) {
	side := sideResult{state: state, role: role}
	match := &Match{
		State:    state,
		Role:     role,
		Local:    newBot(role, state.Map, seed),
		Opponent: NewRemoteOpponent(peer),
		Observer: func(report RoundReport) { side.reports = append(side.reports, report) },
	}
	result, err := match.Run(ctx)
	side.result = result
	return side, err
}

// playNetworked runs a host and a joiner bot against each other over the
// two given peers.
func playNetworked(t *testing.T, hostPeer, joinPeer *Peer, hostRole game.Role, seed int64) (host, join sideResult) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		state, err := Host(ctx, hostPeer, hostRole, rand.New(rand.NewSource(seed)))
		if err != nil {
			return err
		}
		host, err = runSide(ctx, state, hostRole, hostPeer, seed+1)
		return err
	})
	g.Go(func() error {
		state, role, err := Join(ctx, joinPeer)
		if err != nil {
			return err
		}
		join, err = runSide(ctx, state, role, joinPeer, seed+2)
		return err
	})
	if err := g.Wait(); err != nil {
		t.Fatalf("networked match: %v", err)
	}
	return host, join
}

func traps(state *game.GameState) []bool {
	var trapped []bool
	for _, section := range state.Map.Sections {
		trapped = append(trapped, section.Trapped)
	}
	return trapped
}

func assertConverged(t *testing.T, host, join sideResult) {
	t.Helper()
	if host.role != join.role.Opposite() {
		t.Fatalf("both sides play %v", host.role)
	}
	if host.result != join.result {
		t.Fatalf("results differ: host %+v join %+v", host.result, join.result)
	}
	if !reflect.DeepEqual(host.reports, join.reports) {
		t.Fatalf("round reports differ")
	}
	if !reflect.DeepEqual(host.state.ItemLocations(), join.state.ItemLocations()) ||
		!reflect.DeepEqual(traps(host.state), traps(join.state)) ||
		host.state.LastOutcome != join.state.LastOutcome ||
		host.state.VictimWounded != join.state.VictimWounded ||
		host.state.RemainingItems != join.state.RemainingItems {
		t.Fatalf("states diverged")
	}
	if !host.state.Over() {
		t.Fatalf("match did not reach a terminal result")
	}
}

func TestNetworkedPeersConverge(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		role := game.Killer
		if seed%2 == 1 {
			role = game.Victim
		}
		hostPeer, joinPeer := Pipe()
		host, join := playNetworked(t, hostPeer, joinPeer, role, seed*10)
		assertConverged(t, host, join)
		hostPeer.Close()
		joinPeer.Close()
	}
}

func TestJoinTakesOppositeRoleAndSameItems(t *testing.T) {
	hostPeer, joinPeer := Pipe()
	defer hostPeer.Close()
	defer joinPeer.Close()

	ctx := context.Background()
	var (
		g         errgroup.Group
		hostState *game.GameState
	)
	g.Go(func() error {
		var err error
		hostState, err = Host(ctx, hostPeer, game.Victim, rand.New(rand.NewSource(7)))
		return err
	})
	joinState, joinRole, err := Join(ctx, joinPeer)
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("host: %v", err)
	}
	if joinRole != game.Killer {
		t.Fatalf("joiner role = %v, want Killer", joinRole)
	}
	if !reflect.DeepEqual(hostState.ItemLocations(), joinState.ItemLocations()) {
		t.Fatalf("item layouts differ")
	}
}

func TestJoinRejectsBadItemLayout(t *testing.T) {
	hostPeer, joinPeer := Pipe()
	defer hostPeer.Close()
	defer joinPeer.Close()

	go func() {
		hostPeer.Send(PlayerTypePacket(game.Killer))
		hostPeer.Send(MapStatePacket{HiddenParts: []MovePacket{{0, 0}, {0, 1}}})
	}()
	_, _, err := Join(context.Background(), joinPeer)
	if !errors.Is(err, ErrProtocol) || !errors.Is(err, game.ErrInvalidItems) {
		t.Fatalf("err = %v", err)
	}
}

func TestSinglePlayerMatchTerminates(t *testing.T) {
	for _, role := range []game.Role{game.Killer, game.Victim} {
		for seed := int64(0); seed < 50; seed++ {
			rng := rand.New(rand.NewSource(seed))
			state := game.NewGameState(game.NewCampMisty())
			state.RandomizeItems(rng)

			rounds := 0
			match := &Match{
				State:    state,
				Role:     role,
				Local:    newBot(role, state.Map, seed+100),
				Opponent: &LocalOpponent{Player: newBot(role.Opposite(), state.Map, seed+200), Role: role.Opposite()},
				Observer: func(RoundReport) { rounds++ },
			}
			result, err := match.Run(context.Background())
			if err != nil {
				t.Fatalf("%v seed %d: %v", role, seed, err)
			}
			winner, ok := state.Winner()
			if !ok || winner != result.Winner || result.Rounds != rounds || result.Rounds != state.Round {
				t.Fatalf("%v seed %d: inconsistent result %+v after %d rounds", role, seed, result, rounds)
			}
			if result.Winner == game.Victim && result.ItemsFound != game.CampMistySectionCount {
				t.Fatalf("victim won with %d parts", result.ItemsFound)
			}
		}
	}
}

func TestPlayRoundAfterMatchOver(t *testing.T) {
	state := game.NewGameState(game.NewCampMisty())
	state.LastOutcome.Result = game.Caught
	match := &Match{State: state, Role: game.Killer}
	if _, err := match.PlayRound(context.Background()); !errors.Is(err, game.ErrMatchOver) {
		t.Fatalf("err = %v", err)
	}
}

func TestRemoteIllegalMoveIsProtocolViolation(t *testing.T) {
	localPeer, remotePeer := Pipe()
	defer localPeer.Close()
	defer remotePeer.Close()

	go func() {
		if _, err := Receive[MovePacket](remotePeer); err != nil {
			return
		}
		remotePeer.Send(MovePacket{Section: 9, SubSection: 9})
	}()

	state := game.NewGameState(game.NewCampMisty())
	state.RandomizeItems(rand.New(rand.NewSource(1)))
	match := &Match{
		State:    state,
		Role:     game.Victim,
		Local:    newBot(game.Victim, state.Map, 1),
		Opponent: NewRemoteOpponent(localPeer),
	}
	_, err := match.Run(context.Background())
	if !errors.Is(err, ErrProtocol) || !errors.Is(err, game.ErrOutOfBounds) {
		t.Fatalf("err = %v", err)
	}
	if state.Round != 0 {
		t.Fatalf("rejected round mutated the state")
	}
}

func TestClosedPeerIsTransportFailure(t *testing.T) {
	localPeer, remotePeer := Pipe()
	remotePeer.Close()
	defer localPeer.Close()

	state := game.NewGameState(game.NewCampMisty())
	state.RandomizeItems(rand.New(rand.NewSource(1)))
	match := &Match{
		State:    state,
		Role:     game.Killer,
		Local:    newBot(game.Killer, state.Map, 1),
		Opponent: NewRemoteOpponent(localPeer),
	}
	if _, err := match.Run(context.Background()); !errors.Is(err, ErrTransportFailure) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	localPeer, remotePeer := Pipe()
	defer remotePeer.Close()

	state := game.NewGameState(game.NewCampMisty())
	state.RandomizeItems(rand.New(rand.NewSource(1)))
	match := &Match{
		State:    state,
		Role:     game.Killer,
		Local:    newBot(game.Killer, state.Map, 1),
		Opponent: NewRemoteOpponent(localPeer),
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		_, err := match.Run(ctx)
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

// scriptedPlayer plays a fixed list of moves and always traps the same section.
type scriptedPlayer struct {
	moves []game.Move
	trap  int
}

func (p *scriptedPlayer) ChooseMove(context.Context, *game.GameState) (game.Move, error) {
	mv := p.moves[0]
	p.moves = p.moves[1:]
	return mv, nil
}

func (p *scriptedPlayer) ChooseTrap(context.Context, *game.GameState) (int, error) {
	return p.trap, nil
}

func TestEvadedChaseSendsTrapToKiller(t *testing.T) {
	hostPeer, joinPeer := Pipe()
	defer hostPeer.Close()
	defer joinPeer.Close()

	items := []game.Move{{Section: 0, SubSection: 4}, {Section: 1, SubSection: 4}, {Section: 2, SubSection: 4}, {Section: 3, SubSection: 4}, {Section: 4, SubSection: 4}}
	newSide := func(role game.Role, peer *Peer, player game.Player) *Match {
		state := game.NewGameState(game.NewCampMisty())
		if err := state.LoadItems(items); err != nil {
			t.Fatalf("load items: %v", err)
		}
		return &Match{State: state, Role: role, Local: player, Opponent: NewRemoteOpponent(peer)}
	}
	victim := newSide(game.Victim, hostPeer, &scriptedPlayer{
		moves: []game.Move{{Section: 2, SubSection: 0}, {Section: 2, SubSection: 2}, {Section: 0, SubSection: 0}},
		trap:  3,
	})
	killer := newSide(game.Killer, joinPeer, &scriptedPlayer{
		moves: []game.Move{{Section: 2, SubSection: 1}, {Section: 2, SubSection: 3}, {Section: 3, SubSection: 0}},
	})

	want := []game.RoundResult{game.ChaseBegins, game.Evaded, game.TrapTriggered}
	sides := []*Match{victim, killer}
	reports := make([][]RoundReport, len(sides))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var g errgroup.Group
	for i, side := range sides {
		i, side := i, side
		g.Go(func() error {
			for range want {
				report, err := side.PlayRound(ctx)
				if err != nil {
					return err
				}
				reports[i] = append(reports[i], report)
				if report.Outcome.Result == game.Evaded && !side.State.Map.Sections[3].Trapped {
					t.Errorf("%v side: section 3 not trapped after the exchange", side.Role)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("rounds: %v", err)
	}

	for i, got := range reports {
		role := sides[i].Role
		for round, result := range want {
			if got[round].Outcome.Result != result {
				t.Fatalf("%v round %d: result = %v, want %v", role, round+1, got[round].Outcome.Result, result)
			}
		}
		if section, ok := got[1].Trapped(); !ok || section != 3 {
			t.Fatalf("%v: evaded round trap = %d, %v; want 3", role, section, ok)
		}
		if _, ok := got[0].Trapped(); ok {
			t.Fatalf("%v: chase round reported a trap", role)
		}
	}
	if !reflect.DeepEqual(reports[0], reports[1]) {
		t.Fatalf("round reports differ between peers")
	}
	// the killer walked into it in round three
	if victim.State.Map.Sections[3].Trapped || killer.State.Map.Sections[3].Trapped {
		t.Fatalf("triggered trap still armed")
	}
}
