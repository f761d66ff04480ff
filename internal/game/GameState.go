package game

import (
	"fmt"
	"math/rand"
)

// GameState is the round engine. Each peer owns its own copy and mutates it
// only through Play, PlaceTrap and the item setup helpers.
type GameState struct {
	Map            *GameMap
	RemainingItems uint
	VictimWounded  bool
	LastOutcome    Outcome
	Round          int
}

func NewGameState(gameMap *GameMap) *GameState {
	return &GameState{
		Map:            gameMap,
		RemainingItems: uint(gameMap.SectionCount()),
		LastOutcome:    initialOutcome(),
	}
}

// Over reports whether the last round ended the match.
func (s *GameState) Over() bool {
	return s.LastOutcome.Result.Terminal()
}

// Chasing returns the chase section when the next round is a chase round.
func (s *GameState) Chasing() (int, bool) {
	if s.LastOutcome.Result == ChaseBegins {
		return s.LastOutcome.ChaseSection, true
	}
	return 0, false
}

func (s *GameState) Winner() (Role, bool) {
	switch s.LastOutcome.Result {
	case Caught:
		return Killer, true
	case AllPartsFound:
		return Victim, true
	default:
		return 0, false
	}
}

// CheckMove validates a move for the given role against the map bounds and
// the chase lock without touching the state.
func (s *GameState) CheckMove(role Role, mv Move) error {
	if !s.Map.InBounds(mv) {
		return fmt.Errorf("%s move %v: %w", role, mv, ErrOutOfBounds)
	}
	if section, ok := s.Chasing(); ok && mv.Section != section {
		return fmt.Errorf("%s move %v outside chase section %d: %w", role, mv, section, ErrChaseLocked)
	}
	return nil
}

// Play resolves one round. On error nothing is mutated.
func (s *GameState) Play(victim, killer Move) (Outcome, error) {
	if s.Over() {
		return Outcome{}, ErrMatchOver
	}
	if err := s.CheckMove(Victim, victim); err != nil {
		return Outcome{}, err
	}
	if err := s.CheckMove(Killer, killer); err != nil {
		return Outcome{}, err
	}

	outcome := initialOutcome()

	spot := s.Map.subSection(victim)
	if spot.HasItem {
		spot.HasItem = false
		s.RemainingItems--
		outcome.ItemFound = true
		outcome.FoundSection = victim.Section
	}

	_, chasing := s.Chasing()
	outcome.Result = resolveRound(roundFacts{
		victim:        victim,
		killer:        killer,
		allPartsFound: s.RemainingItems == 0,
		killerTrapped: s.Map.Sections[killer.Section].Trapped,
		victimWounded: s.VictimWounded,
		chasing:       chasing,
	})

	switch outcome.Result {
	case TrapTriggered:
		s.Map.Sections[killer.Section].Trapped = false
	case Wounded:
		s.VictimWounded = true
	case ChaseBegins:
		outcome.ChaseSection = victim.Section
	}

	s.LastOutcome = outcome
	s.Round++
	return outcome, nil
}

// PlaceTrap arms the given section. Trapping an already trapped section is allowed.
func (s *GameState) PlaceTrap(section int) error {
	if section < 0 || section >= s.Map.SectionCount() {
		return fmt.Errorf("trap section %d: %w", section, ErrOutOfBounds)
	}
	s.Map.Sections[section].Trapped = true
	return nil
}

// HideItem puts a part on mv. The section must not already hold one, and
// RemainingItems is recounted from the map afterwards.
func (s *GameState) HideItem(mv Move) error {
	if !s.Map.InBounds(mv) {
		return fmt.Errorf("item %v: %w", mv, ErrOutOfBounds)
	}
	for _, sub := range s.Map.Sections[mv.Section].SubSections {
		if sub.HasItem {
			return fmt.Errorf("%w: section %d already holds an item", ErrInvalidItems, mv.Section)
		}
	}
	s.Map.subSection(mv).HasItem = true
	s.RemainingItems = uint(len(s.ItemLocations()))
	return nil
}

// RandomizeItems hides exactly one item per section in a random spot.
func (s *GameState) RandomizeItems(rng *rand.Rand) {
	s.clearItems()
	for i := range s.Map.Sections {
		subs := s.Map.Sections[i].SubSections
		subs[rng.Intn(len(subs))].HasItem = true
	}
	s.RemainingItems = uint(s.Map.SectionCount())
}

// LoadItems replaces the item layout. The layout must hold exactly one item per section.
func (s *GameState) LoadItems(items []Move) error {
	if len(items) != s.Map.SectionCount() {
		return fmt.Errorf("%w: got %d items for %d sections", ErrInvalidItems, len(items), s.Map.SectionCount())
	}
	seen := make(map[int]bool, len(items))
	for _, mv := range items {
		if !s.Map.InBounds(mv) {
			return fmt.Errorf("%w: item %v is off the map", ErrInvalidItems, mv)
		}
		if seen[mv.Section] {
			return fmt.Errorf("%w: two items in section %d", ErrInvalidItems, mv.Section)
		}
		seen[mv.Section] = true
	}

	s.clearItems()
	for _, mv := range items {
		s.Map.subSection(mv).HasItem = true
	}
	s.RemainingItems = uint(len(items))
	return nil
}

// ItemLocations lists the spots still holding an item, ordered by section.
func (s *GameState) ItemLocations() []Move {
	var items []Move
	for _, mv := range s.Map.Locations() {
		if s.Map.subSection(mv).HasItem {
			items = append(items, mv)
		}
	}
	return items
}

func (s *GameState) clearItems() {
	for i := range s.Map.Sections {
		for j := range s.Map.Sections[i].SubSections {
			s.Map.Sections[i].SubSections[j].HasItem = false
		}
	}
}
