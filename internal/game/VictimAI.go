package game

import (
	"context"
	"math/rand"
)

// VictimAI searches every spot at most once in random order and drops a
// whole section from its plan as soon as it finds that section's part.
type VictimAI struct {
	rng       *rand.Rand
	unvisited []Move
}

func NewVictimAI(gameMap *GameMap, rng *rand.Rand) *VictimAI {
	return &VictimAI{rng: rng, unvisited: gameMap.Locations()}
}

func (v *VictimAI) ChooseMove(_ context.Context, state *GameState) (Move, error) {
	last := state.LastOutcome
	if last.ItemFound {
		v.dropSection(last.FoundSection)
	}

	if section, ok := state.Chasing(); ok {
		var candidates []Move
		for _, mv := range v.unvisited {
			if mv.Section == section {
				candidates = append(candidates, mv)
			}
		}
		if len(candidates) == 0 {
			// everything here was searched already, just hide somewhere
			return Move{Section: section, SubSection: v.rng.Intn(state.Map.SubSectionCount(section))}, nil
		}
		mv := candidates[v.rng.Intn(len(candidates))]
		v.visit(mv)
		return mv, nil
	}

	if len(v.unvisited) == 0 {
		locations := state.Map.Locations()
		return locations[v.rng.Intn(len(locations))], nil
	}
	mv := v.unvisited[v.rng.Intn(len(v.unvisited))]
	v.visit(mv)
	return mv, nil
}

// ChooseTrap prefers an untrapped section that still hides a part, since
// that is where the killer is likely to come looking.
func (v *VictimAI) ChooseTrap(_ context.Context, state *GameState) (int, error) {
	var withParts, untrapped []int
	for i, section := range state.Map.Sections {
		if section.Trapped {
			continue
		}
		untrapped = append(untrapped, i)
		for _, sub := range section.SubSections {
			if sub.HasItem {
				withParts = append(withParts, i)
				break
			}
		}
	}

	switch {
	case len(withParts) > 0:
		return withParts[v.rng.Intn(len(withParts))], nil
	case len(untrapped) > 0:
		return untrapped[v.rng.Intn(len(untrapped))], nil
	default:
		return v.rng.Intn(state.Map.SectionCount()), nil
	}
}

func (v *VictimAI) visit(mv Move) {
	for i, candidate := range v.unvisited {
		if candidate == mv {
			v.unvisited = append(v.unvisited[:i], v.unvisited[i+1:]...)
			return
		}
	}
}

func (v *VictimAI) dropSection(section int) {
	kept := v.unvisited[:0]
	for _, mv := range v.unvisited {
		if mv.Section != section {
			kept = append(kept, mv)
		}
	}
	v.unvisited = kept
}
