package game

import (
	"context"
	"math/rand"
)

// KillerAI hunts at random, skipping sections where a car part was already
// found since the victim has no reason to go back there.
type KillerAI struct {
	rng      *rand.Rand
	sections []int
}

func NewKillerAI(gameMap *GameMap, rng *rand.Rand) *KillerAI {
	sections := make([]int, gameMap.SectionCount())
	for i := range sections {
		sections[i] = i
	}
	return &KillerAI{rng: rng, sections: sections}
}

func (k *KillerAI) ChooseMove(_ context.Context, state *GameState) (Move, error) {
	last := state.LastOutcome
	if last.ItemFound {
		k.forget(last.FoundSection)
	}

	if section, ok := state.Chasing(); ok {
		return Move{Section: section, SubSection: k.rng.Intn(state.Map.SubSectionCount(section))}, nil
	}

	section := k.rng.Intn(state.Map.SectionCount())
	if len(k.sections) > 0 {
		section = k.sections[k.rng.Intn(len(k.sections))]
	}
	return Move{Section: section, SubSection: k.rng.Intn(state.Map.SubSectionCount(section))}, nil
}

func (k *KillerAI) forget(section int) {
	for i, s := range k.sections {
		if s == section {
			k.sections = append(k.sections[:i], k.sections[i+1:]...)
			return
		}
	}
}
