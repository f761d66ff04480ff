package game

// roundFacts are the inputs the outcome rules look at, gathered after the
// victim's search has been applied.
type roundFacts struct {
	victim, killer Move
	allPartsFound  bool
	killerTrapped  bool
	victimWounded  bool
	chasing        bool
}

func (f roundFacts) sameSpot() bool {
	return f.victim == f.killer
}

func (f roundFacts) sameSection() bool {
	return f.victim.Section == f.killer.Section
}

type roundRule struct {
	name    string
	applies func(roundFacts) bool
	result  RoundResult
}

// roundRules are evaluated top to bottom and the first match decides the
// round. Anything unmatched is Nothing.
var roundRules = []roundRule{
	{
		// overrides win precedence: a wounded victim standing on the killer
		// is caught even on the search that finds the last part
		name:    "caught on final item",
		applies: func(f roundFacts) bool { return f.allPartsFound && f.sameSpot() && f.victimWounded },
		result:  Caught,
	},
	{
		name:    "all parts found",
		applies: func(f roundFacts) bool { return f.allPartsFound },
		result:  AllPartsFound,
	},
	{
		name:    "trap triggered",
		applies: func(f roundFacts) bool { return f.killerTrapped },
		result:  TrapTriggered,
	},
	{
		name:    "caught",
		applies: func(f roundFacts) bool { return f.sameSpot() && f.victimWounded },
		result:  Caught,
	},
	{
		name:    "wounded",
		applies: func(f roundFacts) bool { return f.sameSpot() },
		result:  Wounded,
	},
	{
		name:    "evaded",
		applies: func(f roundFacts) bool { return f.chasing },
		result:  Evaded,
	},
	{
		name:    "chase begins",
		applies: func(f roundFacts) bool { return f.sameSection() },
		result:  ChaseBegins,
	},
}

func resolveRound(f roundFacts) RoundResult {
	for _, rule := range roundRules {
		if rule.applies(f) {
			return rule.result
		}
	}
	return Nothing
}
