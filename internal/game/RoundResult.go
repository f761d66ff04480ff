package game

import "fmt"

// RoundResult is the resolved state of the match after a round. It is also
// the state the next round starts from.
type RoundResult int

const (
	Nothing RoundResult = iota
	ChaseBegins
	Evaded
	Wounded
	TrapTriggered
	Caught        // killer wins
	AllPartsFound // victim wins
)

func (r RoundResult) String() string {
	switch r {
	case Nothing:
		return "Nothing"
	case ChaseBegins:
		return "ChaseBegins"
	case Evaded:
		return "Evaded"
	case Wounded:
		return "Wounded"
	case TrapTriggered:
		return "TrapTriggered"
	case Caught:
		return "Caught"
	case AllPartsFound:
		return "AllPartsFound"
	default:
		return fmt.Sprintf("RoundResult(%d)", int(r))
	}
}

func (r RoundResult) Terminal() bool {
	return r == Caught || r == AllPartsFound
}

// Outcome is what a round produced. ChaseSection is only meaningful for
// ChaseBegins; FoundSection is only meaningful when ItemFound is set.
type Outcome struct {
	Result       RoundResult
	ChaseSection int
	FoundSection int
	ItemFound    bool
}

func (o Outcome) String() string {
	s := o.Result.String()
	if o.Result == ChaseBegins {
		s += fmt.Sprintf("(%d)", o.ChaseSection)
	}
	if o.ItemFound {
		s += fmt.Sprintf(" item@%d", o.FoundSection)
	}
	return s
}

func initialOutcome() Outcome {
	return Outcome{Result: Nothing, ChaseSection: noSection, FoundSection: noSection}
}
