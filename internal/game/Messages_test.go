package game

import (
	"strings"
	"testing"
)

func TestRoundMessageNamesTheChaseSection(t *testing.T) {
	state := newTestState(t)
	mustPlay(t, state, Move{1, 0}, Move{1, 2})

	for _, role := range []Role{Killer, Victim} {
		msg := RoundMessage(role, state)
		if !strings.Contains(msg, "Lake") {
			t.Fatalf("%v message does not name the section: %q", role, msg)
		}
	}
}

func TestRoundMessageReportsParts(t *testing.T) {
	state := newTestState(t)
	mustPlay(t, state, Move{2, 1}, Move{0, 0})

	if msg := RoundMessage(Victim, state); !strings.Contains(msg, "found a car part") {
		t.Fatalf("victim message = %q", msg)
	}
	if msg := RoundMessage(Killer, state); !strings.Contains(msg, state.Map.Sections[2].Name) {
		t.Fatalf("killer message = %q", msg)
	}
}

func TestFinalMessage(t *testing.T) {
	if !strings.Contains(FinalMessage(Killer, Caught), "You win") {
		t.Fatalf("killer should win on Caught")
	}
	if !strings.Contains(FinalMessage(Victim, Caught), "You lose") {
		t.Fatalf("victim should lose on Caught")
	}
	if !strings.Contains(FinalMessage(Victim, AllPartsFound), "You win") {
		t.Fatalf("victim should win on AllPartsFound")
	}
	if !strings.Contains(FinalMessage(Killer, AllPartsFound), "You lose") {
		t.Fatalf("killer should lose on AllPartsFound")
	}
	if FinalMessage(Killer, Evaded) != "" {
		t.Fatalf("non-terminal results have no final message")
	}
}
