package game

import "strings"

// RoundMessage is the flavour text shown to a player of the given role
// before they choose their next move.
func RoundMessage(role Role, state *GameState) string {
	var lines []string
	last := state.LastOutcome

	if last.ItemFound {
		if role == Victim {
			lines = append(lines, "Nice! You found a car part!")
		} else {
			lines = append(lines, "Oh no! The victim found a car part in the "+state.Map.Sections[last.FoundSection].Name+"!")
		}
	}

	switch last.Result {
	case ChaseBegins:
		name := state.Map.Sections[last.ChaseSection].Name
		if role == Victim {
			lines = append(lines,
				"Oh no! The killer is in the "+name+" with you! They're right behind you!",
				"Where would you like to hide?")
		} else {
			lines = append(lines,
				"Muahaha! You have the victim in your sights! Where in the "+name+" would you like to search for them?")
		}
		return strings.Join(lines, "\n")

	case Evaded:
		if role == Victim {
			lines = append(lines, "What a relief! You evaded the killer!")
		} else {
			lines = append(lines, "No, no, no! The victim got away!")
		}

	case TrapTriggered:
		if role == Victim {
			lines = append(lines, "Ha, ha, ha! You hear the killer fall into your trap!", "You were safe that round.")
		} else {
			lines = append(lines, "Oh no! You stepped right into the victim's trap! You spent the round getting yourself out.")
		}

	case Wounded:
		if role == Victim {
			lines = append(lines,
				"Oh no! You ran right into the killer and they cut you across",
				"the back as you tried to get away!",
				"You have a nasty wound. If they catch you again, you won't survive...")
		} else {
			lines = append(lines,
				"Muahaha! You found the victim and were able to get a good swing in.",
				"They are wounded. If you find them again, you win...")
		}

	case Caught, AllPartsFound:
		return FinalMessage(role, last.Result)

	default:
		if role == Victim {
			lines = append(lines, "You carefully navigate the grounds of Camp Misty, searching for car parts...")
		} else {
			lines = append(lines, "Patiently, you stalk the grounds of Camp Misty for your victim...")
		}
	}

	lines = append(lines, "Now, which location would you like to check?")
	return strings.Join(lines, "\n")
}

// FinalMessage is the verdict for a terminal result as seen by role. Both
// peers derive it on their own, no packet carries it.
func FinalMessage(role Role, result RoundResult) string {
	switch {
	case result == Caught && role == Killer:
		return "Yes! You caught the victim, sinking your blade deep into their back... You win!"
	case result == Caught:
		return "The killer caught you... You lose!"
	case result == AllPartsFound && role == Victim:
		return "You found all the car parts and were able to escape! You win!"
	case result == AllPartsFound:
		return "Oh no! The victim found all the car parts and was able to escape! You lose!"
	default:
		return ""
	}
}
