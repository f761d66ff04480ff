package game

const (
	// CampMistySectionCount and CampMistySubSectionCount describe the shape of the default map.
	CampMistySectionCount    = 5
	CampMistySubSectionCount = 5

	// maxMoveAttempts bounds how often a local move source is asked again after an illegal move.
	maxMoveAttempts = 5

	// noSection marks an absent section index in an Outcome.
	noSection = -1
)
