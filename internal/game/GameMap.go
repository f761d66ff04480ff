package game

// GameMap is the fixed shape board: an ordered list of sections, each with a
// fixed number of spots. Only the item and trap flags change after construction.
type GameMap struct {
	Sections []Section
}

func NewGameMap(sections []Section) (*GameMap, error) {
	if len(sections) == 0 {
		return nil, mapError("map has no sections")
	}

	seen := make(map[rune]bool, len(sections))
	for _, section := range sections {
		if err := validateSection(section); err != nil {
			return nil, err
		}
		if seen[section.Letter] {
			return nil, mapError("duplicate section letter %q", section.Letter)
		}
		seen[section.Letter] = true
	}

	copied := make([]Section, len(sections))
	for i, section := range sections {
		copied[i] = section
		copied[i].SubSections = append([]SubSection(nil), section.SubSections...)
	}

	return &GameMap{Sections: copied}, nil
}

// NewCampMisty builds the default five by five map.
func NewCampMisty() *GameMap {
	type spot struct {
		name   string
		letter rune
	}
	layout := []struct {
		name   string
		letter rune
		spots  []spot
	}{
		{"(C)abin", 'C', []spot{{"(B)edroom", 'B'}, {"(K)itchen", 'K'}, {"(T)oilet", 'T'}, {"(C)loset", 'C'}, {"(A)ttic", 'A'}}},
		{"(L)ake Misty", 'L', []spot{{"(D)ock", 'D'}, {"(B)oat", 'B'}, {"(E)ast shore", 'E'}, {"(W)est shore", 'W'}, {"(S)outh shore", 'S'}}},
		{"(A)bandoned manor", 'A', []spot{{"(M)aster bedroom", 'M'}, {"(D)ining hall", 'D'}, {"(B)asement", 'B'}, {"(K)itchen", 'K'}, {"(F)oyer", 'F'}}},
		{"(B)onfire", 'B', []spot{{"(S)hrubs", 'S'}, {"(C)ouch", 'C'}, {"(L)ogs", 'L'}, {"(T)rees", 'T'}, {"(B)lankets", 'B'}}},
		{"(O)ld forest", 'O', []spot{{"(P)ond", 'P'}, {"(C)ave", 'C'}, {"(S)hrine", 'S'}, {"(F)airy circle", 'F'}, {"(H)ollow log", 'H'}}},
	}

	sections := make([]Section, 0, len(layout))
	for _, l := range layout {
		subs := make([]SubSection, 0, len(l.spots))
		for _, s := range l.spots {
			sub, err := NewSubSection(s.name, s.letter)
			if err != nil {
				panic(err)
			}
			subs = append(subs, sub)
		}
		section, err := NewSection(l.name, l.letter, subs)
		if err != nil {
			panic(err)
		}
		sections = append(sections, section)
	}

	gameMap, err := NewGameMap(sections)
	if err != nil {
		panic(err)
	}
	return gameMap
}

func (m *GameMap) SectionCount() int {
	return len(m.Sections)
}

func (m *GameMap) SubSectionCount(section int) int {
	if section < 0 || section >= len(m.Sections) {
		return 0
	}
	return len(m.Sections[section].SubSections)
}

// InBounds reports whether both indices of mv address an existing spot.
func (m *GameMap) InBounds(mv Move) bool {
	if mv.Section < 0 || mv.Section >= len(m.Sections) {
		return false
	}
	return mv.SubSection >= 0 && mv.SubSection < len(m.Sections[mv.Section].SubSections)
}

// SectionByLetter returns the index of the section identified by letter.
func (m *GameMap) SectionByLetter(letter rune) (int, bool) {
	for i, section := range m.Sections {
		if sameLetter(section.Letter, letter) {
			return i, true
		}
	}
	return 0, false
}

// SubSectionByLetter returns the index of the spot identified by letter
// inside the given section.
func (m *GameMap) SubSectionByLetter(section int, letter rune) (int, bool) {
	if section < 0 || section >= len(m.Sections) {
		return 0, false
	}
	for i, sub := range m.Sections[section].SubSections {
		if sameLetter(sub.Letter, letter) {
			return i, true
		}
	}
	return 0, false
}

func (m *GameMap) LocationByLetters(sectionLetter, subSectionLetter rune) (Move, bool) {
	section, ok := m.SectionByLetter(sectionLetter)
	if !ok {
		return Move{}, false
	}
	sub, ok := m.SubSectionByLetter(section, subSectionLetter)
	if !ok {
		return Move{}, false
	}
	return Move{Section: section, SubSection: sub}, true
}

// Locations lists every spot of the map, ordered by section.
func (m *GameMap) Locations() []Move {
	var result []Move
	for i, section := range m.Sections {
		for j := range section.SubSections {
			result = append(result, Move{Section: i, SubSection: j})
		}
	}
	return result
}

func (m *GameMap) subSection(mv Move) *SubSection {
	return &m.Sections[mv.Section].SubSections[mv.SubSection]
}
