package game

import "unicode"

// SubSection is a single searchable spot inside a Section.
type SubSection struct {
	Name    string
	Letter  rune
	HasItem bool
}

// Section is a top level location of the map. The victim may trap it.
type Section struct {
	Name        string
	Letter      rune
	SubSections []SubSection
	Trapped     bool
}

func NewSubSection(name string, letter rune) (SubSection, error) {
	if err := validateLetter(letter); err != nil {
		return SubSection{}, err
	}
	return SubSection{Name: name, Letter: letter}, nil
}

// NewSection validates the section letter and that every spot letter is
// unique inside the section.
func NewSection(name string, letter rune, subSections []SubSection) (Section, error) {
	section := Section{Name: name, Letter: letter, SubSections: subSections}
	if err := validateSection(section); err != nil {
		return Section{}, err
	}

	// copy so the caller can't reshape the section afterwards
	section.SubSections = make([]SubSection, len(subSections))
	copy(section.SubSections, subSections)
	return section, nil
}

func validateSection(section Section) error {
	if err := validateLetter(section.Letter); err != nil {
		return err
	}
	if len(section.SubSections) == 0 {
		return mapError("section %q has no spots", section.Name)
	}

	seen := make(map[rune]bool, len(section.SubSections))
	for _, sub := range section.SubSections {
		if err := validateLetter(sub.Letter); err != nil {
			return err
		}
		if seen[sub.Letter] {
			return mapError("duplicate spot letter %q in section %q", sub.Letter, section.Name)
		}
		seen[sub.Letter] = true
	}
	return nil
}

func validateLetter(letter rune) error {
	if !unicode.IsLetter(letter) || !unicode.IsUpper(letter) {
		return mapError("letter %q must be an uppercase letter", letter)
	}
	return nil
}

func sameLetter(a, b rune) bool {
	return unicode.ToUpper(a) == unicode.ToUpper(b)
}
