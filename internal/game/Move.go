package game

import "fmt"

// Move targets one spot of the map by index.
type Move struct {
	Section    int
	SubSection int
}

func (mv Move) String() string {
	return fmt.Sprintf("(%d, %d)", mv.Section, mv.SubSection)
}

type Role int

const (
	Killer Role = iota
	Victim
)

func (r Role) Opposite() Role {
	if r == Killer {
		return Victim
	}
	return Killer
}

func (r Role) String() string {
	switch r {
	case Killer:
		return "Killer"
	case Victim:
		return "Victim"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

func (r Role) MarshalText() ([]byte, error) {
	if r != Killer && r != Victim {
		return nil, fmt.Errorf("unknown role %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Killer":
		*r = Killer
	case "Victim":
		*r = Victim
	default:
		return fmt.Errorf("unknown role %q", text)
	}
	return nil
}
