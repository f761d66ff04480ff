package game

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMap is returned when a map is built from malformed sections or spots.
	ErrInvalidMap = errors.New("invalid map")

	// ErrOutOfBounds is returned for any move the engine refuses to resolve.
	ErrOutOfBounds = errors.New("move out of bounds")

	// ErrChaseLocked is a refinement of ErrOutOfBounds: during a chase both
	// players must stay in the chase section.
	ErrChaseLocked = fmt.Errorf("%w: chase confines moves to one section", ErrOutOfBounds)

	// ErrMatchOver is returned when a round is played after a terminal outcome.
	ErrMatchOver = errors.New("match is already over")

	// ErrInvalidItems is returned when an item layout does not hold exactly one item per section.
	ErrInvalidItems = errors.New("invalid item layout")
)

func mapError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMap, fmt.Sprintf(format, args...))
}
