package multiplayer

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Mshel/campmisty/internal/game"
)

const (
	lengthPrefixSize = 4
	// MaxPacketSize bounds the JSON payload of a single frame.
	MaxPacketSize = 64 * 1024
)

// PlayerTypePacket is the host's own role, sent first. It travels as the
// JSON string "Killer" or "Victim".
type PlayerTypePacket = game.Role

// MovePacket is one move, sent as a two element array [section, spot].
type MovePacket struct {
	Section    uint32
	SubSection uint32
}

func NewMovePacket(mv game.Move) MovePacket {
	return MovePacket{Section: uint32(mv.Section), SubSection: uint32(mv.SubSection)}
}

func (p MovePacket) Move() game.Move {
	return game.Move{Section: int(p.Section), SubSection: int(p.SubSection)}
}

func (p MovePacket) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]uint32{p.Section, p.SubSection})
}

func (p *MovePacket) UnmarshalJSON(b []byte) error {
	var pair []uint32
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("move has %d coordinates, want 2", len(pair))
	}
	p.Section, p.SubSection = pair[0], pair[1]
	return nil
}

// MapStatePacket tells the joiner where the host hid the car parts.
type MapStatePacket struct {
	HiddenParts []MovePacket `json:"hidden_parts"`
}

func NewMapStatePacket(state *game.GameState) MapStatePacket {
	locations := state.ItemLocations()
	packet := MapStatePacket{HiddenParts: make([]MovePacket, 0, len(locations))}
	for _, mv := range locations {
		packet.HiddenParts = append(packet.HiddenParts, NewMovePacket(mv))
	}
	return packet
}

func (p MapStatePacket) Moves() []game.Move {
	moves := make([]game.Move, 0, len(p.HiddenParts))
	for _, part := range p.HiddenParts {
		moves = append(moves, part.Move())
	}
	return moves
}

// TrapPacket is the index of the section the victim trapped.
type TrapPacket uint32

// WritePacket writes packet as one frame: a little endian uint32 length
// followed by the JSON encoding.
func WritePacket(w io.Writer, packet any) error {
	payload, err := json.Marshal(packet)
	if err != nil {
		return transportError("encode", fmt.Errorf("%w: %v", ErrMalformedPacket, err))
	}
	if len(payload) > MaxPacketSize {
		return transportError("encode", fmt.Errorf("%w: %d byte payload exceeds %d", ErrMalformedPacket, len(payload), MaxPacketSize))
	}

	frame := make([]byte, lengthPrefixSize+len(payload))
	binary.LittleEndian.PutUint32(frame, uint32(len(payload)))
	copy(frame[lengthPrefixSize:], payload)
	if _, err := w.Write(frame); err != nil {
		return transportError("write", err)
	}
	return nil
}

// ReadPacket reads one frame and decodes its payload into T.
func ReadPacket[T any](r io.Reader) (T, error) {
	var out T

	var header [lengthPrefixSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return out, transportError("read", err)
	}
	size := binary.LittleEndian.Uint32(header[:])
	if size > MaxPacketSize {
		return out, transportError("read", fmt.Errorf("%w: %d byte payload exceeds %d", ErrMalformedPacket, size, MaxPacketSize))
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return out, transportError("read", err)
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return out, transportError("decode", fmt.Errorf("%w: %v", ErrMalformedPacket, err))
	}
	return out, nil
}
