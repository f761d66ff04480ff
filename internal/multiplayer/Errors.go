package multiplayer

import (
	"errors"
	"fmt"
)

var (
	// ErrTransportFailure matches every *TransportError.
	ErrTransportFailure = errors.New("transport failure")
	ErrMalformedPacket  = errors.New("malformed packet")
	// ErrProtocol means the other side sent something the engine refused,
	// so the two mirrored states can no longer be trusted.
	ErrProtocol = errors.New("protocol violation")
)

// TransportError is a failed read, write or decode on the connection to the
// other player. The match cannot continue after one.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransportFailure, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailure
}

func transportError(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Err: err}
}
