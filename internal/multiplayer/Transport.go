package multiplayer

import (
	"context"
	"fmt"
	"net"

	"github.com/charmbracelet/log"
)

// DefaultAddr is where a host listens when no address is configured.
const DefaultAddr = "127.0.0.1:7878"

// Listen waits on addr for a single joiner and stops listening once it
// connects.
func Listen(ctx context.Context, addr string) (*Peer, error) {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, transportError("listen", err)
	}
	defer listener.Close()
	log.Info("Waiting for a player to join", "addr", listener.Addr().String())
	return Accept(ctx, listener)
}

// Accept takes the next connection from listener. Cancelling ctx closes the
// listener.
func Accept(ctx context.Context, listener net.Listener) (*Peer, error) {
	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	conn, err := listener.Accept()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, transportError("accept", err)
	}
	log.Info("Player joined", "remote", conn.RemoteAddr().String())
	return NewPeer(conn), nil
}

func Dial(ctx context.Context, addr string) (*Peer, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, transportError("dial", fmt.Errorf("%s: %w", addr, err))
	}
	log.Info("Joined host", "addr", addr)
	return NewPeer(conn), nil
}

// Pipe returns two connected in-memory peers.
func Pipe() (*Peer, *Peer) {
	a, b := net.Pipe()
	return NewPeer(a), NewPeer(b)
}
