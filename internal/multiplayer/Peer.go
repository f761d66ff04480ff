package multiplayer

import (
	"context"
	"io"
	"sync"
)

// Peer is the packet level view of a connection to the other player. Any
// io.ReadWriteCloser works: a TCP conn, one end of net.Pipe, a WebSocket.
type Peer struct {
	conn      io.ReadWriteCloser
	closeOnce sync.Once
	closeErr  error
}

func NewPeer(conn io.ReadWriteCloser) *Peer {
	return &Peer{conn: conn}
}

func (p *Peer) Send(packet any) error {
	return WritePacket(p.conn, packet)
}

// Receive blocks for the next packet from p and decodes it as T.
func Receive[T any](p *Peer) (T, error) {
	return ReadPacket[T](p.conn)
}

func (p *Peer) Close() error {
	p.closeOnce.Do(func() {
		p.closeErr = p.conn.Close()
	})
	return p.closeErr
}

// closeOnDone closes the connection if ctx ends before stop is called, which
// unblocks any pending Send or Receive.
func (p *Peer) closeOnDone(ctx context.Context) (stop func() bool) {
	return context.AfterFunc(ctx, func() { p.Close() })
}
