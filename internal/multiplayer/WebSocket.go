package multiplayer

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
)

// PlayPath is the route a WebSocket joiner connects to.
const PlayPath = "/play"

// wsConn carries the packet byte stream over binary WebSocket messages. A
// frame may span messages on read.
type wsConn struct {
	conn    *websocket.Conn
	reader  io.Reader
	writeMu sync.Mutex
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

func (c *wsConn) Read(p []byte) (int, error) {
	for {
		if c.reader == nil {
			messageType, r, err := c.conn.NextReader()
			if err != nil {
				return 0, err
			}
			if messageType != websocket.BinaryMessage {
				continue
			}
			c.reader = r
		}
		n, err := c.reader.Read(p)
		if errors.Is(err, io.EOF) {
			c.reader = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (c *wsConn) Write(p []byte) (int, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// WebSocketHandler upgrades every request on PlayPath and hands the peer to
// accept. The peer belongs to accept from then on.
func WebSocketHandler(accept func(peer *Peer)) http.HandlerFunc {
	upgrader := &websocket.Upgrader{}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already wrote the HTTP error
			log.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "err", err)
			return
		}
		log.Info("WebSocket player connected", "remote", r.RemoteAddr)
		accept(NewPeer(newWSConn(conn)))
	}
}

func NewRouter(accept func(peer *Peer)) *way.Router {
	router := way.NewRouter()
	router.HandleFunc(http.MethodGet, PlayPath, WebSocketHandler(accept))
	return router
}

// ListenWebSocket serves PlayPath on addr until the first joiner connects.
func ListenWebSocket(ctx context.Context, addr string) (*Peer, error) {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, transportError("listen", err)
	}

	peers := make(chan *Peer, 1)
	server := &http.Server{Handler: NewRouter(func(peer *Peer) {
		select {
		case peers <- peer:
		default:
			log.Warn("Match already has a joiner, dropping connection")
			peer.Close()
		}
	})}
	defer server.Close()

	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(listener) }()
	log.Info("Waiting for a WebSocket player to join", "addr", listener.Addr().String(), "path", PlayPath)

	select {
	case peer := <-peers:
		return peer, nil
	case err := <-serveErr:
		return nil, transportError("serve", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DialWebSocket joins a host at url, for example ws://127.0.0.1:7878/play.
func DialWebSocket(ctx context.Context, url string) (*Peer, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, transportError("dial", err)
	}
	log.Info("Joined WebSocket host", "url", url)
	return NewPeer(newWSConn(conn)), nil
}
