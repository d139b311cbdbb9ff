package stream

import (
	"context"
	"net"
	"net/http"

	"github.com/coder/websocket"
)

// Listener adapts accepted websocket connections into a net.Listener, so
// the serve loop can treat browser viewers and plain TCP viewers alike.
type Listener struct {
	ch     chan *websocket.Conn
	ctx    context.Context
	cancel context.CancelFunc
	addr   wsAddr
}

// NewListener returns a listener fed by Handler. addr is informational only.
func NewListener(ctx context.Context, addr string) *Listener {
	ctx, cancel := context.WithCancel(ctx)
	return &Listener{
		ch:     make(chan *websocket.Conn),
		ctx:    ctx,
		cancel: cancel,
		addr:   wsAddr{addr: addr},
	}
}

// Handler upgrades HTTP requests to websocket connections and hands them to
// Accept.
func (l *Listener) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			return
		}
		select {
		case l.ch <- c:
		case <-l.ctx.Done():
			c.Close(websocket.StatusGoingAway, "listener closed")
		}
	}
}

// Accept blocks until Handler delivers a connection or the listener is
// closed.
func (l *Listener) Accept() (net.Conn, error) {
	select {
	case c := <-l.ch:
		return websocket.NetConn(l.ctx, c, websocket.MessageBinary), nil
	case <-l.ctx.Done():
		return nil, context.Cause(l.ctx)
	}
}

func (l *Listener) Addr() net.Addr {
	return l.addr
}

func (l *Listener) Close() error {
	l.cancel()
	return nil
}

// wsAddr implements net.Addr
type wsAddr struct {
	addr string
}

func (a wsAddr) Network() string {
	return "ws"
}

func (a wsAddr) String() string {
	return a.addr
}
