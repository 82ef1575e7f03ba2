package realtime

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// writeWait bounds a single frame write; a peer that cannot drain one
	// frame in this window is considered gone.
	writeWait = 10 * time.Second

	// pingPeriod must be shorter than the read deadline the socket handler
	// sets, so idle connections stay alive through proxies.
	pingPeriod = 30 * time.Second

	// outboundBuffer is how many frames may queue per connection before
	// backpressure closes it.
	outboundBuffer = 128
)

// ErrConnectionClosed is returned by Send once the connection is torn down.
var ErrConnectionClosed = errors.New("realtime: connection closed")

// Connection is the server side of one websocket session. All writes go
// through the outbound channel so the gorilla connection only ever sees one
// writer; reads stay with the handler that owns the socket.
type Connection struct {
	ID     string
	UserID string

	ws       *websocket.Conn
	outbound chan []byte
	done     chan struct{}
	teardown sync.Once
}

// NewConnection wraps ws for the given user under a fresh session id.
func NewConnection(userID string, ws *websocket.Conn) *Connection {
	return &Connection{
		ID:       uuid.NewString(),
		UserID:   userID,
		ws:       ws,
		outbound: make(chan []byte, outboundBuffer),
		done:     make(chan struct{}),
	}
}

// Start launches the writer goroutine. Call it once, before any Send.
func (c *Connection) Start() {
	go c.writer()
}

// Send queues payload for delivery. A full buffer means the client stopped
// reading; the connection is closed rather than blocking the caller.
func (c *Connection) Send(payload []byte) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	case c.outbound <- payload:
		return nil
	default:
		c.Close(websocket.CloseGoingAway, "send buffer full")
		return ErrConnectionClosed
	}
}

// Close sends a close frame with the given code and tears the socket down.
// Safe to call from any goroutine, any number of times.
func (c *Connection) Close(code int, reason string) {
	c.teardown.Do(func() {
		close(c.done)
		deadline := time.Now().Add(writeWait)
		_ = c.ws.SetWriteDeadline(deadline)
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = c.ws.Close()
	})
}

func (c *Connection) writer() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case payload := <-c.outbound:
			if c.write(websocket.TextMessage, payload) != nil {
				c.Close(websocket.CloseAbnormalClosure, "write failed")
				return
			}
		case <-ticker.C:
			if c.write(websocket.PingMessage, nil) != nil {
				c.Close(websocket.CloseAbnormalClosure, "ping failed")
				return
			}
		}
	}
}

func (c *Connection) write(messageType int, payload []byte) error {
	if err := c.ws.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.ws.WriteMessage(messageType, payload)
}
