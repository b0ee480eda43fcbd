package relay

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = int64(8 * 1024)
)

// Conn wraps one websocket connection. userID stays zero until the client
// sends identify.
type Conn struct {
	id   uuid.UUID
	sock *websocket.Conn
	send chan Event
	hub  *Hub

	// mu guards userID and the closed flag. Send and close race across
	// goroutines: broadcasts enqueue from many callers while unregister
	// closes, so the channel close must never outrun an in-flight send.
	mu     sync.Mutex
	userID uuid.UUID
	closed bool
}

func newConn(sock *websocket.Conn, hub *Hub) *Conn {
	return &Conn{
		id:   uuid.New(),
		sock: sock,
		send: make(chan Event, 64),
		hub:  hub,
	}
}

func (c *Conn) ID() uuid.UUID { return c.id }

func (c *Conn) UserID() uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

func (c *Conn) setUserID(id uuid.UUID) {
	c.mu.Lock()
	c.userID = id
	c.mu.Unlock()
}

// Send queues an event without blocking. Returns false when the connection is
// closed or the buffer is full; the caller treats that connection as gone or
// too slow and moves on.
func (c *Conn) Send(ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- ev:
		return true
	default:
		return false
	}
}

// close makes further Sends no-ops and lets WritePump drain and exit.
// Idempotent.
func (c *Conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Conn) ReadPump() {
	defer func() {
		c.hub.unregister(c)
		c.sock.Close()
	}()

	c.sock.SetReadLimit(maxMessageSize)
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		c.sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var ev Event
		if err := c.sock.ReadJSON(&ev); err != nil {
			return
		}
		c.hub.dispatch(c, ev)
	}
}

func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	for {
		select {
		case ev, ok := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.sock.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.sock.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
