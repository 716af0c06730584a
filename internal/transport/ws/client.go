package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/motus-games/motus/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Client is one websocket connection. All writes go through the send
// channel so a single goroutine owns the socket writer.
type Client struct {
	ID     string
	roomID string

	conn *websocket.Conn

	mtx    sync.Mutex
	send   chan protocol.Frame
	closed bool
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan protocol.Frame, sendBuffer),
	}
}

// enqueue hands a frame to the write pump. A client that cannot keep up
// gets disconnected instead of blocking the room.
func (c *Client) enqueue(frame protocol.Frame) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		c.closed = true
		close(c.send)
	}
}

func (c *Client) close() {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
