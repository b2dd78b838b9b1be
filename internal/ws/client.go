// Package ws carries the websocket transport: one client per participant,
// a registry addressing clients by their ephemeral id, and the broadcast
// gateway fanning room snapshots out to room members.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to the peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound frame size in bytes.
	maxMessageSize = 4096

	// Per-client outbound queue depth before messages are dropped.
	sendBuffer = 64
)

// Client is one live participant connection. Outbound messages go through
// a buffered channel drained by WritePump so broadcasters never block on a
// slow or closed socket.
type Client struct {
	ID string

	conn *websocket.Conn
	send chan []byte
	log  zerolog.Logger

	closeOnce sync.Once
}

// NewClient wraps an upgraded connection.
func NewClient(id string, conn *websocket.Conn, log zerolog.Logger) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		log:  log.With().Str("participant", id).Logger(),
	}
}

// Enqueue queues an outbound message, dropping it if the client's queue is
// full. Delivery failure to one recipient never aborts a broadcast.
func (c *Client) Enqueue(msg []byte) {
	select {
	case c.send <- msg:
	default:
		c.log.Warn().Msg("send queue full, dropping message")
	}
}

// Close shuts the outbound queue down exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// ReadPump consumes inbound frames and hands them to the dispatcher. It
// returns when the connection drops.
func (c *Client) ReadPump(handle func(raw []byte)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Debug().Err(err).Msg("read error")
			}
			return
		}
		handle(raw)
	}
}

// WritePump drains the outbound queue onto the socket and keeps the
// connection alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
