package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 64
)

// Connection wraps a WebSocket connection with buffered writes and a read
// loop that dispatches inbound messages to a handler.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded WebSocket connection
func NewConnection(ctx context.Context, conn *websocket.Conn, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(ctx)
	return &Connection{
		conn:   conn,
		send:   make(chan *Message, sendBufferSize),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins the write pump and reads messages until the connection
// drops, passing each to handle
func (c *Connection) Start(handle func(*Message)) {
	go c.writePump()

	go func() {
		defer c.Close()
		for {
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					c.logger.Debug("read failed", "error", err)
				}
				return
			}

			var msg Message
			if err := json.Unmarshal(data, &msg); err != nil {
				c.logger.Warn("discarding unparseable message", "error", err)
				continue
			}
			handle(&msg)
		}
	}()
}

func (c *Connection) writePump() {
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Debug("write failed", "error", err)
				c.Close()
				return
			}
		case <-c.ctx.Done():
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

// Send queues a message for delivery. It fails rather than blocks when the
// client cannot keep up.
func (c *Connection) Send(msg *Message) error {
	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return fmt.Errorf("connection closed")
	default:
		return fmt.Errorf("send buffer full")
	}
}

// Done returns a channel closed when the connection is finished
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close tears the connection down once
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.conn.Close()
	})
}
