package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to read the next pong message from the peer
	defaultPongWait = 60 * time.Second

	sendBuffer    = 64
	requestBuffer = 16
)

// ErrConnectionClosed is returned when sending on a closed connection.
var ErrConnectionClosed = errors.New("connection closed")

// Connection is one websocket client.
type Connection struct {
	conn      *websocket.Conn
	server    *Server
	send      chan *Response
	requests  chan job
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded websocket.
func NewConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:     conn,
		server:   server,
		send:     make(chan *Response, sendBuffer),
		requests: make(chan job, requestBuffer),
		logger:   server.logger.WithPrefix("conn").With("remote", conn.RemoteAddr().String()),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// job is one queued request, or a response already decided by the reader.
type job struct {
	req  *Request
	resp *Response
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.processLoop()
	go c.readPump()
}

// Done is closed once the connection has shut down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// Send queues a response for the client.
func (c *Connection) Send(resp *Response) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- resp:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

// readPump reads messages from the client and queues them for
// processLoop, so pongs keep being read while a simulation runs.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	pongWait := c.server.config.PongWait
	c.conn.SetReadLimit(c.server.config.ReadLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			return
		}

		var j job
		req := new(Request)
		if err := json.Unmarshal(data, req); err != nil {
			c.logger.Debug("Invalid message", "error", err)
			j.resp = errorResponse("", CodeInvalidMessage, "Failed to parse request")
		} else {
			j.req = req
		}

		select {
		case c.requests <- j:
		case <-c.ctx.Done():
			return
		}
	}
}

// processLoop answers queued requests one at a time, in arrival order.
func (c *Connection) processLoop() {
	for {
		select {
		case j := <-c.requests:
			resp := j.resp
			if resp == nil {
				resp = c.server.handle(c.ctx, j.req)
			}
			if err := c.Send(resp); err != nil {
				return
			}
		case <-c.ctx.Done():
			return
		}
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	// Pings must arrive well inside the peer's pong deadline.
	ticker := time.NewTicker(c.server.config.PongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		_ = c.Close() // Ignore close errors during cleanup
	}()

	writeWait := c.server.config.WriteTimeout
	for {
		select {
		case resp := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(resp); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}
