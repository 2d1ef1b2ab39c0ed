// Package notify implements the optional WebSocket notification channel.
// The server exposes /ws but nothing in the product depends on it yet, so
// the channel stays behind a disabled-by-default feature flag: when off it
// is fully inert. When on, inbound JSON messages are logged and handed to
// an optional callback, and JSON payloads can be sent out.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler receives each decoded inbound message.
type Handler func(message map[string]interface{})

// Channel is one WebSocket connection to the server's /ws endpoint.
type Channel struct {
	url    string
	logger *zap.Logger

	mu   sync.Mutex
	conn *websocket.Conn
	done chan struct{}
}

// URLFromBase derives the ws(s):// endpoint from the API base URL.
func URLFromBase(baseURL string) string {
	url := strings.TrimRight(baseURL, "/")
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}
	return url + "/ws"
}

// New creates a channel for the given API base URL. Nothing connects until
// Connect is called.
func New(baseURL string, logger *zap.Logger) *Channel {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Channel{url: URLFromBase(baseURL), logger: logger}
}

// Connect dials the endpoint, optionally with a bearer token, and starts
// the read loop. Each inbound JSON message is logged and passed to handler
// when non-nil.
func (c *Channel) Connect(ctx context.Context, token string, handler Handler) error {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.url, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.done = make(chan struct{})
	c.mu.Unlock()

	c.logger.Info("websocket connected", zap.String("url", c.url))
	go c.readLoop(conn, handler)
	return nil
}

func (c *Channel) readLoop(conn *websocket.Conn, handler Handler) {
	defer close(c.done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("websocket closed", zap.Error(err))
			}
			return
		}
		var message map[string]interface{}
		if err := json.Unmarshal(raw, &message); err != nil {
			c.logger.Warn("undecodable websocket message", zap.Error(err))
			continue
		}
		c.logger.Info("websocket message", zap.Any("message", message))
		if handler != nil {
			handler(message)
		}
	}
}

// Send writes one JSON payload. An error is returned when the channel is
// not connected.
func (c *Channel) Send(v interface{}) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("websocket not connected")
	}
	return conn.WriteJSON(v)
}

// Close shuts the connection down and waits for the read loop to exit.
func (c *Channel) Close() error {
	c.mu.Lock()
	conn := c.conn
	done := c.done
	c.conn = nil
	c.mu.Unlock()
	if conn == nil {
		return nil
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = conn.WriteMessage(websocket.CloseMessage, closeMsg)
	err := conn.Close()
	if done != nil {
		<-done
	}
	return err
}
