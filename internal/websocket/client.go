package websocket

import (
	"strings"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64
)

// Client is one admin socket subscribed to the audit feed.
type Client struct {
	Hub       *Hub
	Conn      *websocket.Conn
	AccountID uuid.UUID

	// Log types this socket wants; empty means every type
	Types map[string]struct{}

	Send chan []byte
}

// NewClient builds a client for the given ?types=PAYMENT,ATTENDANCE filter.
func NewClient(hub *Hub, conn *websocket.Conn, accountID uuid.UUID, typeFilter string) *Client {
	types := make(map[string]struct{})
	for _, t := range strings.Split(typeFilter, ",") {
		if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
			types[t] = struct{}{}
		}
	}
	return &Client{Hub: hub, Conn: conn, AccountID: accountID, Types: types, Send: make(chan []byte, sendBuffer)}
}

func (c *Client) wants(eventType string) bool {
	if len(c.Types) == 0 {
		return true
	}
	_, ok := c.Types[strings.ToUpper(eventType)]
	return ok
}

// readPump only watches for close and pong frames; the feed is one-way.
func (c *Client) readPump() {
	defer func() {
		c.Hub.remove(c)
		c.Conn.Close()
	}()
	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Warn("Hub", "Unexpected socket close", map[string]interface{}{"account_id": c.AccountID, "error": err.Error()})
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// One audit entry per text frame so clients can JSON.parse each message
			if err := c.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs attaches an upgraded connection to the hub and blocks until it closes.
func ServeWs(hub *Hub, client *Client) {
	if !hub.add(client) {
		client.Conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
