package realtime

import (
	"context"
	"encoding/json"
	"time"

	"eventhub/internal/metrics"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 16
)

type client struct {
	id         string
	userID     string
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	attendance Attendance
}

// readPump dispatches inbound messages until the connection fails.
func (c *client) readPump(ctx context.Context) {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Debug("ws read failed", "conn_id", c.id, "err", err)
			}
			return
		}
		c.handle(ctx, data)
	}
}

func (c *client) handle(ctx context.Context, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		metrics.WSMessagesReceived.WithLabelValues("invalid").Inc()
		c.reply(ErrorPayload{Message: "Invalid message"})
		return
	}

	var op func(ctx context.Context, eventID, userID string) (int, error)
	switch msg.Event {
	case EventJoin:
		op = c.attendance.Join
	case EventLeave:
		op = c.attendance.Depart
	default:
		metrics.WSMessagesReceived.WithLabelValues("unknown").Inc()
		c.reply(ErrorPayload{Event: msg.Event, Message: "Unknown event"})
		return
	}
	metrics.WSMessagesReceived.WithLabelValues(msg.Event).Inc()

	var payload AttendancePayload
	if len(msg.Data) > 0 {
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			c.reply(ErrorPayload{Event: msg.Event, Message: "Invalid message"})
			return
		}
	}
	if c.userID != "" {
		payload.UserID = c.userID
	}

	// The service notifies the hub on success; only failures are answered here.
	if _, err := op(ctx, payload.EventID, payload.UserID); err != nil {
		c.hub.logger.Error("ws attendance update failed",
			"event", msg.Event,
			"event_id", payload.EventID,
			"user_id", payload.UserID,
			"err", err,
		)
		c.reply(ErrorPayload{Event: msg.Event, EventID: payload.EventID, Message: errorMessage(err)})
	}
}

func (c *client) reply(p ErrorPayload) {
	msg, err := encode(EventError, p)
	if err != nil {
		return
	}
	c.hub.sendTo(c, msg)
}

// writePump drains the send buffer and pings the peer. It exits when the hub
// closes the buffer or a write fails.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
