package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"eventhub/internal/metrics"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrHubClosed is returned by Serve once the hub has stopped.
var ErrHubClosed = errors.New("realtime hub closed")

// Attendance is the slice of the event service the socket protocol drives.
type Attendance interface {
	Join(ctx context.Context, eventID, userID string) (int, error)
	Depart(ctx context.Context, eventID, userID string) (int, error)
}

type directMessage struct {
	client *client
	data   []byte
}

// Hub tracks connected clients and broadcasts attendee updates to all of them.
// It implements domain.AttendanceNotifier.
type Hub struct {
	logger     *slog.Logger
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	direct     chan directMessage
	done       chan struct{}
	clients    map[string]*client
	count      atomic.Int64
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan directMessage, 64),
		done:       make(chan struct{}),
		clients:    make(map[string]*client),
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c.id] = c
			h.updateCount()
			h.logger.Debug("ws client connected", "conn_id", c.id, "user_id", c.userID)
		case c := <-h.unregister:
			if _, ok := h.clients[c.id]; ok {
				h.remove(c)
				h.logger.Debug("ws client disconnected", "conn_id", c.id)
			}
		case msg := <-h.direct:
			if _, ok := h.clients[msg.client.id]; ok {
				h.deliver(msg.client, msg.data)
			}
		case msg := <-h.broadcast:
			for _, c := range h.clients {
				h.deliver(c, msg)
			}
			metrics.WSBroadcasts.Inc()
		case <-ctx.Done():
			for _, c := range h.clients {
				h.remove(c)
			}
			return
		}
	}
}

// deliver queues msg for c, dropping c when its buffer is full.
func (h *Hub) deliver(c *client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.logger.Warn("ws client too slow, dropping", "conn_id", c.id)
		metrics.WSSlowClientsDropped.Inc()
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	delete(h.clients, c.id)
	close(c.send)
	h.updateCount()
}

func (h *Hub) updateCount() {
	n := int64(len(h.clients))
	h.count.Store(n)
	metrics.WSConnections.Set(float64(n))
}

// ClientCount returns the number of registered connections.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// NotifyAttendees broadcasts an update_attendees message to every client.
func (h *Hub) NotifyAttendees(eventID string, count int) {
	msg, err := encode(EventUpdateAttendees, AttendeesUpdate{EventID: eventID, AttendeesCount: count})
	if err != nil {
		h.logger.Error("encode attendees update", "err", err)
		return
	}
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *Hub) sendTo(c *client, msg []byte) {
	select {
	case h.direct <- directMessage{client: c, data: msg}:
	case <-h.done:
	}
}

// Serve registers conn and runs its pumps until the connection closes. userID is
// the authenticated user, or empty for anonymous connections. It blocks for the
// lifetime of the connection.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID string, attendance Attendance) error {
	c := &client{
		id:         uuid.NewString(),
		userID:     userID,
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, sendBufferSize),
		attendance: attendance,
	}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return ErrHubClosed
	}
	go c.writePump()
	c.readPump(ctx)
	return nil
}
