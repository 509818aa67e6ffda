package realtime

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"eventhub/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendance keeps attendee sets in memory and notifies the hub like the event service does.
type fakeAttendance struct {
	mu    sync.Mutex
	hub   *Hub
	sets  map[string]map[string]bool
	calls []AttendancePayload
	err   error
}

func newFakeAttendance(hub *Hub) *fakeAttendance {
	return &fakeAttendance{hub: hub, sets: make(map[string]map[string]bool)}
}

func (f *fakeAttendance) apply(eventID, userID string, join bool) (int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, AttendancePayload{EventID: eventID, UserID: userID})
	if f.err != nil {
		f.mu.Unlock()
		return 0, f.err
	}
	set, ok := f.sets[eventID]
	if !ok {
		set = make(map[string]bool)
		f.sets[eventID] = set
	}
	if join {
		set[userID] = true
	} else {
		delete(set, userID)
	}
	count := len(set)
	f.mu.Unlock()
	f.hub.NotifyAttendees(eventID, count)
	return count, nil
}

func (f *fakeAttendance) Join(ctx context.Context, eventID, userID string) (int, error) {
	return f.apply(eventID, userID, true)
}

func (f *fakeAttendance) Depart(ctx context.Context, eventID, userID string) (int, error) {
	return f.apply(eventID, userID, false)
}

func (f *fakeAttendance) recorded() []AttendancePayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AttendancePayload{}, f.calls...)
}

type hubFixture struct {
	hub        *Hub
	attendance *fakeAttendance
	server     *httptest.Server
	cancel     context.CancelFunc
}

func newHubFixture(t *testing.T) *hubFixture {
	t.Helper()
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	attendance := newFakeAttendance(hub)
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = hub.Serve(r.Context(), conn, r.URL.Query().Get("as"), attendance)
	}))
	t.Cleanup(func() {
		cancel()
		server.Close()
	})
	return &hubFixture{hub: hub, attendance: attendance, server: server, cancel: cancel}
}

func (fx *hubFixture) dial(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(fx.server.URL, "http") + "/" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func (fx *hubFixture) waitClients(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return fx.hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func send(t *testing.T, conn *websocket.Conn, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Event: event, Data: raw}))
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func readUpdate(t *testing.T, conn *websocket.Conn) AttendeesUpdate {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, EventUpdateAttendees, msg.Event)
	var update AttendeesUpdate
	require.NoError(t, json.Unmarshal(msg.Data, &update))
	return update
}

func readError(t *testing.T, conn *websocket.Conn) ErrorPayload {
	t.Helper()
	msg := read(t, conn)
	require.Equal(t, EventError, msg.Event)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Data, &p))
	return p
}

func TestHub_join_and_leave_broadcast_to_all_clients(t *testing.T) {
	fx := newHubFixture(t)
	a := fx.dial(t, "")
	b := fx.dial(t, "")
	fx.waitClients(t, 2)

	send(t, a, EventJoin, AttendancePayload{EventID: "ev-1", UserID: "u1"})
	assert.Equal(t, AttendeesUpdate{EventID: "ev-1", AttendeesCount: 1}, readUpdate(t, a))
	assert.Equal(t, AttendeesUpdate{EventID: "ev-1", AttendeesCount: 1}, readUpdate(t, b))

	send(t, b, EventJoin, AttendancePayload{EventID: "ev-1", UserID: "u2"})
	assert.Equal(t, 2, readUpdate(t, a).AttendeesCount)
	assert.Equal(t, 2, readUpdate(t, b).AttendeesCount)

	send(t, a, EventLeave, AttendancePayload{EventID: "ev-1", UserID: "u1"})
	assert.Equal(t, 1, readUpdate(t, a).AttendeesCount)
	assert.Equal(t, 1, readUpdate(t, b).AttendeesCount)
}

func TestHub_failure_replies_to_sender_only(t *testing.T) {
	fx := newHubFixture(t)
	fx.attendance.err = domain.ErrEventNotFound
	a := fx.dial(t, "")
	b := fx.dial(t, "")
	fx.waitClients(t, 2)

	send(t, a, EventJoin, AttendancePayload{EventID: "ev-missing", UserID: "u1"})
	assert.Equal(t, ErrorPayload{Event: EventJoin, EventID: "ev-missing", Message: "Event not found"}, readError(t, a))

	require.NoError(t, b.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := b.ReadMessage()
	require.Error(t, err)
}

func TestHub_authenticated_user_overrides_payload(t *testing.T) {
	fx := newHubFixture(t)
	conn := fx.dial(t, "?as=user-from-token")
	fx.waitClients(t, 1)

	send(t, conn, EventJoin, AttendancePayload{EventID: "ev-1", UserID: "someone-else"})
	readUpdate(t, conn)
	assert.Equal(t, []AttendancePayload{{EventID: "ev-1", UserID: "user-from-token"}}, fx.attendance.recorded())
}

func TestHub_rejects_bad_messages(t *testing.T) {
	fx := newHubFixture(t)
	conn := fx.dial(t, "")
	fx.waitClients(t, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	assert.Equal(t, "Invalid message", readError(t, conn).Message)

	send(t, conn, "dance", map[string]string{})
	assert.Equal(t, ErrorPayload{Event: "dance", Message: "Unknown event"}, readError(t, conn))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"join_event","data":"nope"}`)))
	assert.Equal(t, "Invalid message", readError(t, conn).Message)

	assert.Empty(t, fx.attendance.recorded())
}

func TestHub_disconnect_unregisters(t *testing.T) {
	fx := newHubFixture(t)
	a := fx.dial(t, "")
	fx.dial(t, "")
	fx.waitClients(t, 2)

	require.NoError(t, a.Close())
	fx.waitClients(t, 1)
}

func TestHub_shutdown_closes_connections(t *testing.T) {
	fx := newHubFixture(t)
	conn := fx.dial(t, "")
	fx.waitClients(t, 1)

	fx.cancel()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) ||
		strings.Contains(err.Error(), "close"), err.Error())

	// notifying a stopped hub returns immediately
	done := make(chan struct{})
	go func() {
		for i := 0; i < 300; i++ {
			fx.hub.NotifyAttendees("ev-1", i)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("NotifyAttendees blocked after shutdown")
	}
}

func TestHub_drops_slow_client(t *testing.T) {
	hub := NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	c := &client{id: "slow", hub: hub, send: make(chan []byte, 1)}
	hub.register <- c
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.NotifyAttendees("ev-1", 1)
	hub.NotifyAttendees("ev-1", 2)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	first, ok := <-c.send
	require.True(t, ok)
	assert.Contains(t, string(first), `"attendeesCount":1`)
	_, ok = <-c.send
	assert.False(t, ok)
}
