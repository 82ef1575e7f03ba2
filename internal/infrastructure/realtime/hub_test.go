package realtime_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/D-matsu-portfolio/matching-board/internal/infrastructure/realtime"
)

// testSocket pairs a server-side Connection with the client websocket that
// receives whatever the hub delivers to it.
type testSocket struct {
	conn   *realtime.Connection
	client *websocket.Conn
}

func (s *testSocket) readText(t *testing.T, timeout time.Duration) (string, error) {
	t.Helper()
	_ = s.client.SetReadDeadline(time.Now().Add(timeout))
	_, payload, err := s.client.ReadMessage()
	return string(payload), err
}

func newTestSocket(t *testing.T, userID string) *testSocket {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	serverConns := make(chan *websocket.Conn, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- ws
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = client.Close() })

	ws := <-serverConns
	conn := realtime.NewConnection(userID, ws)
	return &testSocket{conn: conn, client: client}
}

func TestSubscribeReplacesPreviousRoom(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()

	s := newTestSocket(t, "user-1")
	hub.Attach(s.conn)

	hub.Subscribe("conv-a", s.conn)
	require.Equal(t, 1, hub.RoomSize("conv-a"))

	hub.Subscribe("conv-b", s.conn)
	require.Equal(t, 0, hub.RoomSize("conv-a"))
	require.Equal(t, 1, hub.RoomSize("conv-b"))

	hub.Subscribe("conv-a", s.conn)
	require.Equal(t, 1, hub.RoomSize("conv-a"))
	require.Equal(t, 0, hub.RoomSize("conv-b"))

	// Selecting A then B then A again leaves exactly one live subscription.
	active, ok := hub.Subscription(s.conn)
	require.True(t, ok)
	require.Equal(t, "conv-a", active)
}

func TestSubscribeSameRoomIsIdempotent(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()

	s := newTestSocket(t, "user-1")
	hub.Attach(s.conn)

	hub.Subscribe("conv-a", s.conn)
	hub.Subscribe("conv-a", s.conn)
	require.Equal(t, 1, hub.RoomSize("conv-a"))
}

func TestBroadcastExcludesSender(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()

	sender := newTestSocket(t, "user-sender")
	recipient := newTestSocket(t, "user-recipient")
	hub.Attach(sender.conn)
	hub.Attach(recipient.conn)
	hub.Subscribe("conv-a", sender.conn)
	hub.Subscribe("conv-a", recipient.conn)

	delivered := hub.Broadcast("conv-a", []byte(`{"hello":true}`), "user-sender")
	require.Equal(t, 1, delivered)

	got, err := recipient.readText(t, time.Second)
	require.NoError(t, err)
	require.Equal(t, `{"hello":true}`, got)

	_, err = sender.readText(t, 200*time.Millisecond)
	require.Error(t, err, "sender must not receive an echo of its own message")
}

func TestInRoomTracksCurrentSubscription(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()

	s := newTestSocket(t, "user-1")
	hub.Attach(s.conn)

	require.False(t, hub.InRoom("conv-a", "user-1"))

	hub.Subscribe("conv-a", s.conn)
	require.True(t, hub.InRoom("conv-a", "user-1"))
	require.False(t, hub.InRoom("conv-b", "user-1"))
	require.False(t, hub.InRoom("conv-a", "user-2"))

	hub.Subscribe("conv-b", s.conn)
	require.False(t, hub.InRoom("conv-a", "user-1"))
	require.True(t, hub.InRoom("conv-b", "user-1"))

	hub.Unsubscribe(s.conn)
	require.False(t, hub.InRoom("conv-b", "user-1"))
}

func TestAttachReplacesExistingUserSession(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()

	first := newTestSocket(t, "user-1")
	hub.Attach(first.conn)
	hub.Subscribe("conv-a", first.conn)

	second := newTestSocket(t, "user-1")
	hub.Attach(second.conn)

	// The replaced session is gone from its room and the new socket receives
	// user-directed payloads.
	require.Equal(t, 0, hub.RoomSize("conv-a"))
	require.True(t, hub.NotifyUser("user-1", []byte("ping")))

	got, err := second.readText(t, time.Second)
	require.NoError(t, err)
	require.Equal(t, "ping", got)
}

func TestDetachLeavesRoom(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()

	s := newTestSocket(t, "user-1")
	hub.Attach(s.conn)
	hub.Subscribe("conv-a", s.conn)

	hub.Detach(s.conn)
	require.Equal(t, 0, hub.RoomSize("conv-a"))
	require.False(t, hub.NotifyUser("user-1", []byte("ping")))
}
