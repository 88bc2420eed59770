package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/serverworld/internal/scene"
)

type frame struct {
	Type      string          `json:"type"`
	SceneID   string          `json:"scene_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

func newTestServer(t *testing.T, opts Options) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(opts, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws/realtime", hub.ServeRealtime)
	mux.HandleFunc("GET /ws/realtime/scene/{id}", hub.ServeScene)
	mux.HandleFunc("GET /ws/realtime/server-monitor", hub.ServeMonitor)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var f frame
	require.NoError(t, conn.ReadJSON(&f))
	return f
}

func send(t *testing.T, conn *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(v))
}

func TestRealtimeChannel(t *testing.T) {
	_, srv := newTestServer(t, Options{})
	conn := dial(t, srv, "/ws/realtime")

	welcome := read(t, conn)
	assert.Equal(t, TypeConnection, welcome.Type)
	assert.NotEmpty(t, welcome.Timestamp)

	send(t, conn, map[string]any{"type": "ping"})
	assert.Equal(t, TypePong, read(t, conn).Type)

	send(t, conn, map[string]any{"type": "echo", "data": "hello"})
	echo := read(t, conn)
	assert.Equal(t, TypeEchoResponse, echo.Type)
	var original map[string]any
	require.NoError(t, json.Unmarshal(echo.Data, &original))
	assert.Equal(t, "hello", original["data"])

	send(t, conn, map[string]any{"type": "dance"})
	assert.Equal(t, TypeError, read(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	assert.Equal(t, TypeError, read(t, conn).Type)
}

func TestBroadcastReachesEveryone(t *testing.T) {
	_, srv := newTestServer(t, Options{})
	a := dial(t, srv, "/ws/realtime")
	b := dial(t, srv, "/ws/realtime")
	read(t, a)
	read(t, b)

	send(t, a, map[string]any{"type": "broadcast", "data": map[string]any{"text": "hi"}})

	for _, conn := range []*websocket.Conn{a, b} {
		f := read(t, conn)
		assert.Equal(t, TypeBroadcastMessage, f.Type)
		assert.JSONEq(t, `{"text":"hi"}`, string(f.Data))
	}
}

func TestSceneUpdatesStayInScene(t *testing.T) {
	hub, srv := newTestServer(t, Options{})
	a1 := dial(t, srv, "/ws/realtime/scene/alpha")
	a2 := dial(t, srv, "/ws/realtime/scene/alpha")
	b := dial(t, srv, "/ws/realtime/scene/beta")
	for _, conn := range []*websocket.Conn{a1, a2, b} {
		assert.Equal(t, TypeSceneConnection, read(t, conn).Type)
	}
	assert.Equal(t, 2, hub.SceneSubscribers("alpha"))

	send(t, a1, map[string]any{"type": "object_transform", "data": map[string]any{"id": "box"}})
	for _, conn := range []*websocket.Conn{a1, a2} {
		f := read(t, conn)
		assert.Equal(t, TypeObjectTransform, f.Type)
		assert.Equal(t, "alpha", f.SceneID)
	}

	require.NoError(t, b.SetReadDeadline(time.Now().Add(150*time.Millisecond)))
	_, _, err := b.ReadMessage()
	assert.Error(t, err, "beta subscriber must not see alpha updates")
}

func TestPublishScene(t *testing.T) {
	hub, srv := newTestServer(t, Options{})
	conn := dial(t, srv, "/ws/realtime/scene/alpha")
	read(t, conn)

	hub.PublishScene("alpha", "object_added", map[string]string{"id": "box"})

	f := read(t, conn)
	assert.Equal(t, TypeSceneUpdate, f.Type)
	assert.Equal(t, "alpha", f.SceneID)
	assert.JSONEq(t, `{"update_type":"object_added","data":{"id":"box"}}`, string(f.Data))
}

func TestServerMonitor(t *testing.T) {
	_, srv := newTestServer(t, Options{MonitorInterval: 20 * time.Millisecond, MonitorServers: 3})
	conn := dial(t, srv, "/ws/realtime/server-monitor")
	assert.Equal(t, TypeMonitorConnection, read(t, conn).Type)

	for range 2 {
		f := read(t, conn)
		require.Equal(t, TypeServerUpdate, f.Type)
		var payload struct {
			Servers []scene.ServerState `json:"servers"`
		}
		require.NoError(t, json.Unmarshal(f.Data, &payload))
		assert.Len(t, payload.Servers, 3)
	}
}

func TestCloseDisconnects(t *testing.T) {
	hub, srv := newTestServer(t, Options{})
	conn := dial(t, srv, "/ws/realtime")
	read(t, conn)
	assert.Equal(t, 1, hub.Stats().Clients)

	hub.Close()
	assert.Zero(t, hub.Stats().Clients)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	hub.Close()
}

func TestMockServers(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	servers := MockServers(5, now)
	require.Len(t, servers, 5)

	first := servers[0]
	assert.Equal(t, "server-1", first.ID)
	assert.Equal(t, float32(20), first.Metrics.CPUUsage)
	assert.Equal(t, float32(30), first.Metrics.MemoryUsage)
	assert.Equal(t, float32(-6), first.Position.X)
	assert.Equal(t, scene.StatusOnline, first.Status)

	last := servers[4]
	assert.Equal(t, float32(80), last.Metrics.CPUUsage)
	assert.Equal(t, float32(80), last.Metrics.DiskUsage)
	assert.Equal(t, int64(86400+4*3600), last.Metrics.Uptime)
	assert.Equal(t, float32(6), last.Position.X)
	assert.Equal(t, scene.StatusWarning, last.Status)
	assert.NotEmpty(t, last.Alerts)

	for _, s := range servers {
		assert.NoError(t, s.Metrics.Validate())
	}
}
