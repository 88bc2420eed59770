package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/serverworld/internal/scene"
)

// Options tunes the hub.
type Options struct {
	// SendBuffer is the per-connection queue length. A client whose queue
	// is full is disconnected.
	SendBuffer int
	// MonitorInterval is the server_update period.
	MonitorInterval time.Duration
	// MonitorServers is the number of mock servers reported.
	MonitorServers int
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{
		SendBuffer:      64,
		MonitorInterval: 5 * time.Second,
		MonitorServers:  5,
	}
}

// Hub tracks every socket and the scene each one follows.
type Hub struct {
	opts     Options
	log      *zap.Logger
	upgrader websocket.Upgrader
	now      func() time.Time

	mu      sync.Mutex
	clients map[*client]struct{}
	scenes  map[string]map[*client]struct{}
	closed  bool
	done    chan struct{}
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(opts Options, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	def := DefaultOptions()
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = def.SendBuffer
	}
	if opts.MonitorInterval <= 0 {
		opts.MonitorInterval = def.MonitorInterval
	}
	if opts.MonitorServers <= 0 {
		opts.MonitorServers = def.MonitorServers
	}
	return &Hub{
		opts: opts,
		log:  log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		now:     time.Now,
		clients: make(map[*client]struct{}),
		scenes:  make(map[string]map[*client]struct{}),
		done:    make(chan struct{}),
	}
}

// Stats is a snapshot of connection counts.
type Stats struct {
	Clients int `json:"clients"`
	Scenes  int `json:"scenes"`
}

// Stats reports how many sockets and followed scenes there are.
func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{Clients: len(h.clients), Scenes: len(h.scenes)}
}

// SceneSubscribers reports how many sockets follow sceneID.
func (h *Hub) SceneSubscribers(sceneID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.scenes[sceneID])
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if c.sceneID != "" {
		subs, ok := h.scenes[c.sceneID]
		if !ok {
			subs = make(map[*client]struct{})
			h.scenes[c.sceneID] = subs
		}
		subs[c] = struct{}{}
	}
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	if subs, ok := h.scenes[c.sceneID]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.scenes, c.sceneID)
		}
	}
	c.stop()
}

// deliverLocked queues msg for c. A full queue drops the client.
func (h *Hub) deliverLocked(c *client, msg []byte) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		h.log.Warn("dropping slow client", zap.String("remote", c.conn.RemoteAddr().String()))
		h.removeLocked(c)
	}
}

func (h *Hub) encode(env Envelope) ([]byte, bool) {
	if env.Timestamp == "" {
		env.Timestamp = stamp(h.now())
	}
	b, err := json.Marshal(env)
	if err != nil {
		h.log.Error("encode envelope", zap.String("type", env.Type), zap.Error(err))
		return nil, false
	}
	return b, true
}

func (h *Hub) sendTo(c *client, env Envelope) {
	b, ok := h.encode(env)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliverLocked(c, b)
}

// Broadcast sends env to every connected socket.
func (h *Hub) Broadcast(env Envelope) {
	b, ok := h.encode(env)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.deliverLocked(c, b)
	}
}

// SendToScene sends env to the sockets following sceneID.
func (h *Hub) SendToScene(sceneID string, env Envelope) {
	env.SceneID = sceneID
	b, ok := h.encode(env)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.scenes[sceneID] {
		h.deliverLocked(c, b)
	}
}

// PublishScene pushes a scene_update describing a REST mutation.
func (h *Hub) PublishScene(sceneID, updateType string, data any) {
	h.SendToScene(sceneID, Envelope{
		Type: TypeSceneUpdate,
		Data: map[string]any{"update_type": updateType, "data": data},
	})
}

// Close disconnects every socket and stops monitor loops. The hub accepts
// no connections afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.done)
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.log.Info("realtime hub closed")
}

// accept upgrades the request and starts the writer. The caller owns the
// read loop and must unregister when it returns.
func (h *Hub) accept(w http.ResponseWriter, r *http.Request, sceneID string) (*client, bool) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("upgrade failed", zap.Error(err))
		return nil, false
	}
	c := newClient(conn, h.opts.SendBuffer, sceneID)
	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return nil, false
	}
	go c.writePump(h.log)
	h.log.Debug("client connected",
		zap.String("remote", r.RemoteAddr),
		zap.String("path", r.URL.Path),
		zap.String("scene", sceneID))
	return c, true
}

// ServeRealtime handles the general channel: ping, echo and broadcast.
func (h *Hub) ServeRealtime(w http.ResponseWriter, r *http.Request) {
	c, ok := h.accept(w, r, "")
	if !ok {
		return
	}
	defer h.unregister(c)

	h.sendTo(c, Envelope{Type: TypeConnection, Data: map[string]any{
		"message": "Connected to ServerWorld realtime channel",
		"clients": h.Stats().Clients,
	}})

	c.readLoop(h.log, func(raw []byte) {
		in, err := decodeInbound(raw)
		if err != nil {
			h.sendTo(c, Envelope{Type: TypeError, Data: errorData("invalid JSON")})
			return
		}
		switch in.Type {
		case TypePing:
			h.sendTo(c, Envelope{Type: TypePong})
		case TypeEcho:
			h.sendTo(c, Envelope{Type: TypeEchoResponse, Data: in.Raw})
		case TypeBroadcast:
			h.Broadcast(Envelope{Type: TypeBroadcastMessage, Data: in.Data})
		default:
			h.sendTo(c, Envelope{Type: TypeError, Data: errorData("unknown message type: " + in.Type)})
		}
	})
}

// ServeScene handles /ws/realtime/scene/{id}. Scene, object and camera
// updates from one follower are relayed to every follower of the scene.
func (h *Hub) ServeScene(w http.ResponseWriter, r *http.Request) {
	sceneID := r.PathValue("id")
	if sceneID == "" {
		http.Error(w, "scene id required", http.StatusBadRequest)
		return
	}
	c, ok := h.accept(w, r, sceneID)
	if !ok {
		return
	}
	defer h.unregister(c)

	h.sendTo(c, Envelope{Type: TypeSceneConnection, SceneID: sceneID, Data: map[string]any{
		"message":     "Subscribed to scene " + sceneID,
		"subscribers": h.SceneSubscribers(sceneID),
	}})

	c.readLoop(h.log, func(raw []byte) {
		in, err := decodeInbound(raw)
		if err != nil {
			h.sendTo(c, Envelope{Type: TypeError, SceneID: sceneID, Data: errorData("invalid JSON")})
			return
		}
		switch in.Type {
		case TypeSceneUpdate, TypeObjectTransform, TypeCameraUpdate:
			h.SendToScene(sceneID, Envelope{Type: in.Type, Data: in.Data})
		case TypePing:
			h.sendTo(c, Envelope{Type: TypePong, SceneID: sceneID})
		default:
			h.sendTo(c, Envelope{Type: TypeError, SceneID: sceneID, Data: errorData("unknown message type: " + in.Type)})
		}
	})
}

// ServeMonitor handles the server monitor channel: a server_update every
// MonitorInterval until the client leaves or the hub closes.
func (h *Hub) ServeMonitor(w http.ResponseWriter, r *http.Request) {
	c, ok := h.accept(w, r, "")
	if !ok {
		return
	}
	defer h.unregister(c)

	h.sendTo(c, Envelope{Type: TypeMonitorConnection, Data: map[string]any{
		"message":  "Connected to server monitor",
		"interval": h.opts.MonitorInterval.Seconds(),
	}})

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go h.monitor(ctx, c)

	// Frames from the monitor client are ignored; reading detects close.
	c.readLoop(h.log, func([]byte) {})
}

func (h *Hub) monitor(ctx context.Context, c *client) {
	ticker := time.NewTicker(h.opts.MonitorInterval)
	defer ticker.Stop()

	for {
		h.sendTo(c, Envelope{Type: TypeServerUpdate, Data: map[string]any{
			"servers": MockServers(h.opts.MonitorServers, h.now()),
		}})
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-h.done:
			return
		case <-ticker.C:
		}
	}
}

var (
	colorOnline  = scene.Color{R: 0.2, G: 0.8, B: 0.2, A: 1}
	colorWarning = scene.Color{R: 1, G: 0.7, B: 0.1, A: 1}
)

// MockServers fabricates n monitored servers laid out along the x axis.
func MockServers(n int, now time.Time) []scene.ServerState {
	out := make([]scene.ServerState, 0, n)
	for i := range n {
		metrics := scene.ServerMetrics{
			CPUUsage:    float32(20 + (i*15)%80),
			MemoryUsage: float32(30 + (i*20)%70),
			DiskUsage:   float32(40 + (i*10)%60),
			NetworkIn:   float32(10 + (i*5)%50),
			NetworkOut:  float32(15 + (i*7)%45),
			Uptime:      int64(86400 + i*3600),
		}
		status, color := scene.StatusOnline, colorOnline
		alerts := []string{}
		if metrics.CPUUsage >= 80 {
			status, color = scene.StatusWarning, colorWarning
			alerts = append(alerts, "High CPU usage")
		}
		out = append(out, scene.ServerState{
			ID:          "server-" + strconv.Itoa(i+1),
			Name:        "Server " + strconv.Itoa(i+1),
			Status:      status,
			Position:    scene.Vector3{X: float32((i - 2) * 3)},
			Color:       color,
			Metrics:     metrics,
			Alerts:      alerts,
			CustomData:  map[string]any{},
			LastUpdated: stamp(now),
		})
	}
	return out
}
