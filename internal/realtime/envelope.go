// Package realtime fans scene and monitoring updates out to WebSocket
// clients.
package realtime

import (
	"encoding/json"
	"time"
)

// Message types sent and accepted on the sockets.
const (
	TypeConnection        = "connection"
	TypeSceneConnection   = "scene_connection"
	TypeMonitorConnection = "server_monitor_connection"
	TypePing              = "ping"
	TypePong              = "pong"
	TypeEcho              = "echo"
	TypeEchoResponse      = "echo_response"
	TypeBroadcast         = "broadcast"
	TypeBroadcastMessage  = "broadcast_message"
	TypeSceneUpdate       = "scene_update"
	TypeObjectTransform   = "object_transform"
	TypeCameraUpdate      = "camera_update"
	TypeServerUpdate      = "server_update"
	TypeError             = "error"
)

// Envelope is the JSON frame exchanged with clients.
type Envelope struct {
	Type      string `json:"type"`
	SceneID   string `json:"scene_id,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp string `json:"timestamp"`
}

// inbound is a decoded client frame. Raw keeps the full message for echo.
type inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
	Raw  map[string]any  `json:"-"`
}

func decodeInbound(b []byte) (inbound, error) {
	var in inbound
	if err := json.Unmarshal(b, &in); err != nil {
		return in, err
	}
	if err := json.Unmarshal(b, &in.Raw); err != nil {
		return in, err
	}
	return in, nil
}

func stamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func errorData(msg string) map[string]string {
	return map[string]string{"message": msg}
}
