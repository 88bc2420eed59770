// Package scene holds the in-memory scene graph served to the viewer:
// scenes, their objects and the monitored servers drawn in them.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Faultbox/serverworld/internal/mesh"
)

// ErrInvalidScene is wrapped by every validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Vector3 is a position, Euler rotation in radians, or scale.
type Vector3 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

// Array returns the vector as [x, y, z].
func (v Vector3) Array() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// Color is RGBA with components in [0, 1]. Missing components decode as 1.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// White is the default color.
var White = Color{1, 1, 1, 1}

// RGBA returns the color as [r, g, b, a].
func (c Color) RGBA() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// RGB returns the color without alpha.
func (c Color) RGB() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

func (c *Color) UnmarshalJSON(data []byte) error {
	type plain Color
	p := plain(White)
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Color(p)
	return nil
}

// Validate checks every component is in [0, 1].
func (c Color) Validate() error {
	return c.validate("color")
}

func (c Color) validate(field string) error {
	for _, v := range c.RGBA() {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s component %v outside [0, 1]", ErrInvalidScene, field, v)
		}
	}
	return nil
}

// Camera is a look-at perspective camera. Fov is in degrees.
type Camera struct {
	Position Vector3 `json:"position"`
	Target   Vector3 `json:"target"`
	Up       Vector3 `json:"up"`
	Fov      float32 `json:"fov"`
	Near     float32 `json:"near"`
	Far      float32 `json:"far"`
}

// DefaultCamera looks at the origin from z=5.
func DefaultCamera() Camera {
	return Camera{
		Position: Vector3{Z: 5},
		Up:       Vector3{Y: 1},
		Fov:      75,
		Near:     0.1,
		Far:      1000,
	}
}

func (c *Camera) UnmarshalJSON(data []byte) error {
	type plain Camera
	p := plain(DefaultCamera())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*c = Camera(p)
	return nil
}

// Validate checks the field of view and clip planes.
func (c Camera) Validate() error {
	if c.Fov < 1 || c.Fov > 180 {
		return fmt.Errorf("%w: camera fov %v outside [1, 180]", ErrInvalidScene, c.Fov)
	}
	if c.Near <= 0 || c.Far <= 0 {
		return fmt.Errorf("%w: camera clip planes must be positive", ErrInvalidScene)
	}
	return nil
}

// Object3D is a mesh placed in a scene.
type Object3D struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Position   Vector3        `json:"position"`
	Rotation   Vector3        `json:"rotation"`
	Scale      Vector3        `json:"scale"`
	Mesh       *mesh.Mesh     `json:"mesh"`
	Material   map[string]any `json:"material"`
	Visible    bool           `json:"visible"`
	CustomData map[string]any `json:"custom_data"`
}

// NewObject3D returns a visible, unit-scale object at the origin.
func NewObject3D(name string, m *mesh.Mesh) Object3D {
	return Object3D{
		Name:       name,
		Scale:      Vector3{1, 1, 1},
		Mesh:       m,
		Material:   map[string]any{},
		Visible:    true,
		CustomData: map[string]any{},
	}
}

func (o *Object3D) UnmarshalJSON(data []byte) error {
	type plain Object3D
	p := plain(NewObject3D("", nil))
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*o = Object3D(p)
	return nil
}

// Validate checks the object has a name and a well-formed mesh.
func (o Object3D) Validate() error {
	if o.Name == "" {
		return fmt.Errorf("%w: object name is required", ErrInvalidScene)
	}
	if o.Mesh == nil {
		return fmt.Errorf("%w: object %q has no mesh", ErrInvalidScene, o.Name)
	}
	if err := o.Mesh.Validate(); err != nil {
		return fmt.Errorf("%w: object %q: %w", ErrInvalidScene, o.Name, err)
	}
	return nil
}

// Transform is a partial update of an object's placement. Nil fields are
// left unchanged.
type Transform struct {
	Position *Vector3 `json:"position,omitempty"`
	Rotation *Vector3 `json:"rotation,omitempty"`
	Scale    *Vector3 `json:"scale,omitempty"`
}

// Empty reports whether the transform changes nothing.
func (t Transform) Empty() bool {
	return t.Position == nil && t.Rotation == nil && t.Scale == nil
}

func (t Transform) apply(o *Object3D) {
	if t.Position != nil {
		o.Position = *t.Position
	}
	if t.Rotation != nil {
		o.Rotation = *t.Rotation
	}
	if t.Scale != nil {
		o.Scale = *t.Scale
	}
}

// ServerStatus is the health of a monitored server.
type ServerStatus string

const (
	StatusOnline      ServerStatus = "online"
	StatusOffline     ServerStatus = "offline"
	StatusWarning     ServerStatus = "warning"
	StatusError       ServerStatus = "error"
	StatusMaintenance ServerStatus = "maintenance"
)

// ServerMetrics are percentages except network throughput (MB/s) and
// uptime (seconds).
type ServerMetrics struct {
	CPUUsage    float32 `json:"cpu_usage"`
	MemoryUsage float32 `json:"memory_usage"`
	DiskUsage   float32 `json:"disk_usage"`
	NetworkIn   float32 `json:"network_in"`
	NetworkOut  float32 `json:"network_out"`
	Uptime      int64   `json:"uptime"`
}

// Validate checks percentage and non-negative ranges.
func (m ServerMetrics) Validate() error {
	for name, v := range map[string]float32{"cpu_usage": m.CPUUsage, "memory_usage": m.MemoryUsage, "disk_usage": m.DiskUsage} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %s %v outside [0, 100]", ErrInvalidScene, name, v)
		}
	}
	if m.NetworkIn < 0 || m.NetworkOut < 0 || m.Uptime < 0 {
		return fmt.Errorf("%w: negative network or uptime metric", ErrInvalidScene)
	}
	return nil
}

// ServerState is one monitored server as drawn in the 3D view.
type ServerState struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Status      ServerStatus   `json:"status"`
	Position    Vector3        `json:"position"`
	Color       Color          `json:"color"`
	Metrics     ServerMetrics  `json:"metrics"`
	Alerts      []string       `json:"alerts"`
	CustomData  map[string]any `json:"custom_data"`
	LastUpdated string         `json:"last_updated,omitempty"`
}

// Scene3D is a complete scene.
type Scene3D struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Objects         []Object3D     `json:"objects"`
	Servers         []ServerState  `json:"servers"`
	Camera          Camera         `json:"camera"`
	BackgroundColor Color          `json:"background_color"`
	AmbientLight    Color          `json:"ambient_light"`
	Metadata        map[string]any `json:"metadata"`
	CreatedAt       string         `json:"created_at,omitempty"`
	UpdatedAt       string         `json:"updated_at,omitempty"`
}

// NewScene returns an empty scene with the default camera and lighting.
func NewScene(id, name string) Scene3D {
	return Scene3D{
		ID:              id,
		Name:            name,
		Objects:         []Object3D{},
		Servers:         []ServerState{},
		Camera:          DefaultCamera(),
		BackgroundColor: Color{0.1, 0.1, 0.1, 1},
		AmbientLight:    Color{0.2, 0.2, 0.2, 1},
		Metadata:        map[string]any{},
	}
}

func (s *Scene3D) UnmarshalJSON(data []byte) error {
	type plain Scene3D
	p := plain(NewScene("", ""))
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Scene3D(p)
	return nil
}

// Validate checks the scene and everything in it.
func (s Scene3D) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: scene name is required", ErrInvalidScene)
	}
	if err := s.Camera.Validate(); err != nil {
		return err
	}
	if err := s.BackgroundColor.validate("background_color"); err != nil {
		return err
	}
	if err := s.AmbientLight.validate("ambient_light"); err != nil {
		return err
	}
	for _, o := range s.Objects {
		if err := o.Validate(); err != nil {
			return err
		}
	}
	for _, srv := range s.Servers {
		if err := srv.Color.validate("server color"); err != nil {
			return err
		}
		if err := srv.Metrics.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Summary is the listing form of a scene.
type Summary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ObjectCount int    `json:"object_count"`
	ServerCount int    `json:"server_count"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
}

func (s *Scene3D) summary() Summary {
	return Summary{
		ID:          s.ID,
		Name:        s.Name,
		ObjectCount: len(s.Objects),
		ServerCount: len(s.Servers),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
