package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Faultbox/serverworld/internal/primitives"
	"github.com/Faultbox/serverworld/internal/realtime"
	"github.com/Faultbox/serverworld/internal/scene"
	"github.com/Faultbox/serverworld/internal/webgl"
)

// objectFields are the body keys of a primitive object request that are not
// generator parameters.
type objectFields struct {
	Name     string         `json:"name"`
	Position scene.Vector3  `json:"position"`
	Rotation scene.Vector3  `json:"rotation"`
	Scale    *scene.Vector3 `json:"scale"`
	Color    *scene.Color   `json:"color"`
	Material map[string]any `json:"material"`
}

var objectKeys = []string{"name", "position", "rotation", "scale", "color", "material"}

// targetScene returns the scene_id query parameter, falling back to the
// library scene which is created on first use.
func (s *Server) targetScene(r *http.Request) (string, error) {
	if id := r.URL.Query().Get("scene_id"); id != "" {
		return id, nil
	}
	_, err := s.store.Create(scene.NewScene(scene.LibrarySceneID, "Object Library"))
	if err != nil && !errors.Is(err, scene.ErrSceneExists) {
		return "", err
	}
	return scene.LibrarySceneID, nil
}

// handleCreatePrimitiveObject generates a primitive from the body. Keys other
// than the object fields are passed to the generator, so
// {"name": "Box", "size": 2} builds a cube of size 2.
func (s *Server) handleCreatePrimitiveObject(w http.ResponseWriter, r *http.Request) {
	kind, err := primitives.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var raw map[string]json.RawMessage
	if err := decodeJSON(w, r, &raw, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	fields, params, err := splitObjectBody(raw)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if fields.Color != nil {
		if err := fields.Color.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	m, err := s.gen.Generate(kind, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if fields.Color != nil {
		m = m.WithColor(fields.Color.RGBA())
	}

	name := fields.Name
	if name == "" {
		name = kind.String()
	}
	obj := scene.NewObject3D(name, m)
	obj.Position = fields.Position
	obj.Rotation = fields.Rotation
	if fields.Scale != nil {
		obj.Scale = *fields.Scale
	}
	obj.Material["primitive"] = kind.String()
	for k, v := range fields.Material {
		obj.Material[k] = v
	}

	sceneID, err := s.targetScene(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.addObject(w, r, sceneID, obj)
}

func splitObjectBody(raw map[string]json.RawMessage) (objectFields, primitives.Params, error) {
	var fields objectFields
	known := make(map[string]json.RawMessage)
	params := primitives.Params{}
	for k, v := range raw {
		if isObjectKey(k) {
			known[k] = v
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fields, nil, fmt.Errorf("%w: parameter %s: %w", errBadRequest, k, err)
		}
		params[k] = val
	}
	b, err := json.Marshal(known)
	if err != nil {
		return fields, nil, err
	}
	if err := json.Unmarshal(b, &fields); err != nil {
		return fields, nil, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	return fields, params, nil
}

func isObjectKey(k string) bool {
	for _, name := range objectKeys {
		if k == name {
			return true
		}
	}
	return false
}

func (s *Server) handleCreateCustomObject(w http.ResponseWriter, r *http.Request) {
	obj := scene.NewObject3D("", nil)
	if err := decodeJSON(w, r, &obj, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if obj.Name == "" {
		obj.Name = "custom"
	}
	sceneID, err := s.targetScene(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.addObject(w, r, sceneID, obj)
}

func (s *Server) handleObjectWebGL(w http.ResponseWriter, r *http.Request) {
	obj, _, err := s.store.FindObject(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, webgl.Object(obj))
}

func (s *Server) handleTransformObject(w http.ResponseWriter, r *http.Request) {
	var t scene.Transform
	if err := decodeJSON(w, r, &t, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	if t.Empty() {
		s.writeError(w, r, fmt.Errorf("%w: transform needs position, rotation or scale", errBadRequest))
		return
	}

	obj, sceneID, err := s.store.TransformObject(r.PathValue("id"), t)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := webgl.Object(obj)
	s.hub.SendToScene(sceneID, realtime.Envelope{
		Type: realtime.TypeObjectTransform,
		Data: map[string]any{
			"object_id":    obj.ID,
			"position":     data.Position,
			"rotation":     data.Rotation,
			"scale":        data.Scale,
			"model_matrix": data.ModelMatrix,
		},
	})
	s.writeJSON(w, http.StatusOK, data)
}
