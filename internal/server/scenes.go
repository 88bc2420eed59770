package server

import (
	"net/http"

	"github.com/Faultbox/serverworld/internal/scene"
	"github.com/Faultbox/serverworld/internal/webgl"
)

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.store.List())
}

func (s *Server) handleCreateScene(w http.ResponseWriter, r *http.Request) {
	sc := scene.NewScene("", "")
	if err := decodeJSON(w, r, &sc, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.store.Create(sc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleUpdateScene(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	sc := scene.NewScene(id, "")
	if err := decodeJSON(w, r, &sc, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.store.Update(id, sc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hub.PublishScene(id, "scene_replaced", webgl.Scene(updated))
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.Delete(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hub.PublishScene(id, "scene_deleted", map[string]string{"scene_id": id})
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Scene deleted", "scene_id": id})
}

func (s *Server) handleSceneWebGL(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, webgl.Scene(sc))
}

func (s *Server) handleAddObject(w http.ResponseWriter, r *http.Request) {
	sceneID := r.PathValue("id")
	obj := scene.NewObject3D("", nil)
	if err := decodeJSON(w, r, &obj, false); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.addObject(w, r, sceneID, obj)
}

func (s *Server) handleRemoveObject(w http.ResponseWriter, r *http.Request) {
	sceneID, objectID := r.PathValue("id"), r.PathValue("objectID")
	if err := s.store.RemoveObject(sceneID, objectID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.hub.PublishScene(sceneID, "object_removed", map[string]string{"object_id": objectID})
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Object removed", "object_id": objectID})
}

// addObject stores obj in sceneID, announces it and replies with its WebGL
// record.
func (s *Server) addObject(w http.ResponseWriter, r *http.Request, sceneID string, obj scene.Object3D) {
	added, err := s.store.AddObject(sceneID, obj)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data := webgl.Object(added)
	s.hub.PublishScene(sceneID, "object_added", data)
	s.writeJSON(w, http.StatusCreated, data)
}
