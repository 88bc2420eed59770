package server

import (
	"fmt"
	"net/http"

	"github.com/Faultbox/serverworld/internal/primitives"
	"github.com/Faultbox/serverworld/internal/webgl"
)

func (s *Server) handleListPrimitives(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"primitives": primitives.Catalog()})
}

func (s *Server) handleGenerateMesh(w http.ResponseWriter, r *http.Request) {
	kind, err := primitives.ParseKind(r.PathValue("kind"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	params := primitives.Params{}
	if err := decodeJSON(w, r, &params, true); err != nil {
		s.writeError(w, r, err)
		return
	}
	m, err := s.gen.Generate(kind, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, webgl.Mesh(m))
}

func (s *Server) handleListShaders(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"shaders": webgl.ProgramNames()})
}

func (s *Server) handleShader(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	p, ok := webgl.LookupProgram(name)
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: unknown shader: %s", errNotFound, name))
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}
