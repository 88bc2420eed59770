package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type demoLink struct {
	Name        string
	URL         string
	Description string
}

var demoLinks = []demoLink{
	{"Cube", "/demos/cube", "Basic cube rendering and rotation"},
	{"Particles", "/demos/particles", "Particle system simulation"},
	{"Terrain", "/demos/terrain", "Procedural terrain generation"},
}

type pageData struct {
	Title string
	Page  string
	Demos []demoLink
}

// pages holds one template set per page, each layered on the base layout.
type pages struct {
	sets map[string]*template.Template
}

var pageFiles = map[string]string{
	"home":      "templates/index.html",
	"viewer":    "templates/viewer.html",
	"demos":     "templates/demos/index.html",
	"cube":      "templates/demos/cube.html",
	"particles": "templates/demos/particles.html",
	"terrain":   "templates/demos/terrain.html",
}

func loadPages() (*pages, error) {
	p := &pages{sets: make(map[string]*template.Template, len(pageFiles))}
	for name, file := range pageFiles {
		t, err := template.ParseFS(templateFS, "templates/base.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		p.sets[name] = t
	}
	return p, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	t, ok := s.pages.sets[name]
	if !ok {
		s.writeError(w, r, fmt.Errorf("%w: page %s", errNotFound, name))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		s.log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "home", pageData{Title: "ServerWorld - Go WebGL Demo", Page: "home", Demos: demoLinks})
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "viewer", pageData{Title: "3D Viewer - ServerWorld", Page: "viewer"})
}

func (s *Server) handleDemos(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "demos", pageData{Title: "WebGL Demos - ServerWorld", Page: "demos", Demos: demoLinks})
}

func (s *Server) handleDemo(w http.ResponseWriter, r *http.Request) {
	demo := r.PathValue("demo")
	for _, d := range demoLinks {
		if d.URL == "/demos/"+demo {
			s.render(w, r, demo, pageData{Title: d.Name + " Demo - ServerWorld", Page: demo + "_demo"})
			return
		}
	}
	s.writeError(w, r, fmt.Errorf("%w: demo %s", errNotFound, demo))
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
