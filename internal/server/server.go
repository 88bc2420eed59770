// Package server exposes the scene store, mesh generators and realtime hub
// over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/serverworld/internal/primitives"
	"github.com/Faultbox/serverworld/internal/realtime"
	"github.com/Faultbox/serverworld/internal/scene"
)

// Server wires handlers to their collaborators.
type Server struct {
	store *scene.Store
	gen   *primitives.Generator
	hub   *realtime.Hub
	log   *zap.Logger
	pages *pages
}

// New creates a server. A nil logger discards output.
func New(store *scene.Store, gen *primitives.Generator, hub *realtime.Hub, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p, err := loadPages()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return &Server{store: store, gen: gen, hub: hub, log: log, pages: p}, nil
}

// Handler returns the routed handler with logging and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.routes(mux)
	return s.recoverPanics(s.logRequests(mux))
}

// Options configures the listener.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Run serves until ctx is cancelled, then drains requests and closes every
// realtime connection.
func (s *Server) Run(ctx context.Context, opts Options) error {
	ln, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Addr, err)
	}
	return s.Serve(ctx, ln, opts)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, opts Options) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.log),
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		s.hub.Close()
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	s.hub.Close()

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /viewer", s.handleViewer)
	mux.HandleFunc("GET /demos", s.handleDemos)
	mux.HandleFunc("GET /demos/{demo}", s.handleDemo)
	mux.Handle("GET /static/", staticHandler())
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/scenes", s.handleListScenes)
	mux.HandleFunc("POST /api/scenes", s.handleCreateScene)
	mux.HandleFunc("GET /api/scenes/{id}", s.handleGetScene)
	mux.HandleFunc("PUT /api/scenes/{id}", s.handleUpdateScene)
	mux.HandleFunc("DELETE /api/scenes/{id}", s.handleDeleteScene)
	mux.HandleFunc("GET /api/scenes/{id}/webgl", s.handleSceneWebGL)
	mux.HandleFunc("POST /api/scenes/{id}/objects", s.handleAddObject)
	mux.HandleFunc("DELETE /api/scenes/{id}/objects/{objectID}", s.handleRemoveObject)

	mux.HandleFunc("POST /api/objects/custom", s.handleCreateCustomObject)
	mux.HandleFunc("POST /api/objects/{kind}", s.handleCreatePrimitiveObject)
	mux.HandleFunc("GET /api/objects/{id}/webgl", s.handleObjectWebGL)
	mux.HandleFunc("POST /api/objects/{id}/transform", s.handleTransformObject)

	mux.HandleFunc("GET /api/meshes/primitives", s.handleListPrimitives)
	mux.HandleFunc("POST /api/meshes/generate/{kind}", s.handleGenerateMesh)

	mux.HandleFunc("GET /api/shaders", s.handleListShaders)
	mux.HandleFunc("GET /api/shaders/{name}", s.handleShader)

	mux.HandleFunc("GET /ws/realtime", s.hub.ServeRealtime)
	mux.HandleFunc("GET /ws/realtime/scene/{id}", s.hub.ServeScene)
	mux.HandleFunc("GET /ws/realtime/server-monitor", s.hub.ServeMonitor)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "serverworld"})
}
