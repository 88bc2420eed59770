package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/Faultbox/serverworld/internal/mesh"
	"github.com/Faultbox/serverworld/internal/primitives"
	"github.com/Faultbox/serverworld/internal/scene"
)

const maxBodyBytes = 16 << 20

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("not found")
)

type errorBody struct {
	Detail string `json:"detail"`
}

// writeJSON encodes v before committing status. A value that cannot be
// encoded is logged and answered with a 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.log.Error("encode response", zap.Int("status", status), zap.Error(err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorBody{Detail: "internal server error"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// decodeJSON reads the body into v. An empty body leaves v untouched when
// allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}
	if len(body) == 0 {
		if allowEmpty {
			return nil
		}
		return fmt.Errorf("%w: request body is empty", errBadRequest)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", errBadRequest, err)
	}
	return nil
}

// statusOf maps domain errors onto HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, scene.ErrSceneNotFound),
		errors.Is(err, scene.ErrObjectNotFound),
		errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, errBadRequest),
		errors.Is(err, primitives.ErrUnknownKind),
		errors.Is(err, mesh.ErrInvalidParams),
		errors.Is(err, mesh.ErrInvalidMesh),
		errors.Is(err, scene.ErrInvalidScene),
		errors.Is(err, scene.ErrSceneExists),
		errors.Is(err, scene.ErrObjectExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	detail := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		detail = "internal server error"
	}
	s.writeJSON(w, status, errorBody{Detail: detail})
}
