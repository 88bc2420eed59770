package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

var (
	ErrSceneNotFound  = errors.New("scene not found")
	ErrObjectNotFound = errors.New("object not found")
	ErrSceneExists    = errors.New("scene already exists")
	ErrObjectExists   = errors.New("object already exists")
)

// Store is an in-memory scene registry safe for concurrent use. Values are
// deep-copied on the way in and out so callers never share stored state.
type Store struct {
	mu     sync.RWMutex
	scenes map[string]*Scene3D
	order  []string

	now func() time.Time
	log *zap.Logger
}

// NewStore creates an empty store. A nil logger discards output.
func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		scenes: make(map[string]*Scene3D),
		now:    time.Now,
		log:    log,
	}
}

func deepCopy[T any](src *T) (T, error) {
	var dst T
	if err := copier.CopyWithOption(&dst, src, copier.Option{DeepCopy: true}); err != nil {
		return dst, fmt.Errorf("copy %T: %w", dst, err)
	}
	return dst, nil
}

// copyObject deep-copies o. Meshes are copied with Clone so absent
// buffers stay nil.
func copyObject(o *Object3D) (Object3D, error) {
	dst, err := deepCopy(o)
	if err != nil {
		return dst, err
	}
	if o.Mesh != nil {
		dst.Mesh = o.Mesh.Clone()
	}
	return dst, nil
}

func copyScene(sc *Scene3D) (Scene3D, error) {
	dst, err := deepCopy(sc)
	if err != nil {
		return dst, err
	}
	for i := range sc.Objects {
		if sc.Objects[i].Mesh != nil {
			dst.Objects[i].Mesh = sc.Objects[i].Mesh.Clone()
		}
	}
	return dst, nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// List returns summaries in creation order.
func (s *Store) List() []Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Summary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.scenes[id].summary())
	}
	return out
}

// Len returns the number of scenes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.scenes)
}

// Create validates and stores sc. An empty id is replaced with a new uuid.
func (s *Store) Create(sc Scene3D) (Scene3D, error) {
	if err := sc.Validate(); err != nil {
		return Scene3D{}, err
	}
	stored, err := copyScene(&sc)
	if err != nil {
		return Scene3D{}, err
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	for i := range stored.Objects {
		if stored.Objects[i].ID == "" {
			stored.Objects[i].ID = uuid.NewString()
		}
	}
	stored.CreatedAt = s.timestamp()
	stored.UpdatedAt = stored.CreatedAt

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scenes[stored.ID]; ok {
		return Scene3D{}, fmt.Errorf("%w: %s", ErrSceneExists, stored.ID)
	}
	s.scenes[stored.ID] = &stored
	s.order = append(s.order, stored.ID)

	s.log.Debug("scene created", zap.String("id", stored.ID), zap.Int("objects", len(stored.Objects)))
	return copyScene(&stored)
}

// Get returns a copy of the scene.
func (s *Store) Get(id string) (Scene3D, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, ok := s.scenes[id]
	if !ok {
		return Scene3D{}, fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}
	return copyScene(sc)
}

// Update replaces the scene stored under id. The id and creation time are
// kept; the update time is bumped.
func (s *Store) Update(id string, sc Scene3D) (Scene3D, error) {
	if err := sc.Validate(); err != nil {
		return Scene3D{}, err
	}
	stored, err := copyScene(&sc)
	if err != nil {
		return Scene3D{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.scenes[id]
	if !ok {
		return Scene3D{}, fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}
	stored.ID = id
	stored.CreatedAt = old.CreatedAt
	stored.UpdatedAt = s.timestamp()
	for i := range stored.Objects {
		if stored.Objects[i].ID == "" {
			stored.Objects[i].ID = uuid.NewString()
		}
	}
	s.scenes[id] = &stored
	return copyScene(&stored)
}

// Delete removes a scene.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.scenes[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, id)
	}
	delete(s.scenes, id)
	for i, sid := range s.order {
		if sid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.log.Debug("scene deleted", zap.String("id", id))
	return nil
}

// AddObject validates obj and appends it to the scene.
func (s *Store) AddObject(sceneID string, obj Object3D) (Object3D, error) {
	if err := obj.Validate(); err != nil {
		return Object3D{}, err
	}
	stored, err := copyObject(&obj)
	if err != nil {
		return Object3D{}, err
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.scenes[sceneID]
	if !ok {
		return Object3D{}, fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	for _, o := range sc.Objects {
		if o.ID == stored.ID {
			return Object3D{}, fmt.Errorf("%w: %s", ErrObjectExists, stored.ID)
		}
	}
	sc.Objects = append(sc.Objects, stored)
	sc.UpdatedAt = s.timestamp()
	return copyObject(&stored)
}

// RemoveObject deletes an object from a scene.
func (s *Store) RemoveObject(sceneID, objectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, ok := s.scenes[sceneID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSceneNotFound, sceneID)
	}
	for i, o := range sc.Objects {
		if o.ID == objectID {
			sc.Objects = append(sc.Objects[:i], sc.Objects[i+1:]...)
			sc.UpdatedAt = s.timestamp()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrObjectNotFound, objectID)
}

// FindObject searches every scene for objectID and returns the object with
// the id of the scene holding it.
func (s *Store) FindObject(objectID string) (Object3D, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sc, i := s.locate(objectID)
	if sc == nil {
		return Object3D{}, "", fmt.Errorf("%w: %s", ErrObjectNotFound, objectID)
	}
	obj, err := copyObject(&sc.Objects[i])
	return obj, sc.ID, err
}

// TransformObject applies t to the object wherever it is stored.
func (s *Store) TransformObject(objectID string, t Transform) (Object3D, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc, i := s.locate(objectID)
	if sc == nil {
		return Object3D{}, "", fmt.Errorf("%w: %s", ErrObjectNotFound, objectID)
	}
	t.apply(&sc.Objects[i])
	sc.UpdatedAt = s.timestamp()
	obj, err := copyObject(&sc.Objects[i])
	return obj, sc.ID, err
}

// locate must be called with mu held.
func (s *Store) locate(objectID string) (*Scene3D, int) {
	for _, id := range s.order {
		sc := s.scenes[id]
		for i := range sc.Objects {
			if sc.Objects[i].ID == objectID {
				return sc, i
			}
		}
	}
	return nil, -1
}
