package scene

import (
	"fmt"

	"github.com/Faultbox/serverworld/internal/mesh"
)

// DemoSceneID is the id of the scene installed by SeedDemo.
const DemoSceneID = "demo-scene"

// DemoScene builds the starter scene: a cube and a sphere either side of
// the origin.
func DemoScene() (Scene3D, error) {
	cube, err := mesh.Cube(2)
	if err != nil {
		return Scene3D{}, err
	}
	sphere, err := mesh.Sphere(1.5, 16, 16)
	if err != nil {
		return Scene3D{}, err
	}

	sc := NewScene(DemoSceneID, "Demo Scene")
	sc.Camera.Position = Vector3{Z: 10}

	c := NewObject3D("Demo Cube", cube)
	c.ID = "demo-cube"
	c.Position = Vector3{X: -3}
	c.Material["color"] = []float32{1, 0.5, 0.2, 1}

	s := NewObject3D("Demo Sphere", sphere)
	s.ID = "demo-sphere"
	s.Position = Vector3{X: 3}
	s.Material["color"] = []float32{0.2, 0.6, 1, 1}

	sc.Objects = append(sc.Objects, c, s)
	return sc, nil
}

// SeedDemo installs the demo scene unless one with its id exists.
func (s *Store) SeedDemo() error {
	if _, err := s.Get(DemoSceneID); err == nil {
		return nil
	}
	sc, err := DemoScene()
	if err != nil {
		return fmt.Errorf("build demo scene: %w", err)
	}
	_, err = s.Create(sc)
	return err
}

// LibrarySceneID holds objects created without a target scene.
const LibrarySceneID = "library"
