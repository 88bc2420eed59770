// Package primitives maps primitive type names onto the mesh generators.
package primitives

import (
	"errors"
	"fmt"
)

// Kind identifies a procedural primitive.
type Kind uint8

const (
	Cube Kind = iota
	Sphere
	Plane
	Torus
	Icosphere
	Terrain
	Particles

	kindCount
)

var kindNames = [kindCount]string{
	Cube:      "cube",
	Sphere:    "sphere",
	Plane:     "plane",
	Torus:     "torus",
	Icosphere: "icosphere",
	Terrain:   "terrain",
	Particles: "particles",
}

// Kinds returns every primitive kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ErrUnknownKind is wrapped by UnknownKindError.
var ErrUnknownKind = errors.New("unknown primitive type")

// UnknownKindError names a primitive type string that matched no kind.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("Unknown primitive type: %s", e.Name)
}

func (e *UnknownKindError) Unwrap() error {
	return ErrUnknownKind
}

// ParseKind resolves a wire name such as "sphere".
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, &UnknownKindError{Name: name}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("invalid primitive kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
