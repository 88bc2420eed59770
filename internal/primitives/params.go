package primitives

import (
	"math"

	"github.com/Faultbox/serverworld/internal/mesh"
)

// Params is a decoded JSON parameter object. Missing keys fall back to the
// generator defaults.
type Params map[string]any

// Float returns the named number, or def when absent.
func (p Params) Float(name string, def float32) (float32, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &mesh.ParamError{Param: name, Value: v, Reason: "must be a number"}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxFloat32 {
		return 0, &mesh.ParamError{Param: name, Value: v, Reason: "must be a finite float32"}
	}
	return float32(f), nil
}

// Int returns the named integer, or def when absent. Integral floats such
// as 16.0 are accepted since JSON does not distinguish them.
func (p Params) Int(name string, def int) (int, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, &mesh.ParamError{Param: name, Value: v, Reason: "must be an integer"}
	}
	return int(f), nil
}

// Range returns a [min, max] pair given as a two-element array.
func (p Params) Range(name string, def [2]float32) ([2]float32, error) {
	v, ok := p[name]
	if !ok || v == nil {
		return def, nil
	}
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []float64:
		items = []any{}
		for _, f := range t {
			items = append(items, f)
		}
	case [2]float32:
		return t, nil
	}
	if len(items) != 2 {
		return def, &mesh.ParamError{Param: name, Value: v, Reason: "must be a [min, max] pair"}
	}
	var out [2]float32
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxFloat32 {
			return def, &mesh.ParamError{Param: name, Value: v, Reason: "must be a [min, max] pair"}
		}
		out[i] = float32(f)
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	default:
		return 0, false
	}
}
