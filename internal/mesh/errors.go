package mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParams is wrapped by every generator parameter error.
	ErrInvalidParams = errors.New("invalid mesh parameters")
	// ErrInvalidMesh reports a buffer set that breaks the Mesh invariants.
	ErrInvalidMesh = errors.New("invalid mesh")
)

// ParamError reports one rejected generator parameter.
type ParamError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("parameter %s=%v: %s", e.Param, e.Value, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParams
}

func requirePositive(name string, v int) error {
	if v < 1 {
		return &ParamError{Param: name, Value: v, Reason: "must be at least 1"}
	}
	return nil
}

func requireNonNegative(name string, v float32) error {
	if v < 0 {
		return &ParamError{Param: name, Value: v, Reason: "must not be negative"}
	}
	return nil
}
