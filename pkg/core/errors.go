package core

import "fmt"

// ConstructionError reports malformed or degenerate scene input detected at
// build time: NaN or infinite coordinates, zero-radius spheres, nil
// materials, collinear triangle vertices. Scene validation surfaces these
// before any rendering work starts.
type ConstructionError struct {
	Component string // which shape or material was being built
	Detail    string // what was wrong with it
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing %s: %s", e.Component, e.Detail)
}

// NewConstructionError builds a ConstructionError with a formatted detail message
func NewConstructionError(component, format string, args ...interface{}) *ConstructionError {
	return &ConstructionError{
		Component: component,
		Detail:    fmt.Sprintf(format, args...),
	}
}
