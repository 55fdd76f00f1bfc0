//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"errors"
	"fmt"
)

// ErrEndOfData marks a correspondence query that found no candidate in
// the next layer. It ends the current loop level and is never returned
// from Spiralize.
var ErrEndOfData = errors.New("no corresponding vertex in next layer")

// StructuralError is a fatal violation of the contour or phase invariants
type StructuralError struct {
	Layer  int    // Layer index being walked
	Vertex int    // Offending vertex, or -1
	Reason string // Condition that was violated
}

func (e *StructuralError) Error() string {
	if e.Vertex < 0 {
		return fmt.Sprintf("layer %d: %s", e.Layer, e.Reason)
	}

	return fmt.Sprintf("layer %d: vertex %d: %s", e.Layer, e.Vertex, e.Reason)
}

// ConfigurationWarning is a recoverable configuration problem, such as a
// template block that does not exist.
type ConfigurationWarning string

func (w ConfigurationWarning) Error() string {
	return string(w)
}
