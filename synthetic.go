//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tube describes a synthetic stack of closed polygonal rings
type Tube struct {
	Layers      int     // Number of rings
	Sides       int     // Vertices per ring
	Radius      float64 // Bottom ring radius, in mm
	TopRadius   float64 // Top ring radius, in mm (0 for a straight tube)
	LayerHeight float64 // Ring spacing, in mm
	Twist       float64 // Rotation of each ring relative to the one below, in degrees
}

// DefaultTube is a 20mm tall, 20mm diameter cylinder
func DefaultTube() Tube {
	return Tube{
		Layers:      100,
		Sides:       64,
		Radius:      10.0,
		LayerHeight: 0.2,
	}
}

// NewTube builds the contour mesh of a tube. Ring vertices run
// counter-clockwise, and layer n is at Z = n * LayerHeight.
func NewTube(tube Tube) (mesh *Mesh, err error) {
	switch {
	case tube.Layers < 0:
		err = fmt.Errorf("tube: layer count %d is negative", tube.Layers)
	case tube.Sides < 3:
		err = fmt.Errorf("tube: a ring needs at least 3 sides, not %d", tube.Sides)
	case tube.Radius <= 0:
		err = fmt.Errorf("tube: radius %v must be positive", tube.Radius)
	case tube.LayerHeight <= 0:
		err = fmt.Errorf("tube: layer height %v must be positive", tube.LayerHeight)
	}
	if err != nil {
		return
	}

	topRadius := tube.TopRadius
	if topRadius <= 0 {
		topRadius = tube.Radius
	}

	mesh = &Mesh{
		Vertices: make([]Vertex, 0, tube.Layers*tube.Sides),
		Edges:    make([]Edge, 0, tube.Layers*tube.Sides),
	}

	for layer := 0; layer < tube.Layers; layer++ {
		t := 0.0
		if tube.Layers > 1 {
			t = float64(layer) / float64(tube.Layers-1)
		}
		radius := tube.Radius + t*(topRadius-tube.Radius)
		twist := mgl64.DegToRad(tube.Twist * float64(layer))
		z := float64(layer) * tube.LayerHeight

		base := len(mesh.Vertices)
		for side := 0; side < tube.Sides; side++ {
			theta := twist + 2*math.Pi*float64(side)/float64(tube.Sides)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: mgl64.Vec3{radius * math.Cos(theta), radius * math.Sin(theta), z},
				Layer:    layer,
			})
			mesh.Edges = append(mesh.Edges, Edge{
				A: base + side,
				B: base + (side+1)%tube.Sides,
			})
		}
	}

	return
}
