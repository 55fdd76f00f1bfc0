//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Per-vertex extrusion attributes, as tagged by the slicer
type Attributes struct {
	Height   float64 // Extrusion height override in mm (0 for default)
	Width    float64 // Extrusion width override in mm (0 for default)
	Material int     // Starting material index
	Blend    float64 // Feed rate blend factor, 0 (black) .. 1 (white)
}

// Vertex is a contour vertex of the sliced input mesh
type Vertex struct {
	Position   mgl64.Vec3
	Layer      int // Layer index, assigned by the slicer
	Attributes Attributes
}

// Edge is an unordered pair of vertex indices
type Edge struct {
	A, B int
}

// Other returns the endpoint of the edge that is not v
func (e Edge) Other(v int) int {
	if e.A == v {
		return e.B
	}
	return e.A
}

// Mesh is the layer tagged contour mesh produced by an external slicer.
// Each layer's vertices are expected to form one closed contour.
type Mesh struct {
	Vertices []Vertex
	Edges    []Edge
	Layers   int // Total layer count from the slicer, 0 when unknown
}

type ErrMeshInvalid string

func (e ErrMeshInvalid) Error() string {
	return fmt.Sprintf("mesh: %s", string(e))
}

// Validate checks the per-vertex records and edge endpoints once, at ingestion
func (mesh *Mesh) Validate() (err error) {
	if mesh.Layers < 0 {
		err = ErrMeshInvalid(fmt.Sprintf("negative layer count %d", mesh.Layers))
		return
	}

	for n, v := range mesh.Vertices {
		attr := &v.Attributes
		switch {
		case v.Layer < 0:
			err = ErrMeshInvalid(fmt.Sprintf("vertex %d: negative layer %d", n, v.Layer))
		case attr.Height < 0 || attr.Width < 0:
			err = ErrMeshInvalid(fmt.Sprintf("vertex %d: negative extrusion size", n))
		case attr.Material < 0:
			err = ErrMeshInvalid(fmt.Sprintf("vertex %d: negative material %d", n, attr.Material))
		case attr.Blend < 0 || attr.Blend > 1 || math.IsNaN(attr.Blend):
			err = ErrMeshInvalid(fmt.Sprintf("vertex %d: blend %v outside [0,1]", n, attr.Blend))
		}
		if err != nil {
			return
		}
	}

	for n, e := range mesh.Edges {
		if e.A < 0 || e.A >= len(mesh.Vertices) || e.B < 0 || e.B >= len(mesh.Vertices) {
			err = ErrMeshInvalid(fmt.Sprintf("edge %d: endpoint out of range", n))
			return
		}
		if e.A == e.B {
			err = ErrMeshInvalid(fmt.Sprintf("edge %d: loops on vertex %d", n, e.A))
			return
		}
	}

	return
}

// Bounds returns the axis aligned bounding box of all vertices
func (mesh *Mesh) Bounds() (min, max mgl64.Vec3) {
	if len(mesh.Vertices) == 0 {
		return
	}

	min = mesh.Vertices[0].Position
	max = min
	for _, v := range mesh.Vertices[1:] {
		for n := 0; n < 3; n++ {
			min[n] = math.Min(min[n], v.Position[n])
			max[n] = math.Max(max[n], v.Position[n])
		}
	}

	return
}

// Translate returns a copy of the mesh moved by delta
func (mesh *Mesh) Translate(delta mgl64.Vec3) (moved *Mesh) {
	moved = &Mesh{
		Vertices: make([]Vertex, len(mesh.Vertices)),
		Edges:    append([]Edge(nil), mesh.Edges...),
		Layers:   mesh.Layers,
	}

	for n, v := range mesh.Vertices {
		v.Position = v.Position.Add(delta)
		moved.Vertices[n] = v
	}

	return
}

// SelectLayers returns the sub-mesh of count layers starting at first,
// re-indexed so that first becomes layer 0. A negative count selects
// every layer from first upwards.
func (mesh *Mesh) SelectLayers(first, count int) (selected *Mesh) {
	selected = &Mesh{}

	if mesh.Layers > 0 {
		selected.Layers = mesh.Layers - first
		if count >= 0 && count < selected.Layers {
			selected.Layers = count
		}
		if selected.Layers <= 0 {
			// Nothing of the known layers is left, the count is unknown
			selected.Layers = 0
		}
	}

	inRange := func(layer int) bool {
		return layer >= first && (count < 0 || layer < first+count)
	}

	remap := make(map[int]int)
	for n, v := range mesh.Vertices {
		if !inRange(v.Layer) {
			continue
		}
		remap[n] = len(selected.Vertices)
		v.Layer -= first
		selected.Vertices = append(selected.Vertices, v)
	}

	for _, e := range mesh.Edges {
		a, okA := remap[e.A]
		b, okB := remap[e.B]
		if okA && okB {
			selected.Edges = append(selected.Edges, Edge{A: a, B: b})
		}
	}

	return
}
