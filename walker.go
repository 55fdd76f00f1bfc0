//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// NoEdge marks a cursor that has no incoming edge
const NoEdge = -1

// Cursor is the walker position. Edge is the edge last traversed, and
// points at Vertex; the vertex lags one step behind the edge.
type Cursor struct {
	Edge   int
	Vertex int
}

// Contours is the per-layer edge graph of a mesh. Only edges joining two
// vertices of the same layer are contour edges.
type Contours struct {
	mesh  *Mesh
	links [][]int
}

func NewContours(mesh *Mesh) (c *Contours) {
	c = &Contours{
		mesh:  mesh,
		links: make([][]int, len(mesh.Vertices)),
	}

	for n, e := range mesh.Edges {
		if mesh.Vertices[e.A].Layer != mesh.Vertices[e.B].Layer {
			continue
		}
		c.links[e.A] = append(c.links[e.A], n)
		c.links[e.B] = append(c.links[e.B], n)
	}

	return
}

// Degree is the number of contour edges at vertex v
func (c *Contours) Degree(v int) int {
	return len(c.links[v])
}

// Step advances the cursor one edge along the contour. If the vertex does
// not have exactly two edges the contour is treated as terminated, and
// the cursor is returned unchanged with ok false.
func (c *Contours) Step(at Cursor) (next Cursor, ok bool) {
	edges := c.links[at.Vertex]
	if len(edges) != 2 {
		next = Cursor{Edge: NoEdge, Vertex: at.Vertex}
		return
	}

	edge := edges[0]
	if edge == at.Edge {
		edge = edges[1]
	}

	next = Cursor{
		Edge:   edge,
		Vertex: c.mesh.Edges[edge].Other(at.Vertex),
	}
	ok = true

	return
}

// signedArea walks the cycle from v leaving along edge, and returns
// twice its signed XY area (positive when counter-clockwise seen from +Z).
func (c *Contours) signedArea(v int, edge int) (area float64, ok bool) {
	at := Cursor{Edge: edge, Vertex: c.mesh.Edges[edge].Other(v)}
	prev := c.mesh.Vertices[v].Position

	for steps := 0; steps <= len(c.mesh.Vertices); steps++ {
		pos := c.mesh.Vertices[at.Vertex].Position
		area += prev.X()*pos.Y() - pos.X()*prev.Y()
		prev = pos

		if at.Vertex == v {
			ok = true
			return
		}

		at, ok = c.Step(at)
		if !ok {
			return
		}
	}

	ok = false
	return
}

// Seed chooses the starting cursor at v so that stepping walks the contour
// in the requested rotation. With fewer than two edges the direction is
// undefined, and ok is false.
func (c *Contours) Seed(v int, rotation Rotation) (at Cursor, ok bool) {
	at = Cursor{Edge: NoEdge, Vertex: v}

	edges := c.links[v]
	if len(edges) < 2 {
		return
	}

	area, ok := c.signedArea(v, edges[0])
	if !ok {
		return
	}

	// Leaving along edges[0] gives the sign of area; the cursor holds the
	// other edge as if it had just been traversed.
	clockwise := area < 0
	if clockwise == (rotation == RotationCW) {
		at.Edge = edges[1]
	} else {
		at.Edge = edges[0]
	}

	return
}

// Continue picks the cursor at a new layer's start vertex v that keeps the
// rotation established by the walk so far. The edge whose far endpoint is
// closer to the last emitted point is taken as the one just traversed, so
// the walk proceeds along the other.
func (c *Contours) Continue(last mgl64.Vec3, v int) (at Cursor) {
	at = Cursor{Edge: NoEdge, Vertex: v}

	edges := c.links[v]
	if len(edges) < 2 {
		return
	}

	to0 := c.mesh.Vertices[c.mesh.Edges[edges[0]].Other(v)].Position.Sub(last).Len()
	to1 := c.mesh.Vertices[c.mesh.Edges[edges[1]].Other(v)].Position.Sub(last).Len()

	if to0 < to1 {
		at.Edge = edges[0]
	} else {
		at.Edge = edges[1]
	}

	return
}

// CheckContours verifies that every vertex of the layers has exactly two
// contour edges.
func CheckContours(mesh *Mesh) (err error) {
	c := NewContours(mesh)

	for v := range mesh.Vertices {
		degree := c.Degree(v)
		if degree != 2 {
			err = &StructuralError{
				Layer:  mesh.Vertices[v].Layer,
				Vertex: v,
				Reason: fmt.Sprintf("contour degree %d, expected 2", degree),
			}
			return
		}
	}

	return
}
