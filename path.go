//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Point is one output point of the spiral, in motion order
type Point struct {
	Index    int // Sequence index, zero based
	Position mgl64.Vec3
	Height   float64 // Extrusion height in mm
	Width    float64 // Extrusion width in mm
	Material int     // Material index
	Blend    float64 // Feed rate blend factor
	Layer    int     // Layer walked when the point was emitted
	State    State   // Print phase of the turn
}

// Path is the complete spiral toolpath
type Path struct {
	Properties Properties
	Points     []Point
	Warnings   []ConfigurationWarning // Requests that could not be honoured
}

func (path *Path) append(pt Point) {
	pt.Index = len(path.Points)
	path.Points = append(path.Points, pt)
}

// Edges connects each point to its successor
func (path *Path) Edges() (edges [][2]int) {
	if len(path.Points) < 2 {
		return
	}

	edges = make([][2]int, len(path.Points)-1)
	for n := range edges {
		edges[n] = [2]int{n, n + 1}
	}

	return
}

// Length is the total travel along the path, in mm
func (path *Path) Length() (length float64) {
	for n := 1; n < len(path.Points); n++ {
		length += path.Points[n].Position.Sub(path.Points[n-1].Position).Len()
	}

	return
}

// Materials is the number of distinct material indices on the path
func (path *Path) Materials() (count int) {
	seen := map[int]bool{}
	for _, pt := range path.Points {
		seen[pt.Material] = true
	}

	count = len(seen)
	return
}
