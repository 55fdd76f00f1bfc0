//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// Polyline returns the path points joined by their edges
func Polyline(path *Path) (vertices []mgl64.Vec3, edges [][2]int) {
	vertices = lo.Map(path.Points, func(pt Point, _ int) mgl64.Vec3 { return pt.Position })
	edges = path.Edges()

	return
}

// Ribbon extrudes the path into a vertical strip. Each point contributes
// a top vertex (index 2n) and one extrusion height below it (index 2n+1),
// and each consecutive pair a quad.
func Ribbon(path *Path) (vertices []mgl64.Vec3, quads [][4]int) {
	vertices = make([]mgl64.Vec3, 0, len(path.Points)*2)
	for _, pt := range path.Points {
		vertices = append(vertices, pt.Position, pt.Position.Sub(mgl64.Vec3{0, 0, pt.Height}))
	}

	for _, e := range path.Edges() {
		a, b := e[0]*2, e[1]*2
		quads = append(quads, [4]int{a, a + 1, b + 1, b})
	}

	return
}

// CurvePoint is a centerline point with a sweep radius
type CurvePoint struct {
	Position mgl64.Vec3
	Radius   float64
}

// Curve returns the path as a centerline, with a radius of half the
// extrusion height at each point.
func Curve(path *Path) (curve []CurvePoint) {
	curve = lo.Map(path.Points, func(pt Point, _ int) CurvePoint {
		return CurvePoint{Position: pt.Position, Radius: pt.Height / 2}
	})

	return
}
