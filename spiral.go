//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

// spiral is the state of one spiralization run
type spiral struct {
	mesh     *Mesh
	prop     *Properties
	layers   *LayerIndex
	nearest  *Correspondence
	contours *Contours
	path     *Path
	material int
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func (sp *spiral) vertexHeight(v *Vertex) float64 {
	if v.Attributes.Height > 0 {
		return v.Attributes.Height
	}
	return sp.prop.Extrusion.Height
}

func (sp *spiral) vertexWidth(v *Vertex) float64 {
	if v.Attributes.Width > 0 {
		return v.Attributes.Width
	}
	return sp.prop.Extrusion.Width
}

// walk emits one turn around the contour of layer, starting at cursor.
// A vertex without a correspondence in the next layer ends the turn early.
// A tapering turn closes back on its start vertex at zero height.
func (sp *spiral) walk(layer int, start Cursor, tr Transition) (err error) {
	count := len(sp.layers.Vertices(layer))
	candidates := sp.layers.Candidates(layer + 1)

	at := start
	for n := 0; n < count; n++ {
		alpha := float64(n) / float64(count)
		v := &sp.mesh.Vertices[at.Vertex]

		var upper int
		var upperPos mgl64.Vec3
		upper, upperPos, err = sp.nearest.Nearest(v.Position, candidates)
		if err != nil {
			return
		}

		factor := tr.Ramp.Factor(alpha)
		sp.path.append(Point{
			Position: lerp(v.Position, upperPos, factor),
			Height:   tr.Thickness.Height(alpha, sp.vertexHeight(v)),
			Width:    sp.vertexWidth(v),
			Material: sp.material,
			Blend:    v.Attributes.Blend + factor*(sp.mesh.Vertices[upper].Attributes.Blend-v.Attributes.Blend),
			Layer:    layer,
			State:    tr.State,
		})

		if n == count-1 {
			break
		}

		var ok bool
		at, ok = sp.contours.Step(at)
		if !ok {
			err = &StructuralError{
				Layer:  layer,
				Vertex: at.Vertex,
				Reason: fmt.Sprintf("contour degree %d, expected 2", sp.contours.Degree(at.Vertex)),
			}
			return
		}
	}

	if tr.Thickness == ThicknessDown && count > 0 {
		v := &sp.mesh.Vertices[start.Vertex]
		sp.path.append(Point{
			Position: v.Position,
			Height:   tr.Thickness.Height(1, sp.vertexHeight(v)),
			Width:    sp.vertexWidth(v),
			Material: sp.material,
			Blend:    v.Attributes.Blend,
			Layer:    layer,
			State:    tr.State,
		})
	}

	return
}

// WalkTurn emits a single turn around the contour of layer, rising
// towards layer+1 by the given ramp and thickness rules. It is the inner
// loop of Spiralize.
func WalkTurn(mesh *Mesh, prop Properties, layer int, ramp RampMode, thickness ThicknessMode) (path *Path, err error) {
	sp := newSpiral(mesh, &prop)

	verts := sp.layers.Vertices(layer)
	if len(verts) == 0 {
		return sp.path, nil
	}

	start, ok := sp.contours.Seed(verts[0], prop.Rotation)
	if !ok {
		start = Cursor{Edge: NoEdge, Vertex: verts[0]}
	}

	err = sp.walk(layer, start, Transition{State: stateSpiral, Ramp: ramp, Thickness: thickness})
	if errors.Is(err, ErrEndOfData) {
		err = nil
	}
	if err != nil {
		return
	}

	path = sp.path
	return
}

func newSpiral(mesh *Mesh, prop *Properties) (sp *spiral) {
	sp = &spiral{
		mesh:     mesh,
		prop:     prop,
		layers:   NewLayerIndex(mesh),
		nearest:  NewCorrespondence(mesh),
		contours: NewContours(mesh),
		path:     &Path{Properties: *prop},
	}

	return
}

// Spiralize converts the layer tagged contour mesh into one continuous
// spiral path. Cancelling ctx aborts between layers and discards the path.
func Spiralize(ctx context.Context, mesh *Mesh, prop Properties) (path *Path, err error) {
	err = prop.Validate()
	if err != nil {
		return
	}

	err = mesh.Validate()
	if err != nil {
		return
	}

	sp := newSpiral(mesh, &prop)
	layers := sp.layers

	first := layers.First()
	total := layers.Count()
	last := first + total - 2

	prog := defaultProgress
	prog.Begin(total)
	defer prog.End()

	verts := layers.Vertices(first)
	if len(verts) == 0 {
		path = sp.path
		return
	}

	start := verts[0]
	sp.material = mesh.Vertices[start].Attributes.Material

	cursor, ok := sp.contours.Seed(start, prop.Rotation)
	if !ok {
		cursor = Cursor{Edge: NoEdge, Vertex: start}
	}

	changed := map[int]bool{}

	var state State
	layer := first
	delta := 0
	turn := 0
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		if len(layers.Vertices(layer)) == 0 {
			if layer > layers.Max() {
				break
			}
			layer++
			continue
		}

		var tr Transition
		tr, err = NextState(Turn{
			Index:          turn,
			State:          state,
			Layer:          layer,
			Delta:          delta,
			FilamentChange: prop.IsFilamentChange(layer),
			Last:           last,
		})
		if err != nil {
			return
		}

		if tr.Terminate {
			break
		}

		sp.material += tr.Material
		if tr.State == stateChangeDown {
			changed[layer] = true
		}

		logger.Debugf("turn %d: layer %d, %v, %d vertices", turn, layer, tr.State, len(layers.Vertices(layer)))

		err = sp.walk(layer, cursor, tr)
		if errors.Is(err, ErrEndOfData) {
			err = nil
		}
		if err != nil {
			return
		}

		if tr.Delta > 0 {
			// Anchor the next turn above this turn's start vertex, so the
			// seam does not drift around the contour.
			var next int
			next, _, err = sp.nearest.Nearest(mesh.Vertices[start].Position, layers.Candidates(layer+tr.Delta))
			if errors.Is(err, ErrEndOfData) {
				err = nil
				break
			}
			if err != nil {
				return
			}

			lastPos := mesh.Vertices[start].Position
			if n := len(sp.path.Points); n > 0 {
				lastPos = sp.path.Points[n-1].Position
			}

			start = next
			cursor = sp.contours.Continue(lastPos, start)
		}

		layer += tr.Delta
		delta = tr.Delta
		state = tr.State
		turn++

		prog.Update(layer - first)
	}

	// Changes on layers outside the spiral region, or right after another
	// change, have no turn to taper into.
	ignored := lo.Filter(prop.FilamentChanges, func(layer int, _ int) bool { return !changed[layer] })
	for _, layer := range ignored {
		warning := ConfigurationWarning(fmt.Sprintf("filament change at layer %d ignored, no steady spiral turn to taper from", layer))
		logger.Warnf("%v", warning)
		sp.path.Warnings = append(sp.path.Warnings, warning)
	}

	path = sp.path

	logger.Infof("spiral: %d points, %d materials, %.1f mm", len(path.Points), path.Materials(), path.Length())

	return
}
