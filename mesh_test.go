//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareStack is a stack of unit squares, one per layer, vertically aligned.
// Vertices run counter-clockwise seen from above.
func squareStack(layers int, height float64) (mesh *Mesh) {
	mesh = &Mesh{}
	corners := []mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	for layer := 0; layer < layers; layer++ {
		base := len(mesh.Vertices)
		for n, c := range corners {
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: c.Add(mgl64.Vec3{0, 0, float64(layer) * height}),
				Layer:    layer,
			})
			mesh.Edges = append(mesh.Edges, Edge{A: base + n, B: base + (n+1)%len(corners)})
		}
	}

	return
}

func TestMeshValidate(t *testing.T) {
	good := squareStack(2, 1)
	require.NoError(t, good.Validate())

	table := map[string]func(mesh *Mesh){
		"layer":    func(mesh *Mesh) { mesh.Vertices[0].Layer = -1 },
		"height":   func(mesh *Mesh) { mesh.Vertices[1].Attributes.Height = -0.1 },
		"width":    func(mesh *Mesh) { mesh.Vertices[1].Attributes.Width = -0.1 },
		"material": func(mesh *Mesh) { mesh.Vertices[2].Attributes.Material = -1 },
		"blend":    func(mesh *Mesh) { mesh.Vertices[3].Attributes.Blend = 1.5 },
		"range":    func(mesh *Mesh) { mesh.Edges[0].B = 99 },
		"loop":     func(mesh *Mesh) { mesh.Edges[0].B = mesh.Edges[0].A },
		"layers":   func(mesh *Mesh) { mesh.Layers = -2 },
	}

	for key, breakIt := range table {
		mesh := squareStack(2, 1)
		breakIt(mesh)

		err := mesh.Validate()
		var invalid ErrMeshInvalid
		assert.ErrorAs(t, err, &invalid, key)
	}
}

func TestMeshBoundsTranslate(t *testing.T) {
	mesh := squareStack(3, 0.5)

	min, max := mesh.Bounds()
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, min)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, max)

	moved := mesh.Translate(mgl64.Vec3{2, -1, 3})
	min, max = moved.Bounds()
	assert.Equal(t, mgl64.Vec3{2, -1, 3}, min)
	assert.Equal(t, mgl64.Vec3{3, 0, 4}, max)

	// Original untouched
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, mesh.Vertices[0].Position)

	empty := &Mesh{}
	min, max = empty.Bounds()
	assert.Equal(t, mgl64.Vec3{}, min)
	assert.Equal(t, mgl64.Vec3{}, max)
}

func TestMeshSelectLayers(t *testing.T) {
	mesh := squareStack(5, 1)

	selected := mesh.SelectLayers(1, 2)
	require.NoError(t, selected.Validate())
	assert.Len(t, selected.Vertices, 8)
	assert.Len(t, selected.Edges, 8)
	assert.Equal(t, 0, selected.Vertices[0].Layer)
	assert.Equal(t, 1.0, selected.Vertices[0].Position.Z())
	assert.Equal(t, 1, selected.Vertices[7].Layer)

	rest := mesh.SelectLayers(3, -1)
	assert.Len(t, rest.Vertices, 8)

	none := mesh.SelectLayers(9, -1)
	assert.Empty(t, none.Vertices)
	assert.Empty(t, none.Edges)

	assert.Equal(t, 0, selected.Layers)
	assert.Equal(t, 0, mesh.Translate(mgl64.Vec3{1, 0, 0}).Layers)
}

func TestMeshSelectLayersTotal(t *testing.T) {
	mesh := squareStack(5, 1)
	mesh.Layers = 5

	table := map[string]struct {
		First, Count int
		Layers       int
	}{
		"window": {1, 2, 2},
		"rest":   {3, -1, 2},
		"over":   {2, 10, 3},
		"beyond": {6, -1, 0},
	}

	for key, item := range table {
		assert.Equal(t, item.Layers, mesh.SelectLayers(item.First, item.Count).Layers, key)
	}

	assert.Equal(t, 5, mesh.Translate(mgl64.Vec3{0, 0, 1}).Layers)
}

func TestEdgeOther(t *testing.T) {
	e := Edge{A: 3, B: 7}
	assert.Equal(t, 7, e.Other(3))
	assert.Equal(t, 3, e.Other(7))
}
