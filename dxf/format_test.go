//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package dxf

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/spiralizer"
)

func square(z float64, size float64) Ring {
	return Ring{{0, 0, z}, {size, 0, z}, {size, size, z}, {0, size, z}}
}

func TestRingsToMesh(t *testing.T) {
	closedSquare := append(square(0.2, 2), mgl64.Vec3{0, 0, 0.2})

	rings := []Ring{
		square(0.4, 1),
		closedSquare,
		square(0.0, 1),
		square(0.4004, 3),
		{{0, 0, 1}, {1, 1, 1}},
	}

	mesh := RingsToMesh(rings, defaultTolerance)
	require.NoError(t, mesh.Validate())

	// Degenerate ring dropped, closing vertex removed
	assert.Len(t, mesh.Vertices, 16)
	assert.Len(t, mesh.Edges, 16)

	layers := spiralizer.NewLayerIndex(mesh)
	assert.Equal(t, 0, layers.First())
	assert.Equal(t, 3, layers.Count())
	assert.Len(t, layers.Vertices(0), 4)
	assert.Len(t, layers.Vertices(1), 4)
	assert.Len(t, layers.Vertices(2), 8)

	assert.NoError(t, spiralizer.CheckContours(mesh))
}

func TestEncodeUnsupported(t *testing.T) {
	err := NewFormatter(".dxf").Encode(nil, &spiralizer.Path{})
	assert.Equal(t, spiralizer.ErrUnsupported("dxf encode"), err)
}
