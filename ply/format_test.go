//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package ply

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/spiralizer"
)

const testSquare = `ply
format ascii 1.0
comment two stacked squares
element vertex 8
property float x
property float y
property float z
property int slice_idx
property float blend
element edge 2
property int vertex1
property int vertex2
element face 1
property list uchar int vertex_indices
end_header
0 0 0 0 0
1 0 0 0 0
1 1 0 0 0
0 1 0 0 0.5
0 0 1 1 1
1 0 1 1 1
1 1 1 1 1
0 1 1 1 1
0 1
2 1
4 4 5 6 7
`

func decodeString(t *testing.T, text string) (mesh *spiralizer.Mesh, err error) {
	reader := strings.NewReader(text)
	mesh, err = NewFormatter(".ply").Decode(reader, int64(reader.Len()))
	return
}

func TestDecode(t *testing.T) {
	mesh, err := decodeString(t, testSquare)
	require.NoError(t, err)

	assert.Len(t, mesh.Vertices, 8)
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, mesh.Vertices[6].Position)
	assert.Equal(t, 1, mesh.Vertices[6].Layer)
	assert.Equal(t, 0.5, mesh.Vertices[3].Attributes.Blend)

	// Two from the edge element, four from the face
	assert.Len(t, mesh.Edges, 6)
	assert.Contains(t, mesh.Edges, spiralizer.Edge{A: 1, B: 2})
	assert.Contains(t, mesh.Edges, spiralizer.Edge{A: 4, B: 7})

	assert.NoError(t, mesh.Validate())
}

func TestDecodeErrors(t *testing.T) {
	table := map[string]string{
		"magic":    "plx\nend_header\n",
		"binary":   "ply\nformat binary_little_endian 1.0\nend_header\n",
		"nolayer":  "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n",
		"short":    "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nproperty int layer\nend_header\n0 0 0 0\n",
		"noheader": "ply\nformat ascii 1.0\n",
		"number":   "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nproperty int layer\nend_header\n0 zero 0 0\n",
	}

	for key, text := range table {
		_, err := decodeString(t, text)
		assert.Error(t, err, key)
	}
}

func TestDecodeLayerValues(t *testing.T) {
	const head = "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nproperty float slice_idx\nproperty float material\nend_header\n"

	table := map[string]string{
		"fraction": "0 0 0 1.5 0\n",
		"negative": "0 0 0 -1 0\n",
		"huge":     "0 0 0 1e12 0\n",
		"material": "0 0 0 1 0.25\n",
	}

	for key, values := range table {
		_, err := decodeString(t, head+values)
		var invalid ErrHeaderInvalid
		assert.ErrorAs(t, err, &invalid, key)
	}

	mesh, err := decodeString(t, head+"0 0 0 3.0 1\n")
	require.NoError(t, err)
	assert.Equal(t, 3, mesh.Vertices[0].Layer)
	assert.Equal(t, 1, mesh.Vertices[0].Attributes.Material)
}

func TestDecodeLayerTotal(t *testing.T) {
	text := strings.Replace(testSquare, "comment two stacked squares\n", "comment two stacked squares\nobj_info layers 2\n", 1)

	mesh, err := decodeString(t, text)
	require.NoError(t, err)
	assert.Equal(t, 2, mesh.Layers)

	text = strings.Replace(testSquare, "comment two stacked squares\n", "obj_info layers many\n", 1)
	_, err = decodeString(t, text)
	assert.Error(t, err)

	mesh, err = decodeString(t, testSquare)
	require.NoError(t, err)
	assert.Equal(t, 0, mesh.Layers)
}

func TestEncodeRoundTrip(t *testing.T) {
	mesh, err := spiralizer.NewTube(spiralizer.Tube{Layers: 6, Sides: 8, Radius: 3, LayerHeight: 0.5})
	require.NoError(t, err)

	path, err := spiralizer.Spiralize(context.Background(), mesh, spiralizer.DefaultProperties())
	require.NoError(t, err)

	buff := &bytes.Buffer{}
	require.NoError(t, NewFormatter(".ply").Encode(buff, path))

	// The polyline is itself a layer tagged mesh
	decoded, err := decodeString(t, buff.String())
	require.NoError(t, err)

	require.Len(t, decoded.Vertices, len(path.Points))
	assert.Len(t, decoded.Edges, len(path.Points)-1)
	for n, pt := range path.Points {
		assert.Equal(t, pt.Position, decoded.Vertices[n].Position, "point %d", n)
		assert.Equal(t, pt.Layer, decoded.Vertices[n].Layer, "point %d", n)
	}
}

func TestEncodeRibbon(t *testing.T) {
	path := &spiralizer.Path{
		Points: []spiralizer.Point{
			{Position: mgl64.Vec3{0, 0, 1}, Height: 0.5},
			{Position: mgl64.Vec3{1, 0, 1}, Height: 0.5},
			{Position: mgl64.Vec3{1, 1, 1}, Height: 0.5},
		},
	}

	pf := NewFormatter(".ply")
	require.NoError(t, pf.Parse([]string{"--ribbon"}))

	buff := &bytes.Buffer{}
	require.NoError(t, pf.Encode(buff, path))

	text := buff.String()
	assert.Contains(t, text, "element vertex 6\n")
	assert.Contains(t, text, "element face 2\n")
	assert.Contains(t, text, "\n0 0 0.5\n")
	assert.Contains(t, text, "\n4 0 1 3 2\n")
}
