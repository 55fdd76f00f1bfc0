//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"github.com/samber/lo"
)

// LayerIndex groups mesh vertices by their layer index
type LayerIndex struct {
	layers map[int][]int
	of     []int
	max    int
	first  int
	count  int
}

// NewLayerIndex groups the mesh vertices in one pass.
func NewLayerIndex(mesh *Mesh) (li *LayerIndex) {
	ids := lo.Range(len(mesh.Vertices))

	li = &LayerIndex{
		layers: lo.GroupBy(ids, func(id int) int { return mesh.Vertices[id].Layer }),
		of:     lo.Map(mesh.Vertices, func(v Vertex, _ int) int { return v.Layer }),
		max:    -1,
	}

	for layer := range li.layers {
		if layer > li.max {
			li.max = layer
		}
	}

	// Skip forward over a gap below the first contour, then count
	// upwards until the first empty layer.
	li.first = 0
	for li.first <= li.max && len(li.layers[li.first]) == 0 {
		li.first++
	}

	for layer := li.first; layer <= li.max && len(li.layers[layer]) > 0; layer++ {
		li.count++
	}

	// A slicer supplied total caps the walk, it cannot bridge a gap.
	if mesh.Layers > 0 {
		li.count = lo.Clamp(mesh.Layers-li.first, 0, li.count)
	}

	return
}

// Vertices returns the ids of all vertices in layer, in ascending id order
func (li *LayerIndex) Vertices(layer int) []int {
	return li.layers[layer]
}

// Contains reports whether vertex id is tagged with layer
func (li *LayerIndex) Contains(layer int, id int) bool {
	return id >= 0 && id < len(li.of) && li.of[id] == layer
}

// Candidates returns a correspondence filter restricted to layer
func (li *LayerIndex) Candidates(layer int) func(id int) bool {
	return func(id int) bool { return li.Contains(layer, id) }
}

// First is the lowest non-empty layer
func (li *LayerIndex) First() int {
	return li.first
}

// Count is the number of contiguous non-empty layers starting at First,
// limited by the mesh's slicer supplied layer total when it has one.
func (li *LayerIndex) Count() int {
	return li.count
}

// Max is the highest tagged layer, contiguous or not
func (li *LayerIndex) Max() int {
	return li.max
}
