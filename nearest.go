//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"github.com/dhconnelly/rtreego"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	rtreeMinChildren = 8
	rtreeMaxChildren = 32
	pointTolerance   = 1e-9
)

type vertexEntry struct {
	id     int
	pos    mgl64.Vec3
	bounds rtreego.Rect
}

func (entry *vertexEntry) Bounds() rtreego.Rect {
	return entry.bounds
}

// Correspondence is a static nearest neighbour index over all mesh vertices
type Correspondence struct {
	tree *rtreego.Rtree
}

func toPoint(v mgl64.Vec3) rtreego.Point {
	return rtreego.Point{v.X(), v.Y(), v.Z()}
}

// NewCorrespondence indexes every vertex of the mesh. Insertion follows
// vertex order so that queries are reproducible for identical input.
func NewCorrespondence(mesh *Mesh) (c *Correspondence) {
	c = &Correspondence{
		tree: rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren),
	}

	for id, v := range mesh.Vertices {
		c.tree.Insert(&vertexEntry{
			id:     id,
			pos:    v.Position,
			bounds: toPoint(v.Position).ToRect(pointTolerance),
		})
	}

	return
}

// Nearest finds the closest vertex to p among those accepted by the
// candidate filter. It returns ErrEndOfData when no candidate exists.
func (c *Correspondence) Nearest(p mgl64.Vec3, accept func(id int) bool) (id int, pos mgl64.Vec3, err error) {
	filter := func(results []rtreego.Spatial, object rtreego.Spatial) (refuse, abort bool) {
		refuse = !accept(object.(*vertexEntry).id)
		return
	}

	found := c.tree.NearestNeighbors(1, toPoint(p), filter)
	if len(found) == 0 || found[0] == nil {
		err = ErrEndOfData
		return
	}

	entry := found[0].(*vertexEntry)
	id = entry.id
	pos = entry.pos

	return
}

// Size is the number of indexed vertices
func (c *Correspondence) Size() int {
	return c.tree.Size()
}
