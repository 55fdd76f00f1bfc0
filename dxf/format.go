//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package dxf

import (
	"io"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/rpaloschi/dxf-go/document"
	"github.com/rpaloschi/dxf-go/entities"
	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

const defaultTolerance = 0.001

type Format struct {
	*pflag.FlagSet

	Tolerance float64
}

func NewFormatter(suffix string) (df *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	df = &Format{
		FlagSet: flagSet,
	}

	df.Float64VarP(&df.Tolerance, "tolerance", "t", defaultTolerance, "Z distance, in mm, under which two contours share a layer")
	df.SetInterspersed(false)

	return
}

// Ring is one closed contour
type Ring []mgl64.Vec3

func (ring Ring) meanZ() (z float64) {
	for _, v := range ring {
		z += v.Z()
	}

	z /= float64(len(ring))
	return
}

// closed drops a repeated closing vertex
func (ring Ring) closed() Ring {
	if len(ring) > 1 && ring[0].ApproxEqual(ring[len(ring)-1]) {
		return ring[:len(ring)-1]
	}

	return ring
}

// RingsToMesh builds a layer tagged mesh from closed contours. Rings are
// ordered by their mean Z, and rings within tolerance of the previous
// layer's height share its layer index.
func RingsToMesh(rings []Ring, tolerance float64) (mesh *spiralizer.Mesh) {
	rings = lo.Map(rings, func(ring Ring, _ int) Ring { return ring.closed() })
	rings = lo.Filter(rings, func(ring Ring, _ int) bool { return len(ring) >= 3 })

	sort.SliceStable(rings, func(i, j int) bool { return rings[i].meanZ() < rings[j].meanZ() })

	mesh = &spiralizer.Mesh{}

	layer := -1
	layerZ := math.Inf(-1)
	for _, ring := range rings {
		z := ring.meanZ()
		if z-layerZ > tolerance {
			layer++
			layerZ = z
		}

		base := len(mesh.Vertices)
		for n, v := range ring {
			mesh.Vertices = append(mesh.Vertices, spiralizer.Vertex{
				Position: v,
				Layer:    layer,
			})
			mesh.Edges = append(mesh.Edges, spiralizer.Edge{
				A: base + n,
				B: base + (n+1)%len(ring),
			})
		}
	}

	return
}

func (df *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	doc, err := document.DxfDocumentFromStream(io.NewSectionReader(reader, 0, filesize))
	if err != nil {
		err = errors.Wrap(err, "dxf")
		return
	}

	rings := []Ring{}
	skipped := 0
	for _, entity := range doc.Entities.Entities {
		polyline, ok := entity.(*entities.Polyline)
		if !ok {
			skipped++
			continue
		}

		ring := make(Ring, len(polyline.Vertices))
		for n, v := range polyline.Vertices {
			ring[n] = mgl64.Vec3{v.Location.X, v.Location.Y, v.Location.Z}
		}
		rings = append(rings, ring)
	}

	if skipped > 0 {
		spiralizer.Logger().Warnf("dxf: %d non-polyline entities ignored", skipped)
	}

	mesh = RingsToMesh(rings, df.Tolerance)

	return
}

func (df *Format) Encode(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	err = spiralizer.ErrUnsupported("dxf encode")
	return
}
