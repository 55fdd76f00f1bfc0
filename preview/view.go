//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package preview

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jbeda/geom"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ezrec/spiralizer"
)

// View is the projection plane of a preview
type View int

const (
	ViewTop  = View(iota) // XY plane, seen from +Z
	ViewSide              // XZ plane, seen from -Y
)

func (v View) String() string {
	if v == ViewSide {
		return "side"
	}
	return "top"
}

func (v *View) Set(value string) (err error) {
	switch value {
	case "top":
		*v = ViewTop
	case "side":
		*v = ViewSide
	default:
		err = fmt.Errorf("view '%s' must be 'top' or 'side'", value)
	}

	return
}

func (v *View) Type() string {
	return "view"
}

func (v View) project(p mgl64.Vec3) geom.Coord {
	if v == ViewSide {
		return geom.Coord{X: p.X(), Y: p.Z()}
	}
	return geom.Coord{X: p.X(), Y: p.Y()}
}

// viewport maps projected millimeters to image pixels, with Y up
type viewport struct {
	bounds geom.Rect
	scale  float64
	margin float64
	width  int
	height int
}

func newViewport(view View, path *spiralizer.Path, width int, margin float64) (vp *viewport) {
	vp = &viewport{margin: margin}

	if len(path.Points) > 0 {
		first := view.project(path.Points[0].Position)
		vp.bounds = geom.Rect{Min: first, Max: first}
		for _, pt := range path.Points[1:] {
			vp.bounds.ExpandToContainCoord(view.project(pt.Position))
		}
	}

	extent := math.Max(vp.bounds.Width(), vp.bounds.Height())
	if extent <= 0 {
		extent = 1
	}

	inner := float64(width) - 2*margin
	if inner < 1 {
		inner = 1
	}
	vp.scale = inner / extent

	vp.width = width
	vp.height = int(math.Ceil(vp.bounds.Height()*vp.scale + 2*margin))
	if vp.height < 1 {
		vp.height = 1
	}

	return
}

func (vp *viewport) pixel(c geom.Coord) (x, y float64) {
	x = vp.margin + (c.X-vp.bounds.Min.X)*vp.scale
	y = float64(vp.height) - vp.margin - (c.Y-vp.bounds.Min.Y)*vp.scale
	return
}

// materialColor spreads material indices around the hue circle
func materialColor(material int) colorful.Color {
	hue := math.Mod(210+float64(material)*137.508, 360)
	return colorful.Hsv(hue, 0.75, 0.85)
}

func colorHex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}

// runs splits the path into maximal runs of one material. Adjacent runs
// share their boundary point so the drawing stays connected.
func runs(path *spiralizer.Path) (out [][]spiralizer.Point) {
	start := 0
	for n := 1; n <= len(path.Points); n++ {
		if n == len(path.Points) || path.Points[n].Material != path.Points[start].Material {
			end := n + 1
			if end > len(path.Points) {
				end = len(path.Points)
			}
			out = append(out, path.Points[start:end])
			start = n
		}
	}

	return
}
