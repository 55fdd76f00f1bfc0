//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package preview

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/pflag"
	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"

	"github.com/ezrec/spiralizer"
)

const defaultMargin = 8.0

type Format struct {
	*pflag.FlagSet

	suffix string
	View   View
	Width  int
	Stroke float64
}

func NewFormatter(suffix string) (pf *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	pf = &Format{
		FlagSet: flagSet,
		suffix:  suffix,
		View:    ViewTop,
	}

	pf.VarP(&pf.View, "view", "V", "Projection, 'top' or 'side'")
	pf.IntVarP(&pf.Width, "width", "w", 1024, "Image width, in pixels")
	pf.Float64VarP(&pf.Stroke, "stroke", "s", 1.0, "Line width, in pixels")
	pf.SetInterspersed(false)

	return
}

// Render draws the path onto a new image
func (pf *Format) Render(path *spiralizer.Path) (img *image.RGBA) {
	vp := newViewport(pf.View, path, pf.Width, defaultMargin)

	img = image.NewRGBA(image.Rect(0, 0, vp.width, vp.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)

	half := math.Max(pf.Stroke, 0.5) / 2
	raster := vector.NewRasterizer(vp.width, vp.height)

	for _, run := range runs(path) {
		if len(run) < 2 {
			continue
		}

		raster.Reset(vp.width, vp.height)
		for n := 1; n < len(run); n++ {
			ax, ay := vp.pixel(pf.View.project(run[n-1].Position))
			bx, by := vp.pixel(pf.View.project(run[n].Position))

			// Quad around the segment, offset along its left normal
			dir := mgl64.Vec2{bx - ax, by - ay}
			if dir.Len() == 0 {
				continue
			}
			normal := mgl64.Vec2{-dir.Y(), dir.X()}.Normalize().Mul(half)

			raster.MoveTo(float32(ax+normal.X()), float32(ay+normal.Y()))
			raster.LineTo(float32(bx+normal.X()), float32(by+normal.Y()))
			raster.LineTo(float32(bx-normal.X()), float32(by-normal.Y()))
			raster.LineTo(float32(ax-normal.X()), float32(ay-normal.Y()))
			raster.ClosePath()
		}

		src := image.NewUniform(materialColor(run[0].Material))
		raster.Draw(img, img.Bounds(), src, image.Point{})
	}

	return
}

func (pf *Format) encodeSVG(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	vp := newViewport(pf.View, path, pf.Width, defaultMargin)

	canvas := svg.New(writer)
	canvas.Start(vp.width, vp.height)
	canvas.Rect(0, 0, vp.width, vp.height, "fill:"+colorHex(colornames.White))

	for _, run := range runs(path) {
		xs := make([]int, len(run))
		ys := make([]int, len(run))
		for n, pt := range run {
			x, y := vp.pixel(pf.View.project(pt.Position))
			xs[n] = int(math.Round(x))
			ys[n] = int(math.Round(y))
		}

		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", materialColor(run[0].Material).Hex(), pf.Stroke)
		canvas.Polyline(xs, ys, style)
	}

	canvas.End()

	return
}

func (pf *Format) Encode(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	switch pf.suffix {
	case ".svg":
		err = pf.encodeSVG(writer, path)
	default:
		err = png.Encode(writer, pf.Render(path))
	}

	return
}

func (pf *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	err = spiralizer.ErrUnsupported("preview decode")
	return
}
