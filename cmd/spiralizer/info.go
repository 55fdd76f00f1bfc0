//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
	"github.com/ezrec/spiralizer/gcode"
)

type InfoCommand struct {
	*pflag.FlagSet

	SizeSummary bool
	LayerDetail bool
	PathSummary bool

	out io.Writer
}

func NewInfoCommand() (info *InfoCommand) {
	flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)

	info = &InfoCommand{
		FlagSet: flagSet,
		out:     os.Stdout,
	}

	info.SetInterspersed(false)
	info.BoolVarP(&info.SizeSummary, "size", "s", true, "Show size summary")
	info.BoolVarP(&info.LayerDetail, "layer", "l", false, "Show layer detail")
	info.BoolVarP(&info.PathSummary, "path", "p", false, "Show summary of the spiral path")

	return
}

func (info *InfoCommand) Filter(ctx context.Context, job *Job) (err error) {
	mesh := job.Mesh
	layers := spiralizer.NewLayerIndex(mesh)

	if info.SizeSummary {
		min, max := mesh.Bounds()
		size := max.Sub(min)
		fmt.Fprintf(info.out, "Layers: %v (%v contiguous from %v), %v vertices, %v edges\n",
			layers.Max()+1, layers.Count(), layers.First(), len(mesh.Vertices), len(mesh.Edges))
		fmt.Fprintf(info.out, "Size: %.2f x %.2f x %.2f mm\n", size.X(), size.Y(), size.Z())
	}

	if info.LayerDetail {
		for layer := 0; layer <= layers.Max(); layer++ {
			verts := layers.Vertices(layer)
			z := lo.SumBy(verts, func(id int) float64 { return mesh.Vertices[id].Position.Z() })
			if len(verts) > 0 {
				z /= float64(len(verts))
			}
			fmt.Fprintf(info.out, "%d: @%.3f %d vertices\n", layer, z, len(verts))
		}
	}

	if info.PathSummary {
		var path *spiralizer.Path
		path, err = job.Path(ctx)
		if err != nil {
			return
		}

		info.printPath(path)
	}

	return
}

func (info *InfoCommand) printPath(path *spiralizer.Path) {
	fmt.Fprintf(info.out, "Path: %d points, %.1f mm, %d materials\n",
		len(path.Points), path.Length(), path.Materials())

	filament := 0.0
	for n := 1; n < len(path.Points); n++ {
		pt := &path.Points[n]
		length := pt.Position.Sub(path.Points[n-1].Position).Len()
		filament += gcode.Extruded(length, pt.Height, pt.Width)
	}
	fmt.Fprintf(info.out, "Filament: %.1f mm\n", filament)

	phases := lo.CountValuesBy(path.Points, func(pt spiralizer.Point) string { return pt.State.String() })
	keys := lo.Keys(phases)
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(info.out, "%v: %v points\n", key, phases[key])
	}
}
