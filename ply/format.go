//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package ply

import (
	"bufio"
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type Format struct {
	*pflag.FlagSet

	Ribbon bool
}

func NewFormatter(suffix string) (pf *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	pf = &Format{
		FlagSet: flagSet,
	}

	pf.BoolVarP(&pf.Ribbon, "ribbon", "r", false, "Write the path as a ribbon of quads instead of a polyline")
	pf.SetInterspersed(false)

	return
}

func float(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func writeVec3(writer *bufio.Writer, v mgl64.Vec3) {
	fmt.Fprintf(writer, "%s %s %s", float(v.X()), float(v.Y()), float(v.Z()))
}

func (pf *Format) encodePolyline(writer *bufio.Writer, path *spiralizer.Path) {
	edges := path.Edges()

	fmt.Fprintln(writer, "ply")
	fmt.Fprintln(writer, "format ascii 1.0")
	fmt.Fprintln(writer, "comment spiral toolpath")
	fmt.Fprintf(writer, "element vertex %d\n", len(path.Points))
	for _, prop := range []string{"float x", "float y", "float z", "float extrusion_height", "float extrusion_width", "int material", "float blend", "int layer"} {
		fmt.Fprintf(writer, "property %s\n", prop)
	}
	fmt.Fprintf(writer, "element edge %d\n", len(edges))
	fmt.Fprintln(writer, "property int vertex1")
	fmt.Fprintln(writer, "property int vertex2")
	fmt.Fprintln(writer, "end_header")

	for _, pt := range path.Points {
		writeVec3(writer, pt.Position)
		fmt.Fprintf(writer, " %s %s %d %s %d\n", float(pt.Height), float(pt.Width), pt.Material, float(pt.Blend), pt.Layer)
	}

	for _, e := range edges {
		fmt.Fprintf(writer, "%d %d\n", e[0], e[1])
	}
}

func (pf *Format) encodeRibbon(writer *bufio.Writer, path *spiralizer.Path) {
	vertices, quads := spiralizer.Ribbon(path)

	fmt.Fprintln(writer, "ply")
	fmt.Fprintln(writer, "format ascii 1.0")
	fmt.Fprintln(writer, "comment spiral toolpath ribbon")
	fmt.Fprintf(writer, "element vertex %d\n", len(vertices))
	fmt.Fprintln(writer, "property float x")
	fmt.Fprintln(writer, "property float y")
	fmt.Fprintln(writer, "property float z")
	fmt.Fprintf(writer, "element face %d\n", len(quads))
	fmt.Fprintln(writer, "property list uchar int vertex_indices")
	fmt.Fprintln(writer, "end_header")

	for _, v := range vertices {
		writeVec3(writer, v)
		fmt.Fprintln(writer)
	}

	for _, q := range quads {
		fmt.Fprintf(writer, "4 %d %d %d %d\n", q[0], q[1], q[2], q[3])
	}
}

func (pf *Format) Encode(output spiralizer.Writer, path *spiralizer.Path) (err error) {
	writer := bufio.NewWriter(output)

	if pf.Ribbon {
		pf.encodeRibbon(writer, path)
	} else {
		pf.encodePolyline(writer, path)
	}

	err = writer.Flush()
	return
}
