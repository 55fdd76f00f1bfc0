//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

// TubeFormatter synthesizes a stack of ring contours
type TubeFormatter struct {
	*pflag.FlagSet

	Tube spiralizer.Tube
}

func NewTubeFormatter() (tf *TubeFormatter) {
	tf = &TubeFormatter{
		FlagSet: pflag.NewFlagSet("tube", pflag.ContinueOnError),
	}

	tube := spiralizer.DefaultTube()
	tf.IntVarP(&tf.Tube.Layers, "layers", "l", tube.Layers, "Number of layers")
	tf.IntVarP(&tf.Tube.Sides, "sides", "s", tube.Sides, "Vertices per layer contour")
	tf.Float64VarP(&tf.Tube.Radius, "radius", "r", tube.Radius, "Bottom radius, in mm")
	tf.Float64VarP(&tf.Tube.TopRadius, "top-radius", "R", tube.TopRadius, "Top radius, in mm (0 for a cylinder)")
	tf.Float64VarP(&tf.Tube.LayerHeight, "layer-height", "H", tube.LayerHeight, "Layer spacing, in mm")
	tf.Float64VarP(&tf.Tube.Twist, "twist", "t", tube.Twist, "Rotation between layers, in degrees")
	tf.SetInterspersed(false)

	return
}

func (tf *TubeFormatter) Decode(file spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	mesh, err = spiralizer.NewTube(tf.Tube)
	return
}

func (tf *TubeFormatter) Encode(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	err = spiralizer.ErrUnsupported("tube encode")
	return
}
