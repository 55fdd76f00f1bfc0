//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type CenterCommand struct {
	*pflag.FlagSet

	Point   []float64
	Machine string
	Ground  bool
}

func NewCenterCommand() (cmd *CenterCommand) {
	cmd = &CenterCommand{
		FlagSet: pflag.NewFlagSet("center", pflag.ContinueOnError),
	}

	cmd.Float64SliceVarP(&cmd.Point, "point", "p", nil, "Center point X,Y in mm (default: machine bed center)")
	cmd.StringVarP(&cmd.Machine, "machine", "M", "generic", "Bed size preset by machine type")
	cmd.BoolVarP(&cmd.Ground, "ground", "g", true, "Move the lowest vertex to Z = 0")
	cmd.SetInterspersed(false)

	return
}

// Target resolves the bed point the mesh is centered on
func (cmd *CenterCommand) Target() (target mgl64.Vec2, err error) {
	if cmd.Changed("point") {
		if len(cmd.Point) != 2 {
			err = fmt.Errorf("center: --point needs X,Y, not %v", cmd.Point)
			return
		}
		target = mgl64.Vec2{cmd.Point[0], cmd.Point[1]}
		return
	}

	machine, ok := spiralizer.Machines[cmd.Machine]
	if !ok {
		err = fmt.Errorf("center: machine '%s' unknown", cmd.Machine)
		return
	}

	target = mgl64.Vec2{machine.Bed.Xmm / 2, machine.Bed.Ymm / 2}

	return
}

func (cmd *CenterCommand) Filter(ctx context.Context, job *Job) (err error) {
	target, err := cmd.Target()
	if err != nil {
		return
	}

	min, max := job.Mesh.Bounds()
	center := min.Add(max).Mul(0.5)

	delta := mgl64.Vec3{target.X() - center.X(), target.Y() - center.Y(), 0}
	if cmd.Ground {
		delta[2] = -min.Z()
	}

	TraceVerbosef(VerbosityNotice, "  Moving by [%.3f, %.3f, %.3f] mm", delta.X(), delta.Y(), delta.Z())

	job.SetMesh(job.Mesh.Translate(delta))

	return
}
