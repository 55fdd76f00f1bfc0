//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type SelectCommand struct {
	*pflag.FlagSet

	First int
	Count int
}

func NewSelectCommand() (cmd *SelectCommand) {
	flagSet := pflag.NewFlagSet("select", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	cmd = &SelectCommand{
		FlagSet: flagSet,
		First:   0,
		Count:   -1,
	}

	cmd.IntVarP(&cmd.First, "first", "f", 0, "First layer to select")
	cmd.IntVarP(&cmd.Count, "count", "c", -1, "Count of layers to select (-1 for all layers after first)")

	return
}

func (cmd *SelectCommand) Filter(ctx context.Context, job *Job) (err error) {
	layers := spiralizer.NewLayerIndex(job.Mesh).Max() + 1

	first := cmd.First
	count := cmd.Count

	if layers == 0 {
		first = 0
		count = 0
	} else {
		if first < 0 {
			first = 0
		}

		if first >= layers {
			first = layers - 1
		}

		if count < 0 || first+count > layers {
			count = layers - first
		}
	}

	TraceVerbosef(VerbosityNotice, "  Selecting %d layers from layer %d", count, first)

	job.SetMesh(job.Mesh.SelectLayers(first, count))

	return
}
