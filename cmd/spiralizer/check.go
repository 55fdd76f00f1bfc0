//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type CheckCommand struct {
	*pflag.FlagSet

	Walk bool
}

func NewCheckCommand() (cmd *CheckCommand) {
	cmd = &CheckCommand{
		FlagSet: pflag.NewFlagSet("check", pflag.ContinueOnError),
	}

	cmd.BoolVarP(&cmd.Walk, "walk", "w", false, "Also run the spiral walk")
	cmd.SetInterspersed(false)

	return
}

func (cmd *CheckCommand) Filter(ctx context.Context, job *Job) (err error) {
	err = job.Mesh.Validate()
	if err != nil {
		return
	}

	err = spiralizer.CheckContours(job.Mesh)
	if err != nil {
		return
	}

	if cmd.Walk {
		_, err = job.Path(ctx)
		if err != nil {
			return
		}
	}

	TraceVerbosef(VerbosityNotice, "  Mesh check passed")

	return
}
