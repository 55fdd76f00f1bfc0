//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type SpiralCommand struct {
	*pflag.FlagSet

	Height          float64
	Width           float64
	Rotation        spiralizer.Rotation
	Toolpath        spiralizer.Toolpath
	TravelFeed      float64
	Feed            float64
	FeedBlack       float64
	FeedWhite       float64
	ZOffset         float64
	FilamentChanges []int
}

func NewSpiralCommand() (cmd *SpiralCommand) {
	flagSet := pflag.NewFlagSet("spiral", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	prop := spiralizer.DefaultProperties()

	cmd = &SpiralCommand{
		FlagSet:  flagSet,
		Rotation: prop.Rotation,
		Toolpath: prop.Toolpath,
	}

	cmd.Float64VarP(&cmd.Height, "height", "H", prop.Extrusion.Height, "Extrusion height, in mm")
	cmd.Float64VarP(&cmd.Width, "width", "W", prop.Extrusion.Width, "Extrusion width, in mm")
	cmd.VarP(&cmd.Rotation, "rotation", "r", "Walk direction seen from above, 'cw' or 'ccw'")
	cmd.VarP(&cmd.Toolpath, "toolpath", "t", "Toolpath geometry written beside the G-code, 'mesh', 'curve' or 'ribbon'")
	cmd.Float64Var(&cmd.TravelFeed, "travel-feed", prop.Feed.Travel, "Travel feed rate, in mm/s")
	cmd.Float64VarP(&cmd.Feed, "feed", "f", prop.Feed.Black, "Extrusion feed rate, in mm/s")
	cmd.Float64Var(&cmd.FeedBlack, "feed-black", prop.Feed.Black, "Extrusion feed rate at blend 0, in mm/s")
	cmd.Float64Var(&cmd.FeedWhite, "feed-white", prop.Feed.White, "Extrusion feed rate at blend 1, in mm/s")
	cmd.Float64VarP(&cmd.ZOffset, "z-offset", "z", prop.ZOffset, "Offset added to every Z coordinate, in mm")
	cmd.IntSliceVarP(&cmd.FilamentChanges, "filament-change", "c", nil, "Layers at which to change filament")

	return
}

func (cmd *SpiralCommand) Filter(ctx context.Context, job *Job) (err error) {
	prop := job.Properties

	if cmd.Changed("height") {
		TraceVerbosef(VerbosityNotice, "  Setting extrusion height to %v mm", cmd.Height)
		prop.Extrusion.Height = cmd.Height
	}

	if cmd.Changed("width") {
		TraceVerbosef(VerbosityNotice, "  Setting extrusion width to %v mm", cmd.Width)
		prop.Extrusion.Width = cmd.Width
	}

	if cmd.Changed("rotation") {
		TraceVerbosef(VerbosityNotice, "  Setting rotation to %v", cmd.Rotation)
		prop.Rotation = cmd.Rotation
	}

	if cmd.Changed("toolpath") {
		TraceVerbosef(VerbosityNotice, "  Setting toolpath to %v", cmd.Toolpath)
		prop.Toolpath = cmd.Toolpath
		job.ExportToolpath = true
	}

	if cmd.Changed("travel-feed") {
		TraceVerbosef(VerbosityNotice, "  Setting travel feed to %v mm/s", cmd.TravelFeed)
		prop.Feed.Travel = cmd.TravelFeed
	}

	if cmd.Changed("feed") {
		TraceVerbosef(VerbosityNotice, "  Setting extrusion feed to %v mm/s", cmd.Feed)
		prop.Feed.Black = cmd.Feed
		prop.Feed.White = cmd.Feed
	}

	if cmd.Changed("feed-black") {
		TraceVerbosef(VerbosityNotice, "  Setting black feed to %v mm/s", cmd.FeedBlack)
		prop.Feed.Black = cmd.FeedBlack
	}

	if cmd.Changed("feed-white") {
		TraceVerbosef(VerbosityNotice, "  Setting white feed to %v mm/s", cmd.FeedWhite)
		prop.Feed.White = cmd.FeedWhite
	}

	if cmd.Changed("z-offset") {
		TraceVerbosef(VerbosityNotice, "  Setting Z offset to %v mm", cmd.ZOffset)
		prop.ZOffset = cmd.ZOffset
	}

	if cmd.Changed("filament-change") {
		TraceVerbosef(VerbosityNotice, "  Setting filament changes at layers %v", cmd.FilamentChanges)
		prop.FilamentChanges = append([]int(nil), cmd.FilamentChanges...)
	}

	err = prop.Validate()
	if err != nil {
		return
	}

	job.SetProperties(prop)

	return
}
