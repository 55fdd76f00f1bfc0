//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gcode

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type ErrMachineUnknown string

func (e ErrMachineUnknown) Error() string {
	return fmt.Sprintf("machine '%s' unknown", string(e))
}

type Format struct {
	*pflag.FlagSet

	TravelFeed float64
	Feed       float64
	FeedBlack  float64
	FeedWhite  float64
	ZOffset    float64
	Precision  int

	Start     string
	Change    string
	End       string
	Templates string
	Machine   string
}

func NewFormatter(suffix string) (gf *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	gf = &Format{
		FlagSet: flagSet,
	}

	prop := spiralizer.DefaultProperties()

	gf.Float64VarP(&gf.TravelFeed, "travel-feed", "t", prop.Feed.Travel, "Travel feed rate, in mm/s")
	gf.Float64VarP(&gf.Feed, "feed", "f", prop.Feed.Black, "Extrusion feed rate, in mm/s")
	gf.Float64Var(&gf.FeedBlack, "feed-black", prop.Feed.Black, "Extrusion feed rate at blend 0, in mm/s")
	gf.Float64Var(&gf.FeedWhite, "feed-white", prop.Feed.White, "Extrusion feed rate at blend 1, in mm/s")
	gf.Float64VarP(&gf.ZOffset, "z-offset", "z", prop.ZOffset, "Offset added to every Z coordinate, in mm")
	gf.IntVar(&gf.Precision, "precision", defaultPrecision, "Digits after the decimal point")

	gf.StringVar(&gf.Start, "start", spiralizer.TemplateStart, "Start template name")
	gf.StringVar(&gf.Change, "change", spiralizer.TemplateFilamentChange, "Filament change template name")
	gf.StringVar(&gf.End, "end", spiralizer.TemplateEnd, "End template name")
	gf.StringVarP(&gf.Templates, "templates", "T", "", "Directory of template files, searched before the machine templates")
	gf.StringVarP(&gf.Machine, "machine", "M", "generic", "Machine preset")

	gf.SetInterspersed(false)

	return
}

// Options resolves the encoder options. Flags that were not given keep
// the values of the spiral properties.
func (gf *Format) Options(prop spiralizer.Properties) (opt Options, err error) {
	opt = DefaultOptions(prop)

	if gf.Changed("travel-feed") {
		opt.Feed.Travel = gf.TravelFeed
	}

	if gf.Changed("feed") {
		opt.Feed.Black = gf.Feed
		opt.Feed.White = gf.Feed
	}

	if gf.Changed("feed-black") {
		opt.Feed.Black = gf.FeedBlack
	}

	if gf.Changed("feed-white") {
		opt.Feed.White = gf.FeedWhite
	}

	if gf.Changed("z-offset") {
		opt.ZOffset = gf.ZOffset
	}

	opt.Precision = gf.Precision
	opt.Start = gf.Start
	opt.Change = gf.Change
	opt.End = gf.End

	machine, ok := spiralizer.Machines[gf.Machine]
	if !ok {
		err = ErrMachineUnknown(gf.Machine)
		return
	}

	chain := spiralizer.TemplateChain{}
	if gf.Templates != "" {
		chain = append(chain, spiralizer.DirTemplates(gf.Templates))
	}
	chain = append(chain, machine.Templates)
	opt.Templates = chain

	return
}

func (gf *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	err = spiralizer.ErrUnsupported("gcode decode")
	return
}

func (gf *Format) Encode(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	opt, err := gf.Options(path.Properties)
	if err != nil {
		return
	}

	enc := NewEncoder(writer, opt)
	err = enc.Encode(path)
	if err != nil {
		return
	}

	spiralizer.Logger().Infof("gcode: %.2f mm filament, %d warnings", enc.Extrusion(), len(enc.Warnings()))

	return
}
