//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"github.com/labstack/gommon/log"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
	_ "github.com/ezrec/spiralizer/bundle"
	_ "github.com/ezrec/spiralizer/curve"
	_ "github.com/ezrec/spiralizer/dxf"
	_ "github.com/ezrec/spiralizer/gcode"
	_ "github.com/ezrec/spiralizer/ply"
	_ "github.com/ezrec/spiralizer/preview"
	_ "github.com/ezrec/spiralizer/stl"
)

const (
	VerbosityWarning = iota
	VerbosityNotice
	VerbosityInfo
	VerbosityDebug
)

var param struct {
	verbosity int
	progress  bool
}

func init() {
	pflag.CountVarP(&param.verbosity, "verbose", "v", "Verbosity, repeat for more detail")
	pflag.BoolVarP(&param.progress, "progress", "P", true, "Show a progress bar on a terminal")
	pflag.CommandLine.SetInterspersed(false)
}

func TraceVerbosef(level int, format string, args ...interface{}) {
	if param.verbosity >= level {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

// Command is a pipeline stage acting on the job
type Command interface {
	Parse(args []string) error
	Args() []string
	PrintDefaults()
	Filter(ctx context.Context, job *Job) error
}

type Verb struct {
	Description string
	NewCommand  func() Command
}

var VerbMap = map[string]Verb{
	"spiral": {
		Description: "Set the spiral, feed and filament change parameters",
		NewCommand:  func() Command { return NewSpiralCommand() },
	},
	"select": {
		Description: "Select a range of layers",
		NewCommand:  func() Command { return NewSelectCommand() },
	},
	"center": {
		Description: "Center the mesh on the bed",
		NewCommand:  func() Command { return NewCenterCommand() },
	},
	"check": {
		Description: "Verify that every layer is made of closed contours",
		NewCommand:  func() Command { return NewCheckCommand() },
	},
	"info": {
		Description: "Dump information about the mesh and the path",
		NewCommand:  func() Command { return NewInfoCommand() },
	},
}

func Usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  spiralizer [options] INFILE [command [options] | OUTFILE [options]]...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  Arguments of the form @FILE are replaced by the words of FILE.")
	fmt.Fprintln(os.Stderr)
	pflag.PrintDefaults()

	keys := []string{}
	for key := range VerbMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		item := VerbMap[key]
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "    %s [options]\n", key)
		fmt.Fprintf(os.Stderr, "        %s\n", item.Description)
		fmt.Fprintln(os.Stderr)
		item.NewCommand().PrintDefaults()
	}

	spiralizer.FormatterUsage()

	PrintMachines()
}

func setLogLevel(verbosity int) {
	switch {
	case verbosity >= VerbosityDebug:
		spiralizer.Logger().SetLevel(log.DEBUG)
	case verbosity >= VerbosityInfo:
		spiralizer.Logger().SetLevel(log.INFO)
	default:
		spiralizer.Logger().SetLevel(log.WARN)
	}
}

// evaluate runs the pipeline. Nothing is written until the spiral walk
// of the output stage has completed.
func evaluate(ctx context.Context, args []string) (err error) {
	if len(args) == 0 {
		err = errors.New("INFILE: Required parameter missing")
		return
	}

	input, err := spiralizer.NewFormat(args[0], args[1:])
	if err != nil {
		return
	}

	TraceVerbosef(VerbosityNotice, "Reading %s", input.Filename)

	mesh, err := input.Mesh()
	if err != nil {
		return
	}

	job := NewJob(input.Filename, mesh)
	written := false

	for args = input.Args(); len(args) > 0; {
		verb, ok := VerbMap[args[0]]
		if ok {
			TraceVerbosef(VerbosityNotice, "%s", args[0])

			cmd := verb.NewCommand()
			err = cmd.Parse(args[1:])
			if err != nil {
				return
			}

			err = cmd.Filter(ctx, job)
			if err != nil {
				return
			}

			args = cmd.Args()
			continue
		}

		var output *spiralizer.Format
		output, err = spiralizer.NewFormat(args[0], args[1:])
		if err != nil {
			return
		}

		err = job.Write(ctx, output)
		if err != nil {
			return
		}

		written = true
		args = output.Args()
	}

	if written {
		return
	}

	outputs := []string{spiralizer.OutputPath("", job.Input, ".gcode")}
	if job.ExportToolpath {
		suffix := job.Properties.Toolpath.Suffix()
		outputs = append(outputs, spiralizer.OutputPath("", job.Input, suffix))
	}

	for _, name := range outputs {
		var output *spiralizer.Format
		output, err = spiralizer.NewFormat(name, nil)
		if err != nil {
			return
		}

		err = job.Write(ctx, output)
		if err != nil {
			return
		}
	}

	return
}

func main() {
	pflag.Usage = Usage
	pflag.Parse()

	setLogLevel(param.verbosity)

	if param.progress && isTerminal() {
		spiralizer.SetProgress(&termProgress{out: os.Stderr})
	}

	args, err := ExpandArgs(pflag.Args())
	if err == nil {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		err = evaluate(ctx, args)
		stop()
	}

	if err != nil {
		var structural *spiralizer.StructuralError
		switch {
		case errors.Is(err, context.Canceled):
			fmt.Fprintln(os.Stderr, "Interrupted, nothing written")
		case errors.As(err, &structural):
			fmt.Fprintf(os.Stderr, "Invalid mesh: %v\n", structural)
		default:
			fmt.Fprintln(os.Stderr, err)
		}
		if len(pflag.Args()) == 0 {
			Usage()
		}
		os.Exit(1)
	}
}
