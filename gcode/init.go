//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package gcode writes spiral paths as FDM printer control programs
package gcode

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newFormatter := func(suffix string) spiralizer.Formatter { return NewFormatter(suffix) }

	spiralizer.RegisterFormatter(".gcode", newFormatter)
	spiralizer.RegisterFormatter(".gco", newFormatter)

	err := spiralizer.RegisterMachines(machines)
	if err != nil {
		panic(err)
	}
}
