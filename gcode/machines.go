//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gcode

import (
	"github.com/ezrec/spiralizer"
)

var genericStart = `M82 ; absolute extrusion
G21 ; millimeters
G90 ; absolute positioning
M104 S215 ; extruder temperature
M140 S60 ; bed temperature
G28 ; home all axes
M190 S60 ; wait for bed
M109 S215 ; wait for extruder
G92 E0 ; reset extruder`

var genericChange = `G91 ; relative positioning
G1 Z5 F600 ; lift clear of the part
G90 ; absolute positioning
M600 ; filament change`

// The extrusion axis stays absolute for the whole program, so the change
// block must not reset it, and the retract is a relative move.
var genericEnd = `M83 ; relative extrusion
G1 E-5 F2400 ; retract
M82 ; absolute extrusion
M104 S0 ; extruder off
M140 S0 ; bed off
G28 X0 Y0 ; home axes
M84 ; motors off`

var machines = map[string]spiralizer.Machine{
	"generic": {
		Vendor: "Generic",
		Model:  "FDM",
		Bed:    spiralizer.BedSize{Xmm: 200, Ymm: 200},
		Templates: spiralizer.Templates{
			spiralizer.TemplateStart:          spiralizer.SplitLines(genericStart),
			spiralizer.TemplateFilamentChange: spiralizer.SplitLines(genericChange),
			spiralizer.TemplateEnd:            spiralizer.SplitLines(genericEnd),
		},
	},
	"prusa-mk3s": {
		Vendor: "Prusa",
		Model:  "i3 MK3S",
		Bed:    spiralizer.BedSize{Xmm: 250, Ymm: 210},
		Templates: spiralizer.Templates{
			spiralizer.TemplateStart:          spiralizer.SplitLines(genericStart),
			spiralizer.TemplateFilamentChange: spiralizer.SplitLines(genericChange),
			spiralizer.TemplateEnd:            spiralizer.SplitLines(genericEnd),
		},
	},
	"ender-3": {
		Vendor: "Creality",
		Model:  "Ender 3",
		Bed:    spiralizer.BedSize{Xmm: 220, Ymm: 220},
		Templates: spiralizer.Templates{
			spiralizer.TemplateStart: spiralizer.SplitLines(genericStart),
			spiralizer.TemplateEnd:   spiralizer.SplitLines(genericEnd),
		},
	},
}
