//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	defaultExtrusionHeight = 0.1   // mm
	defaultExtrusionWidth  = 0.1   // mm
	defaultTravelFeed      = 100.0 // mm/s
	defaultExtrusionFeed   = 20.0  // mm/s
	defaultZOffset         = 0.2   // mm
)

// Rotation is the walking direction around each contour, seen from above
type Rotation int

const (
	RotationCW = Rotation(iota)
	RotationCCW
)

func (r Rotation) String() string {
	switch r {
	case RotationCW:
		return "cw"
	case RotationCCW:
		return "ccw"
	}
	return fmt.Sprintf("Rotation(%d)", int(r))
}

// Set implements pflag.Value
func (r *Rotation) Set(value string) (err error) {
	switch strings.ToLower(value) {
	case "cw", "clockwise":
		*r = RotationCW
	case "ccw", "counter-clockwise", "counterclockwise":
		*r = RotationCCW
	default:
		err = fmt.Errorf("unknown rotation %q (cw or ccw)", value)
	}
	return
}

func (r *Rotation) Type() string {
	return "rotation"
}

// Toolpath is the kind of geometry a path is exported as
type Toolpath int

const (
	ToolpathMesh = Toolpath(iota)
	ToolpathCurve
	ToolpathRibbon
)

func (t Toolpath) String() string {
	switch t {
	case ToolpathMesh:
		return "mesh"
	case ToolpathCurve:
		return "curve"
	case ToolpathRibbon:
		return "ribbon"
	}
	return fmt.Sprintf("Toolpath(%d)", int(t))
}

// Set implements pflag.Value
func (t *Toolpath) Set(value string) (err error) {
	switch strings.ToLower(value) {
	case "mesh":
		*t = ToolpathMesh
	case "curve":
		*t = ToolpathCurve
	case "ribbon":
		*t = ToolpathRibbon
	default:
		err = fmt.Errorf("unknown toolpath %q (mesh, curve or ribbon)", value)
	}
	return
}

func (t *Toolpath) Type() string {
	return "toolpath"
}

// Suffix is the file suffix of the output format for the toolpath kind
func (t Toolpath) Suffix() string {
	switch t {
	case ToolpathCurve:
		return ".curve"
	case ToolpathRibbon:
		return ".stl"
	}
	return ".ply"
}

// Extrusion cross section, in mm
type Extrusion struct {
	Height float64
	Width  float64
}

// Feed rates, in mm/s
type Feed struct {
	Travel float64 // Non-extruding moves
	Black  float64 // Extrusion at blend factor 0
	White  float64 // Extrusion at blend factor 1
}

// Rate interpolates the extrusion feed rate for a blend factor.
// A single material is a blend with both rates equal.
func (feed Feed) Rate(blend float64) float64 {
	return feed.Black + blend*(feed.White-feed.Black)
}

type Properties struct {
	Extrusion       Extrusion
	Rotation        Rotation
	Toolpath        Toolpath
	Feed            Feed
	ZOffset         float64 // Added to every emitted Z, in mm
	FilamentChanges []int   // Layers at which the material index increments
}

// DefaultProperties returns the default configuration
func DefaultProperties() (prop Properties) {
	prop = Properties{
		Extrusion: Extrusion{
			Height: defaultExtrusionHeight,
			Width:  defaultExtrusionWidth,
		},
		Rotation: RotationCW,
		Toolpath: ToolpathMesh,
		Feed: Feed{
			Travel: defaultTravelFeed,
			Black:  defaultExtrusionFeed,
			White:  defaultExtrusionFeed,
		},
		ZOffset: defaultZOffset,
	}

	return
}

// Validate checks the configuration, and normalizes the filament change set
func (prop *Properties) Validate() (err error) {
	switch {
	case prop.Extrusion.Height <= 0:
		err = fmt.Errorf("extrusion height %v must be positive", prop.Extrusion.Height)
	case prop.Extrusion.Width <= 0:
		err = fmt.Errorf("extrusion width %v must be positive", prop.Extrusion.Width)
	case prop.Feed.Travel <= 0 || prop.Feed.Black <= 0 || prop.Feed.White <= 0:
		err = fmt.Errorf("feed rates must be positive")
	}
	if err != nil {
		return
	}

	for _, layer := range prop.FilamentChanges {
		if layer < 0 {
			err = fmt.Errorf("filament change layer %d is negative", layer)
			return
		}
	}

	changes := lo.Uniq(prop.FilamentChanges)
	sort.Ints(changes)
	prop.FilamentChanges = changes

	return
}

// IsFilamentChange reports whether a filament change is requested at layer
func (prop *Properties) IsFilamentChange(layer int) bool {
	return lo.Contains(prop.FilamentChanges, layer)
}

// OutputPath resolves where an output file is written. Without a
// configured path the name is derived from the project's base name.
// The suffix is appended when missing.
func OutputPath(configured string, project string, suffix string) (path string) {
	path = configured
	if path == "" {
		base := filepath.Base(project)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		path = filepath.Join(filepath.Dir(project), base)
	}

	if !strings.HasSuffix(path, suffix) {
		path += suffix
	}

	return
}
