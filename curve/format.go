//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package curve

import (
	"encoding/json"

	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

const curveVersion = 1

type CurvePoint struct {
	Co       [3]float64 `json:"co"`
	Radius   float64    `json:"radius"`
	Material int        `json:"material"`
}

// Curve is a poly spline swept by a round bevel. Each point's radius
// scales the bevel depth.
type Curve struct {
	Version         int          `json:"version"`
	Dimensions      string       `json:"dimensions"`
	TwistMode       string       `json:"twist_mode"`
	BevelDepth      float64      `json:"bevel_depth"`
	BevelResolution int          `json:"bevel_resolution"`
	Points          []CurvePoint `json:"points"`
}

type Format struct {
	*pflag.FlagSet

	Resolution int
	Indent     bool
}

func NewFormatter(suffix string) (cf *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	cf = &Format{
		FlagSet: flagSet,
	}

	cf.IntVarP(&cf.Resolution, "resolution", "r", 4, "Bevel segments around the swept profile")
	cf.BoolVarP(&cf.Indent, "indent", "i", false, "Indent the JSON output")
	cf.SetInterspersed(false)

	return
}

func (cf *Format) Encode(writer spiralizer.Writer, path *spiralizer.Path) (err error) {
	curve := Curve{
		Version:         curveVersion,
		Dimensions:      "3D",
		TwistMode:       "MINIMUM",
		BevelDepth:      1.0,
		BevelResolution: cf.Resolution,
		Points:          make([]CurvePoint, len(path.Points)),
	}

	for n, cp := range spiralizer.Curve(path) {
		curve.Points[n] = CurvePoint{
			Co:       [3]float64{cp.Position.X(), cp.Position.Y(), cp.Position.Z()},
			Radius:   cp.Radius,
			Material: path.Points[n].Material,
		}
	}

	encoder := json.NewEncoder(writer)
	if cf.Indent {
		encoder.SetIndent("", "  ")
	}

	err = encoder.Encode(&curve)
	return
}

func (cf *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	err = spiralizer.ErrUnsupported("curve decode")
	return
}
