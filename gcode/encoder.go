//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gcode

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ezrec/spiralizer"
)

const (
	filamentRadius   = 0.875 // 1.75mm filament, in mm
	travelLift       = 0.1   // Clearance of the initial travel move, in mm
	defaultPrecision = 6
)

// Options controls the serialization of a spiral path
type Options struct {
	Feed      spiralizer.Feed // Feed rates, in mm/s
	ZOffset   float64         // Added to every Z coordinate, in mm
	Precision int             // Digits after the decimal point

	Templates spiralizer.TemplateSource
	Start     string // Template block before the first move
	Change    string // Template block at each material change
	End       string // Template block after the last move
}

// DefaultOptions derives encoder options from the spiral properties
func DefaultOptions(prop spiralizer.Properties) (opt Options) {
	opt = Options{
		Feed:      prop.Feed,
		ZOffset:   prop.ZOffset,
		Precision: defaultPrecision,
		Start:     spiralizer.TemplateStart,
		Change:    spiralizer.TemplateFilamentChange,
		End:       spiralizer.TemplateEnd,
	}

	return
}

// Encoder writes a path as a G-code program with absolute coordinates
// and absolute extrusion.
type Encoder struct {
	writer   *bufio.Writer
	opt      Options
	e        float64
	warnings []spiralizer.ConfigurationWarning
}

func NewEncoder(writer io.Writer, opt Options) (enc *Encoder) {
	if opt.Precision <= 0 {
		opt.Precision = defaultPrecision
	}

	enc = &Encoder{
		writer: bufio.NewWriter(writer),
		opt:    opt,
	}

	return
}

// Extrusion is the accumulated filament length after the last Encode, in mm
func (enc *Encoder) Extrusion() float64 {
	return enc.e
}

// Warnings lists the configuration problems seen by the last Encode
func (enc *Encoder) Warnings() []spiralizer.ConfigurationWarning {
	return enc.warnings
}

// number formats a coordinate, never as negative zero
func (enc *Encoder) number(value float64) (text string) {
	text = strconv.FormatFloat(value, 'f', enc.opt.Precision, 64)
	if strings.HasPrefix(text, "-") && strings.Trim(text[1:], "0.") == "" {
		text = text[1:]
	}

	return
}

// feed converts mm/s to the mm/min of the F parameter
func (enc *Encoder) feed(rate float64) string {
	return enc.number(rate * 60)
}

func (enc *Encoder) template(name string) (err error) {
	var lines []string
	var ok bool

	if enc.opt.Templates != nil && name != "" {
		lines, ok = enc.opt.Templates.Template(name)
	}

	if !ok {
		warning := spiralizer.ConfigurationWarning(fmt.Sprintf("template '%s' not found", name))
		spiralizer.Logger().Warnf("%v", warning)
		enc.warnings = append(enc.warnings, warning)
		return
	}

	for _, line := range lines {
		_, err = fmt.Fprintln(enc.writer, line)
		if err != nil {
			return
		}
	}

	return
}

// Extruded is the filament length consumed by a segment of the given
// length and cross section.
func Extruded(length, height, width float64) float64 {
	return length * height * width / (math.Pi * filamentRadius * filamentRadius)
}

// Encode writes the complete program for path
func (enc *Encoder) Encode(path *spiralizer.Path) (err error) {
	enc.e = 0
	enc.warnings = nil

	defer func() {
		flushErr := enc.writer.Flush()
		if err == nil {
			err = flushErr
		}
	}()

	err = enc.template(enc.opt.Start)
	if err != nil {
		return
	}

	points := path.Points
	if len(points) > 0 {
		first := points[0].Position
		z := first.Z() + enc.opt.ZOffset
		travel := enc.feed(enc.opt.Feed.Travel)

		_, err = fmt.Fprintf(enc.writer, "G0 F%s X%s Y%s Z%s\n", travel,
			enc.number(first.X()), enc.number(first.Y()), enc.number(z+travelLift))
		if err != nil {
			return
		}

		_, err = fmt.Fprintf(enc.writer, "G1 F%s Z%s\n", enc.feed(enc.opt.Feed.Rate(points[0].Blend)), enc.number(z))
		if err != nil {
			return
		}
	}

	for n := 1; n < len(points); n++ {
		prev := &points[n-1]
		pt := &points[n]

		if pt.Material != prev.Material {
			err = enc.template(enc.opt.Change)
			if err != nil {
				return
			}
		}

		err = enc.extrude(prev.Position, pt)
		if err != nil {
			return
		}
	}

	err = enc.template(enc.opt.End)
	if err != nil {
		return
	}

	return
}

func (enc *Encoder) extrude(from mgl64.Vec3, pt *spiralizer.Point) (err error) {
	length := pt.Position.Sub(from).Len()
	enc.e += Extruded(length, pt.Height, pt.Width)

	pos := pt.Position
	_, err = fmt.Fprintf(enc.writer, "G1 F%s X%s Y%s Z%s E%s\n",
		enc.feed(enc.opt.Feed.Rate(pt.Blend)),
		enc.number(pos.X()), enc.number(pos.Y()), enc.number(pos.Z()+enc.opt.ZOffset),
		enc.number(enc.e))

	return
}
