//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package gcode

import (
	"bytes"
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/spiralizer"
)

var testTemplates = spiralizer.Templates{
	spiralizer.TemplateStart:          {"; START"},
	spiralizer.TemplateFilamentChange: {"; CHANGE", "M600"},
	spiralizer.TemplateEnd:            {"; END"},
}

func testOptions() (opt Options) {
	opt = DefaultOptions(spiralizer.DefaultProperties())
	opt.Templates = testTemplates
	return
}

func encodeString(t *testing.T, opt Options, path *spiralizer.Path) (text string, enc *Encoder) {
	buff := &bytes.Buffer{}
	enc = NewEncoder(buff, opt)
	err := enc.Encode(path)
	require.NoError(t, err)

	text = buff.String()
	return
}

func extrusionLines(text string) (lines [][]string) {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 6 && fields[0] == "G1" {
			lines = append(lines, fields[1:])
		}
	}

	return
}

func TestTwoPointExtrusion(t *testing.T) {
	path := &spiralizer.Path{
		Points: []spiralizer.Point{
			{Position: mgl64.Vec3{0, 0, 0}, Height: 0.2, Width: 0.4},
			{Position: mgl64.Vec3{1, 0, 0}, Height: 0.2, Width: 0.4},
		},
	}

	_, enc := encodeString(t, testOptions(), path)

	expected := 1.0 * 0.2 * 0.4 / (math.Pi * 0.875 * 0.875)
	assert.InDelta(t, expected, enc.Extrusion(), 1e-12)
	assert.Empty(t, enc.Warnings())
}

func TestProgramLayout(t *testing.T) {
	opt := testOptions()
	opt.ZOffset = 0.5
	opt.Feed = spiralizer.Feed{Travel: 100, Black: 10, White: 30}

	path := &spiralizer.Path{
		Points: []spiralizer.Point{
			{Position: mgl64.Vec3{1, 2, 3}, Height: 0.1, Width: 0.1, Blend: 1},
			{Position: mgl64.Vec3{2, 2, 3}, Height: 0.1, Width: 0.1, Blend: 0.5},
		},
	}

	text, _ := encodeString(t, opt, path)
	lines := strings.Split(strings.TrimSpace(text), "\n")

	require.Len(t, lines, 5)
	assert.Equal(t, "; START", lines[0])
	assert.Equal(t, "G0 F6000.000000 X1.000000 Y2.000000 Z3.600000", lines[1])
	assert.Equal(t, "G1 F1800.000000 Z3.500000", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "G1 F1200.000000 X2.000000 Y2.000000 Z3.500000 E"), lines[3])
	assert.Equal(t, "; END", lines[4])
}

func TestSpiralProgram(t *testing.T) {
	mesh, err := spiralizer.NewTube(spiralizer.Tube{Layers: 10, Sides: 12, Radius: 5, LayerHeight: 0.2})
	require.NoError(t, err)

	prop := spiralizer.DefaultProperties()
	prop.FilamentChanges = []int{3}

	path, err := spiralizer.Spiralize(context.Background(), mesh, prop)
	require.NoError(t, err)
	require.NotEmpty(t, path.Points)

	text, enc := encodeString(t, testOptions(), path)

	lines := extrusionLines(text)
	require.Len(t, lines, len(path.Points)-1)

	last := 0.0
	for n, params := range lines {
		for i, letter := range []string{"F", "X", "Y", "Z", "E"} {
			require.True(t, strings.HasPrefix(params[i], letter), "line %d: %v", n, params)
		}

		e, err := strconv.ParseFloat(params[4][1:], 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, e, last, "line %d", n)
		last = e
	}

	assert.Equal(t, 1, strings.Count(text, "; CHANGE"))
	assert.InDelta(t, enc.Extrusion(), last, 1e-5)
}

func TestMissingTemplates(t *testing.T) {
	opt := testOptions()
	opt.Templates = nil

	path := &spiralizer.Path{
		Points: []spiralizer.Point{
			{Position: mgl64.Vec3{0, 0, 0}, Height: 0.2, Width: 0.4},
			{Position: mgl64.Vec3{1, 0, 0}, Height: 0.2, Width: 0.4, Material: 1},
		},
	}

	text, enc := encodeString(t, opt, path)

	assert.Len(t, enc.Warnings(), 3)
	assert.Len(t, extrusionLines(text), 1)
}

func TestNumber(t *testing.T) {
	table := map[string]struct {
		Precision int
		Value     float64
		Text      string
	}{
		"zero":     {6, 0, "0.000000"},
		"negzero":  {6, math.Copysign(0, -1), "0.000000"},
		"tiny":     {3, -0.0001, "0.000"},
		"negative": {3, -1.25, "-1.250"},
		"round":    {2, 2.499, "2.50"},
	}

	for key, item := range table {
		enc := NewEncoder(&bytes.Buffer{}, Options{Precision: item.Precision})
		assert.Equal(t, item.Text, enc.number(item.Value), key)
	}
}

func TestFormatOptions(t *testing.T) {
	gf := NewFormatter(".gcode")
	err := gf.Parse([]string{"--feed", "30", "--feed-white", "45", "--z-offset", "0"})
	require.NoError(t, err)

	prop := spiralizer.DefaultProperties()
	opt, err := gf.Options(prop)
	require.NoError(t, err)

	assert.Equal(t, 30.0, opt.Feed.Black)
	assert.Equal(t, 45.0, opt.Feed.White)
	assert.Equal(t, prop.Feed.Travel, opt.Feed.Travel)
	assert.Equal(t, 0.0, opt.ZOffset)

	lines, ok := opt.Templates.Template(spiralizer.TemplateFilamentChange)
	assert.True(t, ok)
	assert.Contains(t, lines, "M600 ; filament change")

	gf = NewFormatter(".gcode")
	require.NoError(t, gf.Parse([]string{"--machine", "no-such-printer"}))
	_, err = gf.Options(prop)
	assert.Equal(t, ErrMachineUnknown("no-such-printer"), err)
}

// extruderMoves replays the program on an extruder axis that honours
// M82/M83 and G92, returning the filament fed by every move with an E word.
func extruderMoves(t *testing.T, text string) (moves []float64) {
	relative := false
	position := 0.0

	for _, line := range strings.Split(text, "\n") {
		if i := strings.Index(line, ";"); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var e float64
		hasE := false
		for _, field := range fields[1:] {
			if strings.HasPrefix(field, "E") {
				var err error
				e, err = strconv.ParseFloat(field[1:], 64)
				require.NoError(t, err, line)
				hasE = true
			}
		}

		switch fields[0] {
		case "M82":
			relative = false
		case "M83":
			relative = true
		case "G92":
			if hasE {
				position = e
			}
		case "G0", "G1":
			if !hasE {
				continue
			}
			if relative {
				moves = append(moves, e)
				position += e
			} else {
				moves = append(moves, e-position)
				position = e
			}
		}
	}

	return
}

func TestMachineTemplatesKeepExtrusion(t *testing.T) {
	mesh, err := spiralizer.NewTube(spiralizer.Tube{Layers: 10, Sides: 32, Radius: 10, LayerHeight: 0.2})
	require.NoError(t, err)

	prop := spiralizer.DefaultProperties()
	prop.FilamentChanges = []int{4}

	path, err := spiralizer.Spiralize(context.Background(), mesh, prop)
	require.NoError(t, err)

	for _, machine := range []string{"generic", "prusa-mk3s", "ender-3"} {
		gf := NewFormatter(".gcode")
		require.NoError(t, gf.Parse([]string{"--machine", machine}))

		buff := &bytes.Buffer{}
		require.NoError(t, gf.Encode(buff, path))
		text := buff.String()

		moves := extruderMoves(t, text)
		require.Len(t, moves, len(path.Points), machine)

		// Every segment feeds at most one segment's worth of filament
		limit := Extruded(2*math.Pi*10/32+0.5, prop.Extrusion.Height, prop.Extrusion.Width)
		for n, move := range moves[:len(moves)-1] {
			assert.GreaterOrEqual(t, move, 0.0, "%s: move %d", machine, n)
			assert.Less(t, move, limit, "%s: move %d", machine, n)
		}
		assert.InDelta(t, -5.0, moves[len(moves)-1], 1e-9, machine)

		assert.Equal(t, 1, strings.Count(text, "G92 E0"), machine)
	}
}
