//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package preview

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"

	"github.com/ezrec/spiralizer"
)

var testPath = &spiralizer.Path{
	Points: []spiralizer.Point{
		{Position: mgl64.Vec3{0, 0, 0}},
		{Position: mgl64.Vec3{10, 0, 0}},
		{Position: mgl64.Vec3{10, 0, 10}, Material: 1},
		{Position: mgl64.Vec3{0, 0, 10}, Material: 1},
	},
}

func TestRuns(t *testing.T) {
	out := runs(testPath)
	require.Len(t, out, 2)
	assert.Len(t, out[0], 3)
	assert.Len(t, out[1], 2)

	assert.Empty(t, runs(&spiralizer.Path{}))
}

func TestView(t *testing.T) {
	var v View
	assert.NoError(t, v.Set("side"))
	assert.Equal(t, ViewSide, v)
	assert.Equal(t, "side", v.String())
	assert.Error(t, v.Set("front"))

	p := mgl64.Vec3{1, 2, 3}
	assert.Equal(t, 3.0, ViewSide.project(p).Y)
	assert.Equal(t, 2.0, ViewTop.project(p).Y)
}

func TestRender(t *testing.T) {
	pf := NewFormatter(".png")
	require.NoError(t, pf.Parse([]string{"--view", "side", "--width", "116", "--stroke", "3"}))

	img := pf.Render(testPath)

	// 10mm square drawn into 100 pixels with an 8 pixel margin
	assert.Equal(t, 116, img.Bounds().Dx())
	assert.Equal(t, 116, img.Bounds().Dy())

	white := color.RGBAModel.Convert(colornames.White)
	assert.Equal(t, white, img.At(58, 58))
	assert.NotEqual(t, white, img.At(58, 108))
	assert.NotEqual(t, white, img.At(58, 8))
	assert.NotEqual(t, img.At(58, 108), img.At(58, 8))

	buff := &bytes.Buffer{}
	require.NoError(t, pf.Encode(buff, testPath))
	_, err := png.Decode(buff)
	assert.NoError(t, err)
}

func TestEncodeSVG(t *testing.T) {
	pf := NewFormatter(".svg")
	require.NoError(t, pf.Parse(nil))

	buff := &bytes.Buffer{}
	require.NoError(t, pf.Encode(buff, testPath))

	text := buff.String()
	assert.True(t, strings.HasPrefix(text, "<?xml"))
	assert.Equal(t, 2, strings.Count(text, "<polyline"))
	assert.Contains(t, text, materialColor(1).Hex())
}
