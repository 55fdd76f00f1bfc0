//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package stl

import (
	"bufio"
	"encoding/binary"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/go-restruct/restruct"
	"github.com/spf13/pflag"

	"github.com/ezrec/spiralizer"
)

type stlHeader struct {
	Comment   [80]byte // 00: Free text, never starting with "solid"
	Triangles uint32   // 50: Triangle count
}

type stlTriangle struct {
	Normal    [3]float32    // 00:
	Vertex    [3][3]float32 // 0c:
	Attribute uint16        // 30: Always zero
}

type Format struct {
	*pflag.FlagSet

	Comment string
}

func NewFormatter(suffix string) (sf *Format) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	sf = &Format{
		FlagSet: flagSet,
	}

	sf.StringVarP(&sf.Comment, "comment", "c", "spiral toolpath ribbon", "Header comment")
	sf.SetInterspersed(false)

	return
}

func toFloat32(v mgl64.Vec3) [3]float32 {
	return [3]float32{float32(v.X()), float32(v.Y()), float32(v.Z())}
}

func newTriangle(a, b, c mgl64.Vec3) (tri stlTriangle) {
	normal := b.Sub(a).Cross(c.Sub(a))
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}

	tri.Normal = toFloat32(normal)
	tri.Vertex = [3][3]float32{toFloat32(a), toFloat32(b), toFloat32(c)}

	return
}

// Triangles splits each ribbon quad into two triangles
func Triangles(path *spiralizer.Path) (triangles []stlTriangle) {
	vertices, quads := spiralizer.Ribbon(path)

	triangles = make([]stlTriangle, 0, len(quads)*2)
	for _, q := range quads {
		triangles = append(triangles,
			newTriangle(vertices[q[0]], vertices[q[1]], vertices[q[2]]),
			newTriangle(vertices[q[0]], vertices[q[2]], vertices[q[3]]))
	}

	return
}

func (sf *Format) Encode(output spiralizer.Writer, path *spiralizer.Path) (err error) {
	triangles := Triangles(path)

	header := stlHeader{
		Triangles: uint32(len(triangles)),
	}
	copy(header.Comment[:], sf.Comment)

	writer := bufio.NewWriter(output)

	data, err := restruct.Pack(binary.LittleEndian, &header)
	if err != nil {
		return
	}

	_, err = writer.Write(data)
	if err != nil {
		return
	}

	for n := range triangles {
		data, err = restruct.Pack(binary.LittleEndian, &triangles[n])
		if err != nil {
			return
		}

		_, err = writer.Write(data)
		if err != nil {
			return
		}
	}

	err = writer.Flush()
	return
}

func (sf *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	err = spiralizer.ErrUnsupported("stl decode")
	return
}
