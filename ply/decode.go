//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package ply

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/ezrec/spiralizer"
)

type ErrHeaderInvalid string

func (e ErrHeaderInvalid) Error() string {
	return fmt.Sprintf("ply header: %s", string(e))
}

// Names accepted for the per-vertex layer index
var layerProperties = []string{"layer", "slice_idx", "layer_idx"}

type element struct {
	name       string
	count      int
	properties []string
	list       bool // A single list property, as used by faces
}

func (el *element) index(names ...string) int {
	for n, prop := range el.properties {
		if lo.Contains(names, prop) {
			return n
		}
	}

	return -1
}

type header struct {
	elements []*element
	layers   int // From 'obj_info layers N', 0 when absent
}

func readHeader(scanner *bufio.Scanner) (hdr *header, err error) {
	hdr = &header{}

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "ply" {
		err = ErrHeaderInvalid("missing 'ply' magic")
		return
	}

	var current *element
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "format":
			if len(fields) < 2 || fields[1] != "ascii" {
				err = ErrHeaderInvalid(fmt.Sprintf("format '%s' unsupported", strings.Join(fields[1:], " ")))
				return
			}
		case "comment":
		case "obj_info":
			if len(fields) == 3 && fields[1] == "layers" {
				hdr.layers, err = strconv.Atoi(fields[2])
				if err != nil || hdr.layers < 0 {
					err = ErrHeaderInvalid(fmt.Sprintf("layer count '%s' invalid", fields[2]))
					return
				}
			}
		case "element":
			if len(fields) != 3 {
				err = ErrHeaderInvalid("malformed element")
				return
			}
			current = &element{name: fields[1]}
			current.count, err = strconv.Atoi(fields[2])
			if err != nil || current.count < 0 {
				err = ErrHeaderInvalid(fmt.Sprintf("element '%s' count invalid", fields[1]))
				return
			}
			hdr.elements = append(hdr.elements, current)
		case "property":
			if current == nil {
				err = ErrHeaderInvalid("property outside of an element")
				return
			}
			if len(fields) >= 5 && fields[1] == "list" {
				current.list = true
			}
			current.properties = append(current.properties, fields[len(fields)-1])
		case "end_header":
			return
		default:
			err = ErrHeaderInvalid(fmt.Sprintf("unknown keyword '%s'", fields[0]))
			return
		}
	}

	err = ErrHeaderInvalid("missing 'end_header'")
	return
}

func parseFloats(fields []string) (values []float64, err error) {
	values = make([]float64, len(fields))
	for n, field := range fields {
		values[n], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return
		}
	}

	return
}

// integer converts an index property, which must hold a whole
// non-negative number.
func integer(value float64, name string) (n int, err error) {
	if value != math.Trunc(value) || value < 0 || value > math.MaxInt32 {
		err = ErrHeaderInvalid(fmt.Sprintf("%s %v is not a whole non-negative number", name, value))
		return
	}

	n = int(value)
	return
}

func (pf *Format) decodeVertex(el *element, values []float64) (v spiralizer.Vertex, err error) {
	x, y, z := el.index("x"), el.index("y"), el.index("z")
	layer := el.index(layerProperties...)
	if x < 0 || y < 0 || z < 0 || layer < 0 {
		err = ErrHeaderInvalid("vertex needs x, y, z and layer properties")
		return
	}

	if len(values) < len(el.properties) {
		err = fmt.Errorf("vertex has %d of %d values", len(values), len(el.properties))
		return
	}

	v.Position[0] = values[x]
	v.Position[1] = values[y]
	v.Position[2] = values[z]
	v.Layer, err = integer(values[layer], el.properties[layer])
	if err != nil {
		return
	}

	if n := el.index("extrusion_height", "height"); n >= 0 {
		v.Attributes.Height = values[n]
	}
	if n := el.index("extrusion_width", "width"); n >= 0 {
		v.Attributes.Width = values[n]
	}
	if n := el.index("material"); n >= 0 {
		v.Attributes.Material, err = integer(values[n], "material")
		if err != nil {
			return
		}
	}
	if n := el.index("blend"); n >= 0 {
		v.Attributes.Blend = values[n]
	}

	return
}

// decodeMesh reads a complete PLY stream. Edge elements contribute their
// vertex pairs, and each face contributes its boundary as edges.
func (pf *Format) decodeMesh(reader io.Reader) (mesh *spiralizer.Mesh, err error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	hdr, err := readHeader(scanner)
	if err != nil {
		return
	}

	mesh = &spiralizer.Mesh{Layers: hdr.layers}
	seen := map[spiralizer.Edge]bool{}
	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		e := spiralizer.Edge{A: a, B: b}
		if a != b && !seen[e] {
			seen[e] = true
			mesh.Edges = append(mesh.Edges, e)
		}
	}

	for _, el := range hdr.elements {
		for n := 0; n < el.count; n++ {
			if !scanner.Scan() {
				err = fmt.Errorf("element '%s' %d: unexpected end of file", el.name, n)
				return
			}

			var values []float64
			values, err = parseFloats(strings.Fields(scanner.Text()))
			if err != nil {
				err = errors.Wrapf(err, "element '%s' %d", el.name, n)
				return
			}

			switch {
			case el.name == "vertex":
				var v spiralizer.Vertex
				v, err = pf.decodeVertex(el, values)
				if err != nil {
					err = errors.Wrapf(err, "vertex %d", n)
					return
				}
				mesh.Vertices = append(mesh.Vertices, v)
			case el.name == "edge":
				a, b := el.index("vertex1"), el.index("vertex2")
				if a < 0 || b < 0 || len(values) < len(el.properties) {
					err = fmt.Errorf("edge %d: needs vertex1 and vertex2", n)
					return
				}
				addEdge(int(values[a]), int(values[b]))
			case el.name == "face" && el.list:
				if len(values) == 0 || len(values) < 1+int(values[0]) {
					err = fmt.Errorf("face %d: truncated", n)
					return
				}
				ids := lo.Map(values[1:1+int(values[0])], func(f float64, _ int) int { return int(f) })
				for i := range ids {
					addEdge(ids[i], ids[(i+1)%len(ids)])
				}
			}
		}
	}

	err = scanner.Err()
	return
}

func (pf *Format) Decode(reader spiralizer.Reader, filesize int64) (mesh *spiralizer.Mesh, err error) {
	mesh, err = pf.decodeMesh(io.NewSectionReader(reader, 0, filesize))
	if err != nil {
		return
	}

	spiralizer.Logger().Debugf("ply: %d vertices, %d edges", len(mesh.Vertices), len(mesh.Edges))

	return
}
