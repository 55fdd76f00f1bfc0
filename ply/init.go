//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package ply reads layer tagged contour meshes from, and writes spiral
// paths to, ASCII PLY files
package ply

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newFormatter := func(suffix string) spiralizer.Formatter { return NewFormatter(suffix) }

	spiralizer.RegisterFormatter(".ply", newFormatter)
}
