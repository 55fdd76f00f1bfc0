//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package dxf reads sliced contours from DXF polylines
package dxf

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newFormatter := func(suffix string) spiralizer.Formatter { return NewFormatter(suffix) }

	spiralizer.RegisterFormatter(".dxf", newFormatter)
}
