//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package preview renders spiral paths as PNG and SVG drawings
package preview

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newFormatter := func(suffix string) spiralizer.Formatter { return NewFormatter(suffix) }

	spiralizer.RegisterFormatter(".png", newFormatter)
	spiralizer.RegisterFormatter(".svg", newFormatter)
}
