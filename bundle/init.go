//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package bundle packs a spiral path into a '.zip' archive holding the
// printer program, a preview image, and the toolpath geometry
package bundle

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newFormatter := func(suffix string) spiralizer.Formatter { return NewFormatter(suffix) }

	spiralizer.RegisterFormatter(".zip", newFormatter)
}
