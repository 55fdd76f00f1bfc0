//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package curve writes spiral paths as swept centerline curves
package curve

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newFormatter := func(suffix string) spiralizer.Formatter { return NewFormatter(suffix) }

	spiralizer.RegisterFormatter(".curve", newFormatter)
}
