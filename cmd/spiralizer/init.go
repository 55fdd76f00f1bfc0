//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"github.com/ezrec/spiralizer"
)

func init() {
	newTubeFormatter := func(suffix string) spiralizer.Formatter { return NewTubeFormatter() }

	spiralizer.RegisterGenerator("tube", newTubeFormatter)
}
