//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/ezrec/spiralizer"
)

func PrintMachines() {
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Known machines:")
	fmt.Fprintln(os.Stderr)

	keys := []string{}
	for key := range spiralizer.Machines {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		item := spiralizer.Machines[key]
		fmt.Fprintf(os.Stderr, "    %-20s %s %s (%.0f x %.0f mm)\n", key,
			item.Vendor, item.Model, item.Bed.Xmm, item.Bed.Ymm)
	}
}
