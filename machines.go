//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"
)

type BedSize struct {
	Xmm, Ymm float64
}

// Machine is a printer preset: its bed, and its control-program blocks
type Machine struct {
	Vendor    string
	Model     string
	Bed       BedSize
	Templates Templates
}

var (
	Machines = map[string](*Machine){}
)

func RegisterMachine(name string, machine Machine) (err error) {
	_, ok := Machines[name]
	if ok {
		err = fmt.Errorf("name already exists in Machine list")
		return
	}

	Machines[name] = &machine

	return
}

func RegisterMachines(machineMap map[string]Machine) (err error) {
	for name, machine := range machineMap {
		err = RegisterMachine(name, machine)
		if err != nil {
			return
		}
	}

	return
}
