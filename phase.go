//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"fmt"
)

type Phase int

const (
	PhaseNone = Phase(iota)
	PhaseBottom
	PhaseSpiral
	PhaseFilamentChange
	PhaseTop
)

func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "NONE"
	case PhaseBottom:
		return "BOTTOM"
	case PhaseSpiral:
		return "SPIRAL"
	case PhaseFilamentChange:
		return "FILAMENT_CHANGE"
	case PhaseTop:
		return "TOP"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

type Subphase int

const (
	SubphaseNone = Subphase(iota)
	SubphaseFlat
	SubphaseRampUp
	SubphaseRampDown
	SubphaseSpiral
)

func (s Subphase) String() string {
	switch s {
	case SubphaseNone:
		return "NONE"
	case SubphaseFlat:
		return "FLAT"
	case SubphaseRampUp:
		return "RAMP_UP"
	case SubphaseRampDown:
		return "RAMP_DOWN"
	case SubphaseSpiral:
		return "SPIRAL"
	}
	return fmt.Sprintf("Subphase(%d)", int(s))
}

// State is the print phase of one turn
type State struct {
	Phase    Phase
	Subphase Subphase
}

func (s State) String() string {
	return s.Phase.String() + "/" + s.Subphase.String()
}

// RampMode is the vertical lerp rule between a layer and the next
type RampMode int

const (
	RampFlat   = RampMode(iota) // Stay on the current layer
	RampSpiral                  // Rise linearly across the turn
)

// Factor is the lerp factor towards the next layer at turn fraction alpha
func (mode RampMode) Factor(alpha float64) float64 {
	if mode == RampSpiral {
		return alpha
	}
	return 0
}

// ThicknessMode is the extrusion height rule across a turn
type ThicknessMode int

const (
	ThicknessConstant = ThicknessMode(iota)
	ThicknessUp
	ThicknessDown
)

// Height is the extrusion height at turn fraction alpha
func (mode ThicknessMode) Height(alpha float64, height float64) float64 {
	switch mode {
	case ThicknessUp:
		return alpha * height
	case ThicknessDown:
		return (1 - alpha) * height
	}
	return height
}

// Turn is the input of one state machine evaluation
type Turn struct {
	Index          int   // Spiral turn index, 0 for the first
	State          State // State of the previous turn
	Layer          int   // Layer about to be walked
	Delta          int   // Layer advance of the previous turn
	FilamentChange bool  // Layer is in the filament change set
	Last           int   // Last layer that still has a layer above it
}

// Transition is the result of one state machine evaluation
type Transition struct {
	State     State
	Delta     int // Layer advance after walking this turn
	Ramp      RampMode
	Thickness ThicknessMode
	Material  int // Material index increment at the start of this turn
	Terminate bool
}

var (
	stateBottomFlat    = State{PhaseBottom, SubphaseFlat}
	stateBottomRampUp  = State{PhaseBottom, SubphaseRampUp}
	stateSpiral        = State{PhaseSpiral, SubphaseSpiral}
	stateChangeDown    = State{PhaseFilamentChange, SubphaseRampDown}
	stateChangeUp      = State{PhaseFilamentChange, SubphaseRampUp}
	stateTopRampDown   = State{PhaseTop, SubphaseRampDown}
	transitionTerminal = Transition{Terminate: true}
)

// spiralOrTop leaves a steady or ramp up turn
func spiralOrTop(turn Turn) (tr Transition) {
	switch {
	case turn.Layer == turn.Last-1 && turn.Delta == 1:
		tr = Transition{State: stateTopRampDown, Delta: 0, Ramp: RampFlat, Thickness: ThicknessDown}
	case turn.State == stateSpiral && turn.FilamentChange:
		tr = Transition{State: stateChangeDown, Delta: 0, Ramp: RampFlat, Thickness: ThicknessDown}
	default:
		tr = Transition{State: stateSpiral, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessConstant}
	}
	return
}

// NextState decides the print phase of a turn from the previous one.
// An unknown previous state is a StructuralError.
func NextState(turn Turn) (tr Transition, err error) {
	if turn.Index == 0 {
		tr = Transition{State: stateBottomFlat, Delta: 0, Ramp: RampFlat, Thickness: ThicknessConstant}
		return
	}

	switch turn.State {
	case stateBottomFlat:
		tr = Transition{State: stateBottomRampUp, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessUp}
	case stateBottomRampUp, stateChangeUp, stateSpiral:
		tr = spiralOrTop(turn)
	case stateChangeDown:
		tr = Transition{State: stateChangeUp, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessUp, Material: 1}
	case stateTopRampDown:
		if turn.Layer == turn.Last-1 && turn.Delta == 0 {
			tr = transitionTerminal
			return
		}
		err = &StructuralError{Layer: turn.Layer, Vertex: -1, Reason: fmt.Sprintf("%v reached off the last layer", turn.State)}
	default:
		err = &StructuralError{Layer: turn.Layer, Vertex: -1, Reason: fmt.Sprintf("unrecognized print phase %v", turn.State)}
	}

	return
}
