//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package spiralizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextState(t *testing.T) {
	table := map[string]struct {
		Turn       Turn
		Transition Transition
	}{
		"start": {
			Turn{Index: 0, Layer: 0, Last: 8},
			Transition{State: stateBottomFlat, Delta: 0, Ramp: RampFlat, Thickness: ThicknessConstant},
		},
		"ramp-up": {
			Turn{Index: 1, State: stateBottomFlat, Layer: 0, Last: 8},
			Transition{State: stateBottomRampUp, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessUp},
		},
		"spiral": {
			Turn{Index: 2, State: stateBottomRampUp, Layer: 1, Delta: 1, Last: 8},
			Transition{State: stateSpiral, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessConstant},
		},
		"steady": {
			Turn{Index: 3, State: stateSpiral, Layer: 2, Delta: 1, Last: 8},
			Transition{State: stateSpiral, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessConstant},
		},
		"change-down": {
			Turn{Index: 4, State: stateSpiral, Layer: 3, Delta: 1, FilamentChange: true, Last: 8},
			Transition{State: stateChangeDown, Delta: 0, Ramp: RampFlat, Thickness: ThicknessDown},
		},
		"change-up": {
			Turn{Index: 5, State: stateChangeDown, Layer: 3, Delta: 0, FilamentChange: true, Last: 8},
			Transition{State: stateChangeUp, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessUp, Material: 1},
		},
		"change-done": {
			Turn{Index: 6, State: stateChangeUp, Layer: 4, Delta: 1, Last: 8},
			Transition{State: stateSpiral, Delta: 1, Ramp: RampSpiral, Thickness: ThicknessConstant},
		},
		"top": {
			Turn{Index: 7, State: stateSpiral, Layer: 7, Delta: 1, Last: 8},
			Transition{State: stateTopRampDown, Delta: 0, Ramp: RampFlat, Thickness: ThicknessDown},
		},
		"top-before-change": {
			Turn{Index: 7, State: stateSpiral, Layer: 7, Delta: 1, FilamentChange: true, Last: 8},
			Transition{State: stateTopRampDown, Delta: 0, Ramp: RampFlat, Thickness: ThicknessDown},
		},
		"terminate": {
			Turn{Index: 8, State: stateTopRampDown, Layer: 7, Delta: 0, Last: 8},
			transitionTerminal,
		},
	}

	for key, item := range table {
		tr, err := NextState(item.Turn)
		require.NoError(t, err, key)
		assert.Equal(t, item.Transition, tr, key)
	}
}

func TestNextStateInvalid(t *testing.T) {
	table := map[string]Turn{
		"unknown":  {Index: 3, State: State{PhaseTop, SubphaseRampUp}, Layer: 2},
		"none":     {Index: 3, State: State{}, Layer: 2},
		"top-drop": {Index: 3, State: stateTopRampDown, Layer: 2, Last: 8},
	}

	for key, turn := range table {
		_, err := NextState(turn)
		var structural *StructuralError
		require.ErrorAs(t, err, &structural, key)
		assert.Equal(t, turn.Layer, structural.Layer, key)
		assert.Equal(t, -1, structural.Vertex, key)
	}
}

func TestRampLaws(t *testing.T) {
	assert.Equal(t, 0.0, RampFlat.Factor(0.75))
	assert.Equal(t, 0.75, RampSpiral.Factor(0.75))

	assert.Equal(t, 0.2, ThicknessConstant.Height(0.25, 0.2))
	assert.InDelta(t, 0.05, ThicknessUp.Height(0.25, 0.2), 1e-12)
	assert.InDelta(t, 0.15, ThicknessDown.Height(0.25, 0.2), 1e-12)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "FILAMENT_CHANGE/RAMP_DOWN", stateChangeDown.String())
	assert.Equal(t, "Phase(9)/Subphase(9)", State{Phase(9), Subphase(9)}.String())
}
