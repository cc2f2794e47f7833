package linprog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDualOf(t *testing.T) {
	dual, err := DualOf(wyndor())
	require.NoError(t, err)

	assert.Equal(t, Min, dual.Sense)
	assert.Equal(t, []float64{4, 12, 18}, dual.Objective)
	assert.Equal(t, []string{"Y1", "Y2", "Y3"}, dual.Labels)

	// one >= constraint per primal variable, with the transposed column
	require.Len(t, dual.Constraints, 2)
	assert.Equal(t, []float64{1, 0, 3}, dual.Constraints[0].Coefs)
	assert.Equal(t, GE, dual.Constraints[0].Rel)
	assert.Equal(t, 3.0, dual.Constraints[0].RHS)
	assert.Equal(t, []float64{0, 2, 2}, dual.Constraints[1].Coefs)
	assert.Equal(t, 5.0, dual.Constraints[1].RHS)
}

func TestDualOfMinPrimal(t *testing.T) {
	m := NewModel(Min, []float64{1, 2}, []SignRestriction{NonNegative, NonNegative})
	m.AddConstraint([]float64{1, 1}, LE, 4)

	dual, err := DualOf(m)
	require.NoError(t, err)
	assert.Equal(t, Max, dual.Sense)
	assert.Equal(t, LE, dual.Constraints[0].Rel)
}

func TestStrongDuality(t *testing.T) {
	rep, err := CheckStrongDuality(wyndor(), DefaultConfig())
	require.NoError(t, err)

	assert.True(t, rep.Strong)
	assert.InDelta(t, 36, rep.Primal.Z, 1e-6)
	assert.InDelta(t, 36, rep.DualSol.Z, 1e-6)
	assert.Contains(t, rep.Trace.String(), "strong duality")

	// the dual's optimal variables are the primal shadow prices
	assert.InDelta(t, 0, rep.DualSol.X["Y1"], 1e-6)
	assert.InDelta(t, 1.5, rep.DualSol.X["Y2"], 1e-6)
	assert.InDelta(t, 1, rep.DualSol.X["Y3"], 1e-6)
}
