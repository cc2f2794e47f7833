package linprog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimum-cost covering: min x1 + x2 subject to x1 + x2 >= 5. The flipped
// >= row starts primal-infeasible but dual-feasible, exactly the dual
// simplex territory.
func coverModel() *Model {
	m := NewModel(Min, []float64{1, 1}, []SignRestriction{NonNegative, NonNegative})
	m.AddConstraint([]float64{1, 1}, GE, 5)
	return m
}

func TestDualSimplexRestoresFeasibility(t *testing.T) {
	res, err := Solve(coverModel(), AlgDual, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, res.Solution.Status)
	assert.InDelta(t, 5, res.Solution.Z, 1e-9)
	assert.InDelta(t, 5, res.Solution.X["X1"]+res.Solution.X["X2"], 1e-9)
}

func TestDualSimplexOnFeasibleTableauIsPrimal(t *testing.T) {
	// nothing to repair: the dual pass is a no-op and the primal finishes
	res, err := Solve(wyndor(), AlgDual, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 36, res.Solution.Z, 1e-9)
}

func TestDualSimplexInfeasible(t *testing.T) {
	m := NewModel(Max, []float64{1, 1}, []SignRestriction{NonNegative, NonNegative})
	m.AddConstraint([]float64{1, 1}, LE, 2)
	m.AddConstraint([]float64{1, 1}, GE, 5)

	res, err := Solve(m, AlgDual, DefaultConfig())
	assert.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, StatusInfeasible, res.Solution.Status)
}
