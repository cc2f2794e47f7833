package linprog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTwoPhaseRepairsNegativeRHS(t *testing.T) {
	res, err := Solve(coverModel(), AlgTwoPhase, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, res.Solution.Status)
	assert.InDelta(t, 5, res.Solution.Z, 1e-9)
	assert.True(t, strings.Contains(res.Trace.String(), "phase I"))
}

func TestTwoPhaseSkipsRepairWhenFeasible(t *testing.T) {
	res, err := Solve(wyndor(), AlgTwoPhase, DefaultConfig())
	require.NoError(t, err)

	assert.InDelta(t, 36, res.Solution.Z, 1e-9)
	assert.False(t, strings.Contains(res.Trace.String(), "phase I"))
}

func TestTwoPhaseInfeasible(t *testing.T) {
	m := NewModel(Max, []float64{1, 1}, []SignRestriction{NonNegative, NonNegative})
	m.AddConstraint([]float64{1, 1}, LE, 2)
	m.AddConstraint([]float64{1, 1}, GE, 5)

	res, err := Solve(m, AlgTwoPhase, DefaultConfig())
	assert.ErrorIs(t, err, ErrInfeasible)
	assert.Equal(t, StatusInfeasible, res.Solution.Status)
}
