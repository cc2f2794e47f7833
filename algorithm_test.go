package linprog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveDispatchAgreement(t *testing.T) {
	for _, alg := range []Algorithm{AlgPrimal, AlgDual, AlgTwoPhase, AlgRevised, AlgBnB, AlgCut} {
		t.Run(alg.String(), func(t *testing.T) {
			res, err := Solve(wyndor(), alg, DefaultConfig())
			require.NoError(t, err)
			assert.Equal(t, StatusOptimal, res.Solution.Status)
			assert.InDelta(t, 36, res.Solution.Z, 1e-8)
		})
	}
}

// mixed relations are rejected at standardization, not silently mangled.
func TestSolveUnsupportedForm(t *testing.T) {
	m := NewModel(Min, []float64{4, 1}, []SignRestriction{NonNegative, NonNegative})
	m.AddConstraint([]float64{3, 1}, EQ, 3)
	m.AddConstraint([]float64{4, 3}, GE, 6)
	m.AddConstraint([]float64{1, 2}, LE, 4)

	_, err := Solve(m, AlgPrimal, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnsupportedForm)

	_, err = Solve(m, AlgBnB, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnsupportedForm)
}

func TestAlgorithmString(t *testing.T) {
	assert.Equal(t, "PrimalSimplex", AlgPrimal.String())
	assert.Equal(t, "BranchAndBound", AlgBnB.String())
	assert.Equal(t, "CuttingPlane", AlgCut.String())
}
