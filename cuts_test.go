package linprog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCuttingPlaneSingleCut(t *testing.T) {
	// max x1 with 2x1 <= 3 integral: the relaxation sits at 1.5 and one
	// Gomory cut rounds it down to 1
	m := NewModel(Max, []float64{1}, []SignRestriction{Integer})
	m.AddConstraint([]float64{2}, LE, 3)

	res, err := Solve(m, AlgCut, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, res.Solution.Status)
	assert.InDelta(t, 1, res.Solution.Z, 1e-9)
	assert.InDelta(t, 1, res.Solution.X["X1"], 1e-9)

	text := res.Trace.String()
	assert.Contains(t, text, "cut 1")
	assert.NotContains(t, text, "cut 2")
}

func TestCuttingPlaneInteger(t *testing.T) {
	// fractional cuts on this instance either prove the integer optimum
	// (Z = 20 at (4, 0), matching branch-and-bound) or stop at the
	// documented cut cap; both are legal terminal outcomes, silent
	// wrong answers are not
	res, err := Solve(knapsackish(), AlgCut, DefaultConfig())

	if err != nil {
		require.ErrorIs(t, err, ErrCutLimit)
		assert.Equal(t, StatusCutLimit, res.Solution.Status)
		return
	}

	assert.Equal(t, StatusOptimal, res.Solution.Status)
	assert.InDelta(t, 20, res.Solution.Z, 1e-6)
	for label, v := range res.Solution.X {
		assert.InDeltaf(t, math.Round(v), v, 1e-6, "variable %s", label)
	}

	bnb, err := Solve(knapsackish(), AlgBnB, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, bnb.Solution.Z, res.Solution.Z, 1e-6)
}

func TestCuttingPlaneNoIntegers(t *testing.T) {
	res, err := Solve(wyndor(), AlgCut, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 36, res.Solution.Z, 1e-9)
	assert.Contains(t, res.Trace.String(), "after 0 cuts")
}

func TestCuttingPlaneCutLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCuts = 0

	res, err := Solve(knapsackish(), AlgCut, cfg)
	assert.ErrorIs(t, err, ErrCutLimit)
	assert.Equal(t, StatusCutLimit, res.Solution.Status)
}

// every Gomory cut must separate the fractional optimum it was derived
// from while keeping all integer-feasible points.
func TestGomoryCutValidity(t *testing.T) {
	std, err := Standardize(knapsackish())
	require.NoError(t, err)
	cfg := DefaultConfig()
	tab := NewTableau(std, cfg)
	st, err := PrimalSimplex(tab, NewTrace(), cfg)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, st)

	// derive the cut from the fractional basic row (X2 = 1.5)
	row := tab.BasicRowOf(1)
	require.GreaterOrEqual(t, row, 0)
	require.InDelta(t, 1.5, tab.RHS(row), 1e-9)

	coefs := make([]float64, tab.Cols)
	for j := 0; j < tab.Cols; j++ {
		coefs[j] = -gomoryFrac(tab.At(row, j), cfg.CutEps)
	}
	rhs := -gomoryFrac(tab.RHS(row), cfg.CutEps)

	// the current optimum violates the cut: its non-basic slacks are zero
	// so the row evaluates to 0 > rhs
	assert.Less(t, rhs, 0.0)

	// every integer-feasible point of the original model satisfies the
	// cut once its slacks are substituted in
	for x1 := 0.0; x1 <= 4; x1++ {
		for x2 := 0.0; x2 <= 3; x2++ {
			if 6*x1+4*x2 > 24 || x1+2*x2 > 6 {
				continue
			}
			s1 := 24 - 6*x1 - 4*x2
			s2 := 6 - x1 - 2*x2
			point := []float64{x1, x2, s1, s2}
			lhs := 0.0
			for j, c := range coefs {
				lhs += c * point[j]
			}
			assert.LessOrEqualf(t, lhs, rhs+1e-9, "integer point (%v, %v)", x1, x2)
		}
	}
}

func TestGomoryFrac(t *testing.T) {
	eps := 1e-12
	assert.InDelta(t, 0.5, gomoryFrac(2.5, eps), 1e-12)
	assert.InDelta(t, 0.75, gomoryFrac(-0.25, eps), 1e-12)
	assert.Equal(t, 0.0, gomoryFrac(3, eps))
	assert.Equal(t, 0.0, gomoryFrac(2.9999999999999999, eps))
}
