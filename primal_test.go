package linprog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimalProductionMix(t *testing.T) {
	res, err := Solve(wyndor(), AlgPrimal, DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, StatusOptimal, res.Solution.Status)
	assert.InDelta(t, 36, res.Solution.Z, 1e-9)
	assert.InDelta(t, 2, res.Solution.X["X1"], 1e-9)
	assert.InDelta(t, 6, res.Solution.X["X2"], 1e-9)
}

func TestPrimalUnbounded(t *testing.T) {
	m := NewModel(Max, []float64{1, 1}, []SignRestriction{NonNegative, NonNegative})
	m.AddConstraint([]float64{1, -1}, LE, 1)
	m.AddConstraint([]float64{-1, 1}, LE, 1)

	res, err := Solve(m, AlgPrimal, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnbounded)
	assert.Equal(t, StatusUnbounded, res.Solution.Status)
}

func TestPrimalIterationLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxSimplexIter = 1

	res, err := Solve(wyndor(), AlgPrimal, cfg)
	assert.ErrorIs(t, err, ErrIterationLimit)
	assert.Equal(t, StatusIterationLimit, res.Solution.Status)
}

func TestPrimalTraceRecordsPivots(t *testing.T) {
	res, err := Solve(wyndor(), AlgPrimal, DefaultConfig())
	require.NoError(t, err)

	lines := res.Trace.Lines()
	require.NotEmpty(t, lines)
	assert.True(t, strings.Contains(lines[0], "pivot"))
	assert.True(t, strings.Contains(lines[len(lines)-1], "optimal"))
}

// tie in the ratio test must go to the smaller row index.
func TestPrimalRatioTieBreak(t *testing.T) {
	m := NewModel(Max, []float64{1}, []SignRestriction{NonNegative})
	m.AddConstraint([]float64{1}, LE, 3)
	m.AddConstraint([]float64{1}, LE, 3)

	std, err := Standardize(m)
	require.NoError(t, err)
	tab := NewTableau(std, DefaultConfig())
	st, err := PrimalSimplex(tab, NewTrace(), DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, st)

	// X1 entered on the first of the two tied rows
	assert.Equal(t, 0, tab.BasicRowOf(0))
}
