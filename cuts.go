package linprog

import "math"

// CuttingPlane solves a mixed-integer model with Gomory fractional cuts:
// solve the LP relaxation, derive a cut from the basic integer row whose
// fractional part is closest to one half, restore feasibility with the
// dual simplex, re-optimize, repeat.
func CuttingPlane(m *Model, cfg SolverConfig) (*Result, error) {
	tr := NewTrace()
	res := &Result{Trace: tr}

	std, err := Standardize(m)
	if err != nil {
		return nil, err
	}
	t := NewTableau(std, cfg)

	if st, err := PrimalSimplex(t, tr, cfg); st != StatusOptimal {
		res.Solution = Solution{Status: st}
		return res, err
	}

	for cut := 0; ; cut++ {
		stdX := t.BasicSolution()[:std.NumCols()]
		origX := std.OriginalSolution(stdX)

		if len(fractionalVariables(m, origX, cfg.FracEps)) == 0 {
			x := roundIntegral(m, origX, cfg.FracEps)
			res.Solution = solutionFrom(std, x, StatusOptimal)
			tr.Stepf("all integer variables integral after %d cuts, Z = %.6g", cut, res.Solution.Z)
			return res, nil
		}
		if cut == cfg.MaxCuts {
			break
		}

		// cut row: the basic integer column whose RHS fraction is closest
		// to one half, smaller row index breaking ties
		row := -1
		var cutCol int
		bestDist := math.Inf(1)
		for k := 0; k < std.NumCols(); k++ {
			if !std.Cols[k].IsInteger {
				continue
			}
			r := t.BasicRowOf(k)
			if r < 0 {
				continue
			}
			f := frac(t.RHS(r))
			if f < cfg.FracEps || f > 1-cfg.FracEps {
				continue
			}
			if d := math.Abs(f - 0.5); d < bestDist || (d == bestDist && r < row) {
				bestDist = d
				row = r
				cutCol = k
			}
		}
		if row < 0 {
			tr.Stepf("no suitable cut row: fractional integer variables remain but none is basic with a fractional right-hand side")
			res.Solution = solutionFrom(std, origX, StatusCutLimit)
			res.Note = "no suitable cut row"
			return res, ErrNoCutRow
		}

		coefs := make([]float64, t.Cols)
		for j := 0; j < t.Cols; j++ {
			coefs[j] = -gomoryFrac(t.At(row, j), cfg.CutEps)
		}
		rhs := -gomoryFrac(t.RHS(row), cfg.CutEps)

		t = t.GrowForCut(coefs, rhs)
		tr.Stepf("cut %d: from row %d (%s basic at %.6g), new slack %s, RHS %.6g",
			cut+1, row+1, std.Cols[cutCol].Name, t.RHS(row), t.ColNames[t.Cols-1], rhs)

		// the cut leaves the tableau dual-feasible but primal-infeasible
		if st, err := DualSimplex(t, tr, cfg); st != StatusOptimal {
			res.Solution = Solution{Status: StatusInfeasible}
			return res, err
		}
		if st, err := PrimalSimplex(t, tr, cfg); st != StatusOptimal {
			res.Solution = Solution{Status: StatusUnbounded}
			return res, err
		}
	}

	tr.Stepf("cut limit %d reached", cfg.MaxCuts)
	stdX := t.BasicSolution()[:std.NumCols()]
	res.Solution = solutionFrom(std, std.OriginalSolution(stdX), StatusCutLimit)
	res.Note = "cut limit reached before all integer variables became integral"
	return res, ErrCutLimit
}

// gomoryFrac is the fractional part clamped to [0, 1): values within eps
// of an integer are treated as exactly integral.
func gomoryFrac(v, eps float64) float64 {
	f := v - math.Floor(v)
	if f < eps || f > 1-eps {
		return 0
	}
	return f
}
