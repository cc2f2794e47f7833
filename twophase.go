package linprog

import "math"

// TwoPhase repairs a tableau with negative right-hand sides without
// introducing artificial variables, then hands the repaired tableau to the
// primal driver. If the initial tableau is already feasible this is just a
// primal solve.
func TwoPhase(t *Tableau, tr *Trace, cfg SolverConfig) (Status, error) {
	obj := t.ObjRow()

	for iter := 0; iter < cfg.MaxPhaseIIter; iter++ {
		// most negative RHS row, if any
		row := -1
		minRHS := -cfg.Eps
		for i := 0; i < t.Rows; i++ {
			if r := t.RHS(i); r < minRHS {
				minRHS = r
				row = i
			}
		}
		if row < 0 {
			if iter > 0 {
				tr.Stepf("phase I: feasibility restored after %d pivots, switching to primal", iter)
			}
			return PrimalSimplex(t, tr, cfg)
		}

		// choose the negative entry whose objective-row ratio is smallest
		// in magnitude, so the objective row is disturbed the least
		col := -1
		minRatio := math.Inf(1)
		for j := 0; j < t.Cols; j++ {
			d := t.At(row, j)
			if d >= -cfg.Eps {
				continue
			}
			if ratio := math.Abs(t.At(obj, j) / d); ratio < minRatio {
				minRatio = ratio
				col = j
			}
		}
		if col < 0 {
			tr.Stepf("phase I: row %d has no negative entry, problem is infeasible", row+1)
			return StatusInfeasible, ErrInfeasible
		}

		out := t.ColNames[t.Basis[row]]
		t.Pivot(row, col)
		t.Basis[row] = col
		tr.Stepf("phase I pivot %d: %s enters, %s leaves (row %d)", iter+1, t.ColNames[col], out, row+1)
	}

	tr.Stepf("phase I: iteration limit %d reached", cfg.MaxPhaseIIter)
	return StatusIterationLimit, ErrIterationLimit
}
