package linprog

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// RevisedSimplex solves the standard model in basis-inverse form: each
// iteration recomputes B^-1, prices the non-basic columns through the dual
// vector y = c_B * B^-1 and moves along the direction d = B^-1 * A_j.
// It requires a feasible identity basis to start from (phase II only).
func RevisedSimplex(std *StandardModel, tr *Trace, cfg SolverConfig) (Solution, error) {
	m := std.NumRows()
	n := std.NumCols()
	total := n + m

	// extended constraint matrix with the slack identity appended
	a := mat.NewDense(m, total, nil)
	a.Slice(0, m, 0, n).(*mat.Dense).Copy(std.A)
	for i := 0; i < m; i++ {
		a.Set(i, n+i, 1)
	}
	c := make([]float64, total)
	copy(c, std.C)

	// locate an identity basis: one unit column per row
	basis := make([]int, m)
	for i := range basis {
		basis[i] = -1
	}
cols:
	for j := 0; j < total && hasUnassigned(basis); j++ {
		unit := -1
		for i := 0; i < m; i++ {
			v := a.At(i, j)
			switch {
			case math.Abs(v-1) < cfg.BasisEps:
				if unit >= 0 {
					continue cols
				}
				unit = i
			case math.Abs(v) > cfg.BasisEps:
				continue cols
			}
		}
		if unit >= 0 && basis[unit] < 0 {
			basis[unit] = j
		}
	}
	if hasUnassigned(basis) {
		tr.Stepf("revised: no identity basis present, run phase I first")
		return Solution{Status: StatusInfeasible}, ErrNoIdentityBasis
	}
	for i := 0; i < m; i++ {
		if std.B[i] < -cfg.Eps {
			tr.Stepf("revised: initial basis is infeasible (b[%d] = %.6g), run phase I first", i+1, std.B[i])
			return Solution{Status: StatusInfeasible}, ErrNoIdentityBasis
		}
	}

	b := mat.NewDense(m, 1, append([]float64(nil), std.B...))

	for iter := 0; iter < cfg.MaxRevisedIter; iter++ {
		// B^-1 via gonum's dense matrix inverse
		bm := mat.NewDense(m, m, nil)
		for i := 0; i < m; i++ {
			for k := 0; k < m; k++ {
				bm.Set(i, k, a.At(i, basis[k]))
			}
		}
		var binv mat.Dense
		if err := binv.Inverse(bm); err != nil {
			return Solution{Status: StatusInfeasible}, errors.Wrap(ErrSingularBasis, err.Error())
		}

		// basic solution x_B = B^-1 * b
		var xb mat.Dense
		xb.Mul(&binv, b)

		// dual prices y = c_B * B^-1
		cb := mat.NewDense(1, m, nil)
		for k := 0; k < m; k++ {
			cb.Set(0, k, c[basis[k]])
		}
		var y mat.Dense
		y.Mul(cb, &binv)

		// pricing: reduced cost r_j = c_j - y*A_j, largest positive enters
		entering := -1
		best := cfg.Eps
		for j := 0; j < total; j++ {
			if inBasis(basis, j) {
				continue
			}
			rc := c[j] - mat.Dot(y.RowView(0), a.ColView(j))
			if rc > best {
				best = rc
				entering = j
			}
		}
		if entering < 0 {
			x := make([]float64, total)
			z := 0.0
			for k := 0; k < m; k++ {
				x[basis[k]] = xb.At(k, 0)
				z += c[basis[k]] * xb.At(k, 0)
			}
			tr.Stepf("revised: optimal after %d iterations, Z = %.6g", iter, z)
			orig := std.OriginalSolution(x[:n])
			return Solution{
				Z:      std.OriginalObjective(orig),
				X:      orig,
				Status: StatusOptimal,
			}, nil
		}

		// direction d = B^-1 * A_j and the ratio test along it
		var d mat.Dense
		d.Mul(&binv, a.ColView(entering))

		leave := -1
		minRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			di := d.At(i, 0)
			if di <= cfg.Eps {
				continue
			}
			if ratio := xb.At(i, 0) / di; ratio < minRatio {
				minRatio = ratio
				leave = i
			}
		}
		if leave < 0 {
			tr.Stepf("revised: direction for column %d is non-positive, problem is unbounded", entering+1)
			return Solution{Status: StatusUnbounded}, ErrUnbounded
		}

		tr.Stepf("revised iteration %d: column %d enters, column %d leaves (ratio %.6g, reduced cost %.6g)",
			iter+1, entering+1, basis[leave]+1, minRatio, best)
		basis[leave] = entering
	}

	tr.Stepf("revised: iteration limit %d reached", cfg.MaxRevisedIter)
	return Solution{Status: StatusIterationLimit}, ErrIterationLimit
}

func hasUnassigned(basis []int) bool {
	for _, b := range basis {
		if b < 0 {
			return true
		}
	}
	return false
}

func inBasis(basis []int, j int) bool {
	for _, b := range basis {
		if b == j {
			return true
		}
	}
	return false
}
