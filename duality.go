package linprog

import (
	"fmt"
	"math"
)

// DualityReport is the outcome of constructing and solving the dual next
// to its primal.
type DualityReport struct {
	Dual    *Model
	Primal  Solution
	DualSol Solution
	Strong  bool
	Trace   *Trace
}

// DualOf constructs the dual by the standard transformation: b and c swap
// roles, A is transposed and the sense flips. The dual variables are
// non-negative; the dual relations are >= when the primal maximizes and
// <= when it minimizes.
func DualOf(m *Model) (*Model, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	nm := len(m.Constraints)
	objective := make([]float64, nm)
	signs := make([]SignRestriction, nm)
	for i, con := range m.Constraints {
		objective[i] = con.RHS
		signs[i] = NonNegative
	}

	dual := NewModel(Min, objective, signs)
	for i := range dual.Labels {
		dual.Labels[i] = fmt.Sprintf("Y%d", i+1)
	}
	rel := GE
	if m.Sense == Min {
		dual.Sense = Max
		rel = LE
	}

	// transpose: one dual constraint per primal variable
	for j := 0; j < m.NumVariables(); j++ {
		coefs := make([]float64, nm)
		for i, con := range m.Constraints {
			coefs[i] = con.Coefs[j]
		}
		dual.AddConstraint(coefs, rel, m.Objective[j])
	}
	return dual, nil
}

// CheckStrongDuality solves the primal and its constructed dual and
// compares the optima: equal within 1e-6 means strong duality holds.
func CheckStrongDuality(m *Model, cfg SolverConfig) (*DualityReport, error) {
	tr := NewTrace()

	dual, err := DualOf(m)
	if err != nil {
		return nil, err
	}
	rep := &DualityReport{Dual: dual, Trace: tr}

	// primal solve
	pstd, err := Standardize(m)
	if err != nil {
		return nil, err
	}
	pt := NewTableau(pstd, cfg)
	tr.Stepf("solving primal (%v, %d variables, %d constraints)", m.Sense, m.NumVariables(), len(m.Constraints))
	if st, err := PrimalSimplex(pt, tr, cfg); st != StatusOptimal {
		rep.Primal = Solution{Status: st}
		return rep, err
	}
	rep.Primal = extractSolution(pt, pstd)

	// dual solve: the flipped >= rows leave negative right-hand sides, so
	// repair feasibility first
	dstd, err := standardize(dual, true)
	if err != nil {
		return nil, err
	}
	dt := NewTableau(dstd, cfg)
	tr.Stepf("solving dual (%v, %d variables, %d constraints)", dual.Sense, dual.NumVariables(), len(dual.Constraints))
	if st, err := TwoPhase(dt, tr, cfg); st != StatusOptimal {
		rep.DualSol = Solution{Status: st}
		return rep, err
	}
	rep.DualSol = extractSolution(dt, dstd)

	rep.Strong = math.Abs(rep.Primal.Z-rep.DualSol.Z) < 1e-6
	if rep.Strong {
		tr.Stepf("strong duality: primal Z = %.6g equals dual Z = %.6g", rep.Primal.Z, rep.DualSol.Z)
	} else {
		tr.Stepf("weak duality only: primal Z = %.6g, dual Z = %.6g", rep.Primal.Z, rep.DualSol.Z)
	}
	return rep, nil
}
