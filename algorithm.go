package linprog

// Algorithm selects which driver Solve dispatches to.
type Algorithm int

const (
	AlgPrimal Algorithm = iota
	AlgDual
	AlgTwoPhase
	AlgRevised
	AlgBnB
	AlgCut
)

func (a Algorithm) String() string {
	switch a {
	case AlgDual:
		return "DualSimplex"
	case AlgTwoPhase:
		return "TwoPhase"
	case AlgRevised:
		return "RevisedSimplex"
	case AlgBnB:
		return "BranchAndBound"
	case AlgCut:
		return "CuttingPlane"
	default:
		return "PrimalSimplex"
	}
}

// Solve runs the chosen driver on the model and returns the solution with
// its trace. Terminal verdicts (infeasible, unbounded, limits) are carried
// both in the solution status and as the matching sentinel error.
func Solve(m *Model, alg Algorithm, cfg SolverConfig) (*Result, error) {
	switch alg {
	case AlgBnB:
		return BranchAndBound(m, cfg)
	case AlgCut:
		return CuttingPlane(m, cfg)
	case AlgRevised:
		tr := NewTrace()
		std, err := Standardize(m)
		if err != nil {
			return nil, err
		}
		sol, err := RevisedSimplex(std, tr, cfg)
		return &Result{Solution: sol, Trace: tr}, err
	case AlgDual:
		return solveTableau(m, cfg, true, func(t *Tableau, tr *Trace) (Status, error) {
			if st, err := DualSimplex(t, tr, cfg); st != StatusOptimal {
				return st, err
			}
			return PrimalSimplex(t, tr, cfg)
		})
	case AlgTwoPhase:
		return solveTableau(m, cfg, true, func(t *Tableau, tr *Trace) (Status, error) {
			return TwoPhase(t, tr, cfg)
		})
	default:
		return solveTableau(m, cfg, false, func(t *Tableau, tr *Trace) (Status, error) {
			return PrimalSimplex(t, tr, cfg)
		})
	}
}

func solveTableau(m *Model, cfg SolverConfig, relaxed bool, run func(*Tableau, *Trace) (Status, error)) (*Result, error) {
	tr := NewTrace()
	std, err := standardize(m, relaxed)
	if err != nil {
		return nil, err
	}
	t := NewTableau(std, cfg)
	st, err := run(t, tr)
	if st != StatusOptimal {
		return &Result{Solution: Solution{Status: st}, Trace: tr}, err
	}
	return &Result{Solution: extractSolution(t, std), Trace: tr}, nil
}
