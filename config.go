package linprog

// SolverConfig carries the process-wide tolerances and iteration caps.
// It is a plain value passed into each driver; drivers never mutate it.
type SolverConfig struct {
	// Eps is the matrix tolerance used by pivoting and row comparisons.
	Eps float64

	// FracEps is the integrality tolerance used by branch-and-bound and
	// the cutting-plane loop.
	FracEps float64

	// BasisEps is the tolerance used when scanning for identity columns.
	BasisEps float64

	// CutEps clamps near-integral fractional parts to zero when a Gomory
	// row is generated.
	CutEps float64

	// Iteration caps. Exceeding a cap is a terminal, reported status.
	MaxSimplexIter int // primal and dual
	MaxPhaseIIter  int // two-phase repair loop
	MaxRevisedIter int
	MaxCuts        int
	MaxNodes       int
}

// DefaultConfig returns the tuning used throughout the package tests and
// by callers that have no reason to deviate.
func DefaultConfig() SolverConfig {
	return SolverConfig{
		Eps:            1e-9,
		FracEps:        1e-6,
		BasisEps:       1e-10,
		CutEps:         1e-12,
		MaxSimplexIter: 2000,
		MaxPhaseIIter:  1000,
		MaxRevisedIter: 500,
		MaxCuts:        50,
		MaxNodes:       2000,
	}
}
