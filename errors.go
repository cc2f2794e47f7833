package linprog

import "github.com/pkg/errors"

// Sentinel failures shared by the solver drivers. Callers can test against
// these with errors.Is / errors.Cause even when a driver wrapped them with
// extra context.
var (
	ErrBadModel        = errors.New("linprog: malformed model")
	ErrUnsupportedForm = errors.New("linprog: model not reducible to standard form")
	ErrInfeasible      = errors.New("linprog: problem is infeasible")
	ErrUnbounded       = errors.New("linprog: problem is unbounded")
	ErrSingularBasis   = errors.New("linprog: basis matrix is singular")
	ErrNoIdentityBasis = errors.New("linprog: no identity basis present, phase I required")
	ErrDegeneratePivot = errors.New("linprog: pivot element below tolerance")
	ErrIterationLimit  = errors.New("linprog: iteration limit reached")
	ErrNodeLimit       = errors.New("linprog: node limit reached")
	ErrCutLimit        = errors.New("linprog: cut limit reached")
	ErrNoCutRow        = errors.New("linprog: no suitable cut row")
)
