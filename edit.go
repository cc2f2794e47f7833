package linprog

import (
	"fmt"

	"github.com/pkg/errors"
)

// Editor applies post-optimality edits to a solved model: coefficient
// changes that stay inside their allowable range patch the optimal tableau
// in place, everything else re-standardizes and re-solves. Every
// coefficient edit (SetCoefficient) is appended to the sensitivity log when
// one is attached; added constraints and variables are not logged.
type Editor struct {
	model *Model
	std   *StandardModel
	tab   *Tableau
	cfg   SolverConfig
	trace *Trace
	log   *SensitivityLog
}

// NewEditor solves the model to optimality and wraps the result for
// editing. The model is cloned; the caller's copy stays untouched.
func NewEditor(m *Model, cfg SolverConfig) (*Editor, error) {
	e := &Editor{model: m.Clone(), cfg: cfg, trace: NewTrace()}
	if _, err := e.reoptimize(); err != nil {
		return nil, err
	}
	return e, nil
}

// AttachLog directs every subsequent coefficient edit to the sensitivity
// log.
func (e *Editor) AttachLog(l *SensitivityLog) { e.log = l }

// Tableau exposes the current optimal tableau.
func (e *Editor) Tableau() *Tableau { return e.tab }

// Model exposes the current (edited) model.
func (e *Editor) Model() *Model { return e.model }

// Trace exposes the accumulated edit trace.
func (e *Editor) Trace() *Trace { return e.trace }

// SetCoefficient changes the coefficient at (rowName, colName) to
// newValue. If the ranging analysis classifies the value as in range the
// tableau is patched in place and the current basis stays optimal;
// otherwise the model is re-standardized and re-solved.
func (e *Editor) SetCoefficient(rowName, colName string, newValue float64) (*Result, error) {
	rng, err := AnalyzeCoefficient(e.tab, e.std, rowName, colName, e.trace, e.cfg)
	if err != nil {
		return nil, err
	}
	old := rng.Current

	if err := e.applyToModel(rng, rowName, colName, newValue); err != nil {
		return nil, err
	}

	var res *Result
	if rng.InRange(newValue) {
		e.patchTableau(rng, newValue)
		e.trace.Stepf("edit %s/%s: %.6g -> %.6g in range, basis unchanged, Z = %.6g",
			rowName, colName, old, newValue, e.tab.Z())
		res = &Result{
			Solution: extractSolution(e.tab, e.std),
			Trace:    e.trace,
			Note:     "edit within allowable range, current solution still optimal",
		}
	} else {
		e.trace.Stepf("edit %s/%s: %.6g -> %.6g out of range, re-solving", rowName, colName, old, newValue)
		res, err = e.reoptimize()
		if err != nil {
			return res, err
		}
	}

	e.logEdit(rowName, colName, old, newValue, rng)
	return res, nil
}

// AddConstraint appends a constraint to the model and re-solves.
func (e *Editor) AddConstraint(coefs []float64, rel Relation, rhs float64) (*Result, error) {
	if len(coefs) != e.model.NumVariables() {
		return nil, errors.Wrapf(ErrBadModel, "constraint has %d coefficients, want %d", len(coefs), e.model.NumVariables())
	}
	e.model.AddConstraint(coefs, rel, rhs)
	e.trace.Stepf("added constraint %d (%v, RHS %.6g), re-solving", len(e.model.Constraints), rel, rhs)
	return e.reoptimize()
}

// AddVariable appends a variable: one objective coefficient, one
// coefficient per existing constraint, and a sign restriction. The model
// is re-solved from scratch.
func (e *Editor) AddVariable(label string, objCoef float64, colCoefs []float64, sign SignRestriction) (*Result, error) {
	if len(colCoefs) != len(e.model.Constraints) {
		return nil, errors.Wrapf(ErrBadModel, "variable column has %d coefficients for %d constraints", len(colCoefs), len(e.model.Constraints))
	}
	e.model.Objective = append(e.model.Objective, objCoef)
	e.model.Signs = append(e.model.Signs, sign)
	e.model.Labels = append(e.model.Labels, label)
	for i := range e.model.Constraints {
		e.model.Constraints[i].Coefs = append(e.model.Constraints[i].Coefs, colCoefs[i])
	}
	e.trace.Stepf("added variable %s (objective %.6g, %v), re-solving", label, objCoef, sign)
	return e.reoptimize()
}

func (e *Editor) applyToModel(rng *Ranging, rowName, colName string, newValue float64) error {
	switch rng.Kind {
	case RangeObjNonBasic, RangeObjBasic:
		j := e.std.Cols[e.tab.ColIndex(colName)].OrigIndex
		e.model.Objective[j] = newValue
	case RangeRHS:
		ci, err := constraintIndex(rowName, len(e.model.Constraints))
		if err != nil {
			return err
		}
		e.model.Constraints[ci].RHS = newValue
	case RangeConstraintCoef:
		ci, err := constraintIndex(rowName, len(e.model.Constraints))
		if err != nil {
			return err
		}
		j, err := labelIndex(e.model, colName)
		if err != nil {
			return err
		}
		e.model.Constraints[ci].Coefs[j] = newValue
	}
	return nil
}

// patchTableau applies an in-range edit to the optimal tableau without
// pivoting. The updates keep every reduced cost non-negative, so a primal
// re-run terminates immediately.
func (e *Editor) patchTableau(rng *Ranging, newValue float64) {
	t := e.tab
	obj := t.ObjRow()
	delta := newValue - rng.Current

	switch rng.Kind {
	case RangeObjNonBasic, RangeObjBasic:
		j := t.ColIndex(rng.Col)
		// translate the objective delta into the maximization form the
		// tableau is expressed in
		d := delta * e.std.Cols[j].Part.sign()
		if e.model.Sense == Min {
			d = -d
		}
		if r := t.BasicRowOf(j); r >= 0 {
			for k := 0; k <= t.Cols; k++ {
				t.Set(obj, k, t.At(obj, k)+d*t.At(r, k))
			}
		}
		t.Set(obj, j, t.At(obj, j)-d)
	case RangeRHS:
		ci, _ := constraintIndex(rng.Row, len(e.model.Constraints))
		s := t.ColIndex(fmt.Sprintf("S%d", ci+1))
		if s < 0 {
			return
		}
		for i := 0; i <= t.Rows; i++ {
			t.Set(i, t.Cols, t.At(i, t.Cols)+delta*t.At(i, s))
		}
	}
}

// reoptimize rebuilds the standard form from the edited model and solves
// it: primal on a feasible start, dual-then-primal when an edit left the
// tableau with a negative right-hand side.
func (e *Editor) reoptimize() (*Result, error) {
	std, err := standardize(e.model, true)
	if err != nil {
		return nil, err
	}
	t := NewTableau(std, e.cfg)

	if t.HasNegativeRHS() {
		if st, err := DualSimplex(t, e.trace, e.cfg); st != StatusOptimal {
			e.std, e.tab = std, t
			return &Result{Solution: Solution{Status: st}, Trace: e.trace}, err
		}
	}
	st, err := PrimalSimplex(t, e.trace, e.cfg)
	e.std, e.tab = std, t
	if st != StatusOptimal {
		return &Result{Solution: Solution{Status: st}, Trace: e.trace}, err
	}
	return &Result{Solution: extractSolution(t, std), Trace: e.trace}, nil
}

func (e *Editor) logEdit(rowName, colName string, old, newValue float64, rng *Ranging) {
	if e.log == nil {
		return
	}
	entry := fmt.Sprintf("edit %s/%s: %.6g -> %.6g (allowable decrease %.6g, increase %.6g)\n%s",
		rowName, colName, old, newValue, rng.AllowableDecrease, rng.AllowableIncrease, e.tab.Format())
	if err := e.log.Append(entry); err != nil {
		// file trouble never aborts a solve already in memory
		e.trace.Stepf("sensitivity log write failed: %v", err)
	}
}

// extractSolution reads the current basic solution off a tableau and maps
// it back to the original variables and sense.
func extractSolution(t *Tableau, std *StandardModel) Solution {
	x := std.OriginalSolution(t.BasicSolution()[:std.NumCols()])
	return Solution{
		Z:      std.OriginalObjective(x),
		X:      x,
		Status: StatusOptimal,
	}
}
