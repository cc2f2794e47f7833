package linprog

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// RangeKind classifies which coefficient a ranging result describes.
type RangeKind int

const (
	RangeObjNonBasic RangeKind = iota
	RangeObjBasic
	RangeRHS
	RangeConstraintCoef
)

// Ranging is the sensitivity report for one coefficient of the optimal
// tableau: the current value, how far it may move in either direction
// without changing the optimal basis, and the shadow price where one
// applies. Open ends are +Inf; NaN bounds mean the range is not available
// in closed form.
type Ranging struct {
	Kind    RangeKind
	Row     string
	Col     string
	Current float64

	AllowableIncrease float64
	AllowableDecrease float64
	ShadowPrice       float64

	Note string
}

// InRange reports whether a new value for the coefficient stays within
// the allowable interval. Ranges with NaN ends are never in range.
func (r *Ranging) InRange(newValue float64) bool {
	if math.IsNaN(r.AllowableIncrease) || math.IsNaN(r.AllowableDecrease) {
		return false
	}
	delta := newValue - r.Current
	if delta >= 0 {
		return delta <= r.AllowableIncrease
	}
	return -delta <= r.AllowableDecrease
}

// AnalyzeCoefficient classifies the coefficient at (rowName, colName) on
// an optimal tableau and computes its allowable range. Row names are "Z"
// for the objective row and "C1".."Cm" for the original constraints.
// Column names are the tableau's structural column names on the "Z" row
// (the variable labels, with X+/X- for free and X~ for non-positive
// variables), the variable labels on a constraint row, or "RHS".
func AnalyzeCoefficient(t *Tableau, std *StandardModel, rowName, colName string, tr *Trace, cfg SolverConfig) (*Ranging, error) {
	if rowName == "Z" {
		return analyzeObjective(t, std, colName, tr, cfg)
	}
	ci, err := constraintIndex(rowName, len(std.Src.Constraints))
	if err != nil {
		return nil, err
	}
	if colName == "RHS" {
		return analyzeRHS(t, std, ci, rowName, tr)
	}
	return analyzeConstraintCoef(std, ci, rowName, colName, tr)
}

func analyzeObjective(t *Tableau, std *StandardModel, colName string, tr *Trace, cfg SolverConfig) (*Ranging, error) {
	j := t.ColIndex(colName)
	if j < 0 || j >= std.NumCols() {
		return nil, errors.Wrapf(ErrBadModel, "no structural column named %s", colName)
	}
	current := std.Src.Objective[std.Cols[j].OrigIndex]
	obj := t.ObjRow()

	// the tableau ranges the maximization-form coefficient of column j; a
	// Min sense or a negated column (X~, X-) reverses the direction in
	// which the original coefficient moves
	flip := (std.Cols[j].Part.sign() < 0) != (std.Src.Sense == Min)

	r := t.BasicRowOf(j)
	if r < 0 {
		// non-basic: the reduced cost is the slack in the optimality
		// condition, so the maximization-form coefficient may grow by
		// exactly that much and shrink without limit
		rc := t.At(obj, j)
		inc, dec := rc, math.Inf(1)
		if flip {
			inc, dec = dec, inc
		}
		out := &Ranging{
			Kind:              RangeObjNonBasic,
			Row:               "Z",
			Col:               colName,
			Current:           current,
			AllowableIncrease: inc,
			AllowableDecrease: dec,
		}
		tr.Stepf("ranging Z/%s: non-basic, reduced cost %.6g, increase <= %.6g", colName, rc, out.AllowableIncrease)
		return out, nil
	}

	// basic in row r: the objective row moves by delta times row r, so the
	// per-column ratios -T[obj,k]/T[r,k] bound delta from both sides
	inc := math.Inf(1)
	dec := math.Inf(1)
	for k := 0; k < t.Cols; k++ {
		if k == j {
			continue
		}
		d := t.At(r, k)
		if math.Abs(d) <= cfg.Eps {
			continue
		}
		rho := -t.At(obj, k) / d
		if d > 0 {
			// lower bound on delta
			if -rho < dec {
				dec = -rho
			}
		} else if rho < inc {
			inc = rho
		}
	}
	if flip {
		inc, dec = dec, inc
	}
	out := &Ranging{
		Kind:              RangeObjBasic,
		Row:               "Z",
		Col:               colName,
		Current:           current,
		AllowableIncrease: inc,
		AllowableDecrease: dec,
	}
	tr.Stepf("ranging Z/%s: basic in row %d, decrease <= %.6g, increase <= %.6g", colName, r+1, dec, inc)
	return out, nil
}

func analyzeRHS(t *Tableau, std *StandardModel, ci int, rowName string, tr *Trace) (*Ranging, error) {
	con := std.Src.Constraints[ci]

	// the shadow price sits in the objective row under the row's slack
	slack := t.ColIndex("S" + strconv.Itoa(ci+1))
	price := 0.0
	if slack >= 0 {
		price = t.At(t.ObjRow(), slack)
	}
	out := &Ranging{
		Kind:              RangeRHS,
		Row:               rowName,
		Col:               "RHS",
		Current:           con.RHS,
		AllowableIncrease: math.Inf(1),
		AllowableDecrease: con.RHS,
		ShadowPrice:       price,
		Note:              "simplified",
	}
	tr.Stepf("ranging %s/RHS: shadow price %.6g, allowable decrease %.6g (simplified)", rowName, price, con.RHS)
	return out, nil
}

func analyzeConstraintCoef(std *StandardModel, ci int, rowName, colName string, tr *Trace) (*Ranging, error) {
	j, err := labelIndex(std.Src, colName)
	if err != nil {
		return nil, err
	}
	out := &Ranging{
		Kind:              RangeConstraintCoef,
		Row:               rowName,
		Col:               colName,
		Current:           std.Src.Constraints[ci].Coefs[j],
		AllowableIncrease: math.NaN(),
		AllowableDecrease: math.NaN(),
		Note:              "full range requires re-solving after perturbation",
	}
	tr.Stepf("ranging %s/%s: constraint coefficient %.6g, %s", rowName, colName, out.Current, out.Note)
	return out, nil
}

// BasicVariableColumns identifies, per constraint row, the column acting
// as that row's basis vector by scanning for a one with zeros elsewhere.
// Returns -1 for a row without such a column.
func (t *Tableau) BasicVariableColumns(eps float64) []int {
	out := make([]int, t.Rows)
	for i := range out {
		out[i] = -1
	}
	for j := 0; j < t.Cols; j++ {
		unit := -1
		ok := true
		for i := 0; i < t.Rows; i++ {
			v := t.At(i, j)
			switch {
			case math.Abs(v-1) < eps:
				if unit >= 0 {
					ok = false
				}
				unit = i
			case math.Abs(v) > eps:
				ok = false
			}
		}
		if ok && unit >= 0 && math.Abs(t.At(t.ObjRow(), j)) < eps && out[unit] < 0 {
			out[unit] = j
		}
	}
	return out
}

func constraintIndex(rowName string, n int) (int, error) {
	if !strings.HasPrefix(rowName, "C") {
		return 0, errors.Wrapf(ErrBadModel, "unknown row name %q", rowName)
	}
	i, err := strconv.Atoi(rowName[1:])
	if err != nil || i < 1 || i > n {
		return 0, errors.Wrapf(ErrBadModel, "unknown row name %q", rowName)
	}
	return i - 1, nil
}

func labelIndex(m *Model, label string) (int, error) {
	for j, l := range m.Labels {
		if l == label {
			return j, nil
		}
	}
	return 0, errors.Wrapf(ErrBadModel, "unknown variable label %q", label)
}
