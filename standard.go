package linprog

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Part records which half of an original variable a standard column
// represents. Plus columns enter the back-map with +1, Minus and Flipped
// columns with -1.
type Part int

const (
	Plus Part = iota
	Minus
	Flipped
)

func (p Part) sign() float64 {
	if p == Plus {
		return 1
	}
	return -1
}

// StdCol describes one column of the standard form and how it maps back to
// an original variable.
type StdCol struct {
	Name      string
	OrigIndex int
	Part      Part
	IsInteger bool
	IsBinary  bool
}

// StandardModel is the canonical <=-only maximization form the tableau is
// built from: maximize C*x subject to A*x <= B, x >= 0.
type StandardModel struct {
	A    *mat.Dense
	B    []float64
	C    []float64
	Cols []StdCol

	// Src is the model this standard form was derived from; the back-map
	// and re-solve paths need it.
	Src *Model
}

// Standardize reduces a model to the canonical form. Constraint relations
// other than <= and negative right-hand sides are rejected as unsupported.
// The relaxed variant below, used by the dual and two-phase entries of
// Solve, the duality check and the editor, flips >= rows into <= rows and
// accepts negative right-hand sides; = rows are rejected by both.
func Standardize(m *Model) (*StandardModel, error) {
	return standardize(m, false)
}

func standardize(m *Model, relaxed bool) (*StandardModel, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	// split each original variable into its standard columns
	var cols []StdCol
	for j, s := range m.Signs {
		label := m.Labels[j]
		switch s {
		case NonNegative, Integer, Binary:
			cols = append(cols, StdCol{
				Name:      label,
				OrigIndex: j,
				Part:      Plus,
				IsInteger: s == Integer || s == Binary,
				IsBinary:  s == Binary,
			})
		case NonPositive:
			// substitute y = -x >= 0
			cols = append(cols, StdCol{Name: label + "~", OrigIndex: j, Part: Flipped})
		case Unrestricted:
			cols = append(cols, StdCol{Name: label + "+", OrigIndex: j, Part: Plus})
			cols = append(cols, StdCol{Name: label + "-", OrigIndex: j, Part: Minus})
		default:
			return nil, errors.Wrapf(ErrUnsupportedForm, "variable %s has unknown sign restriction", label)
		}
	}
	n := len(cols)

	type stdRow struct {
		coefs []float64
		rhs   float64
	}
	var rows []stdRow
	for i, con := range m.Constraints {
		coefs := make([]float64, n)
		for k, col := range cols {
			coefs[k] = con.Coefs[col.OrigIndex] * col.Part.sign()
		}
		rhs := con.RHS
		switch con.Rel {
		case LE:
			// as-is
		case GE:
			if !relaxed {
				return nil, errors.Wrapf(ErrUnsupportedForm, "constraint %d is %v, only <= is supported", i+1, con.Rel)
			}
			for k := range coefs {
				coefs[k] = -coefs[k]
			}
			rhs = -rhs
		default:
			return nil, errors.Wrapf(ErrUnsupportedForm, "constraint %d is %v, only <= is supported", i+1, con.Rel)
		}
		if rhs < 0 && !relaxed {
			return nil, errors.Wrapf(ErrUnsupportedForm, "constraint %d has negative right-hand side %v", i+1, rhs)
		}
		rows = append(rows, stdRow{coefs: coefs, rhs: rhs})
	}

	// every binary column gets an upper-bound row e_k * x <= 1
	for k, col := range cols {
		if !col.IsBinary {
			continue
		}
		coefs := make([]float64, n)
		coefs[k] = 1
		rows = append(rows, stdRow{coefs: coefs, rhs: 1})
	}

	if len(rows) == 0 {
		return nil, errors.Wrap(ErrUnsupportedForm, "model has no constraints")
	}

	// objective in maximization form
	c := make([]float64, n)
	for k, col := range cols {
		c[k] = m.Objective[col.OrigIndex] * col.Part.sign()
		if m.Sense == Min {
			c[k] = -c[k]
		}
	}

	a := mat.NewDense(len(rows), n, nil)
	b := make([]float64, len(rows))
	for i, r := range rows {
		a.SetRow(i, r.coefs)
		b[i] = r.rhs
	}

	return &StandardModel{A: a, B: b, C: c, Cols: cols, Src: m}, nil
}

// NumRows returns m', the number of standard constraint rows.
func (s *StandardModel) NumRows() int {
	r, _ := s.A.Dims()
	return r
}

// NumCols returns n', the number of standard structural columns.
func (s *StandardModel) NumCols() int {
	_, c := s.A.Dims()
	return c
}

// OriginalSolution maps a standard-space point back to the original
// variables: x_j is the signed sum of its standard columns.
func (s *StandardModel) OriginalSolution(x []float64) map[string]float64 {
	out := make(map[string]float64, s.Src.NumVariables())
	for _, label := range s.Src.Labels {
		out[label] = 0
	}
	for k, col := range s.Cols {
		if k < len(x) {
			out[s.Src.Labels[col.OrigIndex]] += col.Part.sign() * x[k]
		}
	}
	return out
}

// OriginalObjective evaluates the original objective (in the original
// sense) at a back-mapped point.
func (s *StandardModel) OriginalObjective(x map[string]float64) float64 {
	z := 0.0
	for j, label := range s.Src.Labels {
		z += s.Src.Objective[j] * x[label]
	}
	return z
}

// WithRow returns a copy of the standard model with one extra <= row.
// Rows are copied, never aliased, so sibling branch-and-bound nodes can
// mutate their tableaus independently.
func (s *StandardModel) WithRow(coefs []float64, rhs float64) *StandardModel {
	m, n := s.A.Dims()
	a := mat.NewDense(m+1, n, nil)
	a.Slice(0, m, 0, n).(*mat.Dense).Copy(s.A)
	a.SetRow(m, coefs)

	b := make([]float64, m+1)
	copy(b, s.B)
	b[m] = rhs

	return &StandardModel{
		A:    a,
		B:    b,
		C:    append([]float64(nil), s.C...),
		Cols: append([]StdCol(nil), s.Cols...),
		Src:  s.Src,
	}
}

// HasRow reports whether an identical row (coefficients and right-hand
// side, component-wise within eps) is already present.
func (s *StandardModel) HasRow(coefs []float64, rhs float64, eps float64) bool {
	m, _ := s.A.Dims()
	for i := 0; i < m; i++ {
		if math.Abs(s.B[i]-rhs) > eps {
			continue
		}
		if floats.EqualApprox(s.A.RawRowView(i), coefs, eps) {
			return true
		}
	}
	return false
}

// BranchRow expands a +-1 coefficient on original variable j through the
// part-to-sign map, yielding the standard-space row for a bound on that
// variable. dir is +1 for an upper bound, -1 for a flipped lower bound.
func (s *StandardModel) BranchRow(j int, dir float64) []float64 {
	coefs := make([]float64, len(s.Cols))
	for k, col := range s.Cols {
		if col.OrigIndex == j {
			coefs[k] = dir * col.Part.sign()
		}
	}
	return coefs
}
