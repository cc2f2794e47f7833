package linprog

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Tableau is the dense simplex tableau shared by every driver.
//
// Layout: rows 0..Rows-1 are constraint rows, row Rows is the objective
// row. Columns 0..Cols-1 are variable columns (structural, then slacks,
// then any Gomory slacks); column Cols is the right-hand side. The
// objective row holds -c_j per structural column so its right-hand side is
// the current Z.
type Tableau struct {
	Rows int // number of constraint rows
	Cols int // number of variable columns, excluding the RHS

	// Basis[i] is the column index occupying constraint row i.
	Basis []int

	// ColNames carries the display label of every variable column.
	ColNames []string

	buf  *mat.Dense
	cfg  SolverConfig
	cuts int // Gomory slacks added so far, for SC naming
}

// NewTableau lays out the initial tableau for a standard model: the A
// block, a slack identity, b in the RHS column and -c in the objective
// row. The slacks S1..Sm form the initial basis.
func NewTableau(std *StandardModel, cfg SolverConfig) *Tableau {
	m := std.NumRows()
	n := std.NumCols()

	t := &Tableau{
		Rows:     m,
		Cols:     n + m,
		Basis:    make([]int, m),
		ColNames: make([]string, n+m),
		buf:      mat.NewDense(m+1, n+m+1, nil),
		cfg:      cfg,
	}

	for j, col := range std.Cols {
		t.ColNames[j] = col.Name
	}
	for i := 0; i < m; i++ {
		t.ColNames[n+i] = fmt.Sprintf("S%d", i+1)
		t.Basis[i] = n + i

		for j := 0; j < n; j++ {
			t.buf.Set(i, j, std.A.At(i, j))
		}
		t.buf.Set(i, n+i, 1)
		t.buf.Set(i, t.Cols, std.B[i])
	}
	for j := 0; j < n; j++ {
		t.buf.Set(m, j, -std.C[j])
	}
	return t
}

// At returns the tableau entry at row i, column j.
func (t *Tableau) At(i, j int) float64 { return t.buf.At(i, j) }

// Set writes the tableau entry at row i, column j.
func (t *Tableau) Set(i, j int, v float64) { t.buf.Set(i, j, v) }

// RHS returns the right-hand side of constraint row i.
func (t *Tableau) RHS(i int) float64 { return t.buf.At(i, t.Cols) }

// Z returns the objective value of the current basic solution.
func (t *Tableau) Z() float64 { return t.buf.At(t.Rows, t.Cols) }

// ObjRow returns the index of the objective row.
func (t *Tableau) ObjRow() int { return t.Rows }

// Pivot performs the Gauss-Jordan pivot on (r, c): scale row r so the
// pivot entry becomes 1, then eliminate column c from every other row.
// A pivot entry under the matrix tolerance is clamped to +-Eps first.
// This is the only mutation primitive the simplex variants use.
func (t *Tableau) Pivot(r, c int) {
	p := t.buf.At(r, c)
	if math.Abs(p) < t.cfg.Eps {
		if p < 0 {
			p = -t.cfg.Eps
		} else {
			p = t.cfg.Eps
		}
		t.buf.Set(r, c, p)
	}

	for j := 0; j <= t.Cols; j++ {
		t.buf.Set(r, j, t.buf.At(r, j)/p)
	}
	for i := 0; i <= t.Rows; i++ {
		if i == r {
			continue
		}
		f := t.buf.At(i, c)
		if f == 0 {
			continue
		}
		for j := 0; j <= t.Cols; j++ {
			t.buf.Set(i, j, t.buf.At(i, j)-f*t.buf.At(r, j))
		}
	}
}

// Clone returns an independent copy of the tableau.
func (t *Tableau) Clone() *Tableau {
	return &Tableau{
		Rows:     t.Rows,
		Cols:     t.Cols,
		Basis:    append([]int(nil), t.Basis...),
		ColNames: append([]string(nil), t.ColNames...),
		buf:      mat.DenseCopyOf(t.buf),
		cfg:      t.cfg,
		cuts:     t.cuts,
	}
}

// BasicSolution returns the value of every variable column under the
// current basis: basic columns take their row's RHS, the rest are zero.
func (t *Tableau) BasicSolution() []float64 {
	x := make([]float64, t.Cols)
	for i, c := range t.Basis {
		x[c] = t.RHS(i)
	}
	return x
}

// HasNegativeRHS reports whether any constraint row has RHS < -Eps.
func (t *Tableau) HasNegativeRHS() bool {
	for i := 0; i < t.Rows; i++ {
		if t.RHS(i) < -t.cfg.Eps {
			return true
		}
	}
	return false
}

// BasicRowOf returns the constraint row in which column c is basic, or -1.
func (t *Tableau) BasicRowOf(c int) int {
	for i, b := range t.Basis {
		if b == c {
			return i
		}
	}
	return -1
}

// ColIndex returns the column index of a display label, or -1.
func (t *Tableau) ColIndex(name string) int {
	for j, n := range t.ColNames {
		if n == name {
			return j
		}
	}
	return -1
}

// GrowForCut allocates a fresh tableau one row and one column larger and
// installs a Gomory cut: rowCoefs over the existing variable columns, a +1
// on the new slack (named SC1, SC2, ...) and the given right-hand side.
// The new slack enters the basis. A fresh buffer keeps the layout
// invariants obvious instead of reshaping in place.
func (t *Tableau) GrowForCut(rowCoefs []float64, rhs float64) *Tableau {
	nt := &Tableau{
		Rows:     t.Rows + 1,
		Cols:     t.Cols + 1,
		Basis:    append([]int(nil), t.Basis...),
		ColNames: append([]string(nil), t.ColNames...),
		buf:      mat.NewDense(t.Rows+2, t.Cols+2, nil),
		cfg:      t.cfg,
		cuts:     t.cuts + 1,
	}
	slack := t.Cols // the new column sits where the RHS used to
	nt.ColNames = append(nt.ColNames, fmt.Sprintf("SC%d", nt.cuts))

	// existing constraint rows, with a zero in the slack column
	for i := 0; i < t.Rows; i++ {
		for j := 0; j < t.Cols; j++ {
			nt.buf.Set(i, j, t.buf.At(i, j))
		}
		nt.buf.Set(i, nt.Cols, t.RHS(i))
	}

	// the cut row
	for j := 0; j < t.Cols; j++ {
		nt.buf.Set(t.Rows, j, rowCoefs[j])
	}
	nt.buf.Set(t.Rows, slack, 1)
	nt.buf.Set(t.Rows, nt.Cols, rhs)
	nt.Basis = append(nt.Basis, slack)

	// objective row
	for j := 0; j < t.Cols; j++ {
		nt.buf.Set(nt.Rows, j, t.buf.At(t.Rows, j))
	}
	nt.buf.Set(nt.Rows, nt.Cols, t.Z())

	return nt
}

// Format renders the tableau as a fixed-width table, the form used by the
// sensitivity log.
func (t *Tableau) Format() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s", ""))
	for _, n := range t.ColNames {
		sb.WriteString(fmt.Sprintf("%10s", n))
	}
	sb.WriteString(fmt.Sprintf("%10s\n", "RHS"))

	for i := 0; i <= t.Rows; i++ {
		if i == t.Rows {
			sb.WriteString(fmt.Sprintf("%-6s", "Z"))
		} else {
			sb.WriteString(fmt.Sprintf("%-6s", t.ColNames[t.Basis[i]]))
		}
		for j := 0; j <= t.Cols; j++ {
			sb.WriteString(fmt.Sprintf("%10.3f", t.buf.At(i, j)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
