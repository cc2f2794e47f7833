package linprog

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sense is the optimization direction of a model.
type Sense int

const (
	Max Sense = iota
	Min
)

func (s Sense) String() string {
	if s == Min {
		return "min"
	}
	return "max"
}

// Relation is the comparison operator of a constraint.
type Relation int

const (
	LE Relation = iota // <=
	GE                 // >=
	EQ                 // =
)

func (r Relation) String() string {
	switch r {
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "<="
	}
}

// SignRestriction describes the admissible values of one decision variable.
type SignRestriction int

const (
	NonNegative  SignRestriction = iota // x >= 0
	NonPositive                         // x <= 0
	Unrestricted                        // free
	Integer                             // x >= 0 and integral
	Binary                              // x in {0, 1}
)

func (s SignRestriction) String() string {
	switch s {
	case NonPositive:
		return "-"
	case Unrestricted:
		return "urs"
	case Integer:
		return "int"
	case Binary:
		return "bin"
	default:
		return "+"
	}
}

// Constraint is one row of a model: coefficients, a relation and a
// right-hand side.
type Constraint struct {
	Coefs []float64
	Rel   Relation
	RHS   float64
}

// Model is the structured LP/MIP description consumed by the solvers.
// Build one with NewModel and AddConstraint; after Validate passes the
// drivers treat it as immutable. The editor works on copies (see Clone).
type Model struct {
	Sense       Sense
	Objective   []float64
	Constraints []Constraint
	Signs       []SignRestriction
	Labels      []string
}

// NewModel creates a model with n variables, one objective coefficient and
// one sign restriction per variable. Labels default to X1..Xn.
func NewModel(sense Sense, objective []float64, signs []SignRestriction) *Model {
	labels := make([]string, len(objective))
	for i := range labels {
		labels[i] = fmt.Sprintf("X%d", i+1)
	}
	return &Model{
		Sense:     sense,
		Objective: objective,
		Signs:     signs,
		Labels:    labels,
	}
}

// AddConstraint appends a constraint row. The coefficient slice is copied.
func (m *Model) AddConstraint(coefs []float64, rel Relation, rhs float64) *Model {
	row := make([]float64, len(coefs))
	copy(row, coefs)
	m.Constraints = append(m.Constraints, Constraint{Coefs: row, Rel: rel, RHS: rhs})
	return m
}

// NumVariables returns n, the number of original decision variables.
func (m *Model) NumVariables() int { return len(m.Objective) }

// Validate checks the structural invariants: every coefficient row has
// length n and there is exactly one sign restriction and one label per
// variable.
func (m *Model) Validate() error {
	n := m.NumVariables()
	if n == 0 {
		return errors.Wrap(ErrBadModel, "model has no variables")
	}
	if len(m.Signs) != n {
		return errors.Wrapf(ErrBadModel, "have %d sign restrictions for %d variables", len(m.Signs), n)
	}
	if len(m.Labels) != n {
		return errors.Wrapf(ErrBadModel, "have %d labels for %d variables", len(m.Labels), n)
	}
	for i, c := range m.Constraints {
		if len(c.Coefs) != n {
			return errors.Wrapf(ErrBadModel, "constraint %d has %d coefficients, want %d", i+1, len(c.Coefs), n)
		}
	}
	return nil
}

// Clone returns a deep copy. The editor mutates clones so that the model a
// driver solved from stays untouched.
func (m *Model) Clone() *Model {
	out := &Model{
		Sense:       m.Sense,
		Objective:   append([]float64(nil), m.Objective...),
		Signs:       append([]SignRestriction(nil), m.Signs...),
		Labels:      append([]string(nil), m.Labels...),
		Constraints: make([]Constraint, len(m.Constraints)),
	}
	for i, c := range m.Constraints {
		out.Constraints[i] = Constraint{
			Coefs: append([]float64(nil), c.Coefs...),
			Rel:   c.Rel,
			RHS:   c.RHS,
		}
	}
	return out
}

// IsIntegral reports whether variable j carries an integrality requirement.
func (m *Model) IsIntegral(j int) bool {
	return m.Signs[j] == Integer || m.Signs[j] == Binary
}
