package linprog

import (
	"container/heap"
	"fmt"
	"math"
)

// Branch-and-bound decisions recorded in the trace.
const (
	decisionInfeasible   = "subproblem has no feasible solution"
	decisionUnbounded    = "subproblem is unbounded"
	decisionWorse        = "worse than incumbent, pruned by bound"
	decisionBranching    = "better than incumbent but not integer feasible, branching"
	decisionNewIncumbent = "integer feasible, replacing incumbent"
	decisionDuplicate    = "branch row duplicates an existing row, rejected"
)

// bnbNode is one subproblem of the enumeration: the parent's standard
// model augmented with the branch rows accumulated on the path from the
// root. Once the LP bound is set the node is immutable; it is discarded
// when popped or pruned.
type bnbNode struct {
	std          *StandardModel
	label        string // dotted path, e.g. p1.2.1
	branchHeader string // e.g. "X2 <= 1", empty for the root
	lpBound      float64
	stdX         []float64
	origX        map[string]float64
	seq          int
}

// nodeQueue is a best-first frontier: highest LP bound first, insertion
// order breaking ties so runs stay deterministic.
type nodeQueue []*bnbNode

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].lpBound != q[j].lpBound {
		return q[i].lpBound > q[j].lpBound
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*bnbNode)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// solveRelaxation solves the LP relaxation of a standard model on a fresh
// tableau: primal first, with a dual-then-primal fallback whenever the
// tableau is (or becomes) primal-infeasible.
func solveRelaxation(std *StandardModel, tr *Trace, cfg SolverConfig) (*Tableau, Status, error) {
	t := NewTableau(std, cfg)

	if !t.HasNegativeRHS() {
		st, err := PrimalSimplex(t, tr, cfg)
		if st == StatusOptimal && !t.HasNegativeRHS() {
			return t, st, nil
		}
		if st == StatusUnbounded {
			return t, st, err
		}
	}

	// primal could not finish from here: restore feasibility with the dual
	// simplex, then re-optimize
	t = NewTableau(std, cfg)
	if st, err := DualSimplex(t, tr, cfg); st != StatusOptimal {
		return t, st, err
	}
	st, err := PrimalSimplex(t, tr, cfg)
	return t, st, err
}

// BranchAndBound solves a mixed-integer model by best-first search over LP
// relaxations. Bounds are compared in the internal maximization form; the
// returned solution is expressed in the original sense.
func BranchAndBound(m *Model, cfg SolverConfig) (*Result, error) {
	tr := NewTrace()
	res := &Result{Trace: tr}

	std, err := Standardize(m)
	if err != nil {
		return nil, err
	}

	seq := 0
	makeNode := func(s *StandardModel, label, header string) (*bnbNode, Status, error) {
		t, st, err := solveRelaxation(s, tr, cfg)
		if st != StatusOptimal {
			return nil, st, err
		}
		x := t.BasicSolution()[:s.NumCols()]
		seq++
		return &bnbNode{
			std:          s,
			label:        label,
			branchHeader: header,
			lpBound:      t.Z(),
			stdX:         x,
			origX:        s.OriginalSolution(x),
			seq:          seq,
		}, StatusOptimal, nil
	}

	root, st, err := makeNode(std, "p1", "")
	if st != StatusOptimal {
		tr.Stepf("node p1: %s", statusDecision(st))
		res.Solution = Solution{Status: st}
		return res, err
	}
	tr.Stepf("node p1: LP relaxation bound %.6g", root.lpBound)

	var (
		incumbent     map[string]float64
		incumbentZMax = math.Inf(-1)
		frontier      = nodeQueue{root}
	)
	heap.Init(&frontier)

	expanded := 0
	for frontier.Len() > 0 {
		if expanded >= cfg.MaxNodes {
			tr.Stepf("node limit %d reached", cfg.MaxNodes)
			res.Solution = solutionFrom(std, incumbent, StatusNodeLimit)
			res.Note = "node limit reached before the search tree was exhausted"
			return res, ErrNodeLimit
		}
		node := heap.Pop(&frontier).(*bnbNode)
		expanded++

		if incumbent != nil && node.lpBound <= incumbentZMax+1e-9 {
			tr.Stepf("node %s: bound %.6g, %s", node.label, node.lpBound, decisionWorse)
			continue
		}

		fractional := fractionalVariables(m, node.origX, cfg.FracEps)
		if len(fractional) == 0 {
			zmax := maxFormObjective(m, node.origX)
			if zmax > incumbentZMax+1e-9 {
				incumbentZMax = zmax
				incumbent = roundIntegral(m, node.origX, cfg.FracEps)
				tr.Stepf("node %s: Z = %.6g, %s", node.label, std.OriginalObjective(incumbent), decisionNewIncumbent)
			} else {
				tr.Stepf("node %s: %s", node.label, decisionWorse)
			}
			continue
		}

		// branch on the fractional variable closest to one half
		j := pickBranchVariable(m, node.origX, fractional)
		v := node.origX[m.Labels[j]]
		tr.Stepf("node %s: bound %.6g, %s on %s = %.6g", node.label, node.lpBound, decisionBranching, m.Labels[j], v)

		children := []struct {
			coefs  []float64
			rhs    float64
			suffix string
			header string
		}{
			{node.std.BranchRow(j, 1), math.Floor(v), ".1", fmt.Sprintf("%s <= %g", m.Labels[j], math.Floor(v))},
			{node.std.BranchRow(j, -1), -math.Ceil(v), ".2", fmt.Sprintf("%s >= %g", m.Labels[j], math.Ceil(v))},
		}
		for _, ch := range children {
			label := node.label + ch.suffix
			if node.std.HasRow(ch.coefs, ch.rhs, cfg.Eps) {
				tr.Stepf("node %s (%s): %s", label, ch.header, decisionDuplicate)
				continue
			}
			child, st, _ := makeNode(node.std.WithRow(ch.coefs, ch.rhs), label, ch.header)
			if st != StatusOptimal {
				tr.Stepf("node %s (%s): %s", label, ch.header, statusDecision(st))
				continue
			}
			tr.Stepf("node %s (%s): LP bound %.6g, queued", label, ch.header, child.lpBound)
			heap.Push(&frontier, child)
		}
	}

	if incumbent == nil {
		tr.Stepf("search exhausted without an integer feasible point")
		res.Solution = Solution{Status: StatusInfeasible}
		return res, ErrInfeasible
	}
	res.Solution = solutionFrom(std, incumbent, StatusOptimal)
	tr.Stepf("optimal: Z = %.6g", res.Solution.Z)
	return res, nil
}

func statusDecision(st Status) string {
	switch st {
	case StatusInfeasible:
		return decisionInfeasible
	case StatusUnbounded:
		return decisionUnbounded
	default:
		return st.String()
	}
}

// fractionalVariables returns the original indices of integral variables
// whose value is not integral within eps. A binary variable outside {0,1}
// counts as fractional even when integral.
func fractionalVariables(m *Model, x map[string]float64, eps float64) []int {
	var out []int
	for j := range m.Objective {
		if !m.IsIntegral(j) {
			continue
		}
		v := x[m.Labels[j]]
		if math.Abs(v-math.Round(v)) > eps {
			out = append(out, j)
			continue
		}
		if m.Signs[j] == Binary {
			r := math.Round(v)
			if r != 0 && r != 1 {
				out = append(out, j)
			}
		}
	}
	return out
}

// pickBranchVariable chooses, among the fractional candidates, the one
// whose fractional part is closest to one half.
func pickBranchVariable(m *Model, x map[string]float64, candidates []int) int {
	best := candidates[0]
	bestDist := math.Inf(1)
	for _, j := range candidates {
		f := frac(x[m.Labels[j]])
		if d := math.Abs(f - 0.5); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

func frac(v float64) float64 { return v - math.Floor(v) }

// maxFormObjective evaluates the objective in the internal maximization
// form, the form node bounds are compared in.
func maxFormObjective(m *Model, x map[string]float64) float64 {
	z := 0.0
	for j, label := range m.Labels {
		z += m.Objective[j] * x[label]
	}
	if m.Sense == Min {
		z = -z
	}
	return z
}

// roundIntegral snaps near-integral values of integral variables so
// incumbents report clean integers.
func roundIntegral(m *Model, x map[string]float64, eps float64) map[string]float64 {
	out := make(map[string]float64, len(x))
	for k, v := range x {
		out[k] = v
	}
	for j, label := range m.Labels {
		if m.IsIntegral(j) && math.Abs(out[label]-math.Round(out[label])) <= eps {
			out[label] = math.Round(out[label])
		}
	}
	return out
}

func solutionFrom(std *StandardModel, x map[string]float64, st Status) Solution {
	if x == nil {
		return Solution{Status: st}
	}
	return Solution{
		Z:      std.OriginalObjective(x),
		X:      x,
		Status: st,
	}
}
