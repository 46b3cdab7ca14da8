package jerkplanner

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// regularization is the small diagonal weight that both (a) makes P
// strictly positive definite, so the KKT system is nonsingular whenever
// the hard-equality and active-inequality rows are linearly independent, and
// (b) *is* the jerk-minimization objective itself when no soft
// constraint contributes a larger weight: minimizing 1/2*eps*sum(j_i^2)
// with eps this small is exactly "prefer the smallest jerk consistent
// with everything else," which is what a JerkPlanner is for.
const regularization = 1e-8

const (
	activeSetTol  = 1e-9
	maxActiveIter = 500
	// eqResidualTol bounds |A.x + b| for every hard equality row of the
	// returned solution.
	eqResidualTol = 1e-6
)

// linearRow is one row of an affine constraint A.x + b (kind) = 0, or
// A.x + b >= 0 (ineq), over the full 2N-length decision vector.
type linearRow struct {
	coef []float64
	b    float64
}

// qpProblem is the assembled dense QP: minimize 1/2 x^T P x + q^T x
// subject to Aeq.x + beq = 0 (row-wise) and Aineq.x + bineq >= 0.
type qpProblem struct {
	n     int // = 2*N
	P     *mat.Dense
	q     *mat.VecDense
	eqs   []linearRow
	ineqs []linearRow
}

func newQPProblem(n int) *qpProblem {
	p := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		p.Set(i, i, 2*regularization)
	}
	return &qpProblem{n: n, P: p, q: mat.NewVecDense(n, nil)}
}

// addSoftCost adds weight*||row.coef.x + row.b||^2 to the objective:
// P += 2*weight*coef*coef^T, q += 2*weight*b*coef.
func (p *qpProblem) addSoftCost(row linearRow, weight float64) {
	for i, ci := range row.coef {
		if ci == 0 {
			continue
		}
		p.q.SetVec(i, p.q.AtVec(i)+2*weight*row.b*ci)
		for j, cj := range row.coef {
			if cj == 0 {
				continue
			}
			p.P.Set(i, j, p.P.At(i, j)+2*weight*ci*cj)
		}
	}
}

func (p *qpProblem) addHardEquality(row linearRow) {
	p.eqs = append(p.eqs, row)
}

func (p *qpProblem) addInequality(row linearRow) {
	p.ineqs = append(p.ineqs, row)
}

// solve runs a primal active-set method: repeatedly solve the
// equality-constrained QP formed by the hard equalities plus the
// currently active inequalities, then either activate the most violated
// inactive inequality or deactivate the active inequality whose
// multiplier has the wrong sign, until both conditions are clean. P is
// positive definite (regularization + soft PSD terms), so the
// equality-constrained subproblem has a unique solution whenever its
// constraint rows are linearly independent; dependent or contradictory
// rows make the KKT solve fail, which is reported as a Numerical QPError.
// The loop is the textbook method for convex QP (Nocedal & Wright §16.5),
// simplified since we re-solve the KKT system from scratch each
// iteration rather than taking an incremental step.
func (p *qpProblem) solve() ([]float64, error) {
	active := map[int]bool{}

	for iter := 0; iter < maxActiveIter; iter++ {
		activeIdx := make([]int, 0, len(active))
		for i := range active {
			activeIdx = append(activeIdx, i)
		}

		x, lambdas, err := p.solveEqualityQP(activeIdx)
		if err != nil {
			return nil, newQPError(Numerical, "jerk planner: KKT solve failed: %v", err)
		}

		worstViolation := -activeSetTol
		worstIdx := -1
		for i, row := range p.ineqs {
			if active[i] {
				continue
			}
			s := evalRow(row, x)
			if s < worstViolation {
				worstViolation = s
				worstIdx = i
			}
		}
		if worstIdx >= 0 {
			active[worstIdx] = true
			continue
		}

		// solveEqualityQP's KKT rows encode stationarity as P.x+q = -A^T
		// lambda, so lambda here is the negation of the multiplier mu the
		// KKT conditions require to be >= 0 for a legitimately active
		// inequality (P.x+q = A^T mu). A constraint is only worth keeping
		// active when mu >= 0, i.e. lambda <= 0; drop the one with the
		// most positive lambda above the tolerance.
		worstLambda := activeSetTol
		dropIdx := -1
		for pos, i := range activeIdx {
			if lambdas[pos] > worstLambda {
				worstLambda = lambdas[pos]
				dropIdx = i
			}
		}
		if dropIdx >= 0 {
			delete(active, dropIdx)
			continue
		}

		for _, v := range x {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, newQPError(Numerical, "jerk planner: solution contains NaN/Inf")
			}
		}
		for _, row := range p.eqs {
			if r := evalRow(row, x); math.Abs(r) > eqResidualTol {
				return nil, newQPError(Numerical, "jerk planner: equality residual %g exceeds tolerance %g", r, eqResidualTol)
			}
		}
		return x, nil
	}
	return nil, newQPError(Infeasible, "jerk planner: active-set did not converge within %d iterations", maxActiveIter)
}

// solveEqualityQP solves the KKT system for P,q plus the hard equalities
// and the inequalities named by activeIneq treated as equalities,
// returning x and the multipliers for the active inequality rows (in the
// same order as activeIneq; the hard-equality multipliers are discarded,
// since they carry no sign constraint).
func (p *qpProblem) solveEqualityQP(activeIneq []int) ([]float64, []float64, error) {
	m := len(p.eqs) + len(activeIneq)
	n := p.n
	size := n + m

	k := mat.NewDense(size, size, nil)
	rhs := mat.NewDense(size, 1, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			k.Set(i, j, p.P.At(i, j))
		}
		rhs.Set(i, 0, -p.q.AtVec(i))
	}

	rowAt := func(idx int) linearRow {
		if idx < len(p.eqs) {
			return p.eqs[idx]
		}
		return p.ineqs[activeIneq[idx-len(p.eqs)]]
	}
	for r := 0; r < m; r++ {
		row := rowAt(r)
		for j, c := range row.coef {
			k.Set(n+r, j, c)
			k.Set(j, n+r, c)
		}
		rhs.Set(n+r, 0, -row.b)
	}

	var sol mat.Dense
	if err := sol.Solve(k, rhs); err != nil {
		return nil, nil, err
	}

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = sol.At(i, 0)
	}
	lambdas := make([]float64, len(activeIneq))
	for pos := range activeIneq {
		lambdas[pos] = sol.At(n+len(p.eqs)+pos, 0)
	}
	return x, lambdas, nil
}

func evalRow(row linearRow, x []float64) float64 {
	s := row.b
	for i, c := range row.coef {
		if c != 0 {
			s += c * x[i]
		}
	}
	return s
}
