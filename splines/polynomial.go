// Package splines provides the 1-D polynomial fitting and piecewise
// evaluation primitives used by swingfoot trajectories and by the per-side
// and trunk yaw interpolation in the walk pattern generator.
package splines

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Polynomial is a single segment p(s) = sum_i coeffs[i]*s^i, s = t - t0,
// valid over [t0, t1]. Evaluation outside that interval clamps to the
// nearest endpoint, per spec.md §4.3 ("Evaluation outside [t_start, t_end]
// clamps to the nearest endpoint").
type Polynomial struct {
	coeffs []float64
	t0, t1 float64
}

// NewConstant returns a degree-0 polynomial equal to value everywhere.
func NewConstant(t0, t1, value float64) Polynomial {
	return Polynomial{coeffs: []float64{value}, t0: t0, t1: t1}
}

func (p Polynomial) clampedS(t float64) float64 {
	if t < p.t0 {
		t = p.t0
	} else if t > p.t1 {
		t = p.t1
	}
	return t - p.t0
}

// Eval returns the deriv-th derivative of p at t (deriv=0 is position).
func (p Polynomial) Eval(t float64, deriv int) float64 {
	s := p.clampedS(t)
	total := 0.0
	for i := deriv; i < len(p.coeffs); i++ {
		// d^deriv/ds^deriv (c_i s^i) = c_i * i!/(i-deriv)! * s^(i-deriv)
		coeff := p.coeffs[i]
		factor := 1.0
		for k := 0; k < deriv; k++ {
			factor *= float64(i - k)
		}
		total += coeff * factor * math.Pow(s, float64(i-deriv))
	}
	return total
}

// Pos, Vel, Acc are convenience wrappers around Eval.
func (p Polynomial) Pos(t float64) float64 { return p.Eval(t, 0) }
func (p Polynomial) Vel(t float64) float64 { return p.Eval(t, 1) }
func (p Polynomial) Acc(t float64) float64 { return p.Eval(t, 2) }

// TStart and TEnd return the validity interval of the polynomial.
func (p Polynomial) TStart() float64 { return p.t0 }
func (p Polynomial) TEnd() float64   { return p.t1 }

// FitHermite builds the unique polynomial of degree 2*len(boundary0)-1
// matching, at t0, the derivatives boundary0[0], boundary0[1], ... (position,
// velocity, acceleration, ...) and at t1 the derivatives boundary1. This is
// the general form of the cubic (k=2: position+velocity) and quintic (k=3:
// position+velocity+acceleration) Hermite fits spec.md §4.3 describes for
// swing-foot trajectories, and is reused for yaw keyframes.
func FitHermite(t0, t1 float64, boundary0, boundary1 []float64) (Polynomial, error) {
	k := len(boundary0)
	if k != len(boundary1) || k == 0 {
		return Polynomial{}, errors.New("splines: boundary0 and boundary1 must be equal-length and non-empty")
	}
	if t1 <= t0 {
		return Polynomial{}, errors.Errorf("splines: t1 (%v) must be greater than t0 (%v)", t1, t0)
	}
	n := 2*k - 1
	T := t1 - t0

	coeffs := make([]float64, n+1)

	// The first k coefficients are pinned directly by the boundary
	// conditions at s=0: d^d/ds^d p(0) = d! * coeffs[d].
	factorial := func(n int) float64 {
		f := 1.0
		for i := 2; i <= n; i++ {
			f *= float64(i)
		}
		return f
	}
	for d := 0; d < k; d++ {
		coeffs[d] = boundary0[d] / factorial(d)
	}

	// The remaining k coefficients (indices k..2k-1) solve a k x k linear
	// system built from the derivative conditions at s=T.
	A := mat.NewDense(k, k, nil)
	b := mat.NewVecDense(k, nil)
	for d := 0; d < k; d++ {
		// Contribution of the known coefficients to this row's target.
		known := 0.0
		for i := 0; i < k; i++ {
			if i < d {
				continue
			}
			falling := 1.0
			for kk := 0; kk < d; kk++ {
				falling *= float64(i - kk)
			}
			known += coeffs[i] * falling * math.Pow(T, float64(i-d))
		}
		b.SetVec(d, boundary1[d]-known)

		for j := 0; j < k; j++ {
			i := k + j // unknown coefficient index
			if i < d {
				A.Set(d, j, 0)
				continue
			}
			falling := 1.0
			for kk := 0; kk < d; kk++ {
				falling *= float64(i - kk)
			}
			A.Set(d, j, falling*math.Pow(T, float64(i-d)))
		}
	}

	var x mat.VecDense
	if err := x.SolveVec(A, b); err != nil {
		return Polynomial{}, errors.Wrap(err, "splines: failed to solve Hermite boundary system")
	}
	for j := 0; j < k; j++ {
		coeffs[k+j] = x.AtVec(j)
	}

	return Polynomial{coeffs: coeffs, t0: t0, t1: t1}, nil
}
