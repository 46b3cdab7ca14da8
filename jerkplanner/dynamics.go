package jerkplanner

// axisDynamics precomputes, for one Cartesian axis, the affine map from the
// N-vector of jerk decision variables to the triple-integrator state
// (position, velocity, acceleration) at the start of every timestep
// 0..N (N+1 states total: the initial condition plus one after each
// applied jerk). State k is:
//
//	acc_k = accConst[k] + accCoef[k] . j
//	vel_k = velConst[k] + velCoef[k] . j
//	pos_k = posConst[k] + posCoef[k] . j
//
// built by unrolling the per-step triple-integrator update
//
//	a_{k+1} = a_k + dt*j_k
//	v_{k+1} = v_k + dt*a_k + dt^2/2*j_k
//	p_{k+1} = p_k + dt*v_k + dt^2/2*a_k + dt^3/6*j_k
//
// This lets any constraint kind at any timestep be expressed as a row
// vector over the jerk vector plus a constant, instead of re-deriving a
// closed form per kind.
type axisDynamics struct {
	n                         int
	dt                        float64
	posCoef, velCoef, accCoef [][]float64 // [k][N], k=0..n
	posConst, velConst, accConst []float64 // [k], k=0..n
}

func buildAxisDynamics(n int, dt, p0, v0, a0 float64) *axisDynamics {
	d := &axisDynamics{
		n:        n,
		dt:       dt,
		posCoef:  make([][]float64, n+1),
		velCoef:  make([][]float64, n+1),
		accCoef:  make([][]float64, n+1),
		posConst: make([]float64, n+1),
		velConst: make([]float64, n+1),
		accConst: make([]float64, n+1),
	}
	d.posCoef[0] = make([]float64, n)
	d.velCoef[0] = make([]float64, n)
	d.accCoef[0] = make([]float64, n)
	d.posConst[0], d.velConst[0], d.accConst[0] = p0, v0, a0

	dt2 := dt * dt
	for k := 0; k < n; k++ {
		d.accCoef[k+1] = append([]float64(nil), d.accCoef[k]...)
		d.accCoef[k+1][k] += dt
		d.accConst[k+1] = d.accConst[k]

		d.velCoef[k+1] = addScaled(d.velCoef[k], d.accCoef[k], dt)
		d.velCoef[k+1][k] += dt2 / 2
		d.velConst[k+1] = d.velConst[k] + dt*d.accConst[k]

		d.posCoef[k+1] = addScaled(d.posCoef[k], d.velCoef[k], dt)
		d.posCoef[k+1] = addScaled(d.posCoef[k+1], d.accCoef[k], dt2/2)
		d.posCoef[k+1][k] += dt2 * dt / 6
		d.posConst[k+1] = d.posConst[k] + dt*d.velConst[k] + dt2/2*d.accConst[k]
	}
	return d
}

func addScaled(base, add []float64, scale float64) []float64 {
	out := append([]float64(nil), base...)
	for i, v := range add {
		out[i] += scale * v
	}
	return out
}

// row returns the (coefficient, constant) pair for kind at timestep k,
// i.e. value(j) = coef.j + constant, where omega is the LIPM natural
// frequency used by the ZMP and DCM kinds.
func (d *axisDynamics) row(kind Kind, k int, omega float64) ([]float64, float64) {
	switch kind {
	case Jerk:
		coef := make([]float64, d.n)
		if k < d.n {
			coef[k] = 1
		}
		return coef, 0
	case Velocity:
		return d.velCoef[k], d.velConst[k]
	case Acceleration:
		return d.accCoef[k], d.accConst[k]
	case ZMP:
		coef := subScaled(d.posCoef[k], d.accCoef[k], 1/(omega*omega))
		return coef, d.posConst[k] - d.accConst[k]/(omega*omega)
	case DCM:
		coef := addScaledCopy(d.posCoef[k], d.velCoef[k], 1/omega)
		return coef, d.posConst[k] + d.velConst[k]/omega
	default: // Position
		return d.posCoef[k], d.posConst[k]
	}
}

func subScaled(base, sub []float64, scale float64) []float64 {
	out := append([]float64(nil), base...)
	for i, v := range sub {
		out[i] -= scale * v
	}
	return out
}

func addScaledCopy(base, add []float64, scale float64) []float64 {
	out := append([]float64(nil), base...)
	for i, v := range add {
		out[i] += scale * v
	}
	return out
}

// state evaluates position/velocity/acceleration at timestep k directly
// (used by Trajectory, which already holds the solved jerks rather than
// re-deriving rows).
func (d *axisDynamics) state(k int, jerks []float64) (pos, vel, acc float64) {
	pos = d.posConst[k] + dot(d.posCoef[k], jerks)
	vel = d.velConst[k] + dot(d.velCoef[k], jerks)
	acc = d.accConst[k] + dot(d.accCoef[k], jerks)
	return
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
