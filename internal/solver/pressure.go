package solver

import "github.com/deltaflow/piso1d/internal/grid"

// Pressure assembles and solves the compressible pressure-correction
// tridiagonal, applies the resulting correction to pressure and
// velocity without relaxation, and reports the max |delta u| residual the
// outer PISO loop uses for its convergence check.
type Pressure struct {
	tri *Tridiag

	a, b, c, d []float64
}

// NewPressure returns a Pressure corrector with no preallocated scratch.
func NewPressure() *Pressure {
	return &Pressure{tri: NewTridiag()}
}

func (p *Pressure) ensure(n int) {
	if cap(p.a) < n {
		p.a = make([]float64, n)
		p.b = make([]float64, n)
		p.c = make([]float64, n)
		p.d = make([]float64, n)
	}
	p.a, p.b, p.c, p.d = p.a[:n], p.b[:n], p.c[:n], p.d[:n]
}

// Correct runs one pressure-velocity correction pass against the starred
// velocity field uStar, mutating st.P, st.U, and st.PPad in place, and
// returns the max |delta u| observed over interior cells.
func (p *Pressure) Correct(st *grid.State, bU []float64, uStar []float64, sm []float64, dt, rv, pOutlet float64, rhieChow bool) (float64, error) {
	n := st.N
	dz := st.Dz
	p.ensure(n)
	a, b, c, d := p.a, p.b, p.c, p.d

	// starred state (u*) temporarily drives the face-flux operator; build a
	// shallow clone of st with U swapped for uStar so FaceMassFlux reads the
	// predicted, not the previous, velocity.
	starred := *st
	starred.U = uStar

	psi := make([]float64, n)
	massImbalance := make([]float64, n)
	mStarFlux := make([]float64, n-1) // mStarFlux[i] = flux at face i (between cell i and i+1)

	ParallelFor(n-1, 8, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			_, _, flux := FaceMassFlux(&starred, bU, i, dz, rhieChow)
			mStarFlux[i] = flux
		}
	})

	ParallelFor(n, 8, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			psi[i] = 1 / (rv * st.T[i])
			var fe, fw float64
			if i < n-1 {
				fe = mStarFlux[i]
			}
			if i > 0 {
				fw = mStarFlux[i-1]
			}
			massImbalance[i] = (st.Rho[i]-st.RhoOld[i])*dz/dt + (fe - fw)
		}
	})

	ParallelFor(n-2, 8, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := k + 1
			dFW := 0.5 * (1/bU[i] + 1/bU[i-1])
			dFE := 0.5 * (1/bU[i] + 1/bU[i+1])
			rhoFW := 0.5 * (st.Rho[i] + st.Rho[i-1])
			rhoFE := 0.5 * (st.Rho[i] + st.Rho[i+1])
			eW := rhoFW * dFW / dz
			eE := rhoFE * dFE / dz

			a[i] = -eW
			c[i] = -eE
			b[i] = eW + eE + psi[i]*dz/dt
			d[i] = sm[i]*dz - massImbalance[i]
		}
	})

	b[0], c[0], a[0], d[0] = 1, -1, 0, 0
	b[n-1], a[n-1], c[n-1], d[n-1] = 1, 0, 0, 0

	pPrime, err := p.tri.Solve(a, b, c, d)
	if err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		st.P[i] += pPrime[i]
	}
	st.RefreshPressurePad(pOutlet)

	maxErr := 0.0
	copy(st.U, uStar)
	for k := 0; k < n-2; k++ {
		i := k + 1
		delta := (pPrime[i+1] - pPrime[i-1]) / (2 * dz * bU[i])
		st.U[i] -= delta
		if abs(delta) > maxErr {
			maxErr = abs(delta)
		}
	}
	return maxErr, nil
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
