package solver

import "github.com/deltaflow/piso1d/internal/grid"

// Momentum assembles and solves the implicit momentum tridiagonal for the
// starred (predicted) velocity field. It keeps its coefficient
// vectors and the resulting main diagonal across calls so later phases
// (Rhie-Chow face correction, the pressure corrector) can read the most
// recent b_U without recomputing it.
type Momentum struct {
	tri *Tridiag

	a, b, c, d []float64
	// BU is the main diagonal of the last assembled momentum system, read by
	// the pressure corrector and the Rhie-Chow face-velocity correction.
	BU []float64
}

// NewMomentum returns a Momentum assembler with no preallocated scratch.
func NewMomentum() *Momentum {
	return &Momentum{tri: NewTridiag()}
}

func (m *Momentum) ensure(n int) {
	if cap(m.a) < n {
		m.a = make([]float64, n)
		m.b = make([]float64, n)
		m.c = make([]float64, n)
		m.d = make([]float64, n)
		m.BU = make([]float64, n)
	}
	m.a, m.b, m.c, m.d, m.BU = m.a[:n], m.b[:n], m.c[:n], m.d[:n], m.BU[:n]
}

// Predict assembles and solves the momentum equation, returning the
// predicted velocity field u*. mu is the per-cell dynamic viscosity, su the
// per-cell momentum source. rhieChow controls whether face velocities carry
// the 4th-difference pressure-smoothing term; it reads st.PPad, which must
// already reflect the current pressure field.
func (m *Momentum) Predict(st *grid.State, mu, su []float64, dt, uInlet, uOutlet float64, rhieChow bool) ([]float64, error) {
	n := st.N
	dz := st.Dz
	m.ensure(n)
	a, b, c, d, bU := m.a, m.b, m.c, m.d, m.BU

	// bU must exist before face velocities can read it; seed it from the
	// previous call's values (or, on the first call, from the transient term
	// rho*dz/dt plus 1) so the very first Rhie-Chow correction has a sane 1/bU.
	if bU[0] == 0 {
		for i := 0; i < n; i++ {
			bU[i] = st.Rho[i]*dz/dt + 1
		}
	}

	ParallelFor(n-2, 8, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := k + 1 // interior cells 1..n-2
			dL := fourThirds * 0.5 * (mu[i] + mu[i-1]) / dz
			dR := fourThirds * 0.5 * (mu[i] + mu[i+1]) / dz

			_, _, fl := FaceMassFlux(st, bU, i-1, dz, rhieChow)
			_, _, fr := FaceMassFlux(st, bU, i, dz, rhieChow)

			a[i] = -posPart(fl) - dL
			c[i] = posPart(-fr) - dR
			b[i] = (posPart(fr) - posPart(-fl)) + st.Rho[i]*dz/dt + dL + dR
			d[i] = -0.5*(st.P[i+1]-st.P[i-1]) + st.Rho[i]*st.U[i]*dz/dt + su[i]*dz
		}
	})

	dEnd0 := fourThirds * 0.5 * (mu[0] + mu[1]) / dz
	b[0] = st.Rho[0]*dz/dt + 2*dEnd0
	c[0] = 0
	a[0] = 0
	d[0] = b[0] * uInlet

	dEndN := fourThirds * 0.5 * (mu[n-1] + mu[n-2]) / dz
	b[n-1] = st.Rho[n-1]*dz/dt + 2*dEndN
	a[n-1] = 0
	c[n-1] = 0
	d[n-1] = b[n-1] * uOutlet

	copy(bU, b)

	x, err := m.tri.Solve(a, b, c, d)
	if err != nil {
		return nil, err
	}
	x[0] = uInlet
	x[n-1] = uOutlet
	return x, nil
}

const fourThirds = 4.0 / 3.0

func posPart(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}
