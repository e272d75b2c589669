package solver

import "github.com/deltaflow/piso1d/internal/grid"

// Turbulence model closure constants for the k-omega closure. These
// are fixed, not calibrated against data (validated turbulence calibration
// is an explicit non-goal), so they are exported constants rather than a
// configurable struct field.
const (
	BetaStar = 0.09   // k destruction coefficient
	Beta     = 0.075  // omega destruction coefficient
	SigmaK   = 0.85   // k diffusion Prandtl-like number
	SigmaOm  = 0.50   // omega diffusion Prandtl-like number
	MuTCap   = 1000.0 // mu_t <= MuTCap * mu
)

// Turbulence assembles and solves the k and omega transport tridiagonals
// and refreshes the eddy viscosity mu_t from the updated k, omega fields.
type Turbulence struct {
	kTri, omTri *Tridiag

	a, b, c, dk, domega []float64
}

// NewTurbulence returns a Turbulence closure with no preallocated scratch.
func NewTurbulence() *Turbulence {
	return &Turbulence{kTri: NewTridiag(), omTri: NewTridiag()}
}

func (t *Turbulence) ensure(n int) {
	if cap(t.a) < n {
		t.a = make([]float64, n)
		t.b = make([]float64, n)
		t.c = make([]float64, n)
		t.dk = make([]float64, n)
		t.domega = make([]float64, n)
	}
	t.a, t.b, t.c = t.a[:n], t.b[:n], t.c[:n]
	t.dk, t.domega = t.dk[:n], t.domega[:n]
}

// Update advances k and omega by one implicit step and recomputes mu_t,
// capped at MuTCap*mu. mu is the per-cell molecular viscosity. k0 and
// omega0 are the frozen boundary (and initial) values.
func (t *Turbulence) Update(st *grid.State, mu []float64, dt, k0, omega0 float64) error {
	n := st.N
	dz := st.Dz
	t.ensure(n)
	a, b, c, dk, domega := t.a, t.b, t.c, t.dk, t.domega

	muEff := make([]float64, n)
	production := make([]float64, n)
	ParallelFor(n, 8, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			muEff[i] = mu[i] + st.MuT[i]
		}
	})
	ParallelFor(n-2, 8, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := k + 1
			dudz := (st.U[i+1] - st.U[i-1]) / (2 * dz)
			production[i] = st.MuT[i] * dudz * dudz
		}
	})

	assembleRow := func(i int, sigma, destructionCoeff, old float64, d []float64) {
		muL := 0.5 * (muEff[i] + muEff[i-1])
		muR := 0.5 * (muEff[i] + muEff[i+1])
		dL := muL / sigma / (dz * dz)
		dR := muR / sigma / (dz * dz)
		transient := st.Rho[i] / dt
		a[i] = -dL
		c[i] = -dR
		b[i] = dL + dR + destructionCoeff + transient
		d[i] = transient*old + production[i]
	}

	ParallelFor(n-2, 8, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := k + 1
			assembleRow(i, SigmaK, BetaStar*st.Rho[i]*st.Omega[i], st.KTurb[i], dk)
		}
	})
	a[0], b[0], c[0], dk[0] = 0, 1, 0, k0
	a[n-1], b[n-1], c[n-1], dk[n-1] = 0, 1, 0, k0

	kNew, err := t.kTri.Solve(a, b, c, dk)
	if err != nil {
		return err
	}

	ParallelFor(n-2, 8, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := k + 1
			assembleRow(i, SigmaOm, Beta*st.Rho[i]*st.Omega[i], st.Omega[i], domega)
		}
	})
	a[0], b[0], c[0], domega[0] = 0, 1, 0, omega0
	a[n-1], b[n-1], c[n-1], domega[n-1] = 0, 1, 0, omega0

	omNew, err := t.omTri.Solve(a, b, c, domega)
	if err != nil {
		return err
	}

	copy(st.KTurb, kNew)
	copy(st.Omega, omNew)
	for i := 0; i < n; i++ {
		omegaSafe := st.Omega[i]
		if omegaSafe < 1e-6 {
			omegaSafe = 1e-6
		}
		muT := st.Rho[i] * st.KTurb[i] / omegaSafe
		muCap := MuTCap * mu[i]
		if muT > muCap {
			muT = muCap
		}
		st.MuT[i] = muT
	}
	return nil
}
