package solver

import "github.com/deltaflow/piso1d/internal/grid"

// Energy assembles and solves the implicit energy tridiagonal:
// upwind convection, central diffusion through an effective conductivity
// that already folds in any turbulent contribution, and explicit pressure
// work against the step's old pressure.
type Energy struct {
	tri *Tridiag

	a, b, c, d []float64
}

// NewEnergy returns an Energy solver with no preallocated scratch.
func NewEnergy() *Energy {
	return &Energy{tri: NewTridiag()}
}

func (e *Energy) ensure(n int) {
	if cap(e.a) < n {
		e.a = make([]float64, n)
		e.b = make([]float64, n)
		e.c = make([]float64, n)
		e.d = make([]float64, n)
	}
	e.a, e.b, e.c, e.d = e.a[:n], e.b[:n], e.c[:n], e.d[:n]
}

// Solve returns the updated temperature field. cp is the per-cell specific
// heat at constant pressure, kEff the per-cell effective conductivity
// (already including any turbulent contribution), st the per-cell
// volumetric energy source.
func (e *Energy) Solve(st *grid.State, bU []float64, cp, kEff, source []float64, dt float64, rhieChow bool) ([]float64, error) {
	n := st.N
	dz := st.Dz
	e.ensure(n)
	a, b, c, d := e.a, e.b, e.c, e.d

	ParallelFor(n-2, 8, func(lo, hi int) {
		for k := lo; k < hi; k++ {
			i := k + 1
			dL := 0.5 * (kEff[i] + kEff[i-1]) / dz
			dR := 0.5 * (kEff[i] + kEff[i+1]) / dz

			uFaceL, _, fl := FaceMassFlux(st, bU, i-1, dz, rhieChow)
			uFaceR, _, fr := FaceMassFlux(st, bU, i, dz, rhieChow)
			cl := fl * UpwindFace(cp, i-1, uFaceL)
			cr := fr * UpwindFace(cp, i, uFaceR)

			tauT := st.RhoOld[i] * cp[i] * dz / dt
			w := (st.P[i] - st.POld[i]) / dt

			a[i] = -dL - posPart(cl)
			c[i] = -dR + posPart(-cr)
			b[i] = (posPart(cr) - posPart(-cl)) + dL + dR + tauT
			d[i] = tauT*st.TOld[i] + w*dz + source[i]*dz
		}
	})

	b[0], c[0], a[0], d[0] = 1, -1, 0, 0
	b[n-1], a[n-1], c[n-1], d[n-1] = 1, -1, 0, 0

	return e.tri.Solve(a, b, c, d)
}
