package solver

import "github.com/deltaflow/piso1d/internal/grid"

// FaceVelocity returns the Rhie-Chow-corrected velocity at the face between
// cell i and cell i+1 (0 <= i <= st.N-2). bU is the main diagonal of the
// current (or previous) momentum tridiagonal. When rhieChow is false the
// correction term is skipped and this reduces to simple linear averaging,
// which is what exposes the collocated-grid checkerboard mode in scenario
// S3.
func FaceVelocity(st *grid.State, bU []float64, i int, dz float64, rhieChow bool) float64 {
	uf := 0.5 * (st.U[i] + st.U[i+1])
	if !rhieChow {
		return uf
	}
	pL := st.PAt(i - 1)
	pC := st.PAt(i)
	pR := st.PAt(i + 1)
	pRR := st.PAt(i + 2)
	cRC := -(1/bU[i] + 1/bU[i+1]) / (8 * dz) * (pL - 3*pC + 3*pR - pRR)
	return uf + cRC
}

// UpwindFace returns the first-order-upwind face value of a cell-centered
// scalar (density, specific heat, ...) given the face velocity's sign:
// the donor cell is i when uFace >= 0, i+1 otherwise.
func UpwindFace(scalar []float64, i int, uFace float64) float64 {
	if uFace >= 0 {
		return scalar[i]
	}
	return scalar[i+1]
}

// FaceMassFlux returns rho_f * u_f for the face between cell i and i+1,
// using first-order-upwind rho_f.
func FaceMassFlux(st *grid.State, bU []float64, i int, dz float64, rhieChow bool) (uFace, rhoFace, massFlux float64) {
	uFace = FaceVelocity(st, bU, i, dz, rhieChow)
	rhoFace = UpwindFace(st.Rho, i, uFace)
	return uFace, rhoFace, rhoFace * uFace
}
