package solver

import (
	"math"
	"testing"

	"github.com/deltaflow/piso1d/internal/grid"
)

func uniformState(n int, u, p, t float64) *grid.State {
	st := grid.New(n, 1.0, u, p, t, p)
	st.RefreshEOS(300.0)
	return st
}

func TestFaceVelocityUniformFieldStaysUniform(t *testing.T) {
	st := uniformState(10, 2.0, 50000.0, 1000.0)
	bU := make([]float64, st.N)
	for i := range bU {
		bU[i] = 1.0
	}
	for i := 0; i < st.N-1; i++ {
		uf := FaceVelocity(st, bU, i, st.Dz, true)
		if math.Abs(uf-2.0) > 1e-12 {
			t.Errorf("face %d: uf = %f, want 2.0 (uniform field should have no Rhie-Chow correction)", i, uf)
		}
	}
}

func TestFaceVelocityRhieChowToggle(t *testing.T) {
	st := uniformState(6, 1.0, 50000.0, 1000.0)
	// perturb pressure to create a non-trivial 4th-difference term.
	for i := range st.P {
		if i%2 == 0 {
			st.P[i] += 1000
		}
	}
	st.RefreshPressurePad(50000.0)

	bU := make([]float64, st.N)
	for i := range bU {
		bU[i] = 2.0
	}

	plain := FaceVelocity(st, bU, 2, st.Dz, false)
	corrected := FaceVelocity(st, bU, 2, st.Dz, true)
	if plain == corrected {
		t.Error("expected Rhie-Chow correction to perturb the checkerboarded pressure field's face velocity")
	}
}

func TestUpwindFaceSelectsDonorCell(t *testing.T) {
	scalar := []float64{1.0, 2.0}
	if got := UpwindFace(scalar, 0, 1.0); got != 1.0 {
		t.Errorf("expected donor cell 0 for uFace>=0, got %f", got)
	}
	if got := UpwindFace(scalar, 0, -1.0); got != 2.0 {
		t.Errorf("expected donor cell 1 for uFace<0, got %f", got)
	}
}

func TestFaceMassFluxSign(t *testing.T) {
	st := uniformState(6, -3.0, 50000.0, 1000.0)
	bU := make([]float64, st.N)
	for i := range bU {
		bU[i] = 1.0
	}
	_, _, flux := FaceMassFlux(st, bU, 2, st.Dz, false)
	if flux >= 0 {
		t.Errorf("expected negative mass flux for negative velocity, got %f", flux)
	}
}
