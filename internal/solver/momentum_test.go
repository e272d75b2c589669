package solver

import (
	"math"
	"testing"

	"github.com/deltaflow/piso1d/internal/grid"
)

func TestMomentumPredictEnforcesBoundaryVelocities(t *testing.T) {
	st := uniformState(20, 1.0, 50000.0, 1000.0)
	mu := make([]float64, st.N)
	su := make([]float64, st.N)
	for i := range mu {
		mu[i] = 2.5e-5
	}

	m := NewMomentum()
	u, err := m.Predict(st, mu, su, 1e-3, 3.0, 2.0, true)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	if u[0] != 3.0 {
		t.Errorf("u[0] = %f, want inlet velocity 3.0", u[0])
	}
	if u[st.N-1] != 2.0 {
		t.Errorf("u[N-1] = %f, want outlet velocity 2.0", u[st.N-1])
	}
}

func TestMomentumPredictQuiescentStaysQuiescent(t *testing.T) {
	st := uniformState(20, 0.0, 50000.0, 1000.0)
	mu := make([]float64, st.N)
	su := make([]float64, st.N)
	for i := range mu {
		mu[i] = 2.5e-5
	}

	m := NewMomentum()
	u, err := m.Predict(st, mu, su, 1e-3, 0.0, 0.0, true)
	if err != nil {
		t.Fatalf("Predict returned error: %v", err)
	}
	for i, v := range u {
		if math.Abs(v) > 1e-10 {
			t.Errorf("u[%d] = %e, expected ~0 for a quiescent pipe with no sources", i, v)
		}
	}
}

func TestMomentumPredictReusesScratch(t *testing.T) {
	st := grid.New(5, 1.0, 0, 50000.0, 1000.0, 50000.0)
	st.RefreshEOS(300.0)
	mu := make([]float64, st.N)
	su := make([]float64, st.N)
	for i := range mu {
		mu[i] = 2.5e-5
	}
	m := NewMomentum()
	if _, err := m.Predict(st, mu, su, 1e-3, 0, 0, true); err != nil {
		t.Fatalf("first Predict returned error: %v", err)
	}
	firstCap := cap(m.a)
	if _, err := m.Predict(st, mu, su, 1e-3, 0, 0, true); err != nil {
		t.Fatalf("second Predict returned error: %v", err)
	}
	if cap(m.a) != firstCap {
		t.Errorf("expected scratch capacity to be reused across calls, got %d then %d", firstCap, cap(m.a))
	}
}
