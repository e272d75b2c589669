package solver

// Tridiag is a reusable Thomas-algorithm solver for diagonally-dominant
// tridiagonal systems. Scratch slices grow lazily on first use (and whenever
// the system size changes) instead of being reallocated on every call, the
// same lazy-grow shape the momentum/energy/pressure assemblers reuse for
// their per-step coefficient vectors.
type Tridiag struct {
	cStar []float64
	dStar []float64
}

// NewTridiag returns a ready-to-use solver with no preallocated scratch.
func NewTridiag() *Tridiag {
	return &Tridiag{}
}

func (t *Tridiag) ensureScratch(n int) {
	if cap(t.cStar) < n {
		t.cStar = make([]float64, n)
		t.dStar = make([]float64, n)
	}
	t.cStar = t.cStar[:n]
	t.dStar = t.dStar[:n]
}

// Solve returns x satisfying the tridiagonal system
//
//	b[0]*x[0] + c[0]*x[1]                           = d[0]
//	a[i]*x[i-1] + b[i]*x[i] + c[i]*x[i+1]            = d[i]   (0 < i < n-1)
//	a[n-1]*x[n-2] + b[n-1]*x[n-1]                    = d[n-1]
//
// a, b, c, d must have the same length n. c[n-1] and a[0] are ignored.
// Solve does not mutate its inputs. It returns ErrNumericalBreakdown if any
// forward-elimination pivot rounds to exactly zero.
func (t *Tridiag) Solve(a, b, c, d []float64) ([]float64, error) {
	n := len(b)
	if len(a) != n || len(c) != n || len(d) != n {
		return nil, ErrDimensionMismatch
	}
	if n == 0 {
		return nil, nil
	}

	t.ensureScratch(n)
	cStar, dStar := t.cStar, t.dStar

	if b[0] == 0 {
		return nil, ErrNumericalBreakdown
	}
	cStar[0] = c[0] / b[0]
	dStar[0] = d[0] / b[0]

	for i := 1; i < n; i++ {
		m := b[i] - a[i]*cStar[i-1]
		if m == 0 {
			return nil, ErrNumericalBreakdown
		}
		cStar[i] = c[i] / m
		dStar[i] = (d[i] - a[i]*dStar[i-1]) / m
	}

	x := make([]float64, n)
	x[n-1] = dStar[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dStar[i] - cStar[i]*x[i+1]
	}
	return x, nil
}
