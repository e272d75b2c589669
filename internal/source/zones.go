// Package source builds the fixed mass, momentum, and energy source/sink
// arrays from a zoning rule: an evaporation-like zone near the inlet and a
// condensation-like zone near the outlet, each a fixed fraction of the
// interior cells.
package source

// ZoneSpec configures the source/sink zoning rule. FracSrc and FracSnk are
// fractions of the interior (non-boundary) cell count; MagnitudeSm and
// MagnitudeSt are the per-cell mass and volumetric-energy magnitudes applied
// (positive in the source zone, negated in the sink zone).
type ZoneSpec struct {
	FracSrc     float64
	FracSnk     float64
	MagnitudeSm float64
	MagnitudeSt float64
}

// Build returns Sm, St, Su arrays of length n. Su (momentum source) is
// always all zeros here (BuildSymmetric returns the same zero Su); a caller
// that needs a nonzero momentum source fills it in by hand. Cells 0 and n-1
// are always left at zero: they carry boundary conditions, not sources.
func Build(n int, spec ZoneSpec) (sm, st, su []float64) {
	sm = make([]float64, n)
	st = make([]float64, n)
	su = make([]float64, n)

	if n <= 2 {
		return sm, st, su
	}
	interior := n - 2
	nSrc := int(spec.FracSrc*float64(interior) + 0.5)
	nSnk := int(spec.FracSnk*float64(interior) + 0.5)

	for k := 0; k < nSrc && 1+k < n-1; k++ {
		i := 1 + k
		sm[i] = spec.MagnitudeSm
		st[i] = spec.MagnitudeSt
	}
	for k := 0; k < nSnk && n-2-k > 0; k++ {
		i := n - 2 - k
		sm[i] = -spec.MagnitudeSm
		st[i] = -spec.MagnitudeSt
	}
	return sm, st, su
}

// BuildSymmetric returns the same Sm, St, Su arrays as Build, used to
// exercise antisymmetric source/sink configurations. Sm and St come out
// antisymmetric about the domain midplane (Sm[i] == -Sm[n-1-i]) when
// spec.FracSrc == spec.FracSnk and the two zones do not overlap; the
// fractions are not equalized here.
func BuildSymmetric(n int, spec ZoneSpec) (sm, st, su []float64) {
	return Build(n, spec)
}
