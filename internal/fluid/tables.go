package fluid

// Correlation sample points for liquid and vapor sodium. These are
// representative engineering-correlation values (not a validated property
// package; validated turbulence calibration and phase-change thermodynamics
// beyond the ideal-gas EOS are explicit non-goals), sampled coarsely enough
// that the piecewise-linear fit is a fair approximation of the smooth
// correlations they stand in for.
var (
	liquidTempSamples = []float64{371, 500, 644, 800, 977, 1156}
	liquidRhoSamples  = []float64{927.3, 897.8, 863.3, 825.4, 781.8, 740.0}
	liquidMuSamples   = []float64{6.97e-4, 4.19e-4, 2.87e-4, 2.17e-4, 1.75e-4, 1.48e-4}
	liquidKSamples    = []float64{86.1, 80.8, 75.1, 69.0, 62.4, 56.8}
	liquidCpSamples   = []float64{1384.0, 1321.0, 1284.0, 1274.0, 1300.0, 1357.0}

	vaporTempSamples = []float64{644, 800, 977, 1156, 1400, 1700}
	vaporMuSamples   = []float64{1.8e-5, 2.4e-5, 3.0e-5, 3.6e-5, 4.3e-5, 5.1e-5}
	vaporCpSamples   = []float64{980.0, 970.0, 960.0, 955.0, 950.0, 948.0}
	vaporCvSamples   = []float64{620.0, 615.0, 610.0, 608.0, 606.0, 605.0}
	hVapSamples      = []float64{4.37e6, 4.22e6, 4.05e6, 3.87e6, 3.60e6, 3.20e6}
	pSatSamples      = []float64{1.0e2, 1.9e4, 3.9e5, 2.6e6, 1.2e7, 4.1e7}

	kVTemps     = []float64{700, 900, 1100, 1300, 1500}
	kVPressures = []float64{1e4, 1e5, 1e6, 1e7}
	// kVValues[ti*len(kVPressures)+pi] is k_v at (kVTemps[ti], kVPressures[pi]).
	kVValues = []float64{
		0.018, 0.019, 0.022, 0.031,
		0.023, 0.024, 0.027, 0.036,
		0.028, 0.029, 0.033, 0.042,
		0.033, 0.034, 0.038, 0.048,
		0.038, 0.039, 0.044, 0.054,
	}
)

// bilinearTable is a small immutable grid with monotone binary search on
// each axis and bilinear interpolation in the interior, the 2D analogue of
// the 1D piecewise-linear correlations above.
type bilinearTable struct {
	temps     []float64
	pressures []float64
	values    []float64 // row-major: values[ti*len(pressures)+pi]
}

func newBilinearTable(temps, pressures, values []float64) bilinearTable {
	return bilinearTable{temps: temps, pressures: pressures, values: values}
}

// bracket returns the index i such that xs[i] <= x <= xs[i+1], clamping to
// the table edges, via monotone binary search.
func bracket(xs []float64, x float64) int {
	if x <= xs[0] {
		return 0
	}
	if x >= xs[len(xs)-1] {
		return len(xs) - 2
	}
	lo, hi := 0, len(xs)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if xs[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func (b bilinearTable) at(ti, pi int) float64 {
	return b.values[ti*len(b.pressures)+pi]
}

// lookup returns the bilinearly interpolated value and whether (t,p) fell
// within the table's bounding box.
func (b bilinearTable) lookup(t, pPa float64) (float64, bool) {
	inRange := t >= b.temps[0] && t <= b.temps[len(b.temps)-1] &&
		pPa >= b.pressures[0] && pPa <= b.pressures[len(b.pressures)-1]

	ti := bracket(b.temps, t)
	pi := bracket(b.pressures, pPa)

	t0, t1 := b.temps[ti], b.temps[ti+1]
	p0, p1 := b.pressures[pi], b.pressures[pi+1]

	ft := (t - t0) / (t1 - t0)
	fp := (pPa - p0) / (p1 - p0)

	v00 := b.at(ti, pi)
	v01 := b.at(ti, pi+1)
	v10 := b.at(ti+1, pi)
	v11 := b.at(ti+1, pi+1)

	v0 := v00*(1-fp) + v01*fp
	v1 := v10*(1-fp) + v11*fp
	return v0*(1-ft) + v1*ft, inRange
}

// nearestEdge returns a table point and its value, used as the anchor for
// sqrt(T) extrapolation outside the table. On an axis where the input lies
// outside the table it picks the nearest edge; on an axis where it lies
// inside, it picks the lower bracketing point, not necessarily the nearer one.
func (b bilinearTable) nearestEdge(t, pPa float64) (edgeT, edgeK float64) {
	ti := bracket(b.temps, t)
	if t > b.temps[len(b.temps)-1] {
		ti = len(b.temps) - 1
	} else if t < b.temps[0] {
		ti = 0
	}
	pi := bracket(b.pressures, pPa)
	if pPa > b.pressures[len(b.pressures)-1] {
		pi = len(b.pressures) - 1
	} else if pPa < b.pressures[0] {
		pi = 0
	}
	return b.temps[ti], b.at(ti, pi)
}
