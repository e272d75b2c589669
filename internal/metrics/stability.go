// Package metrics accumulates scalar health indicators across a run using
// an Observe/Value/Reset tracker shape fed by the driver's per-step
// diagnostics.
package metrics

// CourantTracker counts how many steps of a run exceed a configured Courant
// number threshold, reporting the fraction of steps that stayed within it.
// It follows the same violation-counting shape as a threshold-crossing
// stability observer, adapted here to a single scalar Courant signal fed
// once per step.
type CourantTracker struct {
	name       string
	threshold  float64
	violations int
	samples    int
	maxSeen    float64
}

// NewCourantTracker returns a tracker flagging any step whose max Courant
// number exceeds threshold.
func NewCourantTracker(threshold float64) *CourantTracker {
	return &CourantTracker{
		name:      "courant_stability",
		threshold: threshold,
	}
}

func (c *CourantTracker) Name() string { return c.name }

// Observe records one step's max Courant number.
func (c *CourantTracker) Observe(maxCourant float64) {
	c.samples++
	if maxCourant > c.maxSeen {
		c.maxSeen = maxCourant
	}
	if maxCourant > c.threshold {
		c.violations++
	}
}

// Value returns the fraction of observed steps that stayed within the
// threshold, in [0, 1]. An untouched tracker reports 1 (no violations).
func (c *CourantTracker) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

// MaxObserved returns the largest Courant number seen so far.
func (c *CourantTracker) MaxObserved() float64 {
	return c.maxSeen
}

func (c *CourantTracker) Reset() {
	c.violations = 0
	c.samples = 0
	c.maxSeen = 0
}
