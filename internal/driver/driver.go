// Package driver orchestrates the compressible PISO time-step loop: backup,
// predictor/corrector PISO iteration, EOS refresh, optional turbulence
// update, energy solve, and a second EOS refresh, once per step.
package driver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/deltaflow/piso1d/internal/config"
	"github.com/deltaflow/piso1d/internal/fluid"
	"github.com/deltaflow/piso1d/internal/grid"
	"github.com/deltaflow/piso1d/internal/solver"
	"github.com/deltaflow/piso1d/internal/source"
)

// Driver owns the grid state and the solver assemblers for one run. It is
// not safe for concurrent use; the PISO numerics themselves parallelize
// internally via solver.ParallelFor.
type Driver struct {
	cfg   *config.Config
	Grid  *grid.State
	Fluid *fluid.Provider

	momentum   *solver.Momentum
	pressure   *solver.Pressure
	energy     *solver.Energy
	turbulence *solver.Turbulence

	sm, st, su []float64

	k0, omega0, muT0 float64

	mu, cp, kEff []float64

	courantScratch, reynoldsScratch []float64
}

// New builds a Driver ready to Run: allocates the grid, builds the
// source/sink zoning, and fits the fluid-property correlations.
func New(cfg *config.Config) *Driver {
	sm, st, su := source.Build(cfg.N, source.ZoneSpec{
		FracSrc:     cfg.Zoning.FracSrc,
		FracSnk:     cfg.Zoning.FracSnk,
		MagnitudeSm: cfg.Zoning.MagnitudeSm,
		MagnitudeSt: cfg.Zoning.MagnitudeSt,
	})
	return NewWithZones(cfg, sm, st, su)
}

// NewWithZones builds a Driver from caller-supplied Sm/St/Su arrays instead
// of deriving them from cfg.Zoning, for callers that need a zoning pattern
// New can't express directly (e.g. the antisymmetric zones used to exercise
// velocity-profile symmetry).
func NewWithZones(cfg *config.Config, sm, st, su []float64) *Driver {
	g := grid.New(cfg.N, cfg.Length, cfg.UInit, cfg.PInit, cfg.TInit, cfg.POutlet)

	d := &Driver{
		cfg:        cfg,
		Grid:       g,
		Fluid:      fluid.NewProvider(),
		momentum:   solver.NewMomentum(),
		pressure:   solver.NewPressure(),
		energy:     solver.NewEnergy(),
		turbulence: solver.NewTurbulence(),
		sm:         sm,
		st:         st,
		su:         su,
		mu:         make([]float64, cfg.N),
		cp:         make([]float64, cfg.N),
		kEff:       make([]float64, cfg.N),

		courantScratch:  make([]float64, cfg.N),
		reynoldsScratch: make([]float64, cfg.N),
	}

	if cfg.Turbulence {
		uRef := cfg.UInlet
		if uRef == 0 {
			uRef = 1.0
		}
		d.k0 = 1.5 * math.Pow(cfg.Turb.Intensity*uRef, 2)
		omegaDenom := math.Pow(solver.BetaStar, 0.25) * cfg.LengthScale()
		d.omega0 = math.Sqrt(d.k0) / omegaDenom
		d.muT0 = cfg.PInit / (cfg.Rv * cfg.TInit) * d.k0 / d.omega0
		g.EnableTurbulence(d.k0, d.omega0, d.muT0)
	}

	g.RefreshEOS(cfg.Rv)
	return d
}

// refreshProperties recomputes the per-cell molecular viscosity, specific
// heat, and effective conductivity from the current (T, P) field.
func (d *Driver) refreshProperties() error {
	g := d.Grid
	for i := 0; i < g.N; i++ {
		mu, err := d.Fluid.MuVapor(g.T[i])
		if err != nil {
			return &solver.StepError{Cell: i, Err: err}
		}
		cp, err := d.Fluid.CpVapor(g.T[i])
		if err != nil {
			return &solver.StepError{Cell: i, Err: err}
		}
		k, err := d.Fluid.KVapor(g.T[i], g.P[i])
		if err != nil {
			return &solver.StepError{Cell: i, Err: err}
		}
		d.mu[i] = mu
		d.cp[i] = cp
		keff := k
		if d.cfg.Turbulence {
			keff += g.MuT[i] * cp / d.cfg.PrT
		}
		d.kEff[i] = keff
	}
	return nil
}

func (d *Driver) maxCourant() float64 {
	g := d.Grid
	for i := 0; i < g.N; i++ {
		d.courantScratch[i] = math.Abs(g.U[i]) * d.cfg.Dt / g.Dz
	}
	return floats.Max(d.courantScratch)
}

func (d *Driver) maxReynolds() float64 {
	g := d.Grid
	for i := 0; i < g.N; i++ {
		if d.mu[i] <= 0 {
			d.reynoldsScratch[i] = 0
			continue
		}
		d.reynoldsScratch[i] = math.Abs(g.Rho[i] * g.U[i] * g.Dz / d.mu[i])
	}
	return floats.Max(d.reynoldsScratch)
}

// saturationDiagnostics walks the source/sink-zone cells (those with a
// nonzero Sm) and reports how close the local state is to saturation and
// how well the configured energy source matches the mass source's implied
// latent-heat load. Cells outside a zone don't participate: saturation
// margin is only meaningful where phase change is modeled at all.
func (d *Driver) saturationDiagnostics() (minMarginK, maxLatentMismatch float64, err error) {
	g := d.Grid
	minMarginK = math.Inf(1)

	for i := 0; i < g.N; i++ {
		if d.sm[i] == 0 {
			continue
		}

		pSat, perr := d.Fluid.PSat(g.T[i])
		if perr != nil {
			return 0, 0, &solver.StepError{Cell: i, Err: perr}
		}
		dpSatDT, derr := d.Fluid.DPSatDT(g.T[i])
		if derr != nil {
			return 0, 0, &solver.StepError{Cell: i, Err: derr}
		}
		if dpSatDT != 0 {
			marginK := (pSat - g.P[i]) / dpSatDT
			if marginK < minMarginK {
				minMarginK = marginK
			}
		}

		if d.st[i] != 0 {
			hVap, herr := d.Fluid.HVap(g.T[i])
			if herr != nil {
				return 0, 0, &solver.StepError{Cell: i, Err: herr}
			}
			expectedSt := d.sm[i] * hVap
			mismatch := math.Abs((d.st[i] - expectedSt) / d.st[i])
			if mismatch > maxLatentMismatch {
				maxLatentMismatch = mismatch
			}
		}
	}

	return minMarginK, maxLatentMismatch, nil
}

// Run advances the solver from t=0 to cfg.TMax, returning the accumulated
// per-step diagnostics. It stops early, returning the diagnostics gathered
// so far, if the context is canceled or a step reports a fatal error.
func (d *Driver) Run(ctx context.Context, report func(StepDiagnostic)) (*Result, error) {
	g := d.Grid
	cfg := d.cfg
	steps := int(cfg.TMax/cfg.Dt + 0.5)

	result := &Result{Diagnostics: make([]StepDiagnostic, 0, steps)}

	// fail reports diag (with err attached) through the report callback
	// before returning, so a step that aborts mid-way is still visible as a
	// breakdown status line rather than silently disappearing.
	fail := func(diag StepDiagnostic, err error) (*Result, error) {
		var se *solver.StepError
		if errors.As(err, &se) {
			se.Step, se.Time = diag.Step, diag.Time
		}
		diag.Err = err
		if report != nil {
			report(diag)
		}
		return result, err
	}

	if err := d.refreshProperties(); err != nil {
		return fail(StepDiagnostic{Step: -1}, err)
	}

	for it := 0; it < steps; it++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		t := float64(it+1) * cfg.Dt
		g.Backup()

		diag := StepDiagnostic{Step: it, Time: t}

		maxErr := math.Inf(1)
		outer := 0
		for outer = 0; outer < cfg.TotIter; outer++ {
			uStar, err := d.momentum.Predict(g, d.mu, d.su, cfg.Dt, cfg.UInlet, cfg.UOutlet, cfg.RhieChow)
			if err != nil {
				return fail(diag, &solver.StepError{Step: it, Time: t, Cell: -1, Err: err})
			}
			for c := 0; c < cfg.CorrIter; c++ {
				src := uStar
				if c > 0 {
					src = g.U
				}
				maxErr, err = d.pressure.Correct(g, d.momentum.BU, src, d.sm, cfg.Dt, cfg.Rv, cfg.POutlet, cfg.RhieChow)
				if err != nil {
					return fail(diag, &solver.StepError{Step: it, Time: t, Cell: -1, Err: err})
				}
			}
			if maxErr <= cfg.Tol {
				outer++
				break
			}
		}

		diag.PISOIterations = outer
		diag.MaxResidual = maxErr
		diag.Converged = maxErr <= cfg.Tol

		g.RefreshEOS(cfg.Rv)

		if cfg.Turbulence {
			if err := d.turbulence.Update(g, d.mu, cfg.Dt, d.k0, d.omega0); err != nil {
				return fail(diag, &solver.StepError{Step: it, Time: t, Cell: -1, Err: err})
			}
		}

		if err := d.refreshProperties(); err != nil {
			return fail(diag, err)
		}

		tNew, err := d.energy.Solve(g, d.momentum.BU, d.cp, d.kEff, d.st, cfg.Dt, cfg.RhieChow)
		if err != nil {
			return fail(diag, &solver.StepError{Step: it, Time: t, Cell: -1, Err: err})
		}
		copy(g.T, tNew)

		g.RefreshEOS(cfg.Rv)
		if err := d.refreshProperties(); err != nil {
			return fail(diag, err)
		}

		diag.MaxCourant = d.maxCourant()
		diag.MaxReynolds = d.maxReynolds()

		minMarginK, maxLatentMismatch, err := d.saturationDiagnostics()
		if err != nil {
			return fail(diag, err)
		}
		diag.MinSaturationMarginK = minMarginK
		diag.MaxLatentHeatMismatch = maxLatentMismatch

		result.Diagnostics = append(result.Diagnostics, diag)
		result.StepsTaken++

		if report != nil {
			report(diag)
		}
	}

	return result, nil
}

// DrainWarnings drains and returns every pending fluid-property warning
// without blocking, called once per step by callers that want live
// reporting instead of collecting them at the end of Run.
func (d *Driver) DrainWarnings() []fluid.Warning {
	var out []fluid.Warning
	for {
		select {
		case w := <-d.Fluid.Warnings():
			out = append(out, w)
		default:
			return out
		}
	}
}

// SummaryLine formats a one-line human-readable summary of a diagnostic,
// used by callers that don't want the lipgloss-styled console report.
func SummaryLine(diag StepDiagnostic) string {
	status := "running"
	switch {
	case diag.Err != nil:
		status = "breakdown"
	case diag.Converged:
		status = "converged"
	}
	return fmt.Sprintf("step %d t=%.6f Co=%.4f Re=%.2f piso_iters=%d residual=%.3e [%s]",
		diag.Step, diag.Time, diag.MaxCourant, diag.MaxReynolds, diag.PISOIterations, diag.MaxResidual, status)
}
