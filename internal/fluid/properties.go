package fluid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Liquid sodium validity range (melting point to normal boiling point), K.
const (
	TLiquidMin = 371.0
	TLiquidMax = 1156.0
)

// Provider bundles the fitted 1D correlations and the 2D vapor-conductivity
// table behind a common property-lookup contract. It is safe for
// concurrent use once constructed: Fit happens once in NewProvider, every
// Provider method only reads the fitted tables, and the one side effect
// (KVapor's out-of-range warning) is a non-blocking channel send.
type Provider struct {
	rhoL, muL, kL, cpL           interp.PiecewiseLinear
	muV, cpV, cvV, hVap, pSat    interp.PiecewiseLinear
	kVTable                      bilinearTable
	warnings                     chan Warning
}

// NewProvider fits every correlation once and returns a ready Provider. The
// warning channel is buffered (capacity 256) so OutOfRangeExtrapolation
// events never block the code that raises them; once it is full, further
// warnings are dropped until a reader drains it.
func NewProvider() *Provider {
	p := &Provider{warnings: make(chan Warning, 256)}

	mustFit(&p.rhoL, liquidTempSamples, liquidRhoSamples)
	mustFit(&p.muL, liquidTempSamples, liquidMuSamples)
	mustFit(&p.kL, liquidTempSamples, liquidKSamples)
	mustFit(&p.cpL, liquidTempSamples, liquidCpSamples)

	mustFit(&p.muV, vaporTempSamples, vaporMuSamples)
	mustFit(&p.cpV, vaporTempSamples, vaporCpSamples)
	mustFit(&p.cvV, vaporTempSamples, vaporCvSamples)
	mustFit(&p.hVap, vaporTempSamples, hVapSamples)
	mustFit(&p.pSat, vaporTempSamples, pSatSamples)

	p.kVTable = newBilinearTable(kVTemps, kVPressures, kVValues)

	return p
}

func mustFit(fn *interp.PiecewiseLinear, xs, ys []float64) {
	if err := fn.Fit(xs, ys); err != nil {
		panic(fmt.Sprintf("fluid: invalid correlation table: %v", err))
	}
}

// Warnings returns the channel the driver drains once per step.
func (p *Provider) Warnings() <-chan Warning {
	return p.warnings
}

func (p *Provider) emit(kind, msg string) {
	select {
	case p.warnings <- Warning{Kind: kind, Message: msg}:
	default:
		// channel full: drop rather than block the hot loop.
	}
}

func clampLiquidT(t float64) float64 {
	if t < TLiquidMin {
		return TLiquidMin
	}
	if t > TLiquidMax {
		return TLiquidMax
	}
	return t
}

// RhoLiquid returns liquid sodium density, kg/m^3.
func (p *Provider) RhoLiquid(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.rhoL.Predict(clampLiquidT(t)), nil
}

// MuLiquid returns liquid sodium dynamic viscosity, Pa*s.
func (p *Provider) MuLiquid(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.muL.Predict(clampLiquidT(t)), nil
}

// KLiquid returns liquid sodium thermal conductivity, W/(m*K).
func (p *Provider) KLiquid(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.kL.Predict(clampLiquidT(t)), nil
}

// CpLiquid returns liquid sodium specific heat at constant pressure,
// J/(kg*K).
func (p *Provider) CpLiquid(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.cpL.Predict(clampLiquidT(t)), nil
}

func clampVaporT(t float64) float64 {
	if t < vaporTempSamples[0] {
		return vaporTempSamples[0]
	}
	if t > vaporTempSamples[len(vaporTempSamples)-1] {
		return vaporTempSamples[len(vaporTempSamples)-1]
	}
	return t
}

// RhoVapor returns saturated sodium vapor density, kg/m^3, via the ideal-gas
// relation at the saturation pressure: rho_v(T) = P_sat(T) / (Rv * T).
func (p *Provider) RhoVapor(t, rv float64) (float64, error) {
	if t <= 0 || rv <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	psat, err := p.PSat(t)
	if err != nil {
		return 0, err
	}
	return psat / (rv * t), nil
}

// MuVapor returns sodium vapor dynamic viscosity, Pa*s.
func (p *Provider) MuVapor(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.muV.Predict(clampVaporT(t)), nil
}

// CpVapor returns sodium vapor specific heat at constant pressure, J/(kg*K).
func (p *Provider) CpVapor(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.cpV.Predict(clampVaporT(t)), nil
}

// CvVapor returns sodium vapor specific heat at constant volume, J/(kg*K).
func (p *Provider) CvVapor(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.cvV.Predict(clampVaporT(t)), nil
}

// HVap returns the latent heat of vaporization, J/kg.
func (p *Provider) HVap(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.hVap.Predict(clampVaporT(t)), nil
}

// PSat returns the saturation pressure, Pa.
func (p *Provider) PSat(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	return p.pSat.Predict(clampVaporT(t)), nil
}

// DPSatDT returns d(P_sat)/dT via a centered finite difference over the
// fitted saturation-pressure correlation, Pa/K.
func (p *Provider) DPSatDT(t float64) (float64, error) {
	if t <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	const h = 0.5
	tLo := clampVaporT(t - h)
	tHi := clampVaporT(t + h)
	return (p.pSat.Predict(tHi) - p.pSat.Predict(tLo)) / (tHi - tLo), nil
}

// KVapor returns sodium vapor thermal conductivity, W/(m*K), via bilinear
// interpolation over the (T,P) table. Outside the table it falls back to a
// deterministic sqrt(T) kinetic-theory extrapolation anchored to the
// nearest table edge, and emits OutOfRangeExtrapolation on the warning
// channel.
func (p *Provider) KVapor(t, pPa float64) (float64, error) {
	if t <= 0 || pPa <= 0 {
		return 0, ErrInvalidPropertyArgument
	}
	v, inRange := p.kVTable.lookup(t, pPa)
	if inRange {
		return v, nil
	}
	edgeT, edgeK := p.kVTable.nearestEdge(t, pPa)
	estimate := edgeK * math.Sqrt(t/edgeT)
	p.emit("extrapolation", fmt.Sprintf("k_vapor(T=%.2f, P=%.2f) outside table, using sqrt(T) estimate %.6g", t, pPa, estimate))
	return estimate, nil
}
