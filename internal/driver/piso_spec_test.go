package driver_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/deltaflow/piso1d/internal/config"
	"github.com/deltaflow/piso1d/internal/driver"
	"github.com/deltaflow/piso1d/internal/source"
)

// pressureOscillation returns a discrete second-difference norm of p, a
// cheap checkerboard-detection metric: a smooth field has a small value
// here, an alternating field a large one.
func pressureOscillation(p []float64) float64 {
	sum := 0.0
	for i := 1; i < len(p)-1; i++ {
		d := p[i-1] - 2*p[i] + p[i+1]
		sum += d * d
	}
	return math.Sqrt(sum)
}

var _ = Describe("PISO driver", func() {

	Context("S1 quiescent baseline", func() {
		It("stays at rest with uniform pressure and temperature", func() {
			cfg := config.GetPreset("quiescent")
			d := driver.New(cfg)
			_, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			for _, u := range d.Grid.U {
				Expect(u).To(BeNumerically("~", 0, 1e-10))
			}
			for _, p := range d.Grid.P {
				Expect(p).To(BeNumerically("~", 50000.0, 1.0))
			}
			for _, temp := range d.Grid.T {
				Expect(temp).To(BeNumerically("~", 1000.0, 1e-6))
			}
		})
	})

	Context("S2 source/sink balance", func() {
		It("drives positive velocity in the middle segment", func() {
			cfg := config.GetPreset("source-sink")
			d := driver.New(cfg)
			_, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			mid := d.Grid.N / 2
			Expect(d.Grid.U[mid]).To(BeNumerically(">", 0))
		})
	})

	Context("S3 Rhie-Chow toggle", func() {
		It("suppresses checkerboard pressure oscillation by at least 10x", func() {
			withRC := config.GetPreset("source-sink")
			withoutRC := config.GetPreset("checkerboard")

			dRC := driver.New(withRC)
			_, err := dRC.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			dNoRC := driver.New(withoutRC)
			_, err = dNoRC.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			oscRC := pressureOscillation(dRC.Grid.P)
			oscNoRC := pressureOscillation(dNoRC.Grid.P)

			Expect(oscNoRC).To(BeNumerically(">", 0))
			Expect(oscRC * 10).To(BeNumerically("<=", oscNoRC))
		})
	})

	Context("S4 PISO convergence", func() {
		It("converges within the iteration cap for every one of the first 100 steps", func() {
			cfg := config.GetPreset("piso-convergence")
			d := driver.New(cfg)
			result, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Diagnostics).To(HaveLen(100))

			for _, diag := range result.Diagnostics {
				Expect(diag.Converged).To(BeTrue())
				Expect(diag.PISOIterations).To(BeNumerically("<=", 50))
				Expect(diag.MaxResidual).To(BeNumerically("<=", cfg.Tol))
			}
		})
	})

	Context("S6 turbulence toggle", func() {
		It("caps eddy viscosity at 1000x molecular viscosity", func() {
			cfg := config.GetPreset("turbulent-inlet")
			d := driver.New(cfg)
			_, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			for i, muT := range d.Grid.MuT {
				mu, err := d.Fluid.MuVapor(d.Grid.T[i])
				Expect(err).NotTo(HaveOccurred())
				Expect(muT).To(BeNumerically("<=", 1000.0*mu))
			}
		})
	})

	Context("property 5: checkerboard suppression on a uniform field", func() {
		It("keeps a uniform velocity field uniform for at least 10 steps", func() {
			cfg := config.DefaultConfig()
			cfg.N = 30
			cfg.UInit = 2.0
			cfg.UInlet = 2.0
			cfg.UOutlet = 2.0
			cfg.TMax = 10 * cfg.Dt
			cfg.RhieChow = true

			d := driver.New(cfg)
			_, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			for _, u := range d.Grid.U {
				Expect(u).To(BeNumerically("~", 2.0, 1e-8))
			}
		})
	})

	Context("property 6: mass conservation after PISO convergence", func() {
		It("balances the domain storage term against the configured sources", func() {
			cfg := config.GetPreset("source-sink")
			d := driver.New(cfg)
			result, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			last := result.Diagnostics[len(result.Diagnostics)-1]
			Expect(last.Converged).To(BeTrue())

			sm, _, _ := source.Build(cfg.N, source.ZoneSpec{
				FracSrc:     cfg.Zoning.FracSrc,
				FracSnk:     cfg.Zoning.FracSnk,
				MagnitudeSm: cfg.Zoning.MagnitudeSm,
				MagnitudeSt: cfg.Zoning.MagnitudeSt,
			})

			dz := d.Grid.Dz
			storage := 0.0
			sourceTotal := 0.0
			for i := 0; i < d.Grid.N; i++ {
				storage += (d.Grid.Rho[i] - d.Grid.RhoOld[i]) * dz / cfg.Dt
				sourceTotal += sm[i] * dz
			}
			boundaryFlux := d.Grid.Rho[d.Grid.N-1]*d.Grid.U[d.Grid.N-1] - d.Grid.Rho[0]*d.Grid.U[0]

			Expect(storage).To(BeNumerically("~", sourceTotal+boundaryFlux, 1e-3))
		})
	})

	Context("property 2: Dirichlet velocity boundaries hold after every run", func() {
		It("pins u[0] and u[N-1] to the configured inlet/outlet velocities", func() {
			cfg := config.DefaultConfig()
			cfg.N = 15
			cfg.UInlet = 4.0
			cfg.UOutlet = 1.5
			cfg.TMax = 3 * cfg.Dt

			d := driver.New(cfg)
			_, err := d.Run(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(d.Grid.U[0]).To(Equal(cfg.UInlet))
			Expect(d.Grid.U[d.Grid.N-1]).To(Equal(cfg.UOutlet))
		})
	})
})
