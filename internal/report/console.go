// Package report renders the driver's per-step diagnostics and the final
// converged profile: one lipgloss-styled progress line per step and a
// final asciigraph line plot.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/deltaflow/piso1d/internal/driver"
	"github.com/deltaflow/piso1d/internal/grid"
)

var (
	statusConverged = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusAtCap     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	statusBreakdown = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff3333"))
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff"))
)

// Line writes one styled progress line for a step diagnostic to w: green
// while the step converged within tolerance, yellow while it was still
// iterating at the cap, red on a numerical breakdown.
func Line(w io.Writer, d driver.StepDiagnostic) {
	var status string
	switch {
	case d.Err != nil:
		status = statusBreakdown.Render("breakdown")
	case d.Converged:
		status = statusConverged.Render("converged")
	default:
		status = statusAtCap.Render("at cap")
	}
	fmt.Fprintf(w, "%s %s  t=%.5f  Co_max=%.4f  Re_max=%.1f  piso_iter=%d  residual=%.2e  [%s]\n",
		labelStyle.Render("step"), valueStyle.Render(fmt.Sprintf("%d", d.Step)),
		d.Time, d.MaxCourant, d.MaxReynolds, d.PISOIterations, d.MaxResidual,
		status,
	)
}

// ProfilePlot writes asciigraph line plots of the converged u, p, T fields.
func ProfilePlot(w io.Writer, st *grid.State) {
	u := make([]float64, st.N)
	p := make([]float64, st.N)
	t := make([]float64, st.N)
	copy(u, st.U)
	copy(p, st.P)
	copy(t, st.T)

	fmt.Fprintln(w, asciigraph.Plot(u, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("velocity u (m/s)")))
	fmt.Fprintln(w)
	fmt.Fprintln(w, asciigraph.Plot(p, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("pressure p (Pa)")))
	fmt.Fprintln(w)
	fmt.Fprintln(w, asciigraph.Plot(t, asciigraph.Height(8), asciigraph.Width(70), asciigraph.Caption("temperature T (K)")))
}
