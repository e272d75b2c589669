// Command piso1d runs the compressible PISO pipe-flow solver from the
// command line: a cobra root command with run and presets subcommands,
// config-file/preset/flag precedence resolved via cmd.Flags().Changed.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deltaflow/piso1d/internal/config"
	"github.com/deltaflow/piso1d/internal/driver"
	"github.com/deltaflow/piso1d/internal/fluid"
	"github.com/deltaflow/piso1d/internal/metrics"
	"github.com/deltaflow/piso1d/internal/report"
	"github.com/deltaflow/piso1d/internal/solver"
	"github.com/deltaflow/piso1d/internal/storage"
)

var (
	configFile string
	presetName string
	outFile    string
	saveDir    string
	svgPrefix  string

	n        int
	length   float64
	dt       float64
	tMax     float64
	uInlet   float64
	uOutlet  float64
	pOutlet  float64
	turbFlag bool
	rcFlag   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "piso1d",
		Short: "1D compressible PISO pipe-flow solver",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the solver to completion",
		RunE:  runSolver,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&presetName, "preset", "", "named preset configuration")
	runCmd.Flags().StringVar(&outFile, "out", "profile.txt", "output profile file path")
	runCmd.Flags().IntVar(&n, "n", config.DefaultN, "number of grid cells")
	runCmd.Flags().Float64Var(&length, "length", config.DefaultLength, "pipe length, m")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time step, s")
	runCmd.Flags().Float64Var(&tMax, "t-max", config.DefaultTMax, "total simulated time, s")
	runCmd.Flags().Float64Var(&uInlet, "u-inlet", 0, "inlet velocity, m/s")
	runCmd.Flags().Float64Var(&uOutlet, "u-outlet", 0, "outlet velocity, m/s")
	runCmd.Flags().Float64Var(&pOutlet, "p-outlet", 50000.0, "outlet pressure, Pa")
	runCmd.Flags().BoolVar(&turbFlag, "turbulence", false, "enable k-omega turbulence closure")
	runCmd.Flags().BoolVar(&rcFlag, "rhie-chow", true, "enable Rhie-Chow face-velocity correction")
	runCmd.Flags().StringVar(&saveDir, "save-dir", "", "directory to archive run metadata and diagnostics (disabled if empty)")
	runCmd.Flags().StringVar(&svgPrefix, "svg", "", "path prefix for SVG profile plots, e.g. out/run (disabled if empty)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			if len(names) == 0 {
				fmt.Println("no presets available")
				return nil
			}
			fmt.Println("presets:")
			for _, name := range names {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if presetName != "" {
		preset := config.GetPreset(presetName)
		if preset == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
		cfg = preset
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("n") {
		cfg.N = n
	}
	if cmd.Flags().Changed("length") {
		cfg.Length = length
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("t-max") {
		cfg.TMax = tMax
	}
	if cmd.Flags().Changed("u-inlet") {
		cfg.UInlet = uInlet
	}
	if cmd.Flags().Changed("u-outlet") {
		cfg.UOutlet = uOutlet
	}
	if cmd.Flags().Changed("p-outlet") {
		cfg.POutlet = pOutlet
	}
	if cmd.Flags().Changed("turbulence") {
		cfg.Turbulence = turbFlag
	}
	if cmd.Flags().Changed("rhie-chow") {
		cfg.RhieChow = rcFlag
	}

	return cfg, nil
}

func runSolver(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	d := driver.New(cfg)
	courant := metrics.NewCourantTracker(1.0)

	fmt.Printf("running piso1d: n=%d length=%.3f dt=%.3e t_max=%.3e turbulence=%v rhie_chow=%v\n",
		cfg.N, cfg.Length, cfg.Dt, cfg.TMax, cfg.Turbulence, cfg.RhieChow)

	result, err := d.Run(context.Background(), func(diag driver.StepDiagnostic) {
		courant.Observe(diag.MaxCourant)
		report.Line(os.Stdout, diag)
		for _, w := range d.DrainWarnings() {
			fmt.Printf("  warning[%s]: %s\n", w.Kind, w.Message)
		}
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	fmt.Printf("\ncompleted %d steps (Co<=1.0 on %.1f%% of steps, max Co=%.4f)\n",
		result.StepsTaken, 100*courant.Value(), courant.MaxObserved())
	if err := report.WriteProfile(outFile, d.Grid); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	fmt.Printf("profile written to %s\n\n", outFile)
	report.ProfilePlot(os.Stdout, d.Grid)

	if svgPrefix != "" {
		if err := report.WriteSVGProfiles(svgPrefix, d.Grid); err != nil {
			return fmt.Errorf("failed to write SVG profiles: %w", err)
		}
		fmt.Printf("SVG profiles written to %s_{u,p,t}.svg\n", svgPrefix)
	}

	if saveDir != "" {
		store := storage.New(saveDir)
		if err := store.Init(); err != nil {
			return fmt.Errorf("failed to init run archive: %w", err)
		}
		runID, err := store.Save(cfg, result)
		if err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
		fmt.Printf("run archived as %s under %s\n", runID, saveDir)
	}

	return nil
}

func exitCode(err error) int {
	var stepErr *solver.StepError
	if errors.As(err, &stepErr) {
		if errors.Is(stepErr.Err, solver.ErrNumericalBreakdown) {
			return 2
		}
		if errors.Is(stepErr.Err, fluid.ErrInvalidPropertyArgument) {
			return 3
		}
	}
	if errors.Is(err, fluid.ErrInvalidPropertyArgument) {
		return 3
	}
	return 1
}
