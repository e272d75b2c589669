// Package config defines the solver's run configuration, its yaml
// (de)serialization, and a table of named presets.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults mirror the values used by the quiescent baseline scenario so an
// unconfigured run reproduces it.
const (
	DefaultN        = 100
	DefaultLength   = 1.0
	DefaultDt       = 1e-3
	DefaultTMax     = 1e-3
	DefaultTotIter  = 200
	DefaultCorrIter = 2
	DefaultTol      = 1e-8
	DefaultRv       = 361.5 // specific gas constant for sodium vapor, J/(kg*K)
	DefaultPrT      = 0.9
)

// Config carries every physical and numerical constant the solver needs
// plus the zoning and turbulence toggles needed to build a full run.
type Config struct {
	N        int     `yaml:"n"`
	Length   float64 `yaml:"length"`
	Dt       float64 `yaml:"dt"`
	TMax     float64 `yaml:"t_max"`
	TotIter  int     `yaml:"tot_iter"`
	CorrIter int     `yaml:"corr_iter"`
	Tol      float64 `yaml:"tol"`
	Rv       float64 `yaml:"rv"`

	UInit float64 `yaml:"u_init"`
	PInit float64 `yaml:"p_init"`
	TInit float64 `yaml:"t_init"`

	UInlet  float64 `yaml:"u_inlet"`
	UOutlet float64 `yaml:"u_outlet"`
	POutlet float64 `yaml:"p_outlet"`

	Zoning ZoningConfig `yaml:"zoning"`

	RhieChow   bool    `yaml:"rhie_chow"`
	Turbulence bool    `yaml:"turbulence"`
	PrT        float64 `yaml:"pr_t"`

	Turb TurbulenceConfig `yaml:"turbulence_init"`
}

// ZoningConfig configures the source/sink zone construction.
type ZoningConfig struct {
	FracSrc     float64 `yaml:"frac_src"`
	FracSnk     float64 `yaml:"frac_snk"`
	MagnitudeSm float64 `yaml:"magnitude_sm"`
	MagnitudeSt float64 `yaml:"magnitude_st"`
}

// TurbulenceConfig seeds the k-omega closure's initial/boundary values when
// turbulence is enabled.
type TurbulenceConfig struct {
	Intensity   float64 `yaml:"intensity"`
	LengthScale float64 `yaml:"length_scale"` // 0 means derive as 0.07*Length
}

// DefaultConfig returns the quiescent baseline: zero sources, zero
// inlet/outlet velocity, Rhie-Chow on and turbulence off.
func DefaultConfig() *Config {
	return &Config{
		N:        DefaultN,
		Length:   DefaultLength,
		Dt:       DefaultDt,
		TMax:     DefaultTMax,
		TotIter:  DefaultTotIter,
		CorrIter: DefaultCorrIter,
		Tol:      DefaultTol,
		Rv:       DefaultRv,
		PInit:    50000.0,
		TInit:    1000.0,
		POutlet:  50000.0,
		RhieChow: true,
		PrT:      DefaultPrT,
		Turb:     TurbulenceConfig{Intensity: 0.05},
	}
}

// Load reads a yaml config file, applying its values on top of
// DefaultConfig so a partial file only overrides what it sets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as yaml to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LengthScale returns the configured turbulence length scale, deriving the
// spec's default 0.07*Length when unset.
func (c *Config) LengthScale() float64 {
	if c.Turb.LengthScale > 0 {
		return c.Turb.LengthScale
	}
	return 0.07 * c.Length
}
