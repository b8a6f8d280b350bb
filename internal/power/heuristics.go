// Package power estimates total system draw and the recommended PSU rating
// for an assembled configuration.
package power

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GPUClass maps model-name substrings to an estimated wattage. Classes are
// checked in order and the first substring match wins, so more specific names
// ("rx 7900 xtx") must precede their prefixes ("rx 7900 xt").
type GPUClass struct {
	Models []string `yaml:"models"`
	Watts  float64  `yaml:"watts"`
}

// Heuristics holds the tunable constants of the estimator. They are industry
// rules of thumb rather than measurements, so they live in configuration and
// can be overridden from a YAML file without a rebuild.
type Heuristics struct {
	CPUDefaultTDP   float64 `yaml:"cpu_default_tdp"`
	CPUMargin       float64 `yaml:"cpu_margin"`
	GPUMargin       float64 `yaml:"gpu_margin"`
	GPUPSUScale     float64 `yaml:"gpu_psu_scale"`
	GPUDefaultWatts float64 `yaml:"gpu_default_watts"`

	GPUClasses []GPUClass `yaml:"gpu_classes"`

	// UnitWattage is the fixed per-unit draw for categories without a
	// model-specific estimate, keyed by category.
	UnitWattage map[string]float64 `yaml:"unit_wattage"`

	HighLoadCutoff float64 `yaml:"high_load_cutoff"`
	HighLoadMargin float64 `yaml:"high_load_margin"`
	BaseMargin     float64 `yaml:"base_margin"`

	// StandardWattages is the ascending ladder of common PSU ratings the
	// recommendation rounds up to; beyond the ladder, RoundingStep applies.
	StandardWattages []float64 `yaml:"standard_wattages"`
	RoundingStep     float64   `yaml:"rounding_step"`
}

// DefaultHeuristics returns the built-in estimation constants.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		CPUDefaultTDP:   65,
		CPUMargin:       1.20,
		GPUMargin:       1.15,
		GPUPSUScale:     0.40,
		GPUDefaultWatts: 150,
		GPUClasses: []GPUClass{
			{Models: []string{"rtx 4090", "rx 7900 xtx"}, Watts: 450},
			{Models: []string{"rtx 4080", "rx 7900 xt"}, Watts: 320},
			{Models: []string{"rtx 4070", "rx 7800 xt"}, Watts: 200},
			{Models: []string{"rtx 4060", "rx 7700 xt"}, Watts: 160},
		},
		UnitWattage: map[string]float64{
			"motherboard": 30,
			"ram":         5,
			"ssd":         5,
			"hdd":         10,
			"cooling":     10,
			"other":       30,
		},
		HighLoadCutoff:   600,
		HighLoadMargin:   1.30,
		BaseMargin:       1.20,
		StandardWattages: []float64{450, 550, 650, 750, 850, 1000, 1200, 1500},
		RoundingStep:     100,
	}
}

// LoadHeuristics reads a YAML override file on top of the defaults. Fields
// absent from the file keep their default values.
func LoadHeuristics(path string) (Heuristics, error) {
	h := DefaultHeuristics()

	data, err := os.ReadFile(path)
	if err != nil {
		return h, fmt.Errorf("read heuristics file: %w", err)
	}
	if err := yaml.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("parse heuristics file: %w", err)
	}
	if len(h.StandardWattages) == 0 || h.RoundingStep <= 0 {
		return h, fmt.Errorf("heuristics file %s: standard_wattages and rounding_step must be set", path)
	}
	return h, nil
}
