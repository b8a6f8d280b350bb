package power

import (
	"math"
	"strings"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

// Estimate is the power profile of one assembled configuration.
type Estimate struct {
	TotalPowerEstimate    float64            `json:"total_power_estimate"`
	RecommendedPSUWattage float64            `json:"recommended_psu_wattage"`
	ComponentBreakdown    map[string]float64 `json:"component_breakdown"`
}

// Estimator computes power profiles from heuristic constants. It is stateless
// and safe for concurrent use.
type Estimator struct {
	h Heuristics
}

// NewEstimator creates an estimator with the given heuristics.
func NewEstimator(h Heuristics) *Estimator {
	return &Estimator{h: h}
}

// Estimate sums per-component draw estimates and derives a recommended PSU
// rating. Known limitations, kept deliberately: only the first CPU record is
// costed, and two GPUs with identical model strings collide on one breakdown
// key.
func (e *Estimator) Estimate(components []models.Component) Estimate {
	var total float64
	breakdown := make(map[string]float64)

	counts := make(map[models.Category]int)
	for _, c := range components {
		counts[c.Category]++
	}

	if cpu, ok := firstOf(components, models.CategoryCPU); ok {
		tdp, ok := cpu.SpecNumber("tdp")
		if !ok {
			tdp = e.h.CPUDefaultTDP
		}
		// Sustained draw exceeds TDP under boost, hence the margin.
		cpuPower := tdp * e.h.CPUMargin
		total += cpuPower
		breakdown["cpu"] = cpuPower
	}

	for _, c := range components {
		if c.Category != models.CategoryGPU {
			continue
		}
		gpuPower := e.gpuWatts(c) * e.h.GPUMargin
		total += gpuPower
		breakdown["gpu_"+c.Model] = gpuPower
	}

	for category, watts := range e.h.UnitWattage {
		if count := counts[models.Category(category)]; count > 0 {
			contribution := watts * float64(count)
			total += contribution
			breakdown[category] = contribution
		}
	}

	return Estimate{
		TotalPowerEstimate:    math.Round(total),
		RecommendedPSUWattage: e.recommendPSU(total),
		ComponentBreakdown:    breakdown,
	}
}

// gpuWatts resolves a GPU's base draw through a fallback chain: explicit TDP,
// then the recommended-PSU text scaled down, then the model-name class table.
// Malformed values fall through to the next tier.
func (e *Estimator) gpuWatts(gpu models.Component) float64 {
	if v, ok := gpu.Spec("tdp"); ok {
		if watts, ok := models.LeadingNumber(v); ok {
			return watts
		}
	}

	if v, ok := gpu.Spec("recommended_psu"); ok {
		if psuWatts, ok := models.LeadingNumber(v); ok {
			return psuWatts * e.h.GPUPSUScale
		}
	}

	model := strings.ToLower(gpu.Model)
	for _, class := range e.h.GPUClasses {
		for _, name := range class.Models {
			if strings.Contains(model, name) {
				return class.Watts
			}
		}
	}
	return e.h.GPUDefaultWatts
}

// recommendPSU applies the safety margin and rounds up to the next standard
// PSU rating, or to the nearest RoundingStep multiple beyond the ladder.
func (e *Estimator) recommendPSU(total float64) float64 {
	margin := e.h.BaseMargin
	if total > e.h.HighLoadCutoff {
		margin = e.h.HighLoadMargin
	}
	recommended := math.Round(total * margin)

	for _, wattage := range e.h.StandardWattages {
		if wattage >= recommended {
			return wattage
		}
	}
	return math.Round(recommended/e.h.RoundingStep) * e.h.RoundingStep
}

func firstOf(components []models.Component, category models.Category) (models.Component, bool) {
	for _, c := range components {
		if c.Category == category {
			return c, true
		}
	}
	return models.Component{}, false
}
