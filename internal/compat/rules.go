// Package compat decides whether two hardware components fit together.
//
// Checks are dispatched on the ordered pair of categories. Deterministic
// rules answer the pairs they are confident about; everything else, including
// every pair without a registered rule, escalates to the adjudicator.
package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

// CheckType identifies which rule applies to an ordered component pair.
// Order matters: (cpu, motherboard) and (motherboard, cpu) are distinct
// types, and only the former has a registered rule.
type CheckType struct {
	A, B models.Category
}

// TypeOf derives the check type from two records' categories.
func TypeOf(a, b models.Component) CheckType {
	return CheckType{A: a.Category, B: b.Category}
}

func (t CheckType) String() string {
	return string(t.A) + "_" + string(t.B)
}

// Rule evaluates one ordered pair locally. A rule never errors: missing or
// unparseable spec data yields an Unknown verdict with low confidence, which
// the engine treats as grounds for escalation.
type Rule func(a, b models.Component) models.Verdict

// DefaultRules returns the built-in rule table. New pairs can be added via
// Engine.Register without touching the dispatcher.
func DefaultRules() map[CheckType]Rule {
	return map[CheckType]Rule{
		{models.CategoryCPU, models.CategoryMotherboard}:  checkCPUMotherboard,
		{models.CategoryMotherboard, models.CategoryRAM}:  checkMotherboardRAM,
		{models.CategoryMotherboard, models.CategoryCase}: checkMotherboardCase,
		{models.CategoryGPU, models.CategoryCase}:         checkGPUCase,
		{models.CategoryGPU, models.CategoryPSU}:          checkGPUPSU,
		{models.CategoryPSU, models.CategoryMotherboard}:  checkPSUMotherboard,
	}
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// normalizeSocket lowercases and strips everything outside [a-z0-9] so
// "LGA 1700" and "lga1700" compare equal.
func normalizeSocket(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(s), "")
}

func checkCPUMotherboard(cpu, mobo models.Component) models.Verdict {
	cpuSocket, _ := cpu.SpecString("socket")
	moboSocket, _ := mobo.SpecString("socket")

	a, b := normalizeSocket(cpuSocket), normalizeSocket(moboSocket)
	if a == "" || b == "" {
		return models.Verdict{
			Compatible: models.Unknown,
			Reason:     "undetermined: socket information missing",
			Confidence: 0.5,
		}
	}
	if a == b {
		return models.Verdict{
			Compatible: models.Compatible,
			Reason:     fmt.Sprintf("compatible: cpu socket (%s) matches the motherboard socket", cpuSocket),
			Confidence: 1.0,
		}
	}
	return models.Verdict{
		Compatible: models.Incompatible,
		Reason:     fmt.Sprintf("incompatible: cpu socket (%s) does not match motherboard socket (%s)", cpuSocket, moboSocket),
		Confidence: 1.0,
	}
}

var ddrToken = regexp.MustCompile(`ddr[345]`)

func checkMotherboardRAM(mobo, ram models.Component) models.Verdict {
	support, _ := mobo.SpecString("memory_support")
	memType, _ := ram.SpecString("memory_type")

	supported := ddrToken.FindAllString(strings.ToLower(support), -1)
	token := ddrToken.FindString(strings.ToLower(memType))
	if len(supported) == 0 || token == "" {
		return models.Verdict{
			Compatible: models.Unknown,
			Reason:     "undetermined: memory type information missing",
			Confidence: 0.5,
		}
	}

	for _, s := range supported {
		if s == token {
			return models.Verdict{
				Compatible: models.Compatible,
				Reason:     fmt.Sprintf("compatible: motherboard supports %s memory", strings.ToUpper(token)),
				Confidence: 1.0,
			}
		}
	}
	return models.Verdict{
		Compatible: models.Incompatible,
		Reason: fmt.Sprintf("incompatible: motherboard supports %s, memory is %s",
			strings.ToUpper(strings.Join(supported, ", ")), strings.ToUpper(token)),
		Confidence: 0.9,
	}
}

func checkMotherboardCase(mobo, pcCase models.Component) models.Verdict {
	formFactor, _ := mobo.SpecString("form_factor")
	caseSupport, _ := pcCase.SpecString("supported_form_factors")

	ff := strings.ToLower(formFactor)
	support := strings.ToLower(caseSupport)
	if ff == "" || support == "" {
		return models.Verdict{
			Compatible: models.Unknown,
			Reason:     "undetermined: motherboard form factor or case support information missing",
			Confidence: 0.5,
		}
	}
	if strings.Contains(support, ff) {
		return models.Verdict{
			Compatible: models.Compatible,
			Reason:     fmt.Sprintf("compatible: %s motherboard fits this case", strings.ToUpper(ff)),
			Confidence: 1.0,
		}
	}
	return models.Verdict{
		Compatible: models.Incompatible,
		Reason:     fmt.Sprintf("incompatible: case does not support %s motherboards", strings.ToUpper(ff)),
		Confidence: 0.9,
	}
}

func checkGPUCase(gpu, pcCase models.Component) models.Verdict {
	gpuLength, okA := gpu.SpecNumber("length")
	caseMax, okB := pcCase.SpecNumber("max_gpu_length")
	if !okA || !okB {
		return models.Verdict{
			Compatible: models.Unknown,
			Reason:     "undetermined: length information incomplete",
			Confidence: 0.5,
		}
	}
	if gpuLength <= caseMax {
		return models.Verdict{
			Compatible: models.Compatible,
			Reason:     fmt.Sprintf("compatible: gpu length (%gmm) fits within the case limit (%gmm)", gpuLength, caseMax),
			Confidence: 1.0,
		}
	}
	return models.Verdict{
		Compatible: models.Incompatible,
		Reason:     fmt.Sprintf("incompatible: gpu too long (%gmm > %gmm)", gpuLength, caseMax),
		Confidence: 0.9,
	}
}

func checkGPUPSU(gpu, psu models.Component) models.Verdict {
	requiredPower, okA := gpu.SpecNumber("recommended_psu")
	psuPower, okB := psu.SpecNumber("output_power")
	psuConnectors, okC := psu.SpecNumber("pcie_connectors")
	gpuConnectors, okD := gpu.SpecNumber("power_connectors")

	// All four fields must be present and non-zero to decide locally.
	if !okA || !okB || !okC || !okD ||
		requiredPower == 0 || psuPower == 0 || psuConnectors == 0 || gpuConnectors == 0 {
		return models.Verdict{
			Compatible: models.Unknown,
			Reason:     "undetermined: power supply specification incomplete",
			Confidence: 0.6,
		}
	}

	var violations []string
	if psuPower < requiredPower {
		violations = append(violations, fmt.Sprintf("insufficient psu wattage (%gW < %gW required)", psuPower, requiredPower))
	}
	if psuConnectors < gpuConnectors {
		violations = append(violations, fmt.Sprintf("insufficient pcie connectors (%g < %g required)", psuConnectors, gpuConnectors))
	}
	if len(violations) > 0 {
		return models.Verdict{
			Compatible: models.Incompatible,
			Reason:     strings.Join(violations, "; "),
			Confidence: 0.9,
		}
	}
	return models.Verdict{
		Compatible: models.Compatible,
		Reason:     "power supply meets the gpu requirements",
		Confidence: 0.9,
	}
}

func checkPSUMotherboard(psu, mobo models.Component) models.Verdict {
	psuConnector, _ := psu.SpecString("motherboard_connector")
	required, _ := mobo.SpecString("power_connector")

	if psuConnector == "" || required == "" {
		return models.Verdict{
			Compatible: models.Unknown,
			Reason:     "undetermined: power connector information missing",
			Confidence: 0.5,
		}
	}
	if strings.EqualFold(psuConnector, required) {
		return models.Verdict{
			Compatible: models.Compatible,
			Reason:     fmt.Sprintf("compatible: motherboard %s power connector matches", required),
			Confidence: 1.0,
		}
	}
	return models.Verdict{
		Compatible: models.Incompatible,
		Reason:     fmt.Sprintf("incompatible: power connector mismatch (%s vs %s)", psuConnector, required),
		Confidence: 0.9,
	}
}
