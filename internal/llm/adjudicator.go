package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

const adjudicatorSystemPrompt = `You are a PC hardware expert. Judge whether the two components are compatible based STRICTLY on the provided information.

Respond with a single JSON object and nothing else, in this exact format:
{"compatible": <true|false>, "reason": "one-sentence explanation", "confidence": <number between 0.0 and 1.0>}`

// TextGenerator is the slice of Model the adjudicator needs; tests substitute
// a canned implementation.
type TextGenerator interface {
	GenerateWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Adjudicator asks an LLM to decide compatibility for pairs the rule engine
// could not settle. It implements compat.Adjudicator.
type Adjudicator struct {
	model TextGenerator
}

// NewAdjudicator creates an adjudicator backed by the given model.
func NewAdjudicator(model TextGenerator) *Adjudicator {
	return &Adjudicator{model: model}
}

// adjudicatorResponse is the wire contract the LLM must satisfy.
type adjudicatorResponse struct {
	Compatible bool    `json:"compatible"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// Adjudicate sends both full component records to the LLM and parses its
// verdict. A response that cannot be parsed as JSON is returned as an error;
// the caller owns the terminal failure verdict.
func (a *Adjudicator) Adjudicate(ctx context.Context, compA, compB models.Component) (models.Verdict, error) {
	prompt, err := buildPrompt(compA, compB)
	if err != nil {
		return models.Verdict{}, err
	}

	response, err := a.model.GenerateWithSystem(ctx, adjudicatorSystemPrompt, prompt)
	if err != nil {
		return models.Verdict{}, fmt.Errorf("adjudicator request: %w", err)
	}

	parsed, err := parseResponse(response)
	if err != nil {
		return models.Verdict{}, err
	}

	return models.Verdict{
		Compatible: models.TriFromBool(parsed.Compatible),
		Reason:     parsed.Reason,
		Confidence: clamp01(parsed.Confidence),
	}, nil
}

func buildPrompt(compA, compB models.Component) (string, error) {
	var sb strings.Builder
	for i, c := range []models.Component{compA, compB} {
		specs, err := json.Marshal(c.Specs)
		if err != nil {
			return "", fmt.Errorf("marshal specs for %q: %w", c.Name, err)
		}
		fmt.Fprintf(&sb, "Component %c (%s):\n- Name: %s\n- Brand: %s\n- Model: %s\n- Key specs: %s\n\n",
			'A'+rune(i), c.Category, c.Name, c.Brand, c.Model, specs)
	}
	sb.WriteString("Are these two components compatible?")
	return sb.String(), nil
}

var jsonObject = regexp.MustCompile(`\{[\s\S]*\}`)

// parseResponse extracts the verdict JSON from the model output, tolerating
// markdown code fences and surrounding prose.
func parseResponse(response string) (adjudicatorResponse, error) {
	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed adjudicatorResponse
	if err := json.Unmarshal([]byte(cleaned), &parsed); err == nil {
		return parsed, nil
	}

	// Some models wrap the object in explanation text; retry on the outermost
	// brace pair.
	if extracted := jsonObject.FindString(cleaned); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), &parsed); err == nil {
			return parsed, nil
		}
	}

	return adjudicatorResponse{}, fmt.Errorf("parse adjudicator response: no valid JSON object (response: %.200s)", response)
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
