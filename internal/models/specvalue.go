package models

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SpecValue is a sealed interface over the value shapes that appear in a
// component's specs document: strings, numbers, booleans, lists, and nested
// maps. Specs are scraped from vendor pages and are not schema-validated, so
// consumers must probe defensively and treat missing or malformed values as
// indeterminate, never as errors.
type SpecValue interface {
	specValue() // sealed
}

// SpecString is a free-form text value, often carrying embedded units or
// lists (e.g. "650W", "DDR4, DDR5").
type SpecString string

func (SpecString) specValue() {}

// SpecNumber is a numeric value.
type SpecNumber float64

func (SpecNumber) specValue() {}

// SpecBool is a boolean value.
type SpecBool bool

func (SpecBool) specValue() {}

// SpecList is an ordered list of values.
type SpecList []SpecValue

func (SpecList) specValue() {}

// SpecMap is a nested mapping of spec keys to values.
type SpecMap map[string]SpecValue

func (SpecMap) specValue() {}

// Lookup resolves a dotted path (e.g. "benchmarks.cinebench_r23_single") by
// descending nested maps one segment at a time. Returns false if any segment
// is missing or an intermediate value is not a map.
func (m SpecMap) Lookup(path string) (SpecValue, bool) {
	var cur SpecValue = m
	for _, seg := range strings.Split(path, ".") {
		obj, ok := cur.(SpecMap)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// UnmarshalJSON decodes an arbitrary JSON object into the SpecValue union.
func (m *SpecMap) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(SpecMap, len(raw))
	for k, v := range raw {
		val, err := unmarshalSpecValue(v)
		if err != nil {
			return fmt.Errorf("spec key %q: %w", k, err)
		}
		out[k] = val
	}
	*m = out
	return nil
}

func unmarshalSpecValue(data json.RawMessage) (SpecValue, error) {
	data = json.RawMessage(strings.TrimSpace(string(data)))
	if len(data) == 0 {
		return nil, fmt.Errorf("empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, err
		}
		return SpecString(s), nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return SpecBool(b), nil

	case 'n':
		// null spec values carry no information; drop to an empty string
		// so lookups stay total.
		return SpecString(""), nil

	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		list := make(SpecList, len(raw))
		for i, elem := range raw {
			val, err := unmarshalSpecValue(elem)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			list[i] = val
		}
		return list, nil

	case '{':
		var obj SpecMap
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, err
		}
		return obj, nil

	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, err
		}
		return SpecNumber(n), nil
	}
}

// StringForm renders a value the way exact-match filters compare it.
// Numbers render without a trailing ".0" so SpecNumber(65) compares equal to
// the filter value "65".
func StringForm(v SpecValue) string {
	switch val := v.(type) {
	case SpecString:
		return string(val)
	case SpecNumber:
		return strconv.FormatFloat(float64(val), 'f', -1, 64)
	case SpecBool:
		return strconv.FormatBool(bool(val))
	case SpecList:
		parts := make([]string, len(val))
		for i, elem := range val {
			parts[i] = StringForm(elem)
		}
		return strings.Join(parts, ", ")
	case SpecMap:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	default:
		return ""
	}
}

// Float converts a value to float64 strictly: numbers convert as-is, strings
// must parse in full (after trimming whitespace). Anything else fails.
func Float(v SpecValue) (float64, bool) {
	switch val := v.(type) {
	case SpecNumber:
		return float64(val), true
	case SpecString:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

var embeddedNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)

// LeadingNumber extracts the first number embedded in a value's string form,
// tolerating units and surrounding text ("650W" → 650, "max 305 mm" → 305).
func LeadingNumber(v SpecValue) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if n, ok := v.(SpecNumber); ok {
		return float64(n), true
	}
	match := embeddedNumber.FindString(StringForm(v))
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
