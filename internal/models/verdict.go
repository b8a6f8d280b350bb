package models

import "fmt"

// TriState is a three-valued compatibility outcome. Unknown is a first-class
// result, distinct from Incompatible: it means the decision could not be made
// from the available spec data.
type TriState int

const (
	Unknown TriState = iota
	Incompatible
	Compatible
)

// TriFromBool maps a definite boolean outcome onto the tri-state.
func TriFromBool(b bool) TriState {
	if b {
		return Compatible
	}
	return Incompatible
}

func (t TriState) String() string {
	switch t {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes Compatible/Incompatible/Unknown as true/false/null,
// matching the adjudicator wire contract.
func (t TriState) MarshalJSON() ([]byte, error) {
	switch t {
	case Compatible:
		return []byte("true"), nil
	case Incompatible:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes true/false/null into the tri-state.
func (t *TriState) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*t = Compatible
	case "false":
		*t = Incompatible
	case "null":
		*t = Unknown
	default:
		return fmt.Errorf("invalid tri-state value: %s", data)
	}
	return nil
}

// Verdict is the result of one ordered compatibility check.
type Verdict struct {
	Compatible TriState `json:"compatible"`
	Reason     string   `json:"reason"`
	Confidence float64  `json:"confidence"`
}
