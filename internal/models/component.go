// Package models defines the hardware data model shared by the filter,
// compatibility, and power components.
package models

// Category identifies a hardware component class. The set is open: records
// with categories outside the named constants are valid and flow through
// filtering and compatibility dispatch unchanged.
type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategorySSD         Category = "ssd"
	CategoryHDD         Category = "hdd"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryCooling     Category = "cooling"
)

// Component is a read-only snapshot of a hardware part. Price is nil when
// unknown; Specs keys are category-specific and unvalidated.
type Component struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Brand    string   `json:"brand,omitempty"`
	Model    string   `json:"model,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Specs    SpecMap  `json:"specs,omitempty"`
}

// Spec resolves a dotted path into the component's specs.
func (c Component) Spec(path string) (SpecValue, bool) {
	if c.Specs == nil {
		return nil, false
	}
	return c.Specs.Lookup(path)
}

// SpecString returns the string form of a spec value, reporting false when
// the key is missing or the value renders empty.
func (c Component) SpecString(path string) (string, bool) {
	v, ok := c.Spec(path)
	if !ok {
		return "", false
	}
	s := StringForm(v)
	return s, s != ""
}

// SpecNumber extracts the first number embedded in a spec value, reporting
// false when the key is missing or no number can be found.
func (c Component) SpecNumber(path string) (float64, bool) {
	v, ok := c.Spec(path)
	if !ok {
		return 0, false
	}
	return LeadingNumber(v)
}
