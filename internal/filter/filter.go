// Package filter evaluates predicate sets against component records.
//
// A predicate key may be a plain spec key or a dotted path into nested specs
// ("benchmarks.cinebench_r23_single"). A predicate value is either an exact
// string match or a comparison ("<=", ">=", "<", ">") against a numeric
// threshold. Evaluation fails closed: records missing a key or carrying an
// unparseable value are excluded, never reported as errors.
package filter

import (
	"strconv"
	"strings"

	"github.com/rigcheck/rigcheck-go/internal/models"
)

// Predicates is a set of AND-combined filter conditions keyed by spec path.
type Predicates map[string]string

// Reserved keys are resolved against indexed top-level columns by the storage
// coarse pass, not against specs; the fine pass skips them.
const (
	KeyBrand    = "brand"
	KeyMinPrice = "min_price"
	KeyMaxPrice = "max_price"
)

func isReserved(key string) bool {
	return key == KeyBrand || key == KeyMinPrice || key == KeyMaxPrice
}

// SpecPredicates returns the subset of p the fine pass evaluates.
func (p Predicates) SpecPredicates() Predicates {
	out := make(Predicates, len(p))
	for k, v := range p {
		if !isReserved(k) {
			out[k] = v
		}
	}
	return out
}

// Apply returns the components satisfying every predicate. An empty category
// matches all categories; an empty predicate set keeps every record. The
// coarse brand/price keys are also honored here so Apply is a complete,
// storage-free implementation of the filter contract.
func Apply(components []models.Component, category models.Category, preds Predicates) []models.Component {
	out := make([]models.Component, 0, len(components))
	for _, c := range components {
		if category != "" && c.Category != category {
			continue
		}
		if Matches(c, preds) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether a single component satisfies every predicate.
func Matches(c models.Component, preds Predicates) bool {
	for key, filter := range preds {
		switch key {
		case KeyBrand:
			if c.Brand != filter {
				return false
			}
		case KeyMinPrice:
			min, err := strconv.ParseFloat(filter, 64)
			if err != nil || c.Price == nil || *c.Price < min {
				return false
			}
		case KeyMaxPrice:
			max, err := strconv.ParseFloat(filter, 64)
			if err != nil || c.Price == nil || *c.Price > max {
				return false
			}
		default:
			actual, ok := c.Spec(key)
			if !ok || !valueMatches(actual, filter) {
				return false
			}
		}
	}
	return true
}

// comparison operators, two-character tokens first so ">=" is not read as ">".
var operators = []struct {
	token string
	apply func(actual, threshold float64) bool
}{
	{">=", func(a, t float64) bool { return a >= t }},
	{"<=", func(a, t float64) bool { return a <= t }},
	{">", func(a, t float64) bool { return a > t }},
	{"<", func(a, t float64) bool { return a < t }},
}

func valueMatches(actual models.SpecValue, filter string) bool {
	for _, op := range operators {
		rest, ok := strings.CutPrefix(filter, op.token)
		if !ok {
			continue
		}
		threshold, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
		if err != nil {
			return false
		}
		a, ok := models.Float(actual)
		if !ok {
			return false
		}
		return op.apply(a, threshold)
	}
	return models.StringForm(actual) == filter
}
