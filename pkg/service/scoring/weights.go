package scoring

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
)

// Weights distributes the contribution of each scoring component. All six
// values must be non-negative and sum to 1.0.
type Weights struct {
	Semantic    float64
	Location    float64
	Type        float64
	Preferences float64
	Price       float64
	Amenities   float64
}

// DefaultWeights returns the tuned default distribution. The values are
// empirical; deployments can override them through configuration.
func DefaultWeights() Weights {
	return Weights{
		Semantic:    0.30,
		Location:    0.25,
		Type:        0.15,
		Preferences: 0.15,
		Price:       0.10,
		Amenities:   0.05,
	}
}

// Validate checks that every weight is non-negative and the total is 1.0
// within floating point tolerance.
func (w Weights) Validate() error {
	components := []struct {
		name  string
		value float64
	}{
		{"semantic", w.Semantic},
		{"location", w.Location},
		{"type", w.Type},
		{"preferences", w.Preferences},
		{"price", w.Price},
		{"amenities", w.Amenities},
	}

	total := 0.0
	for _, c := range components {
		if c.value < 0 {
			return goerr.New("scoring weight must not be negative",
				goerr.V("component", c.name), goerr.V("value", c.value))
		}
		total += c.value
	}

	if math.Abs(total-1.0) > 1e-6 {
		return goerr.New("scoring weights must sum to 1.0", goerr.V("total", total))
	}
	return nil
}
