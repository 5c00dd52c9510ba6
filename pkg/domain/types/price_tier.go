package types

import "fmt"

// PriceTier represents a budget band inferred from a query. The empty value
// means no tier was expressed.
type PriceTier string

const (
	PriceTierAffordable PriceTier = "affordable"
	PriceTierMidRange   PriceTier = "mid-range"
	PriceTierLuxury     PriceTier = "luxury"
	PriceTierPremium    PriceTier = "premium"
)

// AllPriceTiers returns all valid price tiers
func AllPriceTiers() []PriceTier {
	return []PriceTier{
		PriceTierAffordable,
		PriceTierMidRange,
		PriceTierLuxury,
		PriceTierPremium,
	}
}

// IsValid checks if the price tier is valid. The empty tier is not valid;
// callers represent "no tier" by checking IsSet first.
func (p PriceTier) IsValid() bool {
	switch p {
	case PriceTierAffordable, PriceTierMidRange, PriceTierLuxury, PriceTierPremium:
		return true
	default:
		return false
	}
}

// IsSet reports whether a tier was expressed at all.
func (p PriceTier) IsSet() bool {
	return p != ""
}

// String returns the string representation of the price tier
func (p PriceTier) String() string {
	return string(p)
}

// ParsePriceTier parses a string into a PriceTier. An empty input yields the
// unset tier without error.
func ParsePriceTier(s string) (PriceTier, error) {
	if s == "" {
		return "", nil
	}
	tier := PriceTier(s)
	if !tier.IsValid() {
		return "", fmt.Errorf("invalid price tier: %s", s)
	}
	return tier, nil
}
