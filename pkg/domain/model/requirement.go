package model

import (
	"github.com/makazi-lab/makazi/pkg/domain/types"
)

// RequirementRecord is the structured interpretation of a natural-language
// query. Every field is optional: a nil pointer or empty value means
// "unconstrained", never a zero/false default. Filters and scorers must not
// treat an absent field as a constraint.
type RequirementRecord struct {
	Location     *string               `json:"location,omitempty"`
	PropertyType *string               `json:"property_type,omitempty"`
	Bedrooms     *int                  `json:"bedrooms,omitempty"`
	Bathrooms    *int                  `json:"bathrooms,omitempty"`
	MinPrice     *float64              `json:"min_price,omitempty"`
	MaxPrice     *float64              `json:"max_price,omitempty"`
	Furnished    *bool                 `json:"furnished,omitempty"`
	Preferences  []string              `json:"preferences,omitempty"`
	Amenities    []string              `json:"amenities,omitempty"`
	PriceTier    types.PriceTier       `json:"price_range,omitempty"`
	Transaction  types.TransactionType `json:"transaction_type,omitempty"`
	Urgency      *string               `json:"urgency,omitempty"`
}

// IsEmpty reports whether no field carries a concrete value.
func (r *RequirementRecord) IsEmpty() bool {
	return r.Location == nil &&
		r.PropertyType == nil &&
		r.Bedrooms == nil &&
		r.Bathrooms == nil &&
		r.MinPrice == nil &&
		r.MaxPrice == nil &&
		r.Furnished == nil &&
		len(r.Preferences) == 0 &&
		len(r.Amenities) == 0 &&
		!r.PriceTier.IsSet() &&
		!r.Transaction.IsSet() &&
		r.Urgency == nil
}

// HasPropertyIntent reports whether the record constrains the catalog at
// all, i.e. whether running the filter and scorer is worthwhile.
func (r *RequirementRecord) HasPropertyIntent() bool {
	return r.Location != nil ||
		r.PropertyType != nil ||
		r.Bedrooms != nil ||
		r.MinPrice != nil ||
		r.MaxPrice != nil ||
		r.PriceTier.IsSet() ||
		r.Transaction.IsSet()
}

// ExtractionResult pairs a requirement record with the path that produced
// it, so callers can tell a structured LLM extraction from the keyword
// fallback.
type ExtractionResult struct {
	Requirements RequirementRecord
	Method       types.ExtractionMethod
}
