package model

import (
	"time"

	"github.com/makazi-lab/makazi/pkg/domain/types"
)

// MarketAnalysis is the response envelope of a location market report.
type MarketAnalysis struct {
	Location   string    `json:"location"`
	Analysis   string    `json:"analysis"`
	Sources    []string  `json:"sources"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
}

// PriceEstimateQuery carries the inputs of a price estimation request.
// Bedrooms and SizeSqft are optional refinements.
type PriceEstimateQuery struct {
	PropertyType string
	Location     string
	Bedrooms     *int
	SizeSqft     *float64
}

// PriceEstimate is the response envelope of a price estimation request. The
// analysis is conversational text, not a structured valuation.
type PriceEstimate struct {
	PropertyType  string   `json:"property_type"`
	Location      string   `json:"location"`
	Bedrooms      *int     `json:"bedrooms"`
	SizeSqft      *float64 `json:"size_sqft"`
	PriceAnalysis string   `json:"price_analysis"`
	Confidence    float64  `json:"confidence"`
	Sources       []string `json:"sources"`
}

// PropertySearchQuery is the structured form of a property search request.
// Every field is optional; the orchestrator renders the set fields into a
// natural-language query for retrieval and extraction.
type PropertySearchQuery struct {
	PropertyType string                `json:"property_type,omitempty"`
	Location     string                `json:"location,omitempty"`
	Bedrooms     *int                  `json:"bedrooms,omitempty"`
	BudgetMin    *float64              `json:"budget_min,omitempty"`
	BudgetMax    *float64              `json:"budget_max,omitempty"`
	Transaction  types.TransactionType `json:"transaction_type,omitempty"`
}
