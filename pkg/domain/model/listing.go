package model

import (
	"fmt"
	"strings"
	"time"
)

// ListingLocation is the place a property sits in, as supplied by the
// catalog. Suburb is the primary match target; City is the fallback.
type ListingLocation struct {
	Suburb       string `json:"suburb"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood,omitempty"`
}

// PropertyListing is one externally supplied catalog record. The catalog is
// read-only input: scoring never writes back into it.
type PropertyListing struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	PropertyType string          `json:"property_type"`
	ListingType  string          `json:"listing_type,omitempty"`
	Location     ListingLocation `json:"location"`
	Price        float64         `json:"price"`
	Bedrooms     int             `json:"bedrooms"`
	Bathrooms    int             `json:"bathrooms"`
	Furnished    bool            `json:"furnished"`
	Amenities    []string        `json:"amenities"`
	Images       []string        `json:"images"`
	Rating       float64         `json:"rating"`
}

// SearchText returns the lowercased text blob used for semantic matching:
// title, description, both type fields, suburb and amenities.
func (p *PropertyListing) SearchText() string {
	parts := []string{
		p.Title,
		p.Description,
		p.PropertyType,
		p.ListingType,
		p.Location.Suburb,
		strings.Join(p.Amenities, " "),
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// ScoreBreakdown records the per-component contribution behind a match
// score, before weighting.
type ScoreBreakdown struct {
	Semantic    float64 `json:"semantic"`
	Location    float64 `json:"location"`
	Type        float64 `json:"type"`
	Preferences float64 `json:"preferences"`
	Price       float64 `json:"price"`
	Amenities   float64 `json:"amenities"`
}

// ScoredListing pairs a catalog record with its transient match score.
// These are scoring artifacts: they must never be persisted back into the
// catalog.
type ScoredListing struct {
	Listing    PropertyListing `json:"listing"`
	MatchScore float64         `json:"match_score"`
	Breakdown  ScoreBreakdown  `json:"breakdown"`
}

// Recommendation is the compact listing view attached to a chat response.
type Recommendation struct {
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	Price          float64  `json:"price"`
	FormattedPrice string   `json:"formatted_price"`
	Bedrooms       int      `json:"bedrooms"`
	Bathrooms      int      `json:"bathrooms"`
	Type           string   `json:"type"`
	Furnished      bool     `json:"furnished"`
	Amenities      []string `json:"amenities"`
	Rating         float64  `json:"rating"`
	MatchScore     float64  `json:"match_score"`
	ImageURL       string   `json:"image_url,omitempty"`
}

// NewRecommendation builds the compact view of a scored listing, keeping at
// most four amenities and the first image.
func NewRecommendation(s *ScoredListing) Recommendation {
	amenities := s.Listing.Amenities
	if len(amenities) > 4 {
		amenities = amenities[:4]
	}

	var image string
	if len(s.Listing.Images) > 0 {
		image = s.Listing.Images[0]
	}

	return Recommendation{
		Title:          s.Listing.Title,
		Location:       s.Listing.Location.Suburb,
		Price:          s.Listing.Price,
		FormattedPrice: FormatKSH(s.Listing.Price),
		Bedrooms:       s.Listing.Bedrooms,
		Bathrooms:      s.Listing.Bathrooms,
		Type:           s.Listing.PropertyType,
		Furnished:      s.Listing.Furnished,
		Amenities:      amenities,
		Rating:         s.Listing.Rating,
		MatchScore:     s.MatchScore,
		ImageURL:       image,
	}
}

// CatalogStatus summarizes the cached property catalog.
type CatalogStatus struct {
	Available bool      `json:"available"`
	Listings  int       `json:"listings"`
	LoadedAt  time.Time `json:"loaded_at,omitzero"`
}

// FormatKSH renders a Kenyan Shilling amount the way listings advertise
// them: millions with one decimal, thousands with a K suffix, and plain
// integers below that.
func FormatKSH(amount float64) string {
	switch {
	case amount >= 1_000_000:
		return fmt.Sprintf("KSH %.1f million", amount/1_000_000)
	case amount >= 1_000:
		return fmt.Sprintf("KSH %.0fK", amount/1_000)
	default:
		return fmt.Sprintf("KSH %.0f", amount)
	}
}
