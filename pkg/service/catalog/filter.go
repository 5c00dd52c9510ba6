package catalog

import (
	"strings"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

// Filter returns the listings consistent with every set requirement field,
// in catalog order. Unset fields impose no constraint, so an empty record
// passes the whole catalog through.
func Filter(listings []model.PropertyListing, req *model.RequirementRecord) []model.PropertyListing {
	matched := make([]model.PropertyListing, 0, len(listings))
	for i := range listings {
		if Matches(&listings[i], req) {
			matched = append(matched, listings[i])
		}
	}
	return matched
}

// Matches reports whether one listing satisfies every set field of the
// requirement record.
func Matches(listing *model.PropertyListing, req *model.RequirementRecord) bool {
	if req == nil {
		return true
	}

	if req.Location != nil {
		loc := strings.ToLower(*req.Location)
		suburb := strings.ToLower(listing.Location.Suburb)
		city := strings.ToLower(listing.Location.City)
		if !strings.Contains(suburb, loc) && !strings.Contains(city, loc) {
			return false
		}
	}

	if req.PropertyType != nil {
		want := strings.ToLower(*req.PropertyType)
		have := strings.ToLower(listing.PropertyType)
		if !strings.Contains(have, want) && !strings.Contains(want, have) {
			return false
		}
	}

	if req.Bedrooms != nil && listing.Bedrooms < *req.Bedrooms {
		return false
	}
	if req.Bathrooms != nil && listing.Bathrooms < *req.Bathrooms {
		return false
	}
	if req.MinPrice != nil && listing.Price < *req.MinPrice {
		return false
	}
	if req.MaxPrice != nil && listing.Price > *req.MaxPrice {
		return false
	}
	if req.Furnished != nil && listing.Furnished != *req.Furnished {
		return false
	}

	return true
}
