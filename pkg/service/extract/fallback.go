package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
)

var (
	bedroomPattern  = regexp.MustCompile(`(\d+)\s*(?:bed|br)`)
	bathroomPattern = regexp.MustCompile(`(\d+)\s*bath`)

	// pricePatterns are tried in order; the first pattern with any match
	// wins. A bare number counts as a price only with a currency prefix, a
	// unit suffix, or a budget/price cue before it.
	pricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:kshs?|kes)\.?\s*(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|m\b|k\b)?`),
		regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|m\b|k\b)`),
		regexp.MustCompile(`\b(?:budget|price)\D{0,20}?(\d+(?:,\d{3})*(?:\.\d+)?)\s*(million|m\b|k\b)?`),
	}
)

// propertyTypeKeywords maps canonical catalog types to the words users
// actually write. Order matters: the first canonical type with a hit wins.
var propertyTypeKeywords = []struct {
	Type     string
	Keywords []string
}{
	{"apartment", []string{"apartment", "flat", "condo", "unit"}},
	{"bedsitter", []string{"bedsitter", "bedsitting"}},
	{"studio", []string{"studio"}},
	{"house", []string{"house", "home", "villa", "mansion", "bungalow"}},
	{"maisonette", []string{"maisonette", "townhouse"}},
	{"commercial", []string{"office", "shop", "retail", "commercial", "warehouse"}},
	{"land", []string{"land", "plot", "acre", "parcel"}},
}

// kenyanLocations is the static location vocabulary used when the catalog
// offers no known suburbs. Nairobi areas first, then major towns and
// counties.
var kenyanLocations = []string{
	"karen", "runda", "muthaiga", "westlands", "kilimani", "kileleshwa",
	"lavington", "parklands", "kasarani", "githurai", "syokimau", "kitengela",
	"ongata rongai", "pipeline", "embakasi", "south b", "south c", "langata",

	"nairobi", "mombasa", "kisumu", "nakuru", "eldoret", "thika", "ruiru",
	"machakos", "kitui", "garissa", "isiolo", "nyeri", "meru",

	"kiambu", "kajiado", "muranga", "kirinyaga", "laikipia",
}

// amenityVocabulary lists amenities commonly present in catalog records.
var amenityVocabulary = []string{
	"gym", "pool", "parking", "garden", "balcony", "security",
	"borehole", "lift", "wifi", "backup generator",
}

// Fallback extracts requirements with keyword and regex matching only. It
// never fails; a signal that is absent from the query leaves its field
// unset.
func Fallback(query string, knownLocations, knownTypes []string) *model.RequirementRecord {
	rec := &model.RequirementRecord{}
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return rec
	}

	if loc := matchLocation(q, knownLocations); loc != "" {
		rec.Location = &loc
	}
	if pt := matchPropertyType(q, knownTypes); pt != "" {
		rec.PropertyType = &pt
	}

	if m := bedroomPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			rec.Bedrooms = &n
		}
	}
	if m := bathroomPattern.FindStringSubmatch(q); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			rec.Bathrooms = &n
		}
	}

	matchPrices(q, rec)

	switch {
	case containsAny(q, "affordable", "budget", "cheap"):
		rec.PriceTier = types.PriceTierAffordable
	case containsAny(q, "luxury", "premium", "high-end"):
		rec.PriceTier = types.PriceTierLuxury
	}

	switch {
	case containsAny(q, "rent", "rental", "lease"):
		rec.Transaction = types.TransactionRent
	case containsAny(q, "buy", "purchase", "sale"):
		rec.Transaction = types.TransactionBuy
	case containsAny(q, "invest", "investment", "roi"):
		rec.Transaction = types.TransactionInvest
	}

	// "unfurnished" contains "furnished", so it must be checked first.
	if strings.Contains(q, "unfurnished") {
		f := false
		rec.Furnished = &f
	} else if strings.Contains(q, "furnished") {
		f := true
		rec.Furnished = &f
	}

	if containsAny(q, "family", "kids") {
		rec.Preferences = append(rec.Preferences, "family-friendly")
	}
	if containsAny(q, "quiet", "peaceful") {
		rec.Preferences = append(rec.Preferences, "quiet")
	}
	if containsAny(q, "modern", "new") {
		rec.Preferences = append(rec.Preferences, "modern")
	}

	for _, amenity := range amenityVocabulary {
		if strings.Contains(q, amenity) {
			rec.Amenities = append(rec.Amenities, amenity)
		}
	}

	return rec
}

// matchLocation prefers suburbs known to the catalog over the static
// vocabulary. The returned value is lowercase.
func matchLocation(q string, knownLocations []string) string {
	for _, loc := range knownLocations {
		loc = strings.ToLower(strings.TrimSpace(loc))
		if loc != "" && strings.Contains(q, loc) {
			return loc
		}
	}
	for _, loc := range kenyanLocations {
		if strings.Contains(q, loc) {
			return loc
		}
	}
	return ""
}

func matchPropertyType(q string, knownTypes []string) string {
	for _, pt := range knownTypes {
		pt = strings.ToLower(strings.TrimSpace(pt))
		if pt != "" && strings.Contains(q, pt) {
			return pt
		}
	}
	for _, entry := range propertyTypeKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(q, kw) {
				return entry.Type
			}
		}
	}
	return ""
}

// matchPrices extracts price bounds. A single figure becomes the upper
// bound; two or more become the min/max of the figures. Units apply only to
// the figure they follow.
func matchPrices(q string, rec *model.RequirementRecord) {
	for _, pattern := range pricePatterns {
		matches := pattern.FindAllStringSubmatch(q, -1)
		if len(matches) == 0 {
			continue
		}

		var prices []float64
		for _, m := range matches {
			raw := strings.ReplaceAll(m[1], ",", "")
			price, err := strconv.ParseFloat(raw, 64)
			if err != nil || price <= 0 {
				continue
			}
			switch m[2] {
			case "million", "m":
				price *= 1_000_000
			case "k":
				price *= 1_000
			}
			prices = append(prices, price)
		}
		if len(prices) == 0 {
			continue
		}

		if len(prices) == 1 {
			rec.MaxPrice = &prices[0]
		} else {
			minP, maxP := prices[0], prices[0]
			for _, p := range prices[1:] {
				if p < minP {
					minP = p
				}
				if p > maxP {
					maxP = p
				}
			}
			rec.MinPrice = &minP
			rec.MaxPrice = &maxP
		}
		return
	}
}

func containsAny(q string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}
