// Package scoring ranks filtered property listings against a query and its
// extracted requirements using a weighted blend of semantic, location,
// type, preference, price and amenity components.
package scoring

import (
	"sort"
	"strings"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/service/textsim"
)

const (
	// DefaultCutoff drops listings whose final score signals no real match.
	DefaultCutoff = 0.15

	// semanticPrefixLen bounds the listing text used for character-sequence
	// comparison; long descriptions add runtime without adding signal.
	semanticPrefixLen = 300
)

// preferenceSynonyms maps a preference tag to listing-text cues that
// satisfy it beyond a literal substring match.
var preferenceSynonyms = map[string][]string{
	"family-friendly": {"family", "kids", "children", "school", "playground"},
	"quiet":           {"quiet", "peaceful", "serene", "tranquil"},
	"modern":          {"modern", "new", "contemporary", "renovated"},
	"secure":          {"secure", "security", "gated", "cctv"},
	"spacious":        {"spacious", "large", "ample", "big"},
	"furnished":       {"furnished", "furniture"},
	"parking":         {"parking", "garage", "carport"},
	"garden":          {"garden", "yard", "lawn", "outdoor"},
}

// Scorer computes match scores for listings that already passed the hard
// filter. It is stateless and safe for concurrent use.
type Scorer struct {
	weights Weights
	cutoff  float64
}

// Option is a functional option for Scorer configuration.
type Option func(*Scorer)

// WithWeights overrides the default component weights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// WithCutoff overrides the minimum score a listing must reach to be ranked.
func WithCutoff(cutoff float64) Option {
	return func(s *Scorer) {
		s.cutoff = cutoff
	}
}

// New creates a scorer with the default weights and cutoff.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		weights: DefaultWeights(),
		cutoff:  DefaultCutoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// queryContext carries the per-query values shared across all listings in
// one Rank call.
type queryContext struct {
	queryLower string
	queryWords map[string]struct{}
	req        *model.RequirementRecord
	meanPrice  float64
}

// Rank scores every listing, drops those below the cutoff, sorts survivors
// by descending score with catalog order breaking ties, and truncates to
// limit when limit is positive. Market context snippets are accepted but
// not yet folded into any component.
func (s *Scorer) Rank(listings []model.PropertyListing, query string, req *model.RequirementRecord, marketContext []model.SearchResult, limit int) []model.ScoredListing {
	if len(listings) == 0 {
		return nil
	}
	if req == nil {
		req = &model.RequirementRecord{}
	}

	qc := queryContext{
		queryLower: strings.ToLower(strings.TrimSpace(query)),
		queryWords: textsim.WordSet(query),
		req:        req,
		meanPrice:  meanPrice(listings),
	}

	scored := make([]model.ScoredListing, 0, len(listings))
	for i := range listings {
		score, breakdown := s.scoreListing(&listings[i], &qc)
		if score < s.cutoff {
			continue
		}
		scored = append(scored, model.ScoredListing{
			Listing:    listings[i],
			MatchScore: score,
			Breakdown:  breakdown,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].MatchScore > scored[j].MatchScore
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func (s *Scorer) scoreListing(listing *model.PropertyListing, qc *queryContext) (float64, model.ScoreBreakdown) {
	text := listing.SearchText()

	b := model.ScoreBreakdown{
		Semantic:    semanticScore(qc.queryLower, qc.queryWords, text),
		Location:    locationScore(qc.req.Location, &listing.Location),
		Type:        typeScore(qc.req.PropertyType, listing.PropertyType),
		Preferences: preferenceScore(qc.req.Preferences, text),
		Price:       priceScore(qc.req.PriceTier, listing.Price, qc.meanPrice),
		Amenities:   amenityScore(qc.req.Amenities, listing.Amenities),
	}

	total := s.weights.Semantic*b.Semantic +
		s.weights.Location*b.Location +
		s.weights.Type*b.Type +
		s.weights.Preferences*b.Preferences +
		s.weights.Price*b.Price +
		s.weights.Amenities*b.Amenities

	return model.ClampScore(total), b
}

// semanticScore blends word-set overlap (0.6) with character-sequence
// similarity against a bounded prefix of the listing text (0.4).
func semanticScore(queryLower string, queryWords map[string]struct{}, listingText string) float64 {
	jaccard := textsim.Jaccard(queryWords, textsim.WordSet(listingText))

	prefix := listingText
	if len(prefix) > semanticPrefixLen {
		prefix = prefix[:semanticPrefixLen]
	}
	sequence := textsim.SequenceRatio(queryLower, prefix)

	return 0.6*jaccard + 0.4*sequence
}

// locationScore grades how well the listing sits where the user asked:
// exact suburb 1.0, partial suburb overlap 0.8, city-level match 0.5, and
// a penalty when a requested location matches nothing. No requirement is
// neutral.
func locationScore(required *string, loc *model.ListingLocation) float64 {
	if required == nil {
		return 0.5
	}
	want := strings.ToLower(strings.TrimSpace(*required))
	if want == "" {
		return 0.5
	}

	suburb := strings.ToLower(loc.Suburb)
	if suburb != "" {
		if suburb == want {
			return 1.0
		}
		if strings.Contains(suburb, want) || strings.Contains(want, suburb) {
			return 0.8
		}
	}

	city := strings.ToLower(loc.City)
	if city != "" && (strings.Contains(city, want) || strings.Contains(want, city)) {
		return 0.5
	}

	return -0.2
}

// typeScore awards a substring match in either direction and penalizes an
// explicit mismatch. No requested type is neutral.
func typeScore(required *string, propertyType string) float64 {
	if required == nil {
		return 0.5
	}
	want := strings.ToLower(strings.TrimSpace(*required))
	if want == "" {
		return 0.5
	}

	have := strings.ToLower(propertyType)
	if have != "" && (strings.Contains(have, want) || strings.Contains(want, have)) {
		return 1.0
	}
	return -0.3
}

// preferenceScore is the fraction of requested preference tags the listing
// text satisfies, via literal substring or synonym cues.
func preferenceScore(preferences []string, listingText string) float64 {
	if len(preferences) == 0 {
		return 0.5
	}

	matched := 0
	for _, tag := range preferences {
		if matchesPreference(strings.ToLower(strings.TrimSpace(tag)), listingText) {
			matched++
		}
	}
	return float64(matched) / float64(len(preferences))
}

func matchesPreference(tag, listingText string) bool {
	if tag == "" {
		return false
	}
	if strings.Contains(listingText, tag) {
		return true
	}
	for _, cue := range preferenceSynonyms[tag] {
		if strings.Contains(listingText, cue) {
			return true
		}
	}
	return false
}

// priceScore grades price fit against the mean of the candidate set, only
// when the query signalled a budget band. Affordable favours prices under
// the mean; luxury and premium favour prices well over it.
func priceScore(tier types.PriceTier, price, mean float64) float64 {
	if !tier.IsSet() || mean <= 0 {
		return 0.5
	}

	switch tier {
	case types.PriceTierAffordable:
		switch {
		case price <= 0.8*mean:
			return 1.0
		case price <= mean:
			return 0.6
		default:
			return 0.2
		}
	case types.PriceTierLuxury, types.PriceTierPremium:
		switch {
		case price >= 1.5*mean:
			return 1.0
		case price >= 1.2*mean:
			return 0.7
		default:
			return 0.3
		}
	default:
		return 0.5
	}
}

// amenityScore is the fraction of explicitly mentioned amenities present
// in the listing's amenity list, by substring in either direction.
func amenityScore(mentioned []string, amenities []string) float64 {
	if len(mentioned) == 0 {
		return 0.5
	}

	found := 0
	for _, want := range mentioned {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" {
			continue
		}
		for _, have := range amenities {
			h := strings.ToLower(have)
			if h == "" {
				continue
			}
			if strings.Contains(h, w) || strings.Contains(w, h) {
				found++
				break
			}
		}
	}
	return float64(found) / float64(len(mentioned))
}

func meanPrice(listings []model.PropertyListing) float64 {
	if len(listings) == 0 {
		return 0
	}
	total := 0.0
	for i := range listings {
		total += listings[i].Price
	}
	return total / float64(len(listings))
}
