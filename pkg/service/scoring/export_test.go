package scoring

import (
	"strings"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/service/textsim"
)

var (
	SemanticScore   = semanticScore
	LocationScore   = locationScore
	TypeScore       = typeScore
	PreferenceScore = preferenceScore
	PriceScore      = priceScore
	AmenityScore    = amenityScore
	MeanPrice       = meanPrice
)

// ScoreOne exposes single-listing scoring with an explicit candidate mean.
func (s *Scorer) ScoreOne(listing *model.PropertyListing, query string, req *model.RequirementRecord, mean float64) (float64, model.ScoreBreakdown) {
	if req == nil {
		req = &model.RequirementRecord{}
	}
	qc := queryContext{
		queryLower: strings.ToLower(strings.TrimSpace(query)),
		queryWords: textsim.WordSet(query),
		req:        req,
		meanPrice:  mean,
	}
	return s.scoreListing(listing, &qc)
}
