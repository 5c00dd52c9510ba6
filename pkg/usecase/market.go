package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

// MarketAnalysis answers a fixed comprehensive market question about a
// location. Each analysis runs as its own one-off conversation.
func (uc *UseCases) MarketAnalysis(ctx context.Context, location string) *model.MarketAnalysis {
	query := fmt.Sprintf("Provide comprehensive market analysis for %s including property prices, trends, investment potential, infrastructure development, and rental yields", location)

	resp := uc.ProcessQuery(ctx, query, "")

	return &model.MarketAnalysis{
		Location:   location,
		Analysis:   resp.Response,
		Sources:    resp.Sources,
		Confidence: resp.Confidence,
		Timestamp:  resp.Timestamp,
	}
}

// PriceEstimate answers a templated market-price question for a property
// profile. The analysis text comes from the knowledge-grounded turn, not
// from the listing catalog.
func (uc *UseCases) PriceEstimate(ctx context.Context, q *model.PriceEstimateQuery) *model.PriceEstimate {
	parts := []string{
		fmt.Sprintf("What is the current market price for %s in %s", q.PropertyType, q.Location),
	}
	if q.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("with %d bedrooms", *q.Bedrooms))
	}
	if q.SizeSqft != nil {
		parts = append(parts, fmt.Sprintf("approximately %g square feet", *q.SizeSqft))
	}
	query := strings.Join(parts, " ") + "? Please provide price ranges and market factors affecting the price."

	resp := uc.ProcessQuery(ctx, query, "")

	return &model.PriceEstimate{
		PropertyType:  q.PropertyType,
		Location:      q.Location,
		Bedrooms:      q.Bedrooms,
		SizeSqft:      q.SizeSqft,
		PriceAnalysis: resp.Response,
		Confidence:    resp.Confidence,
		Sources:       resp.Sources,
	}
}
