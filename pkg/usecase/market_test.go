package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

func TestMarketAnalysis(t *testing.T) {
	ctx := context.Background()

	t.Run("wraps a knowledge-grounded turn in the analysis envelope", func(t *testing.T) {
		reply := "Kilimani remains a strong rental market with two-bedroom units around KSH 60,000."
		uc, repo := newUseCases(t, kilimaniRoot(t), respondWith(reply))

		analysis := uc.MarketAnalysis(ctx, "Kilimani")

		gt.Value(t, analysis.Location).Equal("Kilimani")
		gt.Value(t, analysis.Analysis).Equal(reply)
		gt.Array(t, analysis.Sources).Length(1).Required()
		gt.Value(t, analysis.Sources[0]).Equal("kilimani.txt")
		gt.Bool(t, analysis.Confidence > 0).True()
		gt.Bool(t, analysis.Timestamp.IsZero()).False()

		// The analysis runs as its own one-off conversation.
		ids, err := repo.ListSessionIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Length(1).Required()

		session, err := repo.GetSession(ctx, ids[0])
		gt.NoError(t, err).Required()
		gt.String(t, session.Messages[0].Content).
			Contains("Provide comprehensive market analysis for Kilimani")
		gt.String(t, session.Messages[0].Content).Contains("rental yields")
	})

	t.Run("generation failure degrades inside the envelope", func(t *testing.T) {
		uc, _ := newUseCases(t, kilimaniRoot(t), failWith("401 Unauthorized: API key not valid"))

		analysis := uc.MarketAnalysis(ctx, "Kilimani")

		gt.String(t, analysis.Analysis).Contains("authentication")
		gt.Value(t, analysis.Confidence).Equal(0.0)
		gt.Array(t, analysis.Sources).Length(0)
	})
}

func TestPriceEstimate(t *testing.T) {
	ctx := context.Background()

	t.Run("renders the full question and echoes the profile", func(t *testing.T) {
		three := 3
		size := 1450.0
		reply := "Expect KSH 14-18 million depending on finish and floor."
		uc, repo := newUseCases(t, kilimaniRoot(t), respondWith(reply))

		est := uc.PriceEstimate(ctx, &model.PriceEstimateQuery{
			PropertyType: "apartment",
			Location:     "Kilimani",
			Bedrooms:     &three,
			SizeSqft:     &size,
		})

		gt.Value(t, est.PropertyType).Equal("apartment")
		gt.Value(t, est.Location).Equal("Kilimani")
		gt.Value(t, *est.Bedrooms).Equal(3)
		gt.Value(t, *est.SizeSqft).Equal(1450.0)
		gt.Value(t, est.PriceAnalysis).Equal(reply)

		ids, err := repo.ListSessionIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Length(1).Required()

		session, err := repo.GetSession(ctx, ids[0])
		gt.NoError(t, err).Required()
		gt.Value(t, session.Messages[0].Content).
			Equal("What is the current market price for apartment in Kilimani " +
				"with 3 bedrooms approximately 1450 square feet? " +
				"Please provide price ranges and market factors affecting the price.")
	})

	t.Run("optional fields drop out of the question", func(t *testing.T) {
		uc, repo := newUseCases(t, kilimaniRoot(t), respondWith("Karen houses trade above KSH 20 million."))

		est := uc.PriceEstimate(ctx, &model.PriceEstimateQuery{
			PropertyType: "house",
			Location:     "Karen",
		})

		gt.Bool(t, est.Bedrooms == nil).True()
		gt.Bool(t, est.SizeSqft == nil).True()

		ids, err := repo.ListSessionIDs(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, ids).Length(1).Required()

		session, err := repo.GetSession(ctx, ids[0])
		gt.NoError(t, err).Required()
		gt.Value(t, session.Messages[0].Content).
			Equal("What is the current market price for house in Karen? " +
				"Please provide price ranges and market factors affecting the price.")
	})
}
