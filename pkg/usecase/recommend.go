package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/service/catalog"
	"github.com/makazi-lab/makazi/pkg/utils/errutil"
)

// catalogUnavailableNote is appended to the conversational text when the
// property catalog cannot be read. The turn still succeeds as a partial
// response.
const catalogUnavailableNote = "\n\n⚠️ Property data unavailable."

// ksh renders shilling amounts with thousands separators for query text.
var ksh = message.NewPrinter(language.English)

// RespondAndRecommend runs a conversational turn and, when the query
// constrains the catalog, enriches the response with ranked property
// recommendations.
func (uc *UseCases) RespondAndRecommend(ctx context.Context, query string, conversationID model.ConversationID) *model.ChatResponse {
	resp, results := uc.respond(ctx, query, conversationID)

	listings, err := uc.catalog.Listings(ctx)
	if err != nil {
		errutil.Handle(ctx, err, "property catalog unavailable")
		resp.Response += catalogUnavailableNote
		resp.Recommendations = []model.Recommendation{}
		return resp
	}

	extraction := uc.extractor.Extract(ctx, query,
		uc.catalog.KnownLocations(ctx), uc.catalog.KnownTypes(ctx))
	req := &extraction.Requirements

	// A turn without catalog constraints stays purely conversational.
	if !req.HasPropertyIntent() {
		resp.Recommendations = []model.Recommendation{}
		return resp
	}

	candidates := catalog.Filter(listings, req)
	scored := uc.scorer.Rank(candidates, query, req, results, uc.maxRecommendations)

	recommendations := make([]model.Recommendation, 0, len(scored))
	for i := range scored {
		recommendations = append(recommendations, model.NewRecommendation(&scored[i]))
	}
	resp.Recommendations = recommendations

	return resp
}

// PropertySearch renders a structured search into natural language and runs
// the recommendation flow over it. Each search opens a fresh conversation.
func (uc *UseCases) PropertySearch(ctx context.Context, q *model.PropertySearchQuery) *model.ChatResponse {
	return uc.RespondAndRecommend(ctx, buildSearchQuery(q), "")
}

// buildSearchQuery renders the set fields of a structured search into the
// phrasing the retrieval layer indexes well.
func buildSearchQuery(q *model.PropertySearchQuery) string {
	if q == nil {
		return "property information"
	}

	var parts []string

	if q.PropertyType != "" {
		parts = append(parts, q.PropertyType+" properties")
	}
	if q.Location != "" {
		parts = append(parts, "in "+q.Location)
	}
	if q.Bedrooms != nil {
		parts = append(parts, fmt.Sprintf("with %d bedrooms", *q.Bedrooms))
	}

	if q.BudgetMin != nil || q.BudgetMax != nil {
		budget := "budget"
		switch {
		case q.BudgetMin != nil && q.BudgetMax != nil:
			budget += ksh.Sprintf(" between KSH %.0f and KSH %.0f", *q.BudgetMin, *q.BudgetMax)
		case q.BudgetMin != nil:
			budget += ksh.Sprintf(" above KSH %.0f", *q.BudgetMin)
		default:
			budget += ksh.Sprintf(" below KSH %.0f", *q.BudgetMax)
		}
		parts = append(parts, budget)
	}

	switch q.Transaction {
	case types.TransactionRent:
		parts = append(parts, "for rental")
	case types.TransactionBuy:
		parts = append(parts, "for sale")
	case types.TransactionInvest:
		parts = append(parts, "for investment")
	}

	if len(parts) == 0 {
		return "property information"
	}
	return strings.Join(parts, " ")
}
