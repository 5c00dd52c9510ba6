package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/usecase"
	"github.com/makazi-lab/makazi/pkg/utils/async"
	"github.com/makazi-lab/makazi/pkg/utils/errutil"
)

// UseCase is the orchestrator surface the HTTP layer depends on.
type UseCase interface {
	RespondAndRecommend(ctx context.Context, query string, conversationID model.ConversationID) *model.ChatResponse
	PropertySearch(ctx context.Context, q *model.PropertySearchQuery) *model.ChatResponse
	MarketAnalysis(ctx context.Context, location string) *model.MarketAnalysis
	PriceEstimate(ctx context.Context, q *model.PriceEstimateQuery) *model.PriceEstimate
	History(ctx context.Context, id model.ConversationID) (*model.ConversationSession, error)
	ClearConversation(ctx context.Context, id model.ConversationID) error
	KnowledgeStatus(ctx context.Context) model.KnowledgeStatus
	ReloadKnowledge(ctx context.Context) error
	CatalogStatus() model.CatalogStatus
}

var _ UseCase = (*usecase.UseCases)(nil)

// maxQueryLength bounds one user query in characters. Longer input is cut,
// not rejected.
const maxQueryLength = 1000

var unsafeChars = regexp.MustCompile(`[<>"';]`)

// sanitizeQuery strips markup-prone characters and bounds the query length.
func sanitizeQuery(s string) string {
	s = unsafeChars.ReplaceAllString(s, "")
	if runes := []rune(s); len(runes) > maxQueryLength {
		s = string(runes[:maxQueryLength]) + "..."
	}
	return strings.TrimSpace(s)
}

func respondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(data) //nolint:errcheck // header already committed
}

// rootHandler serves the API banner.
func rootHandler() http.HandlerFunc {
	banner := map[string]any{
		"message": "Welcome to the Kenyan Real Estate AI Agent",
		"health":  "/health",
		"endpoints": map[string]string{
			"chat":             "/chat",
			"property_search":  "/property/search",
			"market_analysis":  "/market/analysis/{location}",
			"price_estimate":   "/properties/price-estimate",
			"knowledge_status": "/knowledge/status",
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, banner)
	}
}

// healthHandler reports service health. An unloaded corpus marks the
// service degraded, not down.
func healthHandler(uc UseCase) http.HandlerFunc {
	type response struct {
		Status           string           `json:"status"`
		KnowledgeStatus  types.StoreState `json:"knowledge_base_status"`
		CatalogAvailable bool             `json:"catalog_available"`
		Timestamp        time.Time        `json:"timestamp"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		kb := uc.KnowledgeStatus(r.Context())

		status := "healthy"
		if kb.State != types.StoreLoaded {
			status = "degraded"
		}

		respondJSON(r.Context(), w, http.StatusOK, response{
			Status:           status,
			KnowledgeStatus:  kb.State,
			CatalogAvailable: uc.CatalogStatus().Available,
			Timestamp:        time.Now(),
		})
	}
}

// chatHandler runs one conversational turn with property recommendations.
func chatHandler(uc UseCase) http.HandlerFunc {
	type request struct {
		Query          string `json:"query"`
		ConversationID string `json:"conversation_id,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid chat request body"), http.StatusBadRequest)
			return
		}

		query := sanitizeQuery(req.Query)
		if query == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("query is required"), http.StatusBadRequest)
			return
		}

		resp := uc.RespondAndRecommend(r.Context(), query, model.ConversationID(req.ConversationID))
		respondJSON(r.Context(), w, http.StatusOK, resp)
	}
}

// propertySearchHandler runs a structured listing search.
func propertySearchHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query model.PropertySearchQuery
		if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid search request body"), http.StatusBadRequest)
			return
		}

		resp := uc.PropertySearch(r.Context(), &query)
		respondJSON(r.Context(), w, http.StatusOK, resp)
	}
}

func marketAnalysisHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		location := sanitizeQuery(chi.URLParam(r, "location"))
		if location == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("location is required"), http.StatusBadRequest)
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, uc.MarketAnalysis(r.Context(), location))
	}
}

func priceEstimateHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()

		query := &model.PriceEstimateQuery{
			PropertyType: sanitizeQuery(params.Get("property_type")),
			Location:     sanitizeQuery(params.Get("location")),
		}
		if query.PropertyType == "" || query.Location == "" {
			errutil.HandleHTTP(r.Context(), w, goerr.New("property_type and location are required"), http.StatusBadRequest)
			return
		}

		if v := params.Get("bedrooms"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid bedrooms parameter"), http.StatusBadRequest)
				return
			}
			query.Bedrooms = &n
		}
		if v := params.Get("size_sqft"); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid size_sqft parameter"), http.StatusBadRequest)
				return
			}
			query.SizeSqft = &f
		}

		respondJSON(r.Context(), w, http.StatusOK, uc.PriceEstimate(r.Context(), query))
	}
}

func knowledgeStatusHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(r.Context(), w, http.StatusOK, uc.KnowledgeStatus(r.Context()))
	}
}

// knowledgeReloadHandler kicks off a corpus reload in the background.
// Searches keep serving the previous snapshot until the reload publishes.
func knowledgeReloadHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		async.Dispatch(r.Context(), func(ctx context.Context) error {
			return uc.ReloadKnowledge(ctx)
		})

		respondJSON(r.Context(), w, http.StatusAccepted, map[string]string{
			"message": "Knowledge base reload initiated",
		})
	}
}

func conversationHistoryHandler(uc UseCase) http.HandlerFunc {
	type response struct {
		ConversationID string          `json:"conversation_id"`
		History        []model.Message `json:"history"`
		MessageCount   int             `json:"message_count"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id := model.ConversationID(chi.URLParam(r, "conversationID"))

		session, err := uc.History(r.Context(), id)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, err, notFoundOr500(err))
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, response{
			ConversationID: id.String(),
			History:        session.Messages,
			MessageCount:   len(session.Messages),
		})
	}
}

func clearConversationHandler(uc UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.ConversationID(chi.URLParam(r, "conversationID"))

		if err := uc.ClearConversation(r.Context(), id); err != nil {
			errutil.HandleHTTP(r.Context(), w, err, notFoundOr500(err))
			return
		}

		respondJSON(r.Context(), w, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("Conversation %s cleared successfully", id),
		})
	}
}

func notFoundOr500(err error) int {
	if errors.Is(err, usecase.ErrConversationNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
