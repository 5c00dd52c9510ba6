package usecase

import (
	"context"
	_ "embed"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/utils/errutil"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

//go:embed prompt/persona.md
var personaPromptRaw string

var personaPrompt = strings.TrimSpace(personaPromptRaw)

// recentExchanges is how many past user/assistant exchanges a prompt carries.
const recentExchanges = 2

const (
	noContextMessage       = "No specific information found in knowledge base."
	emptyGenerationMessage = "I apologize, but I couldn't generate a response at this time."
)

// ProcessQuery runs one conversational turn: retrieve context, assemble the
// prompt, generate, and persist the exchange. It never fails: every internal
// error is converted into a degraded response with confidence 0.0 and an
// empty source list, so no transport or auth error crosses this boundary.
func (uc *UseCases) ProcessQuery(ctx context.Context, query string, conversationID model.ConversationID) *model.ChatResponse {
	resp, _ := uc.respond(ctx, query, conversationID)
	return resp
}

// respond implements the turn and additionally returns the raw search
// results so the recommendation flow can reuse them as market context.
func (uc *UseCases) respond(ctx context.Context, query string, conversationID model.ConversationID) (*model.ChatResponse, []model.SearchResult) {
	if conversationID == "" {
		conversationID = model.NewConversationID()
	}

	release := uc.gate.acquire(conversationID)
	defer release()

	session, err := uc.repo.GetSession(ctx, conversationID)
	if err != nil {
		// Unknown conversation ID: start a fresh session under it.
		session = model.NewConversationSession(conversationID)
	}

	results, err := uc.store.Search(ctx, query)
	if err != nil {
		errutil.Handle(ctx, err, "knowledge search failed")
		results = nil
	}

	prompt := uc.buildPrompt(query, session, results)

	resp := &model.ChatResponse{
		ConversationID: conversationID,
		Timestamp:      time.Now(),
	}

	text, err := uc.generate(ctx, prompt)
	if err != nil {
		category := types.CategorizeError(err)
		logging.From(ctx).Error("generation failed",
			"category", category,
			"error", err.Error(),
		)
		resp.Response = degradedMessage(category)
		resp.Sources = []string{}
		resp.Confidence = 0
	} else {
		resp.Response = text
		resp.Sources = sourceNames(results)
		resp.Confidence = confidence(results, text)
	}

	session.Append(query, resp.Response)
	if err := uc.repo.PutSession(ctx, session); err != nil {
		errutil.Handle(ctx, err, "failed to persist conversation session")
	}

	return resp, results
}

// buildPrompt assembles the single-shot prompt: persona, conversation
// framing, retrieved context, recent history, and the current question.
func (uc *UseCases) buildPrompt(query string, session *model.ConversationSession, results []model.SearchResult) string {
	parts := []string{personaPrompt}

	parts = append(parts, "\n\nCONVERSATION CONTEXT:")
	if len(session.Messages) == 0 {
		parts = append(parts,
			"\n- This is the FIRST message in this conversation",
			"\n- You may use a brief, natural greeting if appropriate",
		)
	} else {
		parts = append(parts,
			"\n- This is a FOLLOW-UP message in an ongoing conversation",
			"\n- NO greetings needed - jump straight to answering",
			"\n- Reference previous discussion when relevant",
		)
	}

	parts = append(parts, "\n\nRelevant Information from Knowledge Base:\n"+uc.prepareContext(results))

	if len(session.Messages) > 0 {
		parts = append(parts, "\n\nPrevious Conversation:")
		for _, msg := range session.RecentExchanges(recentExchanges) {
			label := "User"
			if msg.Role == types.RoleAssistant {
				label = "You"
			}
			parts = append(parts, label+": "+msg.Content)
		}
	}

	parts = append(parts, "\n\nCurrent User Question: "+query)
	parts = append(parts, "\nYour Response:")

	return strings.Join(parts, "\n")
}

// prepareContext renders search results into the prompt's knowledge section,
// bounded by the configured context budget.
func (uc *UseCases) prepareContext(results []model.SearchResult) string {
	if len(results) == 0 {
		return noContextMessage
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, fmt.Sprintf("Source: %s\n%s\n", r.Source, r.Content))
	}

	return truncate(strings.Join(parts, "\n---\n"), uc.maxContextLength)
}

// truncate shortens s to at most limit bytes without splitting a rune,
// marking the cut with an ellipsis.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// generate runs one completion over the assembled prompt, bounded by the
// generation timeout. An empty completion is mapped to a fixed apology so a
// turn always carries text.
func (uc *UseCases) generate(ctx context.Context, prompt string) (string, error) {
	if uc.llmClient == nil {
		return "", goerr.New("no LLM client configured")
	}

	ctx, cancel := context.WithTimeout(ctx, uc.generationTimeout)
	defer cancel()

	session, err := uc.llmClient.NewSession(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate content from LLM")
	}

	text := strings.TrimSpace(strings.Join(resp.Texts, "\n"))
	if text == "" {
		return emptyGenerationMessage, nil
	}
	return text, nil
}

// degradedMessage maps an error category to its fixed user-safe response.
// The raw error text never reaches the caller.
func degradedMessage(category types.ErrorCategory) string {
	switch category {
	case types.ErrorCategoryAuth:
		return "I'm experiencing authentication issues with the AI service. Please check the API configuration."
	case types.ErrorCategoryRateLimit:
		return "I'm experiencing rate limiting from the AI service. Please try again in a moment."
	case types.ErrorCategoryNetwork:
		return "I'm experiencing network connectivity issues. Please try again."
	default:
		return "I'm experiencing technical difficulties with the AI service. Please try again later."
	}
}

// sourceNames lists result sources in rank order, duplicates preserved.
func sourceNames(results []model.SearchResult) []string {
	names := make([]string, 0, len(results))
	for _, r := range results {
		names = append(names, r.Source)
	}
	return names
}

// confidence blends the mean search score with response length and result
// count, rounded to two decimals. Without search results it is a flat 0.3.
func confidence(results []model.SearchResult, response string) float64 {
	if len(results) == 0 {
		return 0.3
	}

	var total float64
	for _, r := range results {
		total += r.Score
	}
	mean := total / float64(len(results))

	lengthFactor := math.Min(float64(len(response))/500, 1.0)
	countFactor := math.Min(float64(len(results))/5, 1.0)

	score := mean*0.5 + lengthFactor*0.3 + countFactor*0.2
	return math.Round(math.Min(score, 1.0)*100) / 100
}
