package extract

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/utils/logging"
)

// Extractor turns a free-text property query into a structured requirement
// record. The primary path asks the LLM for a fixed-schema JSON object; when
// the call fails or the response carries no parseable JSON, a deterministic
// keyword fallback takes over. Extract never fails.
type Extractor struct {
	llmClient gollem.LLMClient
}

// Option is a functional option for Extractor configuration.
type Option func(*Extractor)

// New creates an Extractor. A nil LLM client is allowed and pins the
// extractor to the keyword fallback path.
func New(llmClient gollem.LLMClient, opts ...Option) *Extractor {
	x := &Extractor{
		llmClient: llmClient,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Extract produces a requirement record for the query. The known location
// and type lists come from the property catalog and anchor both the LLM
// prompt and the fallback matching.
func (x *Extractor) Extract(ctx context.Context, query string, knownLocations, knownTypes []string) *model.ExtractionResult {
	if x.llmClient != nil {
		rec, err := x.structured(ctx, query, knownLocations, knownTypes)
		if err == nil {
			return &model.ExtractionResult{
				Requirements: *rec,
				Method:       types.ExtractionStructured,
			}
		}
		logging.From(ctx).Warn("structured extraction failed, using keyword fallback",
			"error", err.Error(),
		)
	}

	return &model.ExtractionResult{
		Requirements: *Fallback(query, knownLocations, knownTypes),
		Method:       types.ExtractionFallback,
	}
}

// structured runs the LLM extraction with a JSON response schema.
func (x *Extractor) structured(ctx context.Context, query string, knownLocations, knownTypes []string) (*model.RequirementRecord, error) {
	session, err := x.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(buildResponseSchema()),
		gollem.WithSessionSystemPrompt(extractionSystemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session")
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(buildUserPrompt(query, knownLocations, knownTypes)))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate content from LLM")
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("empty LLM response")
	}

	raw := firstJSONObject(resp.Texts[0])
	if raw == "" {
		return nil, goerr.New("no JSON object in LLM response", goerr.V("response", resp.Texts[0]))
	}

	var payload requirementPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, goerr.Wrap(err, "failed to parse requirement JSON", goerr.V("response", raw))
	}

	return payload.toRecord(), nil
}

// extractionSystemPrompt is the fixed system prompt for requirement
// extraction.
const extractionSystemPrompt = `You are a real-estate requirement extraction assistant for the Kenyan market. Your task is to read a single user query about properties and extract the concrete requirements it states.

## Instructions:

1. Extract only what the query states or clearly implies; never guess missing values.
2. location must be one of the known locations when the query names one, in lowercase.
3. property_type must be one of the known property types when the query names one, in lowercase.
4. Prices are in Kenyan Shillings; interpret "2M" or "2 million" as 2000000 and "50K" as 50000.
5. price_range is one of: affordable, mid-range, luxury, premium.
6. transaction_type is one of: rent, buy, invest.
7. Omit every field the query says nothing about.`

// buildUserPrompt creates the user prompt enumerating known catalog values.
func buildUserPrompt(query string, knownLocations, knownTypes []string) string {
	var sb strings.Builder

	if len(knownLocations) > 0 {
		sb.WriteString("## Known locations:\n\n")
		sb.WriteString(strings.Join(knownLocations, ", "))
		sb.WriteString("\n\n")
	}

	if len(knownTypes) > 0 {
		sb.WriteString("## Known property types:\n\n")
		sb.WriteString(strings.Join(knownTypes, ", "))
		sb.WriteString("\n\n")
	}

	sb.WriteString("## User query:\n\n")
	sb.WriteString(query)
	sb.WriteString("\n")

	return sb.String()
}

// buildResponseSchema creates the JSON schema for structured output. Every
// property is optional; absence means the query did not constrain it.
func buildResponseSchema() *gollem.Parameter {
	return &gollem.Parameter{
		Title:       "PropertyRequirements",
		Description: "Structured property requirements extracted from a user query",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"location": {
				Type:        gollem.TypeString,
				Description: "Suburb or city the user asked about, lowercase",
			},
			"property_type": {
				Type:        gollem.TypeString,
				Description: "Requested property type, lowercase",
			},
			"bedrooms": {
				Type:        gollem.TypeInteger,
				Description: "Minimum number of bedrooms requested",
			},
			"bathrooms": {
				Type:        gollem.TypeInteger,
				Description: "Minimum number of bathrooms requested",
			},
			"min_price": {
				Type:        gollem.TypeNumber,
				Description: "Lower price bound in KSH",
			},
			"max_price": {
				Type:        gollem.TypeNumber,
				Description: "Upper price bound in KSH",
			},
			"furnished": {
				Type:        gollem.TypeBoolean,
				Description: "Whether the user asked for a furnished property",
			},
			"preferences": {
				Type:        gollem.TypeArray,
				Description: "Lifestyle preference tags such as family-friendly, quiet, modern",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
			},
			"amenities": {
				Type:        gollem.TypeArray,
				Description: "Amenities the user explicitly mentioned",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
			},
			"price_range": {
				Type:        gollem.TypeString,
				Description: "Budget band: affordable, mid-range, luxury or premium",
			},
			"transaction_type": {
				Type:        gollem.TypeString,
				Description: "Transaction intent: rent, buy or invest",
			},
			"urgency": {
				Type:        gollem.TypeString,
				Description: "How urgently the user needs the property: high, medium or low",
			},
		},
	}
}

// requirementPayload is the loosely-typed shape returned by the LLM before
// normalization.
type requirementPayload struct {
	Location     string   `json:"location"`
	PropertyType string   `json:"property_type"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	Furnished    *bool    `json:"furnished"`
	Preferences  []string `json:"preferences"`
	Amenities    []string `json:"amenities"`
	PriceRange   string   `json:"price_range"`
	Transaction  string   `json:"transaction_type"`
	Urgency      string   `json:"urgency"`
}

// toRecord normalizes the payload into a requirement record. Invalid enum
// values are dropped rather than propagated.
func (p *requirementPayload) toRecord() *model.RequirementRecord {
	rec := &model.RequirementRecord{}

	if v := normalizeToken(p.Location); v != "" {
		rec.Location = &v
	}
	if v := normalizeToken(p.PropertyType); v != "" {
		rec.PropertyType = &v
	}
	if p.Bedrooms != nil && *p.Bedrooms > 0 {
		rec.Bedrooms = p.Bedrooms
	}
	if p.Bathrooms != nil && *p.Bathrooms > 0 {
		rec.Bathrooms = p.Bathrooms
	}
	if p.MinPrice != nil && *p.MinPrice > 0 {
		rec.MinPrice = p.MinPrice
	}
	if p.MaxPrice != nil && *p.MaxPrice > 0 {
		rec.MaxPrice = p.MaxPrice
	}
	rec.Furnished = p.Furnished
	rec.Preferences = normalizeTokens(p.Preferences)
	rec.Amenities = normalizeTokens(p.Amenities)

	if tier, err := types.ParsePriceTier(normalizeToken(p.PriceRange)); err == nil {
		rec.PriceTier = tier
	}
	if tx, err := types.ParseTransactionType(normalizeToken(p.Transaction)); err == nil {
		rec.Transaction = tx
	}
	if v := normalizeToken(p.Urgency); v != "" {
		rec.Urgency = &v
	}

	return rec
}

// firstJSONObject returns the first balanced JSON object in s, or "".
func firstJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTokens(values []string) []string {
	var out []string
	for _, v := range values {
		if v = normalizeToken(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
