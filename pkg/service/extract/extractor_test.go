package extract_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/makazi-lab/makazi/pkg/domain/types"
	"github.com/makazi-lab/makazi/pkg/service/extract"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{Texts: []string{"{}"}}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func respondWith(text string) *mockLLMClient {
	return &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{text}}, nil
				},
			}, nil
		},
	}
}

func TestExtract(t *testing.T) {
	ctx := context.Background()
	knownLocations := []string{"karen", "westlands", "kilimani"}
	knownTypes := []string{"house", "apartment", "bedsitter"}

	t.Run("structured extraction parses the schema JSON", func(t *testing.T) {
		client := respondWith(`{
			"location": "Westlands",
			"property_type": "apartment",
			"bedrooms": 2,
			"max_price": 80000,
			"furnished": true,
			"preferences": ["Family-Friendly"],
			"price_range": "affordable",
			"transaction_type": "rent"
		}`)
		x := extract.New(client)

		result := x.Extract(ctx, "2 bedroom apartment in Westlands to rent", knownLocations, knownTypes)
		gt.Value(t, result.Method).Equal(types.ExtractionStructured)

		rec := result.Requirements
		gt.Bool(t, rec.Location != nil).True()
		gt.Value(t, *rec.Location).Equal("westlands")
		gt.Bool(t, rec.PropertyType != nil).True()
		gt.Value(t, *rec.PropertyType).Equal("apartment")
		gt.Bool(t, rec.Bedrooms != nil).True()
		gt.Value(t, *rec.Bedrooms).Equal(2)
		gt.Bool(t, rec.MaxPrice != nil).True()
		gt.Value(t, *rec.MaxPrice).Equal(80000.0)
		gt.Bool(t, rec.Furnished != nil).True()
		gt.Bool(t, *rec.Furnished).True()
		gt.Value(t, rec.Preferences).Equal([]string{"family-friendly"})
		gt.Value(t, rec.PriceTier).Equal(types.PriceTierAffordable)
		gt.Value(t, rec.Transaction).Equal(types.TransactionRent)
	})

	t.Run("tolerates prose around the JSON object", func(t *testing.T) {
		client := respondWith("Here are the extracted requirements:\n" +
			`{"location": "kilimani"}` + "\nLet me know if you need more.")
		x := extract.New(client)

		result := x.Extract(ctx, "places in Kilimani", knownLocations, knownTypes)
		gt.Value(t, result.Method).Equal(types.ExtractionStructured)
		gt.Bool(t, result.Requirements.Location != nil).True()
		gt.Value(t, *result.Requirements.Location).Equal("kilimani")
	})

	t.Run("drops invalid enum values", func(t *testing.T) {
		client := respondWith(`{"price_range": "mid", "transaction_type": "borrow", "location": "karen"}`)
		x := extract.New(client)

		result := x.Extract(ctx, "something in Karen", knownLocations, knownTypes)
		gt.Value(t, result.Method).Equal(types.ExtractionStructured)
		gt.Bool(t, result.Requirements.PriceTier.IsSet()).False()
		gt.Bool(t, result.Requirements.Transaction.IsSet()).False()
		gt.Bool(t, result.Requirements.Location != nil).True()
	})

	t.Run("falls back when generation fails", func(t *testing.T) {
		client := &mockLLMClient{
			newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
				return &mockLLMSession{
					generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
						return nil, goerr.New("503 service unavailable")
					},
				}, nil
			},
		}
		x := extract.New(client)

		result := x.Extract(ctx, "apartment in Kilimani", knownLocations, knownTypes)
		gt.Value(t, result.Method).Equal(types.ExtractionFallback)
		gt.Bool(t, result.Requirements.Location != nil).True()
		gt.Value(t, *result.Requirements.Location).Equal("kilimani")
	})

	t.Run("falls back when the response has no JSON", func(t *testing.T) {
		client := respondWith("I could not determine any requirements from that query.")
		x := extract.New(client)

		result := x.Extract(ctx, "house in Karen", knownLocations, knownTypes)
		gt.Value(t, result.Method).Equal(types.ExtractionFallback)
		gt.Bool(t, result.Requirements.PropertyType != nil).True()
		gt.Value(t, *result.Requirements.PropertyType).Equal("house")
	})

	t.Run("nil client pins extraction to the fallback", func(t *testing.T) {
		x := extract.New(nil)

		result := x.Extract(ctx, "2 bedroom apartment in Westlands", knownLocations, knownTypes)
		gt.Value(t, result.Method).Equal(types.ExtractionFallback)
		gt.Bool(t, result.Requirements.Location != nil).True()
		gt.Value(t, *result.Requirements.Location).Equal("westlands")
		gt.Bool(t, result.Requirements.Bedrooms != nil).True()
		gt.Value(t, *result.Requirements.Bedrooms).Equal(2)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	prompt := extract.BuildUserPrompt("apartment in Westlands",
		[]string{"karen", "westlands"}, []string{"house", "apartment"})

	gt.String(t, prompt).Contains("karen, westlands")
	gt.String(t, prompt).Contains("house, apartment")
	gt.String(t, prompt).Contains("apartment in Westlands")
}

func TestBuildResponseSchema(t *testing.T) {
	schema := extract.BuildResponseSchema()

	gt.Value(t, schema.Type).Equal(gollem.TypeObject)
	for _, field := range []string{
		"location", "property_type", "bedrooms", "bathrooms",
		"min_price", "max_price", "furnished", "preferences",
		"amenities", "price_range", "transaction_type", "urgency",
	} {
		_, ok := schema.Properties[field]
		gt.Bool(t, ok).True()
	}
	gt.Array(t, schema.Required).Length(0)
}

func TestFirstJSONObject(t *testing.T) {
	t.Run("extracts a balanced object", func(t *testing.T) {
		raw := extract.FirstJSONObject(`noise {"a": {"b": 1}} trailing`)
		gt.Value(t, raw).Equal(`{"a": {"b": 1}}`)
	})

	t.Run("handles braces inside strings", func(t *testing.T) {
		raw := extract.FirstJSONObject(`{"note": "brace } inside"} rest`)
		gt.Value(t, raw).Equal(`{"note": "brace } inside"}`)
	})

	t.Run("returns empty without an object", func(t *testing.T) {
		gt.Value(t, extract.FirstJSONObject("no json here")).Equal("")
		gt.Value(t, extract.FirstJSONObject("{unclosed")).Equal("")
	})
}
