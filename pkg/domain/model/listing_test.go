package model_test

import (
	"strings"
	"testing"

	"github.com/makazi-lab/makazi/pkg/domain/model"
)

func TestFormatKSH(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"millions one decimal", 2_500_000, "KSH 2.5 million"},
		{"exactly one million", 1_000_000, "KSH 1.0 million"},
		{"sale price", 12_800_000, "KSH 12.8 million"},
		{"thousands with K", 500_000, "KSH 500K"},
		{"monthly rent", 65_000, "KSH 65K"},
		{"below a thousand", 950, "KSH 950"},
		{"zero", 0, "KSH 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.FormatKSH(tt.amount); got != tt.want {
				t.Errorf("FormatKSH(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestNewRecommendation(t *testing.T) {
	scored := &model.ScoredListing{
		Listing: model.PropertyListing{
			ID:           "p-42",
			Title:        "Spacious Kilimani Apartment",
			PropertyType: "apartment",
			Location:     model.ListingLocation{Suburb: "Kilimani", City: "Nairobi"},
			Price:        85_000,
			Bedrooms:     3,
			Bathrooms:    2,
			Furnished:    true,
			Amenities:    []string{"pool", "gym", "parking", "balcony", "security", "lift"},
			Images:       []string{"https://img.example.com/1.jpg", "https://img.example.com/2.jpg"},
			Rating:       4.5,
		},
		MatchScore: 0.82,
	}

	rec := model.NewRecommendation(scored)

	if rec.Title != "Spacious Kilimani Apartment" {
		t.Errorf("Recommendation.Title = %q", rec.Title)
	}
	if rec.Location != "Kilimani" {
		t.Errorf("Recommendation.Location = %q, want Kilimani", rec.Location)
	}
	if rec.FormattedPrice != "KSH 85K" {
		t.Errorf("Recommendation.FormattedPrice = %q, want KSH 85K", rec.FormattedPrice)
	}
	if len(rec.Amenities) != 4 {
		t.Errorf("len(Recommendation.Amenities) = %v, want 4", len(rec.Amenities))
	}
	if rec.ImageURL != "https://img.example.com/1.jpg" {
		t.Errorf("Recommendation.ImageURL = %q", rec.ImageURL)
	}
	if rec.MatchScore != 0.82 {
		t.Errorf("Recommendation.MatchScore = %v, want 0.82", rec.MatchScore)
	}
}

func TestNewRecommendation_NoImages(t *testing.T) {
	scored := &model.ScoredListing{
		Listing: model.PropertyListing{
			Title:     "Karen Bungalow",
			Location:  model.ListingLocation{Suburb: "Karen"},
			Price:     12_000_000,
			Amenities: []string{"garden"},
		},
		MatchScore: 0.4,
	}

	rec := model.NewRecommendation(scored)

	if rec.ImageURL != "" {
		t.Errorf("Recommendation.ImageURL = %q, want empty", rec.ImageURL)
	}
	if len(rec.Amenities) != 1 {
		t.Errorf("len(Recommendation.Amenities) = %v, want 1", len(rec.Amenities))
	}
}

func TestPropertyListing_SearchText(t *testing.T) {
	listing := model.PropertyListing{
		Title:        "Modern Westlands Apartment",
		Description:  "Bright two-bedroom with borehole water",
		PropertyType: "Apartment",
		Location:     model.ListingLocation{Suburb: "Westlands", City: "Nairobi"},
		Amenities:    []string{"Parking", "Gym"},
	}

	text := listing.SearchText()

	for _, want := range []string{"modern westlands apartment", "borehole", "parking", "gym"} {
		if !strings.Contains(text, want) {
			t.Errorf("SearchText() missing %q: %q", want, text)
		}
	}
	if strings.ContainsAny(text, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		t.Errorf("SearchText() not lowercased: %q", text)
	}
}
