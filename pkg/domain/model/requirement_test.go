package model_test

import (
	"testing"

	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/domain/types"
)

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

func boolPtr(b bool) *bool { return &b }

func TestRequirementRecord_IsEmpty(t *testing.T) {
	empty := &model.RequirementRecord{}
	if !empty.IsEmpty() {
		t.Error("zero RequirementRecord reported as non-empty")
	}

	tests := []struct {
		name   string
		record model.RequirementRecord
	}{
		{"location", model.RequirementRecord{Location: strPtr("Kilimani")}},
		{"property type", model.RequirementRecord{PropertyType: strPtr("apartment")}},
		{"bedrooms", model.RequirementRecord{Bedrooms: intPtr(2)}},
		{"bathrooms", model.RequirementRecord{Bathrooms: intPtr(1)}},
		{"min price", model.RequirementRecord{MinPrice: floatPtr(20000)}},
		{"max price", model.RequirementRecord{MaxPrice: floatPtr(80000)}},
		{"furnished false is still a constraint", model.RequirementRecord{Furnished: boolPtr(false)}},
		{"preferences", model.RequirementRecord{Preferences: []string{"quiet"}}},
		{"amenities", model.RequirementRecord{Amenities: []string{"parking"}}},
		{"price tier", model.RequirementRecord{PriceTier: types.PriceTierAffordable}},
		{"transaction", model.RequirementRecord{Transaction: types.TransactionRent}},
		{"urgency", model.RequirementRecord{Urgency: strPtr("immediate")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.record.IsEmpty() {
				t.Error("record with a set field reported as empty")
			}
		})
	}
}

func TestRequirementRecord_HasPropertyIntent(t *testing.T) {
	tests := []struct {
		name   string
		record model.RequirementRecord
		want   bool
	}{
		{"empty", model.RequirementRecord{}, false},
		{"location", model.RequirementRecord{Location: strPtr("Westlands")}, true},
		{"property type", model.RequirementRecord{PropertyType: strPtr("house")}, true},
		{"bedrooms", model.RequirementRecord{Bedrooms: intPtr(3)}, true},
		{"max price", model.RequirementRecord{MaxPrice: floatPtr(100000)}, true},
		{"price tier", model.RequirementRecord{PriceTier: types.PriceTierLuxury}, true},
		{"transaction", model.RequirementRecord{Transaction: types.TransactionBuy}, true},
		{"preferences alone are not intent", model.RequirementRecord{Preferences: []string{"modern"}}, false},
		{"amenities alone are not intent", model.RequirementRecord{Amenities: []string{"gym"}}, false},
		{"urgency alone is not intent", model.RequirementRecord{Urgency: strPtr("soon")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.HasPropertyIntent(); got != tt.want {
				t.Errorf("HasPropertyIntent() = %v, want %v", got, tt.want)
			}
		})
	}
}
