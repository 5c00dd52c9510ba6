package catalog_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/makazi-lab/makazi/pkg/domain/model"
	"github.com/makazi-lab/makazi/pkg/service/catalog"
)

func ptr[T any](v T) *T {
	return &v
}

func TestFilter(t *testing.T) {
	listings := sampleListings()

	t.Run("an empty record retains every listing in order", func(t *testing.T) {
		got := catalog.Filter(listings, &model.RequirementRecord{})
		gt.Array(t, got).Length(2)
		gt.Value(t, got[0].ID).Equal("prop-001")
		gt.Value(t, got[1].ID).Equal("prop-002")

		got = catalog.Filter(listings, nil)
		gt.Array(t, got).Length(2)
	})

	t.Run("keeps only listings consistent with every set field", func(t *testing.T) {
		got := catalog.Filter(listings, &model.RequirementRecord{
			Location:     ptr("westlands"),
			PropertyType: ptr("apartment"),
		})
		gt.Array(t, got).Length(1).Required()
		gt.Value(t, got[0].ID).Equal("prop-001")
	})

	t.Run("location matches suburb or city case-insensitively", func(t *testing.T) {
		bySuburb := catalog.Filter(listings, &model.RequirementRecord{Location: ptr("Westlands")})
		gt.Array(t, bySuburb).Length(1).Required()
		gt.Value(t, bySuburb[0].ID).Equal("prop-001")

		byCity := catalog.Filter(listings, &model.RequirementRecord{Location: ptr("nairobi")})
		gt.Array(t, byCity).Length(2)

		nowhere := catalog.Filter(listings, &model.RequirementRecord{Location: ptr("mombasa")})
		gt.Array(t, nowhere).Length(0)
	})

	t.Run("type matches by substring in either direction", func(t *testing.T) {
		partial := catalog.Filter(listings, &model.RequirementRecord{PropertyType: ptr("apart")})
		gt.Array(t, partial).Length(1).Required()
		gt.Value(t, partial[0].ID).Equal("prop-001")

		broader := catalog.Filter(listings, &model.RequirementRecord{PropertyType: ptr("luxury apartment")})
		gt.Array(t, broader).Length(1).Required()
		gt.Value(t, broader[0].ID).Equal("prop-001")
	})

	t.Run("bedrooms and bathrooms are inclusive lower bounds", func(t *testing.T) {
		gt.Array(t, catalog.Filter(listings, &model.RequirementRecord{Bedrooms: ptr(2)})).Length(2)

		threeBeds := catalog.Filter(listings, &model.RequirementRecord{Bedrooms: ptr(3)})
		gt.Array(t, threeBeds).Length(1).Required()
		gt.Value(t, threeBeds[0].ID).Equal("prop-002")

		threeBaths := catalog.Filter(listings, &model.RequirementRecord{Bathrooms: ptr(3)})
		gt.Array(t, threeBaths).Length(1).Required()
		gt.Value(t, threeBaths[0].ID).Equal("prop-002")
	})

	t.Run("price bounds are inclusive", func(t *testing.T) {
		atMax := catalog.Filter(listings, &model.RequirementRecord{MaxPrice: ptr(85000.0)})
		gt.Array(t, atMax).Length(1).Required()
		gt.Value(t, atMax[0].ID).Equal("prop-001")

		gt.Array(t, catalog.Filter(listings, &model.RequirementRecord{MinPrice: ptr(85000.0)})).Length(2)

		aboveMin := catalog.Filter(listings, &model.RequirementRecord{MinPrice: ptr(85001.0)})
		gt.Array(t, aboveMin).Length(1).Required()
		gt.Value(t, aboveMin[0].ID).Equal("prop-002")

		banded := catalog.Filter(listings, &model.RequirementRecord{
			MinPrice: ptr(50000.0),
			MaxPrice: ptr(100000.0),
		})
		gt.Array(t, banded).Length(1).Required()
		gt.Value(t, banded[0].ID).Equal("prop-001")
	})

	t.Run("furnished requires exact equality", func(t *testing.T) {
		furnished := catalog.Filter(listings, &model.RequirementRecord{Furnished: ptr(true)})
		gt.Array(t, furnished).Length(1).Required()
		gt.Value(t, furnished[0].ID).Equal("prop-001")

		unfurnished := catalog.Filter(listings, &model.RequirementRecord{Furnished: ptr(false)})
		gt.Array(t, unfurnished).Length(1).Required()
		gt.Value(t, unfurnished[0].ID).Equal("prop-002")
	})

	t.Run("contradictory fields leave nothing", func(t *testing.T) {
		got := catalog.Filter(listings, &model.RequirementRecord{
			Location:  ptr("karen"),
			Furnished: ptr(true),
		})
		gt.Array(t, got).Length(0)
	})

	t.Run("preference and amenity fields never filter", func(t *testing.T) {
		got := catalog.Filter(listings, &model.RequirementRecord{
			Preferences: []string{"family-friendly"},
			Amenities:   []string{"helipad"},
		})
		gt.Array(t, got).Length(2)
	})
}
