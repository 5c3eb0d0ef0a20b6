package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/insight-engine/pkg/models"
)

func testTaxonomy() models.Taxonomy {
	return models.Taxonomy{
		Categories: []models.Category{
			{ID: 1, Name: "Teaching & Learning"},
			{ID: 2, Name: "Facilities"},
		},
		Subcategories: []models.Subcategory{
			{ID: 10, CategoryID: 1, Name: "Course Content"},
			{ID: 11, CategoryID: 2, Name: "Air Conditioning"},
		},
	}
}

func testUnits() []models.OrganizationUnit {
	return []models.OrganizationUnit{
		{ID: 100, Name: "Library"},
		{ID: 101, Name: "Dining Services"},
	}
}

func seg(category, sub, unit string) models.Segment {
	return models.Segment{
		SegmentText:     "some feedback",
		Sentiment:       models.SentimentNeutral,
		CategoryName:    category,
		SubCategoryName: sub,
		RelatedUnitName: unit,
	}
}

func TestSegments_ExactMatchResolvesAll(t *testing.T) {
	out := Segments([]models.Segment{seg("Facilities", "Air Conditioning", "Library")},
		testTaxonomy(), testUnits())

	require.Len(t, out, 1)
	require.NotNil(t, out[0].CategoryID)
	assert.Equal(t, int64(2), *out[0].CategoryID)
	require.NotNil(t, out[0].SubcategoryID)
	assert.Equal(t, int64(11), *out[0].SubcategoryID)
	require.NotNil(t, out[0].RelatedUnitID)
	assert.Equal(t, int64(100), *out[0].RelatedUnitID)
}

func TestSegments_CaseSensitive(t *testing.T) {
	out := Segments([]models.Segment{seg("facilities", "", "")}, testTaxonomy(), testUnits())

	require.Len(t, out, 1)
	assert.Nil(t, out[0].CategoryID, "lowercase name must not match")
}

func TestSegments_UnknownCategoryStaysNil(t *testing.T) {
	out := Segments([]models.Segment{seg("Parking", "", "")}, testTaxonomy(), testUnits())

	require.Len(t, out, 1)
	assert.Nil(t, out[0].CategoryID)
	assert.Nil(t, out[0].SubcategoryID)
}

func TestSegments_SubcategoryUnderWrongParent(t *testing.T) {
	// "Air Conditioning" exists, but under Facilities, not Teaching.
	out := Segments([]models.Segment{seg("Teaching & Learning", "Air Conditioning", "")},
		testTaxonomy(), testUnits())

	require.Len(t, out, 1)
	require.NotNil(t, out[0].CategoryID)
	assert.Equal(t, int64(1), *out[0].CategoryID)
	assert.Nil(t, out[0].SubcategoryID, "subcategory match under a different parent must not resolve")
}

func TestSegments_SubcategoryWithoutCategory(t *testing.T) {
	// Category unresolved: the subcategory never resolves either, even though
	// its name exists somewhere in the taxonomy.
	out := Segments([]models.Segment{seg("Nonexistent", "Course Content", "")},
		testTaxonomy(), testUnits())

	require.Len(t, out, 1)
	assert.Nil(t, out[0].CategoryID)
	assert.Nil(t, out[0].SubcategoryID)
}

func TestSegments_UnmatchedUnitTagDropped(t *testing.T) {
	out := Segments([]models.Segment{seg("Facilities", "", "Gym")}, testTaxonomy(), testUnits())

	require.Len(t, out, 1)
	assert.Nil(t, out[0].RelatedUnitID)
	assert.Empty(t, out[0].RelatedUnitName, "unmatched cross-tag is dropped, not kept dangling")
	require.NotNil(t, out[0].CategoryID, "dropping the tag must not affect the category")
}

func TestSegments_EmptyTaxonomy(t *testing.T) {
	out := Segments([]models.Segment{seg("Facilities", "Air Conditioning", "Library")},
		models.Taxonomy{}, nil)

	require.Len(t, out, 1)
	assert.Nil(t, out[0].CategoryID)
	assert.Nil(t, out[0].SubcategoryID)
	assert.Nil(t, out[0].RelatedUnitID)
}

func TestSegments_NeverDropsSegments(t *testing.T) {
	in := []models.Segment{
		seg("Facilities", "", ""),
		seg("Unknown", "Unknown", "Unknown"),
		seg("", "", ""),
	}
	out := Segments(in, testTaxonomy(), testUnits())
	assert.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].SegmentText, out[i].SegmentText)
	}
}

func TestSegments_DuplicateNamesFirstMatchWins(t *testing.T) {
	taxonomy := models.Taxonomy{
		Categories: []models.Category{
			{ID: 5, Name: "Facilities"},
			{ID: 6, Name: "Facilities"},
		},
	}
	out := Segments([]models.Segment{seg("Facilities", "", "")}, taxonomy, nil)

	require.Len(t, out, 1)
	require.NotNil(t, out[0].CategoryID)
	assert.Equal(t, int64(5), *out[0].CategoryID)
}

func TestSegments_EmptyInput(t *testing.T) {
	out := Segments(nil, testTaxonomy(), testUnits())
	assert.NotNil(t, out)
	assert.Empty(t, out)
}
