package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-pulse/insight-engine/pkg/apperrors"
	"github.com/campus-pulse/insight-engine/pkg/models"
	"github.com/campus-pulse/insight-engine/pkg/repositories"
	"github.com/campus-pulse/insight-engine/pkg/testhelpers"
)

func createUnit(t *testing.T, tdb *testhelpers.TestDB, name string) int64 {
	t.Helper()
	var id int64
	err := tdb.DB.QueryRow(context.Background(),
		`INSERT INTO units (name, short_name, description) VALUES ($1, $2, $3) RETURNING id`,
		name, "", name+" description").Scan(&id)
	require.NoError(t, err)
	return id
}

func createInput(t *testing.T, tdb *testhelpers.TestDB, unitID int64, text string) int64 {
	t.Helper()
	var id int64
	err := tdb.DB.QueryRow(context.Background(),
		`INSERT INTO feedback_inputs (unit_id, raw_text) VALUES ($1, $2) RETURNING id`,
		unitID, text).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestUnitRepository(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()

	id := createUnit(t, tdb, "Library")
	repo := repositories.NewUnitRepository(tdb.DB)

	unit, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Library", unit.Name)

	_, err = repo.GetByID(ctx, id+1000)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTaxonomyRepository_SeedAndSnapshot(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()

	unitID := createUnit(t, tdb, "Student Affairs")
	repo := repositories.NewTaxonomyRepository(tdb.DB)

	seed := []models.Category{
		{Name: "Teaching & Learning", Description: "Instruction quality"},
		{Name: "Facilities"},
	}
	subs := map[string][]string{"Teaching & Learning": {"Course Content", "Assessment"}}

	require.NoError(t, repo.SeedUnit(ctx, unitID, seed, subs))
	// Idempotent: a second call must not duplicate.
	require.NoError(t, repo.SeedUnit(ctx, unitID, seed, subs))

	tax, err := repo.GetSnapshot(ctx, unitID)
	require.NoError(t, err)
	assert.Len(t, tax.Categories, 2)
	assert.Len(t, tax.Subcategories, 2)

	cat, ok := tax.CategoryByName("Teaching & Learning")
	require.True(t, ok)
	_, ok = tax.SubcategoryByName(cat.ID, "Course Content")
	assert.True(t, ok)
	assert.Empty(t, tax.Orphans())
}

func TestSegmentRepository_SaveAndSample(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()

	unitID := createUnit(t, tdb, "IT Services")
	inputID := createInput(t, tdb, unitID, "wifi is slow in the dorms but support was helpful")

	repo := repositories.NewSegmentRepository(tdb.DB)
	require.NoError(t, repo.SaveBatch(ctx, unitID, []models.ReconciledSegment{
		{Segment: models.Segment{
			RawInputID: inputID, SegmentText: "wifi is slow in the dorms",
			Sentiment: models.SentimentNegative, IsSuggestion: false,
		}},
		{Segment: models.Segment{
			RawInputID: inputID, SegmentText: "support was helpful",
			Sentiment: models.SentimentPositive,
		}},
	}))

	sample, err := repo.Sample(ctx, unitID, 10)
	require.NoError(t, err)
	assert.Len(t, sample, 2)
}

func TestReportRepository_RoundTrip(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()

	unitID := createUnit(t, tdb, "Housing")
	repo := repositories.NewReportRepository(tdb.DB)

	saved := &models.SavedReport{
		UnitID: unitID,
		Report: models.ExecutiveReport{
			Summary: "Mixed term for housing.",
			Verdict: models.VerdictNeedsImprovement,
			Closing: "Follow up next term.",
		},
		QuoteVerified: true,
	}
	require.NoError(t, repo.Save(ctx, saved))
	assert.NotEmpty(t, saved.ID)

	got, err := repo.GetLatest(ctx, unitID, nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.VerdictNeedsImprovement, got.Report.Verdict)
	assert.True(t, got.QuoteVerified)
}

func TestReportRepository_NoReportsReturnsNil(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)

	unitID := createUnit(t, tdb, "Athletics")
	repo := repositories.NewReportRepository(tdb.DB)

	got, err := repo.GetLatest(context.Background(), unitID, nil)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMetricsRepository_DashboardMetrics(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()

	unitID := createUnit(t, tdb, "Dining Services")
	inputID := createInput(t, tdb, unitID, "good food, long lines")

	segRepo := repositories.NewSegmentRepository(tdb.DB)
	require.NoError(t, segRepo.SaveBatch(ctx, unitID, []models.ReconciledSegment{
		{Segment: models.Segment{RawInputID: inputID, SegmentText: "good food", Sentiment: models.SentimentPositive}},
		{Segment: models.Segment{RawInputID: inputID, SegmentText: "long lines", Sentiment: models.SentimentNegative, IsSuggestion: true}},
	}))

	repo := repositories.NewMetricsRepository(tdb.DB)
	metrics, err := repo.GetDashboardMetrics(ctx, unitID, nil)
	require.NoError(t, err)

	assert.Equal(t, unitID, metrics.UnitID)
	assert.Equal(t, int64(1), metrics.TotalComments)
	assert.Equal(t, int64(2), metrics.TotalSegments)
	assert.Equal(t, int64(1), metrics.SuggestionCount)
	assert.Equal(t, int64(1), metrics.Sentiment.Positive)
	assert.Equal(t, int64(1), metrics.Sentiment.Negative)
	require.Len(t, metrics.Categories, 1)
	assert.Equal(t, "Uncategorized", metrics.Categories[0].CategoryName)
}

func TestMetricsRepository_ExecutiveMetrics(t *testing.T) {
	tdb := testhelpers.GetTestDB(t)
	tdb.TruncateAll(t)
	ctx := context.Background()

	unitID := createUnit(t, tdb, "Library")
	inputID := createInput(t, tdb, unitID, "too cold")

	segRepo := repositories.NewSegmentRepository(tdb.DB)
	require.NoError(t, segRepo.SaveBatch(ctx, unitID, []models.ReconciledSegment{
		{Segment: models.Segment{RawInputID: inputID, SegmentText: "too cold", Sentiment: models.SentimentNegative}},
	}))

	repo := repositories.NewMetricsRepository(tdb.DB)
	rows, err := repo.GetAllExecutiveMetrics(ctx)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, "Library", rows[0].UnitName)
	assert.Equal(t, int64(1), rows[0].TotalSegments)
	assert.Equal(t, "Uncategorized", rows[0].TopConcern)
}
