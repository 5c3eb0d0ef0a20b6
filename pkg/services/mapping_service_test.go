package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-pulse/insight-engine/pkg/llm"
	"github.com/campus-pulse/insight-engine/pkg/models"
)

var mappingUnits = []models.OrganizationUnit{
	{ID: 1, Name: "Library"},
	{ID: 2, Name: "Dining Services"},
}

func TestMapColumns(t *testing.T) {
	mock := llm.NewMockInvoker()
	mock.InvokeFunc = func(ctx context.Context, req llm.Request) (string, error) {
		return `{"mappings": {
			"What did you think of the library?": {"unit_id": 1, "type": "feedback"},
			"Overall rating": {"unit_id": null, "type": "rating"},
			"Timestamp": {"type": "metadata"}
		}}`, nil
	}

	svc := NewMappingService(mock, "Test University", zap.NewNop())
	headers := []string{"What did you think of the library?", "Overall rating", "Timestamp"}
	out, err := svc.MapColumns(context.Background(), headers, nil, mappingUnits)
	require.NoError(t, err)

	require.Len(t, out, 3)
	lib := out["What did you think of the library?"]
	assert.Equal(t, ColumnFeedback, lib.Type)
	require.NotNil(t, lib.UnitID)
	assert.Equal(t, int64(1), *lib.UnitID)

	rating := out["Overall rating"]
	assert.Equal(t, ColumnRating, rating.Type)
	assert.Nil(t, rating.UnitID)
}

func TestMapColumns_MissingHeaderDefaultsToIgnore(t *testing.T) {
	mock := llm.NewMockInvoker()
	mock.InvokeFunc = func(ctx context.Context, req llm.Request) (string, error) {
		return `{"mappings": {"Known": {"type": "feedback"}}}`, nil
	}

	svc := NewMappingService(mock, "Test University", zap.NewNop())
	out, err := svc.MapColumns(context.Background(), []string{"Known", "Skipped"}, nil, mappingUnits)
	require.NoError(t, err)

	assert.Equal(t, ColumnIgnore, out["Skipped"].Type)
}

func TestMapColumns_QuotedUnitIDAccepted(t *testing.T) {
	mock := llm.NewMockInvoker()
	mock.InvokeFunc = func(ctx context.Context, req llm.Request) (string, error) {
		return `{"mappings": {"Col": {"unit_id": "2", "type": "feedback"}}}`, nil
	}

	svc := NewMappingService(mock, "Test University", zap.NewNop())
	out, err := svc.MapColumns(context.Background(), []string{"Col"}, nil, mappingUnits)
	require.NoError(t, err)

	require.NotNil(t, out["Col"].UnitID)
	assert.Equal(t, int64(2), *out["Col"].UnitID)
}

func TestMapColumns_FabricatedUnitIDNulled(t *testing.T) {
	mock := llm.NewMockInvoker()
	mock.InvokeFunc = func(ctx context.Context, req llm.Request) (string, error) {
		return `{"mappings": {"Col": {"unit_id": 777, "type": "feedback"}}}`, nil
	}

	svc := NewMappingService(mock, "Test University", zap.NewNop())
	out, err := svc.MapColumns(context.Background(), []string{"Col"}, nil, mappingUnits)
	require.NoError(t, err)

	assert.Nil(t, out["Col"].UnitID, "a unit id not in the supplied list must be nulled")
	assert.Equal(t, ColumnFeedback, out["Col"].Type)
}

func TestMapColumns_InvalidTypeIsInvalidOutput(t *testing.T) {
	mock := llm.NewMockInvoker()
	mock.InvokeFunc = func(ctx context.Context, req llm.Request) (string, error) {
		return `{"mappings": {"Col": {"type": "mystery"}}}`, nil
	}

	svc := NewMappingService(mock, "Test University", zap.NewNop())
	_, err := svc.MapColumns(context.Background(), []string{"Col"}, nil, mappingUnits)
	require.Error(t, err)
	assert.Equal(t, llm.ErrorTypeInvalidOutput, llm.TypeOf(err))
}

func TestMapIdentityColumns_FiltersUnknownHeaders(t *testing.T) {
	mock := llm.NewMockInvoker()
	mock.InvokeFunc = func(ctx context.Context, req llm.Request) (string, error) {
		return `{"mapping": {
			"location": ["Campus"],
			"faculty": ["Faculty", "Invented Header"],
			"major": [],
			"year": ["Year of Study"]
		}}`, nil
	}

	svc := NewMappingService(mock, "Test University", zap.NewNop())
	headers := []string{"Campus", "Faculty", "Year of Study"}
	out, err := svc.MapIdentityColumns(context.Background(), headers)
	require.NoError(t, err)

	assert.Equal(t, []string{"Campus"}, out.Location)
	assert.Equal(t, []string{"Faculty"}, out.Faculty, "headers the model invented are dropped")
	assert.Empty(t, out.Major)
	assert.Equal(t, []string{"Year of Study"}, out.Year)
}
