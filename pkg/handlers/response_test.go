package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campus-pulse/insight-engine/pkg/apperrors"
	"github.com/campus-pulse/insight-engine/pkg/llm"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load unit: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"misconfigured", llm.NewError(llm.ErrorTypeMisconfigured, "no key", nil), http.StatusInternalServerError},
		{"invalid output", llm.NewInvalidOutputError("bad json", "raw text", nil), http.StatusBadGateway},
		{"wrapped invalid output", fmt.Errorf("invoke: %w", llm.NewInvalidOutputError("bad", "raw", nil)), http.StatusBadGateway},
		{"transport", llm.NewError(llm.ErrorTypeTransport, "unreachable", nil), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, _ := MapError(tt.err)
			assert.Equal(t, tt.expectedStatus, status)
		})
	}
}

func TestMapError_InvalidOutputCarriesExcerpt(t *testing.T) {
	err := llm.NewInvalidOutputError("bad json", "the raw model text", nil)
	status, message, details := MapError(err)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "model returned invalid output", message)
	assert.Equal(t, "the raw model text", details["raw_excerpt"])
}

func TestMapError_InternalHidesDetail(t *testing.T) {
	_, message, details := MapError(errors.New("pq: relation does not exist"))
	assert.Equal(t, "internal error", message)
	assert.Nil(t, details, "internal failures never leak provider or database detail")
}
