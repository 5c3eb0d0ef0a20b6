package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campus-pulse/insight-engine/pkg/apperrors"
	"github.com/campus-pulse/insight-engine/pkg/llm"
)

// ErrorBody is the uniform error envelope: every failure leaves the service
// as {error, details?} with an appropriate status code.
type ErrorBody struct {
	Error   string         `json:"error"`
	Details map[string]any `json:"details,omitempty"`
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ErrorResponse writes the uniform error envelope.
func ErrorResponse(w http.ResponseWriter, statusCode int, message string, details map[string]any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(ErrorBody{Error: message, Details: details})
}

// ValidationResponse writes a 400 enumerating the offending fields.
func ValidationResponse(w http.ResponseWriter, fields map[string]string) error {
	details := make(map[string]any, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return ErrorResponse(w, http.StatusBadRequest, "validation failed", details)
}

// MapError converts a pipeline error to its HTTP status, message, and
// details. Invalid model output maps to 502 and carries the raw excerpt so
// a caller can diagnose (and re-trigger) the request; everything internal
// maps to 500 without leaking provider detail.
func MapError(err error) (int, string, map[string]any) {
	if errors.Is(err, apperrors.ErrNotFound) {
		return http.StatusNotFound, "not found", nil
	}

	var llmErr *llm.Error
	if errors.As(err, &llmErr) {
		switch llmErr.Type {
		case llm.ErrorTypeMisconfigured:
			return http.StatusInternalServerError, "model service is not configured",
				map[string]any{"hint": llmErr.Message}
		case llm.ErrorTypeInvalidOutput:
			details := map[string]any{}
			if llmErr.RawExcerpt != "" {
				details["raw_excerpt"] = llmErr.RawExcerpt
			}
			return http.StatusBadGateway, "model returned invalid output", details
		}
	}

	return http.StatusInternalServerError, "internal error", nil
}
