package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Verdict is the closed overall judgement enum for executive reports.
type Verdict string

const (
	VerdictExcellent        Verdict = "Excellent"
	VerdictGood             Verdict = "Good"
	VerdictNeedsImprovement Verdict = "Needs Improvement"
	VerdictCritical         Verdict = "Critical"
)

// Valid reports whether v is one of the allowed verdicts.
func (v Verdict) Valid() bool {
	switch v {
	case VerdictExcellent, VerdictGood, VerdictNeedsImprovement, VerdictCritical:
		return true
	}
	return false
}

// ReportPoint is one strength, concern, or recommendation with its verbatim
// supporting quote from the sampled segments.
type ReportPoint struct {
	Point    string `json:"point"`
	Evidence string `json:"evidence,omitempty"`
}

// ExecutiveReport is the fixed-shape synthesis produced for leadership: one
// summary, a verdict, up to three points per list (fewer only when evidence
// is scarce, never more), and a closing statement.
type ExecutiveReport struct {
	Summary         string        `json:"summary"`
	Verdict         Verdict       `json:"verdict"`
	Strengths       []ReportPoint `json:"strengths"`
	Concerns        []ReportPoint `json:"concerns"`
	Recommendations []ReportPoint `json:"recommendations"`
	Closing         string        `json:"closing"`
}

// maxReportPoints caps each report list; the prompt asks for exactly three
// when evidence allows, and the parser rejects anything above.
const maxReportPoints = 3

// Validate enforces the report schema after JSON parsing. It is the
// schema-conformance gate distinct from JSON syntax: wrong enum values,
// missing required prose, or oversized lists are upstream-invalid-output.
func (r ExecutiveReport) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("summary must not be empty")
	}
	if !r.Verdict.Valid() {
		return fmt.Errorf("invalid verdict %q", r.Verdict)
	}
	if r.Closing == "" {
		return fmt.Errorf("closing must not be empty")
	}
	for name, points := range map[string][]ReportPoint{
		"strengths":       r.Strengths,
		"concerns":        r.Concerns,
		"recommendations": r.Recommendations,
	} {
		if len(points) > maxReportPoints {
			return fmt.Errorf("%s has %d entries, maximum is %d", name, len(points), maxReportPoints)
		}
		for i, p := range points {
			if p.Point == "" {
				return fmt.Errorf("%s[%d] has empty point", name, i)
			}
		}
	}
	return nil
}

// SavedReport is a persisted executive report for a unit, kept so the
// conversational endpoint can ground answers in the latest synthesis.
type SavedReport struct {
	ID            uuid.UUID       `json:"id"`
	UnitID        int64           `json:"unit_id"`
	SurveyID      *int64          `json:"survey_id,omitempty"`
	Report        ExecutiveReport `json:"report"`
	QuoteVerified bool            `json:"quote_verified"`
	CreatedAt     time.Time       `json:"created_at"`
}
