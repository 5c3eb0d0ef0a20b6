package models

import "fmt"

// Sentiment is the closed set of sentiment labels the model may assign.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Valid reports whether s is one of the allowed sentiment labels.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// RawFeedbackInput is the atomic unit of unanalyzed feedback. The ID
// round-trips through the model call unchanged; the model is instructed to
// echo it on every segment it produces.
type RawFeedbackInput struct {
	ID      int64  `json:"id"`
	RawText string `json:"raw_text"`
}

// Segment is a single-topic excerpt of a comment as produced by the model.
// Category, subcategory, and related unit are free-text names at this stage;
// reconciliation maps them to identifiers.
type Segment struct {
	RawInputID      int64     `json:"raw_input_id"`
	SegmentText     string    `json:"segment_text"`
	Sentiment       Sentiment `json:"sentiment"`
	CategoryName    string    `json:"category_name"`
	SubCategoryName string    `json:"sub_category_name,omitempty"`
	IsSuggestion    bool      `json:"is_suggestion"`
	RelatedUnitName string    `json:"related_unit_name,omitempty"`
}

// Validate checks the fields the model must fill. Unresolvable names are not
// errors (reconciliation nulls them); a missing text or bad enum is.
func (s Segment) Validate() error {
	if s.SegmentText == "" {
		return fmt.Errorf("segment_text must not be empty")
	}
	if !s.Sentiment.Valid() {
		return fmt.Errorf("invalid sentiment %q", s.Sentiment)
	}
	return nil
}

// ReconciledSegment is a Segment whose names have been resolved against a
// taxonomy snapshot and unit list. Unmatched names stay nil; the pipeline
// never substitutes a guessed identifier.
type ReconciledSegment struct {
	Segment
	CategoryID    *int64 `json:"category_id"`
	SubcategoryID *int64 `json:"subcategory_id"`
	RelatedUnitID *int64 `json:"related_unit_id,omitempty"`
}

// DiscoveredCategory is a category proposal produced by the discovery task.
type DiscoveredCategory struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
}

// ChatMessage is one turn of the conversational Q&A history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Validate checks the role against the closed set accepted by the chat route.
func (m ChatMessage) Validate() error {
	switch m.Role {
	case "user", "assistant":
		return nil
	}
	return fmt.Errorf("invalid chat role %q", m.Role)
}
