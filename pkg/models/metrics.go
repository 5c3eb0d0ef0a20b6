package models

// SentimentCounts is the per-sentiment segment tally used across metric
// shapes.
type SentimentCounts struct {
	Positive int64 `json:"positive"`
	Negative int64 `json:"negative"`
	Neutral  int64 `json:"neutral"`
}

// CategoryMetric is one row of a category breakdown.
type CategoryMetric struct {
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	SegmentCount int64           `json:"segment_count"`
	Sentiment    SentimentCounts `json:"sentiment"`
}

// DashboardMetrics is the precomputed per-unit aggregate returned by the
// get_dashboard_metrics database function. The pipeline consumes it as an
// opaque, already-aggregated snapshot.
type DashboardMetrics struct {
	UnitID          int64            `json:"unit_id"`
	TotalComments   int64            `json:"total_comments"`
	TotalSegments   int64            `json:"total_segments"`
	SuggestionCount int64            `json:"suggestion_count"`
	Sentiment       SentimentCounts  `json:"sentiment"`
	Categories      []CategoryMetric `json:"categories"`
}

// ExecutiveMetrics is one unit's row of the cross-unit rollup returned by
// get_all_executive_metrics.
type ExecutiveMetrics struct {
	UnitID        int64           `json:"unit_id"`
	UnitName      string          `json:"unit_name"`
	TotalSegments int64           `json:"total_segments"`
	Sentiment     SentimentCounts `json:"sentiment"`
	TopConcern    string          `json:"top_concern,omitempty"`
}

// ReportStats is the caller-supplied aggregate handed to the executive report
// builder.
type ReportStats struct {
	TotalComments   int64           `json:"total_comments"`
	TotalSegments   int64           `json:"total_segments"`
	SuggestionCount int64           `json:"suggestion_count"`
	Sentiment       SentimentCounts `json:"sentiment"`
}
