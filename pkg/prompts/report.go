package prompts

import (
	"fmt"
	"strings"

	"github.com/campus-pulse/insight-engine/pkg/models"
)

// BuildExecutiveReportPrompt creates the prompt for synthesizing an
// executive report from pre-aggregated statistics, a category breakdown, and
// a sample of reconciled segments.
func BuildExecutiveReportPrompt(
	institution string,
	unitName string,
	unitDesc string,
	stats models.ReportStats,
	breakdown []models.CategoryMetric,
	sample []models.Segment,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an executive analyst preparing a leadership briefing for %s.\n\n", institution)
	writeUntrustedDataNotice(&b)

	fmt.Fprintf(&b, "## Unit\n\nName: %s\n", unitName)
	if unitDesc != "" {
		fmt.Fprintf(&b, "Description: %s\n", unitDesc)
	}
	b.WriteString("\n")

	b.WriteString("## Aggregated Statistics\n\n")
	fmt.Fprintf(&b, "- Comments analyzed: %d\n", stats.TotalComments)
	fmt.Fprintf(&b, "- Segments extracted: %d\n", stats.TotalSegments)
	fmt.Fprintf(&b, "- Suggestions: %d\n", stats.SuggestionCount)
	fmt.Fprintf(&b, "- Sentiment: %d positive / %d negative / %d neutral\n\n",
		stats.Sentiment.Positive, stats.Sentiment.Negative, stats.Sentiment.Neutral)

	if len(breakdown) > 0 {
		b.WriteString("## Category Breakdown\n\n")
		for _, c := range breakdown {
			fmt.Fprintf(&b, "- %s: %d segments (%d positive, %d negative, %d neutral)\n",
				c.CategoryName, c.SegmentCount,
				c.Sentiment.Positive, c.Sentiment.Negative, c.Sentiment.Neutral)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sampled Feedback Segments\n\n")
	b.WriteString(SanitizeValue(sample))
	b.WriteString("\n\n")

	b.WriteString("## Task\n\n")
	b.WriteString("1. Write a one-paragraph executive summary of this unit's feedback.\n")
	b.WriteString("2. Choose an overall verdict from exactly: \"Excellent\", \"Good\", \"Needs Improvement\", \"Critical\".\n")
	b.WriteString("3. List exactly 3 strengths, 3 concerns, and 3 recommendations. If the sampled segments cannot support 3 of a kind, list fewer; never invent support.\n")
	b.WriteString("4. For each strength and concern, quote supporting evidence VERBATIM from the sampled segments above. Never paraphrase a quote and never invent one.\n")
	b.WriteString("5. Finish with a one-sentence closing statement.\n")

	b.WriteString("\n## Output Schema\n\n")
	b.WriteString("Respond with a JSON object:\n")
	b.WriteString("- `summary`: string\n")
	b.WriteString("- `verdict`: exactly one of \"Excellent\", \"Good\", \"Needs Improvement\", \"Critical\"\n")
	b.WriteString("- `strengths`: array of at most 3 objects {`point`: string, `evidence`: verbatim quote}\n")
	b.WriteString("- `concerns`: array of at most 3 objects {`point`: string, `evidence`: verbatim quote}\n")
	b.WriteString("- `recommendations`: array of at most 3 objects {`point`: string}\n")
	b.WriteString("- `closing`: string\n")
	writeJSONOnlyRule(&b)

	return b.String()
}

// ReportSystemMessage returns the system message for report synthesis.
func ReportSystemMessage() string {
	return "You are a careful executive analyst. You only cite evidence that appears verbatim in the supplied data and you follow the output schema exactly."
}
