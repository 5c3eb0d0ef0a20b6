package prompts

import (
	"fmt"
	"strings"

	"github.com/campus-pulse/insight-engine/pkg/models"
)

// BuildColumnMappingPrompt creates the prompt for mapping spreadsheet columns
// of an uploaded survey export to organizational units and column types.
func BuildColumnMappingPrompt(
	institution string,
	headers []string,
	samples map[string][]string,
	units []models.OrganizationUnit,
) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a data import assistant for %s. You map survey spreadsheet columns to the units and field types of a feedback system.\n\n", institution)
	writeUntrustedDataNotice(&b)

	b.WriteString("## Organizational Units\n\n")
	for _, u := range units {
		fmt.Fprintf(&b, "- id %d: %s", u.ID, u.Name)
		if u.ShortName != "" {
			fmt.Fprintf(&b, " (%s)", u.ShortName)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("## Columns\n\n")
	// Samples render in header order so identical inputs yield identical
	// prompts regardless of map iteration.
	for _, h := range headers {
		fmt.Fprintf(&b, "### Header: %s\n", StripTags(h))
		b.WriteString("Sample values:\n")
		b.WriteString(SanitizeValue(samples[h]))
		b.WriteString("\n\n")
	}

	b.WriteString("## Task\n\n")
	b.WriteString("1. For each header, decide which unit the column's feedback belongs to, using the header text and sample values.\n")
	b.WriteString("2. Classify the column type: \"feedback\" for free-text responses, \"rating\" for numeric scores, \"metadata\" for respondent attributes, \"ignore\" for empty or administrative columns.\n")
	b.WriteString("3. When a rating column encodes a scale, state the rule (for example \"1-5, 5 is best\").\n")
	b.WriteString("4. Use a unit id from the list above; use null when no unit clearly applies.\n")

	b.WriteString("\n## Output Schema\n\n")
	b.WriteString("Respond with a JSON object:\n")
	b.WriteString("- `mappings`: object keyed by the exact header text, each value with:\n")
	b.WriteString("  - `unit_id`: numeric id from the unit list, or null\n")
	b.WriteString("  - `type`: exactly one of \"feedback\", \"rating\", \"metadata\", \"ignore\"\n")
	b.WriteString("  - `rule`: optional interpretation rule string\n")
	writeJSONOnlyRule(&b)

	return b.String()
}

// BuildIdentityMappingPrompt creates the prompt for spotting which columns of
// an upload identify the respondent's location, faculty, major, and year.
func BuildIdentityMappingPrompt(headers []string) string {
	var b strings.Builder

	b.WriteString("You are a data import assistant. You identify respondent-identity columns in survey spreadsheet headers.\n\n")
	writeUntrustedDataNotice(&b)

	b.WriteString("## Headers\n\n")
	b.WriteString(SanitizeValue(headers))
	b.WriteString("\n\n")

	b.WriteString("## Task\n\n")
	b.WriteString("1. From the headers above, list the ones that identify the respondent's campus location, faculty, major/program, and year of study.\n")
	b.WriteString("2. Copy header text exactly. A header may appear under at most one key.\n")
	b.WriteString("3. Leave a list empty when no header fits.\n")

	b.WriteString("\n## Output Schema\n\n")
	b.WriteString("Respond with a JSON object:\n")
	b.WriteString("- `mapping`: object with keys `location`, `faculty`, `major`, `year`, each an array of exact header strings\n")
	writeJSONOnlyRule(&b)

	return b.String()
}
