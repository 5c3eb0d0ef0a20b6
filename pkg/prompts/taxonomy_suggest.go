package prompts

import (
	"fmt"
	"strings"

	"github.com/campus-pulse/insight-engine/pkg/models"
)

// SuggestionMode selects whether the taxonomy suggestion task proposes
// top-level categories or subcategories under existing ones.
type SuggestionMode string

const (
	SuggestCategories    SuggestionMode = "CATEGORIES"
	SuggestSubcategories SuggestionMode = "SUBCATEGORIES"
)

// Valid reports whether m is a known suggestion mode.
func (m SuggestionMode) Valid() bool {
	return m == SuggestCategories || m == SuggestSubcategories
}

// BuildTaxonomySuggestionPrompt creates the prompt for proposing a starter
// taxonomy (or subcategory refinements) for a unit from sample comments.
func BuildTaxonomySuggestionPrompt(
	institution string,
	unitName string,
	unitDesc string,
	sampleComments []string,
	existing []models.Category,
	mode SuggestionMode,
) string {
	var b strings.Builder

	writePersona(&b, institution)
	writeUntrustedDataNotice(&b)

	fmt.Fprintf(&b, "## Unit\n\nName: %s\n", unitName)
	if unitDesc != "" {
		fmt.Fprintf(&b, "Description: %s\n", unitDesc)
	}
	b.WriteString("\n")

	if len(existing) > 0 {
		b.WriteString("## Existing Categories\n\n")
		for _, c := range existing {
			fmt.Fprintf(&b, "- %s", c.Name)
			if c.Description != "" {
				fmt.Fprintf(&b, ": %s", c.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## Sample Comments\n\n")
	b.WriteString(SanitizeValue(sampleComments))
	b.WriteString("\n\n")

	b.WriteString("## Task\n\n")
	switch mode {
	case SuggestSubcategories:
		b.WriteString("1. Propose subcategories that refine the existing categories above, grounded in the sample comments.\n")
		b.WriteString("2. Name each suggestion as \"Category / Subcategory\" using an exact existing category name before the slash.\n")
		b.WriteString("3. Do not propose new top-level categories.\n")
	default:
		b.WriteString("1. Propose top-level categories that together cover the themes in the sample comments.\n")
		b.WriteString("2. Aim for 4 to 8 broad categories; do not duplicate an existing category.\n")
		b.WriteString("3. Keep names short and institution-neutral.\n")
	}

	b.WriteString("\n## Output Schema\n\n")
	b.WriteString("Respond with a JSON object:\n")
	b.WriteString("- `suggestions`: array of proposals, each with:\n")
	b.WriteString("  - `name`: the proposed name\n")
	b.WriteString("  - `description`: one sentence scope statement\n")
	b.WriteString("  - `keywords`: up to 5 representative words (optional)\n")
	writeJSONOnlyRule(&b)

	return b.String()
}
