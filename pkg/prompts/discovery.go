package prompts

import (
	"fmt"
	"strings"

	"github.com/campus-pulse/insight-engine/pkg/models"
)

// BuildCategoryDiscoveryPrompt creates the prompt for discovering new
// category candidates from uncategorized comments. Existing categories are
// listed so the model extends the taxonomy instead of duplicating it.
func BuildCategoryDiscoveryPrompt(
	institution string,
	unitName string,
	current []models.Category,
	instructions []string,
	comments []string,
) string {
	var b strings.Builder

	writePersona(&b, institution)
	writeUntrustedDataNotice(&b)

	fmt.Fprintf(&b, "## Unit\n\n%s\n\n", unitName)

	b.WriteString("## Existing Categories\n\n")
	if len(current) == 0 {
		b.WriteString("(none yet)\n")
	}
	for _, c := range current {
		fmt.Fprintf(&b, "- %s", c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, ": %s", c.Description)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(instructions) > 0 {
		b.WriteString("## Administrator Instructions\n\n")
		for _, ins := range instructions {
			fmt.Fprintf(&b, "- %s\n", ins)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Comments\n\n")
	b.WriteString(SanitizeValue(comments))
	b.WriteString("\n\n")

	b.WriteString("## Task\n\n")
	b.WriteString("1. Identify recurring themes in the comments that none of the existing categories cover.\n")
	b.WriteString("2. Propose a new category for each such theme. Do not repeat or rename an existing category.\n")
	b.WriteString("3. Prefer a small number of broad, reusable categories over many narrow ones.\n")
	b.WriteString("4. If every theme is already covered, return an empty list.\n")

	b.WriteString("\n## Output Schema\n\n")
	b.WriteString("Respond with a JSON object:\n")
	b.WriteString("- `categories`: array of proposals (may be empty), each with:\n")
	b.WriteString("  - `name`: short category name in title case\n")
	b.WriteString("  - `description`: one sentence describing what belongs in it\n")
	b.WriteString("  - `keywords`: up to 5 representative words from the comments\n")
	writeJSONOnlyRule(&b)

	return b.String()
}
