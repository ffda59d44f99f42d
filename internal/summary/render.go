package summary

import (
	"fmt"
	"strings"

	"github.com/starford/dagaz/internal/models"
)

// Title returns the display title for a session summary.
func Title(s *models.Summary) string {
	return "Session " + s.Timestamp.Format("2006-01-02 15:04")
}

// Render produces the markdown journal entry for a summary. Empty
// sections are omitted.
func Render(s *models.Summary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s\n", Title(s))

	writeList := func(heading string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString("\n### " + heading + "\n")
		for _, item := range items {
			sb.WriteString("- " + item + "\n")
		}
	}

	writeList("Accomplishments", s.Accomplishments)

	if len(s.Decisions) > 0 {
		sb.WriteString("\n### Decisions Made\n")
		for _, d := range s.Decisions {
			sb.WriteString("- " + d.Details + "\n")
			if d.Status != "" {
				sb.WriteString("  - Status: " + d.Status + "\n")
			}
			if d.Context != "" {
				sb.WriteString("  - Context: " + d.Context + "\n")
			}
			if d.Rationale != "" {
				sb.WriteString("  - Rationale: " + d.Rationale + "\n")
			}
			for _, c := range d.Consequences {
				sb.WriteString("  - Consequence: " + c + "\n")
			}
		}
	}

	writeList("Blockers", s.Blockers)
	writeList("Next Steps", s.NextSteps)
	writeList("Files Changed", s.FilesChanged)

	return sb.String()
}

// JoinLines flattens a string list into newline-separated text for
// rich-text page properties.
func JoinLines(items []string) string {
	return strings.Join(items, "\n")
}
