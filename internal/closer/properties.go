package closer

import (
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/notion"
	"github.com/starford/dagaz/internal/summary"
)

// DefaultProject is used when a requested project label is not in the
// allowed set.
const DefaultProject = "dagaz"

// allowedProjects is the closed set of labels the session database
// accepts for its "Project" select.
var allowedProjects = map[string]bool{
	"dagaz":    true,
	"kenaz":    true,
	"infra":    true,
	"research": true,
}

// NormalizeProject coerces an arbitrary label into the allowed set.
func NormalizeProject(name string) string {
	if allowedProjects[name] {
		return name
	}
	return DefaultProject
}

// PageProperties maps a session summary onto the session database
// schema. Optional fields with no source data are omitted entirely
// rather than sent as empty values.
func PageProperties(s *models.Summary, project string) notion.Properties {
	props := notion.Properties{
		"Session Title": notion.TitleProperty(summary.Title(s)),
		"Date":          notion.DateProperty(s.Timestamp.Format("2006-01-02")),
		"Complete":      notion.CheckboxProperty(true),
		"Follow-up Required": notion.CheckboxProperty(
			len(s.NextSteps) > 0 || len(s.Blockers) > 0),
		"Project": notion.SelectProperty(NormalizeProject(project)),
	}

	if len(s.Accomplishments) > 0 {
		props["Accomplishments"] = notion.RichTextProperty(summary.JoinLines(s.Accomplishments))
	}
	if len(s.NextSteps) > 0 {
		props["Next Steps"] = notion.RichTextProperty(summary.JoinLines(s.NextSteps))
	}
	if len(s.Blockers) > 0 {
		props["Blockers"] = notion.RichTextProperty(summary.JoinLines(s.Blockers))
	}
	if len(s.FilesChanged) > 0 {
		props["Files Changed"] = notion.RichTextProperty(summary.JoinLines(s.FilesChanged))
	}
	if len(s.Decisions) > 0 {
		details := make([]string, len(s.Decisions))
		for i, d := range s.Decisions {
			details[i] = d.Details
		}
		props["Decisions Made"] = notion.RichTextProperty(summary.JoinLines(details))
	}

	return props
}
