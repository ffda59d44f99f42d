// Package summary builds the structured session record from free text
// and renders it back as a markdown journal entry.
package summary

import (
	"regexp"
	"strings"
	"time"

	"github.com/starford/dagaz/internal/models"
)

var (
	headingRe   = regexp.MustCompile(`^#{1,6}\s*(.+?)\s*$`)
	bulletRe    = regexp.MustCompile(`^\s*[-*]\s+(.*)`)
	subBulletRe = regexp.MustCompile(`^\s{2,}[-*]\s+(\w[\w-]*):\s*(.*)`)
)

type section int

const (
	secAccomplishments section = iota
	secDecisions
	secBlockers
	secNextSteps
)

// classifySection maps a heading to a summary section. Unknown headings
// keep the current section.
func classifySection(heading string, current section) section {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "accomplish"), strings.Contains(h, "done"):
		return secAccomplishments
	case strings.Contains(h, "decision"):
		return secDecisions
	case strings.Contains(h, "blocker"), strings.Contains(h, "blocked"):
		return secBlockers
	case strings.Contains(h, "next"), strings.Contains(h, "follow"), strings.Contains(h, "todo"):
		return secNextSteps
	}
	return current
}

// Extract parses a free-text session summary into its structured form.
// Top-level bullets are assigned to the section opened by the preceding
// heading; text before any heading counts as accomplishments. Decision
// bullets may carry indented sub-bullets (Status:, Context:, Rationale:,
// Consequence:) that fill the corresponding decision fields.
func Extract(freeText string, now time.Time) *models.Summary {
	s := &models.Summary{Timestamp: now}
	current := secAccomplishments

	for _, line := range strings.Split(freeText, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			current = classifySection(m[1], current)
			continue
		}

		// Sub-bullets refine the most recent decision.
		if m := subBulletRe.FindStringSubmatch(line); m != nil && current == secDecisions && len(s.Decisions) > 0 {
			d := &s.Decisions[len(s.Decisions)-1]
			switch strings.ToLower(m[1]) {
			case "status":
				d.Status = m[2]
			case "context":
				d.Context = m[2]
			case "rationale":
				d.Rationale = m[2]
			case "consequence", "consequences":
				d.Consequences = append(d.Consequences, m[2])
			}
			continue
		}

		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			// Plain prose before any heading still counts.
			if current == secAccomplishments {
				s.Accomplishments = append(s.Accomplishments, strings.TrimSpace(line))
			}
			continue
		}

		text := strings.TrimSpace(m[1])
		if text == "" {
			continue
		}
		switch current {
		case secAccomplishments:
			s.Accomplishments = append(s.Accomplishments, text)
		case secDecisions:
			s.Decisions = append(s.Decisions, models.Decision{Date: now, Details: text})
		case secBlockers:
			s.Blockers = append(s.Blockers, text)
		case secNextSteps:
			s.NextSteps = append(s.NextSteps, text)
		}
	}

	return s
}
