package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/models"
)

func TestRender_OmitsEmptySections(t *testing.T) {
	s := &models.Summary{
		Timestamp:       time.Date(2026, 8, 29, 15, 4, 0, 0, time.UTC),
		Accomplishments: []string{"did a thing"},
	}
	out := Render(s)

	if !strings.HasPrefix(out, "## Session 2026-08-29 15:04\n") {
		t.Errorf("header = %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "### Accomplishments\n- did a thing\n") {
		t.Errorf("missing accomplishments:\n%s", out)
	}
	for _, absent := range []string{"Blockers", "Next Steps", "Decisions", "Files Changed"} {
		if strings.Contains(out, absent) {
			t.Errorf("empty section %q rendered:\n%s", absent, out)
		}
	}
}

func TestRender_RoundTripsThroughExtract(t *testing.T) {
	orig := &models.Summary{
		Timestamp:       time.Date(2026, 8, 29, 15, 4, 0, 0, time.UTC),
		Accomplishments: []string{"a1", "a2"},
		Decisions:       []models.Decision{{Details: "d1", Rationale: "r1"}},
		Blockers:        []string{"b1"},
		NextSteps:       []string{"n1"},
	}
	got := Extract(Render(orig), orig.Timestamp)

	if len(got.Accomplishments) != 2 || len(got.Blockers) != 1 || len(got.NextSteps) != 1 {
		t.Errorf("round trip lost bullets: %+v", got)
	}
	if len(got.Decisions) != 1 || got.Decisions[0].Rationale != "r1" {
		t.Errorf("round trip lost decision fields: %+v", got.Decisions)
	}
}
