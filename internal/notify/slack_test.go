package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/slack-go/slack"

	"incidentlens/internal/domain"
)

type fakePoster struct {
	channel string
	options int
	err     error
}

func (f *fakePoster) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	f.channel = channelID
	f.options = len(options)
	return "", "", f.err
}

func TestFormatSummaryMessage(t *testing.T) {
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	summary := domain.Summary{
		TotalIncidents:    42,
		AvgResolutionTime: 18.5,
		OverdueIncidents:  7,
		UniqueTeams:       4,
		DateRange:         domain.DateRange{Start: &start, End: &end},
	}

	msg := FormatSummaryMessage("Incident Response", summary, "./reports/Incident_Response_20240301.md")

	for _, want := range []string{
		"*Incident analysis complete for Incident Response*",
		"Incidents: 42",
		"Avg resolution: 18.5h",
		"Overdue: 7",
		"Range: 2024-01-10 to 2024-03-05",
		"Report: ./reports/Incident_Response_20240301.md",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatSummaryMessageWithoutDateRange(t *testing.T) {
	msg := FormatSummaryMessage("T", domain.Summary{}, "r.md")
	if strings.Contains(msg, "Range:") {
		t.Fatalf("expected no range line without dates:\n%s", msg)
	}
}

func TestPostReportSummary(t *testing.T) {
	poster := &fakePoster{}
	err := PostReportSummary(poster, "C123", "T", domain.Summary{TotalIncidents: 1}, "r.md")
	if err != nil {
		t.Fatalf("PostReportSummary failed: %v", err)
	}
	if poster.channel != "C123" {
		t.Fatalf("expected post to C123, got %q", poster.channel)
	}
	if poster.options == 0 {
		t.Fatal("expected message options passed through")
	}
}
