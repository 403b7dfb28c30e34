package notify

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"incidentlens/internal/domain"
)

// Poster is the slice of the Slack client the notifier needs; *slack.Client
// satisfies it.
type Poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// PostReportSummary posts the overview of a finished analysis run to the
// report channel.
func PostReportSummary(api Poster, channelID, teamName string, summary domain.Summary, reportPath string) error {
	msg := FormatSummaryMessage(teamName, summary, reportPath)
	_, _, err := api.PostMessage(channelID, slack.MsgOptionText(msg, false))
	return err
}

// FormatSummaryMessage renders the Slack message body for a run.
func FormatSummaryMessage(teamName string, summary domain.Summary, reportPath string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Incident analysis complete for %s*\n", teamName)
	fmt.Fprintf(&b, "Incidents: %d | Avg resolution: %.1fh | Overdue: %d | Teams: %d\n",
		summary.TotalIncidents, summary.AvgResolutionTime, summary.OverdueIncidents, summary.UniqueTeams)
	if summary.DateRange.Start != nil && summary.DateRange.End != nil {
		fmt.Fprintf(&b, "Range: %s to %s\n",
			summary.DateRange.Start.Format("2006-01-02"), summary.DateRange.End.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Report: %s", reportPath)
	return b.String()
}
