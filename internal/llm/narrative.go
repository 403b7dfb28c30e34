package llm

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"incidentlens/internal/analysis"
	"incidentlens/internal/domain"
)

const DefaultModel = "claude-sonnet-4-5-20250929"

const narrativeSystemPrompt = `You are an engineering operations analyst. Given incident
analysis metrics, write a short executive summary (one paragraph, at most five
sentences) highlighting the most important findings: overall volume, SLA
compliance problems, overdue hotspots, and technical debt pressure. Plain
prose only, no headings, no bullet points.`

// NarrativeSummary asks Anthropic for a one-paragraph executive summary of a
// run's results. Callers treat a failure as "no narrative", never as a
// pipeline failure.
func NarrativeSummary(ctx context.Context, apiKey, model string, summary domain.Summary, sla []analysis.SLAResult, debt analysis.TechDebtIndicators) (string, error) {
	if apiKey == "" {
		return "", fmt.Errorf("no API key configured")
	}
	if model == "" {
		model = DefaultModel
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: narrativeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(BuildNarrativePrompt(summary, sla, debt))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("Anthropic API error: %w", err)
	}

	for _, block := range message.Content {
		if block.Type == "text" {
			log.Printf("llm narrative response size=%d tokens_in=%d tokens_out=%d",
				len(block.Text), message.Usage.InputTokens, message.Usage.OutputTokens)
			return strings.TrimSpace(block.Text), nil
		}
	}
	return "", fmt.Errorf("no text content in Anthropic response")
}

// BuildNarrativePrompt renders the metrics the model summarizes. Split out so
// tests can pin the prompt without a network call.
func BuildNarrativePrompt(summary domain.Summary, sla []analysis.SLAResult, debt analysis.TechDebtIndicators) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total incidents: %d\n", summary.TotalIncidents)
	fmt.Fprintf(&b, "Average resolution time: %.1f hours\n", summary.AvgResolutionTime)
	fmt.Fprintf(&b, "Overdue incidents: %d\n", summary.OverdueIncidents)
	fmt.Fprintf(&b, "Unique teams: %d\n", summary.UniqueTeams)
	if len(sla) > 0 {
		b.WriteString("SLA compliance by priority:\n")
		for _, r := range sla {
			fmt.Fprintf(&b, "- %s: %d incidents, %.1f%% within %gh\n",
				r.Priority, r.TotalIncidents, r.SLAPercentage, r.SLAThreshold)
		}
	}
	fmt.Fprintf(&b, "Tech-debt share of incidents: %.1f%%\n", debt.TotalDebtPercentage)
	for _, t := range debt.DebtByTeam {
		fmt.Fprintf(&b, "- %s: %d debt incidents\n", t.Team, t.DebtCount)
	}
	return b.String()
}
