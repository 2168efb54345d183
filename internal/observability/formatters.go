// Package observability provides logging, metrics, tracing and formatted
// output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 72
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(boxWidth)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a bordered box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	body := titleStyle.Render(title) + "\n\n" + content
	fmt.Fprintln(p.out, boxStyle.Render(body))
}

func label(s string) string {
	return labelStyle.Render(s)
}

// PrintAnalysis outputs a human-readable summary of one candidate analysis.
func (p *Printer) PrintAnalysis(a *types.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	name := a.Candidate.Name
	if a.Label != "" {
		name = fmt.Sprintf("%s (%s)", name, a.Label)
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Candidate:"), name))
	sb.WriteString(fmt.Sprintf("%s %.2f%%  %s\n", label("Match:"), a.FinalScore, a.Explanation.OverallAssessment))
	sb.WriteString(fmt.Sprintf("  semantic %.2f%% (%s)  skills %.2f%%\n",
		a.ScoreBreakdown.SemanticScore, a.ScoreBreakdown.SemanticSource, a.ScoreBreakdown.SkillOverlapScore))
	sb.WriteString(fmt.Sprintf("%s %d/100\n", label("ATS:"), a.ATSTotal))
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Recommendation:"), a.Explanation.Recommendation))

	if len(a.GapReport.MissingSkills) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s (%.2f%% gap)\n", label("Missing:"),
			joinLimited(a.GapReport.MissingSkills, maxItemsToShow), a.GapReport.GapPercentage))
	}
	if a.RoleGap != nil {
		sb.WriteString(fmt.Sprintf("%s %s readiness %.2f%%\n", label("Role:"), a.RoleGap.Role, a.RoleGap.ReadinessScore))
	}
	if a.RoleGapError != nil {
		sb.WriteString(fmt.Sprintf("%s %s (%s)\n", label("Role:"), a.RoleGapError.Error, a.RoleGapError.Role))
	}
	if len(a.Explanation.TopMatchingSentences) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", label("Best sentence:"), a.Explanation.TopMatchingSentences[0].Sentence))
	}

	p.printBox("ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanking outputs the ranked candidates of a batch.
func (p *Printer) PrintRanking(resp *types.RankResponse) {
	if resp == nil || len(resp.Candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total candidates: %d\n\n", resp.TotalCandidates))
	for _, c := range resp.Candidates {
		if c.Analysis == nil {
			sb.WriteString(fmt.Sprintf(" -  %s  error: %s\n", c.Label, c.Error))
			continue
		}
		sb.WriteString(fmt.Sprintf("#%d  %s  %.2f%%  ATS %d  %s\n",
			c.Rank, c.Label, c.Analysis.FinalScore, c.Analysis.ATSTotal, c.Analysis.Explanation.OverallAssessment))
	}

	p.printBox("RANKING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoleGap outputs a role readiness report and its roadmap.
func (p *Printer) PrintRoleGap(resp *types.RoleGapResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	gap := resp.Gaps
	sb.WriteString(fmt.Sprintf("%s %s\n", label("Role:"), gap.Role))
	sb.WriteString(fmt.Sprintf("%s %.2f%%\n", label("Readiness:"), gap.ReadinessScore))
	if len(gap.MatchedRequired) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", label("Have:"), strings.Join(gap.MatchedRequired, ", ")))
	}
	if len(gap.MissingRequired) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", label("Missing required:"), strings.Join(gap.MissingRequired, ", ")))
	}
	if len(gap.MissingPreferred) > 0 {
		sb.WriteString(fmt.Sprintf("%s %s\n", label("Missing preferred:"), strings.Join(gap.MissingPreferred, ", ")))
	}

	p.printBox("ROLE READINESS", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintRoadmap(&resp.Roadmap)
}

// PrintRoadmap outputs the learning plan.
func (p *Printer) PrintRoadmap(r *types.Roadmap) {
	if r == nil {
		return
	}
	if len(r.Entries) == 0 {
		p.printBox("ROADMAP", r.Message)
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d skills, about %s\n\n", r.TotalSkillsToLearn, r.EstimatedTotalTime))
	for _, e := range r.Entries {
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", e.Priority, e.Skill, e.EstimatedTime))
		if len(e.Milestones) > 0 {
			sb.WriteString(fmt.Sprintf("   milestones: %s\n", strings.Join(e.Milestones, " → ")))
		}
	}

	p.printBox("ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoles outputs the role catalog.
func (p *Printer) PrintRoles(names []string) {
	if len(names) == 0 {
		return
	}
	p.printBox("ROLES", "  • "+strings.Join(names, "\n  • "))
}

func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(items[:limit], ", "), len(items)-limit)
}
