// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/upskill-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + "\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintJobRequirements outputs a human-readable summary of the parsed job.
func (p *Printer) PrintJobRequirements(requirements *types.JobRequirements) {
	if requirements == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", requirements.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", requirements.Role))
	sb.WriteString("\n")
	writeList(&sb, "Required Skills:", requirements.RequiredSkills, maxItemsToShow)
	writeList(&sb, "Tools:", requirements.Tools, 3)

	p.printBox("PARSED JOB REQUIREMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCandidateProfile outputs a human-readable summary of the parsed resume.
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Education != "" {
		sb.WriteString(fmt.Sprintf("Education: %s\n\n", profile.Education))
	}
	writeList(&sb, "Skills:", profile.Skills, maxItemsToShow)
	writeList(&sb, "Experience:", profile.Experience, 3)

	p.printBox("PARSED CANDIDATE PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapAnalysis outputs the skill gap partition.
func (p *Printer) PrintGapAnalysis(analysis *types.SkillGapAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	writeList(&sb, "Missing:", analysis.MissingSkills, maxItemsToShow)
	writeList(&sb, "Weak:", analysis.WeakSkills, maxItemsToShow)
	writeList(&sb, "Matched:", analysis.MatchedSkills, maxItemsToShow)

	p.printBox("SKILL GAP ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedSkills outputs the top ranked skills with scores and gap types.
func (p *Printer) PrintRankedSkills(ranked []types.RankedSkill) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills ranked: %d\n\n", len(ranked)))

	count := min(len(ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		rs := ranked[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, rs.Skill))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (%s)\n", rs.PriorityScore, rs.GapType))
		if rs.Insight != nil && rs.Insight.UsageContext != "" {
			context := rs.Insight.UsageContext
			if len(context) > 40 {
				context = context[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Context: %s\n", context))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(ranked)-maxItemsToShow))
	}

	p.printBox("RANKED SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoadmaps outputs each skill's learning stages with resource counts.
func (p *Printer) PrintRoadmaps(roadmaps []types.SkillRoadmap) {
	if len(roadmaps) == 0 {
		return
	}

	var sb strings.Builder
	for i, roadmap := range roadmaps {
		sb.WriteString(fmt.Sprintf("%s\n", roadmap.Skill))
		for _, stage := range roadmap.Stages {
			sb.WriteString(fmt.Sprintf("  %s: %d resources\n", stage.Level, len(stage.Resources)))
		}
		if i < len(roadmaps)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LEARNING ROADMAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProjects outputs the recommended practice projects.
func (p *Printer) PrintProjects(projects []types.ProjectRecommendation) {
	if len(projects) == 0 {
		return
	}

	var sb strings.Builder
	for i, project := range projects {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, project.Title))
		description := project.Description
		if len(description) > 50 {
			description = description[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("    %s\n", description))
		if i < len(projects)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PROJECT RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSummary outputs the research summary.
func (p *Printer) PrintSummary(summary string) {
	if summary == "" {
		return
	}
	p.printBox("RESEARCH SUMMARY", wrapText(summary, boxWidth-4))
}

// wrapText breaks a paragraph into lines no longer than width
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
