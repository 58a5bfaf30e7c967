// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/aetherlearn/pathweaver/internal/types"
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

// PrintStatus outputs a one-line progress summary for a search run.
func (p *Printer) PrintStatus(status *types.SearchStatus) {
	if status == nil {
		return
	}
	fmt.Fprintf(p.out, "[%3d%%] %-13s %s\n", status.Progress, status.State, status.Message)
}

// PrintRankedItems outputs the top N ranked content items with scores.
func (p *Printer) PrintRankedItems(items []types.ContentItem) {
	if len(items) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total resources ranked: %d\n\n", len(items)))

	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		item := items[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, item.Title))
		sb.WriteString(fmt.Sprintf("    %s · %s · %d min\n", item.ResourceType, item.Source, item.EstimatedTimeMinutes))
		sb.WriteString(fmt.Sprintf("    Score: %.2f (quality %.2f, credibility %.2f)\n",
			item.FinalScore, item.QualityScore, item.CredibilityScore))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more\n", len(items)-maxItemsToShow))
	}

	p.printBox("RANKED CONTENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLearningPath outputs a human-readable summary of a finished path.
func (p *Printer) PrintLearningPath(path *types.LearningPath) {
	if path == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:       %s\n", path.Title))
	sb.WriteString(fmt.Sprintf("Difficulty:  %s\n", path.Difficulty))
	sb.WriteString(fmt.Sprintf("Est. hours:  %.1f\n", path.EstimatedHours))
	if len(path.Prerequisites) > 0 {
		sb.WriteString(fmt.Sprintf("Requires:    %s\n", strings.Join(path.Prerequisites, ", ")))
	}
	sb.WriteString("\n")

	for _, module := range path.Modules {
		sb.WriteString(fmt.Sprintf("%d. %s (%d resources)\n", module.Order, module.Title, len(module.Resources)))
		count := min(len(module.Resources), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("   • %s\n", module.Resources[i].Title))
		}
		if len(module.Resources) > 3 {
			sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(module.Resources)-3))
		}
	}

	p.printBox("LEARNING PATH", strings.TrimSuffix(sb.String(), "\n"))
}
