// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/types"
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

// PrintKeywords outputs a summary of the deduplicated keyword clusters.
func (p *Printer) PrintKeywords(clusters []types.KeywordCluster) {
	if len(clusters) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(clusters), maxItemsToShow)
	for i := 0; i < count; i++ {
		rep := clusters[i].Representative
		sb.WriteString(fmt.Sprintf("• %s (%.2f, %s)", rep.Keyword, rep.RelevanceScore, rep.SkillType))
		if n := len(clusters[i].Synonyms); n > 0 {
			sb.WriteString(fmt.Sprintf(" +%d near-duplicates", n))
		}
		sb.WriteString("\n")
	}
	if len(clusters) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(clusters)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("Keywords (%d)", len(clusters)), strings.TrimRight(sb.String(), "\n"))
}

// PrintMatches outputs the bullet-keyword assignments.
func (p *Printer) PrintMatches(bullets []types.BulletMatches) {
	if len(bullets) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(bullets), maxItemsToShow)
	for i := 0; i < count; i++ {
		bm := bullets[i]
		sb.WriteString(fmt.Sprintf("%s @ %s\n", bm.Ref.Title, bm.Ref.Company))
		for _, kw := range bm.Keywords {
			sb.WriteString(fmt.Sprintf("  • %s (%.2f)\n", kw.Keyword, kw.Similarity))
		}
	}
	if len(bullets) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more bullets\n", len(bullets)-maxItemsToShow))
	}

	p.printBox(fmt.Sprintf("Matched Bullets (%d)", len(bullets)), strings.TrimRight(sb.String(), "\n"))
}

// PrintSkillSelection outputs the final skill selection per category.
func (p *Printer) PrintSkillSelection(selection types.SkillSelection) {
	if len(selection.Groups) == 0 {
		return
	}

	var sb strings.Builder
	for _, cat := range selection.Groups {
		sb.WriteString(fmt.Sprintf("%s: %s\n", cat.Name, strings.Join(cat.Skills, ", ")))
	}
	if len(selection.Added) > 0 {
		sb.WriteString(fmt.Sprintf("\nAdded from job: %s\n", strings.Join(selection.Added, ", ")))
	}

	title := fmt.Sprintf("Skills (%d)", selection.Groups.TotalSkills())
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintModifications outputs the bullet rewrite log.
func (p *Printer) PrintModifications(mods []types.Modification) {
	if len(mods) == 0 {
		return
	}

	rewritten, fallbacks := 0, 0
	var sb strings.Builder
	for _, mod := range mods {
		if mod.FellBack {
			fallbacks++
			sb.WriteString(fmt.Sprintf("%s kept original: %s\n", mod.Ref.Key(), mod.Reason))
			continue
		}
		rewritten++
		sb.WriteString(fmt.Sprintf("%s rewrote with [%s]\n", mod.Ref.Key(), strings.Join(mod.KeywordsApplied, ", ")))
	}

	title := fmt.Sprintf("Rewrites (%d applied, %d kept)", rewritten, fallbacks)
	p.printBox(title, strings.TrimRight(sb.String(), "\n"))
}

// PrintStats outputs the matching statistics.
func (p *Printer) PrintStats(stats types.MatchStats) {
	content := fmt.Sprintf(
		"Keywords:    %d extracted, %d after dedup\nBullets:     %d considered, %d matched\nAssignments: %d kept, %d dropped by caps\nSkills:      %d selected",
		stats.KeywordsExtracted, stats.KeywordsDeduped,
		stats.BulletsConsidered, stats.BulletsMatched,
		stats.AssignmentsTotal, stats.AssignmentsDropped,
		stats.SkillsSelected,
	)
	p.printBox("Match Stats", content)
}
