package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/grocery"
	"github.com/weso-m/goodeats/internal/planner"
	"github.com/weso-m/goodeats/internal/summary"
)

// WriteMarkdown writes the human-readable weekly plan: the day grid,
// the daily summary, and the grocery list grouped by section.
func WriteMarkdown(path string, plan *planner.WeekPlan, repo *card.Repository, summaries []summary.DaySummary, rows []grocery.Row) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Weekly Plan\n\n")

	for day := 0; day < planner.PlanDays; day++ {
		var parts []string
		for _, s := range plan.DaySlots(day) {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Slot, joinNames(s.CardIDs, repo)))
		}
		if len(parts) == 0 {
			parts = append(parts, "-")
		}
		fmt.Fprintf(&b, "**%s** - %s\n\n", dayNames[day], strings.Join(parts, " / "))
	}

	b.WriteString("\n## Daily Summary\n\n")
	for _, d := range summaries {
		fmt.Fprintf(&b, "- %s: ~%s kcal (P %s g / C %s g / F %s g).",
			dayNames[d.Day], formatQty(d.Calories), formatQty(d.ProteinG), formatQty(d.CarbsG), formatQty(d.FatG))
		if d.Notes != "" {
			b.WriteString(" " + d.Notes)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Grocery List (by section)\n\n")
	currentSection := ""
	for _, row := range rows {
		section := row.GrocerySection
		if section == "" {
			section = "other"
		}
		if section != currentSection {
			fmt.Fprintf(&b, "### %s\n", capitalize(section))
			currentSection = section
		}
		fmt.Fprintf(&b, "- %s - %s %s\n", row.Item, formatQty(row.Qty), row.Unit)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
