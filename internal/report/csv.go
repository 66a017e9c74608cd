// Package report renders plans, day summaries, and grocery lists to
// the output formats the planner ships: CSV, Markdown, and PNG charts.
package report

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/grocery"
	"github.com/weso-m/goodeats/internal/planner"
	"github.com/weso-m/goodeats/internal/summary"
)

// dayNames labels days 0..6 in every report.
var dayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func writeCSV(path string, header []string, records [][]string) error {
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	w.Flush()
	return w.Error()
}

// WriteWeekPlanCSV writes one row per meal slot with resolved card names.
func WriteWeekPlanCSV(path string, plan *planner.WeekPlan, repo *card.Repository) error {
	header := []string{"day", "slot", "card_ids", "name", "calories", "protein_g"}
	var records [][]string
	for _, s := range plan.Slots {
		records = append(records, []string{
			dayNames[s.Day],
			s.Slot,
			strings.Join(s.CardIDs, " | "),
			joinNames(s.CardIDs, repo),
			strconv.Itoa(int(math.Round(s.Macros.Calories))),
			strconv.Itoa(int(math.Round(s.Macros.ProteinG))),
		})
	}
	return writeCSV(path, header, records)
}

// WriteDaySummaryCSV writes one row per day with totals and notes.
func WriteDaySummaryCSV(path string, summaries []summary.DaySummary) error {
	header := []string{"day", "calories", "protein_g", "carbs_g", "fat_g", "notes"}
	var records [][]string
	for _, d := range summaries {
		records = append(records, []string{
			dayNames[d.Day],
			formatQty(d.Calories),
			formatQty(d.ProteinG),
			formatQty(d.CarbsG),
			formatQty(d.FatG),
			d.Notes,
		})
	}
	return writeCSV(path, header, records)
}

// WriteGroceryCSV writes the consolidated shopping list.
func WriteGroceryCSV(path string, rows []grocery.Row) error {
	header := []string{"item", "qty", "unit", "grocery_section"}
	var records [][]string
	for _, r := range rows {
		records = append(records, []string{r.Item, formatQty(r.Qty), r.Unit, r.GrocerySection})
	}
	return writeCSV(path, header, records)
}

// formatQty prints whole numbers without a decimal point and fractional
// quantities with one decimal.
func formatQty(v float64) string {
	if v == math.Trunc(v) {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func joinNames(ids []string, repo *card.Repository) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, ok := repo.Get(id); ok {
			names = append(names, c.Name)
		} else {
			names = append(names, id)
		}
	}
	return strings.Join(names, " + ")
}
