package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/config"
	"github.com/weso-m/goodeats/internal/grocery"
	"github.com/weso-m/goodeats/internal/planner"
	"github.com/weso-m/goodeats/internal/summary"
)

func fixtures() (*planner.WeekPlan, *card.Repository, []summary.DaySummary, []grocery.Row) {
	repo := card.NewRepository()
	repo.Put(card.RecipeCard{ID: "chicken_rice", Name: "Chicken & Rice Bowls", Role: card.RoleMain, ServingsDefault: 4})
	repo.Put(card.RecipeCard{ID: "roast_veg", Name: "Roast Veg Tray", Role: card.RoleSide, ServingsDefault: 4})

	plan := &planner.WeekPlan{
		Mode: planner.ModeManual,
		Slots: []planner.MealSlot{
			{Day: 0, Slot: "Lunch", CardIDs: []string{"chicken_rice", "roast_veg"},
				Macros: card.Macros{Calories: 640.4, ProteinG: 47.2, CarbsG: 75, FatG: 16}},
			{Day: 0, Slot: "Dinner", CardIDs: []string{"chicken_rice"},
				Macros: card.Macros{Calories: 520, ProteinG: 42, CarbsG: 55, FatG: 12}},
		},
	}

	targets := config.Default()
	summaries := summary.SummarizeDays(plan, targets)
	rows := []grocery.Row{
		{Item: "jasmine rice", Qty: 3.5, Unit: "cup", GrocerySection: "pantry"},
		{Item: "chicken thigh", Qty: 1400, Unit: "g", GrocerySection: "protein"},
	}
	return plan, repo, summaries, rows
}

func TestWriteWeekPlanCSV(t *testing.T) {
	plan, repo, _, _ := fixtures()
	path := filepath.Join(t.TempDir(), "week_plan.csv")

	require.NoError(t, WriteWeekPlanCSV(path, plan, repo))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 slots
	require.Equal(t, []string{"day", "slot", "card_ids", "name", "calories", "protein_g"}, records[0])
	require.Equal(t, "Mon", records[1][0])
	require.Equal(t, "chicken_rice | roast_veg", records[1][2])
	require.Equal(t, "Chicken & Rice Bowls + Roast Veg Tray", records[1][3])
	require.Equal(t, "640", records[1][4])
}

func TestWriteDaySummaryCSV(t *testing.T) {
	_, _, summaries, _ := fixtures()
	path := filepath.Join(t.TempDir(), "day_summary.csv")

	require.NoError(t, WriteDaySummaryCSV(path, summaries))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 8) // header + 7 days
	require.Equal(t, "Mon", records[1][0])
	require.Equal(t, "Sun", records[7][0])
}

func TestWriteGroceryCSV(t *testing.T) {
	_, _, _, rows := fixtures()
	path := filepath.Join(t.TempDir(), "grocery_list.csv")

	require.NoError(t, WriteGroceryCSV(path, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "jasmine rice,3.5,cup,pantry")
	require.Contains(t, string(data), "chicken thigh,1400,g,protein")
}

func TestWriteMarkdown(t *testing.T) {
	plan, repo, summaries, rows := fixtures()
	path := filepath.Join(t.TempDir(), "weekly_plan.md")

	require.NoError(t, WriteMarkdown(path, plan, repo, summaries, rows))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	md := string(data)

	require.True(t, strings.HasPrefix(md, "# Weekly Plan"))
	require.Contains(t, md, "**Mon**")
	require.Contains(t, md, "Chicken & Rice Bowls")
	require.Contains(t, md, "## Daily Summary")
	require.Contains(t, md, "## Grocery List (by section)")
	require.Contains(t, md, "### Pantry")
	require.Contains(t, md, "- jasmine rice - 3.5 cup")
}

func TestWriteCharts(t *testing.T) {
	_, _, summaries, _ := fixtures()
	dir := t.TempDir()

	require.NoError(t, WriteCharts(dir, summaries, config.Default()))

	for _, name := range []string{"calorie_summary.png", "protein_summary.png", "macros_summary.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		require.Greater(t, info.Size(), int64(0), name)
	}
}
