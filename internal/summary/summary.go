// Package summary aggregates a week plan's nutrition totals per day and
// attaches advisory notes when a day lands off-target. Notes are
// descriptive text, never errors; the pipeline continues regardless.
package summary

import (
	"math"
	"strings"

	"github.com/weso-m/goodeats/internal/config"
	"github.com/weso-m/goodeats/internal/planner"
)

// Small under-target gaps get gentler advice than large ones.
const smallCalorieGap = 200

// DaySummary holds one day's rounded totals and advisory notes.
type DaySummary struct {
	Day      int     `json:"day"` // 0..6
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	Notes    string  `json:"notes"`
}

// SummarizeDays computes per-day totals for all 7 days of a plan and
// emits advisory notes against the targets.
func SummarizeDays(plan *planner.WeekPlan, targets config.Targets) []DaySummary {
	summaries := make([]DaySummary, 0, planner.PlanDays)

	for day := 0; day < planner.PlanDays; day++ {
		var cals, protein, carbs, fat float64
		for _, s := range plan.DaySlots(day) {
			cals += s.Macros.Calories
			protein += s.Macros.ProteinG
			carbs += s.Macros.CarbsG
			fat += s.Macros.FatG
		}

		var notes []string

		if cals < targets.CaloriesMin {
			if targets.CaloriesMin-cals <= smallCalorieGap {
				notes = append(notes, "Slightly increase meal portions (e.g. +2 oz protein or +100 g potato/veg with olive oil).")
			} else {
				notes = append(notes, "Day is under target; choose higher-calorie cards or larger portions so main meals do the work.")
			}
		} else if cals > targets.CaloriesMax {
			notes = append(notes, "Slightly reduce potato/rice or added fats/dressings to bring calories into range.")
		}

		if protein < targets.ProteinMinG {
			notes = append(notes, "Protein a bit low; add ~2-4 oz lean protein to one meal or bump protein portions.")
		}

		if targets.CarbsMaxG != nil && carbs > *targets.CarbsMaxG {
			notes = append(notes, "Carbs above target; trim carb portions slightly on this day.")
		}
		if targets.FatMaxG != nil && fat > *targets.FatMaxG {
			notes = append(notes, "Fat above target; ease up on oils, sauces, or fatty cuts.")
		}

		summaries = append(summaries, DaySummary{
			Day:      day,
			Calories: math.Round(cals),
			ProteinG: math.Round(protein),
			CarbsG:   math.Round(carbs),
			FatG:     math.Round(fat),
			Notes:    strings.Join(notes, " "),
		})
	}

	return summaries
}
