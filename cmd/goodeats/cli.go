package main

import (
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/config"
	"github.com/weso-m/goodeats/internal/grocery"
	"github.com/weso-m/goodeats/internal/planner"
	"github.com/weso-m/goodeats/internal/report"
	"github.com/weso-m/goodeats/internal/selection"
	"github.com/weso-m/goodeats/internal/store"
	"github.com/weso-m/goodeats/internal/summary"
)

// newApp builds the CLI command tree.
func newApp() *cli.App {
	return &cli.App{
		Name:    "goodeats",
		Usage:   "weekly meal plan generator from modular mains & sides",
		Version: Version,
		Commands: []*cli.Command{
			planCommand(),
			historyCommand(),
		},
	}
}

func planCommand() *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "Build a week plan and write the reports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "cards-dir", Value: "./cards", Usage: "directory with *.yaml recipe cards"},
			&cli.StringFlag{Name: "targets", Usage: "YAML file with daily macro & planning targets"},
			&cli.StringFlag{Name: "selection", Usage: "YAML file mapping card id to weekly count"},
			&cli.StringSliceFlag{Name: "select", Usage: "inline selection entries, ID:COUNT"},
			&cli.StringFlag{Name: "out-dir", Value: "./out", Usage: "output directory"},
			&cli.Int64Flag{Name: "seed", Value: -1, Usage: "RNG seed (omit for a different plan each run)"},
			&cli.BoolFlag{Name: "strict", Usage: "abort when the selection names an unknown card"},
			&cli.BoolFlag{Name: "variety", Usage: "apply the protein-variety pass to manual selections"},
			&cli.BoolFlag{Name: "legacy-pools", Usage: "use the original stricter auto-mode eligibility bands"},
			&cli.StringFlag{Name: "db", Usage: "SQLite database for plan history"},
			&cli.BoolFlag{Name: "save", Usage: "record the finished plan in the history database"},
		},
		Action: runPlan,
	}
}

func historyCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recently generated plans",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db", Required: true, Usage: "SQLite database for plan history"},
			&cli.IntFlag{Name: "limit", Value: 10, Usage: "number of plans to show"},
		},
		Action: runHistory,
	}
}

func runPlan(c *cli.Context) error {
	repo, err := card.LoadDir(c.String("cards-dir"))
	if err != nil {
		return err
	}
	if repo.Len() == 0 {
		return fmt.Errorf("no recipe cards loaded from %s", c.String("cards-dir"))
	}

	seed := c.Int64("seed")
	if seed < 0 {
		seed = rand.Int63n(1_000_000_000)
		log.Printf("[info] No seed provided. Using random seed: %d", seed)
	} else {
		log.Printf("[info] Using fixed seed: %d", seed)
	}
	rng := planner.NewSeeded(seed)

	targets, err := config.LoadTargets(c.String("targets"))
	if err != nil {
		return err
	}

	sel, err := loadSelection(c)
	if err != nil {
		return err
	}

	var plan *planner.WeekPlan
	if len(sel) > 0 {
		plan, err = planner.BuildManualPlan(repo, sel, rng, planner.ManualOptions{
			Strict:         c.Bool("strict"),
			EnforceVariety: c.Bool("variety"),
		})
	} else {
		log.Printf("[info] No weekly selection provided; generating automatic plan with %d-%d unique mains.",
			targets.MinUniqueMainMeals, targets.MaxUniqueMainMeals)
		filter := planner.DefaultPoolFilter()
		if c.Bool("legacy-pools") {
			filter = planner.LegacyPoolFilter()
		}
		plan, err = planner.BuildAutoPlanFiltered(repo, targets, rng, filter)
	}
	if err != nil {
		return err
	}
	plan.Seed = seed

	summaries := summary.SummarizeDays(plan, targets)
	rows, err := grocery.Aggregate(plan, repo)
	if err != nil {
		return err
	}

	outDir := c.String("out-dir")
	if err := report.WriteWeekPlanCSV(filepath.Join(outDir, "week_plan.csv"), plan, repo); err != nil {
		return err
	}
	if err := report.WriteDaySummaryCSV(filepath.Join(outDir, "day_summary.csv"), summaries); err != nil {
		return err
	}
	if err := report.WriteGroceryCSV(filepath.Join(outDir, "grocery_list.csv"), rows); err != nil {
		return err
	}
	if err := report.WriteMarkdown(filepath.Join(outDir, "weekly_plan.md"), plan, repo, summaries, rows); err != nil {
		return err
	}
	if err := report.WriteCharts(outDir, summaries, targets); err != nil {
		log.Printf("[warn] Failed to render charts: %v", err)
	}

	if c.Bool("save") {
		if err := savePlan(c, plan); err != nil {
			return err
		}
	}

	fmt.Printf("Outputs written in %s\n", outDir)
	return nil
}

func loadSelection(c *cli.Context) (selection.Selection, error) {
	if path := c.String("selection"); path != "" {
		return selection.LoadFile(path)
	}
	if tokens := c.StringSlice("select"); len(tokens) > 0 {
		return selection.ParseTokens(tokens)
	}
	return nil, nil
}

func savePlan(c *cli.Context, plan *planner.WeekPlan) error {
	dbPath := c.String("db")
	if dbPath == "" {
		dbPath = filepath.Join(c.String("out-dir"), "goodeats.db")
	}
	db, err := store.NewDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := store.NewPlanRepository(db).Save(c.Context, plan)
	if err != nil {
		return err
	}
	log.Printf("[info] Plan recorded in history as #%d.", id)
	return nil
}

func runHistory(c *cli.Context) error {
	db, err := store.NewDB(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	plans, err := store.NewPlanRepository(db).ListRecent(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Println("No plans recorded yet.")
		return nil
	}

	for _, sp := range plans {
		var cals float64
		ids := make(map[string]bool)
		for _, s := range sp.Plan.Slots {
			cals += s.Macros.Calories
			for _, id := range s.CardIDs {
				ids[id] = true
			}
		}
		fmt.Printf("#%d  %s  seed=%d  %d slots, %d cards, %.0f kcal/week  (%s)\n",
			sp.ID, sp.Mode, sp.Seed, len(sp.Plan.Slots), len(ids), cals,
			sp.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
