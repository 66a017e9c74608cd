package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Targets is a configuration snapshot of the weekly nutrition goals and
// day structure for one planning run.
type Targets struct {
	CaloriesMin float64  `yaml:"calories_min"`
	CaloriesMax float64  `yaml:"calories_max"`
	ProteinMinG float64  `yaml:"protein_min_g"`
	CarbsMaxG   *float64 `yaml:"carbs_max_g"`
	FatMaxG     *float64 `yaml:"fat_max_g"`

	// Desired range of unique mains used across the week.
	MinUniqueMainMeals int `yaml:"min_unique_main_meals"`
	MaxUniqueMainMeals int `yaml:"max_unique_main_meals"`

	// Day structure.
	MealSlots       []string `yaml:"meal_slots"`
	MealsPerDay     int      `yaml:"meals_per_day"`
	IncludeSnacks   bool     `yaml:"include_snacks"`
	MaxSnacksPerDay int      `yaml:"max_snacks_per_day"`
}

// Default returns the built-in targets used when no targets file is
// available.
func Default() Targets {
	t := Targets{
		CaloriesMin:        1400,
		CaloriesMax:        1600,
		ProteinMinG:        110,
		MinUniqueMainMeals: 2,
		MaxUniqueMainMeals: 3,
	}
	t.normalize()
	return t
}

// rawTargets distinguishes absent unique-count fields from explicit
// zeros so the one-sided defaults match the documented behavior.
type rawTargets struct {
	CaloriesMin        *float64 `yaml:"calories_min"`
	CaloriesMax        *float64 `yaml:"calories_max"`
	ProteinMinG        *float64 `yaml:"protein_min_g"`
	CarbsMaxG          *float64 `yaml:"carbs_max_g"`
	FatMaxG            *float64 `yaml:"fat_max_g"`
	MinUniqueMainMeals *int     `yaml:"min_unique_main_meals"`
	MaxUniqueMainMeals *int     `yaml:"max_unique_main_meals"`
	MealSlots          []string `yaml:"meal_slots"`
	MealsPerDay        *int     `yaml:"meals_per_day"`
	IncludeSnacks      *bool    `yaml:"include_snacks"`
	MaxSnacksPerDay    *int     `yaml:"max_snacks_per_day"`
}

// LoadTargets reads targets from a YAML file. An empty path returns the
// built-in defaults. A path that does not exist logs a warning and also
// falls back to defaults, matching the forgiving behavior of the
// original targets file handling.
func LoadTargets(path string) (Targets, error) {
	if path == "" {
		log.Println("[info] No targets file provided. Using built-in defaults.")
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[warn] Targets file '%s' not found. Using defaults.", path)
			return Default(), nil
		}
		return Targets{}, fmt.Errorf("failed to read targets file: %w", err)
	}
	return ParseTargets(data, path)
}

// ParseTargets decodes targets YAML and applies defaults and
// normalization. The name argument is used in error messages only.
func ParseTargets(data []byte, name string) (Targets, error) {
	var raw rawTargets
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Targets{}, fmt.Errorf("failed to parse targets %s: %w", name, err)
	}

	t := Targets{
		CaloriesMin: 1400,
		CaloriesMax: 1600,
		ProteinMinG: 110,
		CarbsMaxG:   raw.CarbsMaxG,
		FatMaxG:     raw.FatMaxG,
		MealSlots:   raw.MealSlots,
	}
	if raw.CaloriesMin != nil {
		t.CaloriesMin = *raw.CaloriesMin
	}
	if raw.CaloriesMax != nil {
		t.CaloriesMax = *raw.CaloriesMax
	}
	if raw.ProteinMinG != nil {
		t.ProteinMinG = *raw.ProteinMinG
	}

	// Unique-count defaults: 2-3 only when neither bound is given; a
	// single given bound fills in the other.
	switch {
	case raw.MinUniqueMainMeals == nil && raw.MaxUniqueMainMeals == nil:
		t.MinUniqueMainMeals, t.MaxUniqueMainMeals = 2, 3
	case raw.MinUniqueMainMeals == nil:
		t.MaxUniqueMainMeals = *raw.MaxUniqueMainMeals
		t.MinUniqueMainMeals = max(1, t.MaxUniqueMainMeals)
	case raw.MaxUniqueMainMeals == nil:
		t.MinUniqueMainMeals = *raw.MinUniqueMainMeals
		t.MaxUniqueMainMeals = max(t.MinUniqueMainMeals, 1)
	default:
		t.MinUniqueMainMeals = *raw.MinUniqueMainMeals
		t.MaxUniqueMainMeals = *raw.MaxUniqueMainMeals
	}

	if raw.MealsPerDay != nil {
		t.MealsPerDay = *raw.MealsPerDay
	}
	if raw.IncludeSnacks != nil {
		t.IncludeSnacks = *raw.IncludeSnacks
	}
	if raw.MaxSnacksPerDay != nil {
		t.MaxSnacksPerDay = *raw.MaxSnacksPerDay
	}

	t.normalize()
	return t, nil
}

// normalize clamps the targets into the ranges the planner relies on:
// min <= max for unique counts with both at least 1, at least one meal
// slot label, and meals_per_day >= 1.
func (t *Targets) normalize() {
	t.MinUniqueMainMeals = max(1, t.MinUniqueMainMeals)
	t.MaxUniqueMainMeals = max(t.MinUniqueMainMeals, t.MaxUniqueMainMeals)

	if len(t.MealSlots) == 0 {
		t.MealSlots = []string{"Lunch", "Dinner"}
	}
	if t.MealsPerDay < 1 {
		t.MealsPerDay = len(t.MealSlots)
	}
	if t.MaxSnacksPerDay < 0 {
		t.MaxSnacksPerDay = 0
	}
	if !t.IncludeSnacks {
		t.MaxSnacksPerDay = 0
	}
}
