package planner

import (
	"log"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/config"
)

// Tolerated overshoot above the daily calorie ceiling when the day is
// still short of its minimum.
const dayOvershootFactor = 1.05

// slotSpec is one entry of the weekly schedule before cards are chosen.
type slotSpec struct {
	label   string
	isSnack bool
}

// BuildAutoPlan generates a week without a manual selection, using the
// default eligibility bands.
func BuildAutoPlan(repo *card.Repository, targets config.Targets, rng Rand) (*WeekPlan, error) {
	return BuildAutoPlanFiltered(repo, targets, rng, DefaultPoolFilter())
}

// BuildAutoPlanFiltered generates a week without a manual selection: it
// samples a small rotating set of mains and sides from the pools the
// filter admits and fills the configured schedule with them, tracking
// each day's running calorie total against the targets.
func BuildAutoPlanFiltered(repo *card.Repository, targets config.Targets, rng Rand, filter PoolFilter) (*WeekPlan, error) {
	if repo.Len() == 0 {
		return nil, &ValidationError{Reason: "card repository is empty"}
	}

	var mains, sides, snacks []card.RecipeCard
	for _, c := range repo.All() {
		if filter.EligibleMain(&c) {
			mains = append(mains, c)
		}
		if filter.EligibleSide(&c) {
			sides = append(sides, c)
		}
		if filter.EligibleSnack(&c) {
			snacks = append(snacks, c)
		}
	}

	if len(mains) == 0 {
		return nil, &ValidationError{Reason: "auto mode: no eligible mains found (need role main/both, batch_friendly, and calories within the mains band)"}
	}

	daySchedule := buildDaySchedule(targets)
	if len(daySchedule) == 0 {
		return nil, &ValidationError{Reason: "auto mode: schedule has zero slots per day"}
	}

	chosenMains := chooseMains(mains, targets, rng)
	chosenSides := chooseSides(sides, len(chosenMains), rng)

	log.Printf("[info] Auto mode using %d mains and %d sides for batching.", len(chosenMains), len(chosenSides))
	if len(chosenMains) == 1 {
		log.Println("[warn] Only one eligible main selected; all meals will reuse this main.")
	}
	if targets.IncludeSnacks && targets.MaxSnacksPerDay > 0 && len(snacks) == 0 {
		log.Println("[warn] Snacks enabled but no snack-eligible cards found; snack slots will be skipped.")
	}

	plan := &WeekPlan{Mode: ModeAuto}

	for day := 0; day < PlanDays; day++ {
		dayCal := 0.0

		for _, spec := range daySchedule {
			var slot *MealSlot
			if spec.isSnack {
				slot = fillSnackSlot(day, spec, snacks, dayCal, targets, rng)
			} else {
				slot = fillMealSlot(day, spec, chosenMains, chosenSides, dayCal, targets, rng)
			}
			if slot == nil {
				continue
			}
			plan.Slots = append(plan.Slots, *slot)
			dayCal += slot.Macros.Calories
		}

		if dayCal > targets.CaloriesMax*dayOvershootFactor {
			log.Printf("[warn] Day %d totals %.0f kcal, more than 5%% above the %.0f kcal ceiling; targets may be infeasible with these cards.", day, dayCal, targets.CaloriesMax)
		}
	}

	return plan, nil
}

// buildDaySchedule expands the targets into one day's ordered slot
// list: mealsPerDay meal slots cycling through the configured labels,
// followed by any snack slots. The same shape repeats for all 7 days.
func buildDaySchedule(targets config.Targets) []slotSpec {
	var schedule []slotSpec
	for m := 0; m < targets.MealsPerDay; m++ {
		label := targets.MealSlots[m%len(targets.MealSlots)]
		schedule = append(schedule, slotSpec{label: label})
	}
	if targets.IncludeSnacks {
		for s := 0; s < targets.MaxSnacksPerDay; s++ {
			schedule = append(schedule, slotSpec{label: "Snack", isSnack: true})
		}
	}
	return schedule
}

// chooseMains samples the week's unique mains. The unique-count targets
// bound the number of distinct mains, clamped to what the pool offers.
func chooseMains(mains []card.RecipeCard, targets config.Targets, rng Rand) []card.RecipeCard {
	minU := max(1, targets.MinUniqueMainMeals)
	maxU := max(minU, targets.MaxUniqueMainMeals)
	if maxU > len(mains) {
		maxU = len(mains)
	}
	if minU > maxU {
		minU = maxU
	}
	n := max(1, intBetween(rng, minU, maxU))
	return sample(rng, mains, n)
}

// chooseSides samples a supporting-sides subset: enough for variety,
// capped at twice the main count so batching stays practical.
func chooseSides(sides []card.RecipeCard, nMains int, rng Rand) []card.RecipeCard {
	if len(sides) == 0 {
		return nil
	}
	maxSides := min(len(sides), max(1, 2*nMains))
	n := intBetween(rng, 1, maxSides)
	return sample(rng, sides, n)
}

// fillSnackSlot picks a snack that respects the day's calorie ceiling.
// When none fits: if the day is still under its minimum, the lightest
// snack is used anyway; otherwise the slot is skipped entirely (better
// no snack than an overshoot).
func fillSnackSlot(day int, spec slotSpec, snacks []card.RecipeCard, dayCal float64, targets config.Targets, rng Rand) *MealSlot {
	if len(snacks) == 0 {
		return nil
	}

	var fits []card.RecipeCard
	for _, s := range snacks {
		if dayCal+s.MacrosPerServing.Calories <= targets.CaloriesMax {
			fits = append(fits, s)
		}
	}

	var chosen card.RecipeCard
	switch {
	case len(fits) > 0:
		chosen = fits[rng.Intn(len(fits))]
	case dayCal < targets.CaloriesMin:
		chosen = lightest(snacks)
	default:
		return nil
	}

	return &MealSlot{
		Day:     day,
		Slot:    spec.label,
		IsSnack: true,
		CardIDs: []string{chosen.ID},
		Macros:  chosen.MacrosPerServing,
	}
}

// fillMealSlot anchors a slot with a compatible main and attaches up to
// two sides under the meal and day calorie rules.
func fillMealSlot(day int, spec slotSpec, mains, sides []card.RecipeCard, dayCal float64, targets config.Targets, rng Rand) *MealSlot {
	var compatible []card.RecipeCard
	for _, m := range mains {
		if SupportsSlot(&m, spec.label, false) {
			compatible = append(compatible, m)
		}
	}
	if len(compatible) == 0 {
		// No chosen main declares this slot; reuse the full set rather
		// than leaving a meal unplanned.
		log.Printf("[warn] No chosen main is tagged for slot '%s'; selecting among all chosen mains.", spec.label)
		compatible = mains
	}

	var fits []card.RecipeCard
	for _, m := range compatible {
		if dayCal+m.MacrosPerServing.Calories <= targets.CaloriesMax {
			fits = append(fits, m)
		}
	}

	var main card.RecipeCard
	if len(fits) > 0 {
		main = fits[rng.Intn(len(fits))]
	} else {
		// Structurally infeasible to stay under the ceiling; take the
		// lightest compatible main so the slot is still filled.
		main = lightest(compatible)
	}

	slot := MealSlot{
		Day:     day,
		Slot:    spec.label,
		CardIDs: []string{main.ID},
		Macros:  main.MacrosPerServing,
	}

	for _, side := range sample(rng, sides, len(sides)) { // shuffled copy
		if len(slot.CardIDs) >= 3 {
			break
		}
		if !sideSupportsSlot(&side, spec.label) {
			continue
		}

		mealCal := slot.Macros.Calories + side.MacrosPerServing.Calories
		// Below or above the 450 kcal floor the rule is the same: the
		// meal must stay within the ceiling.
		if mealCal > mealCalCeil {
			continue
		}

		newDay := dayCal + mealCal
		withinDay := newDay <= targets.CaloriesMax
		// A day still under its minimum may overshoot the ceiling by
		// up to 5%; calorie sufficiency wins over strict adherence.
		underMinRelaxed := dayCal+slot.Macros.Calories < targets.CaloriesMin &&
			newDay <= targets.CaloriesMax*dayOvershootFactor
		if !withinDay && !underMinRelaxed {
			continue
		}

		slot.CardIDs = append(slot.CardIDs, side.ID)
		slot.Macros = slot.Macros.Add(side.MacrosPerServing)
	}

	return &slot
}

// sideSupportsSlot treats the "side" tag as compatible with any meal
// slot; otherwise the regular slot rules apply.
func sideSupportsSlot(c *card.RecipeCard, label string) bool {
	if c.HasMealType("side") {
		return true
	}
	return SupportsSlot(c, label, false)
}

// lightest returns the card with the fewest calories per serving.
func lightest(cards []card.RecipeCard) card.RecipeCard {
	best := cards[0]
	for _, c := range cards[1:] {
		if c.MacrosPerServing.Calories < best.MacrosPerServing.Calories {
			best = c
		}
	}
	return best
}
