package planner

import (
	"log"
	"sort"

	"github.com/weso-m/goodeats/internal/card"
)

// ManualOptions tune the manual planning strategy.
type ManualOptions struct {
	// Strict aborts the run with a ReferenceError when the selection
	// names an unknown card id. When false, unknown ids are skipped
	// with a warning.
	Strict bool

	// EnforceVariety applies the legacy protein-variety pass to the
	// main pool (ensure one seafood option, limit repeated beef).
	EnforceVariety bool
}

// BuildManualPlan produces a week from a user-supplied selection of
// card multiplicities. Each requested count is clamped to the card's
// weekly frequency cap. Cards whose role admits "main" anchor the 14
// lunch/dinner slots, cycling when the pool is short; side-capable
// cards are attached on top, up to two per slot, as long as the meal
// stays within the calorie ceiling.
func BuildManualPlan(repo *card.Repository, sel map[string]int, rng Rand, opts ManualOptions) (*WeekPlan, error) {
	mainPool, sidePool, err := expandPools(repo, sel, opts.Strict)
	if err != nil {
		return nil, err
	}

	if opts.EnforceVariety {
		mainPool = enforceVariety(mainPool, repo)
	}

	if len(mainPool) == 0 {
		return nil, &ValidationError{Reason: "manual selection contains no main-capable cards; a week cannot be built from sides alone"}
	}

	rng.Shuffle(len(mainPool), func(i, j int) { mainPool[i], mainPool[j] = mainPool[j], mainPool[i] })
	rng.Shuffle(len(sidePool), func(i, j int) { sidePool[i], sidePool[j] = sidePool[j], sidePool[i] })

	const totalSlots = PlanDays * 2
	if len(mainPool) < totalSlots {
		log.Printf("[warn] Main pool has %d entries for %d slots; mains will repeat.", len(mainPool), totalSlots)
	}

	plan := &WeekPlan{Mode: ModeManual}
	sideCursor := 0

	for i := 0; i < totalSlots; i++ {
		label := "Lunch"
		if i%2 == 1 {
			label = "Dinner"
		}

		mainID := mainPool[i%len(mainPool)]
		mainCard, _ := repo.Get(mainID)

		slot := MealSlot{
			Day:     i / 2,
			Slot:    label,
			CardIDs: []string{mainID},
			Macros:  mainCard.MacrosPerServing,
		}

		// Attach up to 2 sides, walking the side pool from a cursor
		// that never resets so sides spread across the week instead of
		// repeating immediately. Acceptance is the same below and
		// above the 450 kcal floor: never past the ceiling.
		for tries := 0; tries < len(sidePool) && len(slot.CardIDs) < 3; tries++ {
			sideID := sidePool[sideCursor%len(sidePool)]
			sideCursor++
			if containsID(slot.CardIDs, sideID) {
				continue // a meal never repeats a component
			}
			sideCard, _ := repo.Get(sideID)
			if slot.Macros.Calories+sideCard.MacrosPerServing.Calories <= mealCalCeil {
				slot.CardIDs = append(slot.CardIDs, sideID)
				slot.Macros = slot.Macros.Add(sideCard.MacrosPerServing)
			}
		}

		plan.Slots = append(plan.Slots, slot)
	}

	return plan, nil
}

// expandPools turns a selection into main and side id pools with one
// entry per planned use. A card with role "both" contributes to both
// pools independently.
func expandPools(repo *card.Repository, sel map[string]int, strict bool) (mains, sides []string, err error) {
	ids := make([]string, 0, len(sel))
	for id := range sel {
		ids = append(ids, id)
	}
	sort.Strings(ids) // selection is a map; fix the order for reproducibility

	for _, id := range ids {
		c, ok := repo.Get(id)
		if !ok {
			if strict {
				return nil, nil, &ReferenceError{ID: id}
			}
			log.Printf("[warn] Selection references unknown card '%s'; skipping.", id)
			continue
		}

		n := sel[id]
		if n < 0 {
			n = 0
		}
		if limit := c.MealFreqCapPerWeek; n > limit {
			log.Printf("[warn] %s requested %d× but capped at %d; truncating.", id, n, limit)
			n = limit
		}

		for i := 0; i < n; i++ {
			if c.Role.IsMain() {
				mains = append(mains, id)
			}
			if c.Role.IsSide() {
				sides = append(sides, id)
			}
		}
	}
	return mains, sides, nil
}

// enforceVariety applies the legacy protein-variety adjustments: ensure
// at least one seafood option when the repository has one, and replace
// all but the first beef-based entry with the most frequent non-beef
// alternative already in the pool.
func enforceVariety(pool []string, repo *card.Repository) []string {
	if len(pool) == 0 {
		return pool
	}

	seafood := []string{"fish", "shrimp", "salmon"}

	hasSeafood := false
	for _, id := range pool {
		if c, ok := repo.Get(id); ok && c.HasProteinSource(seafood...) {
			hasSeafood = true
			break
		}
	}
	if !hasSeafood {
		for _, c := range repo.All() {
			if c.HasProteinSource(seafood...) {
				pool = append(pool, c.ID)
				break
			}
		}
	}

	var beefIdx []int
	for i, id := range pool {
		if c, ok := repo.Get(id); ok && c.HasProteinSource("beef") {
			beefIdx = append(beefIdx, i)
		}
	}
	if len(beefIdx) > 1 {
		if repl := mostFrequentNonBeef(pool, repo); repl != "" {
			for _, i := range beefIdx[1:] {
				pool[i] = repl
			}
			log.Printf("[info] Variety: replaced %d beef entries with '%s'.", len(beefIdx)-1, repl)
		}
	}

	return pool
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func mostFrequentNonBeef(pool []string, repo *card.Repository) string {
	counts := make(map[string]int)
	var order []string
	for _, id := range pool {
		c, ok := repo.Get(id)
		if !ok || c.HasProteinSource("beef") {
			continue
		}
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	best := ""
	for _, id := range order { // first-seen wins ties
		if best == "" || counts[id] > counts[best] {
			best = id
		}
	}
	return best
}
