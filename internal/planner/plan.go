package planner

import (
	"strings"

	"github.com/weso-m/goodeats/internal/card"
)

// PlanDays is the fixed planning horizon.
const PlanDays = 7

// mealCalCeil caps a main-plus-sides meal. Side acceptance applies the
// same ceiling on both sides of the nominal 450 kcal floor.
const mealCalCeil = 800

// Mode records which strategy produced a plan.
type Mode string

const (
	ModeManual Mode = "manual"
	ModeAuto   Mode = "auto"
)

// MealSlot is one planned eating occasion. Slots are created once by a
// planner and read-only afterward.
type MealSlot struct {
	Day     int         `json:"day"` // 0..6
	Slot    string      `json:"slot"`
	IsSnack bool        `json:"is_snack,omitempty"`
	CardIDs []string    `json:"card_ids"`
	Macros  card.Macros `json:"macros"`
}

// WeekPlan is the ordered slot sequence for one week, plus the inputs
// needed to reproduce it.
type WeekPlan struct {
	Slots []MealSlot `json:"slots"`
	Seed  int64      `json:"seed"`
	Mode  Mode       `json:"mode"`
}

// DaySlots returns the slots planned for the given day, in order.
func (p *WeekPlan) DaySlots(day int) []MealSlot {
	var out []MealSlot
	for _, s := range p.Slots {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// SupportsSlot reports whether a card may fill a slot with the given
// label. A snack slot requires the "snack" tag. For meal slots, lunch
// and dinner tags are mutually substitutable (batch-cooked leftovers
// move between them), breakfast requires an explicit breakfast tag, and
// cards with no declared tags are legacy cards eligible for lunch and
// dinner only.
func SupportsSlot(c *card.RecipeCard, slotLabel string, isSnack bool) bool {
	if isSnack {
		return c.HasMealType("snack")
	}
	label := strings.ToLower(slotLabel)
	if len(c.MealTypes) == 0 {
		return label == "lunch" || label == "dinner"
	}
	switch label {
	case "breakfast":
		return c.HasMealType("breakfast")
	case "lunch", "dinner":
		return c.HasMealType("lunch") || c.HasMealType("dinner")
	default:
		return c.HasMealType(label)
	}
}

// PoolFilter holds the calorie bands and tag requirements that decide
// which cards are eligible for automatic planning. The legacy and
// current filters differ only in these values, so both are expressed
// through the same predicate set.
type PoolFilter struct {
	MainCalMin, MainCalMax   float64
	SideCalMin, SideCalMax   float64
	SnackCalMin, SnackCalMax float64

	// RequireMealTypeTags restores the legacy behavior where mains had
	// to carry an explicit lunch or dinner tag and sides a "side" tag.
	RequireMealTypeTags bool
}

// DefaultPoolFilter returns the current eligibility bands.
func DefaultPoolFilter() PoolFilter {
	return PoolFilter{
		MainCalMin: 250, MainCalMax: 800,
		SideCalMin: 40, SideCalMax: 300,
		SnackCalMin: 50, SnackCalMax: 300,
	}
}

// LegacyPoolFilter returns the original, stricter eligibility bands.
func LegacyPoolFilter() PoolFilter {
	return PoolFilter{
		MainCalMin: 300, MainCalMax: 800,
		SideCalMin: 50, SideCalMax: 300,
		SnackCalMin: 50, SnackCalMax: 300,
		RequireMealTypeTags: true,
	}
}

// EligibleMain reports whether a card may enter the automatic mains pool.
func (f PoolFilter) EligibleMain(c *card.RecipeCard) bool {
	if !c.Role.IsMain() || !c.BatchFriendly {
		return false
	}
	cal := c.MacrosPerServing.Calories
	if cal < f.MainCalMin || cal > f.MainCalMax {
		return false
	}
	if f.RequireMealTypeTags && !c.HasMealType("lunch") && !c.HasMealType("dinner") {
		return false
	}
	return true
}

// EligibleSide reports whether a card may enter the automatic sides pool.
func (f PoolFilter) EligibleSide(c *card.RecipeCard) bool {
	if !c.Role.IsSide() || !c.BatchFriendly {
		return false
	}
	cal := c.MacrosPerServing.Calories
	if cal < f.SideCalMin || cal > f.SideCalMax {
		return false
	}
	if f.RequireMealTypeTags && !c.HasMealType("side") {
		return false
	}
	return true
}

// EligibleSnack reports whether a card may fill snack slots.
func (f PoolFilter) EligibleSnack(c *card.RecipeCard) bool {
	if !c.BatchFriendly || !c.HasMealType("snack") {
		return false
	}
	cal := c.MacrosPerServing.Calories
	return cal >= f.SnackCalMin && cal <= f.SnackCalMax
}
