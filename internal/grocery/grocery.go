// Package grocery consolidates ingredient usage across all planned
// meals into a unit-normalized shopping list.
package grocery

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/planner"
)

// Gram/ounce conversion factors, the only supported cross-unit merge.
const (
	OzToG = 28.349523125
	GToOz = 1.0 / OzToG
)

// ConversionError reports a cross-unit merge the aggregator cannot
// reconcile (anything besides the gram/ounce pair). It is fatal to
// aggregation only; the plan that produced the data remains valid.
type ConversionError struct {
	Item     string
	FromUnit string
	ToUnit   string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unsupported unit conversion for %q: %s->%s", e.Item, e.FromUnit, e.ToUnit)
}

// Row is one line of the final shopping list.
type Row struct {
	Item           string  `json:"item"`
	Qty            float64 `json:"qty"`
	Unit           string  `json:"unit"`
	GrocerySection string  `json:"grocery_section"`
}

// ingredientKey is a normalized (item, unit) merge key. Normalizing up
// front keeps the accumulation free of casing and pluralization
// near-duplicates.
type ingredientKey struct {
	item string
	unit string
}

func normalizeKey(item, unit string) ingredientKey {
	u := strings.ToLower(strings.TrimSpace(unit))
	if u == "cups" {
		u = "cup"
	}
	return ingredientKey{
		item: strings.ToLower(strings.TrimSpace(item)),
		unit: u,
	}
}

// convertQty converts between the supported units.
func convertQty(qty float64, item, from, to string) (float64, error) {
	switch {
	case from == to:
		return qty, nil
	case from == "oz" && to == "g":
		return qty * OzToG, nil
	case from == "g" && to == "oz":
		return qty * GToOz, nil
	default:
		return 0, &ConversionError{Item: item, FromUnit: from, ToUnit: to}
	}
}

// Aggregate builds the consolidated shopping list for a week plan.
// Every slot occurrence of a card counts as one used serving; each used
// card's ingredient quantities are scaled by used servings over the
// card's default servings, then accumulated per normalized (item, unit)
// key. Items recorded in both grams and ounces merge into a single gram
// total. Rows come back sorted by grocery section, then item.
func Aggregate(plan *planner.WeekPlan, repo *card.Repository) ([]Row, error) {
	usedServings := make(map[string]int)
	for _, slot := range plan.Slots {
		for _, cid := range slot.CardIDs {
			usedServings[cid]++
		}
	}

	ids := make([]string, 0, len(usedServings))
	for cid := range usedServings {
		ids = append(ids, cid)
	}
	sort.Strings(ids)

	quantities := make(map[ingredientKey]float64)
	sections := make(map[ingredientKey]string)

	for _, cid := range ids {
		c, ok := repo.Get(cid)
		if !ok {
			// Plans are built from the same repository they are
			// aggregated against, so this indicates caller misuse.
			return nil, fmt.Errorf("plan references card %q not present in the repository", cid)
		}
		scale := float64(usedServings[cid]) / float64(c.ServingsDefault)
		for _, ing := range c.Ingredients {
			key := normalizeKey(ing.Item, ing.Unit)
			if _, seen := quantities[key]; !seen {
				sections[key] = ing.GrocerySection
			}
			quantities[key] += ing.Qty * scale
		}
	}

	// Collapse per item: merge g+oz into grams, keep other single units.
	byItem := make(map[string]*itemUnits)
	var itemOrder []string

	keys := make([]ingredientKey, 0, len(quantities))
	for k := range quantities {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].item != keys[j].item {
			return keys[i].item < keys[j].item
		}
		return keys[i].unit < keys[j].unit
	})

	for _, k := range keys {
		iu, ok := byItem[k.item]
		if !ok {
			iu = &itemUnits{units: make(map[string]float64), section: sections[k]}
			byItem[k.item] = iu
			itemOrder = append(itemOrder, k.item)
		}
		iu.units[k.unit] += quantities[k]
		iu.order = append(iu.order, k.unit)
	}

	var rows []Row
	for _, item := range itemOrder {
		iu := byItem[item]
		row, err := collapseUnits(item, iu)
		if err != nil {
			return nil, err
		}
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GrocerySection != rows[j].GrocerySection {
			return rows[i].GrocerySection < rows[j].GrocerySection
		}
		return rows[i].Item < rows[j].Item
	})
	return rows, nil
}

// itemUnits holds one item's per-unit totals during collapsing.
type itemUnits struct {
	units   map[string]float64
	section string
	order   []string
}

// collapseUnits reduces one item's per-unit totals to a single row.
func collapseUnits(item string, iu *itemUnits) (*Row, error) {
	_, hasG := iu.units["g"]
	_, hasOz := iu.units["oz"]

	if hasG && hasOz {
		if len(iu.units) > 2 {
			return nil, mismatchError(item, iu.order)
		}
		converted, err := convertQty(iu.units["oz"], item, "oz", "g")
		if err != nil {
			return nil, err
		}
		total := iu.units["g"] + converted
		return &Row{Item: item, Qty: round1(total), Unit: "g", GrocerySection: iu.section}, nil
	}

	if len(iu.units) > 1 {
		return nil, mismatchError(item, iu.order)
	}

	unit := iu.order[0]
	qty := iu.units[unit]
	switch unit {
	case "g":
		qty = math.Round(qty)
	case "oz", "tbsp", "tsp", "cup":
		qty = round1(qty)
	}
	return &Row{Item: item, Qty: qty, Unit: unit, GrocerySection: iu.section}, nil
}

// mismatchError reports the first irreconcilable unit pair for an item.
// An item may never silently lose a unit mismatch.
func mismatchError(item string, units []string) error {
	from, to := units[0], units[1]
	for _, u := range units[1:] {
		if u != from {
			to = u
			break
		}
	}
	return &ConversionError{Item: item, FromUnit: from, ToUnit: to}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
