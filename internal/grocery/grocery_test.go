package grocery

import (
	"errors"
	"testing"

	"github.com/weso-m/goodeats/internal/card"
	"github.com/weso-m/goodeats/internal/planner"
)

func repoWith(cards ...card.RecipeCard) *card.Repository {
	repo := card.NewRepository()
	for _, c := range cards {
		repo.Put(c)
	}
	return repo
}

// planUsing builds a plan whose slots reference each given card id once
// per occurrence.
func planUsing(ids ...string) *planner.WeekPlan {
	plan := &planner.WeekPlan{}
	for i, id := range ids {
		plan.Slots = append(plan.Slots, planner.MealSlot{
			Day:     i % 7,
			Slot:    "Lunch",
			CardIDs: []string{id},
		})
	}
	return plan
}

func TestAggregateRoundTrip(t *testing.T) {
	// A card used exactly servings_default times contributes its raw
	// ingredient list, unscaled.
	c := card.RecipeCard{
		ID: "bowl", Role: card.RoleMain, ServingsDefault: 4,
		Ingredients: []card.Ingredient{
			{Item: "chicken thigh", Qty: 600, Unit: "g", GrocerySection: "protein"},
			{Item: "rice", Qty: 2, Unit: "cup", GrocerySection: "pantry"},
		},
	}
	repo := repoWith(c)

	rows, err := Aggregate(planUsing("bowl", "bowl", "bowl", "bowl"), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := []Row{
		{Item: "rice", Qty: 2, Unit: "cup", GrocerySection: "pantry"},
		{Item: "chicken thigh", Qty: 600, Unit: "g", GrocerySection: "protein"},
	}
	assertRows(t, rows, want)
}

func TestAggregateScaling(t *testing.T) {
	c := card.RecipeCard{
		ID: "side", Role: card.RoleSide, ServingsDefault: 4,
		Ingredients: []card.Ingredient{
			{Item: "broccoli", Qty: 400, Unit: "g", GrocerySection: "produce"},
		},
	}
	repo := repoWith(c)

	// 14 uses of a 4-serving card scale every quantity by 3.5.
	uses := make([]string, 14)
	for i := range uses {
		uses[i] = "side"
	}
	rows, err := Aggregate(planUsing(uses...), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Qty != 1400 {
		t.Fatalf("Expected broccoli qty 1400 g, got %+v", rows)
	}

	// Doubling the usage doubles the contribution.
	rows2, err := Aggregate(planUsing(append(uses, uses...)...), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if rows2[0].Qty != 2800 {
		t.Fatalf("Expected doubled qty 2800 g, got %+v", rows2)
	}
}

func TestAggregateMergesGramsAndOunces(t *testing.T) {
	a := card.RecipeCard{
		ID: "a", Role: card.RoleMain, ServingsDefault: 1,
		Ingredients: []card.Ingredient{
			{Item: "Cheddar", Qty: 100, Unit: "g", GrocerySection: "dairy"},
		},
	}
	b := card.RecipeCard{
		ID: "b", Role: card.RoleMain, ServingsDefault: 1,
		Ingredients: []card.Ingredient{
			{Item: "cheddar", Qty: 1, Unit: "oz", GrocerySection: "dairy"},
		},
	}
	repo := repoWith(a, b)

	rows, err := Aggregate(planUsing("a", "b"), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected a single merged row, got %+v", rows)
	}
	if rows[0].Unit != "g" || rows[0].Qty != 128.3 {
		t.Errorf("Expected 128.3 g of cheddar, got %.1f %s", rows[0].Qty, rows[0].Unit)
	}
}

func TestAggregateNormalizesCups(t *testing.T) {
	c := card.RecipeCard{
		ID: "c", Role: card.RoleMain, ServingsDefault: 1,
		Ingredients: []card.Ingredient{
			{Item: "Oats", Qty: 1, Unit: "Cups", GrocerySection: "pantry"},
			{Item: "oats", Qty: 0.5, Unit: "cup", GrocerySection: "pantry"},
		},
	}
	repo := repoWith(c)

	rows, err := Aggregate(planUsing("c"), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Qty != 1.5 || rows[0].Unit != "cup" {
		t.Fatalf("Expected 1.5 cup oats, got %+v", rows)
	}
}

func TestAggregateRejectsMismatchedUnits(t *testing.T) {
	c := card.RecipeCard{
		ID: "c", Role: card.RoleMain, ServingsDefault: 1,
		Ingredients: []card.Ingredient{
			{Item: "milk", Qty: 1, Unit: "cup", GrocerySection: "dairy"},
			{Item: "milk", Qty: 2, Unit: "tbsp", GrocerySection: "dairy"},
		},
	}
	repo := repoWith(c)

	_, err := Aggregate(planUsing("c"), repo)
	var cErr *ConversionError
	if !errors.As(err, &cErr) {
		t.Fatalf("Expected ConversionError for cup/tbsp merge, got %v", err)
	}
	if cErr.Item != "milk" {
		t.Errorf("Expected offending item 'milk', got %q", cErr.Item)
	}
}

func TestAggregateRounding(t *testing.T) {
	c := card.RecipeCard{
		ID: "c", Role: card.RoleMain, ServingsDefault: 3,
		Ingredients: []card.Ingredient{
			{Item: "flour", Qty: 100, Unit: "g", GrocerySection: "pantry"},
			{Item: "oil", Qty: 1, Unit: "tbsp", GrocerySection: "pantry"},
		},
	}
	repo := repoWith(c)

	// One use of a 3-serving card: scale factor 1/3.
	rows, err := Aggregate(planUsing("c"), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	want := []Row{
		{Item: "flour", Qty: 33, Unit: "g", GrocerySection: "pantry"},
		{Item: "oil", Qty: 0.3, Unit: "tbsp", GrocerySection: "pantry"},
	}
	assertRows(t, rows, want)
}

func TestAggregateSortsBySectionThenItem(t *testing.T) {
	c := card.RecipeCard{
		ID: "c", Role: card.RoleMain, ServingsDefault: 1,
		Ingredients: []card.Ingredient{
			{Item: "zucchini", Qty: 2, Unit: "whole", GrocerySection: "produce"},
			{Item: "apple", Qty: 3, Unit: "whole", GrocerySection: "produce"},
			{Item: "yeast", Qty: 7, Unit: "g", GrocerySection: "pantry"},
		},
	}
	repo := repoWith(c)

	rows, err := Aggregate(planUsing("c"), repo)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.GrocerySection + "/" + r.Item
	}
	want := []string{"pantry/yeast", "produce/apple", "produce/zucchini"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Row order %v, want %v", got, want)
		}
	}
}

func assertRows(t *testing.T, got, want []Row) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected %d rows, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Row %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}
