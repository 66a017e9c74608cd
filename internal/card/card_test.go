package card

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleCard = `
id: chicken_rice
name: Chicken & Rice Bowls
role: main
servings_default: 4
macros_per_serving:
  calories: 520
  protein_g: 42
  carbs_g: 55
  fat_g: 12
protein_source: [chicken]
meal_types: [Lunch, dinner]
meal_freq_cap_per_week: 5
ingredients:
  - item: chicken thigh
    qty: 800
    unit: g
    grocery_section: protein
  - item: jasmine rice
    qty: 2
    unit: cup
`

func TestParseSingleCard(t *testing.T) {
	cards, err := Parse([]byte(sampleCard), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(cards))
	}

	c := cards[0]
	if c.ID != "chicken_rice" || c.Role != RoleMain || c.ServingsDefault != 4 {
		t.Errorf("Unexpected card fields: %+v", c)
	}
	if c.MacrosPerServing.Calories != 520 || c.MacrosPerServing.ProteinG != 42 {
		t.Errorf("Unexpected macros: %+v", c.MacrosPerServing)
	}
	if c.MealFreqCapPerWeek != 5 {
		t.Errorf("Expected cap 5, got %d", c.MealFreqCapPerWeek)
	}
	if !c.HasMealType("lunch") {
		t.Error("Meal type tags should be lowercased on load")
	}
	if c.Ingredients[1].GrocerySection != "other" {
		t.Errorf("Expected missing grocery_section to default to 'other', got %q", c.Ingredients[1].GrocerySection)
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	cards, err := Parse([]byte("id: mystery\nname: Mystery Bake\n"), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	c := cards[0]
	if c.Role != RoleMain {
		t.Errorf("Expected legacy cards to default to role main, got %q", c.Role)
	}
	if c.ServingsDefault != 2 {
		t.Errorf("Expected default servings 2, got %d", c.ServingsDefault)
	}
	if c.MealFreqCapPerWeek != 3 {
		t.Errorf("Expected default weekly cap 3, got %d", c.MealFreqCapPerWeek)
	}
	if !c.BatchFriendly {
		t.Error("Expected batch_friendly to default to true")
	}
}

func TestParseExplicitFalseBatchFriendly(t *testing.T) {
	cards, err := Parse([]byte("id: fresh\nname: Eat Fresh\nbatch_friendly: false\n"), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cards[0].BatchFriendly {
		t.Error("Explicit batch_friendly: false must survive the defaulting pass")
	}
}

func TestParseCardList(t *testing.T) {
	data := `
- id: one
  name: One
- id: two
  name: Two
  role: side
`
	cards, err := Parse([]byte(data), "test")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[1].Role != RoleSide {
		t.Errorf("Expected second card role side, got %q", cards[1].Role)
	}
}

func TestParseRejectsInvalidCards(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "name: No ID\n"},
		{"bad role", "id: x\nrole: entree\n"},
		{"zero servings", "id: x\nservings_default: -1\n"},
		{"negative ingredient qty", "id: x\ningredients:\n  - item: salt\n    qty: -2\n    unit: g\n"},
		{"negative calories", "id: x\nmacros_per_serving:\n  calories: -100\n"},
		{"negative protein", "id: x\nmacros_per_serving:\n  protein_g: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml), "test"); err == nil {
				t.Fatal("Expected a validation error")
			}
		})
	}
}

func TestLoadDirDuplicateKeepsLater(t *testing.T) {
	dir := t.TempDir()
	early := "id: dup\nname: Early\n"
	late := "id: dup\nname: Late\n"
	if err := os.WriteFile(filepath.Join(dir, "a_first.yaml"), []byte(early), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b_second.yaml"), []byte(late), 0o644); err != nil {
		t.Fatal(err)
	}

	repo, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("Expected 1 card after duplicate overwrite, got %d", repo.Len())
	}
	c, _ := repo.Get("dup")
	if c.Name != "Late" {
		t.Errorf("Expected the later card to win, got %q", c.Name)
	}
}

func TestLoadDirSkipsEmptyFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "empty.yaml"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "real.yml"), []byte("id: real\nname: Real\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("Expected only the real card, got %d", repo.Len())
	}
}
