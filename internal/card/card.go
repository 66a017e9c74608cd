package card

import (
	"fmt"
	"strings"
)

// Role classifies how a card may be used inside a meal.
type Role string

const (
	RoleMain Role = "main"
	RoleSide Role = "side"
	RoleBoth Role = "both"
)

// IsMain reports whether the role allows the card to anchor a meal.
func (r Role) IsMain() bool { return r == RoleMain || r == RoleBoth }

// IsSide reports whether the role allows the card to supplement a meal.
func (r Role) IsSide() bool { return r == RoleSide || r == RoleBoth }

// Macros holds per-serving nutrition values.
type Macros struct {
	Calories float64 `yaml:"calories"`
	ProteinG float64 `yaml:"protein_g"`
	CarbsG   float64 `yaml:"carbs_g"`
	FatG     float64 `yaml:"fat_g"`
}

// Add returns the component-wise sum of two macro sets.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		ProteinG: m.ProteinG + o.ProteinG,
		CarbsG:   m.CarbsG + o.CarbsG,
		FatG:     m.FatG + o.FatG,
	}
}

// Ingredient is one shopping-relevant line of a recipe, scaled to the
// card's default number of servings.
type Ingredient struct {
	Item           string  `yaml:"item"`
	Qty            float64 `yaml:"qty"`
	Unit           string  `yaml:"unit"`
	GrocerySection string  `yaml:"grocery_section"`
}

// RecipeCard is a reusable recipe definition with nutritional and
// ingredient metadata. Cards are immutable once loaded.
type RecipeCard struct {
	ID                 string       `yaml:"id"`
	Name               string       `yaml:"name"`
	Role               Role         `yaml:"role"`
	ServingsDefault    int          `yaml:"servings_default"`
	PortionSizeNote    string       `yaml:"portion_size_note"`
	MacrosPerServing   Macros       `yaml:"macros_per_serving"`
	PrimaryCarb        []string     `yaml:"primary_carb"`
	ProteinSource      []string     `yaml:"protein_source"`
	Veg                []string     `yaml:"veg"`
	Allergens          []string     `yaml:"allergens"`
	MealTypes          []string     `yaml:"meal_types"`
	MealFreqCapPerWeek int          `yaml:"meal_freq_cap_per_week"`
	PrepTimeMin        int          `yaml:"prep_time_min"`
	CookTimeMin        int          `yaml:"cook_time_min"`
	BatchFriendly      bool         `yaml:"batch_friendly"`
	ReheatMethod       []string     `yaml:"reheat_method"`
	Ingredients        []Ingredient `yaml:"ingredients"`
	Steps              []string     `yaml:"steps"`
	Notes              []string     `yaml:"notes"`
}

// HasMealType reports whether the card declares the given slot tag.
// Comparison is case-insensitive; declared tags are stored lowercase.
func (c *RecipeCard) HasMealType(tag string) bool {
	tag = strings.ToLower(tag)
	for _, mt := range c.MealTypes {
		if mt == tag {
			return true
		}
	}
	return false
}

// HasProteinSource reports whether any of the given protein labels
// appear in the card's protein_source list.
func (c *RecipeCard) HasProteinSource(labels ...string) bool {
	for _, p := range c.ProteinSource {
		for _, l := range labels {
			if p == l {
				return true
			}
		}
	}
	return false
}

// validate checks the invariants that the loader guarantees to the rest
// of the pipeline.
func (c *RecipeCard) validate() error {
	if c.ID == "" {
		return fmt.Errorf("card is missing an id")
	}
	if c.ServingsDefault < 1 {
		return fmt.Errorf("card %s: servings_default must be >= 1, got %d", c.ID, c.ServingsDefault)
	}
	if c.MealFreqCapPerWeek < 0 {
		return fmt.Errorf("card %s: meal_freq_cap_per_week must be >= 0, got %d", c.ID, c.MealFreqCapPerWeek)
	}
	switch c.Role {
	case RoleMain, RoleSide, RoleBoth:
	default:
		return fmt.Errorf("card %s: unknown role %q", c.ID, c.Role)
	}
	m := c.MacrosPerServing
	if m.Calories < 0 || m.ProteinG < 0 || m.CarbsG < 0 || m.FatG < 0 {
		return fmt.Errorf("card %s: macros_per_serving values must be >= 0", c.ID)
	}
	for _, ing := range c.Ingredients {
		if ing.Qty < 0 {
			return fmt.Errorf("card %s: ingredient %q has negative quantity", c.ID, ing.Item)
		}
	}
	return nil
}

// applyDefaults fills the fields the card schema leaves optional.
// Legacy cards predate the role and meal_types fields.
func (c *RecipeCard) applyDefaults() {
	if c.Role == "" {
		c.Role = RoleMain
	}
	if c.ServingsDefault == 0 {
		c.ServingsDefault = 2
	}
	for i, mt := range c.MealTypes {
		c.MealTypes[i] = strings.ToLower(strings.TrimSpace(mt))
	}
	for i := range c.Ingredients {
		if c.Ingredients[i].GrocerySection == "" {
			c.Ingredients[i].GrocerySection = "other"
		}
	}
}
