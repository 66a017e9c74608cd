package card

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// rawCard mirrors the YAML card schema. The two pointer fields default
// to non-zero values when absent, so they cannot decode straight into
// RecipeCard.
type rawCard struct {
	ID                 string       `yaml:"id"`
	Name               string       `yaml:"name"`
	Role               string       `yaml:"role"`
	ServingsDefault    int          `yaml:"servings_default"`
	PortionSizeNote    string       `yaml:"portion_size_note"`
	MacrosPerServing   Macros       `yaml:"macros_per_serving"`
	PrimaryCarb        []string     `yaml:"primary_carb"`
	ProteinSource      []string     `yaml:"protein_source"`
	Veg                []string     `yaml:"veg"`
	Allergens          []string     `yaml:"allergens"`
	MealTypes          []string     `yaml:"meal_types"`
	MealFreqCapPerWeek *int         `yaml:"meal_freq_cap_per_week"`
	PrepTimeMin        int          `yaml:"prep_time_min"`
	CookTimeMin        int          `yaml:"cook_time_min"`
	BatchFriendly      *bool        `yaml:"batch_friendly"`
	ReheatMethod       []string     `yaml:"reheat_method"`
	Ingredients        []Ingredient `yaml:"ingredients"`
	Steps              []string     `yaml:"steps"`
	Notes              []string     `yaml:"notes"`
}

func (r rawCard) toCard() (RecipeCard, error) {
	c := RecipeCard{
		ID:                 r.ID,
		Name:               r.Name,
		Role:               Role(r.Role),
		ServingsDefault:    r.ServingsDefault,
		PortionSizeNote:    r.PortionSizeNote,
		MacrosPerServing:   r.MacrosPerServing,
		PrimaryCarb:        r.PrimaryCarb,
		ProteinSource:      r.ProteinSource,
		Veg:                r.Veg,
		Allergens:          r.Allergens,
		MealTypes:          r.MealTypes,
		MealFreqCapPerWeek: 3,
		PrepTimeMin:        r.PrepTimeMin,
		CookTimeMin:        r.CookTimeMin,
		BatchFriendly:      true,
		ReheatMethod:       r.ReheatMethod,
		Ingredients:        r.Ingredients,
		Steps:              r.Steps,
		Notes:              r.Notes,
	}
	if r.MealFreqCapPerWeek != nil {
		c.MealFreqCapPerWeek = *r.MealFreqCapPerWeek
	}
	if r.BatchFriendly != nil {
		c.BatchFriendly = *r.BatchFriendly
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return RecipeCard{}, err
	}
	return c, nil
}

// ParseFile decodes one YAML file into cards. A file may hold a single
// card document or a list of cards.
func ParseFile(path string) ([]RecipeCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read card file: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes YAML card data. The name argument is used in error
// messages only.
func Parse(data []byte, name string) ([]RecipeCard, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if node.Kind == 0 || len(node.Content) == 0 {
		return nil, nil // empty document
	}

	var raws []rawCard
	doc := node.Content[0]
	if doc.Kind == yaml.SequenceNode {
		if err := doc.Decode(&raws); err != nil {
			return nil, fmt.Errorf("failed to decode card list in %s: %w", name, err)
		}
	} else {
		var r rawCard
		if err := doc.Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to decode card in %s: %w", name, err)
		}
		raws = append(raws, r)
	}

	cards := make([]RecipeCard, 0, len(raws))
	for _, r := range raws {
		c, err := r.toCard()
		if err != nil {
			return nil, fmt.Errorf("invalid card in %s: %w", name, err)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// LoadDir loads every *.yaml / *.yml file in dir into a Repository.
// Files are visited in sorted order; a card id seen twice keeps the
// later occurrence.
func LoadDir(dir string) (*Repository, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("failed to scan card directory: %w", err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	repo := NewRepository()
	for _, path := range paths {
		cards, err := ParseFile(path)
		if err != nil {
			return nil, err
		}
		for _, c := range cards {
			repo.Put(c)
		}
	}
	return repo, nil
}
