package card

import "sort"

// Repository is an in-memory collection of recipe cards keyed by id.
// It is loaded once and shared read-only by the planning pipeline.
type Repository struct {
	cards map[string]RecipeCard
}

// NewRepository creates an empty Repository.
func NewRepository() *Repository {
	return &Repository{cards: make(map[string]RecipeCard)}
}

// Put adds a card, overwriting any earlier card with the same id.
func (r *Repository) Put(c RecipeCard) {
	r.cards[c.ID] = c
}

// Get returns the card for id, if present.
func (r *Repository) Get(id string) (RecipeCard, bool) {
	c, ok := r.cards[id]
	return c, ok
}

// Len returns the number of cards held.
func (r *Repository) Len() int {
	return len(r.cards)
}

// All returns every card sorted by id. The stable order keeps seeded
// planning runs reproducible across process restarts.
func (r *Repository) All() []RecipeCard {
	out := make([]RecipeCard, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
