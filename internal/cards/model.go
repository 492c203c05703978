package cards

import "slices"

// DraftID marks a card that has not been saved yet.
const DraftID = -1

// EntityCard is the optional entity tag carried by cards on the wire.
const EntityCard = "card"

// Category classifies a card. The zero value means unspecified and is
// treated as CategoryOther.
type Category string

const (
	CategoryMonster Category = "monster"
	CategorySpell   Category = "spell"
	CategoryTrap    Category = "trap"
	CategoryOther   Category = "other"
)

// Categories lists the known categories.
var Categories = []Category{CategoryMonster, CategorySpell, CategoryTrap, CategoryOther}

// Valid reports whether c is empty or one of Categories.
func (c Category) Valid() bool {
	return c == "" || slices.Contains(Categories, c)
}

// OrOther returns c, or CategoryOther when c is empty.
func (c Category) OrOther() Category {
	if c == "" {
		return CategoryOther
	}
	return c
}

type Card struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
	EntityType  string   `json:"entityType,omitempty"`
	Category    Category `json:"cardCategory,omitempty"`
	Selected    bool     `json:"isSelected,omitempty"`
}

// Clone returns a copy that shares no slices with c.
func (c Card) Clone() Card {
	c.Keywords = slices.Clone(c.Keywords)
	if c.Keywords == nil {
		c.Keywords = []string{}
	}
	return c
}

// Patch updates an existing card. Nil fields keep the stored value.
type Patch struct {
	ID          int       `json:"id"`
	Name        *string   `json:"name,omitempty"`
	Keywords    *[]string `json:"keywords,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *Category `json:"cardCategory,omitempty"`
	Selected    *bool     `json:"isSelected,omitempty"`
}

// PatchFrom builds a Patch that sets every field of c.
func PatchFrom(c Card) Patch {
	kw := slices.Clone(c.Keywords)
	if kw == nil {
		kw = []string{}
	}
	return Patch{
		ID:          c.ID,
		Name:        &c.Name,
		Keywords:    &kw,
		Description: &c.Description,
		Category:    &c.Category,
		Selected:    &c.Selected,
	}
}

// Apply merges the set fields of p onto c. The id is left untouched.
func (p Patch) Apply(c *Card) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Keywords != nil {
		c.Keywords = slices.Clone(*p.Keywords)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.Selected != nil {
		c.Selected = *p.Selected
	}
}

// NextID returns max(existing ids)+1, or 1 for an empty pool.
func NextID(cards []Card) int {
	next := 1
	for _, c := range cards {
		if c.ID >= next {
			next = c.ID + 1
		}
	}
	return next
}

// Resolve maps ids to cards, keeping order and duplicates and dropping ids
// that match no card.
func Resolve(ids []int, pool []Card) []Card {
	byID := make(map[int]Card, len(pool))
	for _, c := range pool {
		if _, ok := byID[c.ID]; !ok {
			byID[c.ID] = c
		}
	}
	out := make([]Card, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Names returns an id to name lookup for pool.
func Names(pool []Card) map[int]string {
	names := make(map[int]string, len(pool))
	for _, c := range pool {
		names[c.ID] = c.Name
	}
	return names
}
