package cards

// DefaultCatalog is the starter card pool a new user receives on first access.
func DefaultCatalog() []Card {
	return []Card{
		{ID: 1, Name: "Card A", Keywords: []string{"vue", "vue", "vue"}, Description: "Description 1"},
		{ID: 2, Name: "Card B", Keywords: []string{}, Description: "Description 42"},
		{ID: 3, Name: "Card C", Keywords: []string{}, Description: "Helpers first, then computed state, then event handlers."},
		{ID: 4, Name: "Card B", Keywords: []string{}, Description: "Refs and stores, then methods, then lifecycle hooks."},
		{ID: 5, Name: "Card B", Keywords: []string{}, Description: "Description 42"},
		{ID: 6, Name: "Card B", Keywords: []string{}, Description: "Description 42"},
		{ID: 7, Name: "Card B", Keywords: []string{}, Description: "Description 42"},
	}
}

// SystemCatalog is the built-in system card pool used when no CSV data is configured.
func SystemCatalog() []Card {
	return []Card{
		{ID: 1001, Name: "System Card A", Keywords: []string{"fire"}, Description: "Description A", Category: CategoryMonster},
		{ID: 1002, Name: "System Card B", Keywords: []string{"water"}, Description: "Description B", Category: CategorySpell},
		{ID: 1003, Name: "System Card C", Keywords: []string{"water"}, Description: "Description B", Category: CategoryTrap},
		{ID: 1004, Name: "System Card D", Keywords: []string{"wind"}, Description: "Description D", Category: CategoryMonster},
		{ID: 1005, Name: "System Card E", Keywords: []string{"earth"}, Description: "Description E", Category: CategoryOther},
	}
}
