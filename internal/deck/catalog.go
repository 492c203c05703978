package deck

// DefaultDecks is the starter deck list a new user receives on first access.
func DefaultDecks() []UserDeck {
	return []UserDeck{
		{Base: Base{ID: 1, Name: "Deck A", Description: "Starter deck A"}, CardIDs: []int{1, 2, 3}, Kind: KindUser},
		{Base: Base{ID: 2, Name: "Deck B", Description: "Starter deck B"}, CardIDs: []int{3, 5}, Kind: KindUser},
		{Base: Base{ID: 3, Name: "Deck C", Description: "Starter deck C"}, CardIDs: []int{1, 2, 4}, Kind: KindUser},
		{Base: Base{ID: 4, Name: "Deck D", Description: "Everything in one place"}, CardIDs: []int{1, 2, 3, 4, 5, 6, 7}, Kind: KindUser},
	}
}
