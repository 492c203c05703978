package preset

import "github.com/youruser/cardbinder/internal/deck"

// DefaultDecks is the system preset catalog.
func DefaultDecks() []deck.PresetDeck {
	return []deck.PresetDeck{
		{
			Base:    deck.Base{ID: 1, Name: "Preset A", Description: "Fire and water basics", Recommended: true, Author: "system"},
			CardIDs: []int{1001, 1002, 1003},
			Kind:    deck.KindPreset,
		},
		{
			Base:    deck.Base{ID: 2, Name: "Preset B", Description: "Tide control", Tags: []string{"water"}, Author: "system"},
			CardIDs: []int{1002, 1002, 1003},
			Kind:    deck.KindPreset,
		},
		{
			Base:    deck.Base{ID: 3, Name: "Preset C", Description: "A bit of everything", Author: "system"},
			CardIDs: []int{1001, 1004, 1005},
			Kind:    deck.KindPreset,
		},
	}
}
