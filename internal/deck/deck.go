package deck

import (
	"slices"
	"strings"
)

// Kind tags which collection a deck record belongs to.
type Kind string

const (
	KindUser   Kind = "userDeck"
	KindPreset Kind = "presetDeck"
)

// Base holds the fields shared by every deck kind.
type Base struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Recommended bool     `json:"recommended,omitempty"`
	Author      string   `json:"author,omitempty"`
}

// UserDeck is a deck the user built or adopted. CardIDs may repeat and may
// reference cards that no longer exist.
type UserDeck struct {
	Base
	CardIDs []int `json:"cardIds"`
	Kind    Kind  `json:"entityType"`
}

// UserOwned reports whether deck mutations may touch this record.
func (d UserDeck) UserOwned() bool { return d.Kind == KindUser }

// Clone returns a copy that shares no slices with d.
func (d UserDeck) Clone() UserDeck {
	d.Tags = slices.Clone(d.Tags)
	d.CardIDs = slices.Clone(d.CardIDs)
	if d.CardIDs == nil {
		d.CardIDs = []int{}
	}
	return d
}

// Count returns how many copies of cardID the deck holds.
func (d UserDeck) Count(cardID int) int {
	n := 0
	for _, id := range d.CardIDs {
		if id == cardID {
			n++
		}
	}
	return n
}

// PresetDeck is a read-only catalog deck curated by the system.
type PresetDeck struct {
	Base
	CardIDs  []int `json:"cardIds"`
	Editable bool  `json:"editable,omitempty"`
	Kind     Kind  `json:"entityType"`
}

// NextID returns max(existing ids)+1, or 1 for an empty list.
func NextID(decks []UserDeck) int {
	next := 1
	for _, d := range decks {
		if d.ID >= next {
			next = d.ID + 1
		}
	}
	return next
}

// FirstFreeID returns the smallest positive id not used by any deck.
func FirstFreeID(decks []UserDeck) int {
	used := make(map[int]struct{}, len(decks))
	for _, d := range decks {
		used[d.ID] = struct{}{}
	}
	id := 1
	for {
		if _, ok := used[id]; !ok {
			return id
		}
		id++
	}
}

// normalizeTags trims tags and drops blanks and duplicates, keeping first order.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
