// Package dialog holds the UI state of the card viewing/editing dialog.
// Nothing here is persisted and nothing here talks to a repository.
package dialog

import (
	"sync"

	"github.com/youruser/cardbinder/internal/cards"
)

// Mode is the dialog mode.
type Mode string

const (
	ModeView   Mode = "view"
	ModeEdit   Mode = "edit"
	ModeCreate Mode = "create"
)

// Draft seeds a card opened in create mode.
type Draft struct {
	Name        string
	Keywords    []string
	Description string
}

// State is a snapshot of the dialog.
type State struct {
	Visible bool         `json:"visible"`
	Mode    Mode         `json:"mode"`
	Current *cards.Card  `json:"currentCard"`
	List    []cards.Card `json:"list"`
	Index   int          `json:"index"`
}

// Store coordinates the dialog. The current card is always a detached copy so
// unsaved edits never leak into the context list. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	visible bool
	mode    Mode
	current *cards.Card
	list    []cards.Card
	index   int
}

// New returns a closed dialog in view mode.
func New() *Store {
	return &Store{mode: ModeView, index: -1}
}

// SetContextList replaces the navigation list with a copy of list.
func (s *Store) SetContextList(list []cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setList(list)
}

// OpenView shows card read-only. A non-nil list replaces the context list.
func (s *Store) OpenView(card cards.Card, list []cards.Card) {
	s.open(ModeView, card, list)
}

// OpenEdit shows card for editing. A non-nil list replaces the context list.
func (s *Store) OpenEdit(card cards.Card, list []cards.Card) {
	s.open(ModeEdit, card, list)
}

func (s *Store) open(mode Mode, card cards.Card, list []cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list != nil {
		s.setList(list)
	}
	s.mode = mode
	s.setCurrent(&card)
	s.locate(card.ID)
	s.visible = true
}

// OpenCreate shows a new draft with DraftID and no list position.
func (s *Store) OpenCreate(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kw := d.Keywords
	if kw == nil {
		kw = []string{}
	}
	s.mode = ModeCreate
	s.setCurrent(&cards.Card{
		ID:          cards.DraftID,
		Name:        d.Name,
		Keywords:    kw,
		Description: d.Description,
	})
	s.index = -1
	s.visible = true
}

// Close hides the dialog and resets it to view mode. The context list is kept.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = false
	s.mode = ModeView
	s.current = nil
	s.index = -1
}

// Next moves to the following card. Only acts in view mode with a neighbor.
func (s *Store) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeView || !s.hasNext() {
		return
	}
	s.index++
	s.setCurrent(&s.list[s.index])
}

// Prev moves to the preceding card. Only acts in view mode with a neighbor.
func (s *Store) Prev() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeView || !s.hasPrev() {
		return
	}
	s.index--
	s.setCurrent(&s.list[s.index])
}

// GoTo jumps to list position i. Out of range positions are ignored.
func (s *Store) GoTo(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.list) {
		return
	}
	s.index = i
	s.setCurrent(&s.list[i])
}

// PatchCurrent merges p onto the detached current card only.
func (s *Store) PatchCurrent(p cards.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return
	}
	p.Apply(s.current)
}

// ReplaceCurrentAfterSave installs the saved card as current and writes it
// back into its list slot. Only acts in view mode.
func (s *Store) ReplaceCurrentAfterSave(updated cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeView {
		return
	}
	s.replaceCurrent(updated)
}

// FinishEdit leaves edit mode for view mode and then writes saved back the
// way ReplaceCurrentAfterSave does. Other modes are left untouched.
func (s *Store) FinishEdit(saved cards.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeEdit {
		return
	}
	s.mode = ModeView
	s.replaceCurrent(saved)
}

func (s *Store) replaceCurrent(updated cards.Card) {
	s.setCurrent(&updated)
	if s.index >= 0 && s.index < len(s.list) {
		s.list[s.index] = updated.Clone()
	}
}

func (s *Store) HasPrev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasPrev()
}

func (s *Store) HasNext() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasNext()
}

// CanNavigate reports whether prev/next controls apply: view mode with more
// than one card in context.
func (s *Store) CanNavigate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode == ModeView && len(s.list) > 1
}

// Title is the dialog heading for the current mode.
func (s *Store) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.mode {
	case ModeView:
		return "Card details"
	case ModeEdit:
		return "Edit card"
	case ModeCreate:
		return "New card"
	default:
		return "Card"
	}
}

// State returns a detached snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Visible: s.visible,
		Mode:    s.mode,
		List:    cloneList(s.list),
		Index:   s.index,
	}
	if s.current != nil {
		c := s.current.Clone()
		st.Current = &c
	}
	return st
}

func (s *Store) hasPrev() bool { return s.index > 0 }

func (s *Store) hasNext() bool { return s.index >= 0 && s.index < len(s.list)-1 }

func (s *Store) setList(list []cards.Card) {
	s.list = cloneList(list)
}

func (s *Store) setCurrent(c *cards.Card) {
	if c == nil {
		s.current = nil
		return
	}
	cp := c.Clone()
	s.current = &cp
}

// locate falls back to 0 rather than -1 so navigation stays usable.
func (s *Store) locate(id int) {
	s.index = 0
	for i, c := range s.list {
		if c.ID == id {
			s.index = i
			return
		}
	}
}

func cloneList(list []cards.Card) []cards.Card {
	out := make([]cards.Card, len(list))
	for i, c := range list {
		out[i] = c.Clone()
	}
	return out
}
