// Package account keeps the identity of the signed-in user. Presence of a
// stored user is the only gate the outer surfaces check.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/youruser/cardbinder/internal/apperr"
	"github.com/youruser/cardbinder/internal/storage"
)

type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// Store mirrors the stored identity in memory.
type Store struct {
	doc *storage.Document[User]
	log *slog.Logger

	mu   sync.RWMutex
	user *User
}

func NewStore(store *storage.Store, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		doc: storage.NewDocument[User](store, storage.KeyAccount),
		log: log.With("component", "account"),
	}
}

// Load reads the stored identity into memory and returns it.
func (s *Store) Load(ctx context.Context) (*User, error) {
	u, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
	return copyUser(u), nil
}

// Set validates and stores u, generating an id when it has none.
func (s *Store) Set(ctx context.Context, u User) (User, error) {
	u.Nickname = strings.TrimSpace(u.Nickname)
	if u.Nickname == "" {
		return User{}, apperr.NewValidationError("nickname", "required")
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := s.doc.Save(ctx, u); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()

	s.log.InfoContext(ctx, "user signed in", slog.String("user_id", u.ID))
	return u, nil
}

// Clear forgets the current user.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.doc.Clear(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Current returns the in-memory user, or nil.
func (s *Store) Current() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

// Require returns the signed-in user, or an error wrapping
// apperr.ErrUnauthorized when nobody is signed in.
func (s *Store) Require() (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, fmt.Errorf("sign in required: %w", apperr.ErrUnauthorized)
	}
	return *s.user, nil
}

func (s *Store) Present() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
