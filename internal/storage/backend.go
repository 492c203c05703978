// Package storage persists the application's collections as JSON documents in
// a key-value backend. Each collection lives under a single key and is always
// written as a whole.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Backend when the key has never been written.
var ErrNotFound = errors.New("storage: key not found")

// Backend is a byte-oriented key-value medium.
// Implementations must be safe for concurrent Get and Set calls; callers do
// not get atomic read-modify-write across calls.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key names a collection inside the store.
type Key string

const (
	KeyUserCards   Key = "cards_user"
	KeyUserDecks   Key = "decks_user"
	KeySystemCards Key = "cards_system"
	KeyPresetDecks Key = "decks_preset"
	KeyAccount     Key = "account"
)
