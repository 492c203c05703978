package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Store binds a Backend to a key namespace. One Store is created per process
// and shared by every repository.
type Store struct {
	backend   Backend
	namespace string
	log       *slog.Logger
}

// New creates a Store over backend. Keys are written as "<namespace>:<key>".
func New(backend Backend, namespace string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		backend:   backend,
		namespace: namespace,
		log:       log.With("component", "storage"),
	}
}

// Close releases the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) fullKey(k Key) string {
	if s.namespace == "" {
		return string(k)
	}
	return fmt.Sprintf("%s:%s", s.namespace, k)
}

// Collection is a typed view of one key holding a JSON array.
type Collection[T any] struct {
	store *Store
	key   Key
}

// NewCollection returns the typed collection stored under key.
func NewCollection[T any](s *Store, key Key) *Collection[T] {
	return &Collection[T]{store: s, key: key}
}

// Key returns the collection's key without namespace.
func (c *Collection[T]) Key() Key { return c.key }

// Read returns every item in the collection. A missing key or a payload that
// fails to decode yields an empty slice; only backend failures are errors.
func (c *Collection[T]) Read(ctx context.Context) ([]T, error) {
	data, err := c.store.backend.Get(ctx, c.store.fullKey(c.key))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", c.key, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		c.store.log.WarnContext(ctx, "discarding undecodable collection",
			slog.String("key", string(c.key)),
			slog.String("error", err.Error()),
		)
		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Write replaces the whole collection with items.
func (c *Collection[T]) Write(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", c.key, err)
	}
	if err := c.store.backend.Set(ctx, c.store.fullKey(c.key), data); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}

// Document is a typed view of one key holding a single JSON object.
type Document[T any] struct {
	store *Store
	key   Key
}

// NewDocument returns the typed document stored under key.
func NewDocument[T any](s *Store, key Key) *Document[T] {
	return &Document[T]{store: s, key: key}
}

// Load returns the stored value, or nil when it is absent or undecodable.
func (d *Document[T]) Load(ctx context.Context) (*T, error) {
	data, err := d.store.backend.Get(ctx, d.store.fullKey(d.key))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load %s: %w", d.key, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		d.store.log.WarnContext(ctx, "discarding undecodable document",
			slog.String("key", string(d.key)),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return &v, nil
}

// Save overwrites the stored value.
func (d *Document[T]) Save(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", d.key, err)
	}
	if err := d.store.backend.Set(ctx, d.store.fullKey(d.key), data); err != nil {
		return fmt.Errorf("save %s: %w", d.key, err)
	}
	return nil
}

// Clear removes the stored value. Clearing an absent document is a no-op.
func (d *Document[T]) Clear(ctx context.Context) error {
	if err := d.store.backend.Delete(ctx, d.store.fullKey(d.key)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("clear %s: %w", d.key, err)
	}
	return nil
}
