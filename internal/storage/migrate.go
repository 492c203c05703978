package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrations embed.FS

const kvTable = "kv_entries"

// migrate applies the embedded migrations for one dialect.
func migrate(ctx context.Context, db *sql.DB, dialect goose.Dialect, dir string) error {
	fsys, err := fs.Sub(migrations, "migrations/"+dir)
	if err != nil {
		return fmt.Errorf("migrations %s: %w", dir, err)
	}
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// kvQueries builds the three statements every SQL backend needs.
type kvQueries struct {
	b sq.StatementBuilderType
}

func (q kvQueries) get(key string) (string, []any, error) {
	return q.b.Select("value").From(kvTable).Where(sq.Eq{"key": key}).ToSql()
}

func (q kvQueries) upsert(key string, value []byte, now any) (string, []any, error) {
	return q.b.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func (q kvQueries) remove(key string) (string, []any, error) {
	return q.b.Delete(kvTable).Where(sq.Eq{"key": key}).ToSql()
}
