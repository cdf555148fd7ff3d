package provider

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmgilman/go/errors"

	"github.com/Alex-Alec/Project2-LRUCache/internal/cache"
)

// DefaultTable is the table used when none is configured.
const DefaultTable = "cache_values"

// DBTX is the subset of *pgxpool.Pool and pgx.Tx the provider needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres resolves string keys from a two-column key/value table.
type Postgres struct {
	db DBTX

	table     string
	getSQL    string
	putSQL    string
	schemaSQL string
}

// NewPostgres returns a provider reading from table through db.
// An empty table name selects DefaultTable.
func NewPostgres(db DBTX, table string) (*Postgres, error) {
	if db == nil {
		return nil, errors.New(errors.CodeInvalidConfig, "postgres provider needs a connection")
	}
	if table == "" {
		table = DefaultTable
	}
	ident := pgx.Identifier{table}.Sanitize()

	return &Postgres{
		db:        db,
		table:     table,
		getSQL:    fmt.Sprintf("SELECT value FROM %s WHERE key = $1", ident),
		putSQL:    fmt.Sprintf("INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value", ident),
		schemaSQL: fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value TEXT NOT NULL)", ident),
	}, nil
}

// Table returns the table name the provider reads.
func (p *Postgres) Table() string {
	return p.table
}

// EnsureSchema creates the table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, p.schemaSQL); err != nil {
		return errors.Wrapf(err, errors.CodeDatabase, "create table %s", p.table)
	}
	return nil
}

// Get implements cache.Provider. A missing row maps to cache.NotFound.
func (p *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := p.db.QueryRow(ctx, p.getSQL, key).Scan(&value)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return "", cache.NotFound(key)
	}
	if err != nil {
		return "", errors.Wrapf(err, errors.CodeDatabase, "select %q", key)
	}
	return value, nil
}

// Put upserts a value; used to seed the backing store.
func (p *Postgres) Put(ctx context.Context, key, value string) error {
	if _, err := p.db.Exec(ctx, p.putSQL, key, value); err != nil {
		return errors.Wrapf(err, errors.CodeDatabase, "upsert %q", key)
	}
	return nil
}
