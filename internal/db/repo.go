package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"

	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

const pgUniqueViolation = "23505"

type Repository struct {
	db pg.DBI
}

func New(db pg.DBI) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Ping(ctx context.Context) error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Ping(ctx); err != nil {
			return err
		}
		return nil
	}

	return nil
}

func (r *Repository) Close() error {
	if db, ok := r.db.(*pg.DB); ok {
		if err := db.Close(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// RunInTransaction runs fn with a repository bound to one transaction.
// A repository that already wraps a *pg.Tx reuses it, so the caller keeps
// control over commit and rollback.
func (r *Repository) RunInTransaction(ctx context.Context, fn func(tx *Repository) error) error {
	if _, ok := r.db.(*pg.Tx); ok {
		return fn(r)
	}

	return r.db.RunInTransaction(ctx, func(tx *pg.Tx) error {
		return fn(New(tx))
	})
}

// LockTable serializes writers of a whole collection until the transaction ends.
// Plain readers are not blocked.
func (r *Repository) LockTable(ctx context.Context, table string) error {
	_, err := r.db.ExecContext(ctx, `LOCK TABLE ? IN SHARE ROW EXCLUSIVE MODE`, pg.Ident(table))
	if err != nil {
		return fmt.Errorf("failed to lock table %s: %w", table, err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a unique violation of the named
// constraint or index. An empty name matches any unique violation.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr pg.Error
	if !errors.As(err, &pgErr) {
		return false
	}

	if pgErr.Field('C') != pgUniqueViolation {
		return false
	}

	return constraint == "" || pgErr.Field('n') == constraint
}

func (r *Repository) setOrders(ctx context.Context, model interface{}, pk string, items []ordering.Item) error {
	for _, it := range items {
		_, err := r.db.ModelContext(ctx, model).
			Set(`"displayOrder" = ?`, it.Order).
			Where(`? = ?`, pg.Ident(pk), it.ID).
			Update()
		if err != nil {
			return fmt.Errorf("failed to set display order of %d: %w", it.ID, err)
		}
	}

	return nil
}
