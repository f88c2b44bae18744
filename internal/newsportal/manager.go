// Package newsportal is the content engine: it applies the access policy,
// lifecycle rules and display ordering to news, roster, about cards and
// site settings inside one storage transaction per operation.
package newsportal

import (
	"context"
	"log/slog"
	"time"

	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

type Options struct {
	// Cache is optional, nil disables listing caching.
	Cache *ListingCache
	// MemberRoles defaults to DefaultMemberRoles.
	MemberRoles []string
	Now         func() time.Time
}

type Manager struct {
	db     *db.Repository
	logger *slog.Logger
	cache  *ListingCache
	roles  []string
	now    func() time.Time
}

func NewManager(repo *db.Repository, logger *slog.Logger, opts Options) *Manager {
	m := &Manager{
		db:     repo,
		logger: logger,
		cache:  opts.Cache,
		roles:  opts.MemberRoles,
		now:    opts.Now,
	}
	if len(m.roles) == 0 {
		m.roles = DefaultMemberRoles
	}
	if m.now == nil {
		m.now = func() time.Time { return time.Now().UTC() }
	}

	return m
}

// MemberRoles returns the configured clan ranks in display order.
func (m *Manager) MemberRoles() []string {
	return append([]string(nil), m.roles...)
}

// inTx runs fn in a transaction. Errors outside the domain taxonomy are reported as storage failures.
func (m *Manager) inTx(ctx context.Context, op string, fn func(tx *db.Repository) error) error {
	err := m.db.RunInTransaction(ctx, fn)
	if err == nil || domain.IsKnown(err) {
		return err
	}

	m.logger.ErrorContext(ctx, "storage failure", "op", op, "err", err)
	return domain.NewStorageError(op, err)
}

func (m *Manager) storageErr(ctx context.Context, op string, err error) error {
	m.logger.ErrorContext(ctx, "storage failure", "op", op, "err", err)
	return domain.NewStorageError(op, err)
}

// cached serves name from the listing cache, falling back to load. Cache failures are logged, never returned.
func cached[T any](ctx context.Context, m *Manager, name string, load func() (T, error)) (T, error) {
	var v T
	if m.cache == nil {
		return load()
	}

	key, err := m.cache.Key(ctx, name)
	if err != nil {
		m.logger.WarnContext(ctx, "listing cache read failed", "key", name, "err", err)
		return load()
	}

	ok, err := m.cache.Get(ctx, key, &v)
	if err != nil {
		m.logger.WarnContext(ctx, "listing cache read failed", "key", key, "err", err)
	} else if ok {
		return v, nil
	}

	v, err = load()
	if err != nil {
		return v, err
	}

	if err := m.cache.Set(ctx, key, v); err != nil {
		m.logger.WarnContext(ctx, "listing cache write failed", "key", key, "err", err)
	}

	return v, nil
}

func (m *Manager) invalidate(ctx context.Context) {
	if m.cache == nil {
		return
	}
	if err := m.cache.Invalidate(ctx); err != nil {
		m.logger.WarnContext(ctx, "listing cache invalidate failed", "err", err)
	}
}
