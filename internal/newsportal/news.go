package newsportal

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
	"github.com/Wintario/sin-city-sentinels/internal/lifecycle"
	"github.com/Wintario/sin-city-sentinels/internal/ordering"
	"github.com/Wintario/sin-city-sentinels/internal/slug"
)

const newsTable = "news"

// PublishedNews returns one page of public news with the total count.
func (m *Manager) PublishedNews(ctx context.Context, search *db.NewsSearch) (NewsPage, error) {
	if search == nil {
		search = &db.NewsSearch{}
	}

	return cached(ctx, m, publishedNewsKey(search), func() (NewsPage, error) {
		list, err := m.db.PublishedNews(ctx, search)
		if err != nil {
			return NewsPage{}, m.storageErr(ctx, "published news", err)
		}

		total, err := m.db.PublishedNewsCount(ctx, search)
		if err != nil {
			return NewsPage{}, m.storageErr(ctx, "published news count", err)
		}

		return NewsPage{Items: NewNewsList(list), Total: total}, nil
	})
}

func publishedNewsKey(s *db.NewsSearch) string {
	key := fmt.Sprintf("news:%d:%d", s.GetLimit(), s.GetOffset())
	if s.AuthorID != nil {
		key += ":a" + strconv.Itoa(*s.AuthorID)
	}
	if s.Query != nil {
		key += ":q" + strconv.Quote(*s.Query)
	}

	return key
}

// NewsByID returns a public item. Drafts, archived and deleted items are reported as not found.
func (m *Manager) NewsByID(ctx context.Context, id int) (*News, error) {
	n, err := m.db.NewsByID(ctx, id, false)
	if err != nil {
		return nil, m.storageErr(ctx, "news by id", err)
	} else if n == nil || !statusOf(n).Public() {
		return nil, domain.NewNotFound("news", id)
	}

	news := NewNews(n)
	return &news, nil
}

func (m *Manager) NewsBySlug(ctx context.Context, s string) (*News, error) {
	n, err := m.db.PublishedNewsBySlug(ctx, s)
	if err != nil {
		return nil, m.storageErr(ctx, "news by slug", err)
	} else if n == nil {
		return nil, domain.NewNotFound("news", s)
	}

	news := NewNews(n)
	return &news, nil
}

// AdminNewsByID returns any item, including drafts and deleted ones, to staff.
func (m *Manager) AdminNewsByID(ctx context.Context, p access.Principal, id int) (*News, error) {
	n, err := m.db.NewsByID(ctx, id, false)
	if err != nil {
		return nil, m.storageErr(ctx, "news by id", err)
	} else if n == nil {
		return nil, domain.NewNotFound("news", id)
	}

	if err := access.Check(p, access.ActionRead, access.Resource{Kind: access.KindNews, OwnerID: n.AuthorID}); err != nil {
		return nil, err
	}

	news := NewNews(n)
	return &news, nil
}

func (m *Manager) AdminNews(ctx context.Context, p access.Principal, search *db.NewsSearch) (AdminNewsTabs, error) {
	if err := access.Check(p, access.ActionRead, access.Resource{Kind: access.KindNews}); err != nil {
		return AdminNewsTabs{}, err
	}

	list, err := m.db.AdminNews(ctx, search)
	if err != nil {
		return AdminNewsTabs{}, m.storageErr(ctx, "admin news", err)
	}

	return NewAdminNewsTabs(list), nil
}

func (m *Manager) TrashNews(ctx context.Context, p access.Principal, search *db.NewsSearch) ([]News, error) {
	if err := access.Check(p, access.ActionManage, access.Resource{Kind: access.KindNews}); err != nil {
		return nil, err
	}

	list, err := m.db.DeletedNews(ctx, search)
	if err != nil {
		return nil, m.storageErr(ctx, "deleted news", err)
	}

	return NewNewsList(list), nil
}

func (m *Manager) CreateNews(ctx context.Context, p access.Principal, in NewsInput) (*News, error) {
	if err := access.Check(p, access.ActionCreate, access.Resource{Kind: access.KindNews, OwnerID: p.ID}); err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := m.now()
	news := &db.News{
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   optional(in.Excerpt),
		ImageURL:  optional(in.ImageURL),
		AuthorID:  p.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := m.inTx(ctx, "create news", func(tx *db.Repository) error {
		// slug check and insert must not interleave with another writer
		if err := tx.LockTable(ctx, newsTable); err != nil {
			return err
		}

		s, err := slug.Unique(ctx, in.Title, now.UnixMilli(), tx.SlugExists)
		if err != nil {
			return fmt.Errorf("derive slug: %w", err)
		}
		news.Slug = s

		return tx.CreateNews(ctx, news)
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "news created", "newsId", news.ID, "authorId", p.ID, "slug", news.Slug)
	return m.reloadNews(ctx, news.ID)
}

func (m *Manager) UpdateNews(ctx context.Context, p access.Principal, id int, patch NewsPatch) (*News, error) {
	err := m.inTx(ctx, "update news", func(tx *db.Repository) error {
		if patch.Title != nil {
			if err := tx.LockTable(ctx, newsTable); err != nil {
				return err
			}
		}

		news, err := lockNews(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := access.Check(p, access.ActionUpdate, newsResource(news)); err != nil {
			return err
		}

		if _, err := lifecycle.Next(id, statusOf(news), lifecycle.Update); err != nil {
			return err
		}

		patch.normalize()
		if err := patch.Validate(); err != nil {
			return err
		}

		now := m.now()
		columns := []string{db.Columns.News.LastEditedBy, db.Columns.News.UpdatedAt}
		if patch.Title != nil && *patch.Title != news.Title {
			s, err := slug.Unique(ctx, *patch.Title, now.UnixMilli(), tx.SlugExists)
			if err != nil {
				return fmt.Errorf("derive slug: %w", err)
			}
			news.Title, news.Slug = *patch.Title, s
			columns = append(columns, db.Columns.News.Title, db.Columns.News.Slug)
		}
		if patch.Content != nil {
			news.Content = *patch.Content
			columns = append(columns, db.Columns.News.Content)
		}
		if patch.Excerpt != nil {
			news.Excerpt = optional(patch.Excerpt)
			columns = append(columns, db.Columns.News.Excerpt)
		}
		if patch.ImageURL != nil {
			news.ImageURL = optional(patch.ImageURL)
			columns = append(columns, db.Columns.News.ImageURL)
		}

		editor := p.ID
		news.LastEditedBy, news.UpdatedAt = &editor, now

		return tx.UpdateNews(ctx, news, columns...)
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)
	return m.reloadNews(ctx, id)
}

// PublishNews moves a draft to the end of the public listing. Publishing a published item returns it unchanged.
func (m *Manager) PublishNews(ctx context.Context, p access.Principal, id int) (*News, error) {
	return m.transition(ctx, p, id, lifecycle.Publish, access.ActionPublish, func(tx *db.Repository, news *db.News) ([]string, error) {
		maxOrder, err := tx.MaxNewsOrder(ctx)
		if err != nil {
			return nil, err
		}

		order, now := 0, m.now()
		if maxOrder != nil {
			order = *maxOrder + 1
		}
		news.PublishedAt, news.DisplayOrder = &now, &order

		return []string{db.Columns.News.PublishedAt, db.Columns.News.DisplayOrder}, nil
	})
}

func (m *Manager) ArchiveNews(ctx context.Context, p access.Principal, id int) (*News, error) {
	return m.transition(ctx, p, id, lifecycle.Archive, access.ActionArchive, func(_ *db.Repository, news *db.News) ([]string, error) {
		news.IsArchived = true
		return []string{db.Columns.News.IsArchived}, nil
	})
}

// UnarchiveNews returns an archived item to the public listing with its publishedAt and displayOrder intact.
func (m *Manager) UnarchiveNews(ctx context.Context, p access.Principal, id int) (*News, error) {
	return m.transition(ctx, p, id, lifecycle.Unarchive, access.ActionArchive, func(_ *db.Repository, news *db.News) ([]string, error) {
		news.IsArchived = false
		return []string{db.Columns.News.IsArchived}, nil
	})
}

// SoftDeleteNews hides an item. Deleting an already deleted item fails with ErrAlreadyInState.
func (m *Manager) SoftDeleteNews(ctx context.Context, p access.Principal, id int) error {
	_, err := m.transition(ctx, p, id, lifecycle.SoftDelete, access.ActionDelete, func(_ *db.Repository, news *db.News) ([]string, error) {
		news.IsDeleted = true
		return []string{db.Columns.News.IsDeleted}, nil
	})

	return err
}

// RestoreNews brings back a deleted item in the state it had before deletion.
func (m *Manager) RestoreNews(ctx context.Context, p access.Principal, id int) (*News, error) {
	return m.transition(ctx, p, id, lifecycle.Restore, access.ActionRestore, func(_ *db.Repository, news *db.News) ([]string, error) {
		news.IsDeleted = false
		return []string{db.Columns.News.IsDeleted}, nil
	})
}

type applyFunc func(tx *db.Repository, news *db.News) (columns []string, err error)

// transition runs existence check, guard, state machine and persist for a single item.
// Idempotent actions (publish, archive, unarchive) treat ErrAlreadyInState as success.
func (m *Manager) transition(ctx context.Context, p access.Principal, id int, action lifecycle.Action, guard access.Action, apply applyFunc) (*News, error) {
	changed := true
	err := m.inTx(ctx, string(action)+" news", func(tx *db.Repository) error {
		if action == lifecycle.Publish {
			if err := tx.LockTable(ctx, newsTable); err != nil {
				return err
			}
		}

		news, err := lockNews(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := access.Check(p, guard, newsResource(news)); err != nil {
			return err
		}

		if _, err := lifecycle.Next(id, statusOf(news), action); err != nil {
			if errors.Is(err, domain.ErrAlreadyInState) && idempotent(action) {
				changed = false
				return nil
			}
			return err
		}

		columns, err := apply(tx, news)
		if err != nil {
			return err
		}
		news.UpdatedAt = m.now()

		return tx.UpdateNews(ctx, news, append(columns, db.Columns.News.UpdatedAt)...)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		m.invalidate(ctx)
		m.logger.InfoContext(ctx, "news state changed", "newsId", id, "action", action, "principalId", p.ID)
	} else {
		m.logger.DebugContext(ctx, "news already in state", "newsId", id, "action", action)
	}

	if action == lifecycle.SoftDelete {
		return nil, nil
	}

	return m.reloadNews(ctx, id)
}

func idempotent(action lifecycle.Action) bool {
	switch action {
	case lifecycle.Publish, lifecycle.Archive, lifecycle.Unarchive:
		return true
	}

	return false
}

// ReorderNews puts the named public items first, in the given order, and returns the public listing.
func (m *Manager) ReorderNews(ctx context.Context, p access.Principal, ids []int) ([]News, error) {
	var order []int
	err := m.inTx(ctx, "reorder news", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, newsTable); err != nil {
			return err
		}

		items, err := tx.NewsOrder(ctx)
		if err != nil {
			return err
		}

		ordered, changed, err := ordering.Reorder(items, ids)
		if err != nil {
			return err
		}

		if err := access.Check(p, access.ActionReorder, access.Resource{Kind: access.KindNews, Public: true}); err != nil {
			return err
		}

		if err := tx.SetNewsOrders(ctx, changed); err != nil {
			return err
		}
		order = ordering.IDs(ordered)

		return nil
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)
	m.logger.InfoContext(ctx, "news reordered", "order", order, "principalId", p.ID)

	list, err := m.db.PublishedNews(ctx, &db.NewsSearch{})
	if err != nil {
		return nil, m.storageErr(ctx, "published news", err)
	}

	return NewNewsList(list), nil
}

func lockNews(ctx context.Context, tx *db.Repository, id int) (*db.News, error) {
	news, err := tx.NewsByID(ctx, id, true)
	if err != nil {
		return nil, err
	} else if news == nil {
		return nil, domain.NewNotFound("news", id)
	}

	return news, nil
}

func (m *Manager) reloadNews(ctx context.Context, id int) (*News, error) {
	n, err := m.db.NewsByID(ctx, id, false)
	if err != nil {
		return nil, m.storageErr(ctx, "news by id", err)
	} else if n == nil {
		return nil, domain.NewNotFound("news", id)
	}

	news := NewNews(n)
	return &news, nil
}
