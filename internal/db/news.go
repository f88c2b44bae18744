package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"

	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

func publicNews(q *orm.Query) *orm.Query {
	return q.
		Where(`"t"."publishedAt" IS NOT NULL`).
		Where(`NOT "t"."isArchived"`).
		Where(`NOT "t"."isDeleted"`)
}

// listingOrder is the public order: manual position first with ties broken by id,
// unpositioned items after them newest first.
func listingOrder(q *orm.Query) *orm.Query {
	return q.
		OrderExpr(`"t"."displayOrder" ASC NULLS LAST`).
		OrderExpr(`CASE WHEN "t"."displayOrder" IS NULL THEN "t"."publishedAt" END DESC NULLS LAST`).
		OrderExpr(`"t"."newsId" ASC`)
}

// NewsByID returns a news item regardless of its state. With forUpdate the row
// stays locked until the surrounding transaction ends.
func (r *Repository) NewsByID(ctx context.Context, newsID int, forUpdate bool) (*News, error) {
	news := &News{}
	query := r.db.ModelContext(ctx, news).
		Where(`"t"."newsId" = ?`, newsID)

	if forUpdate {
		query = query.For("UPDATE")
	} else {
		query = query.Relation("Author")
	}

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by id: %w", err)
	}

	return news, nil
}

// PublishedNewsBySlug returns a publicly visible news item.
func (r *Repository) PublishedNewsBySlug(ctx context.Context, slug string) (*News, error) {
	news := &News{}
	err := publicNews(r.db.ModelContext(ctx, news).Relation("Author")).
		Where(`"t"."slug" = ?`, slug).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get news by slug: %w", err)
	}

	return news, nil
}

// SlugExists checks every row, deleted ones included: slugs are never reclaimed.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*News)(nil)).
		Where(`"t"."slug" = ?`, slug).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}

// PublishedNews lists public news in display order.
func (r *Repository) PublishedNews(ctx context.Context, search *NewsSearch) ([]News, error) {
	var news []News
	query := publicNews(r.db.ModelContext(ctx, &news).Relation("Author"))
	query = listingOrder(search.apply(query))

	if err := search.page(query).Select(); err != nil {
		return nil, fmt.Errorf("failed to query published news: %w", err)
	}

	return news, nil
}

func (r *Repository) PublishedNewsCount(ctx context.Context, search *NewsSearch) (int, error) {
	query := publicNews(r.db.ModelContext(ctx, (*News)(nil)))

	count, err := search.apply(query).Count()
	if err != nil {
		return 0, fmt.Errorf("failed to get published news count: %w", err)
	}

	return count, nil
}

// AdminNews lists every news item that is not soft-deleted.
func (r *Repository) AdminNews(ctx context.Context, search *NewsSearch) ([]News, error) {
	var news []News
	query := r.db.ModelContext(ctx, &news).
		Relation("Author").
		Where(`NOT "t"."isDeleted"`)

	err := listingOrder(search.apply(query)).Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query admin news: %w", err)
	}

	return news, nil
}

// DeletedNews is the trash view.
func (r *Repository) DeletedNews(ctx context.Context, search *NewsSearch) ([]News, error) {
	var news []News
	query := r.db.ModelContext(ctx, &news).
		Relation("Author").
		Where(`"t"."isDeleted"`)

	err := search.page(search.apply(query)).
		OrderExpr(`"t"."updatedAt" DESC`).
		OrderExpr(`"t"."newsId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query deleted news: %w", err)
	}

	return news, nil
}

// NewsOrder returns the positions of public news in listing order.
func (r *Repository) NewsOrder(ctx context.Context) ([]ordering.Item, error) {
	var news []News
	query := publicNews(r.db.ModelContext(ctx, &news).Column("newsId", "displayOrder"))

	if err := listingOrder(query).Select(); err != nil {
		return nil, fmt.Errorf("failed to query news order: %w", err)
	}

	items := make([]ordering.Item, len(news))
	for i := range news {
		items[i] = ordering.Item{ID: news[i].ID}
		if news[i].DisplayOrder != nil {
			items[i].Order = *news[i].DisplayOrder
		} else {
			items[i].Order = -1
		}
	}

	return items, nil
}

// MaxNewsOrder returns the highest position among non-deleted news, or nil.
func (r *Repository) MaxNewsOrder(ctx context.Context) (*int, error) {
	var maxOrder *int
	err := r.db.ModelContext(ctx, (*News)(nil)).
		ColumnExpr(`MAX("t"."displayOrder")`).
		Where(`NOT "t"."isDeleted"`).
		Select(pg.Scan(&maxOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to get max news order: %w", err)
	}

	return maxOrder, nil
}

func (r *Repository) CreateNews(ctx context.Context, news *News) error {
	if _, err := r.db.ModelContext(ctx, news).Insert(); err != nil {
		return fmt.Errorf("failed to insert news: %w", err)
	}

	return nil
}

// UpdateNews writes the given columns of news.
func (r *Repository) UpdateNews(ctx context.Context, news *News, columns ...string) error {
	_, err := r.db.ModelContext(ctx, news).
		Column(columns...).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update news: %w", err)
	}

	return nil
}

func (r *Repository) SetNewsOrders(ctx context.Context, items []ordering.Item) error {
	return r.setOrders(ctx, (*News)(nil), Columns.News.ID, items)
}
