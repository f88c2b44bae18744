package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"

	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

func (r *Repository) AboutCards(ctx context.Context) ([]AboutCard, error) {
	var cards []AboutCard
	err := r.db.ModelContext(ctx, &cards).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query about cards: %w", err)
	}

	return cards, nil
}

func (r *Repository) AboutCardByID(ctx context.Context, cardID int, forUpdate bool) (*AboutCard, error) {
	card := &AboutCard{}
	query := r.db.ModelContext(ctx, card).
		Where(`"t"."aboutCardId" = ?`, cardID)
	if forUpdate {
		query = query.For("UPDATE")
	}

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get about card by id: %w", err)
	}

	return card, nil
}

func (r *Repository) AboutCardOrder(ctx context.Context) ([]ordering.Item, error) {
	var cards []AboutCard
	err := r.db.ModelContext(ctx, &cards).
		Column("aboutCardId", "displayOrder").
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query about card order: %w", err)
	}

	items := make([]ordering.Item, len(cards))
	for i := range cards {
		items[i] = ordering.Item{ID: cards[i].ID, Order: cards[i].DisplayOrder}
	}

	ordering.Sort(items)

	return items, nil
}

func (r *Repository) CreateAboutCard(ctx context.Context, card *AboutCard) error {
	if _, err := r.db.ModelContext(ctx, card).Insert(); err != nil {
		return fmt.Errorf("failed to insert about card: %w", err)
	}

	return nil
}

func (r *Repository) UpdateAboutCard(ctx context.Context, card *AboutCard, columns ...string) error {
	_, err := r.db.ModelContext(ctx, card).
		Column(columns...).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update about card: %w", err)
	}

	return nil
}

func (r *Repository) DeleteAboutCard(ctx context.Context, cardID int) error {
	_, err := r.db.ModelContext(ctx, (*AboutCard)(nil)).
		Where(`"t"."aboutCardId" = ?`, cardID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete about card: %w", err)
	}

	return nil
}

func (r *Repository) SetAboutCardOrders(ctx context.Context, items []ordering.Item) error {
	return r.setOrders(ctx, (*AboutCard)(nil), Columns.AboutCard.ID, items)
}
