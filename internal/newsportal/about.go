package newsportal

import (
	"context"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

const aboutCardsTable = "aboutCards"

var aboutCardResource = access.Resource{Kind: access.KindAboutCard}

func (m *Manager) AboutCards(ctx context.Context) ([]AboutCard, error) {
	return cached(ctx, m, "aboutCards", func() ([]AboutCard, error) {
		list, err := m.db.AboutCards(ctx)
		if err != nil {
			return nil, m.storageErr(ctx, "about cards", err)
		}

		return NewAboutCards(list), nil
	})
}

// CreateAboutCard appends the card after the last one.
func (m *Manager) CreateAboutCard(ctx context.Context, p access.Principal, in AboutCardInput) (*AboutCard, error) {
	if err := access.Check(p, access.ActionCreate, aboutCardResource); err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := m.now()
	card := &db.AboutCard{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    optional(in.ImageURL),
		Style:       in.Style,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := m.inTx(ctx, "create about card", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, aboutCardsTable); err != nil {
			return err
		}

		items, err := tx.AboutCardOrder(ctx)
		if err != nil {
			return err
		}
		card.DisplayOrder = ordering.Next(items)

		return tx.CreateAboutCard(ctx, card)
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)

	res := NewAboutCard(card)
	return &res, nil
}

func (m *Manager) UpdateAboutCard(ctx context.Context, p access.Principal, id int, patch AboutCardPatch) (*AboutCard, error) {
	var card *db.AboutCard
	err := m.inTx(ctx, "update about card", func(tx *db.Repository) error {
		var err error
		if card, err = lockAboutCard(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionUpdate, aboutCardResource); err != nil {
			return err
		}

		patch.normalize()
		if err := patch.Validate(); err != nil {
			return err
		}

		columns := []string{db.Columns.AboutCard.UpdatedAt}
		if patch.Title != nil {
			card.Title = *patch.Title
			columns = append(columns, db.Columns.AboutCard.Title)
		}
		if patch.Description != nil {
			card.Description = *patch.Description
			columns = append(columns, db.Columns.AboutCard.Description)
		}
		if patch.ImageURL != nil {
			card.ImageURL = optional(patch.ImageURL)
			columns = append(columns, db.Columns.AboutCard.ImageURL)
		}
		if patch.Style != nil {
			card.Style = *patch.Style
			columns = append(columns, db.Columns.AboutCard.Style)
		}
		card.UpdatedAt = m.now()

		return tx.UpdateAboutCard(ctx, card, columns...)
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)

	res := NewAboutCard(card)
	return &res, nil
}

func (m *Manager) DeleteAboutCard(ctx context.Context, p access.Principal, id int) error {
	err := m.inTx(ctx, "delete about card", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, aboutCardsTable); err != nil {
			return err
		}

		if _, err := lockAboutCard(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionDelete, aboutCardResource); err != nil {
			return err
		}

		items, err := tx.AboutCardOrder(ctx)
		if err != nil {
			return err
		}

		if err := tx.DeleteAboutCard(ctx, id); err != nil {
			return err
		}
		_, changed := ordering.Remove(items, id)

		return tx.SetAboutCardOrders(ctx, changed)
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx)
	m.logger.InfoContext(ctx, "about card deleted", "aboutCardId", id, "principalId", p.ID)

	return nil
}

func (m *Manager) MoveAboutCard(ctx context.Context, p access.Principal, id, newIndex int) ([]AboutCard, error) {
	err := m.inTx(ctx, "move about card", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, aboutCardsTable); err != nil {
			return err
		}

		if _, err := lockAboutCard(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionReorder, aboutCardResource); err != nil {
			return err
		}

		items, err := tx.AboutCardOrder(ctx)
		if err != nil {
			return err
		}

		_, changed, err := ordering.Move(items, id, newIndex)
		if err != nil {
			return err
		}

		return tx.SetAboutCardOrders(ctx, changed)
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)

	list, err := m.db.AboutCards(ctx)
	if err != nil {
		return nil, m.storageErr(ctx, "about cards", err)
	}

	return NewAboutCards(list), nil
}

func lockAboutCard(ctx context.Context, tx *db.Repository, id int) (*db.AboutCard, error) {
	card, err := tx.AboutCardByID(ctx, id, true)
	if err != nil {
		return nil, err
	} else if card == nil {
		return nil, domain.NewNotFound("aboutCard", id)
	}

	return card, nil
}
