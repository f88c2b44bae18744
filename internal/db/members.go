package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pg/pg/v10"

	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

const (
	MembersNameKey   = "members_name_key"
	MembersLeaderKey = "members_leader_key"
)

// Members returns the roster in display order.
func (r *Repository) Members(ctx context.Context, search *MemberSearch) ([]Member, error) {
	var members []Member
	err := search.apply(r.db.ModelContext(ctx, &members)).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}

	return members, nil
}

// ActiveMembers returns the public roster: leader first, then display order.
func (r *Repository) ActiveMembers(ctx context.Context) ([]Member, error) {
	var members []Member
	err := r.db.ModelContext(ctx, &members).
		Where(`"t"."status" = ?`, MemberStatusActive).
		OrderExpr(`"t"."isLeader" DESC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query active members: %w", err)
	}

	return members, nil
}

func (r *Repository) MemberByID(ctx context.Context, memberID int, forUpdate bool) (*Member, error) {
	member := &Member{}
	query := r.db.ModelContext(ctx, member).
		Where(`"t"."memberId" = ?`, memberID)
	if forUpdate {
		query = query.For("UPDATE")
	}

	err := query.Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get member by id: %w", err)
	}

	return member, nil
}

// MembersByIDs returns the members found among ids.
func (r *Repository) MembersByIDs(ctx context.Context, ids []int) ([]Member, error) {
	if len(ids) == 0 {
		return []Member{}, nil
	}

	var members []Member
	err := r.db.ModelContext(ctx, &members).
		Where(`"t"."memberId" IN (?)`, pg.In(ids)).
		OrderExpr(`"t"."memberId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query members by ids: %w", err)
	}

	return members, nil
}

// MemberNameTaken compares names case-insensitively. excludeID skips the member being renamed.
func (r *Repository) MemberNameTaken(ctx context.Context, name string, excludeID int) (bool, error) {
	exists, err := r.db.ModelContext(ctx, (*Member)(nil)).
		Where(`LOWER("t"."name") = LOWER(?)`, name).
		Where(`"t"."memberId" <> ?`, excludeID).
		Exists()
	if err != nil {
		return false, fmt.Errorf("failed to check member name: %w", err)
	}

	return exists, nil
}

func (r *Repository) MemberOrder(ctx context.Context) ([]ordering.Item, error) {
	var members []Member
	err := r.db.ModelContext(ctx, &members).
		Column("memberId", "displayOrder").
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query member order: %w", err)
	}

	items := make([]ordering.Item, len(members))
	for i := range members {
		items[i] = ordering.Item{ID: members[i].ID, Order: members[i].DisplayOrder}
	}

	ordering.Sort(items)

	return items, nil
}

func (r *Repository) CreateMember(ctx context.Context, member *Member) error {
	if _, err := r.db.ModelContext(ctx, member).Insert(); err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

func (r *Repository) UpdateMember(ctx context.Context, member *Member, columns ...string) error {
	_, err := r.db.ModelContext(ctx, member).
		Column(columns...).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	return nil
}

func (r *Repository) DeleteMember(ctx context.Context, memberID int) error {
	_, err := r.db.ModelContext(ctx, (*Member)(nil)).
		Where(`"t"."memberId" = ?`, memberID).
		Delete()
	if err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}

	return nil
}

func (r *Repository) SetMemberOrders(ctx context.Context, items []ordering.Item) error {
	return r.setOrders(ctx, (*Member)(nil), Columns.Member.ID, items)
}

// ClearLeader removes the leader flag from every member.
func (r *Repository) ClearLeader(ctx context.Context) error {
	_, err := r.db.ModelContext(ctx, (*Member)(nil)).
		Set(`"isLeader" = FALSE`).
		Where(`"t"."isLeader"`).
		Update()
	if err != nil {
		return fmt.Errorf("failed to clear leader: %w", err)
	}

	return nil
}

func (r *Repository) SetLeader(ctx context.Context, memberID int) error {
	_, err := r.db.ModelContext(ctx, (*Member)(nil)).
		Set(`"isLeader" = TRUE`).
		Where(`"t"."memberId" = ?`, memberID).
		Update()
	if err != nil {
		return fmt.Errorf("failed to set leader: %w", err)
	}

	return nil
}

// LeaderIDs normally returns zero or one id.
func (r *Repository) LeaderIDs(ctx context.Context) ([]int, error) {
	var ids []int
	err := r.db.ModelContext(ctx, (*Member)(nil)).
		Column("memberId").
		Where(`"t"."isLeader"`).
		Select(&ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query leader: %w", err)
	}

	return ids, nil
}

// SetMembersField sets one column of several members. Only status and role are accepted.
func (r *Repository) SetMembersField(ctx context.Context, ids []int, column, value string) (int, error) {
	if column != Columns.Member.Status && column != Columns.Member.Role {
		return 0, fmt.Errorf("column %q cannot be bulk updated", column)
	}

	if len(ids) == 0 {
		return 0, nil
	}

	res, err := r.db.ModelContext(ctx, (*Member)(nil)).
		Set(`? = ?`, pg.Ident(column), value).
		Set(`"updatedAt" = NOW()`).
		Where(`"t"."memberId" IN (?)`, pg.In(ids)).
		Update()
	if err != nil {
		return 0, fmt.Errorf("failed to update members %s: %w", column, err)
	}

	return res.RowsAffected(), nil
}
