package newsportal

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
	"github.com/Wintario/sin-city-sentinels/internal/ordering"
)

const membersTable = "members"

var memberResource = access.Resource{Kind: access.KindMember}

// ActiveMembers is the public roster: active members, leader first, then display order.
func (m *Manager) ActiveMembers(ctx context.Context) ([]Member, error) {
	return cached(ctx, m, "members:active", func() ([]Member, error) {
		list, err := m.db.ActiveMembers(ctx)
		if err != nil {
			return nil, m.storageErr(ctx, "active members", err)
		}

		return NewMembers(list), nil
	})
}

// Members is the full roster for staff, optionally filtered by status or role.
func (m *Manager) Members(ctx context.Context, p access.Principal, search *db.MemberSearch) ([]Member, error) {
	if err := access.Check(p, access.ActionRead, memberResource); err != nil {
		return nil, err
	}

	list, err := m.db.Members(ctx, search)
	if err != nil {
		return nil, m.storageErr(ctx, "members", err)
	}

	return NewMembers(list), nil
}

func (m *Manager) CreateMember(ctx context.Context, p access.Principal, in MemberInput) (*Member, error) {
	if err := access.Check(p, access.ActionCreate, memberResource); err != nil {
		return nil, err
	}

	in.normalize()
	verr, err := in.validate(m.roles)
	if err != nil {
		return nil, err
	}

	now := m.now()
	member := &db.Member{
		Name:       in.Name,
		Role:       in.Role,
		Status:     in.Status,
		ProfileURL: optional(in.ProfileURL),
		AvatarURL:  optional(in.AvatarURL),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = m.inTx(ctx, "create member", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, membersTable); err != nil {
			return err
		}

		if err := checkMemberName(ctx, tx, verr, in.Name, 0); err != nil {
			return err
		}

		items, err := tx.MemberOrder(ctx)
		if err != nil {
			return err
		}
		member.DisplayOrder = ordering.Next(items)

		return memberNameErr(tx.CreateMember(ctx, member))
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)
	m.logger.InfoContext(ctx, "member created", "memberId", member.ID, "name", member.Name)

	res := NewMember(member)
	return &res, nil
}

// UpdateMember changes name, avatar and profile link only.
func (m *Manager) UpdateMember(ctx context.Context, p access.Principal, id int, patch MemberPatch) (*Member, error) {
	var member *db.Member
	err := m.inTx(ctx, "update member", func(tx *db.Repository) error {
		var err error
		if member, err = lockMember(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionUpdate, memberResource); err != nil {
			return err
		}

		patch.normalize()
		verr, err := patch.validate()
		if err != nil {
			return err
		}

		columns := []string{db.Columns.Member.UpdatedAt}
		if patch.Name != nil && *patch.Name != member.Name {
			if err := checkMemberName(ctx, tx, verr, *patch.Name, id); err != nil {
				return err
			}
			member.Name = *patch.Name
			columns = append(columns, db.Columns.Member.Name)
		} else if err := verr.OrNil(); err != nil {
			return err
		}
		if patch.ProfileURL != nil {
			member.ProfileURL = optional(patch.ProfileURL)
			columns = append(columns, db.Columns.Member.ProfileURL)
		}
		if patch.AvatarURL != nil {
			member.AvatarURL = optional(patch.AvatarURL)
			columns = append(columns, db.Columns.Member.AvatarURL)
		}
		member.UpdatedAt = m.now()

		return memberNameErr(tx.UpdateMember(ctx, member, columns...))
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)

	res := NewMember(member)
	return &res, nil
}

// DeleteMember removes the member and closes the gap in the roster order.
func (m *Manager) DeleteMember(ctx context.Context, p access.Principal, id int) error {
	err := m.inTx(ctx, "delete member", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, membersTable); err != nil {
			return err
		}

		if _, err := lockMember(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionDelete, memberResource); err != nil {
			return err
		}

		items, err := tx.MemberOrder(ctx)
		if err != nil {
			return err
		}

		if err := tx.DeleteMember(ctx, id); err != nil {
			return err
		}
		_, changed := ordering.Remove(items, id)

		return tx.SetMemberOrders(ctx, changed)
	})
	if err != nil {
		return err
	}

	m.invalidate(ctx)
	m.logger.InfoContext(ctx, "member deleted", "memberId", id, "principalId", p.ID)

	return nil
}

// MoveMember places the member at newIndex (clamped to the end) and returns the roster.
func (m *Manager) MoveMember(ctx context.Context, p access.Principal, id, newIndex int) ([]Member, error) {
	err := m.inTx(ctx, "move member", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, membersTable); err != nil {
			return err
		}

		if _, err := lockMember(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionReorder, memberResource); err != nil {
			return err
		}

		items, err := tx.MemberOrder(ctx)
		if err != nil {
			return err
		}

		_, changed, err := ordering.Move(items, id, newIndex)
		if err != nil {
			return err
		}

		return tx.SetMemberOrders(ctx, changed)
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)

	list, err := m.db.Members(ctx, nil)
	if err != nil {
		return nil, m.storageErr(ctx, "members", err)
	}

	return NewMembers(list), nil
}

// SetLeader makes id the only leader.
func (m *Manager) SetLeader(ctx context.Context, p access.Principal, id int) (*Member, error) {
	var member *db.Member
	err := m.inTx(ctx, "set leader", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, membersTable); err != nil {
			return err
		}

		var err error
		if member, err = lockMember(ctx, tx, id); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionSetLeader, memberResource); err != nil {
			return err
		}

		if err := tx.ClearLeader(ctx); err != nil {
			return err
		}

		if err := tx.SetLeader(ctx, id); err != nil {
			if db.IsUniqueViolation(err, db.MembersLeaderKey) {
				return domain.NewValidationError(domain.FieldError{Field: "isLeader", Message: "another member is already the leader"})
			}
			return err
		}
		member.IsLeader = true

		return nil
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)
	m.logger.InfoContext(ctx, "leader changed", "memberId", id, "principalId", p.ID)

	res := NewMember(member)
	return &res, nil
}

func (m *Manager) SetMembersStatus(ctx context.Context, p access.Principal, ids []int, status string) ([]Member, error) {
	if !slices.Contains(MemberStatuses, status) {
		return m.bulkInvalid(ctx, p, ids, "status", status, MemberStatuses)
	}

	return m.setMembersField(ctx, p, ids, db.Columns.Member.Status, status)
}

func (m *Manager) SetMembersRole(ctx context.Context, p access.Principal, ids []int, role string) ([]Member, error) {
	if !slices.Contains(m.roles, role) {
		return m.bulkInvalid(ctx, p, ids, "role", role, m.roles)
	}

	return m.setMembersField(ctx, p, ids, db.Columns.Member.Role, role)
}

// bulkInvalid reports an unknown value after the existence check and the guard.
func (m *Manager) bulkInvalid(ctx context.Context, p access.Principal, ids []int, field, value string, allowed []string) ([]Member, error) {
	if err := m.checkMembersExist(ctx, m.db, ids); err != nil {
		if !domain.IsKnown(err) {
			return nil, m.storageErr(ctx, "members by ids", err)
		}
		return nil, err
	}

	if err := access.Check(p, access.ActionManage, memberResource); err != nil {
		return nil, err
	}

	return nil, domain.NewValidationError(domain.FieldError{
		Field:   field,
		Message: fmt.Sprintf("%q is not one of %v", value, allowed),
	})
}

func (m *Manager) setMembersField(ctx context.Context, p access.Principal, ids []int, column, value string) ([]Member, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError(domain.FieldError{Field: "ids", Message: "cannot be blank"})
	}

	err := m.inTx(ctx, "set members "+column, func(tx *db.Repository) error {
		if err := m.checkMembersExist(ctx, tx, ids); err != nil {
			return err
		}

		if err := access.Check(p, access.ActionManage, memberResource); err != nil {
			return err
		}

		_, err := tx.SetMembersField(ctx, ids, column, value)
		return err
	})
	if err != nil {
		return nil, err
	}

	m.invalidate(ctx)
	m.logger.InfoContext(ctx, "members updated", "field", column, "value", value, "count", len(ids))

	list, err := m.db.MembersByIDs(ctx, ids)
	if err != nil {
		return nil, m.storageErr(ctx, "members by ids", err)
	}

	return NewMembers(list), nil
}

func (m *Manager) checkMembersExist(ctx context.Context, repo *db.Repository, ids []int) error {
	found, err := repo.MembersByIDs(ctx, ids)
	if err != nil {
		return err
	}

	known := make(map[int]struct{}, len(found))
	for _, mb := range found {
		known[mb.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return domain.NewNotFound("member", id)
		}
	}

	return nil
}

func lockMember(ctx context.Context, tx *db.Repository, id int) (*db.Member, error) {
	member, err := tx.MemberByID(ctx, id, true)
	if err != nil {
		return nil, err
	} else if member == nil {
		return nil, domain.NewNotFound("member", id)
	}

	return member, nil
}

// checkMemberName adds a name conflict to verr and returns all collected field errors.
func checkMemberName(ctx context.Context, tx *db.Repository, verr *domain.ValidationError, name string, excludeID int) error {
	if !verr.HasField("name") {
		taken, err := tx.MemberNameTaken(ctx, name, excludeID)
		if err != nil {
			return err
		}
		if taken {
			verr.Add("name", "member "+strconv.Quote(name)+" already exists")
		}
	}

	return verr.OrNil()
}

func memberNameErr(err error) error {
	if db.IsUniqueViolation(err, db.MembersNameKey) {
		return domain.NewValidationError(domain.FieldError{Field: "name", Message: "member with this name already exists"})
	}

	return err
}
