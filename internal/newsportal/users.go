package newsportal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/auth"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

const usersTable = "users"

var userResource = access.Resource{Kind: access.KindUser}

func (m *Manager) Users(ctx context.Context, p access.Principal) ([]User, error) {
	if err := access.Check(p, access.ActionRead, userResource); err != nil {
		return nil, err
	}

	list, err := m.db.Users(ctx)
	if err != nil {
		return nil, m.storageErr(ctx, "users", err)
	}

	return NewUsers(list), nil
}

func (m *Manager) UserByID(ctx context.Context, p access.Principal, id int) (*User, error) {
	if err := access.Check(p, access.ActionRead, userResource); err != nil {
		return nil, err
	}

	user, err := m.db.UserByID(ctx, id)
	if err != nil {
		return nil, m.storageErr(ctx, "user by id", err)
	} else if user == nil {
		return nil, domain.NewNotFound("user", id)
	}

	res := NewUser(user)
	return &res, nil
}

// CreateUser adds an active staff account. Usernames are unique ignoring case.
func (m *Manager) CreateUser(ctx context.Context, p access.Principal, in UserInput) (*User, error) {
	if err := access.Check(p, access.ActionCreate, userResource); err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	user := &db.User{
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    m.now(),
	}

	err = m.inTx(ctx, "create user", func(tx *db.Repository) error {
		if err := tx.LockTable(ctx, usersTable); err != nil {
			return err
		}

		existing, err := tx.UserByUsername(ctx, in.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.NewValidationError(domain.FieldError{
				Field:   "username",
				Message: "user " + strconv.Quote(existing.Username) + " already exists",
			})
		}

		return usernameErr(tx.CreateUser(ctx, user))
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "user created", "userId", user.ID, "username", user.Username, "role", user.Role, "principalId", p.ID)

	res := NewUser(user)
	return &res, nil
}

// UpdateUser changes role, password or the active flag. The last active admin
// can be neither demoted nor deactivated.
func (m *Manager) UpdateUser(ctx context.Context, p access.Principal, id int, patch UserPatch) (*User, error) {
	if err := access.Check(p, access.ActionUpdate, userResource); err != nil {
		return nil, err
	}

	patch.normalize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var hash string
	if patch.Password != nil {
		var err error
		if hash, err = auth.HashPassword(*patch.Password); err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	var user *db.User
	err := m.inTx(ctx, "update user", func(tx *db.Repository) error {
		var err error
		if user, err = lockUser(ctx, tx, id); err != nil {
			return err
		}
		wasActiveAdmin := isActiveAdmin(user)

		var columns []string
		if patch.Role != nil && *patch.Role != user.Role {
			user.Role = *patch.Role
			columns = append(columns, db.Columns.User.Role)
		}
		if patch.IsActive != nil && *patch.IsActive != user.IsActive {
			user.IsActive = *patch.IsActive
			columns = append(columns, db.Columns.User.IsActive)
		}
		if hash != "" {
			user.PasswordHash = hash
			columns = append(columns, db.Columns.User.PasswordHash)
		}
		if len(columns) == 0 {
			return nil
		}

		if wasActiveAdmin && !isActiveAdmin(user) {
			if err := checkNotLastAdmin(ctx, tx, id); err != nil {
				return err
			}
		}

		return tx.UpdateUser(ctx, user, columns...)
	})
	if err != nil {
		return nil, err
	}

	m.logger.InfoContext(ctx, "user updated", "userId", id, "role", user.Role, "isActive", user.IsActive,
		"passwordChanged", hash != "", "principalId", p.ID)

	res := NewUser(user)
	return &res, nil
}

// DeactivateUser disables the account. Tokens already issued stop working on the next request.
func (m *Manager) DeactivateUser(ctx context.Context, p access.Principal, id int) error {
	if err := access.Check(p, access.ActionDelete, userResource); err != nil {
		return err
	}

	err := m.inTx(ctx, "deactivate user", func(tx *db.Repository) error {
		user, err := lockUser(ctx, tx, id)
		if err != nil {
			return err
		}

		if !user.IsActive {
			return domain.AlreadyInState("user", id, "inactive", "deactivate")
		}

		if isActiveAdmin(user) {
			if err := checkNotLastAdmin(ctx, tx, id); err != nil {
				return err
			}
		}

		user.IsActive = false
		return tx.UpdateUser(ctx, user, db.Columns.User.IsActive)
	})
	if err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "user deactivated", "userId", id, "principalId", p.ID)

	return nil
}

// lockUser takes the users table lock first so admin counts stay stable until commit.
func lockUser(ctx context.Context, tx *db.Repository, id int) (*db.User, error) {
	if err := tx.LockTable(ctx, usersTable); err != nil {
		return nil, err
	}

	user, err := tx.UserForUpdate(ctx, id)
	if err != nil {
		return nil, err
	} else if user == nil {
		return nil, domain.NewNotFound("user", id)
	}

	return user, nil
}

func isActiveAdmin(u *db.User) bool {
	return u.IsActive && access.Role(u.Role) == access.RoleAdmin
}

func checkNotLastAdmin(ctx context.Context, tx *db.Repository, id int) error {
	admins, err := tx.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return domain.NewValidationError(domain.FieldError{
			Field:   "role",
			Message: fmt.Sprintf("user %d is the last active admin", id),
		})
	}

	return nil
}

func usernameErr(err error) error {
	if db.IsUniqueViolation(err, db.UsersUsernameKey) {
		return domain.NewValidationError(domain.FieldError{Field: "username", Message: "user with this name already exists"})
	}

	return err
}
