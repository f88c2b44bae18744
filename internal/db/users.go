package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
)

const UsersUsernameKey = "users_username_key"

func (r *Repository) UserByID(ctx context.Context, userID int) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."userId" = ?`, userID).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UserByUsername matches case-insensitively.
func (r *Repository) UserByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`LOWER("t"."username") = LOWER(?)`, username).
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *Repository) Users(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.ModelContext(ctx, &users).
		OrderExpr(`"t"."userId" ASC`).
		Select()
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return users, nil
}

func (r *Repository) CreateUser(ctx context.Context, user *User) error {
	if _, err := r.db.ModelContext(ctx, user).Insert(); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) TouchUserLogin(ctx context.Context, userID int, at time.Time) error {
	_, err := r.db.ModelContext(ctx, (*User)(nil)).
		Set(`"lastLoginAt" = ?`, at).
		Where(`"t"."userId" = ?`, userID).
		Update()
	if err != nil {
		return fmt.Errorf("failed to update user login: %w", err)
	}

	return nil
}

func (r *Repository) UserForUpdate(ctx context.Context, userID int) (*User, error) {
	user := &User{}
	err := r.db.ModelContext(ctx, user).
		Where(`"t"."userId" = ?`, userID).
		For("UPDATE").
		Select()

	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get user for update: %w", err)
	}

	return user, nil
}

func (r *Repository) UpdateUser(ctx context.Context, user *User, columns ...string) error {
	_, err := r.db.ModelContext(ctx, user).
		Column(columns...).
		WherePK().
		Update()
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *Repository) CountActiveAdmins(ctx context.Context) (int, error) {
	count, err := r.db.ModelContext(ctx, (*User)(nil)).
		Where(`"t"."role" = ?`, "admin").
		Where(`"t"."isActive"`).
		Count()
	if err != nil {
		return 0, fmt.Errorf("failed to count active admins: %w", err)
	}

	return count, nil
}
