package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/auth"
	"github.com/Wintario/sin-city-sentinels/internal/db"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}

	var role string
	add := &cobra.Command{
		Use:   "add [username] [password]",
		Short: "Create an active staff account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			logger := newLogger()
			repo, err := connect(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			user, err := addUser(cmd.Context(), repo, args[0], args[1], role)
			if err != nil {
				return err
			}

			logger.Info("user created", "userId", user.ID, "username", user.Username, "role", user.Role)
			return nil
		},
	}
	add.Flags().StringVar(&role, "role", string(access.RoleAuthor), "account role: admin or author")
	cmd.AddCommand(add)

	return cmd
}

func addUser(ctx context.Context, repo *db.Repository, username, password, role string) (*db.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	if r := access.NormalizeRole(role); r == access.RoleAnonymous {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	existing, err := repo.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("user %q already exists", existing.Username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &db.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
