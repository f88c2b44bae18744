package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

// Seed is the YAML fixture format accepted by `admin seed`.
type Seed struct {
	Users []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Role     string `yaml:"role"`
	} `yaml:"users"`
	Members    []newsportal.MemberInput    `yaml:"members"`
	AboutCards []newsportal.AboutCardInput `yaml:"aboutCards"`
	Background *newsportal.BackgroundPatch `yaml:"background"`
}

func parseSeed(r io.Reader) (*Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	for i, u := range s.Users {
		if access.NormalizeRole(u.Role) == access.RoleAnonymous {
			return nil, fmt.Errorf("users[%d]: unknown role %q", i, u.Role)
		}
	}

	return &s, nil
}

func seedCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load initial staff, roster, about cards and background from YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := parseSeed(f)
			if err != nil {
				return err
			}

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

			manager := newsportal.NewManager(repo, logger, newsportal.Options{MemberRoles: cfg.Members.Roles})
			return applySeed(cmd.Context(), repo, manager, logger, s)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "path to seed file")

	return cmd
}

// applySeed skips users and members that already exist. About cards are
// only seeded into an empty collection.
func applySeed(ctx context.Context, repo *db.Repository, manager *newsportal.Manager, logger *slog.Logger, s *Seed) error {
	for _, u := range s.Users {
		existing, err := repo.UserByUsername(ctx, u.Username)
		if err != nil {
			return err
		}
		if existing != nil {
			logger.Info("user exists, skipped", "username", existing.Username)
			continue
		}

		if _, err := addUser(ctx, repo, u.Username, u.Password, u.Role); err != nil {
			return fmt.Errorf("user %s: %w", u.Username, err)
		}
		logger.Info("user created", "username", u.Username)
	}

	p, err := seedPrincipal(ctx, repo)
	if err != nil {
		return err
	}

	for _, in := range s.Members {
		m, err := manager.CreateMember(ctx, p, in)
		var verr *domain.ValidationError
		if errors.As(err, &verr) && verr.HasField("name") {
			logger.Info("member skipped", "name", in.Name, "error", err)
			continue
		} else if err != nil {
			return fmt.Errorf("member %s: %w", in.Name, err)
		}
		logger.Info("member created", "memberId", m.ID, "name", m.Name)
	}

	cards, err := manager.AboutCards(ctx)
	if err != nil {
		return err
	}
	if len(cards) > 0 && len(s.AboutCards) > 0 {
		logger.Info("about cards exist, skipped", "count", len(cards))
	} else {
		for _, in := range s.AboutCards {
			c, err := manager.CreateAboutCard(ctx, p, in)
			if err != nil {
				return fmt.Errorf("about card %s: %w", in.Title, err)
			}
			logger.Info("about card created", "aboutCardId", c.ID, "title", c.Title)
		}
	}

	if s.Background != nil {
		if _, err := manager.UpdateBackground(ctx, p, *s.Background); err != nil {
			return fmt.Errorf("background: %w", err)
		}
		logger.Info("background updated")
	}

	return nil
}

// seedPrincipal acts as the first active admin account.
func seedPrincipal(ctx context.Context, repo *db.Repository) (access.Principal, error) {
	users, err := repo.Users(ctx)
	if err != nil {
		return access.Principal{}, err
	}

	for _, u := range users {
		if u.IsActive && u.Role == string(access.RoleAdmin) {
			return access.Principal{ID: u.ID, Role: access.RoleAdmin}, nil
		}
	}

	return access.Principal{}, errors.New("seed requires an active admin user")
}
