// Package auth is the credential verifier: it checks passwords, issues tokens
// and maps a bearer token to a principal.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

// UserStore is the part of the repository the verifier needs.
type UserStore interface {
	UserByID(ctx context.Context, userID int) (*db.User, error)
	UserByUsername(ctx context.Context, username string) (*db.User, error)
	TouchUserLogin(ctx context.Context, userID int, at time.Time) error
}

type Service struct {
	users  UserStore
	tokens *TokenService
	logger *slog.Logger
}

func NewService(users UserStore, tokens *TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      db.User
}

// Login checks credentials. Unknown users, inactive users and wrong passwords
// produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewStorageError("get user", err)
	}

	if user == nil || !user.IsActive || !CheckPassword(user.PasswordHash, password) {
		s.logger.WarnContext(ctx, "login rejected", "username", username)
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated)
	}

	token, expiresAt, err := s.tokens.Issue(principalOf(user))
	if err != nil {
		return nil, err
	}

	if err := s.users.TouchUserLogin(ctx, user.ID, time.Now()); err != nil {
		s.logger.ErrorContext(ctx, "failed to record login", "userId", user.ID, "error", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

// Authenticate maps a bearer token to a principal. The role is read from the
// stored user, so demoted or deactivated users lose access immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (access.Principal, error) {
	claimed, err := s.tokens.Verify(token)
	if err != nil {
		return access.Anonymous, err
	}

	user, err := s.users.UserByID(ctx, claimed.ID)
	if err != nil {
		return access.Anonymous, domain.NewStorageError("get user", err)
	}

	if user == nil || !user.IsActive {
		return access.Anonymous, fmt.Errorf("%w: user %d is not active", domain.ErrUnauthenticated, claimed.ID)
	}

	return principalOf(user), nil
}

// User returns the stored user behind a principal.
func (s *Service) User(ctx context.Context, p access.Principal) (*db.User, error) {
	if !p.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.users.UserByID(ctx, p.ID)
	if err != nil {
		return nil, domain.NewStorageError("get user", err)
	} else if user == nil {
		return nil, domain.NewNotFound("user", p.ID)
	}

	return user, nil
}

func principalOf(user *db.User) access.Principal {
	return access.Principal{ID: user.ID, Role: access.NormalizeRole(user.Role)}
}
