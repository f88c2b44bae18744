package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

const testSecret = "test-secret"

// noOpLogger creates a logger that discards all output for tests
func noOpLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// mockUserStore is a manual stub implementation of UserStore
type mockUserStore struct {
	userByIDFunc       func(ctx context.Context, userID int) (*db.User, error)
	userByUsernameFunc func(ctx context.Context, username string) (*db.User, error)
	touched            []int
}

func (m *mockUserStore) UserByID(ctx context.Context, userID int) (*db.User, error) {
	if m.userByIDFunc != nil {
		return m.userByIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockUserStore) UserByUsername(ctx context.Context, username string) (*db.User, error) {
	if m.userByUsernameFunc != nil {
		return m.userByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserStore) TouchUserLogin(_ context.Context, userID int, _ time.Time) error {
	m.touched = append(m.touched, userID)
	return nil
}

func newTokens(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(testSecret, time.Hour)
	require.NoError(t, err)
	return tokens
}

func testUser(t *testing.T, id int, role string, active bool) *db.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	return &db.User{ID: id, Username: "user", PasswordHash: string(hash), Role: role, IsActive: active}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("long enough")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "long enough"))
	assert.False(t, CheckPassword(hash, "long enougH"))

	_, err = HashPassword("short")
	assert.Error(t, err)
}

func TestNewTokenService_Errors(t *testing.T) {
	_, err := NewTokenService("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService("x", 0)
	assert.Error(t, err)
}

func TestTokenService_IssueVerify(t *testing.T) {
	tokens := newTokens(t)

	token, expiresAt, err := tokens.Issue(access.Principal{ID: 7, Role: access.RoleAuthor})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	p, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, access.Principal{ID: 7, Role: access.RoleAuthor}, p)
}

func TestTokenService_Verify_Rejects(t *testing.T) {
	tokens := newTokens(t)
	token, _, err := tokens.Issue(access.Principal{ID: 7, Role: access.RoleAdmin})
	require.NoError(t, err)

	other, err := NewTokenService("other-secret", time.Hour)
	require.NoError(t, err)

	expired := newTokens(t)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "7", Issuer: issuer, ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		Role:             "admin",
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		verify func() error
	}{
		{name: "Garbage", verify: func() error { _, err := tokens.Verify("not-a-token"); return err }},
		{name: "WrongSecret", verify: func() error { _, err := other.Verify(token); return err }},
		{name: "Expired", verify: func() error { _, err := expired.Verify(token); return err }},
		{name: "AlgNone", verify: func() error { _, err := tokens.Verify(unsigned); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.verify(), domain.ErrUnauthenticated)
		})
	}
}

func TestService_Login(t *testing.T) {
	active := testUser(t, 2, "author", true)
	inactive := testUser(t, 4, "author", false)
	store := &mockUserStore{
		userByUsernameFunc: func(_ context.Context, username string) (*db.User, error) {
			switch username {
			case "alice":
				return active, nil
			case "carol":
				return inactive, nil
			case "broken":
				return nil, errors.New("connection reset")
			}
			return nil, nil
		},
	}
	svc := NewService(store, newTokens(t), noOpLogger())
	ctx := context.Background()

	session, err := svc.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, 2, session.User.ID)
	assert.Equal(t, []int{2}, store.touched)

	for _, tc := range []struct{ username, password string }{
		{"alice", "wrong"},
		{"carol", "correct horse"},
		{"nobody", "correct horse"},
	} {
		_, err := svc.Login(ctx, tc.username, tc.password)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated, tc.username)
	}

	_, err = svc.Login(ctx, "broken", "x")
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestService_Authenticate_UsesStoredRole(t *testing.T) {
	tokens := newTokens(t)
	users := map[int]*db.User{
		1: testUser(t, 1, "author", true),
		4: testUser(t, 4, "admin", false),
	}
	svc := NewService(&mockUserStore{
		userByIDFunc: func(_ context.Context, id int) (*db.User, error) { return users[id], nil },
	}, tokens, noOpLogger())
	ctx := context.Background()

	promoted, _, err := tokens.Issue(access.Principal{ID: 1, Role: access.RoleAdmin})
	require.NoError(t, err)
	p, err := svc.Authenticate(ctx, promoted)
	require.NoError(t, err)
	assert.Equal(t, access.RoleAuthor, p.Role, "role comes from the stored user")

	deactivated, _, err := tokens.Issue(access.Principal{ID: 4, Role: access.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, deactivated)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	deleted, _, err := tokens.Issue(access.Principal{ID: 99, Role: access.RoleAdmin})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, deleted)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestService_User(t *testing.T) {
	svc := NewService(&mockUserStore{
		userByIDFunc: func(_ context.Context, id int) (*db.User, error) {
			if id == 1 {
				return &db.User{ID: 1, Username: "admin"}, nil
			}
			return nil, nil
		},
	}, newTokens(t), noOpLogger())
	ctx := context.Background()

	user, err := svc.User(ctx, access.Principal{ID: 1, Role: access.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	_, err = svc.User(ctx, access.Anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.User(ctx, access.Principal{ID: 2, Role: access.RoleAuthor})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
