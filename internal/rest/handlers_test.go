package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/Wintario/sin-city-sentinels/docs"
	"github.com/Wintario/sin-city-sentinels/internal/access"
	"github.com/Wintario/sin-city-sentinels/internal/auth"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

const testPassword = "sentinel-pass"

// mockUserStore serves users from memory.
type mockUserStore struct {
	users map[int]*db.User
}

func (m *mockUserStore) UserByID(_ context.Context, userID int) (*db.User, error) {
	return m.users[userID], nil
}

func (m *mockUserStore) UserByUsername(_ context.Context, username string) (*db.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserStore) TouchUserLogin(context.Context, int, time.Time) error { return nil }

type mockPinger struct{ err error }

func (m mockPinger) Ping(context.Context) error { return m.err }

type testEnv struct {
	echo   *echo.Echo
	tokens *auth.TokenService
}

// newTestEnv builds the router over a manager without a database; only requests
// rejected before any storage access may be sent.
func newTestEnv(t *testing.T, pinger Pinger) *testEnv {
	t.Helper()

	hash, err := auth.HashPassword(testPassword)
	require.NoError(t, err)

	store := &mockUserStore{users: map[int]*db.User{
		1: {ID: 1, Username: "admin", Role: "admin", IsActive: true, PasswordHash: hash},
		2: {ID: 2, Username: "alice", Role: "author", IsActive: true, PasswordHash: hash},
		4: {ID: 4, Username: "carol", Role: "author", IsActive: false, PasswordHash: hash},
	}}

	tokens, err := auth.NewTokenService("test-secret", time.Hour)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := newsportal.NewManager(db.New(nil), logger, newsportal.Options{})
	h := NewHandler(manager, auth.NewService(store, tokens, logger), pinger, logger, []string{"https://sentinels.example"})

	return &testEnv{echo: h.RegisterRoutes(), tokens: tokens}
}

func (e *testEnv) token(t *testing.T, p access.Principal) string {
	t.Helper()
	token, _, err := e.tokens.Issue(p)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func TestHandler_Health(t *testing.T) {
	rec := newTestEnv(t, mockPinger{}).do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = newTestEnv(t, mockPinger{err: errors.New("db down")}).do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_SwaggerDoc(t *testing.T) {
	rec := newTestEnv(t, mockPinger{}).do(http.MethodGet, "/swagger/doc.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/api/v1/admin/news/{id}/publish")
	assert.Contains(t, doc["paths"], "/api/v1/admin/users/{id}")
}

func TestHandler_Authentication(t *testing.T) {
	env := newTestEnv(t, mockPinger{})

	t.Run("AdminRouteWithoutToken", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/admin/news", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/members/roles", "", "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("NonBearerScheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/members/roles", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic YWRtaW46YWRtaW4=")
		rec := httptest.NewRecorder()
		env.echo.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("DeactivatedUser", func(t *testing.T) {
		token := env.token(t, access.Principal{ID: 4, Role: access.RoleAuthor})
		rec := env.do(http.MethodGet, "/api/v1/auth/me", "", token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("PublicRouteAnonymous", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/members/roles", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var roles []string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roles))
		assert.Equal(t, newsportal.DefaultMemberRoles, roles)
	})
}

func TestHandler_LoginAndMe(t *testing.T) {
	env := newTestEnv(t, mockPinger{})

	rec := env.do(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"wrong-pass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", `{"username":"carol","password":"`+testPassword+`"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", `{"username":""}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/auth/login", `{"username":"alice","password":"`+testPassword+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, "alice", login.User.Username)

	rec = env.do(http.MethodGet, "/api/v1/auth/me", "", login.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var me User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, 2, me.UserID)
	assert.Equal(t, "author", me.Role)

	rec = env.do(http.MethodGet, "/api/v1/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_RejectedBeforeStorage(t *testing.T) {
	env := newTestEnv(t, mockPinger{})
	author := env.token(t, access.Principal{ID: 2, Role: access.RoleAuthor})

	t.Run("AuthorCannotChangeBackground", func(t *testing.T) {
		rec := env.do(http.MethodPut, "/api/v1/admin/settings/background", `{"color":"#000000"}`, author)
		require.Equal(t, http.StatusForbidden, rec.Code)

		resp := decodeError(t, rec)
		assert.Equal(t, ErrorResponse{Error: "permission denied", Required: "admin", Current: "author"}, resp)
	})

	t.Run("InvalidNewsListsEveryField", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/admin/news", `{"title":"ab","imageUrl":"not a url"}`, author)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		resp := decodeError(t, rec)
		fields := make([]string, len(resp.Fields))
		for i, f := range resp.Fields {
			fields[i] = f.Field
		}
		assert.Equal(t, []string{"content", "imageUrl", "title"}, fields)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/admin/news", `{"title":`, author)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/news/abc", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = env.do(http.MethodPost, "/api/v1/admin/news/0/publish", "", author)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MoveWithoutPosition", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/admin/members/3/move", `{}`, author)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("BulkWithoutIDs", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/admin/members/status", `{"ids":[],"status":"active"}`, author)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("NegativeLimit", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/news?limit=-5", "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_UsersAdminOnly(t *testing.T) {
	env := newTestEnv(t, mockPinger{})
	admin := env.token(t, access.Principal{ID: 1, Role: access.RoleAdmin})
	author := env.token(t, access.Principal{ID: 2, Role: access.RoleAuthor})

	fieldsOf := func(rec *httptest.ResponseRecorder) []string {
		resp := decodeError(t, rec)
		fields := make([]string, len(resp.Fields))
		for i, f := range resp.Fields {
			fields[i] = f.Field
		}
		return fields
	}

	t.Run("AnonymousList", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/admin/users", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("AuthorList", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/admin/users", "", author)
		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, ErrorResponse{Error: "permission denied", Required: "admin", Current: "author"}, decodeError(t, rec))
	})

	t.Run("AuthorCannotDeactivate", func(t *testing.T) {
		rec := env.do(http.MethodDelete, "/api/v1/admin/users/1", "", author)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("AuthorCannotPromoteSelf", func(t *testing.T) {
		rec := env.do(http.MethodPatch, "/api/v1/admin/users/2", `{"role":"admin"}`, author)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("CreateListsEveryField", func(t *testing.T) {
		rec := env.do(http.MethodPost, "/api/v1/admin/users", `{"username":" x ","password":"short","role":"owner"}`, admin)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"password", "role", "username"}, fieldsOf(rec))
	})

	t.Run("UpdateUnknownRole", func(t *testing.T) {
		rec := env.do(http.MethodPatch, "/api/v1/admin/users/2", `{"role":"owner","password":""}`, admin)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{"password", "role"}, fieldsOf(rec))
	})

	t.Run("InvalidID", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/v1/admin/users/abc", "", admin)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_CORS(t *testing.T) {
	env := newTestEnv(t, mockPinger{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/admin/news", nil)
	req.Header.Set("Origin", "https://sentinels.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	// browsers send preflight header names lowercased
	req.Header.Set("Access-Control-Request-Headers", "authorization")
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://sentinels.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
