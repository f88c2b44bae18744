package rpc

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/domain"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := newsportal.NewManager(db.New(nil), logger, newsportal.Options{
		MemberRoles: []string{"Глава клана", "Боец"},
	})

	srv := httptest.NewServer(New(logger, manager))
	t.Cleanup(srv.Close)

	return srv
}

func call(t *testing.T, srv *httptest.Server, method, params string) rpcResponse {
	t.Helper()

	body := `{"jsonrpc":"2.0","id":1,"method":"` + method + `","params":` + params + `}`
	resp, err := http.Post(srv.URL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out rpcResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestServer(t *testing.T) {
	srv := newTestServer(t)

	t.Run("roles", func(t *testing.T) {
		resp := call(t, srv, "site.roles", `{}`)
		require.Nil(t, resp.Error)

		var roles []string
		require.NoError(t, json.Unmarshal(resp.Result, &roles))
		assert.Equal(t, []string{"Глава клана", "Боец"}, roles)
	})

	t.Run("byid rejects non-positive id", func(t *testing.T) {
		resp := call(t, srv, "news.byid", `{"id":0}`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, 400, resp.Error.Code)
		assert.Equal(t, "id must be positive", resp.Error.Message)
	})

	t.Run("positional params", func(t *testing.T) {
		resp := call(t, srv, "news.byid", `[-3]`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, 400, resp.Error.Code)
	})

	t.Run("list rejects negative limit", func(t *testing.T) {
		resp := call(t, srv, "news.list", `{"filter":{"limit":-1}}`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, 400, resp.Error.Code)
	})

	t.Run("unknown method", func(t *testing.T) {
		resp := call(t, srv, "news.delete", `{}`)
		require.NotNil(t, resp.Error)
		assert.Equal(t, zenrpc.MethodNotFound, resp.Error.Code)
	})
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: domain.NewNotFound("news", 7), code: 404},
		{name: "validation", err: domain.NewValidationError(domain.FieldError{Field: "title", Message: "required"}), code: 400},
		{name: "storage", err: domain.NewStorageError("news.list", errors.New("conn reset")), code: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rpcErr *zenrpc.Error
			require.ErrorAs(t, newError(tt.err), &rpcErr)
			assert.Equal(t, tt.code, rpcErr.Code)
		})
	}

	assert.NoError(t, newError(nil))
}

func TestNewsFilter(t *testing.T) {
	limit, page, author := 5, 3, 9
	search := NewsFilter{Limit: &limit, Page: &page, AuthorID: &author}.ToSearch()

	assert.Equal(t, 5, search.GetLimit())
	assert.Equal(t, 10, search.GetOffset())
	assert.Equal(t, &author, search.AuthorID)

	empty := NewsFilter{}.ToSearch()
	assert.Nil(t, empty.AuthorID)
	assert.Zero(t, empty.GetOffset())
}

func TestNewNewsList(t *testing.T) {
	published := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	page := newsportal.NewsPage{
		Items: []newsportal.News{{
			News:       db.News{ID: 1, Title: "Сбор клана", Slug: "sbor-klana", Content: "secret", PublishedAt: &published},
			AuthorName: "admin",
		}},
		Total: 1,
	}

	list := NewNewsList(page)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, "admin", list.Items[0].Author)
	assert.Equal(t, &published, list.Items[0].PublishedAt)

	news := NewNews(page.Items[0])
	assert.Equal(t, "secret", news.Content)
	assert.Equal(t, "sbor-klana", news.Slug)
}
