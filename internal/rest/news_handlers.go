package rest

import (
	"net/http"
	"strconv"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, badRequest("invalid id")
	}

	return id, nil
}

func newsSearch(c echo.Context) (*db.NewsSearch, error) {
	var search db.NewsSearch
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &search); err != nil {
		return nil, badRequest("invalid request parameters")
	}

	if search.Limit < 0 || search.Offset < 0 {
		return nil, badRequest("invalid paging parameters")
	}

	return &search, nil
}

// PublishedNews handles GET /api/v1/news
// @Summary Public news
// @Description Published news in listing order: displayOrder, then newest first
// @Tags news
// @Produce json
// @Param limit query int false "Page size (default 100, max 1000)"
// @Param page query int false "Page number, 1-based"
// @Param authorId query int false "Filter by author"
// @Param q query string false "Title search"
// @Success 200 {object} rest.NewsList
// @Failure 400,500 {object} rest.ErrorResponse
// @Router /api/v1/news [get]
func (h *Handler) PublishedNews(c echo.Context) error {
	search, err := newsSearch(c)
	if err != nil {
		return h.handleError(c, err)
	}

	page, err := h.manager.PublishedNews(c.Request().Context(), search)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNewsList(page))
}

// NewsByID handles GET /api/v1/news/:id
// @Summary Public news item
// @Tags news
// @Produce json
// @Param id path int true "News ID"
// @Success 200 {object} rest.News
// @Failure 400,404,500 {object} rest.ErrorResponse
// @Router /api/v1/news/{id} [get]
func (h *Handler) NewsByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	news, err := h.manager.NewsByID(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNews(*news))
}

// NewsBySlug handles GET /api/v1/news/slug/:slug
// @Summary Public news item by slug
// @Tags news
// @Produce json
// @Param slug path string true "News slug"
// @Success 200 {object} rest.News
// @Failure 404,500 {object} rest.ErrorResponse
// @Router /api/v1/news/slug/{slug} [get]
func (h *Handler) NewsBySlug(c echo.Context) error {
	news, err := h.manager.NewsBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNews(*news))
}

// AdminNews handles GET /api/v1/admin/news
// @Summary News by tab
// @Description Non-deleted news split into published, drafts and archived
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Param authorId query int false "Filter by author"
// @Param q query string false "Title search"
// @Success 200 {object} rest.AdminNewsTabs
// @Failure 401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news [get]
func (h *Handler) AdminNews(c echo.Context) error {
	search, err := newsSearch(c)
	if err != nil {
		return h.handleError(c, err)
	}

	tabs, err := h.manager.AdminNews(c.Request().Context(), principal(c), search)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewAdminNewsTabs(tabs))
}

// TrashNews handles GET /api/v1/admin/news/trash
// @Summary Deleted news
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Success 200 {array} rest.News
// @Failure 401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/trash [get]
func (h *Handler) TrashNews(c echo.Context) error {
	search, err := newsSearch(c)
	if err != nil {
		return h.handleError(c, err)
	}

	list, err := h.manager.TrashNews(c.Request().Context(), principal(c), search)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewNews))
}

// AdminNewsByID handles GET /api/v1/admin/news/:id
// @Summary Any news item
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} rest.News
// @Failure 400,401,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id} [get]
func (h *Handler) AdminNewsByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	news, err := h.manager.AdminNewsByID(c.Request().Context(), principal(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNews(*news))
}

// CreateNews handles POST /api/v1/admin/news
// @Summary Create a draft
// @Tags admin-news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body newsportal.NewsInput true "News"
// @Success 201 {object} rest.News
// @Failure 400,401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news [post]
func (h *Handler) CreateNews(c echo.Context) error {
	var in newsportal.NewsInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	news, err := h.manager.CreateNews(c.Request().Context(), principal(c), in)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewNews(*news))
}

// UpdateNews handles PATCH /api/v1/admin/news/:id
// @Summary Edit news
// @Description Changes only the fields present in the body; publication state is untouched
// @Tags admin-news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Param request body newsportal.NewsPatch true "Changed fields"
// @Success 200 {object} rest.News
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id} [patch]
func (h *Handler) UpdateNews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var patch newsportal.NewsPatch
	if err := c.Bind(&patch); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	news, err := h.manager.UpdateNews(c.Request().Context(), principal(c), id, patch)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNews(*news))
}

// SoftDeleteNews handles DELETE /api/v1/admin/news/:id
// @Summary Move news to trash
// @Tags admin-news
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 204
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id} [delete]
func (h *Handler) SoftDeleteNews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.manager.SoftDeleteNews(c.Request().Context(), principal(c), id); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

type newsTransition func(h *Handler, c echo.Context, id int) (*newsportal.News, error)

func (h *Handler) newsTransition(c echo.Context, fn newsTransition) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	news, err := fn(h, c, id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNews(*news))
}

// PublishNews handles POST /api/v1/admin/news/:id/publish
// @Summary Publish a draft
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} rest.News
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id}/publish [post]
func (h *Handler) PublishNews(c echo.Context) error {
	return h.newsTransition(c, func(h *Handler, c echo.Context, id int) (*newsportal.News, error) {
		return h.manager.PublishNews(c.Request().Context(), principal(c), id)
	})
}

// ArchiveNews handles POST /api/v1/admin/news/:id/archive
// @Summary Archive published news
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} rest.News
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id}/archive [post]
func (h *Handler) ArchiveNews(c echo.Context) error {
	return h.newsTransition(c, func(h *Handler, c echo.Context, id int) (*newsportal.News, error) {
		return h.manager.ArchiveNews(c.Request().Context(), principal(c), id)
	})
}

// UnarchiveNews handles POST /api/v1/admin/news/:id/unarchive
// @Summary Return archived news to the public listing
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} rest.News
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id}/unarchive [post]
func (h *Handler) UnarchiveNews(c echo.Context) error {
	return h.newsTransition(c, func(h *Handler, c echo.Context, id int) (*newsportal.News, error) {
		return h.manager.UnarchiveNews(c.Request().Context(), principal(c), id)
	})
}

// RestoreNews handles POST /api/v1/admin/news/:id/restore
// @Summary Restore news from trash
// @Tags admin-news
// @Produce json
// @Security BearerAuth
// @Param id path int true "News ID"
// @Success 200 {object} rest.News
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/{id}/restore [post]
func (h *Handler) RestoreNews(c echo.Context) error {
	return h.newsTransition(c, func(h *Handler, c echo.Context, id int) (*newsportal.News, error) {
		return h.manager.RestoreNews(c.Request().Context(), principal(c), id)
	})
}

// ReorderNews handles PUT /api/v1/admin/news/order
// @Summary Reorder public news
// @Description Named ids take positions 0..k-1, the rest follow in their previous order
// @Tags admin-news
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.ReorderRequest true "News ids"
// @Success 200 {array} rest.News
// @Failure 400,401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/news/order [put]
func (h *Handler) ReorderNews(c echo.Context) error {
	var req ReorderRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	list, err := h.manager.ReorderNews(c.Request().Context(), principal(c), req.IDs)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewNews))
}
