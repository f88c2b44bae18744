package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

// Users handles GET /api/v1/admin/users
// @Summary Staff accounts
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} rest.User
// @Failure 401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/users [get]
func (h *Handler) Users(c echo.Context) error {
	list, err := h.manager.Users(c.Request().Context(), principal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewStaffUser))
}

// UserByID handles GET /api/v1/admin/users/:id
// @Summary Staff account by id
// @Tags admin-users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} rest.User
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/users/{id} [get]
func (h *Handler) UserByID(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	user, err := h.manager.UserByID(c.Request().Context(), principal(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewStaffUser(*user))
}

// CreateUser handles POST /api/v1/admin/users
// @Summary Create a staff account
// @Tags admin-users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body newsportal.UserInput true "Account"
// @Success 201 {object} rest.User
// @Failure 400,401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/users [post]
func (h *Handler) CreateUser(c echo.Context) error {
	var in newsportal.UserInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	user, err := h.manager.CreateUser(c.Request().Context(), principal(c), in)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewStaffUser(*user))
}

// UpdateUser handles PATCH /api/v1/admin/users/:id
// @Summary Change role, password or active flag
// @Tags admin-users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body newsportal.UserPatch true "Changed fields"
// @Success 200 {object} rest.User
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/users/{id} [patch]
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var patch newsportal.UserPatch
	if err := c.Bind(&patch); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	user, err := h.manager.UpdateUser(c.Request().Context(), principal(c), id, patch)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewStaffUser(*user))
}

// DeactivateUser handles DELETE /api/v1/admin/users/:id
// @Summary Deactivate a staff account
// @Description The last active admin cannot be deactivated
// @Tags admin-users
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 204
// @Failure 400,401,403,404,409,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/users/{id} [delete]
func (h *Handler) DeactivateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.manager.DeactivateUser(c.Request().Context(), principal(c), id); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
