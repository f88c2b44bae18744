package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

// Background handles GET /api/v1/settings/background
// @Summary Site background
// @Tags settings
// @Produce json
// @Success 200 {object} rest.Background
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/v1/settings/background [get]
func (h *Handler) Background(c echo.Context) error {
	bg, err := h.manager.Background(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewBackground(bg))
}

// UpdateBackground handles PUT /api/v1/admin/settings/background
// @Summary Change site background
// @Tags admin-settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body newsportal.BackgroundPatch true "Changed fields"
// @Success 200 {object} rest.Background
// @Failure 400,401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/settings/background [put]
func (h *Handler) UpdateBackground(c echo.Context) error {
	var patch newsportal.BackgroundPatch
	if err := c.Bind(&patch); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	bg, err := h.manager.UpdateBackground(c.Request().Context(), principal(c), patch)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewBackground(bg))
}
