package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

// AboutCards handles GET /api/v1/about-cards
// @Summary About page cards in display order
// @Tags about
// @Produce json
// @Success 200 {array} rest.AboutCard
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/v1/about-cards [get]
func (h *Handler) AboutCards(c echo.Context) error {
	list, err := h.manager.AboutCards(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewAboutCard))
}

// CreateAboutCard handles POST /api/v1/admin/about-cards
// @Summary Append an about card
// @Tags admin-about
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body newsportal.AboutCardInput true "Card"
// @Success 201 {object} rest.AboutCard
// @Failure 400,401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/about-cards [post]
func (h *Handler) CreateAboutCard(c echo.Context) error {
	var in newsportal.AboutCardInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	card, err := h.manager.CreateAboutCard(c.Request().Context(), principal(c), in)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewAboutCard(*card))
}

// UpdateAboutCard handles PATCH /api/v1/admin/about-cards/:id
// @Summary Edit an about card
// @Tags admin-about
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body newsportal.AboutCardPatch true "Changed fields"
// @Success 200 {object} rest.AboutCard
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/about-cards/{id} [patch]
func (h *Handler) UpdateAboutCard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var patch newsportal.AboutCardPatch
	if err := c.Bind(&patch); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	card, err := h.manager.UpdateAboutCard(c.Request().Context(), principal(c), id, patch)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewAboutCard(*card))
}

// DeleteAboutCard handles DELETE /api/v1/admin/about-cards/:id
// @Summary Remove an about card
// @Tags admin-about
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Success 204
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/about-cards/{id} [delete]
func (h *Handler) DeleteAboutCard(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.manager.DeleteAboutCard(c.Request().Context(), principal(c), id); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MoveAboutCard handles POST /api/v1/admin/about-cards/:id/move
// @Summary Move an about card
// @Tags admin-about
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Card ID"
// @Param request body rest.MoveRequest true "Zero-based position"
// @Success 200 {array} rest.AboutCard
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/about-cards/{id}/move [post]
func (h *Handler) MoveAboutCard(c echo.Context) error {
	id, position, err := moveRequest(c)
	if err != nil {
		return h.handleError(c, err)
	}

	list, err := h.manager.MoveAboutCard(c.Request().Context(), principal(c), id, position)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewAboutCard))
}
