package rest

import (
	"net/http"

	"github.com/go-pg/urlstruct"
	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

// ActiveMembers handles GET /api/v1/members
// @Summary Public roster
// @Description Active members, leader first, then display order
// @Tags members
// @Produce json
// @Success 200 {array} rest.Member
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/v1/members [get]
func (h *Handler) ActiveMembers(c echo.Context) error {
	list, err := h.manager.ActiveMembers(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewMember))
}

// MemberRoles handles GET /api/v1/members/roles
// @Summary Clan ranks
// @Tags members
// @Produce json
// @Success 200 {array} string
// @Router /api/v1/members/roles [get]
func (h *Handler) MemberRoles(c echo.Context) error {
	return c.JSON(http.StatusOK, h.manager.MemberRoles())
}

// Members handles GET /api/v1/admin/members
// @Summary Full roster
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param status query string false "active, inactive or reserve"
// @Param role query string false "Clan rank"
// @Success 200 {array} rest.Member
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members [get]
func (h *Handler) Members(c echo.Context) error {
	var search db.MemberSearch
	if err := urlstruct.Unmarshal(c.Request().Context(), c.QueryParams(), &search); err != nil {
		return h.handleError(c, badRequest("invalid request parameters"))
	}

	list, err := h.manager.Members(c.Request().Context(), principal(c), &search)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewMember))
}

// CreateMember handles POST /api/v1/admin/members
// @Summary Add a member at the end of the roster
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body newsportal.MemberInput true "Member"
// @Success 201 {object} rest.Member
// @Failure 400,401,403,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members [post]
func (h *Handler) CreateMember(c echo.Context) error {
	var in newsportal.MemberInput
	if err := c.Bind(&in); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	member, err := h.manager.CreateMember(c.Request().Context(), principal(c), in)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusCreated, NewMember(*member))
}

// UpdateMember handles PATCH /api/v1/admin/members/:id
// @Summary Edit name, avatar or profile link
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body newsportal.MemberPatch true "Changed fields"
// @Success 200 {object} rest.Member
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members/{id} [patch]
func (h *Handler) UpdateMember(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	var patch newsportal.MemberPatch
	if err := c.Bind(&patch); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	member, err := h.manager.UpdateMember(c.Request().Context(), principal(c), id, patch)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewMember(*member))
}

// DeleteMember handles DELETE /api/v1/admin/members/:id
// @Summary Remove a member
// @Tags admin-members
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 204
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members/{id} [delete]
func (h *Handler) DeleteMember(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	if err := h.manager.DeleteMember(c.Request().Context(), principal(c), id); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MoveMember handles POST /api/v1/admin/members/:id/move
// @Summary Move a member to a roster position
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Param request body rest.MoveRequest true "Zero-based position"
// @Success 200 {array} rest.Member
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members/{id}/move [post]
func (h *Handler) MoveMember(c echo.Context) error {
	id, position, err := moveRequest(c)
	if err != nil {
		return h.handleError(c, err)
	}

	list, err := h.manager.MoveMember(c.Request().Context(), principal(c), id, position)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewMember))
}

// SetLeader handles POST /api/v1/admin/members/:id/leader
// @Summary Make a member the clan leader
// @Tags admin-members
// @Produce json
// @Security BearerAuth
// @Param id path int true "Member ID"
// @Success 200 {object} rest.Member
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members/{id}/leader [post]
func (h *Handler) SetLeader(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return h.handleError(c, err)
	}

	member, err := h.manager.SetLeader(c.Request().Context(), principal(c), id)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewMember(*member))
}

// SetMembersStatus handles POST /api/v1/admin/members/status
// @Summary Change status of several members
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.BulkStatusRequest true "Member ids and status"
// @Success 200 {array} rest.Member
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members/status [post]
func (h *Handler) SetMembersStatus(c echo.Context) error {
	var req BulkStatusRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	list, err := h.manager.SetMembersStatus(c.Request().Context(), principal(c), req.IDs, req.Status)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewMember))
}

// SetMembersRole handles POST /api/v1/admin/members/role
// @Summary Change rank of several members
// @Tags admin-members
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body rest.BulkRoleRequest true "Member ids and rank"
// @Success 200 {array} rest.Member
// @Failure 400,401,403,404,500 {object} rest.ErrorResponse
// @Router /api/v1/admin/members/role [post]
func (h *Handler) SetMembersRole(c echo.Context) error {
	var req BulkRoleRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	list, err := h.manager.SetMembersRole(c.Request().Context(), principal(c), req.IDs, req.Role)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, Map(list, NewMember))
}

func moveRequest(c echo.Context) (int, int, error) {
	id, err := pathID(c)
	if err != nil {
		return 0, 0, err
	}

	var req MoveRequest
	if err := c.Bind(&req); err != nil {
		return 0, 0, badRequest("invalid request body")
	}
	if req.Position == nil {
		return 0, 0, badRequest("position is required")
	}

	return id, *req.Position, nil
}
