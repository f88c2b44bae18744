package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/access"
)

const principalKey = "principal"

// authenticate resolves the bearer token into a principal. Requests without a token are anonymous;
// a malformed, expired or revoked token is rejected with 401.
func (h *Handler) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			c.Set(principalKey, access.Anonymous)
			return next(c)
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return h.handleError(c, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header"))
		}

		p, err := h.auth.Authenticate(c.Request().Context(), token)
		if err != nil {
			return h.handleError(c, err)
		}

		c.Set(principalKey, p)
		return next(c)
	}
}

func (h *Handler) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !principal(c).IsAuthenticated() {
			return h.handleError(c, echo.NewHTTPError(http.StatusUnauthorized, "authentication required"))
		}

		return next(c)
	}
}

func principal(c echo.Context) access.Principal {
	p, ok := c.Get(principalKey).(access.Principal)
	if !ok {
		return access.Anonymous
	}

	return p
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Exchanges username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body rest.LoginRequest true "Credentials"
// @Success 200 {object} rest.LoginResponse
// @Failure 400,401,500 {object} rest.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return h.handleError(c, badRequest("invalid request body"))
	}

	if req.Username == "" || req.Password == "" {
		return h.handleError(c, badRequest("username and password are required"))
	}

	session, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		User:      NewUser(session.User),
	})
}

// Me handles GET /api/v1/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} rest.User
// @Failure 401,404,500 {object} rest.ErrorResponse
// @Router /api/v1/auth/me [get]
func (h *Handler) Me(c echo.Context) error {
	user, err := h.auth.User(c.Request().Context(), principal(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewUser(*user))
}
