package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/cors"
	"github.com/swaggo/swag"

	"github.com/Wintario/sin-city-sentinels/internal/auth"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

const (
	apiV1Prefix = "/api/v1"
	adminPrefix = apiV1Prefix + "/admin"

	healthPath  = "/health"
	swaggerPath = "/swagger/doc.json"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	manager     *newsportal.Manager
	auth        *auth.Service
	store       Pinger
	log         *slog.Logger
	corsOrigins []string
}

func NewHandler(manager *newsportal.Manager, authService *auth.Service, store Pinger, log *slog.Logger, corsOrigins []string) *Handler {
	return &Handler{
		manager:     manager,
		auth:        authService,
		store:       store,
		log:         log,
		corsOrigins: corsOrigins,
	}
}

// RegisterRoutes builds the echo instance with every route and middleware.
func (h *Handler) RegisterRoutes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(echo.WrapMiddleware(h.cors().Handler))
	e.Use(h.loggingMiddleware)

	e.GET(healthPath, h.Health)
	e.GET(swaggerPath, h.SwaggerDoc)

	api := e.Group(apiV1Prefix, h.authenticate)
	h.registerPublicRoutes(api)

	admin := e.Group(adminPrefix, h.authenticate, h.requireAuth)
	h.registerAdminRoutes(admin)

	return e
}

func (h *Handler) registerPublicRoutes(g *echo.Group) {
	g.POST("/auth/login", h.Login)
	g.GET("/auth/me", h.Me)

	g.GET("/news", h.PublishedNews)
	g.GET("/news/:id", h.NewsByID)
	g.GET("/news/slug/:slug", h.NewsBySlug)

	g.GET("/members", h.ActiveMembers)
	g.GET("/members/roles", h.MemberRoles)
	g.GET("/about-cards", h.AboutCards)
	g.GET("/settings/background", h.Background)
}

func (h *Handler) registerAdminRoutes(g *echo.Group) {
	g.GET("/news", h.AdminNews)
	g.GET("/news/trash", h.TrashNews)
	g.GET("/news/:id", h.AdminNewsByID)
	g.POST("/news", h.CreateNews)
	g.PATCH("/news/:id", h.UpdateNews)
	g.DELETE("/news/:id", h.SoftDeleteNews)
	g.POST("/news/:id/publish", h.PublishNews)
	g.POST("/news/:id/archive", h.ArchiveNews)
	g.POST("/news/:id/unarchive", h.UnarchiveNews)
	g.POST("/news/:id/restore", h.RestoreNews)
	g.PUT("/news/order", h.ReorderNews)

	g.GET("/members", h.Members)
	g.POST("/members", h.CreateMember)
	g.PATCH("/members/:id", h.UpdateMember)
	g.DELETE("/members/:id", h.DeleteMember)
	g.POST("/members/:id/move", h.MoveMember)
	g.POST("/members/:id/leader", h.SetLeader)
	g.POST("/members/status", h.SetMembersStatus)
	g.POST("/members/role", h.SetMembersRole)

	g.POST("/about-cards", h.CreateAboutCard)
	g.PATCH("/about-cards/:id", h.UpdateAboutCard)
	g.DELETE("/about-cards/:id", h.DeleteAboutCard)
	g.POST("/about-cards/:id/move", h.MoveAboutCard)

	g.PUT("/settings/background", h.UpdateBackground)

	g.GET("/users", h.Users)
	g.GET("/users/:id", h.UserByID)
	g.POST("/users", h.CreateUser)
	g.PATCH("/users/:id", h.UpdateUser)
	g.DELETE("/users/:id", h.DeactivateUser)
}

func (h *Handler) cors() *cors.Cors {
	origins := h.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{echo.HeaderAuthorization, echo.HeaderContentType},
		AllowCredentials: len(h.corsOrigins) > 0,
	})
}

// Health handles GET /health
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c echo.Context) error {
	if err := h.store.Ping(c.Request().Context()); err != nil {
		h.log.Error("health check failed", "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) SwaggerDoc(c echo.Context) error {
	doc, err := swag.ReadDoc()
	if err != nil {
		return h.handleError(c, err)
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, []byte(doc))
}

func (h *Handler) loggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		if err := next(c); err != nil {
			c.Error(err)
		}

		h.log.Info("HTTP request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.RealIP(),
		)

		return nil
	}
}
