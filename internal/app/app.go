package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/config"
	"github.com/Wintario/sin-city-sentinels/internal/auth"
	"github.com/Wintario/sin-city-sentinels/internal/db"
	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
	"github.com/Wintario/sin-city-sentinels/internal/rest"
	"github.com/Wintario/sin-city-sentinels/internal/rpc"
)

type App struct {
	DB     *db.Repository
	Cache  *newsportal.ListingCache
	Logger *slog.Logger
	Echo   *echo.Echo
	Config config.Config
}

func New(ctx context.Context, cfg config.Config, dbConnect *pg.DB, logger *slog.Logger) (*App, error) {
	if cfg.App.LogQueries {
		dbConnect.AddQueryHook(db.NewQueryHook(logger, cfg.App.SlowQuery.Duration))
	}

	a := &App{
		DB:     db.New(dbConnect),
		Logger: logger,
		Config: cfg,
	}

	if cfg.Cache.RedisURL != "" {
		cache, err := newsportal.NewListingCache(ctx, cfg.Cache.RedisURL, cfg.Cache.TTL.Duration)
		if err != nil {
			return nil, fmt.Errorf("listing cache: %w", err)
		}
		a.Cache = cache
	}

	tokens, err := auth.NewTokenService(cfg.Auth.Secret, cfg.Auth.TokenTTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	manager := newsportal.NewManager(a.DB, logger, newsportal.Options{
		Cache:       a.Cache,
		MemberRoles: cfg.Members.Roles,
	})

	handler := rest.NewHandler(
		manager,
		auth.NewService(a.DB, tokens, logger),
		a.DB,
		logger,
		cfg.App.CORSOrigins,
	)

	a.Echo = handler.RegisterRoutes()
	a.Echo.Any("/rpc/", echo.WrapHandler(rpc.New(logger, manager)))

	return a, nil
}

func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.Config.App.Host, strconv.Itoa(a.Config.App.Port))
	a.Logger.InfoContext(ctx, "starting server", "addr", addr)

	return a.Echo.Start(addr)
}

func (a *App) GracefulShutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if a.Cache != nil {
		err = errors.Join(err, a.Cache.Close())
	}

	return errors.Join(err, a.DB.Close())
}
