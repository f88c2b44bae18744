package rpc

import (
	"log/slog"

	middleware "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"github.com/Wintario/sin-city-sentinels/internal/newsportal"
)

func New(logger *slog.Logger, manager *newsportal.Manager) *zenrpc.Server {
	rpcServer := zenrpc.NewServer(zenrpc.Options{ExposeSMD: true})
	rpcServer.Register("news", NewNewsService(manager))
	rpcServer.Register("site", NewSiteService(manager))
	rpcServer.Use(middleware.WithSLog(logger.InfoContext, "sin-city-sentinels", nil))

	return rpcServer
}
