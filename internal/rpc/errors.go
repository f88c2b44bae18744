package rpc

import (
	"errors"

	"github.com/vmkteam/zenrpc/v2"

	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

// newError converts domain errors into JSON-RPC errors with HTTP-like codes.
func newError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return zenrpc.NewStringError(404, err.Error())
	case errors.Is(err, domain.ErrValidation):
		return zenrpc.NewStringError(400, err.Error())
	default:
		return zenrpc.NewStringError(500, "internal error")
	}
}
