package rest

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

const internalError = "internal error"

// errorStatus maps the domain error taxonomy to an HTTP status and body.
// Storage and unknown errors never leak details to the client.
func errorStatus(err error) (int, ErrorResponse) {
	var (
		verr    *domain.ValidationError
		nferr   *domain.NotFoundError
		pderr   *domain.PermissionDeniedError
		rerr    *domain.InvalidReorderError
		serr    *domain.StateError
		httpErr *echo.HTTPError
	)

	switch {
	case errors.As(err, &verr):
		resp := ErrorResponse{Error: "validation failed", Fields: make([]FieldError, len(verr.Fields))}
		for i, f := range verr.Fields {
			resp.Fields[i] = FieldError{Field: f.Field, Message: f.Message}
		}
		return http.StatusBadRequest, resp
	case errors.As(err, &rerr):
		return http.StatusBadRequest, ErrorResponse{Error: "invalid reorder", Duplicates: rerr.Duplicates, Unknown: rerr.Unknown}
	case errors.As(err, &nferr):
		return http.StatusNotFound, ErrorResponse{Error: nferr.Error()}
	case errors.As(err, &pderr):
		if pderr.PrincipalID == 0 {
			return http.StatusUnauthorized, ErrorResponse{Error: "authentication required", Required: pderr.Required}
		}
		return http.StatusForbidden, ErrorResponse{Error: "permission denied", Required: pderr.Required, Current: pderr.PrincipalRole}
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, ErrorResponse{Error: "authentication required"}
	case errors.As(err, &serr):
		return http.StatusConflict, ErrorResponse{Error: serr.Error(), State: serr.State}
	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Error: msg}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: internalError}
	}
}

func (h *Handler) handleError(c echo.Context, err error) error {
	status, resp := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(c.Request().Context(), "request failed", "error", err, "path", c.Path(), "statusCode", status)
	} else {
		h.log.DebugContext(c.Request().Context(), "request rejected", "error", err, "path", c.Path(), "statusCode", status)
	}

	return c.JSON(status, resp)
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}
