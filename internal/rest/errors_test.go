package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Wintario/sin-city-sentinels/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   ErrorResponse
	}{
		{
			name:   "Validation",
			err:    domain.NewValidationError(domain.FieldError{Field: "title", Message: "cannot be blank"}),
			status: http.StatusBadRequest,
			body:   ErrorResponse{Error: "validation failed", Fields: []FieldError{{Field: "title", Message: "cannot be blank"}}},
		},
		{
			name:   "InvalidReorder",
			err:    &domain.InvalidReorderError{Duplicates: []int{1}, Unknown: []int{9}},
			status: http.StatusBadRequest,
			body:   ErrorResponse{Error: "invalid reorder", Duplicates: []int{1}, Unknown: []int{9}},
		},
		{
			name:   "NotFoundWrapped",
			err:    fmt.Errorf("load: %w", domain.NewNotFound("news", 7)),
			status: http.StatusNotFound,
			body:   ErrorResponse{Error: domain.NewNotFound("news", 7).Error()},
		},
		{
			name:   "PermissionDenied",
			err:    &domain.PermissionDeniedError{Action: "setting.update", Required: "admin", PrincipalID: 2, PrincipalRole: "author"},
			status: http.StatusForbidden,
			body:   ErrorResponse{Error: "permission denied", Required: "admin", Current: "author"},
		},
		{
			name:   "PermissionDeniedAnonymous",
			err:    &domain.PermissionDeniedError{Action: "news.create", Required: "authenticated", PrincipalRole: "anonymous"},
			status: http.StatusUnauthorized,
			body:   ErrorResponse{Error: "authentication required", Required: "authenticated"},
		},
		{
			name:   "Unauthenticated",
			err:    fmt.Errorf("%w: invalid credentials", domain.ErrUnauthenticated),
			status: http.StatusUnauthorized,
			body:   ErrorResponse{Error: "authentication required"},
		},
		{
			name:   "AlreadyInState",
			err:    domain.AlreadyInState("news", 1, "deleted(published)", "delete"),
			status: http.StatusConflict,
			body: ErrorResponse{
				Error: domain.AlreadyInState("news", 1, "deleted(published)", "delete").Error(),
				State: "deleted(published)",
			},
		},
		{
			name:   "InvalidTransition",
			err:    domain.InvalidTransition("news", 5, "archived", "publish"),
			status: http.StatusConflict,
			body:   ErrorResponse{Error: domain.InvalidTransition("news", 5, "archived", "publish").Error(), State: "archived"},
		},
		{
			name:   "StorageHidesDetail",
			err:    domain.NewStorageError("create news", errors.New("pq: relation does not exist")),
			status: http.StatusInternalServerError,
			body:   ErrorResponse{Error: internalError},
		},
		{
			name:   "Unknown",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			body:   ErrorResponse{Error: internalError},
		},
		{
			name:   "EchoHTTPError",
			err:    badRequest("invalid id"),
			status: http.StatusBadRequest,
			body:   ErrorResponse{Error: "invalid id"},
		},
		{
			name:   "EchoHTTPErrorWithoutMessage",
			err:    echo.NewHTTPError(http.StatusMethodNotAllowed),
			status: http.StatusMethodNotAllowed,
			body:   ErrorResponse{Error: http.StatusText(http.StatusMethodNotAllowed)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := errorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.body, body)
		})
	}
}
