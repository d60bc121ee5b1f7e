package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/anonto42/recipebook/backend/internal/middleware"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ContextUserID is set by the auth middleware
const ContextUserID = middleware.ContextUserID

// getUserIDFromContext returns the authenticated user's ID, or 0
func getUserIDFromContext(c echo.Context) uint {
	id, _ := c.Get(ContextUserID).(uint)
	return id
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

func success(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// bindAndValidate binds the request into req and runs the registered validator
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// toHTTPError maps service errors to HTTP status codes
func toHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, services.ErrBanned):
		return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed")
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}
