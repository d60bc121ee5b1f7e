package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// Context keys read by the handlers
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// SessionVerifier validates local session tokens; *services.AuthService implements it
type SessionVerifier interface {
	ParseToken(tokenString string) (*models.JwtCustomClaims, error)
	ActiveUser(ctx context.Context, userID uint) (*models.User, error)
}

// JWTAuthMiddleware checks for a valid session token, loads the user behind
// it and rejects banned accounts.
func JWTAuthMiddleware(verifier SessionVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims, err := verifier.ParseToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := verifier.ActiveUser(c.Request().Context(), claims.UserID)
			if err != nil {
				return userError(err)
			}

			setUser(c, user)
			return next(c)
		}
	}
}

// RequireAdmin allows only users with the admin role. It must run after one
// of the auth middlewares.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get(ContextRole).(string); role != models.RoleAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}
	return parts[1], nil
}

func setUser(c echo.Context, user *models.User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextRole, user.Role)
}

func userError(err error) error {
	switch {
	case errors.Is(err, services.ErrBanned):
		return echo.NewHTTPError(http.StatusForbidden, "Account is banned")
	case errors.Is(err, services.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}
