package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FirebaseUserResolver maps a verified Firebase token to a local user
type FirebaseUserResolver interface {
	ResolveFirebaseUser(ctx context.Context, token *auth.Token) (*models.User, error)
}

// FirebaseAuthMiddleware accepts Firebase ID tokens in place of local
// session tokens. The token's user is linked to (or created as) a local user.
func FirebaseAuthMiddleware(verifier services.IDTokenVerifier, resolver FirebaseUserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := resolver.ResolveFirebaseUser(ctx, token)
			if err != nil {
				return userError(err)
			}

			c.Set("firebaseUID", token.UID)
			setUser(c, user)
			return next(c)
		}
	}
}
