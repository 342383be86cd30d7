package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/security"
)

// userContextKey is where the auth guard stores the verified claims.
const userContextKey = "user"

// AuthMiddleware verifies the Authorization bearer token and stores the
// decoded claims on the request context. Verification errors propagate to the
// central error handler, which maps expired and malformed tokens to distinct
// 401 messages.
func (c *Controller) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return apperrors.NewUnauthenticated("Access denied. No token provided")
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return apperrors.NewUnauthenticated("Invalid Authorization header format")
		}

		claims, err := c.Tokens.Validate(token)
		if err != nil {
			return err
		}

		ctx.Set(userContextKey, claims)
		return next(ctx)
	}
}

// currentUser returns the claims the auth guard stored for this request.
func currentUser(ctx echo.Context) (*security.Claims, error) {
	claims, ok := ctx.Get(userContextKey).(*security.Claims)
	if !ok || claims == nil || claims.UserID == 0 {
		return nil, apperrors.NewUnauthenticated("Authentication required or invalid user")
	}
	return claims, nil
}
