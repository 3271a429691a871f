package middleware

import (
	"errors"

	apperrors "finledger/internal/errors"
	"finledger/internal/handlers"
	"finledger/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequireAuth creates a middleware that requires a valid JWT access token.
// On success the authenticated user ID and username are stored in the
// request context for the handlers.
func RequireAuth(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, apperrors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, services.ErrExpiredToken) {
					return handlers.SendError(c, apperrors.AuthExpiredToken)
				}
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat)
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return handlers.SendError(c, apperrors.AuthInvalidTokenFormat, apperrors.WithDetails("Invalid user ID in token"))
			}

			c.Set("user_id", userID)
			c.Set("username", claims.Username)

			return next(c)
		}
	}
}
