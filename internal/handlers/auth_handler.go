package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		switch {
		case apperrors.IsValidation(err):
			return SendError(c, apperrors.ValidationGeneral, apperrors.WithMessage(err.Error()))
		case apperrors.IsConflict(err):
			return SendError(c, apperrors.UserAlreadyExists)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	})
}

// Login handles user authentication
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apperrors.ValidationGeneral, apperrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			h.logger.Warn("failed login attempt", "ip", getClientIP(c))
			return SendError(c, apperrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}
