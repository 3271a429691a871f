package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"finledger/internal/dto"
	apperrors "finledger/internal/errors"
	"finledger/internal/models"
	"finledger/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles user registration and login
type AuthService struct {
	userRepo        repositories.UserRepositoryInterface
	passwordService PasswordServiceInterface
	tokenService    TokenServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Register creates a new user. Usernames are trimmed and lowercased before
// storage, so "Alice" and "alice" are the same user.
func (s *AuthService) Register(req *dto.RegisterRequest) (*models.User, error) {
	username := normalizeUsername(req.Username)
	if username == "" {
		return nil, apperrors.NewValidation("Username cannot be empty")
	}

	passwordHash, err := s.passwordService.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			s.metrics.IncrementCounter("registrations_failed", "username_taken")
			return nil, apperrors.NewConflict("Username already taken")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.metrics.IncrementCounter("registrations_succeeded")
	s.logger.Info("user registered", "user_id", user.ID, "username", username)

	return user, nil
}

// Login verifies credentials and issues an access token. Unknown usernames
// and wrong passwords produce the same error so callers cannot probe for
// registered users.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := normalizeUsername(req.Username)

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.IncrementCounter("logins_failed", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.passwordService.ComparePassword(req.Password, user.PasswordHash) {
		s.metrics.IncrementCounter("logins_failed", "wrong_password")
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.metrics.IncrementCounter("logins_succeeded")
	s.logger.Info("user logged in", "user_id", user.ID)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
