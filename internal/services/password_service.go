package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt truncates input beyond 72 bytes
const maxPasswordLength = 72

// PasswordService handles password hashing and verification
type PasswordService struct {
	cost int
}

// NewPasswordService creates a password service with the given bcrypt cost.
// Costs outside the valid bcrypt range fall back to the library default.
func NewPasswordService(cost int) PasswordServiceInterface {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordService{cost: cost}
}

// HashPassword generates a bcrypt hash of the password
func (ps *PasswordService) HashPassword(password string) (string, error) {
	if len(password) > maxPasswordLength {
		return "", fmt.Errorf("password must not exceed %d bytes", maxPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), ps.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword checks a plaintext password against a stored hash
func (ps *PasswordService) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
