package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/soma-connects/onelga-local-services/pkg/domain"
)

// DefaultBcryptCost is the hashing cost used when none is configured.
const DefaultBcryptCost = 10

// HashPassword hashes a password with bcrypt at the given cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a bcrypt hash.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword enforces the minimum password requirements for
// registration and password change.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: must be at least 8 characters long", domain.ErrWeakPassword)
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return fmt.Errorf("%w: must be at most 72 characters long", domain.ErrWeakPassword)
	}
	return nil
}
