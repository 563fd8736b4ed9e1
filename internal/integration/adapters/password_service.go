// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// bcryptCost is the cost factor for bcrypt hashing.
const bcryptCost = 12

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	plain string
	hash  []byte
}

// NewPasswordService creates a password service for the master password.
// A bcrypt hash takes precedence over the plain value when both are set.
func NewPasswordService(plain, hash string) adapter.PasswordService {
	s := &passwordService{plain: plain}
	if h := strings.TrimSpace(hash); h != "" {
		s.hash = []byte(h)
	}
	return s
}

// VerifyMasterPassword compares candidate with the configured password.
func (s *passwordService) VerifyMasterPassword(candidate string) bool {
	if candidate == "" {
		return false
	}
	if s.hash != nil {
		return bcrypt.CompareHashAndPassword(s.hash, []byte(candidate)) == nil
	}
	if s.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(s.plain), []byte(candidate)) == 1
}

// HashPassword hashes a plain text password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// SystemClock implements adapter.Clock with the wall clock in UTC.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
