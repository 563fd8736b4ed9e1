// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// PasswordService verifies the shared master password.
type PasswordService interface {
	// VerifyMasterPassword reports whether candidate matches the configured
	// master password. It returns false when no password is configured.
	VerifyMasterPassword(candidate string) bool
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}
