package error

import "errors"

// Authentication domain errors.
var (
	// ErrInvalidCredentials is returned when the master password is wrong or not configured.
	// Both cases share this error so clients cannot tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a device token is unknown or revoked.
	ErrInvalidToken = errors.New("invalid token")

	// ErrDeviceMismatch is returned when the device header does not match the token's device.
	ErrDeviceMismatch = errors.New("device does not match token")

	// ErrDeviceNotFound is returned when no token was ever issued to a device.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrMissingDeviceID is returned when login is attempted without a device id.
	ErrMissingDeviceID = errors.New("device id is required")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeMissingFields   AuthErrorCode = "AUTH-010001"
	ErrCodeMissingDeviceID AuthErrorCode = "AUTH-010002"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020002"

	// Token errors (03XXXX)
	ErrCodeInvalidToken   AuthErrorCode = "AUTH-030001"
	ErrCodeMissingToken   AuthErrorCode = "AUTH-030002"
	ErrCodeDeviceMismatch AuthErrorCode = "AUTH-030003"

	// Device errors (04XXXX)
	ErrCodeDeviceNotFound AuthErrorCode = "AUTH-040001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
