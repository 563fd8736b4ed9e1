// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// DeviceIDKey is the context key for the authenticated device's ID.
	DeviceIDKey ContextKey = "device_id"
	// DeviceTokenKey is the context key for the presented device token.
	DeviceTokenKey ContextKey = "device_token"

	// DeviceIDHeader carries the client's device identifier.
	DeviceIDHeader = "X-Device-ID"
)

// DeviceAuthMiddleware gates routes on an active device token.
type DeviceAuthMiddleware struct {
	validateUseCase *auth.ValidateTokenUseCase
}

// NewDeviceAuthMiddleware creates a new device auth middleware instance.
func NewDeviceAuthMiddleware(validateUseCase *auth.ValidateTokenUseCase) *DeviceAuthMiddleware {
	return &DeviceAuthMiddleware{
		validateUseCase: validateUseCase,
	}
}

// Authenticate returns a Gin middleware handler that enforces device token authentication.
func (m *DeviceAuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Authorization header is required",
				Code:  string(domainerror.ErrCodeMissingToken),
			})
			c.Abort()
			return
		}

		result := m.validateUseCase.Execute(c.Request.Context(), auth.ValidateTokenInput{
			Token:    token,
			DeviceID: c.GetHeader(DeviceIDHeader),
		})
		if !result.Valid {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid or expired token",
				Code:  string(domainerror.ErrCodeInvalidToken),
			})
			c.Abort()
			return
		}

		c.Set(string(DeviceIDKey), result.Device.DeviceID)
		c.Set(string(DeviceTokenKey), token)

		c.Next()
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

// GetDeviceIDFromContext extracts the authenticated device ID from the Gin context.
func GetDeviceIDFromContext(c *gin.Context) (string, bool) {
	deviceID, exists := c.Get(string(DeviceIDKey))
	if !exists {
		return "", false
	}
	id, ok := deviceID.(string)
	return id, ok && id != ""
}
