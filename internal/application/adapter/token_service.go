package adapter

import "time"

// DeviceTokenGenerator produces opaque device tokens.
type DeviceTokenGenerator interface {
	// GenerateDeviceToken returns a fresh high-entropy token.
	GenerateDeviceToken() (string, error)
}

// ExportLinkClaims describes what a signed download link grants.
type ExportLinkClaims struct {
	DeviceID  string
	Format    string
	ExpiresAt time.Time
}

// ExportLinkService signs and verifies short-lived statement download links.
type ExportLinkService interface {
	// IssueLinkToken signs a token for a download by the given device.
	IssueLinkToken(deviceID, format string) (string, time.Time, error)

	// ParseLinkToken verifies a token and returns its claims.
	ParseLinkToken(token string) (*ExportLinkClaims, error)
}
