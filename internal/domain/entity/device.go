package entity

import "time"

// DeviceToken is an opaque bearer credential issued to one client device.
// A token is valid only while Active is true; once deactivated it is never
// reactivated.
type DeviceToken struct {
	Token      string
	DeviceID   string
	DeviceName string
	UserAgent  string
	CreatedAt  time.Time
	LastSeen   time.Time
	Active     bool
}

// NewDeviceToken creates an active device token.
func NewDeviceToken(token, deviceID, deviceName, userAgent string, now time.Time) *DeviceToken {
	return &DeviceToken{
		Token:      token,
		DeviceID:   deviceID,
		DeviceName: deviceName,
		UserAgent:  userAgent,
		CreatedAt:  now,
		LastSeen:   now,
		Active:     true,
	}
}

// Device is the client-visible projection of a device token.
type Device struct {
	DeviceID   string
	DeviceName string
	UserAgent  string
	CreatedAt  time.Time
	LastSeen   time.Time
}
