package dto

import (
	"time"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// LoginRequest represents the request body for a master password login.
type LoginRequest struct {
	Password   string `json:"password" binding:"required"`
	DeviceID   string `json:"device_id" binding:"max=255"`
	DeviceName string `json:"device_name,omitempty" binding:"omitempty,max=255"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token       string `json:"token"`
	DeviceID    string `json:"device_id"`
	DeviceName  string `json:"device_name"`
	IsNewDevice bool   `json:"is_new_device"`
}

// ValidateResponse reports whether the presented token grants access.
type ValidateResponse struct {
	Valid  bool            `json:"valid"`
	Device *DeviceResponse `json:"device,omitempty"`
}

// DeviceResponse represents a device in API responses. Tokens are never exposed.
type DeviceResponse struct {
	DeviceID   string    `json:"device_id"`
	DeviceName string    `json:"device_name"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeen   time.Time `json:"last_seen"`
	Current    bool      `json:"current"`
}

// DeviceListResponse represents the response for listing devices.
type DeviceListResponse struct {
	Devices []DeviceResponse `json:"devices"`
}

// RevokeDeviceResponse represents the response for a device revocation.
type RevokeDeviceResponse struct {
	DeviceID string `json:"device_id"`
	Found    bool   `json:"found"`
}

// CleanupDevicesRequest represents the optional body of a cleanup request.
type CleanupDevicesRequest struct {
	RetentionDays *int `json:"retention_days,omitempty" binding:"omitempty,min=1"`
}

// CleanupDevicesResponse represents the result of a cleanup sweep.
type CleanupDevicesResponse struct {
	Deactivated int64     `json:"deactivated"`
	Cutoff      time.Time `json:"cutoff"`
}

// ToLoginResponse converts a LoginDeviceOutput to a LoginResponse DTO.
func ToLoginResponse(output *auth.LoginDeviceOutput) LoginResponse {
	return LoginResponse{
		Token:       output.Token,
		DeviceID:    output.DeviceID,
		DeviceName:  output.DeviceName,
		IsNewDevice: output.IsNewDevice,
	}
}

// ToDeviceResponse converts a device projection to a DeviceResponse DTO.
func ToDeviceResponse(device *entity.Device, currentDeviceID string) DeviceResponse {
	return DeviceResponse{
		DeviceID:   device.DeviceID,
		DeviceName: device.DeviceName,
		UserAgent:  device.UserAgent,
		CreatedAt:  device.CreatedAt,
		LastSeen:   device.LastSeen,
		Current:    device.DeviceID == currentDeviceID,
	}
}

// ToDeviceListResponse converts a ListDevicesOutput to a DeviceListResponse.
func ToDeviceListResponse(output *auth.ListDevicesOutput, currentDeviceID string) DeviceListResponse {
	devices := make([]DeviceResponse, len(output.Devices))
	for i, d := range output.Devices {
		devices[i] = ToDeviceResponse(d, currentDeviceID)
	}
	return DeviceListResponse{Devices: devices}
}
