package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ListDevicesOutput represents the active devices.
type ListDevicesOutput struct {
	Devices []*entity.Device
}

// ListDevicesUseCase lists active devices without exposing their tokens.
type ListDevicesUseCase struct {
	deviceRepo adapter.DeviceRepository
}

// NewListDevicesUseCase creates a new ListDevicesUseCase instance.
func NewListDevicesUseCase(deviceRepo adapter.DeviceRepository) *ListDevicesUseCase {
	return &ListDevicesUseCase{deviceRepo: deviceRepo}
}

// Execute lists the devices. A device holding several active tokens is
// reported once, with its most recent activity.
func (uc *ListDevicesUseCase) Execute(ctx context.Context) (*ListDevicesOutput, error) {
	tokens, err := uc.deviceRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	seen := make(map[string]*entity.Device, len(tokens))
	output := &ListDevicesOutput{Devices: make([]*entity.Device, 0, len(tokens))}
	for _, t := range tokens {
		if d, ok := seen[t.DeviceID]; ok {
			if t.LastSeen.After(d.LastSeen) {
				d.LastSeen = t.LastSeen
			}
			if t.CreatedAt.Before(d.CreatedAt) {
				d.CreatedAt = t.CreatedAt
			}
			continue
		}
		d := &entity.Device{
			DeviceID:   t.DeviceID,
			DeviceName: t.DeviceName,
			UserAgent:  t.UserAgent,
			CreatedAt:  t.CreatedAt,
			LastSeen:   t.LastSeen,
		}
		seen[t.DeviceID] = d
		output.Devices = append(output.Devices, d)
	}
	return output, nil
}

// RevokeDeviceInput represents a device revocation.
type RevokeDeviceInput struct {
	DeviceID string
}

// RevokeDeviceOutput reports whether any token matched the device.
type RevokeDeviceOutput struct {
	Found bool
}

// RevokeDeviceUseCase deactivates every token of a device.
type RevokeDeviceUseCase struct {
	deviceRepo adapter.DeviceRepository
}

// NewRevokeDeviceUseCase creates a new RevokeDeviceUseCase instance.
func NewRevokeDeviceUseCase(deviceRepo adapter.DeviceRepository) *RevokeDeviceUseCase {
	return &RevokeDeviceUseCase{deviceRepo: deviceRepo}
}

// Execute revokes the device. Revoking twice is harmless.
func (uc *RevokeDeviceUseCase) Execute(ctx context.Context, input RevokeDeviceInput) (*RevokeDeviceOutput, error) {
	deviceID := strings.TrimSpace(input.DeviceID)
	if deviceID == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingDeviceID,
			"device_id is required",
			domainerror.ErrMissingDeviceID,
		)
	}

	matched, err := uc.deviceRepo.DeactivateByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to revoke device: %w", err)
	}

	slog.Info("Device revoked", "device_id", deviceID, "tokens", matched)
	return &RevokeDeviceOutput{Found: matched > 0}, nil
}

// CleanupDevicesInput represents a cleanup sweep.
type CleanupDevicesInput struct {
	RetentionDays int
}

// CleanupDevicesOutput reports how many devices were deactivated.
type CleanupDevicesOutput struct {
	Deactivated int64
	Cutoff      time.Time
}

// DefaultRetentionDays is used when a sweep is requested without a window.
const DefaultRetentionDays = 90

// CleanupDevicesUseCase deactivates devices that have been idle too long.
type CleanupDevicesUseCase struct {
	deviceRepo adapter.DeviceRepository
	clock      adapter.Clock
}

// NewCleanupDevicesUseCase creates a new CleanupDevicesUseCase instance.
func NewCleanupDevicesUseCase(deviceRepo adapter.DeviceRepository, clock adapter.Clock) *CleanupDevicesUseCase {
	return &CleanupDevicesUseCase{
		deviceRepo: deviceRepo,
		clock:      clock,
	}
}

// Execute performs the sweep.
func (uc *CleanupDevicesUseCase) Execute(ctx context.Context, input CleanupDevicesInput) (*CleanupDevicesOutput, error) {
	days := input.RetentionDays
	if days <= 0 {
		days = DefaultRetentionDays
	}

	cutoff := uc.clock.Now().UTC().AddDate(0, 0, -days)
	count, err := uc.deviceRepo.DeactivateInactiveSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to clean up devices: %w", err)
	}

	slog.Info("Device cleanup completed", "retention_days", days, "deactivated", count)
	return &CleanupDevicesOutput{Deactivated: count, Cutoff: cutoff}, nil
}
