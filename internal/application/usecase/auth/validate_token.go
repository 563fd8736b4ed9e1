package auth

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ValidateTokenInput represents a token presented by a client.
// DeviceID is optional; when set it must match the token's device.
type ValidateTokenInput struct {
	Token    string
	DeviceID string
}

// ValidateTokenOutput reports whether the token grants access.
type ValidateTokenOutput struct {
	Valid  bool
	Device *entity.Device
}

// ValidateTokenUseCase checks device tokens. It never returns an error:
// anything that prevents a positive answer is treated as not valid.
type ValidateTokenUseCase struct {
	deviceRepo adapter.DeviceRepository
	clock      adapter.Clock
}

// NewValidateTokenUseCase creates a new ValidateTokenUseCase instance.
func NewValidateTokenUseCase(deviceRepo adapter.DeviceRepository, clock adapter.Clock) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{
		deviceRepo: deviceRepo,
		clock:      clock,
	}
}

// Execute validates the token and refreshes its last-seen time.
func (uc *ValidateTokenUseCase) Execute(ctx context.Context, input ValidateTokenInput) *ValidateTokenOutput {
	invalid := &ValidateTokenOutput{Valid: false}
	if input.Token == "" {
		return invalid
	}

	device, err := uc.deviceRepo.FindByToken(ctx, input.Token)
	if err != nil {
		slog.Debug("Device token lookup failed", "error", err)
		return invalid
	}

	if !device.Active {
		return invalid
	}

	if input.DeviceID != "" && input.DeviceID != device.DeviceID {
		slog.Warn("Device token presented by another device",
			"token_device_id", device.DeviceID,
			"header_device_id", input.DeviceID,
		)
		return invalid
	}

	now := uc.clock.Now().UTC()
	if err := uc.deviceRepo.TouchLastSeen(ctx, device.Token, now); err != nil {
		slog.Error("Failed to refresh device last seen", "device_id", device.DeviceID, "error", err)
		return invalid
	}

	return &ValidateTokenOutput{
		Valid: true,
		Device: &entity.Device{
			DeviceID:   device.DeviceID,
			DeviceName: device.DeviceName,
			UserAgent:  device.UserAgent,
			CreatedAt:  device.CreatedAt,
			LastSeen:   now,
		},
	}
}
