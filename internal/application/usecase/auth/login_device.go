// Package auth contains master password and device token use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// LoginDeviceInput represents the input for a master password login.
type LoginDeviceInput struct {
	Password   string
	DeviceID   string
	DeviceName string
	UserAgent  string
}

// LoginDeviceOutput represents the output of a successful login.
type LoginDeviceOutput struct {
	Token       string
	DeviceID    string
	DeviceName  string
	IsNewDevice bool
}

// LoginDeviceUseCase exchanges the master password for a device token.
type LoginDeviceUseCase struct {
	deviceRepo      adapter.DeviceRepository
	passwordService adapter.PasswordService
	tokenGenerator  adapter.DeviceTokenGenerator
	notifier        adapter.DeviceNotifier
	clock           adapter.Clock
}

// NewLoginDeviceUseCase creates a new LoginDeviceUseCase instance.
func NewLoginDeviceUseCase(
	deviceRepo adapter.DeviceRepository,
	passwordService adapter.PasswordService,
	tokenGenerator adapter.DeviceTokenGenerator,
	notifier adapter.DeviceNotifier,
	clock adapter.Clock,
) *LoginDeviceUseCase {
	return &LoginDeviceUseCase{
		deviceRepo:      deviceRepo,
		passwordService: passwordService,
		tokenGenerator:  tokenGenerator,
		notifier:        notifier,
		clock:           clock,
	}
}

// Execute performs the login.
func (uc *LoginDeviceUseCase) Execute(ctx context.Context, input LoginDeviceInput) (*LoginDeviceOutput, error) {
	deviceID := strings.TrimSpace(input.DeviceID)
	if deviceID == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingDeviceID,
			"device_id is required",
			domainerror.ErrMissingDeviceID,
		)
	}

	if !uc.passwordService.VerifyMasterPassword(input.Password) {
		slog.Warn("Master password login rejected", "device_id", deviceID)
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"invalid credentials",
			domainerror.ErrInvalidCredentials,
		)
	}

	known, err := uc.deviceRepo.ExistsByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up device: %w", err)
	}

	token, err := uc.tokenGenerator.GenerateDeviceToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate device token: %w", err)
	}

	name := strings.TrimSpace(input.DeviceName)
	if name == "" {
		name = DeviceNameFromUserAgent(input.UserAgent)
	}

	device := entity.NewDeviceToken(token, deviceID, name, input.UserAgent, uc.clock.Now().UTC())
	if err := uc.deviceRepo.Upsert(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to store device token: %w", err)
	}

	slog.Info("Device authenticated", "device_id", deviceID, "device_name", name, "new_device", !known)

	if !known {
		alert := adapter.NewDeviceAlert{
			DeviceID:   deviceID,
			DeviceName: name,
			UserAgent:  input.UserAgent,
			SignedInAt: device.CreatedAt,
		}
		if err := uc.notifier.NotifyNewDevice(ctx, alert); err != nil {
			slog.Error("Failed to send new device alert", "device_id", deviceID, "error", err)
		}
	}

	return &LoginDeviceOutput{
		Token:       token,
		DeviceID:    deviceID,
		DeviceName:  name,
		IsNewDevice: !known,
	}, nil
}
