package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// ActiveDeviceChecker reports whether a device still holds an active token.
type ActiveDeviceChecker interface {
	HasActiveToken(ctx context.Context, deviceID string) (bool, error)
}

// DeviceRepository defines the interface for device token persistence.
type DeviceRepository interface {
	ActiveDeviceChecker

	// Upsert stores the device token, keyed by the token value.
	Upsert(ctx context.Context, device *entity.DeviceToken) error

	// FindByToken retrieves a device token by its value.
	FindByToken(ctx context.Context, token string) (*entity.DeviceToken, error)

	// ExistsByDeviceID reports whether any token was ever issued to the device.
	ExistsByDeviceID(ctx context.Context, deviceID string) (bool, error)

	// TouchLastSeen refreshes the last-seen time of a token.
	TouchLastSeen(ctx context.Context, token string, at time.Time) error

	// FindActive retrieves all active tokens, most recently seen first.
	FindActive(ctx context.Context) ([]*entity.DeviceToken, error)

	// DeactivateByDeviceID deactivates every token of a device and returns
	// the number of records that matched the device.
	DeactivateByDeviceID(ctx context.Context, deviceID string) (int64, error)

	// DeactivateInactiveSince deactivates active tokens last seen before
	// cutoff and returns the number deactivated.
	DeactivateInactiveSince(ctx context.Context, cutoff time.Time) (int64, error)
}
