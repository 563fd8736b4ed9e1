package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
	"github.com/finance-tracker/ledger/internal/integration/persistence/model"
)

// deviceRepository implements the adapter.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository creates a new device repository instance.
func NewDeviceRepository(db *gorm.DB) adapter.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// Upsert stores the device token, replacing any record with the same token.
func (r *deviceRepository) Upsert(ctx context.Context, device *entity.DeviceToken) error {
	deviceModel := model.DeviceTokenFromEntity(device)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"device_id", "device_name", "user_agent", "last_seen", "active"}),
		}).
		Create(deviceModel).Error
}

// FindByToken retrieves a device token by its value.
func (r *deviceRepository) FindByToken(ctx context.Context, token string) (*entity.DeviceToken, error) {
	var deviceModel model.DeviceTokenModel
	result := r.db.WithContext(ctx).Where("token = ?", token).First(&deviceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrInvalidToken
		}
		return nil, result.Error
	}
	return deviceModel.ToEntity(), nil
}

// ExistsByDeviceID reports whether a token was ever issued to the device.
func (r *deviceRepository) ExistsByDeviceID(ctx context.Context, deviceID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.DeviceTokenModel{}).
		Where("device_id = ?", deviceID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// HasActiveToken reports whether the device holds at least one active token.
func (r *deviceRepository) HasActiveToken(ctx context.Context, deviceID string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.DeviceTokenModel{}).
		Where("device_id = ? AND active = ?", deviceID, true).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// TouchLastSeen refreshes the last-seen time of a token.
func (r *deviceRepository) TouchLastSeen(ctx context.Context, token string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.DeviceTokenModel{}).
		Where("token = ?", token).
		Update("last_seen", at).Error
}

// FindActive retrieves active tokens, most recently seen first.
func (r *deviceRepository) FindActive(ctx context.Context) ([]*entity.DeviceToken, error) {
	var deviceModels []model.DeviceTokenModel
	result := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("last_seen DESC").
		Find(&deviceModels)
	if result.Error != nil {
		return nil, result.Error
	}

	devices := make([]*entity.DeviceToken, len(deviceModels))
	for i := range deviceModels {
		devices[i] = deviceModels[i].ToEntity()
	}
	return devices, nil
}

// DeactivateByDeviceID deactivates every token of a device.
func (r *deviceRepository) DeactivateByDeviceID(ctx context.Context, deviceID string) (int64, error) {
	var matched int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.DeviceTokenModel{}).
			Where("device_id = ?", deviceID).
			Count(&matched).Error; err != nil {
			return err
		}
		return tx.Model(&model.DeviceTokenModel{}).
			Where("device_id = ? AND active = ?", deviceID, true).
			Update("active", false).Error
	})
	if err != nil {
		return 0, err
	}
	return matched, nil
}

// DeactivateInactiveSince deactivates active tokens last seen before cutoff.
func (r *deviceRepository) DeactivateInactiveSince(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.DeviceTokenModel{}).
		Where("active = ? AND last_seen < ?", true, cutoff).
		Update("active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
