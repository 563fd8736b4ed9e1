package model

import (
	"time"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// DeviceTokenModel represents the device_tokens table.
type DeviceTokenModel struct {
	Token      string    `gorm:"type:varchar(128);primaryKey"`
	DeviceID   string    `gorm:"type:varchar(255);not null;index"`
	DeviceName string    `gorm:"type:varchar(255);not null"`
	UserAgent  string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
	LastSeen   time.Time `gorm:"not null;index"`
	Active     bool      `gorm:"not null;index"`
}

// TableName returns the table name for the DeviceTokenModel.
func (DeviceTokenModel) TableName() string {
	return "device_tokens"
}

// ToEntity converts a DeviceTokenModel to a domain DeviceToken entity.
func (m *DeviceTokenModel) ToEntity() *entity.DeviceToken {
	return &entity.DeviceToken{
		Token:      m.Token,
		DeviceID:   m.DeviceID,
		DeviceName: m.DeviceName,
		UserAgent:  m.UserAgent,
		CreatedAt:  m.CreatedAt.UTC(),
		LastSeen:   m.LastSeen.UTC(),
		Active:     m.Active,
	}
}

// DeviceTokenFromEntity creates a DeviceTokenModel from a domain DeviceToken entity.
func DeviceTokenFromEntity(device *entity.DeviceToken) *DeviceTokenModel {
	return &DeviceTokenModel{
		Token:      device.Token,
		DeviceID:   device.DeviceID,
		DeviceName: device.DeviceName,
		UserAgent:  device.UserAgent,
		CreatedAt:  device.CreatedAt,
		LastSeen:   device.LastSeen,
		Active:     device.Active,
	}
}

// All returns every model managed by the application, for migrations.
func All() []any {
	return []any{
		&TransactionModel{},
		&LoanModel{},
		&LoanPaymentModel{},
		&DeviceTokenModel{},
	}
}
