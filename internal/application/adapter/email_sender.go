package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// NewDeviceAlert describes a device that signed in for the first time.
type NewDeviceAlert struct {
	DeviceID   string
	DeviceName string
	UserAgent  string
	SignedInAt time.Time
}

// DeviceNotifier announces new devices.
type DeviceNotifier interface {
	NotifyNewDevice(ctx context.Context, alert NewDeviceAlert) error
}
