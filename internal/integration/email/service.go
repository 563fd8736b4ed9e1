package email

import (
	"context"
	"errors"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

// ErrQueueFull is returned when an alert cannot be queued.
var ErrQueueFull = errors.New("email queue is full")

// alertJob is a queued new-device alert.
type alertJob struct {
	alert    adapter.NewDeviceAlert
	attempts int
}

// Service queues new-device alerts for the worker.
type Service struct {
	recipient string
	jobs      chan alertJob
}

// NewService creates a new email service with a queue of the given size.
func NewService(recipient string, queueSize int) *Service {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Service{
		recipient: recipient,
		jobs:      make(chan alertJob, queueSize),
	}
}

// NotifyNewDevice queues an alert. It never blocks on the provider.
func (s *Service) NotifyNewDevice(_ context.Context, alert adapter.NewDeviceAlert) error {
	if s.recipient == "" {
		slog.Debug("New device alert skipped, no recipient configured", "device_id", alert.DeviceID)
		return nil
	}

	select {
	case s.jobs <- alertJob{alert: alert}:
		return nil
	default:
		return ErrQueueFull
	}
}

// NoopNotifier discards alerts. It is used when email is not configured.
type NoopNotifier struct{}

// NotifyNewDevice does nothing.
func (NoopNotifier) NotifyNewDevice(context.Context, adapter.NewDeviceAlert) error {
	return nil
}

var (
	_ adapter.DeviceNotifier = (*Service)(nil)
	_ adapter.DeviceNotifier = NoopNotifier{}
)
