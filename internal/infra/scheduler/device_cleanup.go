package scheduler

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/ledger/internal/application/usecase/auth"
)

// DeviceCleanupJob deactivates devices that have not been seen within the retention period.
type DeviceCleanupJob struct {
	useCase       *auth.CleanupDevicesUseCase
	retentionDays int
}

// NewDeviceCleanupJob creates a new DeviceCleanupJob.
func NewDeviceCleanupJob(useCase *auth.CleanupDevicesUseCase, retentionDays int) *DeviceCleanupJob {
	return &DeviceCleanupJob{useCase: useCase, retentionDays: retentionDays}
}

// Name returns the job name.
func (j *DeviceCleanupJob) Name() string { return "device_cleanup" }

// Run executes one cleanup pass.
func (j *DeviceCleanupJob) Run(ctx context.Context) error {
	out, err := j.useCase.Execute(ctx, auth.CleanupDevicesInput{RetentionDays: j.retentionDays})
	if err != nil {
		return err
	}
	slog.Debug("Device cleanup cutoff applied", "cutoff", out.Cutoff, "deactivated", out.Deactivated)
	return nil
}
