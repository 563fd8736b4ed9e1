package email

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/integration/email/templates"
)

const newDeviceSubject = "New device signed in to your ledger"

// Worker drains the alert queue and sends emails.
type Worker struct {
	service     *Service
	sender      adapter.EmailSender
	renderer    *templates.Renderer
	maxAttempts int
	retryDelay  time.Duration
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxAttempts: 3,
		RetryDelay:  5 * time.Second,
	}
}

// NewWorker creates a new email worker.
func NewWorker(service *Service, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		service:     service,
		sender:      sender,
		renderer:    renderer,
		maxAttempts: config.MaxAttempts,
		retryDelay:  config.RetryDelay,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"max_attempts", w.maxAttempts,
		"retry_delay", w.retryDelay,
	)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down", "pending", len(w.service.jobs))
			return
		case job := <-w.service.jobs:
			w.processJob(ctx, job)
		}
	}
}

// ProcessNow sends every queued alert immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	for {
		select {
		case job := <-w.service.jobs:
			w.processJob(ctx, job)
		default:
			return
		}
	}
}

// processJob processes a single alert.
func (w *Worker) processJob(ctx context.Context, job alertJob) {
	logger := slog.With(
		"device_id", job.alert.DeviceID,
		"recipient", w.service.recipient,
	)

	html, text, err := w.renderer.Render(templates.NewDeviceTemplate, templates.NewDeviceData{
		DeviceName: job.alert.DeviceName,
		DeviceID:   job.alert.DeviceID,
		UserAgent:  job.alert.UserAgent,
		SignedInAt: job.alert.SignedInAt.UTC().Format(time.RFC1123),
	})
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      w.service.recipient,
		Subject: newDeviceSubject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		w.handleFailure(ctx, job, err)
		return
	}

	logger.Info("Email sent successfully", "resend_id", result.ResendID)
}

// handleFailure requeues temporary failures until attempts run out.
func (w *Worker) handleFailure(ctx context.Context, job alertJob, err error) {
	job.attempts++

	var sendErr *SendError
	permanent := errors.As(err, &sendErr) && sendErr.Permanent
	if permanent || job.attempts >= w.maxAttempts {
		slog.Warn("Email job permanently failed",
			"device_id", job.alert.DeviceID,
			"attempts", job.attempts,
			"last_error", err,
		)
		return
	}

	slog.Info("Email job scheduled for retry",
		"device_id", job.alert.DeviceID,
		"attempts", job.attempts,
		"retry_in", w.retryDelay,
	)

	go func() {
		timer := time.NewTimer(w.retryDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
			select {
			case w.service.jobs <- job:
			default:
				slog.Warn("Email queue full, dropping retry", "device_id", job.alert.DeviceID)
			}
		}
	}()
}
