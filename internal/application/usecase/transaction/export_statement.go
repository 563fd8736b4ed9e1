package transaction

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

// ExportStatementInput represents the input for a statement export.
type ExportStatementInput struct {
	Format string
}

// ExportStatementOutput holds a rendered statement file.
type ExportStatementOutput struct {
	Content     []byte
	ContentType string
	FileName    string
	RowCount    int
}

// ExportStatementUseCase renders the bank-statement view of all transactions.
type ExportStatementUseCase struct {
	transactionRepo adapter.TransactionRepository
	writers         map[string]adapter.StatementWriter
	clock           adapter.Clock
}

// NewExportStatementUseCase creates a new ExportStatementUseCase instance.
func NewExportStatementUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
	writers ...adapter.StatementWriter,
) *ExportStatementUseCase {
	byFormat := make(map[string]adapter.StatementWriter, len(writers))
	for _, w := range writers {
		byFormat[w.Format()] = w
	}
	return &ExportStatementUseCase{
		transactionRepo: transactionRepo,
		writers:         byFormat,
		clock:           clock,
	}
}

// Supports reports whether a writer is registered for format.
func (uc *ExportStatementUseCase) Supports(format string) bool {
	_, ok := uc.writers[format]
	return ok
}

// Execute builds and renders the statement.
func (uc *ExportStatementUseCase) Execute(ctx context.Context, input ExportStatementInput) (*ExportStatementOutput, error) {
	writer, ok := uc.writers[input.Format]
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeUnsupportedExport,
			fmt.Sprintf("unsupported export format '%s'", input.Format),
			nil,
		)
	}

	transactions, err := uc.transactionRepo.FindAll(ctx, entity.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	statement := entity.BuildStatement(transactions)

	var buf bytes.Buffer
	if err := writer.Write(&buf, statement); err != nil {
		return nil, fmt.Errorf("failed to render %s statement: %w", input.Format, err)
	}

	return &ExportStatementOutput{
		Content:     buf.Bytes(),
		ContentType: writer.ContentType(),
		FileName:    fmt.Sprintf("transactions-%s.%s", uc.clock.Now().Format(entity.DateLayout), writer.FileExtension()),
		RowCount:    len(statement.Rows),
	}, nil
}

// CreateExportLinkInput represents the input for issuing a download link.
type CreateExportLinkInput struct {
	DeviceID string
	Format   string
}

// CreateExportLinkOutput holds the signed link token.
type CreateExportLinkOutput struct {
	Token     string
	Format    string
	ExpiresAt time.Time
}

// CreateExportLinkUseCase issues short-lived signed tokens for statement downloads.
type CreateExportLinkUseCase struct {
	links    adapter.ExportLinkService
	exporter *ExportStatementUseCase
}

// NewCreateExportLinkUseCase creates a new CreateExportLinkUseCase instance.
func NewCreateExportLinkUseCase(links adapter.ExportLinkService, exporter *ExportStatementUseCase) *CreateExportLinkUseCase {
	return &CreateExportLinkUseCase{
		links:    links,
		exporter: exporter,
	}
}

// Execute issues the link token.
func (uc *CreateExportLinkUseCase) Execute(_ context.Context, input CreateExportLinkInput) (*CreateExportLinkOutput, error) {
	if !uc.exporter.Supports(input.Format) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeUnsupportedExport,
			fmt.Sprintf("unsupported export format '%s'", input.Format),
			nil,
		)
	}

	token, expiresAt, err := uc.links.IssueLinkToken(input.DeviceID, input.Format)
	if err != nil {
		return nil, fmt.Errorf("failed to sign export link: %w", err)
	}

	return &CreateExportLinkOutput{
		Token:     token,
		Format:    input.Format,
		ExpiresAt: expiresAt,
	}, nil
}

// DownloadExportInput represents a download through a signed link.
type DownloadExportInput struct {
	Token string
}

// DownloadExportUseCase verifies a link token and renders the statement it grants.
// The link is honored only while the device that requested it is still signed in.
type DownloadExportUseCase struct {
	links    adapter.ExportLinkService
	devices  adapter.ActiveDeviceChecker
	exporter *ExportStatementUseCase
}

// NewDownloadExportUseCase creates a new DownloadExportUseCase instance.
func NewDownloadExportUseCase(
	links adapter.ExportLinkService,
	devices adapter.ActiveDeviceChecker,
	exporter *ExportStatementUseCase,
) *DownloadExportUseCase {
	return &DownloadExportUseCase{
		links:    links,
		devices:  devices,
		exporter: exporter,
	}
}

// Execute verifies the token and renders the statement.
func (uc *DownloadExportUseCase) Execute(ctx context.Context, input DownloadExportInput) (*ExportStatementOutput, error) {
	if input.Token == "" {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidExportLink,
			"download token is required",
			nil,
		)
	}

	claims, err := uc.links.ParseLinkToken(input.Token)
	if err != nil {
		slog.Info("Rejected export download link", "error", err)
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidExportLink,
			"download link is invalid or expired",
			err,
		)
	}

	active, err := uc.devices.HasActiveToken(ctx, claims.DeviceID)
	if err != nil {
		slog.Error("Failed to check export link device", "device_id", claims.DeviceID, "error", err)
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidExportLink,
			"download link is invalid or expired",
			err,
		)
	}
	if !active {
		slog.Info("Rejected export link of signed-out device", "device_id", claims.DeviceID)
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidExportLink,
			"download link is invalid or expired",
			domainerror.ErrInvalidToken,
		)
	}

	slog.Info("Statement downloaded via link", "device_id", claims.DeviceID, "format", claims.Format)
	return uc.exporter.Execute(ctx, ExportStatementInput{Format: claims.Format})
}
