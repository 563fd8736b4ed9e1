package adapter

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindAll retrieves the transactions matching filter, newest date first.
	FindAll(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}

// StatementWriter renders a statement in one file format.
type StatementWriter interface {
	// Format is the short name used in URLs, e.g. "csv".
	Format() string
	ContentType() string
	FileExtension() string
	Write(w io.Writer, statement entity.Statement) error
}
