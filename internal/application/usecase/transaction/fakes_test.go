package transaction

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type memoryTransactionRepo struct {
	items   map[uuid.UUID]*entity.Transaction
	findErr error
}

func newMemoryTransactionRepo() *memoryTransactionRepo {
	return &memoryTransactionRepo{items: map[uuid.UUID]*entity.Transaction{}}
}

func (r *memoryTransactionRepo) Create(_ context.Context, t *entity.Transaction) error {
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *memoryTransactionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	t, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memoryTransactionRepo) FindAll(_ context.Context, f entity.TransactionFilter) ([]*entity.Transaction, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*entity.Transaction
	for _, t := range r.items {
		if f.Type != nil && t.Type != *f.Type {
			continue
		}
		if f.StartDate != nil && t.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && t.Date.After(*f.EndDate) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryTransactionRepo) Update(_ context.Context, t *entity.Transaction) error {
	if _, ok := r.items[t.ID]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	cp := *t
	r.items[t.ID] = &cp
	return nil
}

func (r *memoryTransactionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrTransactionNotFound
	}
	delete(r.items, id)
	return nil
}

type lineWriter struct{}

func (lineWriter) Format() string        { return "txt" }
func (lineWriter) ContentType() string   { return "text/plain" }
func (lineWriter) FileExtension() string { return "txt" }
func (lineWriter) Write(w io.Writer, s entity.Statement) error {
	lines := make([]string, 0, len(s.Rows))
	for _, row := range s.Rows {
		lines = append(lines, row.Description+"="+row.Balance.StringFixed(2))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

type activeDevices map[string]bool

func (d activeDevices) HasActiveToken(_ context.Context, deviceID string) (bool, error) {
	return d[deviceID], nil
}

type stubLinks struct {
	issued []adapter.ExportLinkClaims
}

func (s *stubLinks) IssueLinkToken(deviceID, format string) (string, time.Time, error) {
	exp := time.Date(2025, 9, 15, 12, 5, 0, 0, time.UTC)
	s.issued = append(s.issued, adapter.ExportLinkClaims{DeviceID: deviceID, Format: format, ExpiresAt: exp})
	return "signed:" + format, exp, nil
}

func (s *stubLinks) ParseLinkToken(token string) (*adapter.ExportLinkClaims, error) {
	format, ok := strings.CutPrefix(token, "signed:")
	if !ok {
		return nil, errors.New("bad signature")
	}
	return &adapter.ExportLinkClaims{DeviceID: "D1", Format: format}, nil
}
