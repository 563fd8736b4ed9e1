// Package export renders bank statements into downloadable files.
package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const csvHeader = "Date,Description,Withdrawals,Deposits,Balance"

// CSVWriter renders statements as CSV. The description column is always
// quoted and amounts carry two decimals.
type CSVWriter struct{}

// NewCSVWriter creates a new CSV statement writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{}
}

func (CSVWriter) Format() string        { return "csv" }
func (CSVWriter) ContentType() string   { return "text/csv; charset=utf-8" }
func (CSVWriter) FileExtension() string { return "csv" }

// Write renders the statement rows in order.
func (CSVWriter) Write(w io.Writer, statement entity.Statement) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(csvHeader)
	bw.WriteByte('\n')

	for _, row := range statement.Rows {
		bw.WriteString(row.Date.Format(entity.DateLayout))
		bw.WriteByte(',')
		bw.WriteString(quote(row.Description))
		bw.WriteByte(',')
		bw.WriteString(amount(row.Withdrawal))
		bw.WriteByte(',')
		bw.WriteString(amount(row.Deposit))
		bw.WriteByte(',')
		bw.WriteString(row.Balance.StringFixed(2))
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func amount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

var _ adapter.StatementWriter = (*CSVWriter)(nil)
