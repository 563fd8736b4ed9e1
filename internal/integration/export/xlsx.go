package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const (
	xlsxSheet = "Statement"
	// numFmtTwoDecimals is the built-in "#,##0.00" format.
	numFmtTwoDecimals = 4
)

// XLSXWriter renders statements as an Excel workbook with a closing balance row.
type XLSXWriter struct{}

// NewXLSXWriter creates a new XLSX statement writer.
func NewXLSXWriter() *XLSXWriter {
	return &XLSXWriter{}
}

func (XLSXWriter) Format() string { return "xlsx" }

func (XLSXWriter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSXWriter) FileExtension() string { return "xlsx" }

// Write renders the statement into a single-sheet workbook.
func (XLSXWriter) Write(w io.Writer, statement entity.Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []interface{}{"Date", "Description", "Withdrawals", "Deposits", "Balance"}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range statement.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Date.Format(entity.DateLayout),
			row.Description,
			cellAmount(row.Withdrawal),
			cellAmount(row.Deposit),
			row.Balance.InexactFloat64(),
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	closing, err := excelize.CoordinatesToCellName(1, len(statement.Rows)+3)
	if err != nil {
		return err
	}
	footer := []interface{}{"", "Closing balance", nil, nil, statement.ClosingBalance.InexactFloat64()}
	if err := f.SetSheetRow(xlsxSheet, closing, &footer); err != nil {
		return fmt.Errorf("failed to write closing balance: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "A1", "E1", bold); err != nil {
		return err
	}
	lastCell, err := excelize.CoordinatesToCellName(5, len(statement.Rows)+3)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(xlsxSheet, "C2", lastCell, money); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "B", "B", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(xlsxSheet, "C", "E", 14); err != nil {
		return err
	}

	return f.Write(w)
}

func cellAmount(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return d.InexactFloat64()
}

var _ adapter.StatementWriter = (*XLSXWriter)(nil)
