package entity

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for every money column.
const MoneyScale = 2

// maxMoneyAmount is the first value that no longer fits decimal(15,2).
var maxMoneyAmount = decimal.New(1, 13)

// IsMoneyAmount reports whether d is a positive amount that is stored
// exactly: at most two decimal places and within the column precision.
func IsMoneyAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Round(MoneyScale)) && d.LessThan(maxMoneyAmount)
}
