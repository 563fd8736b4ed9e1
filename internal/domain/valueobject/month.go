// Package valueobject contains domain value objects for the ledger.
package valueobject

import (
	"fmt"
	"strings"
	"time"
)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Previous returns the immediately preceding calendar month.
func (m Month) Previous() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Prefix returns the month in YYYY-MM form.
func (m Month) Prefix() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether the date falls in the month by matching its
// YYYY-MM-DD rendering against the month prefix.
func (m Month) Contains(date time.Time) bool {
	return strings.HasPrefix(date.Format("2006-01-02"), m.Prefix())
}
