package valueobject

import "github.com/shopspring/decimal"

// TrendKind describes how a month-over-month change could be expressed.
type TrendKind string

const (
	// TrendNone means both months were zero and there is nothing to report.
	TrendNone TrendKind = "none"
	// TrendNew means the previous month was zero and the current one is not.
	TrendNew TrendKind = "new"
	// TrendPercent means Percent holds the relative change.
	TrendPercent TrendKind = "percent"
)

// TrendNewLabel is the rendering of a TrendNew trend.
const TrendNewLabel = "New"

var hundred = decimal.NewFromInt(100)

// Trend is the relative change between two monthly totals.
type Trend struct {
	Kind    TrendKind
	Percent decimal.Decimal
}

// NewTrend computes (current - previous) / previous * 100 rounded to two
// decimals.
func NewTrend(current, previous decimal.Decimal) Trend {
	if previous.IsZero() {
		if current.IsZero() {
			return Trend{Kind: TrendNone}
		}
		return Trend{Kind: TrendNew}
	}

	pct := current.Sub(previous).Div(previous).Mul(hundred).Round(2)
	return Trend{Kind: TrendPercent, Percent: pct}
}

// Label renders the trend for clients. The second result is false when the
// trend should be omitted.
func (t Trend) Label() (string, bool) {
	switch t.Kind {
	case TrendNew:
		return TrendNewLabel, true
	case TrendPercent:
		return t.Percent.StringFixed(2), true
	}
	return "", false
}
