// Package format renders money, dates and percentages for the pages.
package format

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// Display layouts
const (
	DateLayout  = "02/01/2006"
	MonthLayout = "Jan 2006"
	monthKey    = "2006-01"
)

// Rupiah formats an amount as Indonesian Rupiah without decimals, e.g. "Rp 1.234.567".
func Rupiah(amount decimal.Decimal) string {
	n := amount.Round(0).IntPart()
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "Rp " + strings.ReplaceAll(humanize.Comma(n), ",", ".")
}

// Date formats a calendar date as dd/mm/yyyy.
func Date(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthLabel turns a "YYYY-MM" key into "Jan 2006". Unparseable keys are returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse(monthKey, key)
	if err != nil {
		return key
	}
	return t.Format(MonthLayout)
}

// Percent formats a percentage with one decimal, e.g. "75.5%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}
