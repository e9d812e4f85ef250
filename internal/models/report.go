package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals holds the income and expense sums of a period.
type Totals struct {
	Income  decimal.Decimal `db:"income"`
	Expense decimal.Decimal `db:"expense"`
}

// Balance is income minus expense.
func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

// MonthlyTotal is one point of the monthly income/expense series.
type MonthlyTotal struct {
	Month   string          `db:"month"` // YYYY-MM
	Income  decimal.Decimal `db:"income"`
	Expense decimal.Decimal `db:"expense"`
}

// CategoryTotal is the expense sum of one category.
type CategoryTotal struct {
	Category string          `db:"category"`
	Total    decimal.Decimal `db:"total"`
}

// DailyTotal is the expense sum of one day.
type DailyTotal struct {
	Date  time.Time       `db:"date"`
	Total decimal.Decimal `db:"total"`
}

// Dashboard is everything the dashboard page shows.
type Dashboard struct {
	Transactions      []TransactionDB
	Totals            Totals
	Recent            []TransactionDB
	Categories        []string
	Monthly           []MonthlyTotal
	CategoryBreakdown []CategoryTotal
}

// Report is everything the report page shows.
type Report struct {
	Transactions      []TransactionDB
	Totals            Totals
	SavingsRate       decimal.Decimal
	Monthly           []MonthlyTotal
	CategoryBreakdown []CategoryTotal
	DailyTrend        []DailyTotal
	Budgets           []BudgetUtilization
	TopExpenses       []TransactionDB
	Categories        []string
}
