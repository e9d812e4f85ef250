package models

import "github.com/shopspring/decimal"

// BudgetDB represents a monthly budget for one category, linked by category name
type BudgetDB struct {
	ID           int64           `json:"id" db:"id"`
	UserID       int64           `json:"user_id" db:"user_id"`
	Category     string          `json:"category" db:"category"`
	BudgetAmount decimal.Decimal `json:"budget_amount" db:"budget_amount"`
}

// BudgetSpending is a budget together with what was spent on its category this month.
type BudgetSpending struct {
	ID           int64           `db:"id"`
	Category     string          `db:"category"`
	BudgetAmount decimal.Decimal `db:"budget_amount"`
	Spent        decimal.Decimal `db:"spent"`
}

// Budget utilization tiers
const (
	BudgetNormal   = "normal"
	BudgetWarning  = "warning"
	BudgetCritical = "critical"
)

// BudgetUtilization is the computed state of a budget for the current calendar month.
type BudgetUtilization struct {
	ID           int64
	Category     string
	BudgetAmount decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal // never negative
	Percent      decimal.Decimal // spent / budget * 100, 0 for a zero budget
	Status       string          // normal, warning or critical
}
