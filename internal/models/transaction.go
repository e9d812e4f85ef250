package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	Income  = "income"
	Expense = "expense"
)

// Uncategorized is the label used for transactions without a category.
const Uncategorized = "uncategorized"

// TransactionDB represents a transaction row in the database
type TransactionDB struct {
	ID          int64           `json:"id" db:"id"`                   // Primary key
	UserID      int64           `json:"user_id" db:"user_id"`         // Owner
	Type        string          `json:"type" db:"type"`               // income or expense
	Amount      decimal.Decimal `json:"amount" db:"amount"`           // Non-negative amount
	Description string          `json:"description" db:"description"` // Free text
	Date        time.Time       `json:"date" db:"date"`               // Calendar date of the entry
	Category    *string         `json:"category" db:"category"`       // Category name, nil when uncategorized
}

// CategoryName returns the category or an empty string.
func (t TransactionDB) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}

// TransactionInput carries the raw form fields of a create or edit submission.
type TransactionInput struct {
	Type        string
	Amount      string
	Description string
	Date        string
	Category    string
}

// TransactionEvent is published to the message broker on every transaction mutation.
type TransactionEvent struct {
	Event         string          `json:"event"`          // transaction.created, transaction.updated or transaction.deleted
	TransactionID int64           `json:"transaction_id"` // Transaction primary key
	UserID        int64           `json:"user_id"`        // Owner
	Type          string          `json:"type,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Category      *string         `json:"category,omitempty"`
	Date          string          `json:"date,omitempty"` // YYYY-MM-DD
	Timestamp     int64           `json:"timestamp"`      // Unix seconds when the event was produced
}
