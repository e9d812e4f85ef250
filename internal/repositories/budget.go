package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetRepository handles per-category monthly budgets.
type BudgetRepository struct {
	db *sqlx.DB
}

func NewBudgetRepository(db *sqlx.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Upsert creates the budget for a category or replaces its amount.
func (r *BudgetRepository) Upsert(ctx context.Context, userID int64, category string, amount decimal.Decimal) error {
	const query = `
		INSERT INTO budgets (user_id, category, budget_amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category)
		DO UPDATE SET budget_amount = EXCLUDED.budget_amount
	`
	args := []any{userID, category, amount}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, args, rowsAffected, err)

	return err
}

// Delete removes a budget owned by the user and returns the number of affected rows.
func (r *BudgetRepository) Delete(ctx context.Context, userID, budgetID int64) (int64, error) {
	const query = `
		DELETE FROM budgets
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, budgetID, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, []any{budgetID, userID}, rowsAffected, err)

	return rowsAffected, err
}

// List returns the user's budgets ordered by category.
func (r *BudgetRepository) List(ctx context.Context, userID int64) ([]models.BudgetDB, error) {
	const query = `
		SELECT id, user_id, category, budget_amount
		FROM budgets
		WHERE user_id = $1
		ORDER BY category
	`

	var budgets []models.BudgetDB
	err := r.db.SelectContext(ctx, &budgets, query, userID)
	logQuery(ctx, query, []any{userID}, len(budgets), err)

	return budgets, err
}
