package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// ReportRepository runs the grouped queries behind the dashboard and report pages.
type ReportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Totals sums income and expense over the filtered transactions.
func (r *ReportRepository) Totals(ctx context.Context, f filters.Filter) (models.Totals, error) {
	query, args := f.Query(`
		SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense
		FROM transactions`, "")

	var totals models.Totals
	err := r.db.GetContext(ctx, &totals, query, args...)
	logQuery(ctx, query, args, totals, err)

	return totals, err
}

// MonthlySeries returns per-month income and expense sums for dates on or
// after since, oldest first. Months without transactions are absent.
func (r *ReportRepository) MonthlySeries(ctx context.Context, userID int64, since time.Time) ([]models.MonthlyTotal, error) {
	const query = `
		SELECT
			to_char(date, 'YYYY-MM') AS month,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expense
		FROM transactions
		WHERE user_id = $1 AND date >= $2
		GROUP BY to_char(date, 'YYYY-MM')
		ORDER BY month ASC
	`
	args := []any{userID, since.Format(filters.DateLayout)}

	var series []models.MonthlyTotal
	err := r.db.SelectContext(ctx, &series, query, args...)
	logQuery(ctx, query, args, len(series), err)

	return series, err
}

// CategoryBreakdown sums expenses per category, largest first.
// Transactions without a category are reported under models.Uncategorized.
func (r *ReportRepository) CategoryBreakdown(ctx context.Context, f filters.Filter) ([]models.CategoryTotal, error) {
	query, args := f.WithType(models.Expense).Query(`
		SELECT
			COALESCE(NULLIF(category, ''), '`+models.Uncategorized+`') AS category,
			SUM(amount) AS total
		FROM transactions`, `
		GROUP BY COALESCE(NULLIF(category, ''), '`+models.Uncategorized+`')
		ORDER BY total DESC`)

	var breakdown []models.CategoryTotal
	err := r.db.SelectContext(ctx, &breakdown, query, args...)
	logQuery(ctx, query, args, len(breakdown), err)

	return breakdown, err
}

// DailyTrend sums expenses per day, oldest first.
func (r *ReportRepository) DailyTrend(ctx context.Context, f filters.Filter) ([]models.DailyTotal, error) {
	query, args := f.WithType(models.Expense).Query(`
		SELECT date, SUM(amount) AS total
		FROM transactions`, `
		GROUP BY date
		ORDER BY date ASC`)

	var trend []models.DailyTotal
	err := r.db.SelectContext(ctx, &trend, query, args...)
	logQuery(ctx, query, args, len(trend), err)

	return trend, err
}

// BudgetSpending returns every budget of the user with the expenses of its
// category between from and to (inclusive).
func (r *ReportRepository) BudgetSpending(ctx context.Context, userID int64, from, to time.Time) ([]models.BudgetSpending, error) {
	const query = `
		SELECT
			b.id,
			b.category,
			b.budget_amount,
			COALESCE((
				SELECT SUM(t.amount)
				FROM transactions t
				WHERE t.user_id = b.user_id
				  AND t.type = 'expense'
				  AND t.category = b.category
				  AND t.date BETWEEN $2 AND $3
			), 0) AS spent
		FROM budgets b
		WHERE b.user_id = $1
		ORDER BY b.category
	`
	args := []any{userID, from.Format(filters.DateLayout), to.Format(filters.DateLayout)}

	var spending []models.BudgetSpending
	err := r.db.SelectContext(ctx, &spending, query, args...)
	logQuery(ctx, query, args, len(spending), err)

	return spending, err
}

// TopExpenses returns the largest expenses matching the filter.
// The order of equal amounts is left to the database.
func (r *ReportRepository) TopExpenses(ctx context.Context, f filters.Filter, limit int) ([]models.TransactionDB, error) {
	query, args := f.WithType(models.Expense).Query(
		"SELECT "+transactionColumns+" FROM transactions",
		" ORDER BY amount DESC LIMIT ?",
	)
	args = append(args, limit)

	var txs []models.TransactionDB
	err := r.db.SelectContext(ctx, &txs, query, args...)
	logQuery(ctx, query, args, len(txs), err)

	return txs, err
}
