package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

const transactionColumns = `id, user_id, type, amount, description, date, category`

// TransactionRepository handles reads and writes of transactions.
type TransactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts the transaction and returns its id.
func (r *TransactionRepository) Create(ctx context.Context, t *models.TransactionDB) (int64, error) {
	const query = `
		INSERT INTO transactions (user_id, type, amount, description, date, category)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	args := []any{t.UserID, t.Type, t.Amount, t.Description, t.Date.Format(filters.DateLayout), t.Category}

	var id int64
	err := r.db.GetContext(ctx, &id, query, args...)
	logQuery(ctx, query, args, id, err)

	return id, err
}

// Exists reports whether the transaction exists and belongs to the user.
func (r *TransactionRepository) Exists(ctx context.Context, userID, id int64) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1 AND user_id = $2)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, id, userID)
	logQuery(ctx, query, []any{id, userID}, exists, err)

	return exists, err
}

// Update overwrites the editable fields of a transaction owned by t.UserID
// and returns the number of affected rows.
func (r *TransactionRepository) Update(ctx context.Context, t *models.TransactionDB) (int64, error) {
	const query = `
		UPDATE transactions
		SET type = $1, amount = $2, description = $3, date = $4, category = $5
		WHERE id = $6 AND user_id = $7
	`
	args := []any{t.Type, t.Amount, t.Description, t.Date.Format(filters.DateLayout), t.Category, t.ID, t.UserID}

	return r.exec(ctx, query, args)
}

// Delete removes a transaction owned by the user and returns the number of affected rows.
func (r *TransactionRepository) Delete(ctx context.Context, userID, id int64) (int64, error) {
	const query = `
		DELETE FROM transactions
		WHERE id = $1 AND user_id = $2
	`
	return r.exec(ctx, query, []any{id, userID})
}

func (r *TransactionRepository) exec(ctx context.Context, query string, args []any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}
	logQuery(ctx, query, args, rowsAffected, err)

	return rowsAffected, err
}

// List returns the transactions matching the filter, newest first.
func (r *TransactionRepository) List(ctx context.Context, f filters.Filter) ([]models.TransactionDB, error) {
	query, args := f.Query(
		"SELECT "+transactionColumns+" FROM transactions",
		" ORDER BY date DESC, id DESC",
	)

	var txs []models.TransactionDB
	err := r.db.SelectContext(ctx, &txs, query, args...)
	logQuery(ctx, query, args, len(txs), err)

	return txs, err
}

// Recent returns the latest transactions of the user regardless of any filter.
func (r *TransactionRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.TransactionDB, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2
	`

	var txs []models.TransactionDB
	err := r.db.SelectContext(ctx, &txs, query, userID, limit)
	logQuery(ctx, query, []any{userID, limit}, len(txs), err)

	return txs, err
}

// UsedCategories returns the distinct non-empty category names found on the user's transactions.
func (r *TransactionRepository) UsedCategories(ctx context.Context, userID int64) ([]string, error) {
	const query = `
		SELECT DISTINCT category
		FROM transactions
		WHERE user_id = $1 AND category IS NOT NULL AND category <> ''
		ORDER BY category
	`

	var names []string
	err := r.db.SelectContext(ctx, &names, query, userID)
	logQuery(ctx, query, []any{userID}, len(names), err)

	return names, err
}
