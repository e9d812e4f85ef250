package repositories

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// CategoryRepository handles user-defined categories.
type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Exists reports whether the user already has a category with this name.
func (r *CategoryRepository) Exists(ctx context.Context, userID int64, name string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM categories WHERE user_id = $1 AND name = $2)
	`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, userID, name)
	logQuery(ctx, query, []any{userID, name}, exists, err)

	return exists, err
}

// Save inserts a category and returns its id, or ErrAlreadyExists.
func (r *CategoryRepository) Save(ctx context.Context, userID int64, name string) (int64, error) {
	const query = `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.GetContext(ctx, &id, query, userID, name)
	logQuery(ctx, query, []any{userID, name}, id, err)

	if isUniqueViolation(err) {
		return 0, ErrAlreadyExists
	}
	return id, err
}

// Delete detaches the category from the user's transactions and removes it,
// both in one database transaction. It returns how many transactions were
// detached, or sql.ErrNoRows (with nothing changed) when the category does
// not exist for this user.
func (r *CategoryRepository) Delete(ctx context.Context, userID, categoryID int64) (int64, error) {
	const detach = `
		UPDATE transactions
		SET category = NULL
		WHERE user_id = $1
		  AND category = (SELECT name FROM categories WHERE id = $2 AND user_id = $1)
	`
	const remove = `
		DELETE FROM categories
		WHERE id = $1 AND user_id = $2
	`

	var detached int64
	err := WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, detach, userID, categoryID)
		if res != nil {
			detached, _ = res.RowsAffected()
		}
		logQuery(ctx, detach, []any{userID, categoryID}, detached, err)
		if err != nil {
			return err
		}

		res, err = tx.ExecContext(ctx, remove, categoryID, userID)
		var deleted int64
		if res != nil {
			deleted, _ = res.RowsAffected()
		}
		logQuery(ctx, remove, []any{categoryID, userID}, deleted, err)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return detached, nil
}

// List returns the user's categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context, userID int64) ([]models.CategoryDB, error) {
	const query = `
		SELECT id, user_id, name
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`

	var categories []models.CategoryDB
	err := r.db.SelectContext(ctx, &categories, query, userID)
	logQuery(ctx, query, []any{userID}, len(categories), err)

	return categories, err
}
