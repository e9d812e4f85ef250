package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var txColumns = []string{"id", "user_id", "type", "amount", "description", "date", "category"}

func TestTransactionRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions (user_id, type, amount, description, date, category)")).
		WithArgs(int64(1), "income", "10000", "salary", "2024-01-01", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := NewTransactionRepository(db).Create(context.Background(), &models.TransactionDB{
		UserID:      1,
		Type:        models.Income,
		Amount:      decimal.NewFromInt(10000),
		Description: "salary",
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(11), id)
}

func TestTransactionRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1 AND user_id = $2)")).
		WithArgs(int64(3), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := NewTransactionRepository(db).Exists(context.Background(), 1, 3)
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionRepository_UpdateScopedByOwner(t *testing.T) {
	db, mock := newMockDB(t)
	food := "Food"

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $6 AND user_id = $7")).
		WithArgs("expense", "2500.5", "lunch", "2024-02-03", "Food", int64(9), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := NewTransactionRepository(db).Update(context.Background(), &models.TransactionDB{
		ID:          9,
		UserID:      1,
		Type:        models.Expense,
		Amount:      decimal.RequireFromString("2500.50"),
		Description: "lunch",
		Date:        time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		Category:    &food,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestTransactionRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM transactions WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(9), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := NewTransactionRepository(db).Delete(context.Background(), 2, 9)
	assert.NoError(t, err)
	assert.Zero(t, rows)
}

func TestTransactionRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	day := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"FROM transactions WHERE user_id = $1 AND (category IS NULL OR category = '') AND EXTRACT(MONTH FROM date) = $2 AND EXTRACT(YEAR FROM date) = $3 ORDER BY date DESC, id DESC")).
		WithArgs(int64(1), 1, 2024).
		WillReturnRows(sqlmock.NewRows(txColumns).
			AddRow(int64(2), int64(1), "expense", "15000.00", "coffee", day, nil).
			AddRow(int64(1), int64(1), "income", "10000.00", "gift", day, ""))

	txs, err := NewTransactionRepository(db).List(context.Background(), filters.Filter{
		UserID:   1,
		Category: filters.CategoryUncategorized,
		Month:    1,
		Year:     2024,
	})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, txs[0].Category)
	assert.True(t, decimal.NewFromInt(15000).Equal(txs[0].Amount))
	assert.Equal(t, "", txs[1].CategoryName())
}

func TestTransactionRepository_RecentAndUsedCategories(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2")).
		WithArgs(int64(1), 5).
		WillReturnRows(sqlmock.NewRows(txColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Food").AddRow("Rent"))

	repo := NewTransactionRepository(db)

	recent, err := repo.Recent(context.Background(), 1, 5)
	assert.NoError(t, err)
	assert.Empty(t, recent)

	names, err := repo.UsedCategories(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"Food", "Rent"}, names)
}
