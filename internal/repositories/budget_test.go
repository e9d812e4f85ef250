package repositories

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudgetRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (user_id, category) DO UPDATE SET budget_amount = EXCLUDED.budget_amount")).
		WithArgs(int64(1), "Food", "500000").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewBudgetRepository(db).Upsert(context.Background(), 1, "Food", decimal.NewFromInt(500000))
	assert.NoError(t, err)
}

func TestBudgetRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM budgets WHERE id = $1 AND user_id = $2")).
		WithArgs(int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := NewBudgetRepository(db).Delete(context.Background(), 1, 3)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestBudgetRepository_List(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM budgets WHERE user_id = $1 ORDER BY category")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "budget_amount"}).
			AddRow(int64(3), int64(1), "Food", "500000.00"))

	budgets, err := NewBudgetRepository(db).List(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, budgets, 1)
	assert.True(t, decimal.NewFromInt(500000).Equal(budgets[0].BudgetAmount))
}
