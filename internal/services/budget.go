package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// BudgetStore defines persistence of monthly budgets.
type BudgetStore interface {
	Upsert(ctx context.Context, userID int64, category string, amount decimal.Decimal) error
	Delete(ctx context.Context, userID, budgetID int64) (int64, error)
	List(ctx context.Context, userID int64) ([]models.BudgetDB, error)
}

// BudgetService manages per-category monthly budgets.
type BudgetService struct {
	store BudgetStore
}

func NewBudgetService(store BudgetStore) *BudgetService {
	return &BudgetService{store: store}
}

// Set creates the budget for a category or replaces its amount.
func (s *BudgetService) Set(ctx context.Context, userID int64, category, amount string) error {
	category = strings.TrimSpace(category)
	value, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err == nil {
		value = value.Round(2)
	}
	if category == "" || err != nil || !value.IsPositive() {
		return validationError("category and a positive budget amount are required")
	}
	if utf8.RuneCountInString(category) > maxCategoryLength {
		return validationError("category name is too long")
	}
	if value.GreaterThanOrEqual(maxAmount) {
		return validationError("budget amount is too large")
	}

	if err := s.store.Upsert(ctx, userID, category, value); err != nil {
		logger.FromContext(ctx).Errorw("failed to save budget", "user_id", userID, "category", category, "error", err)
		return databaseError("could not save budget", err)
	}
	return nil
}

// Delete removes a budget owned by the user.
func (s *BudgetService) Delete(ctx context.Context, userID, budgetID int64) error {
	rows, err := s.store.Delete(ctx, userID, budgetID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to delete budget", "user_id", userID, "budget_id", budgetID, "error", err)
		return databaseError("could not delete budget", err)
	}
	if rows == 0 {
		return notFoundError("budget not found")
	}
	return nil
}

// List returns the user's budgets ordered by category.
func (s *BudgetService) List(ctx context.Context, userID int64) ([]models.BudgetDB, error) {
	budgets, err := s.store.List(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list budgets", "user_id", userID, "error", err)
		return nil, databaseError("could not load budgets", err)
	}
	return budgets, nil
}
