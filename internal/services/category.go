package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/sbilibin2017/gw-finance-tracker/internal/repositories"
)

// CategoryStore defines persistence of user-defined categories.
type CategoryStore interface {
	Exists(ctx context.Context, userID int64, name string) (bool, error)
	Save(ctx context.Context, userID int64, name string) (int64, error)
	Delete(ctx context.Context, userID, categoryID int64) (int64, error)
	List(ctx context.Context, userID int64) ([]models.CategoryDB, error)
}

// CategoryService manages the user's category list.
type CategoryService struct {
	store CategoryStore
}

func NewCategoryService(store CategoryStore) *CategoryService {
	return &CategoryService{store: store}
}

// Add creates a category.
func (s *CategoryService) Add(ctx context.Context, userID int64, name string) error {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return validationError("category name must not be empty")
	}
	if utf8.RuneCountInString(name) > maxCategoryLength {
		return validationError("category name is too long")
	}

	exists, err := s.store.Exists(ctx, userID, name)
	if err != nil {
		log.Errorw("failed to check category", "user_id", userID, "error", err)
		return databaseError("could not add category", err)
	}
	if exists {
		return conflictError("a category with the same name already exists")
	}

	if _, err := s.store.Save(ctx, userID, name); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return conflictError("a category with the same name already exists")
		}
		log.Errorw("failed to save category", "user_id", userID, "error", err)
		return databaseError("could not add category", err)
	}
	return nil
}

// Delete removes a category and detaches it from the user's transactions.
func (s *CategoryService) Delete(ctx context.Context, userID, categoryID int64) error {
	log := logger.FromContext(ctx)

	detached, err := s.store.Delete(ctx, userID, categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundError("category not found")
	}
	if err != nil {
		log.Errorw("failed to delete category", "user_id", userID, "category_id", categoryID, "error", err)
		return databaseError("could not delete category", err)
	}

	log.Infow("category deleted", "user_id", userID, "category_id", categoryID, "detached", detached)
	return nil
}

// List returns the user's categories ordered by name.
func (s *CategoryService) List(ctx context.Context, userID int64) ([]models.CategoryDB, error) {
	categories, err := s.store.List(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list categories", "user_id", userID, "error", err)
		return nil, databaseError("could not load categories", err)
	}
	return categories, nil
}
