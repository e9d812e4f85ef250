package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sbilibin2017/gw-finance-tracker/internal/filters"
	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

const maxCategoryLength = 50

// NUMERIC(12, 2) holds at most ten integer digits.
var maxAmount = decimal.New(1, 10)

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	Create(ctx context.Context, t *models.TransactionDB) (int64, error)
	Update(ctx context.Context, t *models.TransactionDB) (int64, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
}

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	Exists(ctx context.Context, userID, id int64) (bool, error)
	List(ctx context.Context, f filters.Filter) ([]models.TransactionDB, error)
}

// TransactionPublisher receives an event after every successful mutation.
type TransactionPublisher interface {
	Publish(ctx context.Context, event models.TransactionEvent)
}

// TransactionService validates and stores income and expense entries.
type TransactionService struct {
	writer    TransactionWriter
	reader    TransactionReader
	publisher TransactionPublisher
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(writer TransactionWriter, reader TransactionReader, publisher TransactionPublisher) *TransactionService {
	return &TransactionService{
		writer:    writer,
		reader:    reader,
		publisher: publisher,
	}
}

// ParseTransactionInput validates raw form fields and builds the row to store.
func ParseTransactionInput(userID int64, in models.TransactionInput) (*models.TransactionDB, error) {
	typ := strings.TrimSpace(in.Type)
	if typ != models.Income && typ != models.Expense {
		return nil, validationError("transaction type must be income or expense")
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, validationError("amount must be a number")
	}
	if amount.IsNegative() {
		return nil, validationError("amount must not be negative")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return nil, validationError("amount is too large")
	}

	date, err := time.Parse(filters.DateLayout, strings.TrimSpace(in.Date))
	if err != nil {
		return nil, validationError("date must be in YYYY-MM-DD format")
	}

	var category *string
	if name := strings.TrimSpace(in.Category); name != "" {
		if utf8.RuneCountInString(name) > maxCategoryLength {
			return nil, validationError("category name is too long")
		}
		category = &name
	}

	return &models.TransactionDB{
		UserID:      userID,
		Type:        typ,
		Amount:      amount.Round(2),
		Description: strings.TrimSpace(in.Description),
		Date:        date,
		Category:    category,
	}, nil
}

// Create stores a new transaction for the user and returns its id.
func (s *TransactionService) Create(ctx context.Context, userID int64, in models.TransactionInput) (int64, error) {
	t, err := ParseTransactionInput(userID, in)
	if err != nil {
		return 0, err
	}

	id, err := s.writer.Create(ctx, t)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to create transaction", "user_id", userID, "error", err)
		return 0, databaseError("could not save transaction", err)
	}
	t.ID = id

	s.publish(ctx, EventTransactionCreated, t)
	return id, nil
}

// Update overwrites a transaction owned by the user. Missing and foreign
// transactions are both reported as not found.
func (s *TransactionService) Update(ctx context.Context, userID, id int64, in models.TransactionInput) error {
	log := logger.FromContext(ctx)

	t, err := ParseTransactionInput(userID, in)
	if err != nil {
		return err
	}
	t.ID = id

	exists, err := s.reader.Exists(ctx, userID, id)
	if err != nil {
		log.Errorw("failed to check transaction", "user_id", userID, "transaction_id", id, "error", err)
		return databaseError("could not update transaction", err)
	}
	if !exists {
		return notFoundError("transaction not found")
	}

	rows, err := s.writer.Update(ctx, t)
	if err != nil {
		log.Errorw("failed to update transaction", "user_id", userID, "transaction_id", id, "error", err)
		return databaseError("could not update transaction", err)
	}
	if rows == 0 {
		return notFoundError("transaction not found")
	}

	s.publish(ctx, EventTransactionUpdated, t)
	return nil
}

// Delete removes a transaction owned by the user.
func (s *TransactionService) Delete(ctx context.Context, userID, id int64) error {
	rows, err := s.writer.Delete(ctx, userID, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to delete transaction", "user_id", userID, "transaction_id", id, "error", err)
		return databaseError("could not delete transaction", err)
	}
	if rows == 0 {
		return notFoundError("transaction not found")
	}

	s.publisher.Publish(ctx, models.TransactionEvent{
		Event:         EventTransactionDeleted,
		TransactionID: id,
		UserID:        userID,
	})
	return nil
}

// List returns the user's transactions matching the filter, newest first.
func (s *TransactionService) List(ctx context.Context, f filters.Filter) ([]models.TransactionDB, error) {
	if err := f.Validate(); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "invalid filter", Err: err}
	}

	txs, err := s.reader.List(ctx, f)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list transactions", "user_id", f.UserID, "error", err)
		return nil, databaseError("could not load transactions", err)
	}
	return txs, nil
}

func (s *TransactionService) publish(ctx context.Context, event string, t *models.TransactionDB) {
	s.publisher.Publish(ctx, models.TransactionEvent{
		Event:         event,
		TransactionID: t.ID,
		UserID:        t.UserID,
		Type:          t.Type,
		Amount:        t.Amount,
		Category:      t.Category,
		Date:          t.Date.Format(filters.DateLayout),
	})
}
