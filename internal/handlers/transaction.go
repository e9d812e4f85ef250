package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// TransactionCreator stores new transactions.
type TransactionCreator interface {
	Create(ctx context.Context, userID int64, in models.TransactionInput) (int64, error)
}

// TransactionUpdater edits transactions.
type TransactionUpdater interface {
	Update(ctx context.Context, userID, id int64, in models.TransactionInput) error
}

// TransactionDeleter removes transactions.
type TransactionDeleter interface {
	Delete(ctx context.Context, userID, id int64) error
}

func transactionInput(r *http.Request) models.TransactionInput {
	return models.TransactionInput{
		Type:        r.PostFormValue("type"),
		Amount:      r.PostFormValue("amount"),
		Description: r.PostFormValue("description"),
		Date:        r.PostFormValue("date"),
		Category:    r.PostFormValue("category"),
	}
}

// idParam reads the positive numeric {id} URL parameter.
func idParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// NewCreateTransactionHandler adds a transaction from the dashboard form.
func NewCreateTransactionHandler(svc TransactionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, "/dashboard", flashError, "invalid form submission")
			return
		}

		if _, err := svc.Create(r.Context(), session.UserID, transactionInput(r)); err != nil {
			redirectError(w, r, "/dashboard", err)
			return
		}

		redirectSuccess(w, r, "/dashboard", "transaction added")
	}
}

// NewEditTransactionHandler updates the transaction {id}.
func NewEditTransactionHandler(svc TransactionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		id, ok := idParam(r)
		if !ok {
			redirectWithFlash(w, r, "/dashboard", flashError, "transaction not found")
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, "/dashboard", flashError, "invalid form submission")
			return
		}

		if err := svc.Update(r.Context(), session.UserID, id, transactionInput(r)); err != nil {
			redirectError(w, r, "/dashboard", err)
			return
		}

		redirectSuccess(w, r, "/dashboard", "transaction updated")
	}
}

// NewDeleteTransactionHandler deletes the transaction {id}.
func NewDeleteTransactionHandler(svc TransactionDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		id, ok := idParam(r)
		if !ok {
			redirectWithFlash(w, r, "/dashboard", flashError, "transaction not found")
			return
		}

		if err := svc.Delete(r.Context(), session.UserID, id); err != nil {
			redirectError(w, r, "/dashboard", err)
			return
		}

		redirectSuccess(w, r, "/dashboard", "transaction deleted")
	}
}
