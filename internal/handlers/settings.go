package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// ProfileReader loads the current user.
type ProfileReader interface {
	GetProfile(ctx context.Context, userID int64) (*models.UserDB, error)
}

// ProfileUpdater changes the current user, ends the given session and returns
// a fresh session token.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, session models.Session, in models.ProfileInput) (string, error)
}

// CategoryLister lists the user's categories.
type CategoryLister interface {
	List(ctx context.Context, userID int64) ([]models.CategoryDB, error)
}

// CategoryAdder adds a category.
type CategoryAdder interface {
	Add(ctx context.Context, userID int64, name string) error
}

// CategoryDeleter deletes a category.
type CategoryDeleter interface {
	Delete(ctx context.Context, userID, categoryID int64) error
}

// BudgetLister lists the user's budgets.
type BudgetLister interface {
	List(ctx context.Context, userID int64) ([]models.BudgetDB, error)
}

// BudgetSetter creates or replaces a budget.
type BudgetSetter interface {
	Set(ctx context.Context, userID int64, category, amount string) error
}

// BudgetDeleter deletes a budget.
type BudgetDeleter interface {
	Delete(ctx context.Context, userID, budgetID int64) error
}

// SettingsPage is the data of settings.html.
type SettingsPage struct {
	Page
	User       *models.UserDB
	Categories []models.CategoryDB
	Budgets    []models.BudgetDB
}

const settingsPath = "/settings"

// NewSettingsHandler renders the profile, category and budget forms.
func NewSettingsHandler(profiles ProfileReader, categories CategoryLister, budgets BudgetLister, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		ctx := r.Context()

		user, err := profiles.GetProfile(ctx, session.UserID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		categoryList, err := categories.List(ctx, session.UserID)
		if err != nil {
			serverError(w, r, err)
			return
		}
		budgetList, err := budgets.List(ctx, session.UserID)
		if err != nil {
			serverError(w, r, err)
			return
		}

		render(w, r, renderer, "settings.html", SettingsPage{
			Page:       newPage(r, "Settings"),
			User:       user,
			Categories: categoryList,
			Budgets:    budgetList,
		})
	}
}

// NewUpdateProfileHandler saves the profile form and refreshes the session cookie.
func NewUpdateProfileHandler(svc ProfileUpdater, cookies CookieWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, settingsPath, flashError, "invalid form submission")
			return
		}

		token, err := svc.UpdateProfile(r.Context(), session, models.ProfileInput{
			Username:        r.PostFormValue("username"),
			Email:           r.PostFormValue("email"),
			CurrentPassword: r.PostFormValue("current_password"),
			NewPassword:     r.PostFormValue("new_password"),
			ConfirmPassword: r.PostFormValue("confirm_password"),
		})
		if err != nil {
			redirectError(w, r, settingsPath, err)
			return
		}

		cookies.SetCookie(w, token)
		redirectSuccess(w, r, settingsPath, "profile updated")
	}
}

// NewAddCategoryHandler adds the submitted category.
func NewAddCategoryHandler(svc CategoryAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, settingsPath, flashError, "invalid form submission")
			return
		}

		if err := svc.Add(r.Context(), session.UserID, r.PostFormValue("category_name")); err != nil {
			redirectError(w, r, settingsPath, err)
			return
		}

		redirectSuccess(w, r, settingsPath, "category added")
	}
}

// NewDeleteCategoryHandler deletes the category {id}.
func NewDeleteCategoryHandler(svc CategoryDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		id, ok := idParam(r)
		if !ok {
			redirectWithFlash(w, r, settingsPath, flashError, "category not found")
			return
		}

		if err := svc.Delete(r.Context(), session.UserID, id); err != nil {
			redirectError(w, r, settingsPath, err)
			return
		}

		redirectSuccess(w, r, settingsPath, "category deleted")
	}
}

// NewSetBudgetHandler creates or replaces the budget of a category.
func NewSetBudgetHandler(svc BudgetSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, settingsPath, flashError, "invalid form submission")
			return
		}

		if err := svc.Set(r.Context(), session.UserID, r.PostFormValue("budget_category"), r.PostFormValue("budget_amount")); err != nil {
			redirectError(w, r, settingsPath, err)
			return
		}

		redirectSuccess(w, r, settingsPath, "budget saved")
	}
}

// NewDeleteBudgetHandler deletes the budget {id}.
func NewDeleteBudgetHandler(svc BudgetDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := requireSession(w, r)
		if !ok {
			return
		}
		id, ok := idParam(r)
		if !ok {
			redirectWithFlash(w, r, settingsPath, flashError, "budget not found")
			return
		}

		if err := svc.Delete(r.Context(), session.UserID, id); err != nil {
			redirectError(w, r, settingsPath, err)
			return
		}

		redirectSuccess(w, r, settingsPath, "budget deleted")
	}
}
